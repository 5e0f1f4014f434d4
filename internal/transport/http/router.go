package http

import (
	"checkout-service/config"
	"checkout-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Services struct {
	Checkout service.CheckoutService
	Orders   service.OrderService
	Payments service.PaymentService
	Invoices service.InvoiceService
	Sales    service.SalesService
}

func Router(cfg *config.Config, svc Services, log *zap.Logger) *gin.Engine {
	r := gin.Default()
	r.Use(RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", headerRequestID},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	checkoutHandler := NewCheckoutHandler(svc.Checkout, log)
	orderHandler := NewOrderHandler(svc.Orders, log)
	paymentHandler := NewPaymentHandler(svc.Payments, log)
	invoiceHandler := NewInvoiceHandler(svc.Invoices, log)
	salesHandler := NewSalesHandler(svc.Sales, log)

	api := r.Group("/api", AuthRequired(cfg.JWT, log))
	{
		api.POST("/checkout", checkoutHandler.Checkout)

		api.GET("/orden", orderHandler.List)
		api.GET("/orden/:id", orderHandler.Get)
		api.PUT("/orden/:id/estado", orderHandler.UpdateStatus)
		api.PUT("/orden/:id/detalles/:lineID/estado", orderHandler.UpdateLineStatus)
		api.GET("/orden/:id/pago", paymentHandler.GetByOrder)

		api.POST("/pagos/confirmar", paymentHandler.Confirm)

		api.POST("/facturas", invoiceHandler.Issue)
		api.GET("/facturas", invoiceHandler.ListAll)
		api.GET("/facturas/mias", invoiceHandler.ListMine)
		api.GET("/facturas/stats", invoiceHandler.Stats)
		api.GET("/facturas/:id", invoiceHandler.Get)
		api.PUT("/facturas/:id/estado", invoiceHandler.UpdateStatus)
		api.PUT("/facturas/:id/pdf", invoiceHandler.AttachPDF)
		api.DELETE("/facturas/:id", invoiceHandler.Delete)

		api.GET("/ventas", salesHandler.ListRecent)
		api.GET("/ventas/reporte", salesHandler.Report)
		api.POST("/ventas/sincronizar/:id", salesHandler.Resync)
	}

	return r
}
