package http

import (
	"net/http"
	"strconv"

	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SalesHandler struct {
	sales service.SalesService
	log   *zap.Logger
}

func NewSalesHandler(sales service.SalesService, log *zap.Logger) *SalesHandler {
	return &SalesHandler{sales: sales, log: log}
}

func (h *SalesHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	facts, err := h.sales.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]SaleFactResponse, 0, len(facts))
	for _, f := range facts {
		out = append(out, SaleFactResponse{
			OrderID:       f.OrderID,
			ProductName:   f.ProductName,
			Brand:         f.Brand,
			Size:          f.Size,
			Quantity:      f.Quantity,
			UnitPrice:     f.UnitPrice,
			LineTotal:     f.LineTotal,
			OrderedAt:     f.OrderedAt,
			PaymentMethod: f.PaymentMethod,
			UserEmail:     f.UserEmail,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *SalesHandler) Report(c *gin.Context) {
	rows, err := h.sales.Report(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]ProductSalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProductSalesResponse{
			Product:    r.Product,
			TotalUnits: r.TotalUnits,
			TotalSales: r.TotalSales,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *SalesHandler) Resync(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	rows, err := h.sales.Resync(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orden_id": orderID, "filas": rows})
}
