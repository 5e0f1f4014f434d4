package http

import (
	"net/http"

	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
	log      *zap.Logger
}

func NewCheckoutHandler(checkout service.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, log: log}
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid checkout request", zap.Error(err))
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", extractFieldErrors(err)))
		return
	}

	in := service.CheckoutInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		CardNumber:      req.CardNumber,
		Lines:           make([]service.CheckoutLine, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, service.CheckoutLine{
			ProductID: l.ProductID,
			Size:      l.Size,
			Quantity:  l.Quantity,
		})
	}

	res, err := h.checkout.Checkout(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := CheckoutResponse{
		OrderID:   res.OrderID,
		Total:     res.Total,
		Status:    string(res.Status),
		Reference: res.Reference,
		OrderedAt: res.OrderedAt,
		Lines:     make([]CheckoutLineResponse, 0, len(res.Lines)),
	}
	for _, l := range res.Lines {
		resp.Lines = append(resp.Lines, CheckoutLineResponse{
			Product:   l.Product,
			Brand:     l.Brand,
			Size:      l.Size,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
			Status:    string(l.Status),
		})
	}
	c.JSON(http.StatusCreated, resp)
}
