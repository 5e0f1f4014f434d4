package http

import (
	"net/http"

	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments service.PaymentService
	log      *zap.Logger
}

func NewPaymentHandler(payments service.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, log: log}
}

func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", extractFieldErrors(err)))
		return
	}
	res, err := h.payments.ConfirmPayment(c.Request.Context(), service.ConfirmPaymentInput{
		OrderID:    req.OrderID,
		Method:     req.Method,
		CardNumber: req.CardNumber,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ConfirmPaymentResponse{
		OrderID:   res.OrderID,
		Reference: res.Reference,
		Status:    string(res.Status),
	})
}

func (h *PaymentHandler) GetByOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.payments.GetPayment(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, PaymentResponse{
		OrderID:   p.OrderID,
		Method:    p.Method,
		Status:    string(p.Status),
		Reference: p.Reference,
		CardBrand: p.CardBrand,
		CardLast4: p.CardLast4,
		CreatedAt: p.CreatedAt,
	})
}
