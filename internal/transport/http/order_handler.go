package http

import (
	"net/http"
	"strconv"

	"checkout-service/internal/models"
	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderSummaryResponse{
			OrderID:       o.OrderID,
			Total:         o.Total,
			Status:        string(o.Status),
			PaymentMethod: o.PaymentMethod,
			Reference:     o.Reference,
			OrderedAt:     o.OrderedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.orders.GetOrderDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := OrderDetailResponse{
		OrderID:         detail.OrderID,
		Total:           detail.Total,
		Status:          string(detail.Status),
		ShippingAddress: detail.ShippingAddress,
		PaymentMethod:   detail.PaymentMethod,
		Reference:       detail.Reference,
		OrderedAt:       detail.OrderedAt,
		Lines:           make([]OrderLineResponse, 0, len(detail.Lines)),
	}
	for _, l := range detail.Lines {
		resp.Lines = append(resp.Lines, toOrderLineResponse(l))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", extractFieldErrors(err)))
		return
	}
	if err := h.orders.UpdateOrderStatus(c.Request.Context(), id, models.OrderStatus(req.Status)); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orden_id": id, "estado": req.Status})
}

func (h *OrderHandler) UpdateLineStatus(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lineID, ok := pathID(c, "lineID")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", extractFieldErrors(err)))
		return
	}
	line, err := h.orders.UpdateLineStatus(c.Request.Context(), orderID, lineID, models.LineStatus(req.Status))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderLineResponse(*line))
}

func toOrderLineResponse(l service.OrderLineDetail) OrderLineResponse {
	return OrderLineResponse{
		LineID:    l.LineID,
		ProductID: l.ProductID,
		Product:   l.Product,
		Brand:     l.Brand,
		Size:      l.Size,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Subtotal:  l.Subtotal,
		Status:    string(l.Status),
		Display:   l.Display,
	}
}

// pathID parses a numeric path parameter, answering 400 itself when the
// value is not a positive integer.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid "+name+" path parameter", []FieldError{}))
		return 0, false
	}
	return id, true
}
