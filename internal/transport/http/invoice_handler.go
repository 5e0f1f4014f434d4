package http

import (
	"net/http"

	"checkout-service/internal/models"
	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	invoices service.InvoiceService
	log      *zap.Logger
}

func NewInvoiceHandler(invoices service.InvoiceService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, log: log}
}

func (h *InvoiceHandler) Issue(c *gin.Context) {
	var req IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", extractFieldErrors(err)))
		return
	}
	inv, err := h.invoices.Issue(c.Request.Context(), service.IssueInvoiceInput{
		OrderID:         req.OrderID,
		CustomerTaxID:   req.CustomerTaxID,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toInvoiceResponse(inv))
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(inv))
}

func (h *InvoiceHandler) ListMine(c *gin.Context) {
	list, err := h.invoices.ListMine(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, invoiceList(list))
}

func (h *InvoiceHandler) ListAll(c *gin.Context) {
	list, err := h.invoices.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, invoiceList(list))
}

func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", extractFieldErrors(err)))
		return
	}
	if err := h.invoices.UpdateStatus(c.Request.Context(), id, models.InvoiceStatus(req.Status)); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"factura_id": id, "estado": req.Status})
}

func (h *InvoiceHandler) AttachPDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AttachPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", extractFieldErrors(err)))
		return
	}
	if err := h.invoices.AttachPDF(c.Request.Context(), id, req.URL); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"factura_id": id, "pdf_url": req.URL})
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.invoices.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InvoiceHandler) Stats(c *gin.Context) {
	st, err := h.invoices.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	byStatus := make(map[string]int64, len(st.CountByStatus))
	for k, v := range st.CountByStatus {
		byStatus[string(k)] = v
	}
	c.JSON(http.StatusOK, InvoiceStatsResponse{
		Total:         st.Total,
		ThisMonth:     st.ThisMonth,
		Revenue:       st.Revenue,
		RevenueMonth:  st.RevenueMonth,
		CountByStatus: byStatus,
	})
}

func invoiceList(list []models.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for i := range list {
		out = append(out, toInvoiceResponse(&list[i]))
	}
	return out
}
