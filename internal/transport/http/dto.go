package http

import (
	"errors"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// BaseError is the wire shape for every error response.
// Code is machine-oriented (snake_case), Message is for humans, Fields
// carries per-field validation failures.
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

func NewValidationError(msg string, fields []FieldError) BaseError {
	return BaseError{Code: "validation_error", Message: msg, Fields: fields}
}
func NewUnauthorizedError(msg string) BaseError {
	return BaseError{Code: "unauthorized", Message: msg}
}
func NewForbiddenError(msg string) BaseError {
	return BaseError{Code: "forbidden", Message: msg}
}
func NewNotFoundError(msg string) BaseError {
	return BaseError{Code: "not_found", Message: msg}
}
func NewConflictError(msg string) BaseError {
	return BaseError{Code: "conflict", Message: msg}
}
func NewInternalError(details string) BaseError {
	return BaseError{Code: "internal_error", Message: "internal server error", Details: details}
}

// extractFieldErrors turns validator failures from binding into the
// wire shape; non-validator errors yield an empty slice.
func extractFieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: "failed on " + fe.Tag(),
			Tag:     fe.Tag(),
		})
	}
	return out
}

type CheckoutLineRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Size      string `json:"talla" binding:"required"`
	Quantity  int    `json:"cantidad" binding:"required,min=1"`
}

type CheckoutRequest struct {
	ShippingAddress string                `json:"direccion_envio" binding:"required,min=5"`
	PaymentMethod   string                `json:"metodo_pago" binding:"required"`
	CardNumber      string                `json:"numero_tarjeta"`
	Lines           []CheckoutLineRequest `json:"detalles" binding:"required,min=1,dive"`
}

type CheckoutLineResponse struct {
	Product   string          `json:"producto"`
	Brand     string          `json:"marca"`
	Size      string          `json:"talla"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Status    string          `json:"estado"`
}

type CheckoutResponse struct {
	OrderID   int64                  `json:"orden_id"`
	Total     decimal.Decimal        `json:"total"`
	Status    string                 `json:"estado"`
	Reference *string                `json:"referencia,omitempty"`
	OrderedAt time.Time              `json:"fecha"`
	Lines     []CheckoutLineResponse `json:"detalles"`
}

type ConfirmPaymentRequest struct {
	OrderID    int64  `json:"orden_id" binding:"required"`
	Method     string `json:"metodo_pago"`
	CardNumber string `json:"numero_tarjeta"`
}

type ConfirmPaymentResponse struct {
	OrderID   int64  `json:"orden_id"`
	Reference string `json:"referencia"`
	Status    string `json:"estado"`
}

type PaymentResponse struct {
	OrderID   int64     `json:"orden_id"`
	Method    string    `json:"metodo_pago"`
	Status    string    `json:"estado"`
	Reference string    `json:"referencia"`
	CardBrand *string   `json:"marca_tarjeta,omitempty"`
	CardLast4 *string   `json:"ultimos4,omitempty"`
	CreatedAt time.Time `json:"creado_en"`
}

type OrderSummaryResponse struct {
	OrderID       int64           `json:"orden_id"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"estado"`
	PaymentMethod string          `json:"metodo_pago"`
	Reference     *string         `json:"referencia,omitempty"`
	OrderedAt     time.Time       `json:"fecha"`
}

type OrderLineResponse struct {
	LineID    int64                 `json:"detalle_id"`
	ProductID int64                 `json:"product_id"`
	Product   string                `json:"producto"`
	Brand     string                `json:"marca"`
	Size      string                `json:"talla"`
	Quantity  int                   `json:"cantidad"`
	UnitPrice decimal.Decimal       `json:"precio_unitario"`
	Subtotal  decimal.Decimal       `json:"subtotal"`
	Status    string                `json:"estado"`
	Display   service.StatusDisplay `json:"display"`
}

type OrderDetailResponse struct {
	OrderID         int64               `json:"orden_id"`
	Total           decimal.Decimal     `json:"total"`
	Status          string              `json:"estado"`
	ShippingAddress string              `json:"direccion_envio"`
	PaymentMethod   string              `json:"metodo_pago"`
	Reference       *string             `json:"referencia,omitempty"`
	OrderedAt       time.Time           `json:"fecha"`
	Lines           []OrderLineResponse `json:"detalles"`
}

type UpdateStatusRequest struct {
	Status string `json:"estado" binding:"required"`
}

type IssueInvoiceRequest struct {
	OrderID         int64  `json:"orden_id" binding:"required"`
	CustomerTaxID   string `json:"rfc" binding:"required,numeric,min=5,max=20"`
	CustomerName    string `json:"nombre" binding:"required,min=3,max=255"`
	CustomerAddress string `json:"direccion" binding:"required,min=5"`
}

type AttachPDFRequest struct {
	URL string `json:"pdf_url" binding:"required,url"`
}

type InvoiceResponse struct {
	ID              int64           `json:"factura_id"`
	OrderID         int64           `json:"orden_id"`
	Number          string          `json:"numero"`
	IssuedAt        time.Time       `json:"fecha_emision"`
	CustomerTaxID   string          `json:"rfc"`
	CustomerName    string          `json:"nombre"`
	CustomerAddress string          `json:"direccion"`
	GrossTotal      decimal.Decimal `json:"total"`
	Tax             decimal.Decimal `json:"impuesto"`
	NetTotal        decimal.Decimal `json:"total_neto"`
	Status          string          `json:"estado"`
	PDFURL          *string         `json:"pdf_url,omitempty"`
}

type InvoiceStatsResponse struct {
	Total         int64            `json:"total_facturas"`
	ThisMonth     int64            `json:"facturas_mes"`
	Revenue       decimal.Decimal  `json:"ingresos"`
	RevenueMonth  decimal.Decimal  `json:"ingresos_mes"`
	CountByStatus map[string]int64 `json:"por_estado"`
}

type SaleFactResponse struct {
	OrderID       int64           `json:"orden_id"`
	ProductName   string          `json:"producto"`
	Brand         string          `json:"marca"`
	Size          string          `json:"talla"`
	Quantity      int             `json:"cantidad"`
	UnitPrice     decimal.Decimal `json:"precio_unitario"`
	LineTotal     decimal.Decimal `json:"total_linea"`
	OrderedAt     time.Time       `json:"fecha"`
	PaymentMethod string          `json:"metodo_pago"`
	UserEmail     string          `json:"correo"`
}

type ProductSalesResponse struct {
	Product    string          `json:"producto"`
	TotalUnits int64           `json:"unidades"`
	TotalSales decimal.Decimal `json:"total_ventas"`
}

func toInvoiceResponse(inv *models.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		OrderID:         inv.OrderID,
		Number:          inv.Number,
		IssuedAt:        inv.IssuedAt,
		CustomerTaxID:   inv.CustomerTaxID,
		CustomerName:    inv.CustomerName,
		CustomerAddress: inv.CustomerAddress,
		GrossTotal:      inv.GrossTotal,
		Tax:             inv.Tax,
		NetTotal:        inv.NetTotal,
		Status:          string(inv.Status),
		PDFURL:          inv.PDFURL,
	}
}
