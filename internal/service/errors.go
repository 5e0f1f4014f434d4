package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrOrderNotFound   = errors.New("order not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrLineNotFound    = errors.New("order line not found")

	ErrEmptyCart       = errors.New("cart is empty")
	ErrQuantityInvalid = errors.New("quantity must be >= 1")
	ErrInvalidStatus   = errors.New("invalid status value")

	// Payment confirmation requires a pendiente order with no reference.
	ErrPaymentAlreadyInitiated = errors.New("payment already initiated or processed for this order")

	ErrInvoiceExists      = errors.New("invoice already exists for this order")
	ErrReplicatorDisabled = errors.New("sales store is not configured")
)

// ProductNotFoundError names the cart line that did not resolve to an
// inventory row, so the client can re-render the cart.
type ProductNotFoundError struct {
	ProductID int64
	Size      string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d in size %q not found", e.ProductID, e.Size)
}

// InsufficientStockError carries everything the client needs to show
// the shopper what is still available.
type InsufficientStockError struct {
	ProductID int64
	Product   string
	Size      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q size %q: requested %d, available %d",
		e.Product, e.Size, e.Requested, e.Available)
}
