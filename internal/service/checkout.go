package service

import (
	"context"
	"time"

	"checkout-service/internal/models"

	"github.com/shopspring/decimal"
)

const PaymentMethodCard = "tarjeta"

type CheckoutLine struct {
	ProductID int64
	Size      string
	Quantity  int
}

type CheckoutInput struct {
	ShippingAddress string
	PaymentMethod   string
	// CardNumber is only consulted for the card fast path; it is never
	// persisted or logged, only brand and last4 survive.
	CardNumber string
	Lines      []CheckoutLine
}

type CheckoutLineResult struct {
	Product   string
	Brand     string
	Size      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Status    models.LineStatus
}

type CheckoutResult struct {
	OrderID   int64
	Total     decimal.Decimal
	Status    models.OrderStatus
	Reference *string
	OrderedAt time.Time
	Lines     []CheckoutLineResult
}

type CheckoutService interface {
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
}

// ReplicationOutcome makes the replicator's fire-and-forget tolerance
// explicit: the caller logs it and moves on, it never propagates.
type ReplicationOutcome struct {
	OK     bool
	Rows   int
	Reason string
}

func ReplicationOK(rows int) ReplicationOutcome { return ReplicationOutcome{OK: true, Rows: rows} }

func ReplicationFailed(reason string) ReplicationOutcome {
	return ReplicationOutcome{OK: false, Reason: reason}
}

// Replicator projects a committed order into the analytical store.
// Invoked strictly after the primary transaction commits.
type Replicator interface {
	Replicate(ctx context.Context, order *models.Order, lines []models.OrderLine) ReplicationOutcome
}
