package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderLineEvent struct {
	ProductID int64           `json:"product_id"`
	Product   string          `json:"product"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderCreatedEvent struct {
	OrderID       int64            `json:"order_id"`
	UserID        int64            `json:"user_id"`
	PaymentMethod string           `json:"payment_method"`
	Total         decimal.Decimal  `json:"total"`
	Lines         []OrderLineEvent `json:"lines"`
	CreatedAt     time.Time        `json:"created_at"`
}

// EventBus publishes checkout events for downstream consumers
// (notifications, audit). Publishing is fire-and-forget from the
// caller's point of view.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
}
