package service

import (
	"context"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderSummary struct {
	OrderID       int64
	Total         decimal.Decimal
	Status        models.OrderStatus
	PaymentMethod string
	Reference     *string
	OrderedAt     time.Time
}

type OrderLineDetail struct {
	LineID    int64
	ProductID int64
	Product   string
	Brand     string
	Size      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Status    models.LineStatus
	Display   StatusDisplay
}

type OrderDetail struct {
	OrderID         int64
	UserID          int64
	Total           decimal.Decimal
	Status          models.OrderStatus
	ShippingAddress string
	PaymentMethod   string
	Reference       *string
	OrderedAt       time.Time
	Lines           []OrderLineDetail
}

type OrderService interface {
	ListOrders(ctx context.Context) ([]OrderSummary, error)
	GetOrderDetail(ctx context.Context, orderID int64) (*OrderDetail, error)
	// UpdateLineStatus is the operator's lever on the fulfillment
	// pipeline. Admin only; any known status is accepted.
	UpdateLineStatus(ctx context.Context, orderID, lineID int64, status models.LineStatus) (*OrderLineDetail, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{repo: repo, log: log}
}

func (s *orderService) ListOrders(ctx context.Context) ([]OrderSummary, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.Orders.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := make([]OrderSummary, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		out = append(out, OrderSummary{
			OrderID:       o.ID,
			Total:         o.Total,
			Status:        o.Status,
			PaymentMethod: o.PaymentMethod,
			Reference:     o.Reference,
			OrderedAt:     o.OrderedAt,
		})
	}
	return out, nil
}

func (s *orderService) GetOrderDetail(ctx context.Context, orderID int64) (*OrderDetail, error) {
	uid, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var ord *models.Order
	if role == RoleAdmin {
		ord, err = s.repo.Orders.GetByID(ctx, orderID)
	} else {
		ord, err = s.repo.Orders.GetByIDForUser(ctx, orderID, uid)
	}
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	detail := &OrderDetail{
		OrderID:         ord.ID,
		UserID:          ord.UserID,
		Total:           ord.Total,
		Status:          ord.Status,
		ShippingAddress: ord.ShippingAddress,
		PaymentMethod:   ord.PaymentMethod,
		Reference:       ord.Reference,
		OrderedAt:       ord.OrderedAt,
		Lines:           make([]OrderLineDetail, 0, len(ord.Lines)),
	}
	for i := range ord.Lines {
		detail.Lines = append(detail.Lines, lineDetail(&ord.Lines[i]))
	}
	return detail, nil
}

func (s *orderService) UpdateLineStatus(ctx context.Context, orderID, lineID int64, status models.LineStatus) (*OrderLineDetail, error) {
	_, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if role != RoleAdmin {
		return nil, ErrForbidden
	}
	if !KnownLineStatus(status) {
		return nil, ErrInvalidStatus
	}

	lines, err := s.repo.OrderLines.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	var target *models.OrderLine
	for i := range lines {
		if lines[i].ID == lineID {
			target = &lines[i]
			break
		}
	}
	if target == nil {
		return nil, ErrLineNotFound
	}

	ok, err := s.repo.OrderLines.UpdateStatus(ctx, lineID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLineNotFound
	}
	target.Status = status

	s.log.Info("order line status updated",
		zap.Int64("order_id", orderID),
		zap.Int64("line_id", lineID),
		zap.String("status", string(status)),
	)
	d := lineDetail(target)
	return &d, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	_, role, err := requireAuth(ctx)
	if err != nil {
		return err
	}
	if role != RoleAdmin {
		return ErrForbidden
	}
	switch status {
	case models.OrderStatusPending, models.OrderStatusProcessingPay, models.OrderStatusProcessed,
		models.OrderStatusCompleted, models.OrderStatusInvoiced, models.OrderStatusCancelled:
	default:
		return ErrInvalidStatus
	}
	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return ErrOrderNotFound
	}
	return s.repo.Orders.UpdateStatus(ctx, orderID, status)
}

func lineDetail(l *models.OrderLine) OrderLineDetail {
	d := OrderLineDetail{
		LineID:    l.ID,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Subtotal:  l.Subtotal(),
		Status:    l.Status,
		Display:   DisplayForLineStatus(l.Status),
	}
	if l.InventoryLine != nil {
		d.ProductID = l.InventoryLine.ProductID
		if l.InventoryLine.Product != nil {
			d.Product = l.InventoryLine.Product.Name
			if l.InventoryLine.Product.Brand != nil {
				d.Brand = l.InventoryLine.Product.Brand.Name
			}
		}
		if l.InventoryLine.Size != nil {
			d.Size = l.InventoryLine.Size.Name
		}
	}
	return d
}
