package service

import (
	"context"
	"fmt"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"

	"go.uber.org/zap"
)

// replicateTimeout caps how long a checkout waits on the analytical
// store before giving up on the projection.
const replicateTimeout = 5 * time.Second

type SalesService interface {
	Replicator
	// Resync re-projects an already committed order whose sale facts
	// are missing, typically after an analytics outage.
	Resync(ctx context.Context, orderID int64) (int, error)
	ListRecent(ctx context.Context, limit int) ([]models.SaleFact, error)
	Report(ctx context.Context) ([]repository.ProductSales, error)
}

type salesReplicator struct {
	primary *repository.Repository
	sales   repository.SalesRepo // nil when the store is not configured
	log     *zap.Logger
}

func NewSalesReplicator(primary *repository.Repository, sales repository.SalesRepo, log *zap.Logger) SalesService {
	return &salesReplicator{primary: primary, sales: sales, log: log}
}

// Replicate projects one committed order into hecho_ventas. It never
// returns an error: the outcome is reported and the caller decides how
// loudly to log it. A failure here must not disturb the sale.
func (s *salesReplicator) Replicate(ctx context.Context, order *models.Order, lines []models.OrderLine) ReplicationOutcome {
	if s.sales == nil {
		return ReplicationFailed("sales store not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, replicateTimeout)
	defer cancel()

	email := ""
	if u, err := s.primary.Users.GetByID(ctx, order.UserID); err != nil {
		s.log.Warn("could not resolve buyer for sale facts", zap.Int64("user_id", order.UserID), zap.Error(err))
	} else if u != nil {
		email = u.Email
	}

	facts := buildSaleFacts(order, lines, email)
	if len(facts) == 0 {
		return ReplicationFailed("order has no lines to project")
	}
	if err := s.sales.BulkInsert(ctx, facts); err != nil {
		return ReplicationFailed(err.Error())
	}
	return ReplicationOK(len(facts))
}

func (s *salesReplicator) Resync(ctx context.Context, orderID int64) (int, error) {
	if _, role, err := requireAuth(ctx); err != nil {
		return 0, err
	} else if role != RoleAdmin {
		return 0, ErrForbidden
	}
	if s.sales == nil {
		return 0, ErrReplicatorDisabled
	}

	ord, err := s.primary.Orders.GetByID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if ord == nil {
		return 0, ErrOrderNotFound
	}

	exists, err := s.sales.ExistsForOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}

	outcome := s.Replicate(ctx, ord, ord.Lines)
	if !outcome.OK {
		return 0, fmt.Errorf("re-projection failed: %s", outcome.Reason)
	}
	s.log.Info("order re-projected into sales store",
		zap.Int64("order_id", orderID),
		zap.Int("rows", outcome.Rows),
	)
	return outcome.Rows, nil
}

func (s *salesReplicator) ListRecent(ctx context.Context, limit int) ([]models.SaleFact, error) {
	if _, role, err := requireAuth(ctx); err != nil {
		return nil, err
	} else if role != RoleAdmin {
		return nil, ErrForbidden
	}
	if s.sales == nil {
		return nil, ErrReplicatorDisabled
	}
	return s.sales.ListRecent(ctx, limit)
}

func (s *salesReplicator) Report(ctx context.Context) ([]repository.ProductSales, error) {
	if _, role, err := requireAuth(ctx); err != nil {
		return nil, err
	} else if role != RoleAdmin {
		return nil, ErrForbidden
	}
	if s.sales == nil {
		return nil, ErrReplicatorDisabled
	}
	return s.sales.ReportByProduct(ctx)
}

func buildSaleFacts(order *models.Order, lines []models.OrderLine, email string) []models.SaleFact {
	facts := make([]models.SaleFact, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		f := models.SaleFact{
			OrderID:       order.ID,
			UserID:        order.UserID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			LineTotal:     l.Subtotal(),
			OrderedAt:     order.OrderedAt,
			PaymentMethod: order.PaymentMethod,
			UserEmail:     email,
		}
		if l.InventoryLine != nil {
			f.ProductID = l.InventoryLine.ProductID
			if l.InventoryLine.Product != nil {
				f.ProductName = l.InventoryLine.Product.Name
				if l.InventoryLine.Product.Brand != nil {
					f.Brand = l.InventoryLine.Product.Brand.Name
				}
			}
			if l.InventoryLine.Size != nil {
				f.Size = l.InventoryLine.Size.Name
			}
		}
		facts = append(facts, f)
	}
	return facts
}
