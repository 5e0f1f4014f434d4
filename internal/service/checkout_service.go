package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type checkoutService struct {
	repo       *repository.Repository
	replicator Replicator
	events     EventBus
	log        *zap.Logger
	now        func() time.Time
}

func NewCheckoutService(repo *repository.Repository, replicator Replicator, events EventBus, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo:       repo,
		replicator: replicator,
		events:     events,
		log:        log,
		now:        time.Now,
	}
}

// Checkout builds the order aggregate in one transaction: every line
// reserves stock atomically, prices are captured server-side and the
// total is recomputed from them. Any failure rolls the whole aggregate
// back, reservations included. Card payments take the fast path and
// come out procesado with a payment row already attached.
func (s *checkoutService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if len(in.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, l := range in.Lines {
		if l.Quantity < 1 {
			return nil, ErrQuantityInvalid
		}
	}

	cardPath := strings.TrimSpace(in.PaymentMethod) == PaymentMethodCard
	brand, last4 := cardSnapshot(in.CardNumber)

	var result *CheckoutResult
	var order *models.Order
	var lines []models.OrderLine

	// The reference unique index can collide on the card fast path; a
	// collision aborts the transaction, so the whole checkout reruns
	// with a fresh reference.
	attempts := 1
	if cardPath {
		attempts = maxReferenceAttempts
	}
	for attempt := 0; attempt < attempts; attempt++ {
		var ref string
		if cardPath {
			if ref, err = generateReference(s.now()); err != nil {
				return nil, err
			}
		}

		order, lines, result = nil, nil, nil
		err = s.repo.WithTx(func(tx *repository.Repository) error {
			o, ls, res, err := s.buildAggregate(ctx, tx, uid, in, ref, cardPath, brand, last4)
			if err != nil {
				return err
			}
			order, lines, result = o, ls, res
			return nil
		})
		if cardPath && (errors.Is(err, repository.ErrDuplicateReference) || errors.Is(err, gorm.ErrDuplicatedKey)) {
			s.log.Warn("checkout reference collision, retrying", zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}
	if result == nil {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("could not allocate a unique payment reference after %d attempts", maxReferenceAttempts)
	}

	s.log.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", uid),
		zap.String("status", string(order.Status)),
		zap.String("total", order.Total.StringFixed(2)),
	)

	// Everything past the commit is best effort: the order already
	// exists and none of these may undo it.
	if n, err := s.repo.Carts.Clear(ctx, uid); err != nil {
		s.log.Warn("cart clear failed after checkout", zap.Int64("user_id", uid), zap.Error(err))
	} else if n > 0 {
		s.log.Debug("cart cleared", zap.Int64("user_id", uid), zap.Int64("rows", n))
	}

	if s.replicator != nil {
		outcome := s.replicator.Replicate(ctx, order, lines)
		if outcome.OK {
			s.log.Info("sale replicated", zap.Int64("order_id", order.ID), zap.Int("rows", outcome.Rows))
		} else {
			s.log.Warn("sale replication failed",
				zap.Int64("order_id", order.ID),
				zap.String("reason", outcome.Reason),
			)
		}
	}

	if s.events != nil {
		_ = s.events.PublishOrderCreated(ctx, buildOrderCreatedEvent(order, lines))
	}

	return result, nil
}

// buildAggregate does the in-transaction work: resolve inventory,
// reserve stock, freeze prices, persist order and lines, and on the
// card path record the payment.
func (s *checkoutService) buildAggregate(
	ctx context.Context,
	tx *repository.Repository,
	uid int64,
	in CheckoutInput,
	ref string,
	cardPath bool,
	brand, last4 *string,
) (*models.Order, []models.OrderLine, *CheckoutResult, error) {
	lineStatus := models.LineStatusPending
	orderStatus := models.OrderStatusPending
	if cardPath {
		lineStatus = models.LineStatusProcessed
		orderStatus = models.OrderStatusProcessed
	}

	total := decimal.Zero
	lines := make([]models.OrderLine, 0, len(in.Lines))
	resLines := make([]CheckoutLineResult, 0, len(in.Lines))

	for _, l := range in.Lines {
		inv, err := tx.Inventory.FindBySize(ctx, l.ProductID, l.Size)
		if err != nil {
			return nil, nil, nil, err
		}
		if inv == nil {
			return nil, nil, nil, &ProductNotFoundError{ProductID: l.ProductID, Size: l.Size}
		}

		ok, err := tx.Inventory.Reserve(ctx, inv.ID, l.Quantity)
		if err != nil {
			return nil, nil, nil, err
		}
		if !ok {
			return nil, nil, nil, &InsufficientStockError{
				ProductID: l.ProductID,
				Product:   inv.Product.Name,
				Size:      l.Size,
				Requested: l.Quantity,
				Available: inv.Stock,
			}
		}

		price := inv.Product.Price
		subtotal := price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		total = total.Add(subtotal)

		lines = append(lines, models.OrderLine{
			InventoryLineID: inv.ID,
			Quantity:        l.Quantity,
			UnitPrice:       price,
			Status:          lineStatus,
			InventoryLine:   inv,
		})

		brandName := ""
		if inv.Product.Brand != nil {
			brandName = inv.Product.Brand.Name
		}
		resLines = append(resLines, CheckoutLineResult{
			Product:   inv.Product.Name,
			Brand:     brandName,
			Size:      inv.Size.Name,
			Quantity:  l.Quantity,
			UnitPrice: price,
			Subtotal:  subtotal,
			Status:    lineStatus,
		})
	}

	order := &models.Order{
		UserID:          uid,
		Total:           total,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Status:          orderStatus,
		OrderedAt:       s.now(),
	}
	if cardPath {
		order.Reference = &ref
	}
	if err := tx.Orders.Create(ctx, order); err != nil {
		return nil, nil, nil, err
	}

	for i := range lines {
		lines[i].OrderID = order.ID
	}
	if err := tx.OrderLines.BulkCreate(ctx, lines); err != nil {
		return nil, nil, nil, err
	}

	if cardPath {
		err := tx.Payments.Create(ctx, &models.PaymentDetail{
			OrderID:   order.ID,
			Method:    in.PaymentMethod,
			Status:    models.PaymentStatusProcessed,
			Reference: ref,
			CardBrand: brand,
			CardLast4: last4,
		})
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return order, lines, &CheckoutResult{
		OrderID:   order.ID,
		Total:     total,
		Status:    order.Status,
		Reference: order.Reference,
		OrderedAt: order.OrderedAt,
		Lines:     resLines,
	}, nil
}

func buildOrderCreatedEvent(order *models.Order, lines []models.OrderLine) OrderCreatedEvent {
	evLines := make([]OrderLineEvent, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		ev := OrderLineEvent{
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		}
		if l.InventoryLine != nil {
			ev.ProductID = l.InventoryLine.ProductID
			if l.InventoryLine.Product != nil {
				ev.Product = l.InventoryLine.Product.Name
			}
			if l.InventoryLine.Size != nil {
				ev.Size = l.InventoryLine.Size.Name
			}
		}
		evLines = append(evLines, ev)
	}
	return OrderCreatedEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		PaymentMethod: order.PaymentMethod,
		Total:         order.Total,
		Lines:         evLines,
		CreatedAt:     order.OrderedAt,
	}
}
