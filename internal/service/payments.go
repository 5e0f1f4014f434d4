package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"

	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxReferenceAttempts bounds the retry loop on reference collisions.
// Collisions are astronomically rare; hitting the bound is a bug signal.
const maxReferenceAttempts = 5

// generateReference builds REF-<yyyymmddhhmmss>-<4 random digits>.
func generateReference(now time.Time) (string, error) {
	rng, err := nanorand.Gen(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("REF-%s-%s", now.UTC().Format("20060102150405"), rng), nil
}

// DetectCardBrand classifies a card number by its prefix. Only the
// brand and last four digits are ever stored.
func DetectCardBrand(number string) string {
	n := strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	switch {
	case strings.HasPrefix(n, "4"):
		return "Visa"
	case len(n) >= 2 && n[0] == '5' && n[1] >= '1' && n[1] <= '5':
		return "Mastercard"
	case strings.HasPrefix(n, "34"), strings.HasPrefix(n, "37"):
		return "American Express"
	case strings.HasPrefix(n, "6011"):
		return "Discover"
	default:
		return "Desconocida"
	}
}

func cardLast4(number string) string {
	n := strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}

// cardSnapshot returns the brand/last4 pair to persist, or nils when no
// card number was supplied.
func cardSnapshot(number string) (brand, last4 *string) {
	if strings.TrimSpace(number) == "" {
		return nil, nil
	}
	b := DetectCardBrand(number)
	l := cardLast4(number)
	return &b, &l
}

type ConfirmPaymentInput struct {
	OrderID    int64
	Method     string
	CardNumber string
}

type PaymentConfirmation struct {
	OrderID   int64
	Reference string
	Status    models.OrderStatus
}

type PaymentService interface {
	ConfirmPayment(ctx context.Context, in ConfirmPaymentInput) (*PaymentConfirmation, error)
	GetPayment(ctx context.Context, orderID int64) (*models.PaymentDetail, error)
}

type paymentService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewPaymentService(repo *repository.Repository, log *zap.Logger) PaymentService {
	return &paymentService{repo: repo, log: log, now: time.Now}
}

// ConfirmPayment claims a pendiente order for payment: it stamps a
// unique reference, records a pendiente payment row and moves the order
// to procesando_pago, all in one transaction. A second confirmation for
// the same order loses the guard and gets ErrPaymentAlreadyInitiated.
func (s *paymentService) ConfirmPayment(ctx context.Context, in ConfirmPaymentInput) (*PaymentConfirmation, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	method := strings.TrimSpace(in.Method)
	if method == "" {
		method = PaymentMethodCard
	}
	brand, last4 := cardSnapshot(in.CardNumber)

	var out *PaymentConfirmation
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		ref, err := generateReference(s.now())
		if err != nil {
			return nil, err
		}

		err = s.repo.WithTx(func(tx *repository.Repository) error {
			ord, err := tx.Orders.GetByID(ctx, in.OrderID)
			if err != nil {
				return err
			}
			if ord == nil {
				return ErrOrderNotFound
			}
			if ord.UserID != uid {
				return ErrForbidden
			}
			if ord.Status != models.OrderStatusPending || ord.Reference != nil {
				return ErrPaymentAlreadyInitiated
			}

			claimed, err := tx.Orders.BeginPayment(ctx, in.OrderID, uid, ref, models.OrderStatusProcessingPay)
			if err != nil {
				return err
			}
			if !claimed {
				return ErrPaymentAlreadyInitiated
			}

			return tx.Payments.Create(ctx, &models.PaymentDetail{
				OrderID:   in.OrderID,
				Method:    method,
				Status:    models.PaymentStatusPending,
				Reference: ref,
				CardBrand: brand,
				CardLast4: last4,
			})
		})
		if errors.Is(err, repository.ErrDuplicateReference) || errors.Is(err, gorm.ErrDuplicatedKey) {
			s.log.Warn("payment reference collision, retrying",
				zap.Int64("order_id", in.OrderID),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		out = &PaymentConfirmation{
			OrderID:   in.OrderID,
			Reference: ref,
			Status:    models.OrderStatusProcessingPay,
		}
		break
	}
	if out == nil {
		return nil, fmt.Errorf("could not allocate a unique payment reference after %d attempts", maxReferenceAttempts)
	}

	s.log.Info("payment initiated",
		zap.Int64("order_id", out.OrderID),
		zap.String("reference", out.Reference),
	)
	return out, nil
}

func (s *paymentService) GetPayment(ctx context.Context, orderID int64) (*models.PaymentDetail, error) {
	uid, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.UserID != uid && role != RoleAdmin {
		return nil, ErrForbidden
	}
	p, err := s.repo.Payments.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrOrderNotFound
	}
	return p, nil
}
