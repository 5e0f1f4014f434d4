package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// taxRate is the flat invoice tax applied on top of the order total.
var taxRate = decimal.NewFromFloat(0.16)

type IssueInvoiceInput struct {
	OrderID         int64
	CustomerTaxID   string
	CustomerName    string
	CustomerAddress string
}

type InvoiceService interface {
	// Issue creates the one invoice an order may ever have, snapshots
	// its totals and moves the order to facturada.
	Issue(ctx context.Context, in IssueInvoiceInput) (*models.Invoice, error)
	Get(ctx context.Context, id int64) (*models.Invoice, error)
	ListMine(ctx context.Context) ([]models.Invoice, error)
	ListAll(ctx context.Context) ([]models.Invoice, error)
	UpdateStatus(ctx context.Context, id int64, status models.InvoiceStatus) error
	AttachPDF(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*repository.InvoiceStats, error)
}

type invoiceService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewInvoiceService(repo *repository.Repository, log *zap.Logger) InvoiceService {
	return &invoiceService{repo: repo, log: log, now: time.Now}
}

func (s *invoiceService) Issue(ctx context.Context, in IssueInvoiceInput) (*models.Invoice, error) {
	uid, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.UserID != uid && role != RoleAdmin {
		return nil, ErrForbidden
	}

	// Fast-path duplicate check; the unique index on order_id is the
	// actual guarantee under concurrency.
	if existing, err := s.repo.Invoices.GetByOrderID(ctx, in.OrderID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrInvoiceExists
	}

	issuedAt := s.now()
	gross := ord.Total
	tax := gross.Mul(taxRate).Round(2)
	net := gross.Add(tax)

	var inv *models.Invoice
	err = s.repo.WithTx(func(tx *repository.Repository) error {
		seq, err := tx.Invoices.CountForMonth(ctx, issuedAt.Year(), issuedAt.Month())
		if err != nil {
			return err
		}
		inv = &models.Invoice{
			OrderID:         in.OrderID,
			Number:          invoiceNumber(issuedAt, seq+1),
			IssuedAt:        issuedAt,
			CustomerTaxID:   in.CustomerTaxID,
			CustomerName:    in.CustomerName,
			CustomerAddress: in.CustomerAddress,
			GrossTotal:      gross,
			Tax:             tax,
			NetTotal:        net,
			Status:          models.InvoiceStatusIssued,
		}
		if err := tx.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		return tx.Orders.UpdateStatus(ctx, in.OrderID, models.OrderStatusInvoiced)
	})
	if errors.Is(err, repository.ErrInvoiceExists) {
		return nil, ErrInvoiceExists
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice issued",
		zap.Int64("invoice_id", inv.ID),
		zap.Int64("order_id", in.OrderID),
		zap.String("number", inv.Number),
		zap.String("net_total", net.StringFixed(2)),
	)
	return inv, nil
}

// invoiceNumber formats FAC-<year><month>-<seq>, e.g. FAC-202608-0007.
func invoiceNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("FAC-%d%02d-%04d", t.Year(), int(t.Month()), seq)
}

func (s *invoiceService) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	uid, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	inv, err := s.repo.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}
	if role != RoleAdmin {
		if inv.Order == nil || inv.Order.UserID != uid {
			return nil, ErrForbidden
		}
	}
	return inv, nil
}

func (s *invoiceService) ListMine(ctx context.Context) ([]models.Invoice, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Invoices.ListByUser(ctx, uid)
}

func (s *invoiceService) ListAll(ctx context.Context) ([]models.Invoice, error) {
	if _, role, err := requireAuth(ctx); err != nil {
		return nil, err
	} else if role != RoleAdmin {
		return nil, ErrForbidden
	}
	return s.repo.Invoices.ListAll(ctx)
}

func (s *invoiceService) UpdateStatus(ctx context.Context, id int64, status models.InvoiceStatus) error {
	if _, role, err := requireAuth(ctx); err != nil {
		return err
	} else if role != RoleAdmin {
		return ErrForbidden
	}
	if !KnownInvoiceStatus(status) {
		return ErrInvalidStatus
	}
	ok, err := s.repo.Invoices.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvoiceNotFound
	}
	return nil
}

func (s *invoiceService) AttachPDF(ctx context.Context, id int64, url string) error {
	if _, role, err := requireAuth(ctx); err != nil {
		return err
	} else if role != RoleAdmin {
		return ErrForbidden
	}
	ok, err := s.repo.Invoices.UpdatePDFURL(ctx, id, url)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvoiceNotFound
	}
	return nil
}

func (s *invoiceService) Delete(ctx context.Context, id int64) error {
	if _, role, err := requireAuth(ctx); err != nil {
		return err
	} else if role != RoleAdmin {
		return ErrForbidden
	}
	ok, err := s.repo.Invoices.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvoiceNotFound
	}
	s.log.Info("invoice deleted", zap.Int64("invoice_id", id))
	return nil
}

func (s *invoiceService) Stats(ctx context.Context) (*repository.InvoiceStats, error) {
	if _, role, err := requireAuth(ctx); err != nil {
		return nil, err
	} else if role != RoleAdmin {
		return nil, ErrForbidden
	}
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return s.repo.Invoices.Stats(ctx, monthStart, monthEnd)
}
