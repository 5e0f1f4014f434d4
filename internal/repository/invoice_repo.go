package repository

import (
	"context"
	"errors"
	"time"

	"checkout-service/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInvoiceExists reports the unique index on facturas.order_id firing;
// it is the real guard behind the service's fast-path duplicate check.
var ErrInvoiceExists = errors.New("invoice already exists for order")

type InvoiceStats struct {
	Total         int64
	ThisMonth     int64
	Revenue       decimal.Decimal
	RevenueMonth  decimal.Decimal
	CountByStatus map[models.InvoiceStatus]int64
}

type InvoiceRepo interface {
	Create(ctx context.Context, inv *models.Invoice) error
	GetByID(ctx context.Context, id int64) (*models.Invoice, error)
	GetByOrderID(ctx context.Context, orderID int64) (*models.Invoice, error)
	ListAll(ctx context.Context) ([]models.Invoice, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Invoice, error)
	UpdateStatus(ctx context.Context, id int64, status models.InvoiceStatus) (bool, error)
	UpdatePDFURL(ctx context.Context, id int64, url string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// CountForMonth feeds the per-year-month invoice number sequence.
	CountForMonth(ctx context.Context, year int, month time.Month) (int64, error)
	Stats(ctx context.Context, monthStart, monthEnd time.Time) (*InvoiceStats, error)
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepo(db *gorm.DB) InvoiceRepo { return &invoiceRepo{db: db} }

func (r *invoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	err := r.db.WithContext(ctx).Create(inv).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrInvoiceExists
	}
	return err
}

func (r *invoiceRepo) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.WithContext(ctx).Preload("Order").First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inv, err
}

func (r *invoiceRepo) GetByOrderID(ctx context.Context, orderID int64) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.WithContext(ctx).First(&inv, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inv, err
}

func (r *invoiceRepo) ListAll(ctx context.Context) ([]models.Invoice, error) {
	var list []models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Order").
		Order("issued_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *invoiceRepo) ListByUser(ctx context.Context, userID int64) ([]models.Invoice, error) {
	var list []models.Invoice
	err := r.db.WithContext(ctx).
		Joins("JOIN ordenes ON ordenes.id = facturas.order_id").
		Where("ordenes.user_id = ?", userID).
		Preload("Order").
		Order("facturas.issued_at DESC, facturas.id DESC").
		Find(&list).Error
	return list, err
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id int64, status models.InvoiceStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": gorm.Expr("now()")})
	return tx.RowsAffected > 0, tx.Error
}

func (r *invoiceRepo) UpdatePDFURL(ctx context.Context, id int64, url string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{"pdf_url": url, "updated_at": gorm.Expr("now()")})
	return tx.RowsAffected > 0, tx.Error
}

func (r *invoiceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *invoiceRepo) CountForMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("EXTRACT(YEAR FROM issued_at) = ? AND EXTRACT(MONTH FROM issued_at) = ?", year, int(month)).
		Count(&cnt).Error
	return cnt, err
}

func (r *invoiceRepo) Stats(ctx context.Context, monthStart, monthEnd time.Time) (*InvoiceStats, error) {
	st := &InvoiceStats{
		Revenue:       decimal.Zero,
		RevenueMonth:  decimal.Zero,
		CountByStatus: map[models.InvoiceStatus]int64{},
	}

	if err := r.db.WithContext(ctx).Model(&models.Invoice{}).Count(&st.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("issued_at >= ? AND issued_at <= ?", monthStart, monthEnd).
		Count(&st.ThisMonth).Error; err != nil {
		return nil, err
	}

	type sumRow struct{ Total decimal.Decimal }
	var row sumRow
	if err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Select("COALESCE(SUM(net_total),0) AS total").
		Where("status = ?", models.InvoiceStatusPaid).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	st.Revenue = row.Total

	if err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Select("COALESCE(SUM(net_total),0) AS total").
		Where("status = ? AND issued_at >= ? AND issued_at <= ?", models.InvoiceStatusPaid, monthStart, monthEnd).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	st.RevenueMonth = row.Total

	type statusRow struct {
		Status models.InvoiceStatus
		Cnt    int64
	}
	var rows []statusRow
	if err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Select("status, COUNT(*) AS cnt").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, s := range rows {
		st.CountByStatus[s.Status] = s.Cnt
	}
	return st, nil
}
