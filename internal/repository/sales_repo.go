package repository

import (
	"context"

	"checkout-service/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductSales struct {
	Product    string
	TotalUnits int64
	TotalSales decimal.Decimal
}

// SalesRepo writes to the analytical store. It is bound to its own
// gorm.DB and never participates in the primary store's transactions.
type SalesRepo interface {
	BulkInsert(ctx context.Context, facts []models.SaleFact) error
	ExistsForOrder(ctx context.Context, orderID int64) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]models.SaleFact, error)
	ReportByProduct(ctx context.Context) ([]ProductSales, error)
}

type salesRepo struct{ db *gorm.DB }

func NewSalesRepo(db *gorm.DB) SalesRepo { return &salesRepo{db: db} }

func (r *salesRepo) BulkInsert(ctx context.Context, facts []models.SaleFact) error {
	if len(facts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&facts).Error
}

func (r *salesRepo) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.SaleFact{}).
		Where("order_id = ?", orderID).Count(&cnt).Error
	return cnt > 0, err
}

func (r *salesRepo) ListRecent(ctx context.Context, limit int) ([]models.SaleFact, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []models.SaleFact
	err := r.db.WithContext(ctx).
		Order("ordered_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *salesRepo) ReportByProduct(ctx context.Context) ([]ProductSales, error) {
	var rows []ProductSales
	err := r.db.WithContext(ctx).Model(&models.SaleFact{}).
		Select("product_name AS product, SUM(quantity) AS total_units, SUM(line_total) AS total_sales").
		Group("product_name").
		Order("total_sales DESC").
		Scan(&rows).Error
	return rows, err
}
