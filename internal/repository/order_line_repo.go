package repository

import (
	"context"
	"errors"

	"checkout-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderLineRepo interface {
	BulkCreate(ctx context.Context, lines []models.OrderLine) error
	GetByOrderID(ctx context.Context, orderID int64) ([]models.OrderLine, error)
	UpdateStatus(ctx context.Context, id int64, status models.LineStatus) (bool, error)
	UpdateStatusByOrder(ctx context.Context, orderID int64, status models.LineStatus) error
}

type orderLineRepo struct{ db *gorm.DB }

func NewOrderLineRepo(db *gorm.DB) OrderLineRepo { return &orderLineRepo{db: db} }

// BulkCreate inserts the lines only; preloaded associations on the
// structs are never written back to the catalog tables.
func (r *orderLineRepo) BulkCreate(ctx context.Context, lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&lines).Error
}

func (r *orderLineRepo) GetByOrderID(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	var rows []models.OrderLine
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Preload("InventoryLine").
		Preload("InventoryLine.Product").
		Preload("InventoryLine.Product.Brand").
		Preload("InventoryLine.Size").
		Find(&rows).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return rows, err
}

func (r *orderLineRepo) UpdateStatus(ctx context.Context, id int64, status models.LineStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.OrderLine{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": gorm.Expr("now()")})
	return tx.RowsAffected > 0, tx.Error
}

func (r *orderLineRepo) UpdateStatusByOrder(ctx context.Context, orderID int64, status models.LineStatus) error {
	return r.db.WithContext(ctx).Model(&models.OrderLine{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{"status": status, "updated_at": gorm.Expr("now()")}).Error
}
