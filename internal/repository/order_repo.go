package repository

import (
	"context"
	"errors"

	"checkout-service/internal/models"

	"gorm.io/gorm"
)

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetByIDForUser(ctx context.Context, id, userID int64) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
	// BeginPayment claims the order for payment: sets the reference and
	// moves it to the given status, but only while the order is still
	// pendiente with no reference. Returns false when the guard fails.
	BeginPayment(ctx context.Context, id, userID int64, reference string, status models.OrderStatus) (bool, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.InventoryLine").
		Preload("Lines.InventoryLine.Product").
		Preload("Lines.InventoryLine.Product.Brand").
		Preload("Lines.InventoryLine.Size").
		First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.InventoryLine").
		Preload("Lines.InventoryLine.Product").
		Preload("Lines.InventoryLine.Product.Brand").
		Preload("Lines.InventoryLine.Size").
		First(&ord, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var list []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("ordered_at DESC").
		Find(&list).Error
	return list, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": gorm.Expr("now()")}).Error
}

func (r *orderRepo) BeginPayment(ctx context.Context, id, userID int64, reference string, status models.OrderStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE ordenes
SET reference = @ref,
    status = @status,
    updated_at = now()
WHERE id = @id
  AND user_id = @uid
  AND status = 'pendiente'
  AND reference IS NULL
`, map[string]any{
		"ref":    reference,
		"status": status,
		"id":     id,
		"uid":    userID,
	})
	return tx.RowsAffected > 0, tx.Error
}
