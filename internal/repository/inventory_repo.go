package repository

import (
	"context"
	"errors"

	"checkout-service/internal/models"

	"gorm.io/gorm"
)

type InventoryRepo interface {
	Get(ctx context.Context, id int64) (*models.InventoryLine, error)
	// FindBySize resolves the inventory row for a (product, size name)
	// pair, with product (and brand) and size preloaded.
	FindBySize(ctx context.Context, productID int64, sizeName string) (*models.InventoryLine, error)

	// Reserve atomically decrements stock when enough is available:
	// UPDATE ... SET stock = stock - q WHERE id = ? AND stock >= q.
	// Returns false without error when stock is insufficient.
	Reserve(ctx context.Context, id int64, qty int) (bool, error)
	// Restore puts a failed reservation back.
	Restore(ctx context.Context, id int64, qty int) (bool, error)
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepo(db *gorm.DB) InventoryRepo { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Get(ctx context.Context, id int64) (*models.InventoryLine, error) {
	var line models.InventoryLine
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Product.Brand").Preload("Size").
		First(&line, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *inventoryRepo) FindBySize(ctx context.Context, productID int64, sizeName string) (*models.InventoryLine, error) {
	var line models.InventoryLine
	err := r.db.WithContext(ctx).
		Joins("JOIN tallas ON tallas.id = inventario.size_id").
		Where("inventario.product_id = ? AND tallas.name = ?", productID, sizeName).
		Preload("Product").Preload("Product.Brand").Preload("Size").
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *inventoryRepo) Reserve(ctx context.Context, id int64, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE inventario
SET stock = stock - @q,
    updated_at = now()
WHERE id = @id
  AND stock >= @q
`, map[string]any{
		"id": id,
		"q":  qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *inventoryRepo) Restore(ctx context.Context, id int64, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE inventario
SET stock = stock + @q,
    updated_at = now()
WHERE id = @id
`, map[string]any{
		"id": id,
		"q":  qty,
	})
	return tx.RowsAffected > 0, tx.Error
}
