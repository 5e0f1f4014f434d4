package repository

import (
	"context"

	"checkout-service/internal/models"

	"gorm.io/gorm"
)

// CartRepo is the cart collaborator's surface as seen from checkout:
// list what the user put in, clear it after a committed order.
type CartRepo interface {
	ListByUser(ctx context.Context, userID int64) ([]models.CartLine, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) CartRepo { return &cartRepo{db: db} }

func (r *cartRepo) ListByUser(ctx context.Context, userID int64) ([]models.CartLine, error) {
	var rows []models.CartLine
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (r *cartRepo) Clear(ctx context.Context, userID int64) (int64, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartLine{})
	return tx.RowsAffected, tx.Error
}
