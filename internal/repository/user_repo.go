package repository

import (
	"context"
	"errors"

	"checkout-service/internal/models"

	"gorm.io/gorm"
)

// UserRepo is a read-only view of the user directory.
type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) UserRepo { return &userRepo{db: db} }

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}
