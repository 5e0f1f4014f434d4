package repository

import (
	"context"
	"errors"

	"checkout-service/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateReference reports a payment reference collision; callers
// retry with a fresh reference, the stored row is never overwritten.
var ErrDuplicateReference = errors.New("payment reference already exists")

type PaymentRepo interface {
	Create(ctx context.Context, p *models.PaymentDetail) error
	GetByOrderID(ctx context.Context, orderID int64) (*models.PaymentDetail, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepo(db *gorm.DB) PaymentRepo { return &paymentRepo{db: db} }

func (r *paymentRepo) Create(ctx context.Context, p *models.PaymentDetail) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateReference
	}
	return err
}

func (r *paymentRepo) GetByOrderID(ctx context.Context, orderID int64) (*models.PaymentDetail, error) {
	var p models.PaymentDetail
	err := r.db.WithContext(ctx).First(&p, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *paymentRepo) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.PaymentDetail{}).
		Where("reference = ?", reference).Count(&cnt).Error
	return cnt > 0, err
}
