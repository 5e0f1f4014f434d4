package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleFact is a write-once projection row in the analytical store, one
// per order line of a completed checkout. Product, brand, size and
// buyer email are resolved at sale time; nothing here is a live
// reference back into the operational model.
type SaleFact struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	OrderID       int64           `gorm:"not null;index"`
	UserID        int64           `gorm:"not null"`
	ProductID     int64           `gorm:"not null"`
	ProductName   string          `gorm:"type:varchar(200)"`
	Brand         string          `gorm:"type:varchar(100)"`
	Size          string          `gorm:"type:varchar(10)"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	LineTotal     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	OrderedAt     time.Time       `gorm:"not null;index"`
	PaymentMethod string          `gorm:"type:varchar(50)"`
	UserEmail     string          `gorm:"type:varchar(250)"`
}

func (SaleFact) TableName() string { return "hecho_ventas" }
