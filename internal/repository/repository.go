package repository

import "gorm.io/gorm"

type Repository struct {
	DB         *gorm.DB
	Inventory  InventoryRepo
	Orders     OrderRepo
	OrderLines OrderLineRepo
	Payments   PaymentRepo
	Invoices   InvoiceRepo
	Carts      CartRepo
	Users      UserRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Inventory:  NewInventoryRepo(db),
		Orders:     NewOrderRepo(db),
		OrderLines: NewOrderLineRepo(db),
		Payments:   NewPaymentRepo(db),
		Invoices:   NewInvoiceRepo(db),
		Carts:      NewCartRepo(db),
		Users:      NewUserRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// WithTx runs fn with every repo bound to one transaction. A
// Repository assembled by hand without a DB (tests) runs fn directly.
func (r *Repository) WithTx(fn func(tx *Repository) error) error {
	if r.DB == nil {
		return fn(r)
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
