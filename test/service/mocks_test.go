package service_test

import (
	"context"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"
	"checkout-service/internal/service"
)

// Func-field mocks for every repo interface; unset fields fall back to
// harmless zero behaviour.

type MockInventoryRepo struct {
	GetFunc        func(ctx context.Context, id int64) (*models.InventoryLine, error)
	FindBySizeFunc func(ctx context.Context, productID int64, sizeName string) (*models.InventoryLine, error)
	ReserveFunc    func(ctx context.Context, id int64, qty int) (bool, error)
	RestoreFunc    func(ctx context.Context, id int64, qty int) (bool, error)
}

func (m *MockInventoryRepo) Get(ctx context.Context, id int64) (*models.InventoryLine, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockInventoryRepo) FindBySize(ctx context.Context, productID int64, sizeName string) (*models.InventoryLine, error) {
	if m.FindBySizeFunc != nil {
		return m.FindBySizeFunc(ctx, productID, sizeName)
	}
	return nil, nil
}

func (m *MockInventoryRepo) Reserve(ctx context.Context, id int64, qty int) (bool, error) {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, id, qty)
	}
	return true, nil
}

func (m *MockInventoryRepo) Restore(ctx context.Context, id int64, qty int) (bool, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id, qty)
	}
	return true, nil
}

type MockOrderRepo struct {
	CreateFunc         func(ctx context.Context, o *models.Order) error
	GetByIDFunc        func(ctx context.Context, id int64) (*models.Order, error)
	GetByIDForUserFunc func(ctx context.Context, id, userID int64) (*models.Order, error)
	ListByUserFunc     func(ctx context.Context, userID int64) ([]models.Order, error)
	UpdateStatusFunc   func(ctx context.Context, id int64, status models.OrderStatus) error
	BeginPaymentFunc   func(ctx context.Context, id, userID int64, reference string, status models.OrderStatus) (bool, error)
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	o.ID = 1
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*models.Order, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderRepo) BeginPayment(ctx context.Context, id, userID int64, reference string, status models.OrderStatus) (bool, error) {
	if m.BeginPaymentFunc != nil {
		return m.BeginPaymentFunc(ctx, id, userID, reference, status)
	}
	return true, nil
}

type MockOrderLineRepo struct {
	BulkCreateFunc          func(ctx context.Context, lines []models.OrderLine) error
	GetByOrderIDFunc        func(ctx context.Context, orderID int64) ([]models.OrderLine, error)
	UpdateStatusFunc        func(ctx context.Context, id int64, status models.LineStatus) (bool, error)
	UpdateStatusByOrderFunc func(ctx context.Context, orderID int64, status models.LineStatus) error
}

func (m *MockOrderLineRepo) BulkCreate(ctx context.Context, lines []models.OrderLine) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, lines)
	}
	return nil
}

func (m *MockOrderLineRepo) GetByOrderID(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockOrderLineRepo) UpdateStatus(ctx context.Context, id int64, status models.LineStatus) (bool, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return true, nil
}

func (m *MockOrderLineRepo) UpdateStatusByOrder(ctx context.Context, orderID int64, status models.LineStatus) error {
	if m.UpdateStatusByOrderFunc != nil {
		return m.UpdateStatusByOrderFunc(ctx, orderID, status)
	}
	return nil
}

type MockPaymentRepo struct {
	CreateFunc          func(ctx context.Context, p *models.PaymentDetail) error
	GetByOrderIDFunc    func(ctx context.Context, orderID int64) (*models.PaymentDetail, error)
	ReferenceExistsFunc func(ctx context.Context, reference string) (bool, error)
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *models.PaymentDetail) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockPaymentRepo) GetByOrderID(ctx context.Context, orderID int64) (*models.PaymentDetail, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockPaymentRepo) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	if m.ReferenceExistsFunc != nil {
		return m.ReferenceExistsFunc(ctx, reference)
	}
	return false, nil
}

type MockInvoiceRepo struct {
	CreateFunc        func(ctx context.Context, inv *models.Invoice) error
	GetByIDFunc       func(ctx context.Context, id int64) (*models.Invoice, error)
	GetByOrderIDFunc  func(ctx context.Context, orderID int64) (*models.Invoice, error)
	ListAllFunc       func(ctx context.Context) ([]models.Invoice, error)
	ListByUserFunc    func(ctx context.Context, userID int64) ([]models.Invoice, error)
	UpdateStatusFunc  func(ctx context.Context, id int64, status models.InvoiceStatus) (bool, error)
	UpdatePDFURLFunc  func(ctx context.Context, id int64, url string) (bool, error)
	DeleteFunc        func(ctx context.Context, id int64) (bool, error)
	CountForMonthFunc func(ctx context.Context, year int, month time.Month) (int64, error)
	StatsFunc         func(ctx context.Context, monthStart, monthEnd time.Time) (*repository.InvoiceStats, error)
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, inv)
	}
	inv.ID = 1
	return nil
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockInvoiceRepo) GetByOrderID(ctx context.Context, orderID int64) (*models.Invoice, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockInvoiceRepo) ListAll(ctx context.Context) ([]models.Invoice, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockInvoiceRepo) ListByUser(ctx context.Context, userID int64) ([]models.Invoice, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockInvoiceRepo) UpdateStatus(ctx context.Context, id int64, status models.InvoiceStatus) (bool, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return true, nil
}

func (m *MockInvoiceRepo) UpdatePDFURL(ctx context.Context, id int64, url string) (bool, error) {
	if m.UpdatePDFURLFunc != nil {
		return m.UpdatePDFURLFunc(ctx, id, url)
	}
	return true, nil
}

func (m *MockInvoiceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

func (m *MockInvoiceRepo) CountForMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	if m.CountForMonthFunc != nil {
		return m.CountForMonthFunc(ctx, year, month)
	}
	return 0, nil
}

func (m *MockInvoiceRepo) Stats(ctx context.Context, monthStart, monthEnd time.Time) (*repository.InvoiceStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, monthStart, monthEnd)
	}
	return &repository.InvoiceStats{}, nil
}

type MockCartRepo struct {
	ListByUserFunc func(ctx context.Context, userID int64) ([]models.CartLine, error)
	ClearFunc      func(ctx context.Context, userID int64) (int64, error)
}

func (m *MockCartRepo) ListByUser(ctx context.Context, userID int64) ([]models.CartLine, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCartRepo) Clear(ctx context.Context, userID int64) (int64, error) {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, userID)
	}
	return 0, nil
}

type MockUserRepo struct {
	GetByIDFunc func(ctx context.Context, id int64) (*models.User, error)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

type MockSalesRepo struct {
	BulkInsertFunc      func(ctx context.Context, facts []models.SaleFact) error
	ExistsForOrderFunc  func(ctx context.Context, orderID int64) (bool, error)
	ListRecentFunc      func(ctx context.Context, limit int) ([]models.SaleFact, error)
	ReportByProductFunc func(ctx context.Context) ([]repository.ProductSales, error)
}

func (m *MockSalesRepo) BulkInsert(ctx context.Context, facts []models.SaleFact) error {
	if m.BulkInsertFunc != nil {
		return m.BulkInsertFunc(ctx, facts)
	}
	return nil
}

func (m *MockSalesRepo) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	if m.ExistsForOrderFunc != nil {
		return m.ExistsForOrderFunc(ctx, orderID)
	}
	return false, nil
}

func (m *MockSalesRepo) ListRecent(ctx context.Context, limit int) ([]models.SaleFact, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockSalesRepo) ReportByProduct(ctx context.Context) ([]repository.ProductSales, error) {
	if m.ReportByProductFunc != nil {
		return m.ReportByProductFunc(ctx)
	}
	return nil, nil
}

// MockReplicator records calls and returns a canned outcome.
type MockReplicator struct {
	Outcome service.ReplicationOutcome
	Calls   int
}

func (m *MockReplicator) Replicate(ctx context.Context, order *models.Order, lines []models.OrderLine) service.ReplicationOutcome {
	m.Calls++
	return m.Outcome
}

// MockEventBus captures published events.
type MockEventBus struct {
	Events []service.OrderCreatedEvent
	Err    error
}

func (m *MockEventBus) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	m.Events = append(m.Events, e)
	return m.Err
}

// newTestRepo assembles a Repository over mocks; WithTx runs inline
// because no DB is attached.
func newTestRepo() (*repository.Repository, *MockInventoryRepo, *MockOrderRepo, *MockOrderLineRepo, *MockPaymentRepo, *MockInvoiceRepo, *MockCartRepo, *MockUserRepo) {
	inv := &MockInventoryRepo{}
	orders := &MockOrderRepo{}
	orderLines := &MockOrderLineRepo{}
	payments := &MockPaymentRepo{}
	invoices := &MockInvoiceRepo{}
	carts := &MockCartRepo{}
	users := &MockUserRepo{}
	repo := &repository.Repository{
		Inventory:  inv,
		Orders:     orders,
		OrderLines: orderLines,
		Payments:   payments,
		Invoices:   invoices,
		Carts:      carts,
		Users:      users,
	}
	return repo, inv, orders, orderLines, payments, invoices, carts, users
}
