package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"
	"checkout-service/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func saleOrder() (*models.Order, []models.OrderLine) {
	inv := &models.InventoryLine{
		ProductID: 1,
		Product:   &models.Product{ID: 1, Name: "Vestido Rojo", Brand: &models.Brand{Name: "Eromoda"}},
		Size:      &models.Size{Name: "M"},
	}
	lines := []models.OrderLine{
		{ID: 31, OrderID: 3, Quantity: 2, UnitPrice: decimal.RequireFromString("450.00"),
			InventoryLine: inv},
	}
	return &models.Order{
		ID: 3, UserID: 7,
		Total:         decimal.RequireFromString("900.00"),
		PaymentMethod: "tarjeta",
		OrderedAt:     time.Now(),
		Lines:         lines,
	}, lines
}

func TestReplicate_ProjectsOneFactPerLine(t *testing.T) {
	repo, _, _, _, _, _, _, users := newTestRepo()
	users.GetByIDFunc = func(ctx context.Context, id int64) (*models.User, error) {
		return &models.User{ID: id, Email: "maria@example.com"}, nil
	}
	sales := &MockSalesRepo{}
	var inserted []models.SaleFact
	sales.BulkInsertFunc = func(ctx context.Context, facts []models.SaleFact) error {
		inserted = facts
		return nil
	}

	rep := service.NewSalesReplicator(repo, sales, zap.NewNop())
	ord, lines := saleOrder()
	outcome := rep.Replicate(context.Background(), ord, lines)
	if !outcome.OK || outcome.Rows != 1 {
		t.Fatalf("outcome = %+v", outcome)
	}

	f := inserted[0]
	if f.OrderID != 3 || f.ProductName != "Vestido Rojo" || f.Brand != "Eromoda" || f.Size != "M" {
		t.Fatalf("fact = %+v", f)
	}
	if !f.LineTotal.Equal(decimal.RequireFromString("900.00")) {
		t.Fatalf("line total = %s", f.LineTotal)
	}
	if f.UserEmail != "maria@example.com" || f.PaymentMethod != "tarjeta" {
		t.Fatalf("fact = %+v", f)
	}
}

func TestReplicate_FailureIsAnOutcomeNotAnError(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepo()
	sales := &MockSalesRepo{
		BulkInsertFunc: func(ctx context.Context, facts []models.SaleFact) error {
			return errors.New("connection refused")
		},
	}
	rep := service.NewSalesReplicator(repo, sales, zap.NewNop())
	ord, lines := saleOrder()
	outcome := rep.Replicate(context.Background(), ord, lines)
	if outcome.OK || outcome.Reason != "connection refused" {
		t.Fatalf("outcome = %+v", outcome)
	}
}

func TestReplicate_DisabledStore(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepo()
	rep := service.NewSalesReplicator(repo, nil, zap.NewNop())
	ord, lines := saleOrder()
	outcome := rep.Replicate(context.Background(), ord, lines)
	if outcome.OK {
		t.Fatalf("outcome = %+v", outcome)
	}
}

func TestResync(t *testing.T) {
	t.Run("admin re-projects missing order", func(t *testing.T) {
		repo, _, orders, _, _, _, _, _ := newTestRepo()
		ord, _ := saleOrder()
		orders.GetByIDFunc = func(ctx context.Context, id int64) (*models.Order, error) {
			return ord, nil
		}
		sales := &MockSalesRepo{}
		inserted := 0
		sales.BulkInsertFunc = func(ctx context.Context, facts []models.SaleFact) error {
			inserted = len(facts)
			return nil
		}

		rep := service.NewSalesReplicator(repo, sales, zap.NewNop())
		rows, err := rep.Resync(adminCtx(1), 3)
		if err != nil {
			t.Fatalf("Resync: %v", err)
		}
		if rows != 1 || inserted != 1 {
			t.Fatalf("rows=%d inserted=%d", rows, inserted)
		}
	})

	t.Run("skips when facts already exist", func(t *testing.T) {
		repo, _, orders, _, _, _, _, _ := newTestRepo()
		ord, _ := saleOrder()
		orders.GetByIDFunc = func(ctx context.Context, id int64) (*models.Order, error) {
			return ord, nil
		}
		sales := &MockSalesRepo{
			ExistsForOrderFunc: func(ctx context.Context, orderID int64) (bool, error) {
				return true, nil
			},
			BulkInsertFunc: func(ctx context.Context, facts []models.SaleFact) error {
				t.Fatal("must not insert when facts exist")
				return nil
			},
		}
		rep := service.NewSalesReplicator(repo, sales, zap.NewNop())
		rows, err := rep.Resync(adminCtx(1), 3)
		if err != nil || rows != 0 {
			t.Fatalf("rows=%d err=%v", rows, err)
		}
	})

	t.Run("customer forbidden", func(t *testing.T) {
		repo, _, _, _, _, _, _, _ := newTestRepo()
		rep := service.NewSalesReplicator(repo, &MockSalesRepo{}, zap.NewNop())
		if _, err := rep.Resync(authedCtx(7), 3); !errors.Is(err, service.ErrForbidden) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("disabled store", func(t *testing.T) {
		repo, _, _, _, _, _, _, _ := newTestRepo()
		rep := service.NewSalesReplicator(repo, nil, zap.NewNop())
		if _, err := rep.Resync(adminCtx(1), 3); !errors.Is(err, service.ErrReplicatorDisabled) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestSalesReads(t *testing.T) {
	repo, _, _, _, _, _, _, _ := newTestRepo()
	sales := &MockSalesRepo{
		ReportByProductFunc: func(ctx context.Context) ([]repository.ProductSales, error) {
			return []repository.ProductSales{
				{Product: "Vestido Rojo", TotalUnits: 12, TotalSales: decimal.RequireFromString("5400.00")},
			}, nil
		},
	}
	rep := service.NewSalesReplicator(repo, sales, zap.NewNop())

	if _, err := rep.Report(authedCtx(7)); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("customer report err = %v", err)
	}
	rows, err := rep.Report(adminCtx(1))
	if err != nil || len(rows) != 1 || rows[0].Product != "Vestido Rojo" {
		t.Fatalf("rows=%v err=%v", rows, err)
	}

	if _, err := rep.ListRecent(adminCtx(1), 10); err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
}
