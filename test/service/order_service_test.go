package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func TestListOrders(t *testing.T) {
	repo, _, orders, _, _, _, _, _ := newTestRepo()
	ref := "REF-20260831120000-0001"
	orders.ListByUserFunc = func(ctx context.Context, userID int64) ([]models.Order, error) {
		if userID != 7 {
			t.Fatalf("userID = %d", userID)
		}
		return []models.Order{
			{ID: 2, Total: decimal.RequireFromString("300.00"), Status: models.OrderStatusProcessed, Reference: &ref, OrderedAt: time.Now()},
			{ID: 1, Total: decimal.RequireFromString("100.00"), Status: models.OrderStatusPending, OrderedAt: time.Now().Add(-time.Hour)},
		}, nil
	}

	svc := service.NewOrderService(repo, zap.NewNop())
	out, err := svc.ListOrders(authedCtx(7))
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(out) != 2 || out[0].OrderID != 2 || out[1].OrderID != 1 {
		t.Fatalf("summaries = %+v", out)
	}
	if out[0].Reference == nil || *out[0].Reference != ref {
		t.Fatalf("reference = %v", out[0].Reference)
	}
}

func orderWithLines(userID int64) *models.Order {
	inv := &models.InventoryLine{
		ProductID: 1,
		Product: &models.Product{
			ID: 1, Name: "Vestido Rojo",
			Brand: &models.Brand{Name: "Eromoda"},
		},
		Size: &models.Size{Name: "M"},
	}
	return &models.Order{
		ID:     3,
		UserID: userID,
		Total:  decimal.RequireFromString("900.00"),
		Status: models.OrderStatusProcessed,
		Lines: []models.OrderLine{
			{ID: 31, OrderID: 3, Quantity: 2, UnitPrice: decimal.RequireFromString("450.00"),
				Status: models.LineStatusPreparing, InventoryLine: inv},
		},
	}
}

func TestGetOrderDetail_OwnerGetsDisplayTuples(t *testing.T) {
	repo, _, orders, _, _, _, _, _ := newTestRepo()
	orders.GetByIDForUserFunc = func(ctx context.Context, id, userID int64) (*models.Order, error) {
		if userID != 7 {
			return nil, nil
		}
		return orderWithLines(7), nil
	}

	svc := service.NewOrderService(repo, zap.NewNop())
	detail, err := svc.GetOrderDetail(authedCtx(7), 3)
	if err != nil {
		t.Fatalf("GetOrderDetail: %v", err)
	}
	if len(detail.Lines) != 1 {
		t.Fatalf("lines = %+v", detail.Lines)
	}
	l := detail.Lines[0]
	if l.Product != "Vestido Rojo" || l.Brand != "Eromoda" || l.Size != "M" {
		t.Fatalf("line = %+v", l)
	}
	if !l.Subtotal.Equal(decimal.RequireFromString("900.00")) {
		t.Fatalf("subtotal = %s", l.Subtotal)
	}
	if l.Display.Label != "Preparando" || l.Display.Progress != 25 {
		t.Fatalf("display = %+v", l.Display)
	}
}

func TestGetOrderDetail_OtherUsersOrderHidden(t *testing.T) {
	repo, _, orders, _, _, _, _, _ := newTestRepo()
	orders.GetByIDForUserFunc = func(ctx context.Context, id, userID int64) (*models.Order, error) {
		return nil, nil // scoped query finds nothing for this user
	}
	svc := service.NewOrderService(repo, zap.NewNop())
	_, err := svc.GetOrderDetail(authedCtx(7), 3)
	if !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestGetOrderDetail_AdminSeesAnyOrder(t *testing.T) {
	repo, _, orders, _, _, _, _, _ := newTestRepo()
	orders.GetByIDFunc = func(ctx context.Context, id int64) (*models.Order, error) {
		return orderWithLines(99), nil
	}
	svc := service.NewOrderService(repo, zap.NewNop())
	detail, err := svc.GetOrderDetail(adminCtx(7), 3)
	if err != nil {
		t.Fatalf("GetOrderDetail: %v", err)
	}
	if detail.UserID != 99 {
		t.Fatalf("detail = %+v", detail)
	}
}

func TestUpdateLineStatus(t *testing.T) {
	t.Run("admin updates to known status", func(t *testing.T) {
		repo, _, _, orderLines, _, _, _, _ := newTestRepo()
		orderLines.GetByOrderIDFunc = func(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
			return orderWithLines(99).Lines, nil
		}
		updated := false
		orderLines.UpdateStatusFunc = func(ctx context.Context, id int64, status models.LineStatus) (bool, error) {
			if id != 31 || status != models.LineStatusReleased {
				t.Fatalf("id=%d status=%s", id, status)
			}
			updated = true
			return true, nil
		}

		svc := service.NewOrderService(repo, zap.NewNop())
		line, err := svc.UpdateLineStatus(adminCtx(1), 3, 31, models.LineStatusReleased)
		if err != nil {
			t.Fatalf("UpdateLineStatus: %v", err)
		}
		if !updated || line.Status != models.LineStatusReleased || line.Display.Progress != 75 {
			t.Fatalf("line = %+v", line)
		}
	})

	t.Run("customer forbidden", func(t *testing.T) {
		repo, _, _, _, _, _, _, _ := newTestRepo()
		svc := service.NewOrderService(repo, zap.NewNop())
		_, err := svc.UpdateLineStatus(authedCtx(7), 3, 31, models.LineStatusReleased)
		if !errors.Is(err, service.ErrForbidden) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		repo, _, _, _, _, _, _, _ := newTestRepo()
		svc := service.NewOrderService(repo, zap.NewNop())
		_, err := svc.UpdateLineStatus(adminCtx(1), 3, 31, models.LineStatus("volando"))
		if !errors.Is(err, service.ErrInvalidStatus) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("line not in order", func(t *testing.T) {
		repo, _, _, orderLines, _, _, _, _ := newTestRepo()
		orderLines.GetByOrderIDFunc = func(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
			return orderWithLines(99).Lines, nil
		}
		svc := service.NewOrderService(repo, zap.NewNop())
		_, err := svc.UpdateLineStatus(adminCtx(1), 3, 777, models.LineStatusReleased)
		if !errors.Is(err, service.ErrLineNotFound) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	repo, _, orders, _, _, _, _, _ := newTestRepo()
	orders.GetByIDFunc = func(ctx context.Context, id int64) (*models.Order, error) {
		return orderWithLines(99), nil
	}
	var got models.OrderStatus
	orders.UpdateStatusFunc = func(ctx context.Context, id int64, status models.OrderStatus) error {
		got = status
		return nil
	}

	svc := service.NewOrderService(repo, zap.NewNop())
	if err := svc.UpdateOrderStatus(adminCtx(1), 3, models.OrderStatusCompleted); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if got != models.OrderStatusCompleted {
		t.Fatalf("status = %s", got)
	}

	if err := svc.UpdateOrderStatus(adminCtx(1), 3, models.OrderStatus("volando")); !errors.Is(err, service.ErrInvalidStatus) {
		t.Fatalf("err = %v", err)
	}
	if err := svc.UpdateOrderStatus(authedCtx(7), 3, models.OrderStatusCompleted); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("err = %v", err)
	}
}
