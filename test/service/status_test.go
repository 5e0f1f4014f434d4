package service_test

import (
	"testing"

	"checkout-service/internal/models"
	"checkout-service/internal/service"
)

func TestDisplayForLineStatus(t *testing.T) {
	cases := []struct {
		status   models.LineStatus
		label    string
		progress int
	}{
		{models.LineStatusPending, "Pendiente", 0},
		{models.LineStatusPreparing, "Preparando", 25},
		{models.LineStatusReviewed, "Revisado", 50},
		{models.LineStatusReleased, "Liberado", 75},
		{models.LineStatusDelivered, "Entregado", 100},
		{models.LineStatusCancelled, "Cancelado", 0},
		{models.LineStatusProcessed, "Procesado", 100},
		{models.LineStatusCompleted, "Completado", 100},
	}
	for _, c := range cases {
		d := service.DisplayForLineStatus(c.status)
		if d.Label != c.label || d.Progress != c.progress {
			t.Errorf("DisplayForLineStatus(%s) = %+v, want label=%s progress=%d",
				c.status, d, c.label, c.progress)
		}
		if d.Color == "" || d.Icon == "" {
			t.Errorf("DisplayForLineStatus(%s) missing color/icon: %+v", c.status, d)
		}
	}
}

func TestDisplayForLineStatus_UnknownFallsBack(t *testing.T) {
	d := service.DisplayForLineStatus(models.LineStatus("volando"))
	if d.Label != "Desconocido" || d.Progress != 0 {
		t.Fatalf("unknown status display = %+v", d)
	}
}

func TestKnownLineStatus(t *testing.T) {
	if !service.KnownLineStatus(models.LineStatusPreparing) {
		t.Fatal("preparando must be known")
	}
	if service.KnownLineStatus(models.LineStatus("volando")) {
		t.Fatal("made-up status must not be known")
	}
}

func TestKnownInvoiceStatus(t *testing.T) {
	for _, s := range []models.InvoiceStatus{
		models.InvoiceStatusIssued, models.InvoiceStatusPaid,
		models.InvoiceStatusVoid, models.InvoiceStatusExpired,
	} {
		if !service.KnownInvoiceStatus(s) {
			t.Errorf("%s must be known", s)
		}
	}
	if service.KnownInvoiceStatus(models.InvoiceStatus("pendiente")) {
		t.Fatal("pendiente is not an invoice status")
	}
}
