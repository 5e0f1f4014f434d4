package service

import "checkout-service/internal/models"

// StatusDisplay is the fixed presentation tuple for one fulfillment
// status: label, color token, icon token and pipeline progress.
type StatusDisplay struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	Progress int    `json:"progress"`
}

// lineStatusDisplay is loaded once and never mutated at runtime.
var lineStatusDisplay = map[models.LineStatus]StatusDisplay{
	models.LineStatusPending:   {Label: "Pendiente", Color: "gray", Icon: "clock", Progress: 0},
	models.LineStatusPreparing: {Label: "Preparando", Color: "blue", Icon: "box", Progress: 25},
	models.LineStatusReviewed:  {Label: "Revisado", Color: "indigo", Icon: "clipboard-check", Progress: 50},
	models.LineStatusReleased:  {Label: "Liberado", Color: "amber", Icon: "truck", Progress: 75},
	models.LineStatusDelivered: {Label: "Entregado", Color: "green", Icon: "check-circle", Progress: 100},
	models.LineStatusCancelled: {Label: "Cancelado", Color: "red", Icon: "x-circle", Progress: 0},
	// Card fast-path terminal labels.
	models.LineStatusProcessed: {Label: "Procesado", Color: "green", Icon: "credit-card", Progress: 100},
	models.LineStatusCompleted: {Label: "Completado", Color: "green", Icon: "check-circle", Progress: 100},
}

var unknownStatusDisplay = StatusDisplay{Label: "Desconocido", Color: "gray", Icon: "question", Progress: 0}

// DisplayForLineStatus never fails: an unrecognized value maps to the
// safe unknown tuple instead of an error.
func DisplayForLineStatus(s models.LineStatus) StatusDisplay {
	if d, ok := lineStatusDisplay[s]; ok {
		return d
	}
	return unknownStatusDisplay
}

// KnownLineStatus reports whether s is an accepted status value.
// Transition ordering is deliberately not enforced; the pipeline is
// operator-driven.
func KnownLineStatus(s models.LineStatus) bool {
	_, ok := lineStatusDisplay[s]
	return ok
}

func KnownInvoiceStatus(s models.InvoiceStatus) bool {
	switch s {
	case models.InvoiceStatusIssued, models.InvoiceStatusPaid,
		models.InvoiceStatusVoid, models.InvoiceStatusExpired:
		return true
	}
	return false
}
