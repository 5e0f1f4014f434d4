package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "pendiente"
	OrderStatusProcessingPay    OrderStatus = "procesando_pago"
	OrderStatusProcessed        OrderStatus = "procesado"
	OrderStatusCompleted        OrderStatus = "completado"
	OrderStatusInvoiced         OrderStatus = "facturada"
	OrderStatusCancelled        OrderStatus = "cancelado"
)

// LineStatus is the per-line fulfillment stage, independent of the
// order's payment status.
type LineStatus string

const (
	LineStatusPending   LineStatus = "pendiente"
	LineStatusPreparing LineStatus = "preparando"
	LineStatusReviewed  LineStatus = "revisado"
	LineStatusReleased  LineStatus = "liberado"
	LineStatusDelivered LineStatus = "entregado"
	LineStatusCancelled LineStatus = "cancelado"
	// Terminal labels used by the card-payment fast path.
	LineStatusProcessed LineStatus = "procesado"
	LineStatusCompleted LineStatus = "completado"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pendiente"
	PaymentStatusProcessed PaymentStatus = "procesado"
	PaymentStatusCancelled PaymentStatus = "cancelado"
)

type InvoiceStatus string

const (
	InvoiceStatusIssued  InvoiceStatus = "emitida"
	InvoiceStatusPaid    InvoiceStatus = "pagada"
	InvoiceStatusVoid    InvoiceStatus = "anulada"
	InvoiceStatusExpired InvoiceStatus = "vencida"
)

// Catalog tables are owned by the catalog system; this service only
// joins against them, it never writes them.

type Brand struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:text;not null"`
}

func (Brand) TableName() string { return "marcas" }

type Product struct {
	ID      int64           `gorm:"primaryKey;autoIncrement"`
	Name    string          `gorm:"type:text;not null"`
	Price   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	BrandID *int64          `gorm:"index"`

	Brand *Brand `gorm:"foreignKey:BrandID"`
}

func (Product) TableName() string { return "productos" }

type Size struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:text;not null;uniqueIndex"`
}

func (Size) TableName() string { return "tallas" }

// InventoryLine is the stock record for one (product, size) pair. Stock
// is mutated only through InventoryRepo.Reserve/Restore.
type InventoryLine struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	ProductID int64 `gorm:"not null;index;uniqueIndex:ux_inventario_product_size"`
	SizeID    int64 `gorm:"not null;uniqueIndex:ux_inventario_product_size"`
	Stock     int   `gorm:"not null;default:0"` // CHECK >= 0 in migration

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Product *Product `gorm:"foreignKey:ProductID"`
	Size    *Size    `gorm:"foreignKey:SizeID"`
}

func (InventoryLine) TableName() string { return "inventario" }

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	UserID          int64           `gorm:"not null;index"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ShippingAddress string          `gorm:"type:text;not null"`
	PaymentMethod   string          `gorm:"type:text;not null"`
	Status          OrderStatus     `gorm:"type:text;not null;default:'pendiente';index"`
	Reference       *string         `gorm:"type:text;uniqueIndex"`
	OrderedAt       time.Time       `gorm:"not null;default:now();index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "ordenes" }

// OrderLine freezes the unit price at reservation time; later catalog
// price changes never touch it.
type OrderLine struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	OrderID         int64           `gorm:"not null;index"`
	InventoryLineID int64           `gorm:"not null;index"`
	Quantity        int             `gorm:"not null"` // CHECK > 0 in migration
	UnitPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status          LineStatus      `gorm:"type:text;not null;default:'pendiente'"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	InventoryLine *InventoryLine `gorm:"foreignKey:InventoryLineID"`
}

func (OrderLine) TableName() string { return "orden_detalles" }

func (l *OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type PaymentDetail struct {
	ID        int64         `gorm:"primaryKey;autoIncrement"`
	OrderID   int64         `gorm:"not null;index"`
	Method    string        `gorm:"type:text;not null"`
	Status    PaymentStatus `gorm:"type:text;not null;default:'pendiente'"`
	Reference string        `gorm:"type:text;not null;uniqueIndex"`
	CardBrand *string       `gorm:"type:varchar(20)"`
	CardLast4 *string       `gorm:"type:varchar(4)"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (PaymentDetail) TableName() string { return "pagos" }

// Invoice totals are snapshotted at issuance and never recomputed.
type Invoice struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	OrderID         int64           `gorm:"not null;uniqueIndex"`
	Number          string          `gorm:"type:text;not null;uniqueIndex"`
	IssuedAt        time.Time       `gorm:"type:date;not null"`
	CustomerTaxID   string          `gorm:"type:varchar(20);not null"`
	CustomerName    string          `gorm:"type:varchar(255);not null"`
	CustomerAddress string          `gorm:"type:text;not null"`
	GrossTotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	NetTotal        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status          InvoiceStatus   `gorm:"type:text;not null;default:'emitida';index"`
	PDFURL          *string         `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Order *Order `gorm:"foreignKey:OrderID"`
}

func (Invoice) TableName() string { return "facturas" }

// CartLine belongs to the cart collaborator; checkout only reads and
// clears it.
type CartLine struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	UserID          int64 `gorm:"not null;index"`
	InventoryLineID int64 `gorm:"not null"`
	Quantity        int   `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (CartLine) TableName() string { return "carrito" }

// User rows come from the user directory; only email and display name
// are read here, for sale-fact snapshots.
type User struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Email       string `gorm:"type:text;not null"`
	DisplayName string `gorm:"type:text;not null"`
}

func (User) TableName() string { return "usuarios" }
