package migrate

import (
	"context"

	"checkout-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto
	CreateChecks           bool // integrity CHECK constraints
	CreateIndexes          bool // indexes and UNIQUE
	CreateFKsViaSQL        bool // FKs via SQL on top of GORM constraints
	CreateUpdatedAtTrigger bool // updated_at trigger
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

// MigrateCheckoutDB prepares the primary (operational) store.
func MigrateCheckoutDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("starting checkout database migration")

	if opt.CreateExtensions {
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("failed to enable pgcrypto", zap.Error(err))
			return err
		}
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&models.Brand{},
		&models.Product{},
		&models.Size{},
		&models.InventoryLine{},
		&models.Order{},
		&models.OrderLine{},
		&models.PaymentDetail{},
		&models.Invoice{},
		&models.CartLine{},
		&models.User{},
	); err != nil {
		log.Error("failed to create tables", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.WithContext(ctx).Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_ordenes_updated ON ordenes;
CREATE TRIGGER trg_ordenes_updated
BEFORE UPDATE ON ordenes
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_inventario_updated ON inventario;
CREATE TRIGGER trg_inventario_updated
BEFORE UPDATE ON inventario
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("failed to create updated_at triggers", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		// Stock may never go negative; Reserve relies on this as the
		// last line of defence.
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE inventario
  DROP CONSTRAINT IF EXISTS chk_inventario_stock_non_negative;
ALTER TABLE inventario
  ADD CONSTRAINT chk_inventario_stock_non_negative
  CHECK (stock >= 0);
`).Error; err != nil {
			log.Error("failed to create CHECK for inventario.stock", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE ordenes
  DROP CONSTRAINT IF EXISTS chk_ordenes_status_allowed;
ALTER TABLE ordenes
  ADD CONSTRAINT chk_ordenes_status_allowed
  CHECK (status IN ('pendiente','procesando_pago','procesado','completado','facturada','cancelado'));
`).Error; err != nil {
			log.Error("failed to create CHECK for ordenes.status", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE ordenes
  DROP CONSTRAINT IF EXISTS chk_ordenes_total_non_negative;
ALTER TABLE ordenes
  ADD CONSTRAINT chk_ordenes_total_non_negative
  CHECK (total >= 0);
`).Error; err != nil {
			log.Error("failed to create CHECK for ordenes.total", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orden_detalles
  DROP CONSTRAINT IF EXISTS chk_orden_detalles_quantity_gt_zero;
ALTER TABLE orden_detalles
  ADD CONSTRAINT chk_orden_detalles_quantity_gt_zero
  CHECK (quantity > 0);
ALTER TABLE orden_detalles
  DROP CONSTRAINT IF EXISTS chk_orden_detalles_price_non_negative;
ALTER TABLE orden_detalles
  ADD CONSTRAINT chk_orden_detalles_price_non_negative
  CHECK (unit_price >= 0);
`).Error; err != nil {
			log.Error("failed to create CHECKs for orden_detalles", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE facturas
  DROP CONSTRAINT IF EXISTS chk_facturas_status_allowed;
ALTER TABLE facturas
  ADD CONSTRAINT chk_facturas_status_allowed
  CHECK (status IN ('emitida','pagada','anulada','vencida'));
`).Error; err != nil {
			log.Error("failed to create CHECK for facturas.status", zap.Error(err))
			return err
		}
	}

	if opt.CreateIndexes {
		if err := db.WithContext(ctx).Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_inventario_product_size
ON inventario (product_id, size_id);

CREATE UNIQUE INDEX IF NOT EXISTS ux_pagos_reference
ON pagos (reference);

CREATE UNIQUE INDEX IF NOT EXISTS ux_facturas_order
ON facturas (order_id);

CREATE INDEX IF NOT EXISTS ix_ordenes_user_ordered
ON ordenes (user_id, ordered_at DESC);
`).Error; err != nil {
			log.Error("failed to create indexes", zap.Error(err))
			return err
		}
	}

	if opt.CreateFKsViaSQL {
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orden_detalles
  DROP CONSTRAINT IF EXISTS fk_orden_detalles_orden,
  ADD CONSTRAINT fk_orden_detalles_orden
    FOREIGN KEY (order_id) REFERENCES ordenes(id) ON DELETE CASCADE;

ALTER TABLE pagos
  DROP CONSTRAINT IF EXISTS fk_pagos_orden,
  ADD CONSTRAINT fk_pagos_orden
    FOREIGN KEY (order_id) REFERENCES ordenes(id) ON DELETE CASCADE;

ALTER TABLE facturas
  DROP CONSTRAINT IF EXISTS fk_facturas_orden,
  ADD CONSTRAINT fk_facturas_orden
    FOREIGN KEY (order_id) REFERENCES ordenes(id);
`).Error; err != nil {
			log.Error("failed to create foreign keys", zap.Error(err))
			return err
		}
	}

	log.Info("checkout database migration finished")
	return nil
}

// MigrateVentasDB prepares the analytical store. Kept separate because
// the store is optional and may live on different infrastructure.
func MigrateVentasDB(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	log.Info("starting ventas database migration")
	if err := db.WithContext(ctx).AutoMigrate(&models.SaleFact{}); err != nil {
		log.Error("failed to create hecho_ventas", zap.Error(err))
		return err
	}
	log.Info("ventas database migration finished")
	return nil
}
