package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Skema minimal, idempotent. CHECK di quantity_in_stock jadi jaring pengaman
// terakhir kalau ada jalur yang lolos validasi stok di repo.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id                UUID PRIMARY KEY,
		name              TEXT NOT NULL,
		description       TEXT,
		price             DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		quantity_in_stock INT NOT NULL CHECK (quantity_in_stock >= 0),
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         UUID PRIMARY KEY,
		status     TEXT NOT NULL DEFAULT 'in_process',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         UUID PRIMARY KEY,
		order_id   UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity   INT NOT NULL DEFAULT 1 CHECK (quantity >= 1)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items(product_id)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
