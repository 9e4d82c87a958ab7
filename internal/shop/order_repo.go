package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepo struct{ DB *pgxpool.Pool }

// lockProduct ambil name+stock sambil nge-lock row product (FOR UPDATE),
// supaya dua order barengan utk product yang sama diserialisasi oleh DB.
func lockProduct(ctx context.Context, tx pgx.Tx, productID string) (name string, stock int, err error) {
	err = tx.QueryRow(ctx,
		`SELECT name, quantity_in_stock FROM products WHERE id=$1 FOR UPDATE`,
		productID,
	).Scan(&name, &stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, &ProductNotFoundError{ID: productID}
	}
	if err != nil {
		return "", 0, fmt.Errorf("lock product %s: %w", productID, err)
	}
	return name, stock, nil
}

// Create bikin order + semua line item dalam satu transaksi.
// Gagal di item manapun (product hilang / stok kurang) -> rollback total,
// tidak ada order parsial yang ke-commit.
func (r *OrderRepo) Create(ctx context.Context, status Status, items []ItemInput) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := Order{
		ID:     uuid.NewString(),
		Status: status,
		Items:  make([]OrderItem, 0, len(items)),
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO orders(id, status) VALUES ($1, $2) RETURNING created_at`,
		out.ID, string(status),
	).Scan(&out.CreatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}

	for _, it := range items {
		name, stock, err := lockProduct(ctx, tx, it.ProductID)
		if err != nil {
			return Order{}, err
		}
		if stock < it.Quantity {
			return Order{}, &InsufficientStockError{
				ProductID: it.ProductID, Name: name,
				Available: stock, Requested: it.Quantity,
			}
		}

		item := OrderItem{
			ID:        uuid.NewString(),
			OrderID:   out.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(id, order_id, product_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			item.ID, item.OrderID, item.ProductID, item.Quantity,
		); err != nil {
			return Order{}, fmt.Errorf("insert order item: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			UPDATE products SET quantity_in_stock = quantity_in_stock - $2, updated_at = now()
			WHERE id=$1`,
			it.ProductID, it.Quantity,
		); err != nil {
			return Order{}, fmt.Errorf("decrement stock: %w", err)
		}
		out.Items = append(out.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("commit create order: %w", err)
	}
	return out, nil
}

// Update: status di-set apa adanya kalau dikirim. Items di-merge:
//   - product sudah ada di order -> qty diganti, stok dikoreksi sebesar delta
//   - product baru -> item baru, stok dikurangi qty
//   - item lama yang tidak disebut dibiarkan (tidak dihapus)
//
// Gagal di mana pun -> rollback, order persis seperti sebelum call.
func (r *OrderRepo) Update(ctx context.Context, orderID string, patch OrderPatch) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur string
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&cur)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("lock order: %w", err)
	}

	if patch.Status != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE orders SET status=$2 WHERE id=$1`,
			orderID, string(*patch.Status),
		); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
	}

	if patch.Items != nil {
		existing, err := loadItems(ctx, tx, orderID)
		if err != nil {
			return err
		}
		byProduct := make(map[string]OrderItem, len(existing))
		for _, item := range existing {
			byProduct[item.ProductID] = item
		}

		for _, it := range patch.Items {
			name, stock, err := lockProduct(ctx, tx, it.ProductID)
			if err != nil {
				return err
			}

			if old, ok := byProduct[it.ProductID]; ok {
				delta := it.Quantity - old.Quantity
				if stock-delta < 0 {
					return &InsufficientStockError{
						ProductID: it.ProductID, Name: name,
						Available: stock + old.Quantity, Requested: it.Quantity,
					}
				}
				if _, err := tx.Exec(ctx,
					`UPDATE order_items SET quantity=$2 WHERE id=$1`,
					old.ID, it.Quantity,
				); err != nil {
					return fmt.Errorf("update order item: %w", err)
				}
				if _, err := tx.Exec(ctx, `
					UPDATE products SET quantity_in_stock = quantity_in_stock - $2, updated_at = now()
					WHERE id=$1`,
					it.ProductID, delta,
				); err != nil {
					return fmt.Errorf("adjust stock: %w", err)
				}
				continue
			}

			if stock < it.Quantity {
				return &InsufficientStockError{
					ProductID: it.ProductID, Name: name,
					Available: stock, Requested: it.Quantity,
				}
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO order_items(id, order_id, product_id, quantity)
				VALUES ($1, $2, $3, $4)`,
				uuid.NewString(), orderID, it.ProductID, it.Quantity,
			); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
			if _, err := tx.Exec(ctx, `
				UPDATE products SET quantity_in_stock = quantity_in_stock - $2, updated_at = now()
				WHERE id=$1`,
				it.ProductID, it.Quantity,
			); err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update order: %w", err)
	}
	return nil
}

// Delete balikin stok tiap line item lalu hapus order (items ikut via cascade).
// Product yang sudah keburu dihapus di-skip: stoknya tidak bisa dibalikin,
// dan itu bukan alasan buat gagalin seluruh delete.
func (r *OrderRepo) Delete(ctx context.Context, orderID string) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := Order{ID: orderID}
	var status string
	err = tx.QueryRow(ctx,
		`SELECT created_at, status FROM orders WHERE id=$1 FOR UPDATE`, orderID,
	).Scan(&out.CreatedAt, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("lock order: %w", err)
	}
	out.Status = Status(status)

	out.Items, err = loadItems(ctx, tx, orderID)
	if err != nil {
		return Order{}, err
	}

	for _, item := range out.Items {
		if _, err := tx.Exec(ctx, `
			UPDATE products SET quantity_in_stock = quantity_in_stock + $2, updated_at = now()
			WHERE id=$1`,
			item.ProductID, item.Quantity,
		); err != nil {
			return Order{}, fmt.Errorf("restore stock: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, orderID); err != nil {
		return Order{}, fmt.Errorf("delete order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("commit delete order: %w", err)
	}
	return out, nil
}

func (r *OrderRepo) Get(ctx context.Context, orderID string) (Order, error) {
	var out Order
	var status string
	err := r.DB.QueryRow(ctx,
		`SELECT id, created_at, status FROM orders WHERE id=$1`, orderID,
	).Scan(&out.ID, &out.CreatedAt, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("select order: %w", err)
	}
	out.Status = Status(status)

	out.Items, err = loadItems(ctx, r.DB, orderID)
	if err != nil {
		return Order{}, err
	}
	return out, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, created_at, status FROM orders ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		var o Order
		var status string
		if err := rows.Scan(&o.ID, &o.CreatedAt, &status); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = Status(status)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := loadItems(ctx, r.DB, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

// querier dipenuhi oleh pgx.Tx maupun *pgxpool.Pool.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var (
	_ querier = (pgx.Tx)(nil)
	_ querier = (*pgxpool.Pool)(nil)
)

func loadItems(ctx context.Context, q querier, orderID string) ([]OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, product_id, quantity
		FROM order_items WHERE order_id=$1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make([]OrderItem, 0)
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
