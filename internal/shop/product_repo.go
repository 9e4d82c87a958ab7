package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepo struct{ DB *pgxpool.Pool }

func (r *ProductRepo) Create(ctx context.Context, in ProductInput) (Product, error) {
	p := Product{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		QuantityInStock: in.QuantityInStock,
	}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products(id, name, description, price, quantity_in_stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Description, p.Price, p.QuantityInStock,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, description, price, quantity_in_stock, created_at, updated_at
		FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.QuantityInStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, description, price, quantity_in_stock, created_at, updated_at
		FROM products WHERE id=$1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.QuantityInStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, &ProductNotFoundError{ID: id}
		}
		return Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

// Update menerapkan patch field-per-field di atas row yang di-lock,
// supaya partial update tidak balapan dengan update lain.
func (r *ProductRepo) Update(ctx context.Context, id string, patch ProductPatch) (Product, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Product{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var p Product
	err = tx.QueryRow(ctx, `
		SELECT id, name, description, price, quantity_in_stock, created_at, updated_at
		FROM products WHERE id=$1 FOR UPDATE`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.QuantityInStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, &ProductNotFoundError{ID: id}
		}
		return Product{}, fmt.Errorf("select product for update: %w", err)
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.QuantityInStock != nil {
		p.QuantityInStock = *patch.QuantityInStock
	}

	err = tx.QueryRow(ctx, `
		UPDATE products
		SET name=$2, description=$3, price=$4, quantity_in_stock=$5, updated_at=now()
		WHERE id=$1
		RETURNING updated_at`,
		p.ID, p.Name, p.Description, p.Price, p.QuantityInStock,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return Product{}, fmt.Errorf("update product: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Product{}, fmt.Errorf("commit update product: %w", err)
	}
	return p, nil
}

// Delete menghapus product; order_items yang menunjuk ke product ini
// ikut terhapus lewat FK cascade.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return &ProductNotFoundError{ID: id}
	}
	return nil
}
