package httpx

import (
	"context"

	"github.com/vdraganov/go-shop-api/internal/shop"
)

// Kontrak store yang dibutuhkan handler. Implementasi produksi ada di
// internal/shop; test pakai fake.

type ProductStore interface {
	Create(ctx context.Context, in shop.ProductInput) (shop.Product, error)
	List(ctx context.Context) ([]shop.Product, error)
	Get(ctx context.Context, id string) (shop.Product, error)
	Update(ctx context.Context, id string, patch shop.ProductPatch) (shop.Product, error)
	Delete(ctx context.Context, id string) error
}

type OrderStore interface {
	Create(ctx context.Context, status shop.Status, items []shop.ItemInput) (shop.Order, error)
	List(ctx context.Context) ([]shop.Order, error)
	Get(ctx context.Context, id string) (shop.Order, error)
	Update(ctx context.Context, id string, patch shop.OrderPatch) error
	Delete(ctx context.Context, id string) (shop.Order, error)
}

var (
	_ ProductStore = (*shop.ProductRepo)(nil)
	_ OrderStore   = (*shop.OrderRepo)(nil)
)
