package shop

import "time"

type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	Price           float64   `json:"price"`
	QuantityInStock int       `json:"quantity_in_stock"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

type Order struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Status    Status      `json:"status"` // lihat status.go
	Items     []OrderItem `json:"order_items"`
}

type OrderItem struct {
	ID        string `json:"-"`
	OrderID   string `json:"-"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ItemInput adalah satu baris (product, qty) dari request create/update order.
type ItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type ProductInput struct {
	Name            string
	Description     *string
	Price           float64
	QuantityInStock int
}

// ProductPatch: satu slot optional per field yang boleh diubah.
// Field nil = tidak disentuh.
type ProductPatch struct {
	Name            *string
	Description     *string
	Price           *float64
	QuantityInStock *int
}

// OrderPatch: Items nil = daftar item tidak disentuh sama sekali.
// Item yang sudah ada di order tapi tidak ada di Items dibiarkan apa adanya (merge).
type OrderPatch struct {
	Status *Status
	Items  []ItemInput
}
