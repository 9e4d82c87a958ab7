package shop

import (
	"errors"
	"fmt"
)

var ErrOrderNotFound = errors.New("order not found")

type ProductNotFoundError struct {
	ID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %s not found", e.ID)
}

// InsufficientStockError: stok tersisa tidak cukup untuk qty yang diminta.
// Available = stok yang masih bisa dipakai request ini (untuk update order,
// sudah termasuk qty lama yang dikembalikan dulu).
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for product %s: available %d, requested %d",
		e.Name, e.Available, e.Requested)
}
