package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateAndGet(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := &ProductRepo{DB: pool}

	desc := "a test product"
	created, err := repo.Create(ctx, ProductInput{
		Name:            "Widget",
		Description:     &desc,
		Price:           10.5,
		QuantityInStock: 100,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.Equal(t, 10.5, got.Price)
	assert.Equal(t, 100, got.QuantityInStock)
}

func TestProductGetNotFound(t *testing.T) {
	pool := testPool(t)
	_, err := (&ProductRepo{DB: pool}).Get(context.Background(),
		"00000000-0000-0000-0000-000000000000")

	var pnf *ProductNotFoundError
	assert.True(t, errors.As(err, &pnf))
}

func TestProductPatchAppliesOnlyGivenFields(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := &ProductRepo{DB: pool}
	p := seedProduct(t, pool, "Widget", 100)

	newPrice := 19.99
	updated, err := repo.Update(ctx, p.ID, ProductPatch{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 19.99, updated.Price)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, 100, updated.QuantityInStock)

	newName := "Gadget"
	newStock := 42
	updated, err = repo.Update(ctx, p.ID, ProductPatch{Name: &newName, QuantityInStock: &newStock})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", updated.Name)
	assert.Equal(t, 42, updated.QuantityInStock)
	assert.Equal(t, 19.99, updated.Price)
}

func TestProductDelete(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := &ProductRepo{DB: pool}
	p := seedProduct(t, pool, "Widget", 10)

	require.NoError(t, repo.Delete(ctx, p.ID))

	var pnf *ProductNotFoundError
	_, err := repo.Get(ctx, p.ID)
	assert.True(t, errors.As(err, &pnf))

	err = repo.Delete(ctx, p.ID)
	assert.True(t, errors.As(err, &pnf))
}

func TestProductList(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := &ProductRepo{DB: pool}
	seedProduct(t, pool, "Zebra", 1)
	seedProduct(t, pool, "Apple", 1)

	ps, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	// ordered by name
	assert.Equal(t, "Apple", ps[0].Name)
	assert.Equal(t, "Zebra", ps[1].Name)
}
