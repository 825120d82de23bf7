package repositories_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productsapi/internal/models"
	"productsapi/internal/repositories"
)

func TestInMemoryProductRepository_IDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewInMemoryProductRepository()

	first := &models.Product{Name: "A", Price: decimal.Zero}
	second := &models.Product{Name: "B", Price: decimal.Zero}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	require.NoError(t, repo.Delete(ctx, second.ID))
	third := &models.Product{Name: "C", Price: decimal.Zero}
	require.NoError(t, repo.Create(ctx, third))
	assert.Equal(t, 3, third.ID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []int{1, 3}, []int{all[0].ID, all[1].ID})
}

func TestInMemoryProductRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewInMemoryProductRepository()

	p := &models.Product{Name: "A", Price: decimal.Zero, Quantity: 1}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Quantity = 99

	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Quantity)
}

func TestInMemoryProductRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewInMemoryProductRepository()

	_, err := repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &models.Product{ID: 1}), repositories.ErrProductNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 1), repositories.ErrProductNotFound)
}
