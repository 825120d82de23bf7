package repositories_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"productsapi/internal/database"
	"productsapi/internal/logger"
	"productsapi/internal/models"
	"productsapi/internal/repositories"
)

// newTestDB opens a private in-memory SQLite database with the products table.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.Target{
		Dialect: database.DialectSQLite,
		DSN:     "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestGORMProductRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	p := &models.Product{Name: "Stapler", Price: decimal.RequireFromString("3.50"), Quantity: 10}
	require.NoError(t, repo.Create(ctx, p))
	assert.Positive(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stapler", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("3.5")), "price %s", got.Price)
	assert.Equal(t, 10, got.Quantity)

	got.Quantity = 5
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
	assert.Equal(t, "Stapler", got.Name)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGORMProductRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	err = repo.Update(ctx, &models.Product{ID: 42, Name: "Ghost", Price: decimal.Zero})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	err = repo.Delete(ctx, 42)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGORMProductRepository_GetAllOrderedAndUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	empty, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	seen := map[int]bool{}
	for _, name := range []string{"Pen", "Pen", "Ruler"} {
		p := &models.Product{Name: name, Price: decimal.NewFromInt(1), Quantity: 1}
		require.NoError(t, repo.Create(ctx, p))
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestGORMProductRepository_FailedWriteLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	p := &models.Product{Name: "Stapler", Price: decimal.NewFromInt(3), Quantity: 10}
	require.NoError(t, repo.Create(ctx, p))

	// Reusing an existing primary key violates the constraint and rolls back.
	dup := &models.Product{ID: p.ID, Name: "Clone", Price: decimal.NewFromInt(1), Quantity: 1}
	assert.Error(t, repo.Create(ctx, dup))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Stapler", all[0].Name)
}

func TestGORMProductRepository_DeletedIDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	first := &models.Product{Name: "Ruler", Price: decimal.RequireFromString("0.99"), Quantity: 1}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Delete(ctx, first.ID))

	second := &models.Product{Name: "Ruler", Price: decimal.RequireFromString("0.99"), Quantity: 1}
	require.NoError(t, repo.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}
