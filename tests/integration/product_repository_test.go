package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/catalog"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, name, sku, category string, quantity int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, sku, category, quantity, decimal.NewFromFloat(9.99))
	require.NoError(t, err)
	return product
}

// TestProductRepository_Integration tests the ProductRepository against a real PostgreSQL database
func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormProductRepository(testDB.DB)
	ctx := context.Background()

	t.Run("Create and FindByID", func(t *testing.T) {
		testDB.CleanTables()

		product := newTestProduct(t, "Test Product", "PROD-001", "Hardware", 5)
		require.NoError(t, repo.Create(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
		assert.Equal(t, product.Sku, found.Sku)
		assert.Equal(t, product.Name, found.Name)
		assert.Equal(t, int64(5), found.Quantity)
		assert.True(t, product.Price.Equal(found.Price))
	})

	t.Run("Create enforces SKU uniqueness at the database", func(t *testing.T) {
		testDB.CleanTables()

		first := newTestProduct(t, "First", "PROD-001", "Hardware", 1)
		require.NoError(t, repo.Create(ctx, first))

		second := newTestProduct(t, "Second", "PROD-001", "Software", 2)
		err := repo.Create(ctx, second)
		assert.ErrorIs(t, err, shared.ErrDuplicateSku)
	})

	t.Run("Save surfaces duplicate SKU on update", func(t *testing.T) {
		testDB.CleanTables()

		require.NoError(t, repo.Create(ctx, newTestProduct(t, "First", "PROD-001", "Hardware", 1)))
		second := newTestProduct(t, "Second", "PROD-002", "Hardware", 1)
		require.NoError(t, repo.Create(ctx, second))

		require.NoError(t, second.UpdateSku("PROD-001"))
		assert.ErrorIs(t, repo.Save(ctx, second), shared.ErrDuplicateSku)
	})

	t.Run("FindBySku", func(t *testing.T) {
		testDB.CleanTables()

		product := newTestProduct(t, "Widget", "PROD-010", "Hardware", 3)
		require.NoError(t, repo.Create(ctx, product))

		found, err := repo.FindBySku(ctx, "PROD-010")
		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)

		_, err = repo.FindBySku(ctx, "NO-SUCH-SKU")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindAll with pagination and sorting", func(t *testing.T) {
		testDB.CleanTables()

		for i := 1; i <= 7; i++ {
			p := newTestProduct(t, fmt.Sprintf("Product %d", i), fmt.Sprintf("PROD-%03d", i), "Hardware", int64(i))
			require.NoError(t, repo.Create(ctx, p))
		}

		filter := shared.Filter{Page: 2, PageSize: 3, OrderBy: "quantity", OrderDir: "desc"}
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, int64(4), products[0].Quantity)
		assert.Equal(t, int64(2), products[2].Quantity)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})

	t.Run("FindAll ignores sort fields outside the whitelist", func(t *testing.T) {
		testDB.CleanTables()

		require.NoError(t, repo.Create(ctx, newTestProduct(t, "A", "PROD-001", "Hardware", 1)))

		filter := shared.Filter{OrderBy: "quantity; DROP TABLE products;--"}
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("FindAll filters by category and search", func(t *testing.T) {
		testDB.CleanTables()

		require.NoError(t, repo.Create(ctx, newTestProduct(t, "Alpha Widget", "PROD-001", "Hardware", 1)))
		require.NoError(t, repo.Create(ctx, newTestProduct(t, "Beta Widget", "PROD-002", "Software", 1)))

		byCategory, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]any{"category": "Software"}})
		require.NoError(t, err)
		require.Len(t, byCategory, 1)
		assert.Equal(t, "Beta Widget", byCategory[0].Name)

		bySearch, err := repo.FindAll(ctx, shared.Filter{Search: "alpha"})
		require.NoError(t, err)
		require.Len(t, bySearch, 1)
		assert.Equal(t, "Alpha Widget", bySearch[0].Name)
	})

	t.Run("ListCategories returns sorted distinct names", func(t *testing.T) {
		testDB.CleanTables()

		require.NoError(t, repo.Create(ctx, newTestProduct(t, "A", "PROD-001", "Software", 1)))
		require.NoError(t, repo.Create(ctx, newTestProduct(t, "B", "PROD-002", "Hardware", 1)))
		require.NoError(t, repo.Create(ctx, newTestProduct(t, "C", "PROD-003", "Hardware", 1)))

		categories, err := repo.ListCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hardware", "Software"}, categories)
	})

	t.Run("Delete returns ErrNotFound for missing rows", func(t *testing.T) {
		testDB.CleanTables()

		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})

	t.Run("negative quantity is rejected by the CHECK constraint", func(t *testing.T) {
		testDB.CleanTables()

		product := newTestProduct(t, "Widget", "PROD-001", "Hardware", 5)
		require.NoError(t, repo.Create(ctx, product))

		// Bypass the aggregate guard to prove the schema is the last line
		err := testDB.DB.Exec("UPDATE products SET quantity = -1 WHERE id = ?", product.ID).Error
		assert.Error(t, err)
	})
}
