package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForUpdate finds a product by ID and row-locks it for the
	// duration of the surrounding transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySku finds a product by its SKU
	FindBySku(ctx context.Context, sku string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindAllOrderedByName returns every product, name ascending
	FindAllOrderedByName(ctx context.Context) ([]Product, error)

	// ListCategories returns the sorted distinct category names
	ListCategories(ctx context.Context) ([]string, error)

	// Create inserts a new product. A SKU collision surfaces as
	// shared.ErrDuplicateSku (detected via the unique constraint, not a
	// pre-check, so concurrent creates cannot race past it).
	Create(ctx context.Context, product *Product) error

	// Save updates an existing product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product. Ledger entries are retained.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
