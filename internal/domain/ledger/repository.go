package ledger

import (
	"context"

	"github.com/google/uuid"
)

// EntryRepository defines the interface for ledger persistence.
// The ledger is append-only: there is no update or delete operation.
type EntryRepository interface {
	// Append persists a new ledger entry
	Append(ctx context.Context, entry *Entry) error

	// FindByProduct returns the most recent entries for a product,
	// newest first, capped at limit
	FindByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]Entry, error)

	// FindByProductChronological returns every entry for a product in
	// creation order, oldest first. Replaying the sequence reconstructs
	// the product's current quantity.
	FindByProductChronological(ctx context.Context, productID uuid.UUID) ([]Entry, error)
}
