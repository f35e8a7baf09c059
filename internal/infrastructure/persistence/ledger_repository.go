package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormLedgerRepository implements EntryRepository using GORM.
// The ledger table is insert-only; no update or delete path exists here.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append persists a new ledger entry
func (r *GormLedgerRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByProduct returns the most recent entries for a product, newest first
func (r *GormLedgerRepository) FindByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]ledger.Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	entries := make([]ledger.Entry, 0)
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByProductChronological returns every entry for a product, oldest first
func (r *GormLedgerRepository) FindByProductChronological(ctx context.Context, productID uuid.UUID) ([]ledger.Entry, error) {
	entries := make([]ledger.Entry, 0)
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormLedgerRepository implements EntryRepository
var _ ledger.EntryRepository = (*GormLedgerRepository)(nil)
