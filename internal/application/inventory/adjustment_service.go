package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/catalog"
	"github.com/stockledger/backend/internal/domain/ledger"
	"github.com/stockledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Default reasons recorded when the caller does not supply one
const (
	DefaultCreateReason = "Initial product creation"
	DefaultUpdateReason = "Product update"
	DefaultAdjustReason = "Manual adjustment"
	DefaultImportReason = "CSV import"
)

// AdjustmentService is the sole writer of Product.Quantity. Every quantity
// mutation runs through ApplyDelta or CreateWithInitialStock, so the ledger
// records each change and replaying a product's entries always reconstructs
// its current quantity.
type AdjustmentService struct {
	scope      TransactionScope
	ledgerRepo ledger.EntryRepository
	logger     *zap.Logger
}

// NewAdjustmentService creates a new AdjustmentService
func NewAdjustmentService(scope TransactionScope, ledgerRepo ledger.EntryRepository, logger *zap.Logger) *AdjustmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdjustmentService{
		scope:      scope,
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// ApplyDelta applies a signed quantity change to a product and appends the
// matching ledger entry in the same transaction. The product row is locked
// for the duration, so concurrent deltas on the same product serialize
// instead of losing updates. A zero delta is rejected; a delta that would
// drive the quantity negative leaves product and ledger untouched.
func (s *AdjustmentService) ApplyDelta(ctx context.Context, productID uuid.UUID, delta int64, action ledger.Action, reason string) (*catalog.Product, error) {
	if delta == 0 {
		return nil, shared.NewDomainError("INVALID_DELTA", "Quantity change must be non-zero")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Invalid ledger action")
	}

	var product *catalog.Product
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products := repos.Products()

		p, err := products.FindByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		previous := p.Quantity
		if err := p.ApplyQuantityChange(delta); err != nil {
			return err
		}
		if err := products.Save(ctx, p); err != nil {
			return err
		}

		entry, err := ledger.NewEntry(p.ID, action, delta, previous, p.Quantity, reason)
		if err != nil {
			return err
		}
		if err := repos.Ledger().Append(ctx, entry); err != nil {
			return s.compensate(ctx, products, p, previous, err)
		}

		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Applied quantity delta",
		zap.String("product_id", productID.String()),
		zap.Int64("delta", delta),
		zap.String("action", action.String()),
		zap.Int64("new_quantity", product.Quantity),
	)

	return product, nil
}

// Adjust applies an explicit manual adjustment. The action is derived from
// the sign of the delta; an empty reason defaults to "Manual adjustment".
func (s *AdjustmentService) Adjust(ctx context.Context, productID uuid.UUID, delta int64, reason string) (*catalog.Product, error) {
	action := ledger.ActionAdjustmentIncrease
	if delta < 0 {
		action = ledger.ActionAdjustmentDecrease
	}
	if reason == "" {
		reason = DefaultAdjustReason
	}
	return s.ApplyDelta(ctx, productID, delta, action, reason)
}

// CreateWithInitialStock inserts a new product and appends its baseline
// ledger entry in one transaction. The action must be initial_stock for
// direct creation or import for bulk-import rows. A product created with
// zero quantity gets no entry: its ledger starts with the first change.
func (s *AdjustmentService) CreateWithInitialStock(ctx context.Context, product *catalog.Product, action ledger.Action, reason string) error {
	if action != ledger.ActionInitialStock && action != ledger.ActionImport {
		return shared.NewDomainError("INVALID_ACTION", "Creation must use the initial_stock or import action")
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products := repos.Products()

		if err := products.Create(ctx, product); err != nil {
			return err
		}
		if product.Quantity == 0 {
			return nil
		}

		entry, err := ledger.NewEntry(product.ID, action, product.Quantity, 0, product.Quantity, reason)
		if err != nil {
			return err
		}
		if err := repos.Ledger().Append(ctx, entry); err != nil {
			// A failed append discards the insert with the transaction;
			// no quantity compensation is needed because the row itself
			// is rolled back.
			return fmt.Errorf("%w: %v", shared.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Created product with initial stock",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.Sku),
		zap.Int64("quantity", product.Quantity),
		zap.String("action", action.String()),
	)

	return nil
}

// GetHistory returns a product's ledger entries, newest first.
// The product may already be deleted; its history remains readable.
func (s *AdjustmentService) GetHistory(ctx context.Context, productID uuid.UUID, limit int) ([]LedgerEntryResponse, error) {
	if limit <= 0 {
		limit = 50
	}

	entries, err := s.ledgerRepo.FindByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses, nil
}

// compensate restores a product's quantity after a failed ledger append.
// Under a real database transaction the enclosing rollback already discards
// the quantity write and the extra save is discarded with it; under a
// non-transactional scope this is the explicit compensating write the
// atomicity contract requires. A failed compensation means catalog and
// ledger may disagree, which is surfaced as its own error.
func (s *AdjustmentService) compensate(ctx context.Context, products catalog.ProductRepository, p *catalog.Product, previous int64, appendErr error) error {
	s.logger.Error("Ledger append failed, rolling back quantity",
		zap.String("product_id", p.ID.String()),
		zap.Error(appendErr),
	)

	p.Quantity = previous
	if rbErr := products.Save(ctx, p); rbErr != nil {
		s.logger.Error("Quantity rollback failed after ledger append failure",
			zap.String("product_id", p.ID.String()),
			zap.Error(rbErr),
		)
		return shared.ErrLedgerRollbackFailed
	}
	return fmt.Errorf("%w: %v", shared.ErrPersistence, appendErr)
}
