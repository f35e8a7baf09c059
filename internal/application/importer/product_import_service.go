package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stockledger/backend/internal/application/inventory"
	"github.com/stockledger/backend/internal/domain/catalog"
	"github.com/stockledger/backend/internal/domain/ledger"
	"github.com/stockledger/backend/internal/domain/shared"
	csvimport "github.com/stockledger/backend/internal/infrastructure/import"
)

// requiredColumns are the fields every import row must provide
var requiredColumns = []string{"name", "sku", "category"}

// ProductImportResult summarizes a bulk import run
type ProductImportResult struct {
	TotalRows    int                  `json:"total_rows"`
	ImportedRows int                  `json:"imported_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Errors       []csvimport.RowError `json:"errors,omitempty"`
	IsTruncated  bool                 `json:"is_truncated,omitempty"`
	TotalErrors  int                  `json:"total_errors,omitempty"`
	Replayed     bool                 `json:"replayed,omitempty"`
}

// ProductImportService imports products from CSV files. Rows are processed
// sequentially in source order; a failing row is recorded and skipped without
// aborting the run. All stock created through an import flows through the
// adjustment service so each imported product gets a ledger entry.
type ProductImportService struct {
	adjustments    *inventory.AdjustmentService
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	maxErrors      int
	logger         *zap.Logger
}

// NewProductImportService creates a new ProductImportService. The idempotency
// store may be nil, in which case Idempotency-Key replay is disabled.
func NewProductImportService(
	adjustments *inventory.AdjustmentService,
	idempotency shared.IdempotencyStore,
	idempotencyTTL time.Duration,
	maxErrors int,
	logger *zap.Logger,
) *ProductImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if idempotencyTTL <= 0 {
		idempotencyTTL = 24 * time.Hour
	}
	return &ProductImportService{
		adjustments:    adjustments,
		idempotency:    idempotency,
		idempotencyTTL: idempotencyTTL,
		maxErrors:      maxErrors,
		logger:         logger,
	}
}

// ImportReader parses a CSV stream and imports its rows
func (s *ProductImportService) ImportReader(ctx context.Context, r io.Reader) (*ProductImportResult, error) {
	parser, err := csvimport.NewCSVParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}

	return s.Import(ctx, rows)
}

// ImportReaderWithKey is ImportReader with optional idempotent replay. When a
// non-empty key is supplied and a previous run stored a summary under it, that
// summary is returned without touching the catalog again.
func (s *ProductImportService) ImportReaderWithKey(ctx context.Context, key string, r io.Reader) (*ProductImportResult, error) {
	if key == "" || s.idempotency == nil {
		return s.ImportReader(ctx, r)
	}

	payload, found, err := s.idempotency.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn("idempotency lookup failed, proceeding with import",
			zap.String("key", key),
			zap.Error(err),
		)
	} else if found {
		var cached ProductImportResult
		if err := json.Unmarshal(payload, &cached); err == nil {
			cached.Replayed = true
			return &cached, nil
		}
		s.logger.Warn("discarding unreadable cached import result", zap.String("key", key))
	}

	result, err := s.ImportReader(ctx, r)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := s.idempotency.Store(ctx, key, payload, s.idempotencyTTL); err != nil {
			s.logger.Warn("failed to store import result for replay",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	return result, nil
}

// Import processes parsed rows sequentially in source order
func (s *ProductImportService) Import(ctx context.Context, rows []*csvimport.Row) (*ProductImportResult, error) {
	result := &ProductImportResult{
		TotalRows: len(rows),
	}
	rowErrors := csvimport.NewErrorCollection(s.maxErrors)

	for _, row := range rows {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.importRow(ctx, row, result, rowErrors)
	}

	result.Errors = rowErrors.Errors()
	result.IsTruncated = rowErrors.IsTruncated()
	result.TotalErrors = rowErrors.TotalCount()

	s.logger.Info("product import finished",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported_rows", result.ImportedRows),
		zap.Int("error_rows", result.ErrorRows),
	)

	return result, nil
}

// importRow imports a single row. Row-level failures are recorded in the
// error collection and never abort the surrounding import.
func (s *ProductImportService) importRow(ctx context.Context, row *csvimport.Row, result *ProductImportResult, rowErrors *csvimport.ErrorCollection) {
	var missing []string
	for _, col := range requiredColumns {
		if row.Get(col) == "" {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		rowErrors.Add(csvimport.NewRowError(row.Number, strings.Join(missing, ", "),
			csvimport.ErrCodeImportRequiredField,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", "))))
		result.ErrorRows++
		return
	}

	// Numeric fields are coerced leniently: unparsable values become zero
	// rather than failing the row.
	quantity, err := strconv.ParseInt(row.Get("quantity"), 10, 64)
	if err != nil {
		quantity = 0
	}
	price, err := decimal.NewFromString(row.Get("price"))
	if err != nil {
		price = decimal.Zero
	}

	status := catalog.ProductStatus(row.GetOrDefault("status", string(catalog.ProductStatusActive)))
	if !status.IsValid() {
		rowErrors.Add(csvimport.NewRowErrorWithValue(row.Number, "status",
			csvimport.ErrCodeImportInvalidStatus,
			fmt.Sprintf("invalid status '%s'", status), string(status)))
		result.ErrorRows++
		return
	}

	product, err := catalog.NewProduct(row.Get("name"), row.Get("sku"), row.Get("category"), quantity, price)
	if err != nil {
		rowErrors.Add(csvimport.NewRowError(row.Number, "", csvimport.ErrCodeImportValidation, err.Error()))
		result.ErrorRows++
		return
	}
	product.SetSupplier(row.Get("supplier"))
	product.SetDescription(row.Get("description"))
	if status != catalog.ProductStatusActive {
		if err := product.ChangeStatus(status); err != nil {
			rowErrors.Add(csvimport.NewRowError(row.Number, "status", csvimport.ErrCodeImportInvalidStatus, err.Error()))
			result.ErrorRows++
			return
		}
	}

	if err := s.adjustments.CreateWithInitialStock(ctx, product, ledger.ActionImport, inventory.DefaultImportReason); err != nil {
		if errors.Is(err, shared.ErrDuplicateSku) {
			rowErrors.AddDuplicateSkuError(row.Number, product.Sku)
		} else {
			rowErrors.Add(csvimport.NewRowError(row.Number, "", csvimport.ErrCodeImportPersistence,
				fmt.Sprintf("failed to save product: %v", err)))
		}
		result.ErrorRows++
		return
	}

	result.ImportedRows++
}
