package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appinv "github.com/stockledger/backend/internal/application/inventory"
	"github.com/stockledger/backend/internal/domain/catalog"
	"github.com/stockledger/backend/internal/domain/ledger"
	"github.com/stockledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExportHeader is the column order used by CSV export and expected by import
var ExportHeader = []string{"name", "sku", "category", "quantity", "price", "supplier", "description", "status"}

// ProductService handles product-related business operations. Quantity
// changes are never written here directly: creation goes through the
// adjustment service and update deltas run inside a transaction scope that
// appends the matching ledger entry.
type ProductService struct {
	productRepo catalog.ProductRepository
	adjustments *appinv.AdjustmentService
	scope       appinv.TransactionScope
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	adjustments *appinv.AdjustmentService,
	scope appinv.TransactionScope,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		adjustments: adjustments,
		scope:       scope,
		logger:      logger,
	}
}

// Create creates a new product and records its initial_stock ledger entry.
// SKU uniqueness is enforced by the database constraint, so two concurrent
// creates with the same SKU cannot both succeed.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := s.buildProduct(req.Name, req.Sku, req.Category, *req.Quantity, *req.Price, req.Supplier, req.Description, req.Status)
	if err != nil {
		return nil, err
	}

	if err := s.adjustments.CreateWithInitialStock(ctx, product, ledger.ActionInitialStock, appinv.DefaultCreateReason); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID returns a product by its ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List returns a filtered, sorted page of products with the total count.
// Count and page share one predicate, so the metadata always matches the
// filter even though they are two reads.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if filter.SortBy == "" {
		filter.SortBy = "name"
	}

	// Build domain filter
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.SortBy,
		OrderDir: filter.SortOrder,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListCategories returns the sorted distinct category names
func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	return s.productRepo.ListCategories(ctx)
}

// Update replaces a product's fields. If the requested quantity differs from
// the stored quantity, the difference is applied as a stock_increase or
// stock_decrease through the ledger; the field writes and the ledger entry
// commit in the same transaction.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	var updated *catalog.Product
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		products := repos.Products()

		product, err := products.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		previous := product.Quantity
		delta := *req.Quantity - previous

		if err := product.Update(req.Name, req.Category, *req.Price, req.Supplier, req.Description); err != nil {
			return err
		}
		if req.Sku != product.Sku {
			if err := product.UpdateSku(req.Sku); err != nil {
				return err
			}
		}
		if req.Status != "" {
			if err := product.ChangeStatus(catalog.ProductStatus(req.Status)); err != nil {
				return err
			}
		}
		if delta != 0 {
			if err := product.ApplyQuantityChange(delta); err != nil {
				return err
			}
		}

		if err := products.Save(ctx, product); err != nil {
			return err
		}

		if delta != 0 {
			action := ledger.ActionStockIncrease
			if delta < 0 {
				action = ledger.ActionStockDecrease
			}
			entry, err := ledger.NewEntry(product.ID, action, delta, previous, product.Quantity, appinv.DefaultUpdateReason)
			if err != nil {
				return err
			}
			// The transaction discards the field and quantity writes if
			// the append fails.
			if err := repos.Ledger().Append(ctx, entry); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrPersistence, err)
			}
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Updated product",
		zap.String("product_id", id.String()),
		zap.String("sku", updated.Sku),
	)

	response := ToProductResponse(updated)
	return &response, nil
}

// Delete removes a product. Its ledger entries are retained as history.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Deleted product", zap.String("product_id", id.String()))
	return nil
}

// ExportCSV writes every product to w in CSV form, ordered by name. Fields
// containing a comma or quote are wrapped in quotes with internal quotes
// doubled, per encoding/csv.
func (s *ProductService) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.productRepo.FindAllOrderedByName(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader); err != nil {
		return err
	}

	for i := range products {
		p := &products[i]
		record := []string{
			p.Name,
			p.Sku,
			p.Category,
			strconv.FormatInt(p.Quantity, 10),
			p.Price.String(),
			p.Supplier,
			p.Description,
			string(p.Status),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// buildProduct assembles a domain product from raw field values
func (s *ProductService) buildProduct(name, sku, category string, quantity int64, price decimal.Decimal, supplier, description, status string) (*catalog.Product, error) {
	product, err := catalog.NewProduct(name, sku, category, quantity, price)
	if err != nil {
		return nil, err
	}

	product.Supplier = supplier
	product.Description = description

	if status != "" {
		if err := product.ChangeStatus(catalog.ProductStatus(status)); err != nil {
			return nil, err
		}
	}

	return product, nil
}
