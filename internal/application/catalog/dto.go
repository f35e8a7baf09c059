package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Sku         string           `json:"sku" binding:"required,min=1,max=100"`
	Category    string           `json:"category" binding:"required,min=1,max=100"`
	Quantity    *int64           `json:"quantity" binding:"required,min=0"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Supplier    string           `json:"supplier" binding:"max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Status      string           `json:"status" binding:"omitempty,oneof=active inactive discontinued"`
}

// UpdateProductRequest represents a full-replacement update of a product.
// A quantity differing from the stored value is routed through the
// adjustment path, never written directly.
type UpdateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Sku         string           `json:"sku" binding:"required,min=1,max=100"`
	Category    string           `json:"category" binding:"required,min=1,max=100"`
	Quantity    *int64           `json:"quantity" binding:"required,min=0"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Supplier    string           `json:"supplier" binding:"max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Status      string           `json:"status" binding:"omitempty,oneof=active inactive discontinued"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Sku         string          `json:"sku"`
	Category    string          `json:"category"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Supplier    string          `json:"supplier,omitempty"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	Status    string `form:"status" binding:"omitempty,oneof=active inactive discontinued"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Sku:         p.Sku,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Supplier:    p.Supplier,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}
