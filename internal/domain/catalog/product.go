package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// IsValid checks if the status is one of the allowed values
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product represents a catalog entry identified by its SKU.
// It is the aggregate root for product-related operations. Quantity is owned
// by the adjustment path: every change goes through ApplyQuantityChange so a
// matching ledger entry can be appended in the same transaction.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Sku         string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_products_sku"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Quantity    int64           `gorm:"not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Supplier    string          `gorm:"type:varchar(200)"`
	Description string          `gorm:"type:text"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with its starting quantity.
// The caller is responsible for recording the initial_stock ledger entry.
func NewProduct(name, sku, category string, quantity int64, price decimal.Decimal) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateSku(sku); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Sku:               strings.TrimSpace(sku),
		Category:          category,
		Quantity:          quantity,
		Price:             price,
		Status:            ProductStatusActive,
	}, nil
}

// Update updates the product's descriptive fields. Quantity is deliberately
// excluded: quantity changes go through ApplyQuantityChange.
func (p *Product) Update(name, category string, price decimal.Decimal, supplier, description string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Name = name
	p.Category = category
	p.Price = price
	p.Supplier = supplier
	p.Description = description
	p.UpdatedAt = time.Now().UTC()
	p.IncrementVersion()

	return nil
}

// UpdateSku changes the product's SKU.
// Note: external systems reference products by SKU, so use with caution.
func (p *Product) UpdateSku(sku string) error {
	if err := validateSku(sku); err != nil {
		return err
	}

	p.Sku = strings.TrimSpace(sku)
	p.UpdatedAt = time.Now().UTC()
	p.IncrementVersion()

	return nil
}

// SetSupplier sets the optional supplier text
func (p *Product) SetSupplier(supplier string) {
	p.Supplier = supplier
	p.UpdatedAt = time.Now().UTC()
	p.IncrementVersion()
}

// SetDescription sets the optional description text
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now().UTC()
	p.IncrementVersion()
}

// ChangeStatus sets the product status
func (p *Product) ChangeStatus(status ProductStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be one of: active, inactive, discontinued")
	}

	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	p.IncrementVersion()

	return nil
}

// ApplyQuantityChange applies a signed delta to the current quantity.
// A zero delta is rejected (a no-op ledger entry is meaningless) and a delta
// that would drive the quantity below zero leaves the product untouched.
func (p *Product) ApplyQuantityChange(delta int64) error {
	if delta == 0 {
		return shared.NewDomainError("INVALID_DELTA", "Quantity change must be non-zero")
	}

	newQuantity := p.Quantity + delta
	if newQuantity < 0 {
		return shared.ErrNegativeInventory
	}

	p.Quantity = newQuantity
	p.UpdatedAt = time.Now().UTC()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsDiscontinued returns true if the product is discontinued
func (p *Product) IsDiscontinued() bool {
	return p.Status == ProductStatusDiscontinued
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validateSku(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 100 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 100 characters")
	}
	return nil
}

func validateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}
	return nil
}

func validateQuantity(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}
