package ledger

import (
	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/shared"
)

// Action represents the kind of quantity change a ledger entry records
type Action string

const (
	// ActionInitialStock is the baseline entry written when a product is created
	ActionInitialStock Action = "initial_stock"
	// ActionStockIncrease is a quantity increase driven by a product update
	ActionStockIncrease Action = "stock_increase"
	// ActionStockDecrease is a quantity decrease driven by a product update
	ActionStockDecrease Action = "stock_decrease"
	// ActionAdjustmentIncrease is a positive manual adjustment
	ActionAdjustmentIncrease Action = "adjustment_increase"
	// ActionAdjustmentDecrease is a negative manual adjustment
	ActionAdjustmentDecrease Action = "adjustment_decrease"
	// ActionImport is an insertion made by the bulk import pipeline
	ActionImport Action = "import"
)

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}

// IsValid returns true if the action is one of the known values
func (a Action) IsValid() bool {
	switch a {
	case ActionInitialStock,
		ActionStockIncrease,
		ActionStockDecrease,
		ActionAdjustmentIncrease,
		ActionAdjustmentDecrease,
		ActionImport:
		return true
	}
	return false
}

// Entry is an immutable record of one quantity change. Entries are only ever
// appended; corrections are made with new entries. An entry may outlive its
// product: history is retained when a product is deleted.
type Entry struct {
	shared.BaseEntity
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index:idx_ledger_product_time,priority:1"`
	Action           Action    `gorm:"type:varchar(30);not null"`
	QuantityChange   int64     `gorm:"not null"`
	PreviousQuantity int64     `gorm:"not null"`
	NewQuantity      int64     `gorm:"not null"`
	Reason           string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "inventory_ledger"
}

// NewEntry creates a ledger entry, enforcing the chain contract:
// the change is non-zero, both balances are non-negative, and
// newQuantity - previousQuantity equals the change. Violations here are
// programming errors in the caller, not user input problems.
func NewEntry(productID uuid.UUID, action Action, quantityChange, previousQuantity, newQuantity int64, reason string) (*Entry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Invalid ledger action")
	}
	if quantityChange == 0 {
		return nil, shared.NewDomainError("INVALID_DELTA", "Quantity change must be non-zero")
	}
	if previousQuantity < 0 || newQuantity < 0 {
		return nil, shared.NewDomainError("LEDGER_CONTRACT_VIOLATION", "Ledger balances cannot be negative")
	}
	if newQuantity-previousQuantity != quantityChange {
		return nil, shared.NewDomainError("LEDGER_CONTRACT_VIOLATION", "Quantity change does not match balance delta")
	}

	return &Entry{
		BaseEntity:       shared.NewBaseEntity(),
		ProductID:        productID,
		Action:           action,
		QuantityChange:   quantityChange,
		PreviousQuantity: previousQuantity,
		NewQuantity:      newQuantity,
		Reason:           reason,
	}, nil
}

// IsIncrease returns true if the entry increased the quantity
func (e *Entry) IsIncrease() bool {
	return e.QuantityChange > 0
}

// IsDecrease returns true if the entry decreased the quantity
func (e *Entry) IsDecrease() bool {
	return e.QuantityChange < 0
}
