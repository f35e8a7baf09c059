package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/ledger"
)

// AdjustInventoryRequest represents a manual quantity adjustment
type AdjustInventoryRequest struct {
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"max=255"`
}

// HistoryFilter represents query options for a product's ledger history
type HistoryFilter struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// LedgerEntryResponse represents a ledger entry in API responses
type LedgerEntryResponse struct {
	ID               uuid.UUID `json:"id"`
	ProductID        uuid.UUID `json:"product_id"`
	Action           string    `json:"action"`
	QuantityChange   int64     `json:"quantity_change"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	Reason           string    `json:"reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToLedgerEntryResponse converts a domain Entry to LedgerEntryResponse
func ToLedgerEntryResponse(e *ledger.Entry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:               e.ID,
		ProductID:        e.ProductID,
		Action:           e.Action.String(),
		QuantityChange:   e.QuantityChange,
		PreviousQuantity: e.PreviousQuantity,
		NewQuantity:      e.NewQuantity,
		Reason:           e.Reason,
		CreatedAt:        e.CreatedAt,
	}
}
