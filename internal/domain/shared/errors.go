package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrDuplicateSku      = NewDomainError("DUPLICATE_SKU", "SKU already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrNegativeInventory = NewDomainError("NEGATIVE_INVENTORY", "Adjustment would result in negative inventory")
	ErrPersistence       = NewDomainError("PERSISTENCE_ERROR", "Persistence backend failure")
)

// ErrLedgerRollbackFailed signals that a quantity write could not be rolled
// back after a failed ledger append. The catalog and ledger may disagree at
// this point, which is an internal-consistency violation rather than an
// ordinary persistence failure.
var ErrLedgerRollbackFailed = NewDomainError("LEDGER_ROLLBACK_FAILED", "Failed to roll back quantity after ledger append failure")
