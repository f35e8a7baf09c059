package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeDuplicateSku is used when a SKU collides with an existing product
	ErrCodeDuplicateSku = "ERR_DUPLICATE_SKU"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeNegativeInventory is used when an adjustment would drive stock below zero
	ErrCodeNegativeInventory = "ERR_NEGATIVE_INVENTORY"
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Persistence error codes
const (
	// ErrCodePersistence is used when the storage backend fails
	ErrCodePersistence = "ERR_PERSISTENCE"
	// ErrCodeLedgerRollbackFailed is used when a compensating quantity
	// rollback fails after a ledger append error
	ErrCodeLedgerRollbackFailed = "ERR_LEDGER_ROLLBACK_FAILED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeDuplicateSku: http.StatusConflict,
	ErrCodeConflict:     http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeNegativeInventory: http.StatusUnprocessableEntity,
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,

	// Persistence errors -> 500 Internal Server Error
	ErrCodePersistence:          http.StatusInternalServerError,
	ErrCodeLedgerRollbackFailed: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Oversized payloads -> 413 Request Entity Too Large
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain-layer error codes to the
// standardized API error code format
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                 ErrCodeNotFound,
	"DUPLICATE_SKU":             ErrCodeDuplicateSku,
	"NEGATIVE_INVENTORY":        ErrCodeNegativeInventory,
	"PERSISTENCE_ERROR":         ErrCodePersistence,
	"LEDGER_ROLLBACK_FAILED":    ErrCodeLedgerRollbackFailed,
	"LEDGER_CONTRACT_VIOLATION": ErrCodeInternal,
	"VALIDATION_ERROR":          ErrCodeValidation,
	"INVALID_INPUT":             ErrCodeInvalidInput,
	"INVALID_NAME":              ErrCodeValidation,
	"INVALID_SKU":               ErrCodeValidation,
	"INVALID_CATEGORY":          ErrCodeValidation,
	"INVALID_QUANTITY":          ErrCodeValidation,
	"INVALID_PRICE":             ErrCodeValidation,
	"INVALID_STATUS":            ErrCodeValidation,
	"INVALID_DELTA":             ErrCodeValidation,
	"INVALID_ACTION":            ErrCodeValidation,
	"INVALID_PRODUCT":           ErrCodeValidation,
	"BAD_REQUEST":               ErrCodeBadRequest,
	"INTERNAL_ERROR":            ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
