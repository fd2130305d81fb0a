package service

import (
	"errors"
	"fmt"

	"github.com/Tabish5858/inventory-managment-system/pkg/validator"
)

// Error taxonomy surfaced to the transport layer. Handlers map these to
// client-error responses; nothing is retried or recovered locally.
var (
	ErrDuplicateSKU        = errors.New("product with this SKU already exists")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrProductIDRequired keeps the exact message clients depend on.
	ErrProductIDRequired = errors.New("Product ID is required")
)

// ValidationError reports the first request field that failed validation.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", e.Field, e.Tag)
}

func validateRequest(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}
	return nil
}
