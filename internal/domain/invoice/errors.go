package invoice

import (
	"fmt"
)

// ValidationError represents an error that occurs during invoice validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Validate checks the rules an invoice must satisfy before it is stored.
// Rendering never calls this; the renderer copes with any input.
func (i *Invoice) Validate() error {
	if i.From.IsZero() {
		return NewValidationError("from", "sender details are required")
	}
	if i.To.IsZero() {
		return NewValidationError("to", "recipient details are required")
	}
	if len(i.Items) == 0 {
		return NewValidationError("items", "at least one item is required")
	}
	for idx, item := range i.Items {
		if item.Description == "" || !item.Quantity.Valid || !item.Price.Valid ||
			!item.Quantity.Decimal.IsPositive() || !item.Price.Decimal.IsPositive() {
			return NewValidationError(fmt.Sprintf("items[%d]", idx),
				"each item must have a description, quantity > 0 and price > 0")
		}
	}
	if i.TaxRate.Valid && i.TaxRate.Decimal.IsNegative() {
		return NewValidationError("tax_rate", "must be non negative")
	}
	if i.DiscountRate.Valid && i.DiscountRate.Decimal.IsNegative() {
		return NewValidationError("discount_rate", "must be non negative")
	}
	return nil
}
