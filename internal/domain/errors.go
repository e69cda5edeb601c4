package domain

import "fmt"

// ValidationError reports a malformed line item field.
type ValidationError struct {
	ProductID int64
	Field     string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid line item (product %d): %s %s", e.ProductID, e.Field, e.Message)
}

// InvalidTransitionError reports an order-status change attempted from a
// state outside the allowed source set for the target.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order transition from %s to %s", e.From, e.To)
}
