package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when a lookup by id or number misses.
var ErrNotFound = errors.New("record not found")

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError reports an illegal state change attempt.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("invalid transition from %s: target status is empty", e.From)
	}
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// ProductUnavailableError reports an attempt to order a disabled product.
type ProductUnavailableError struct {
	Name string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product not available: %s", e.Name)
}

// HTTPStatusFor maps domain errors to response codes. Controllers use it so
// the services never need to know about HTTP.
func HTTPStatusFor(err error) int {
	var (
		ve *ValidationError
		te *InvalidTransitionError
		pe *ProductUnavailableError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &te):
		return http.StatusConflict
	case errors.As(err, &pe):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
