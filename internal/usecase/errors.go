package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes. Clients branch on these, never on the
// human-readable message.
type ErrorCode string

const (
	CodeValidation        ErrorCode = "VALIDATION_ERROR"
	CodeNotLoggedIn       ErrorCode = "NOT_LOGGED_IN"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeUnavailable       ErrorCode = "UNAVAILABLE"
	CodeInsufficientStock ErrorCode = "INSUFFICIENT_STOCK"
	CodeEmptyCart         ErrorCode = "EMPTY_CART"
	CodeInvalidState      ErrorCode = "INVALID_STATE"
	CodeConflict          ErrorCode = "CONFLICT"
	CodeStoreTimeout      ErrorCode = "STORE_TIMEOUT"
	CodeStoreError        ErrorCode = "STORE_ERROR"
)

type Error struct {
	Status  int
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func NewError(status int, code ErrorCode, message string) error {
	return &Error{Status: status, Code: code, Message: message}
}

func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func newValidationError(message string) error {
	return NewError(http.StatusBadRequest, CodeValidation, message)
}

func newNotLoggedIn() error {
	return NewError(http.StatusUnauthorized, CodeNotLoggedIn, "not logged in")
}

func newNotFound(message string) error {
	return NewError(http.StatusNotFound, CodeNotFound, message)
}

func newUnavailable(message string) error {
	return NewError(http.StatusBadRequest, CodeUnavailable, message)
}

func newInsufficientStock(message string) error {
	return NewError(http.StatusBadRequest, CodeInsufficientStock, message)
}

func newEmptyCart() error {
	return NewError(http.StatusBadRequest, CodeEmptyCart, "cart is empty")
}

func newInvalidState(message string) error {
	return NewError(http.StatusBadRequest, CodeInvalidState, message)
}

func newConflict(message string) error {
	return NewError(http.StatusConflict, CodeConflict, message)
}

// storeError classifies persistence failures: deadline/cancellation
// becomes the retryable StoreTimeout, everything else StoreError.
func storeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewError(http.StatusGatewayTimeout, CodeStoreTimeout, "store timeout, safe to retry")
	}
	return NewError(http.StatusInternalServerError, CodeStoreError, "db error")
}
