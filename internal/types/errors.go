package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents standard error codes
type ErrorCode string

const (
	ErrInvalidAction    ErrorCode = "INVALID_ACTION"
	ErrInvalidOrderType ErrorCode = "INVALID_ORDER_TYPE"
	ErrInvalidSide      ErrorCode = "INVALID_SIDE"
	ErrInvalidPrice     ErrorCode = "INVALID_PRICE"
	ErrInvalidQuantity  ErrorCode = "INVALID_QUANTITY"
	ErrMissingPrice     ErrorCode = "MISSING_PRICE"
	ErrDuplicateOrderID ErrorCode = "DUPLICATE_ORDER_ID"
	ErrOrderNotFound    ErrorCode = "ORDER_NOT_FOUND"
)

// CodedError is a structured error carrying one of the codes above.
// Validation errors are raised before any book mutation; ORDER_NOT_FOUND is
// the non-fatal outcome of cancelling an unknown id.
type CodedError struct {
	Code    ErrorCode
	Message string
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewCodedError creates a new coded error
func NewCodedError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// CodeOf extracts the error code from an error chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// Common error constructors

func ErrInvalidActionError(action string) *CodedError {
	return NewCodedError(ErrInvalidAction,
		fmt.Sprintf("invalid action %q, must be SUB, CXL or END", action))
}

func ErrInvalidOrderTypeError(providedType string) *CodedError {
	return NewCodedError(ErrInvalidOrderType,
		fmt.Sprintf("invalid order type %q, must be one of LO, MO, IOC, FOK, GTC", providedType))
}

func ErrInvalidSideError(providedSide string) *CodedError {
	return NewCodedError(ErrInvalidSide,
		fmt.Sprintf("invalid side %q, must be B or S", providedSide))
}

func ErrInvalidQuantityError(quantity string) *CodedError {
	return NewCodedError(ErrInvalidQuantity,
		fmt.Sprintf("quantity %q must be a positive integer", quantity))
}

func ErrInvalidPriceError(price string) *CodedError {
	return NewCodedError(ErrInvalidPrice,
		fmt.Sprintf("price %q must be a positive integer", price))
}

func ErrMissingPriceError(kind OrderKind) *CodedError {
	return NewCodedError(ErrMissingPrice,
		fmt.Sprintf("price is required for %s orders", kind))
}

func ErrDuplicateOrderIDError(orderID string) *CodedError {
	return NewCodedError(ErrDuplicateOrderID,
		fmt.Sprintf("order id %q was already submitted this session", orderID))
}

func ErrOrderNotFoundError(orderID string) *CodedError {
	return NewCodedError(ErrOrderNotFound,
		fmt.Sprintf("order %q not found", orderID))
}
