package apperr

import (
	"errors"
	"fmt"
)

// Stable error codes surfaced to the request boundary. Handlers translate
// these into HTTP responses; the codes themselves never change meaning.
const (
	CodeFXInvalidCurrency = "FX_INVALID_CURRENCY"
	CodeFXDisabled        = "FX_DISABLED"
	CodeFXProviderInvalid = "FX_PROVIDER_INVALID"
	CodeFXNotConfigured   = "FX_NOT_CONFIGURED"
	CodeFXLookupFailed    = "FX_LOOKUP_FAILED"
	CodeFXInvalidRate     = "FX_INVALID_RATE"
	CodeFXInvalidAmount   = "FX_INVALID_AMOUNT"

	CodeProductShippingMissing = "PRODUCT_SHIPPING_MISSING"

	CodeSellerBusinessMissing    = "SELLER_BUSINESS_MISSING"
	CodeMixedSellersNotSupported = "MIXED_SELLERS_NOT_SUPPORTED"
	CodeSellerBusinessNotFound   = "SELLER_BUSINESS_NOT_FOUND"

	CodeShippoCustomsFailed      = "SHIPPO_CUSTOMS_FAILED"
	CodeShippoCustomsObjectError = "SHIPPO_CUSTOMS_OBJECT_ERROR"
	CodeCartEmpty                = "CART_EMPTY"
)

// Error is a coded error. Code is stable and machine-readable, Message is for
// humans, Err (optional) is the wrapped cause.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a coded error with a formatted message.
func New(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a coded error around an underlying cause.
func Wrap(err error, code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// Code extracts the stable code from err, or "" if err carries none.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return Code(err) == code
}
