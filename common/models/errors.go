package models

import "fmt"

type ErrUnknownCurrency struct {
	Code CurrencyCode
}

func (e *ErrUnknownCurrency) Error() string {
	return fmt.Sprintf("currency with code %q is not supported yet", e.Code)
}

// ErrZeroRate means a stored rate is exactly zero or was never set for
// a currency a conversion depends on. It signals a configuration or
// refresh fault, not user error, and must block the conversion instead
// of letting the arithmetic produce Inf or NaN.
type ErrZeroRate struct {
	Code CurrencyCode
}

func (e *ErrZeroRate) Error() string {
	return fmt.Sprintf("rate for %q is not configured, please contact support", e.Code)
}

type ValidationKind string

const (
	ValidationNotPositive         ValidationKind = "amount_not_positive"
	ValidationBelowMinimum        ValidationKind = "below_minimum_amount"
	ValidationAboveMaximum        ValidationKind = "above_maximum_amount"
	ValidationInsufficientBalance ValidationKind = "insufficient_balance"
)

// ValidationError is a user-input violation: always recoverable by the
// user adjusting the input, never a system fault.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
