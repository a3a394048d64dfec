package errors

import (
	"errors"
)

// Sentinel errors usable with errors.Is through AppContextError chains.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownCardType  = errors.New("unknown card type")
	ErrImageUnavailable = errors.New("image unavailable")
	ErrMalformedImage   = errors.New("malformed image data")
	ErrCounterStore     = errors.New("counter store unavailable")
)

// IsValidationError checks if an error represents invalid input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsContractViolation checks if an error represents a programming defect
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrUnknownCardType)
}

// IsImageFailure reports whether err is a recoverable image resolution failure
// (provider failure or undecodable bytes).
func IsImageFailure(err error) bool {
	return errors.Is(err, ErrImageUnavailable) || errors.Is(err, ErrMalformedImage)
}

// IsCounterStoreError checks if an error came from the counter store
func IsCounterStoreError(err error) bool {
	return errors.Is(err, ErrCounterStore)
}

// AsAppContextError extracts the first AppContextError in the chain.
func AsAppContextError(err error) (*AppContextError, bool) {
	var appErr *AppContextError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
