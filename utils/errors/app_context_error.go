package errors

import (
	"fmt"
	"net/http"
)

// Error codes carried by AppContextError.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeExternalAPI       = "EXTERNAL_API_ERROR"
	CodeTimeout           = "TIMEOUT_ERROR"
	CodeDatabase          = "DATABASE_ERROR"
	CodeMalformedImage    = "MALFORMED_IMAGE_ERROR"
	CodeContractViolation = "CONTRACT_VIOLATION"
	CodeUnknown           = "UNKNOWN_ERROR"
)

// AppContextError represents an error with the layer, component and operation
// that produced it.
type AppContextError struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Layer     string                 `json:"layer,omitempty"`     // usecase, gateway, driver, rest
	Component string                 `json:"component,omitempty"` // e.g. CardLayoutUsecase
	Operation string                 `json:"operation,omitempty"` // e.g. build
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AppContextError) Error() string {
	var prefix string
	if e.Layer != "" && e.Component != "" && e.Operation != "" {
		prefix = fmt.Sprintf("[%s:%s:%s] ", e.Layer, e.Component, e.Operation)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %s (caused by: %v)", prefix, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Code, e.Message)
}

// Unwrap returns the underlying error for error chain unwrapping
func (e *AppContextError) Unwrap() error {
	return e.Cause
}

// HTTPStatusCode maps error codes to HTTP status codes
func (e *AppContextError) HTTPStatusCode() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeMalformedImage:
		return http.StatusUnprocessableEntity
	case CodeExternalAPI:
		return http.StatusBadGateway
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeDatabase, CodeContractViolation, CodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HTTPContextResponse represents the structure of error responses sent to clients
type HTTPContextResponse struct {
	Error     string                 `json:"error"`
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Layer     string                 `json:"layer,omitempty"`
	Component string                 `json:"component,omitempty"`
	Operation string                 `json:"operation,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// ToHTTPResponse converts an AppContextError to an HTTP error response
func (e *AppContextError) ToHTTPResponse() HTTPContextResponse {
	return HTTPContextResponse{
		Error:     "error",
		Code:      e.Code,
		Message:   e.Message,
		Layer:     e.Layer,
		Component: e.Component,
		Operation: e.Operation,
		Context:   e.Context,
	}
}

// IsRetryable reports whether the failure is transient. Image resolution never
// retries, but the flag is still logged so operators can spot flaky providers.
func (e *AppContextError) IsRetryable() bool {
	switch e.Code {
	case CodeTimeout, CodeExternalAPI:
		return true
	default:
		return false
	}
}

// NewAppContextError creates a new AppContextError with full context
func NewAppContextError(
	code, message, layer, component, operation string,
	cause error,
	context map[string]interface{},
) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}

	return &AppContextError{
		Code:      code,
		Message:   message,
		Layer:     layer,
		Component: component,
		Operation: operation,
		Cause:     cause,
		Context:   context,
	}
}

// NewValidationContextError creates a validation error with context
func NewValidationContextError(message, layer, component, operation string, context map[string]interface{}) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}
	context["error_type"] = "validation"
	return NewAppContextError(CodeValidation, message, layer, component, operation, fmt.Errorf("%w", ErrInvalidInput), context)
}

// NewExternalAPIContextError creates an external API error with context
func NewExternalAPIContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}
	context["error_type"] = "external_api"
	return NewAppContextError(CodeExternalAPI, message, layer, component, operation, wrapSentinel(ErrImageUnavailable, cause), context)
}

// NewTimeoutContextError creates a timeout error with context
func NewTimeoutContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}
	context["error_type"] = "timeout"
	return NewAppContextError(CodeTimeout, message, layer, component, operation, wrapSentinel(ErrImageUnavailable, cause), context)
}

// NewMalformedImageContextError creates an error for payloads that are not decodable images
func NewMalformedImageContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}
	context["error_type"] = "malformed_image"
	return NewAppContextError(CodeMalformedImage, message, layer, component, operation, wrapSentinel(ErrMalformedImage, cause), context)
}

// NewDatabaseContextError creates a counter store error with context
func NewDatabaseContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}
	context["error_type"] = "database"
	return NewAppContextError(CodeDatabase, message, layer, component, operation, wrapSentinel(ErrCounterStore, cause), context)
}

// NewContractViolationContextError creates an error describing a programming defect,
// such as an unknown card type reaching the layout selector.
func NewContractViolationContextError(message, layer, component, operation string, context map[string]interface{}) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}
	context["error_type"] = "contract_violation"
	return NewAppContextError(CodeContractViolation, message, layer, component, operation, fmt.Errorf("%w", ErrUnknownCardType), context)
}

func wrapSentinel(sentinel, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %w", sentinel, cause)
	}
	return fmt.Errorf("%w", sentinel)
}
