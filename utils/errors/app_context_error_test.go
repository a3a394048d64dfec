package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppContextError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppContextError
		want string
	}{
		{
			name: "full context without cause",
			err:  NewAppContextError(CodeValidation, "bad card", "rest", "CardHandler", "render", nil, nil),
			want: "[rest:CardHandler:render] VALIDATION_ERROR: bad card",
		},
		{
			name: "with cause",
			err:  NewAppContextError(CodeExternalAPI, "fetch failed", "gateway", "ImageFetchGateway", "http_request", stderrors.New("boom"), nil),
			want: "[gateway:ImageFetchGateway:http_request] EXTERNAL_API_ERROR: fetch failed (caused by: boom)",
		},
		{
			name: "missing layer drops prefix",
			err:  NewAppContextError(CodeUnknown, "oops", "", "", "", nil, nil),
			want: "UNKNOWN_ERROR: oops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppContextError_HTTPStatusCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeMalformedImage, http.StatusUnprocessableEntity},
		{CodeExternalAPI, http.StatusBadGateway},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeDatabase, http.StatusInternalServerError},
		{CodeContractViolation, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := &AppContextError{Code: tt.code}
			assert.Equal(t, tt.want, err.HTTPStatusCode())
		})
	}
}

func TestHelpers_WrapSentinels(t *testing.T) {
	cause := stderrors.New("connection refused")

	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", NewValidationContextError("bad", "rest", "CardHandler", "bind", nil), IsValidationError},
		{"external api", NewExternalAPIContextError("down", "gateway", "ImageFetchGateway", "http_request", cause, nil), IsImageFailure},
		{"timeout", NewTimeoutContextError("slow", "gateway", "ImageFetchGateway", "http_request", cause, nil), IsImageFailure},
		{"malformed", NewMalformedImageContextError("garbage", "gateway", "ImageDecodeGateway", "decode", cause, nil), IsImageFailure},
		{"database", NewDatabaseContextError("down", "driver", "PgCounterDriver", "increment", cause, nil), IsCounterStoreError},
		{"contract", NewContractViolationContextError("unknown", "usecase", "CardLayoutUsecase", "build", nil), IsContractViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			appErr, ok := AsAppContextError(tt.err)
			assert.True(t, ok)
			assert.NotEmpty(t, appErr.Context["error_type"])
		})
	}

	assert.ErrorIs(t, NewExternalAPIContextError("down", "gateway", "ImageFetchGateway", "http_request", cause, nil), cause)
}

func TestAppContextError_IsRetryable(t *testing.T) {
	assert.True(t, (&AppContextError{Code: CodeTimeout}).IsRetryable())
	assert.True(t, (&AppContextError{Code: CodeExternalAPI}).IsRetryable())
	assert.False(t, (&AppContextError{Code: CodeMalformedImage}).IsRetryable())
	assert.False(t, (&AppContextError{Code: CodeValidation}).IsRetryable())
}

func TestToHTTPResponse(t *testing.T) {
	err := NewValidationContextError("card type missing", "rest", "CardHandler", "bind", map[string]interface{}{"field": "type"})
	resp := err.ToHTTPResponse()

	assert.Equal(t, "error", resp.Error)
	assert.Equal(t, CodeValidation, resp.Code)
	assert.Equal(t, "card type missing", resp.Message)
	assert.Equal(t, "type", resp.Context["field"])
}
