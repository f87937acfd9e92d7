package platformsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeRateLimited    = "rate_limited"
	ErrorCodeDeliveryFailed = "delivery_failed"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeForbidden      = "forbidden"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeConflict       = "conflict"
	ErrorCodeInternal       = "internal_error"
	ErrorCodeRateLimitHit   = "rate_limit_exceeded"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is a non-2xx response from the platform.
type APIError struct {
	// StatusCode is the HTTP status of the response
	StatusCode int

	// Code is the machine readable error, e.g. "invalid_request"
	Code string

	// Description is the human readable message shown to users
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsStatus reports whether err is an *APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsCode reports whether err is an *APIError with the given error code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// ErrRoleRequired is returned before a request is sent when the session's
// role cannot perform the call.
var ErrRoleRequired = errors.New("session role not permitted")

// parseErrorResponse turns an error body into an *APIError, falling back to
// the status text when the body is not the platform's error shape.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeInternal,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
