package mediagen

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode classifies generation failures into the buckets the plugin
// translates into user-facing messages.
type ErrorCode string

const (
	// ErrUnauthorized covers 401/403 from the remote API: credential problem.
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrInvalidPrompt covers 400: the request the service could not parse.
	ErrInvalidPrompt ErrorCode = "INVALID_PROMPT"
	// ErrContentRejected covers 5xx: the service refused or choked on the
	// prompt (content restriction or prompt complexity).
	ErrContentRejected ErrorCode = "CONTENT_REJECTED"
	// ErrUpstream covers every other HTTP or transport failure.
	ErrUpstream ErrorCode = "UPSTREAM_ERROR"
	// ErrEmptyResult marks a 2xx response missing the expected result field.
	ErrEmptyResult ErrorCode = "EMPTY_RESULT"
	// ErrGenerationFailed marks a video job that reached the failed status.
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED"
	// ErrTimeout marks a video job that never reached a terminal status
	// within the poll ceiling.
	ErrTimeout ErrorCode = "TIMEOUT"
	// ErrDownload marks a failure fetching or writing a generated file.
	ErrDownload ErrorCode = "DOWNLOAD_FAILED"
)

// Error is a structured generation error. ResultURL carries a partial result
// (e.g. a generated URL that could not be downloaded) so callers never have
// to scan error text for embedded URLs.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	ResultURL  string    `json:"result_url,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause attaches the underlying cause.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithHTTPStatus records the upstream HTTP status.
func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// WithResultURL records a partial result URL.
func (e *Error) WithResultURL(url string) *Error {
	e.ResultURL = url
	return e
}

// CodeOf extracts the error code, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}

// ResultURLOf extracts a partial result URL, or "" if none is attached.
func ResultURLOf(err error) string {
	if e, ok := err.(*Error); ok {
		return e.ResultURL
	}
	return ""
}

// apiErrorBody is the error envelope the generation API returns.
type apiErrorBody struct {
	Detail string `json:"detail"`
}

// readAPIErrMsg extracts the API-supplied detail message from an error body,
// falling back to the raw body when it does not parse.
func readAPIErrMsg(body []byte) string {
	var eb apiErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != "" {
		return eb.Detail
	}
	return string(body)
}

// mapStatusError maps an upstream HTTP status to a structured Error.
// 401/403 always map to ErrUnauthorized regardless of body content.
func mapStatusError(status int, body []byte) *Error {
	msg := readAPIErrMsg(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewError(ErrUnauthorized, msg).WithHTTPStatus(status)
	case status == http.StatusBadRequest:
		return NewError(ErrInvalidPrompt, msg).WithHTTPStatus(status)
	case status >= http.StatusInternalServerError:
		return NewError(ErrContentRejected, msg).WithHTTPStatus(status)
	default:
		return NewError(ErrUpstream, fmt.Sprintf("status %d: %s", status, msg)).WithHTTPStatus(status)
	}
}
