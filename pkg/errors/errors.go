package errors

import "fmt"

// Error codes
const (
	CodeAppError   = "APP_ERROR"
	CodeUpstream   = "UPSTREAM_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeParse      = "PARSE_ERROR"
	CodeCache      = "CACHE_ERROR"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// UpstreamError marks a failure of an external API (video metadata or
// generative text). The cause carries provider detail that is logged,
// never returned to clients.
type UpstreamError struct {
	*AppError
	Service string
}

func NewUpstreamError(message, service string, cause error) *UpstreamError {
	return &UpstreamError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeUpstream,
			StatusCode: 502,
			Context: map[string]any{
				"service": service,
			},
			Cause: cause,
		},
		Service: service,
	}
}

type ValidationError struct {
	*AppError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// ParseError marks model output that did not match the expected idea shape.
// It is always recovered locally and never surfaces as a request failure.
type ParseError struct {
	*AppError
	RawText string
}

func NewParseError(message, rawText string, cause error) *ParseError {
	return &ParseError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeParse,
			StatusCode: 500,
			Context: map[string]any{
				"raw_length": len(rawText),
			},
			Cause: cause,
		},
		RawText: rawText,
	}
}

type CacheError struct {
	*AppError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}
