package apperrors

// ErrorCode - type for error codes
type ErrorCode string

const (
	// System and unknown errors
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeUnknownError  ErrorCode = "UNKNOWN_ERROR"

	// Transport: fetch rejection, socket close, timeouts. Retried on a timer, never fatal.
	CodeTransport ErrorCode = "TRANSPORT_ERROR"

	// Client-side validation. Never sent to the server.
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server rejected a request (4xx/5xx with or without a field-level body)
	CodeServerRejected ErrorCode = "SERVER_REJECTED"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeInvalidStatus  ErrorCode = "INVALID_STATUS"

	// Authentication
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	CodeForbidden     ErrorCode = "FORBIDDEN"
	CodeInvalidToken  ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired  ErrorCode = "TOKEN_EXPIRED"
	CodeOTPRequired   ErrorCode = "OTP_REQUIRED"
	CodeNotConfigured ErrorCode = "NOT_CONFIGURED"
)
