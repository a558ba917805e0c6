package apperrors

import (
	"net/http"
)

// =========================================================================
// Predefined errors
// =========================================================================

var (
	// ErrUnauthorized is returned after the one transparent refresh+retry also failed.
	ErrUnauthorized = New(CodeUnauthorized, "auth", "Authentication required", http.StatusUnauthorized)

	// ErrNoRefreshToken means there is nothing to refresh with; the session never logged in.
	ErrNoRefreshToken = New(CodeInvalidToken, "auth", "No refresh token in session", http.StatusUnauthorized)

	// ErrOTPRequired is returned by login when the server asks for a one-time code.
	ErrOTPRequired = New(CodeOTPRequired, "auth", "One-time code required", http.StatusAccepted)

	ErrNotFound = New(CodeNotFound, "resource", "Resource not found", http.StatusNotFound)

	// ErrPaymentMethodMissing - no payment method configured yet for the vendor.
	ErrPaymentMethodMissing = New(CodeNotConfigured, "payment", "No payment method configured", http.StatusNotFound)
)

// ErrInvalidStatus - factory for invalid status transitions (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}
