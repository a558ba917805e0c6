package apperrors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResponse_FieldErrors(t *testing.T) {
	body := []byte(`{"contact": ["Enter a valid phone number."], "about": {"bio": ["Too long."]}}`)

	appErr := FromResponse(http.StatusBadRequest, body, "registration")

	assert.Equal(t, CodeServerRejected, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	fields := appErr.FieldErrors()
	require.NotNil(t, fields)
	assert.Equal(t, "Enter a valid phone number.", fields["contact"])
	assert.Equal(t, "Too long.", fields["about.bio"])
	assert.Equal(t, "about.bio: Too long.; contact: Enter a valid phone number.", appErr.Message)
}

func TestFromResponse_DetailMessage(t *testing.T) {
	appErr := FromResponse(http.StatusNotFound, []byte(`{"detail": "Not found."}`), "notification")

	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.Equal(t, "Not found.", appErr.Message)
	assert.Nil(t, appErr.FieldErrors())
	assert.True(t, Is(appErr, ErrNotFound))
}

func TestFromResponse_NonJSONBody(t *testing.T) {
	appErr := FromResponse(http.StatusBadGateway, []byte("<html>bad gateway</html>"), "api")

	assert.Equal(t, CodeInternalError, appErr.Code)
	assert.Equal(t, "Bad Gateway", appErr.Message)
}

func TestFromResponse_NonFieldErrors(t *testing.T) {
	appErr := FromResponse(http.StatusBadRequest, []byte(`{"non_field_errors": ["Exactly one default.", "Check options."]}`), "products")

	assert.Equal(t, "Exactly one default. Check options.", appErr.Message)
	assert.Nil(t, appErr.FieldErrors())
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := FromResponse(http.StatusUnauthorized, []byte(`{"detail":"Token expired"}`), "auth")

	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsTransport(err))

	wrapped := ErrUnauthorized.WithError(err)
	assert.True(t, Is(wrapped, ErrUnauthorized))
	assert.Nil(t, ErrUnauthorized.Err, "sentinel must stay untouched")
}
