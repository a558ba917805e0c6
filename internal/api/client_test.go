package api

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"negromart_seller/internal/models"
	"negromart_seller/internal/session"
	"negromart_seller/internal/testserver"
	"negromart_seller/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedInClient(t *testing.T, srv *testserver.Server) *Client {
	t.Helper()
	sess := session.New(nil)
	access, refresh := srv.IssueTokens()
	require.NoError(t, sess.SetTokens(context.Background(), access, refresh))
	return New(srv.APIBase(), sess)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	srv := testserver.New(t)
	client := newLoggedInClient(t, srv)

	var order models.Order
	err := client.GetJSON(context.Background(), "/vendor/orders/101/", nil, &order)

	require.NoError(t, err)
	assert.Equal(t, "NM-101", order.Reference)
	assert.Equal(t, 0, srv.RefreshCalls())
}

func TestClient_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	srv := testserver.New(t)
	client := newLoggedInClient(t, srv)
	oldAccess := client.Session().AccessToken()

	srv.ExpireAccessTokens()
	srv.SetRefreshDelay(100 * time.Millisecond)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var order models.Order
			errs[i] = client.GetJSON(context.Background(), "/vendor/orders/101/", nil, &order)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, 1, srv.RefreshCalls())
	assert.NotEqual(t, oldAccess, client.Session().AccessToken())
	assert.NotEmpty(t, client.Session().RefreshToken(), "refresh token kept when not rotated")
}

func TestClient_CancelledCallerLeavesSharedRefreshRunning(t *testing.T) {
	srv := testserver.New(t)
	client := newLoggedInClient(t, srv)
	oldAccess := client.Session().AccessToken()

	srv.ExpireAccessTokens()
	srv.SetRefreshDelay(200 * time.Millisecond)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()
	firstErr := make(chan error, 1)
	go func() { firstErr <- client.GetJSON(firstCtx, "/vendor/orders/101/", nil, nil) }()

	require.Eventually(t, func() bool { return srv.RefreshCalls() == 1 }, time.Second, 5*time.Millisecond)

	secondErr := make(chan error, 1)
	go func() {
		var order models.Order
		secondErr <- client.GetJSON(context.Background(), "/vendor/orders/101/", nil, &order)
	}()

	time.Sleep(50 * time.Millisecond)
	cancelFirst()

	err := <-firstErr
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, apperrors.IsUnauthorized(err))

	require.NoError(t, <-secondErr)
	assert.Equal(t, 1, srv.RefreshCalls())
	assert.NotEmpty(t, client.Session().AccessToken())
	assert.NotEqual(t, oldAccess, client.Session().AccessToken())
}

func TestClient_SecondUnauthorizedGivesUp(t *testing.T) {
	srv := testserver.New(t)
	client := newLoggedInClient(t, srv)
	srv.RejectAllAccess(true)

	err := client.GetJSON(context.Background(), "/vendor/orders/", nil, nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, 1, srv.RefreshCalls(), "retried exactly once")
	assert.Empty(t, client.Session().AccessToken())
}

func TestClient_FailedRefreshIsUnauthorized(t *testing.T) {
	srv := testserver.New(t)
	client := newLoggedInClient(t, srv)
	srv.ExpireAccessTokens()
	srv.FailRefresh(true)

	err := client.GetJSON(context.Background(), "/vendor/orders/", nil, nil)

	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, 1, srv.RefreshCalls())
}

func TestClient_NoRefreshTokenSkipsRefreshCall(t *testing.T) {
	srv := testserver.New(t)
	client := New(srv.APIBase(), session.New(nil))

	err := client.GetJSON(context.Background(), "/vendor/orders/", nil, nil)

	assert.True(t, apperrors.IsUnauthorized(err))
	assert.True(t, apperrors.Is(err, apperrors.ErrNoRefreshToken))
	assert.Equal(t, 0, srv.RefreshCalls())
}

func TestClient_MapsFieldErrors(t *testing.T) {
	srv := testserver.New(t)
	client := New(srv.APIBase(), session.New(nil))

	form := NewMultipart().Field("business_name", testserver.RejectedBusinessName)
	err := client.PostMultipartNoAuth(context.Background(), "/vendor/register/", form, nil)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeServerRejected, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	assert.Equal(t, "A seller with this name already exists.", appErr.FieldErrors()["business_name"])
}

func TestClient_NotFound(t *testing.T) {
	srv := testserver.New(t)
	client := newLoggedInClient(t, srv)

	err := client.GetJSON(context.Background(), "/vendor/orders/999/", nil, nil)

	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestClient_TransportError(t *testing.T) {
	srv := testserver.New(t)
	base := srv.APIBase()
	srv.Close()

	client := New(base, session.New(nil), WithTimeout(time.Second))
	err := client.PostJSONNoAuth(context.Background(), "/auth/jwt/create/", map[string]string{"email": "a@b.co"}, nil)

	assert.True(t, apperrors.IsTransport(err))
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "vendor", domainOf("/vendor/orders/"))
	assert.Equal(t, "notification", domainOf("/notification/"))
	assert.Equal(t, "api", domainOf("/"))
}
