package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"negromart_seller/internal/config"
	"negromart_seller/internal/models"
	"negromart_seller/internal/notifications"
	"negromart_seller/internal/services/dto"
	"negromart_seller/internal/testserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type toastRecorder struct {
	mu     sync.Mutex
	toasts []notifications.Toast
}

func (r *toastRecorder) Toast(t notifications.Toast) {
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}

func (r *toastRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.toasts)
}

func testConfig(srv *testserver.Server) *config.Config {
	cfg := config.Defaults()
	cfg.App.Env = "test"
	cfg.API.Host = srv.URL
	cfg.API.Prefix = testserver.APIPrefix
	cfg.WS.URL = srv.WSBase()
	cfg.Storage.Type = "memory"
	return cfg
}

func newTestApp(t *testing.T, opts ...Option) (*App, *testserver.Server) {
	t.Helper()
	srv := testserver.New(t)
	a, err := New(context.Background(), testConfig(srv), opts...)
	require.NoError(t, err)
	return a, srv
}

func login(t *testing.T, a *App) {
	t.Helper()
	err := a.Services.AuthService.Login(context.Background(), &dto.LoginRequest{
		Email:    "seller@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.True(t, a.Session.IsAuthenticated())
}

func TestNew_UsesConfiguredEndpoints(t *testing.T) {
	a, srv := newTestApp(t)

	assert.Equal(t, srv.APIBase(), a.Client.BaseURL())
	assert.False(t, a.Session.IsAuthenticated())
	assert.NotNil(t, a.Services.NotificationService)
}

func TestNew_RejectsUnknownStorage(t *testing.T) {
	srv := testserver.New(t)
	cfg := testConfig(srv)
	cfg.Storage.Type = "s3"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpenBell_ShowsCountAndToasts(t *testing.T) {
	toasts := &toastRecorder{}
	a, srv := newTestApp(t, WithToaster(toasts))
	login(t, a)

	bell, live, err := a.OpenBell(context.Background())
	require.NoError(t, err)
	defer live.Close()

	require.Eventually(t, func() bool { return bell.UnreadCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	srv.AddNotification(models.Notification{Verb: models.VerbNewOrder})
	assert.Eventually(t, func() bool { return bell.UnreadCount() == 3 && toasts.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestOpenList_ReceivesSnapshot(t *testing.T) {
	a, _ := newTestApp(t)
	login(t, a)

	list, live, err := a.OpenList(context.Background())
	require.NoError(t, err)
	defer live.Close()

	require.Eventually(t, list.Loaded, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, list.Notifications(), 3)
	assert.True(t, list.CanMarkAllRead())
}

func TestOpenDetail_LoadsAndMarksViewed(t *testing.T) {
	a, srv := newTestApp(t)
	login(t, a)

	detail, live, err := a.OpenDetail(context.Background(), 1)
	require.NoError(t, err)
	defer live.Close()

	assert.Equal(t, notifications.DetailLoaded, detail.State())
	require.NotNil(t, detail.Notification())
	assert.Equal(t, int64(1), detail.Notification().ID)

	assert.Eventually(t, func() bool {
		n, ok := srv.Notification(1)
		return ok && n.IsRead
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLiveClose_StopsReconnecting(t *testing.T) {
	a, srv := newTestApp(t)
	login(t, a)

	_, live, err := a.OpenBell(context.Background())
	require.NoError(t, err)
	require.Eventually(t, func() bool { return srv.Clients("/ws/notifications/count/") == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, live.Close())
	assert.Eventually(t, func() bool { return srv.Clients("/ws/notifications/count/") == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, srv.Connects("/ws/notifications/count/"))
}

func TestWizard_UsesPersistedDraft(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	w := a.Wizard()
	require.NoError(t, w.SetFile(ctx, "license", "license.pdf", "application/pdf", []byte("%PDF")))

	resumed := a.Wizard()
	found, err := resumed.Resume(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"license"}, resumed.PendingReuploads())
}

func TestWizard_AppliesUploadPolicy(t *testing.T) {
	a, _ := newTestApp(t)

	err := a.Wizard().SetFile(context.Background(), "license", "license.exe", "application/x-msdownload", []byte("MZ"))
	assert.Error(t, err)
}
