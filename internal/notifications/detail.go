package notifications

import (
	"context"
	"sync"

	"negromart_seller/internal/logger"
	"negromart_seller/internal/models"
	"negromart_seller/ws"
)

type DetailState int

const (
	DetailLoading DetailState = iota
	DetailLoaded
	DetailFailed
)

func (s DetailState) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	default:
		return "failed"
	}
}

// Getter fetches one notification over REST.
type Getter interface {
	Get(ctx context.Context, id int64) (*models.Notification, error)
}

// DetailChannelConfig is the socket a detail view opens: its only job is to
// send view_detail once connected.
func DetailChannelConfig(baseURL string, id int64) ws.ChannelConfig {
	action := ws.ViewDetail(id)
	return ws.ChannelConfig{
		BaseURL: baseURL,
		Path:    ws.DetailPath(id),
		OnOpen:  &action,
		Name:    "detail",
	}
}

// Detail loads one notification. Fetch errors end in DetailFailed and are
// never returned; Reload is the retry.
type Detail struct {
	watchers

	id     int64
	getter Getter

	mu           sync.RWMutex
	state        DetailState
	notification *models.Notification
	err          error
}

func NewDetail(id int64, getter Getter) *Detail {
	return &Detail{id: id, getter: getter, state: DetailLoading}
}

func (d *Detail) ID() int64 { return d.id }

func (d *Detail) Load(ctx context.Context) {
	d.mu.Lock()
	d.state = DetailLoading
	d.err = nil
	d.mu.Unlock()
	d.notify()

	n, err := d.getter.Get(ctx, d.id)

	d.mu.Lock()
	if err != nil {
		logger.CtxWarn(ctx, "notification detail fetch failed", "id", d.id, "error", err.Error())
		d.state = DetailFailed
		d.err = err
	} else {
		d.state = DetailLoaded
		d.notification = n
	}
	d.mu.Unlock()
	d.notify()
}

// Reload is the manual retry after a failure.
func (d *Detail) Reload(ctx context.Context) {
	d.Load(ctx)
}

func (d *Detail) State() DetailState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Err is the last fetch error, for display only.
func (d *Detail) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

func (d *Detail) Notification() *models.Notification {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.notification
}

// Message is data.message with the usual fallback; empty until loaded.
func (d *Detail) Message() string {
	n := d.Notification()
	if n == nil {
		return ""
	}
	return n.Message()
}

// Link is data.url, if the notification points somewhere.
func (d *Detail) Link() string {
	n := d.Notification()
	if n == nil {
		return ""
	}
	return n.URL()
}
