package notifications

import (
	"sync"

	"negromart_seller/internal/models"
	"negromart_seller/ws"
)

// List mirrors the server's notification list. Snapshots replace it whole;
// nothing is merged or mutated locally.
type List struct {
	watchers

	mu            sync.RWMutex
	notifications []models.Notification
	unread        int
	loaded        bool

	feed        Feed
	toaster     Toaster
	unsubscribe func()
}

func NewList(feed Feed, toaster Toaster) *List {
	l := &List{
		notifications: []models.Notification{},
		feed:          feed,
		toaster:       orNop(toaster),
	}
	l.unsubscribe = feed.Subscribe(l.handle)
	return l
}

// Notifications returns a copy of the current snapshot.
func (l *List) Notifications() []models.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Notification(nil), l.notifications...)
}

func (l *List) UnreadCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.unread
}

// Loaded reports whether a first snapshot has arrived.
func (l *List) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// CanMarkAllRead gates the "mark all as read" action on the unread count.
func (l *List) CanMarkAllRead() bool {
	return l.UnreadCount() > 0
}

func (l *List) MarkRead(id int64) error {
	return l.feed.Send(ws.MarkRead(id))
}

func (l *List) MarkAllRead() error {
	return l.feed.Send(ws.MarkAllRead())
}

func (l *List) Delete(id int64) error {
	return l.feed.Send(ws.Delete(id))
}

func (l *List) Detach() {
	l.unsubscribe()
}

func (l *List) handle(f ws.Frame) {
	switch f.Type {
	case ws.FrameInitData, ws.FrameRefreshList:
		l.mu.Lock()
		l.notifications = f.Notifications
		if f.UnreadCount != nil {
			l.unread = *f.UnreadCount
		}
		l.loaded = true
		l.mu.Unlock()

	case ws.FrameUnreadCount:
		l.mu.Lock()
		l.unread = f.Count
		l.mu.Unlock()

	case ws.FrameNotification:
		n := f.Notification
		l.toaster.Toast(Toast{Title: n.Title(), Message: n.Message(), URL: n.URL()})
		return

	default:
		return
	}
	l.notify()
}
