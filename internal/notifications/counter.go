package notifications

import (
	"fmt"
	"sync"

	"negromart_seller/ws"
)

// Counter is the bell: the unread count of the latest counter frame.
type Counter struct {
	watchers

	mu          sync.RWMutex
	count       int
	toaster     Toaster
	unsubscribe func()
}

func NewCounter(feed Feed, toaster Toaster) *Counter {
	c := &Counter{toaster: orNop(toaster)}
	c.unsubscribe = feed.Subscribe(c.handle)
	return c
}

func (c *Counter) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}

// Detach stops listening to the feed.
func (c *Counter) Detach() {
	c.unsubscribe()
}

func (c *Counter) handle(f ws.Frame) {
	if f.Type != ws.FrameUnreadCount {
		return
	}

	c.mu.Lock()
	c.count = f.Count
	c.mu.Unlock()

	if f.TriggerToast {
		c.toaster.Toast(Toast{Title: "New notification", Message: unreadMessage(f.Count)})
	}
	c.notify()
}

func unreadMessage(n int) string {
	if n == 1 {
		return "You have 1 unread notification"
	}
	return fmt.Sprintf("You have %d unread notifications", n)
}
