// Package notifications holds the three notification views of the seller
// center: the bell counter, the list and the single-notification detail.
//
// The views own no connection. They subscribe to a ws.Channel (or anything
// with the same Subscribe/Send shape) and treat the server as the only source
// of truth: actions are sent and the result arrives in a later frame.
package notifications

import (
	"sync"

	"negromart_seller/ws"
)

// Feed is the part of ws.Channel the views use.
type Feed interface {
	Subscribe(fn func(ws.Frame)) func()
	Send(a ws.Action) error
}

type Toast struct {
	Title   string
	Message string
	URL     string
}

// Toaster shows transient messages. Implementations must not block.
type Toaster interface {
	Toast(t Toast)
}

type ToasterFunc func(t Toast)

func (f ToasterFunc) Toast(t Toast) { f(t) }

type nopToaster struct{}

func (nopToaster) Toast(Toast) {}

// watchers fans out "state changed" callbacks.
type watchers struct {
	mu  sync.Mutex
	fns []func()
}

// OnChange registers fn to run after every state change, outside any view lock.
func (w *watchers) OnChange(fn func()) {
	w.mu.Lock()
	w.fns = append(w.fns, fn)
	w.mu.Unlock()
}

func (w *watchers) notify() {
	w.mu.Lock()
	fns := append([]func(){}, w.fns...)
	w.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func orNop(t Toaster) Toaster {
	if t == nil {
		return nopToaster{}
	}
	return t
}
