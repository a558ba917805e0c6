// Package ws is the notification channel: one authenticated, self-healing
// WebSocket per view, fed by a one-time ticket from the REST API.
package ws

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"negromart_seller/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	PathNotifications = "/ws/notifications/"
	PathCounter       = "/ws/notifications/count/"

	DefaultReconnectDelay   = 3000 * time.Millisecond
	DefaultTicketRetryDelay = 5000 * time.Millisecond

	writeWait = 10 * time.Second
)

var (
	ErrNotConnected   = errors.New("ws: not connected")
	ErrAlreadyRunning = errors.New("ws: channel already running")
)

// DetailPath is the per-notification channel used by the detail view.
func DetailPath(id int64) string {
	return PathNotifications + strconv.FormatInt(id, 10) + "/"
}

// TicketSource hands out one-time tickets for the WebSocket upgrade.
type TicketSource interface {
	Ticket(ctx context.Context) (string, error)
}

// TicketFunc adapts a function to TicketSource.
type TicketFunc func(ctx context.Context) (string, error)

func (f TicketFunc) Ticket(ctx context.Context) (string, error) { return f(ctx) }

// Dialer is satisfied by *websocket.Dialer.
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}

type State int

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateWaiting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateWaiting:
		return "waiting"
	default:
		return "closed"
	}
}

type ChannelConfig struct {
	// BaseURL is NEXT_PUBLIC_WS_URL, e.g. wss://api.example.com
	BaseURL string
	// Path selects the feed: PathNotifications, PathCounter or DetailPath(id).
	Path string
	// OnOpen, when set, is sent right after every successful connect.
	OnOpen *Action
	// Name tags log lines (bell, list, detail).
	Name string

	ReconnectDelay   time.Duration // after a close; default 3000ms
	TicketRetryDelay time.Duration // after a failed ticket fetch; default 5000ms
}

type ChannelOption func(*Channel)

// WithDialer replaces the gorilla default dialer.
func WithDialer(d Dialer) ChannelOption {
	return func(c *Channel) { c.dialer = d }
}

// WithAfter replaces time.After for the reconnect waits (tests drive it by hand).
func WithAfter(after func(time.Duration) <-chan time.Time) ChannelOption {
	return func(c *Channel) { c.after = after }
}

// Channel keeps one live connection and reconnects on a fixed delay, forever,
// until Close or the Run context ends. Frames are dispatched to subscribers in
// arrival order from a single goroutine.
type Channel struct {
	cfg     ChannelConfig
	tickets TicketSource
	dialer  Dialer
	after   func(time.Duration) <-chan time.Time

	mu      sync.Mutex
	conn    *websocket.Conn
	state   State
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	subs    map[int]func(Frame)
	nextSub int
	opened  chan struct{}

	// dispatching is set while subscribers run on the loop goroutine.
	dispatching bool
	stopped     chan struct{}
	stopOnce    sync.Once

	writeMu sync.Mutex
}

func NewChannel(cfg ChannelConfig, tickets TicketSource, opts ...ChannelOption) *Channel {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	if cfg.TicketRetryDelay <= 0 {
		cfg.TicketRetryDelay = DefaultTicketRetryDelay
	}
	if cfg.Path == "" {
		cfg.Path = PathNotifications
	}
	if cfg.Name == "" {
		cfg.Name = strings.Trim(cfg.Path, "/")
	}

	c := &Channel{
		cfg:     cfg,
		tickets: tickets,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second, Proxy: http.ProxyFromEnvironment},
		after:   time.After,
		subs:    make(map[int]func(Frame)),
		opened:  make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn for every decoded frame. The returned func unsubscribes.
func (c *Channel) Subscribe(fn func(Frame)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AwaitOpen blocks until the channel is open, meaning connected with the
// OnOpen action already written. It returns ErrNotConnected once the channel
// is closed.
func (c *Channel) AwaitOpen(ctx context.Context) error {
	c.mu.Lock()
	opened, closed := c.opened, c.state == StateClosed
	c.mu.Unlock()
	if closed {
		return ErrNotConnected
	}

	select {
	case <-opened:
		return nil
	case <-c.stopped:
		return ErrNotConnected
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start runs the channel in the background. Use Close to stop it.
func (c *Channel) Start(ctx context.Context) error {
	ctx, err := c.begin(ctx)
	if err != nil {
		return err
	}
	go c.loop(ctx)
	return nil
}

// Run blocks until ctx is cancelled or Close is called.
func (c *Channel) Run(ctx context.Context) error {
	ctx, err := c.begin(ctx)
	if err != nil {
		return err
	}
	c.loop(ctx)
	return nil
}

func (c *Channel) begin(ctx context.Context) (context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running || c.state == StateClosed {
		return nil, ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(logger.WithView(ctx, c.cfg.Name))
	c.running = true
	c.cancel = cancel
	c.done = make(chan struct{})
	return ctx, nil
}

// Close stops the channel: closes the socket and cancels a pending reconnect.
// It waits for the connection loop to exit, except when called from a
// subscriber, which runs on that loop.
func (c *Channel) Close() error {
	c.mu.Lock()
	cancel, done, running := c.cancel, c.done, c.running
	conn := c.conn
	fromSubscriber := c.dispatching
	c.state = StateClosed
	c.mu.Unlock()
	c.stop()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		c.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		c.writeMu.Unlock()
		_ = conn.Close()
	}
	if running && done != nil && !fromSubscriber {
		<-done
	}
	return nil
}

func (c *Channel) stop() {
	c.stopOnce.Do(func() { close(c.stopped) })
}

// Send writes an action on the live connection. Nothing is queued while disconnected.
func (c *Channel) Send(a Action) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(a); err != nil {
		return err
	}
	return nil
}

func (c *Channel) loop(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		c.running = false
		c.state = StateClosed
		close(c.done)
		c.mu.Unlock()
		c.stop()
	}()

	for {
		c.setState(StateConnecting)

		ticket, err := c.tickets.Ticket(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.SocketLog(c.cfg.Path, "ticket_failed", err)
			if !c.wait(ctx, c.cfg.TicketRetryDelay) {
				return
			}
			continue
		}

		conn, _, err := c.dialer.DialContext(ctx, c.url(ticket), nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// a failed upgrade ends in a close, same as a dropped socket
			logger.SocketLog(c.cfg.Path, "dial_failed", err)
			if !c.wait(ctx, c.cfg.ReconnectDelay) {
				return
			}
			continue
		}

		if !c.attach(conn) {
			_ = conn.Close()
			return
		}
		logger.SocketLog(c.cfg.Path, "open", nil)

		// Sent as soon as the socket is open, without waiting for the server
		// to confirm the ticket.
		if c.cfg.OnOpen != nil {
			if err := c.Send(*c.cfg.OnOpen); err != nil {
				logger.SocketLog(c.cfg.Path, "on_open_send_failed", err)
			}
		}
		c.setState(StateOpen)

		err = c.read(ctx, conn)
		c.detach(conn)
		if ctx.Err() != nil {
			return
		}
		logger.SocketLog(c.cfg.Path, "closed", err)

		if !c.wait(ctx, c.cfg.ReconnectDelay) {
			return
		}
	}
}

func (c *Channel) read(ctx context.Context, conn *websocket.Conn) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		frame, err := DecodeFrame(data)
		if err != nil {
			logger.CtxDebug(ctx, "dropping frame", "error", err.Error())
			continue
		}
		c.dispatch(frame)
	}
}

func (c *Channel) dispatch(f Frame) {
	c.mu.Lock()
	handlers := make([]func(Frame), 0, len(c.subs))
	for _, fn := range c.subs {
		handlers = append(handlers, fn)
	}
	c.dispatching = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.dispatching = false
		c.mu.Unlock()
	}()
	for _, fn := range handlers {
		fn(f)
	}
}

func (c *Channel) wait(ctx context.Context, d time.Duration) bool {
	c.setState(StateWaiting)
	select {
	case <-c.after(d):
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *Channel) attach(conn *websocket.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateClosed {
		return false
	}
	c.conn = conn
	return true
}

func (c *Channel) detach(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
	_ = conn.Close()
}

func (c *Channel) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateClosed {
		return
	}
	switch {
	case s == StateOpen && c.state != StateOpen:
		close(c.opened)
	case s != StateOpen && c.state == StateOpen:
		c.opened = make(chan struct{})
	}
	c.state = s
}

func (c *Channel) url(ticket string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + c.cfg.Path + "?token=" + url.QueryEscape(ticket)
}
