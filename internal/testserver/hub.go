package testserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Action is a client message as received by the server.
type Action struct {
	Path   string `json:"-"`
	Action string `json:"action"`
	ID     int64  `json:"id,omitempty"`
}

type client struct {
	id   string
	path string
	conn *websocket.Conn
	send chan interface{}
	// registered is closed once the hub tracks the client.
	registered chan struct{}
}

// hub tracks live sockets per path. Registration goes through channels, the
// way the production broadcast manager does it.
type hub struct {
	clients    map[string]*client
	register   chan *client
	unregister chan *client
	quit       chan struct{}
	mu         sync.RWMutex

	onAction func(*client, Action)

	actionsMu sync.Mutex
	actions   []Action
	connects  map[string]int
}

func newHub(onAction func(*client, Action)) *hub {
	return &hub{
		clients:    make(map[string]*client),
		register:   make(chan *client),
		unregister: make(chan *client),
		quit:       make(chan struct{}),
		onAction:   onAction,
		connects:   make(map[string]int),
	}
}

func (h *hub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.id] = c
			h.mu.Unlock()
			close(c.registered)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.id]; ok {
				close(c.send)
				delete(h.clients, c.id)
			}
			h.mu.Unlock()

		case <-h.quit:
			return
		}
	}
}

func (h *hub) shutdown() {
	select {
	case <-h.quit:
	default:
		close(h.quit)
	}
	h.dropAll()
}

// broadcast queues msg for every client connected on path.
func (h *hub) broadcast(path string, msg interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if c.path != path {
			continue
		}
		select {
		case c.send <- msg:
		default:
			_ = c.conn.Close()
		}
	}
}

func (h *hub) count(path string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, c := range h.clients {
		if c.path == path {
			n++
		}
	}
	return n
}

// dropAll closes every socket without a close handshake, like a network drop.
func (h *hub) dropAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		_ = c.conn.Close()
	}
}

func (h *hub) record(a Action) {
	h.actionsMu.Lock()
	h.actions = append(h.actions, a)
	h.actionsMu.Unlock()
}

func (c *client) writePump() {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.conn.WriteJSON(msg); err != nil {
			_ = c.conn.Close()
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	_ = c.conn.Close()
}

func (h *hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.quit:
		}
		_ = c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var a Action
		if err := json.Unmarshal(data, &a); err != nil {
			continue
		}
		a.Path = c.path
		h.record(a)
		h.onAction(c, a)
	}
}

func (s *Server) serveSocket(c *gin.Context) {
	if !s.consumeTicket(c.Query("token")) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Invalid or used ticket"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	s.hub.actionsMu.Lock()
	s.hub.connects[c.Request.URL.Path]++
	s.hub.actionsMu.Unlock()

	cl := &client{
		id:   uuid.NewString(),
		path: c.Request.URL.Path,
		conn: conn,
		send: make(chan interface{}, 64),

		registered: make(chan struct{}),
	}
	select {
	case s.hub.register <- cl:
		<-cl.registered
	case <-s.hub.quit:
		_ = conn.Close()
		return
	}

	// The greeting is queued before the pumps start so it is always the first frame.
	s.greet(cl)

	go cl.writePump()
	go s.hub.readPump(cl)
}

// Push sends a raw frame to every socket on path.
func (s *Server) Push(path string, frame interface{}) {
	s.hub.broadcast(path, frame)
}

// DropConnections closes every live socket.
func (s *Server) DropConnections() {
	s.hub.dropAll()
}

// Clients is the number of live sockets on path.
func (s *Server) Clients(path string) int {
	return s.hub.count(path)
}

// Connects is how many sockets were ever accepted on path.
func (s *Server) Connects(path string) int {
	s.hub.actionsMu.Lock()
	defer s.hub.actionsMu.Unlock()
	return s.hub.connects[path]
}

// Actions returns every client action received so far.
func (s *Server) Actions() []Action {
	s.hub.actionsMu.Lock()
	defer s.hub.actionsMu.Unlock()
	return append([]Action(nil), s.hub.actions...)
}

func detailSocketID(path string) (int64, bool) {
	const prefix = "/ws/notifications/"
	if len(path) <= len(prefix)+1 {
		return 0, false
	}
	id, err := strconv.ParseInt(path[len(prefix):len(path)-1], 10, 64)
	return id, err == nil
}
