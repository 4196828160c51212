// Package inspect serves a live view of registered containers over HTTP.
//
// Register named containers, mount Handler on any router, and open the
// page: current values are listed as JSON and pushed to connected
// WebSocket clients as they change. Pushes are coalesced through a
// debounce scheduler, so a burst of graph updates becomes one frame.
package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/bind/pkg/bind"
	"github.com/vango-dev/bind/pkg/debounce"
)

// Config configures an Inspector.
type Config struct {
	// Logger receives connection and broadcast events.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Debounce is the quiet period for coalescing pushes
	// (default: 100ms). Staleness is bounded at five times this value.
	Debounce time.Duration

	// Clock substitutes the scheduler's timer facility in tests.
	Clock debounce.Clock
}

// Option configures an Inspector.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithDebounce sets the push coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.Debounce = d
	}
}

// WithClock sets the scheduler clock. Tests use this with a manually
// driven clock.
func WithClock(clock debounce.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// Value is one named container's current state.
type Value struct {
	Name     string `json:"name"`
	Value    any    `json:"value"`
	Constant bool   `json:"constant,omitempty"`
}

// Message is the WebSocket frame pushed to clients.
type Message struct {
	Type   string  `json:"type"`
	Values []Value `json:"values"`
}

// watched is one registered container, type-erased.
type watched struct {
	read     func() any
	constant bool
	stop     func()
}

// Inspector tracks named containers and pushes their values to WebSocket
// clients.
type Inspector struct {
	logger *slog.Logger

	entriesMu sync.RWMutex
	entries   map[string]*watched

	// connMu guards the client set and serializes every socket write,
	// so broadcasts and handshake snapshots never interleave on a conn.
	connMu  sync.Mutex
	clients map[*websocket.Conn]bool

	upgrader  websocket.Upgrader
	broadcast *debounce.Debounced[struct{}, struct{}]
}

// New creates an Inspector. Callers own its lifetime and must call Close
// on teardown.
func New(opts ...Option) *Inspector {
	cfg := Config{Debounce: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ins := &Inspector{
		logger:  cfg.Logger,
		entries: make(map[string]*watched),
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // inspection surface, not a production origin
			},
		},
	}

	dopts := []debounce.Option{debounce.MaxWait(5 * cfg.Debounce)}
	if cfg.Clock != nil {
		dopts = append(dopts, debounce.WithClock(cfg.Clock))
	}
	ins.broadcast = debounce.New(func(struct{}) struct{} {
		ins.broadcastNow()
		return struct{}{}
	}, cfg.Debounce, dopts...)

	return ins
}

// Register adds a named container and watches it; changes are pushed to
// connected clients. Re-registering a name replaces the previous entry.
// Values must be JSON-marshalable.
func Register[T any](ins *Inspector, name string, c bind.Container[T]) {
	e := &watched{
		read:     func() any { return c.Get() },
		constant: bind.IsConstant(c),
	}
	e.stop = c.Watch(func(T) { ins.broadcast.Call(struct{}{}) })

	ins.entriesMu.Lock()
	if old, ok := ins.entries[name]; ok {
		old.stop()
	}
	ins.entries[name] = e
	ins.entriesMu.Unlock()

	ins.logger.Debug("inspector registered container", "name", name)
	ins.broadcast.Call(struct{}{})
}

// Unregister removes a named container and stops watching it.
func (ins *Inspector) Unregister(name string) {
	ins.entriesMu.Lock()
	e, ok := ins.entries[name]
	if ok {
		e.stop()
		delete(ins.entries, name)
	}
	ins.entriesMu.Unlock()

	if ok {
		ins.broadcast.Call(struct{}{})
	}
}

// Values returns the current value of every registered container, sorted
// by name.
func (ins *Inspector) Values() []Value {
	ins.entriesMu.RLock()
	defer ins.entriesMu.RUnlock()

	out := make([]Value, 0, len(ins.entries))
	for name, e := range ins.entries {
		out = append(out, Value{Name: name, Value: e.read(), Constant: e.constant})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Handler returns the HTTP surface:
//
//	GET /        HTML page with a live table
//	GET /values  JSON array of current values
//	GET /ws      WebSocket push of value frames
func (ins *Inspector) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/", ins.handleIndex)
	r.Get("/values", ins.handleValues)
	r.Get("/ws", ins.handleWS)
	return r
}

func (ins *Inspector) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (ins *Inspector) handleValues(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ins.Values())
}

func (ins *Inspector) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := ins.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	// Send the snapshot and join the client set under one lock, so the
	// first broadcast a client sees is strictly newer than its snapshot.
	frame, err := json.Marshal(Message{Type: "values", Values: ins.Values()})
	ins.connMu.Lock()
	if err == nil {
		err = conn.WriteMessage(websocket.TextMessage, frame)
	}
	if err != nil {
		ins.connMu.Unlock()
		conn.Close()
		return
	}
	ins.clients[conn] = true
	n := len(ins.clients)
	ins.connMu.Unlock()

	ins.logger.Debug("inspector client connected", "clients", n)

	// Keep connection alive until client disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	ins.connMu.Lock()
	delete(ins.clients, conn)
	n = len(ins.clients)
	ins.connMu.Unlock()
	conn.Close()

	ins.logger.Debug("inspector client disconnected", "clients", n)
}

// broadcastNow pushes the current values to every client, evicting
// clients whose connection has gone away.
func (ins *Inspector) broadcastNow() {
	frame, err := json.Marshal(Message{Type: "values", Values: ins.Values()})
	if err != nil {
		ins.logger.Warn("inspector frame marshal failed", "error", err)
		return
	}

	ins.connMu.Lock()
	defer ins.connMu.Unlock()
	for conn := range ins.clients {
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			delete(ins.clients, conn)
			conn.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (ins *Inspector) ClientCount() int {
	ins.connMu.Lock()
	defer ins.connMu.Unlock()
	return len(ins.clients)
}

// Close stops all watchers, cancels pending pushes, and drops every
// client connection.
func (ins *Inspector) Close() {
	ins.entriesMu.Lock()
	for name, e := range ins.entries {
		e.stop()
		delete(ins.entries, name)
	}
	ins.entriesMu.Unlock()

	ins.broadcast.Cancel()

	ins.connMu.Lock()
	defer ins.connMu.Unlock()
	for conn := range ins.clients {
		conn.Close()
		delete(ins.clients, conn)
	}
}
