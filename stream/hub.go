// Package stream broadcasts tick results to websocket clients and applies
// the control commands they send.
package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/kinetics/kinetics"
)

// Controller is the control surface commands are applied to.
// *kinetics.Simulation satisfies it.
type Controller interface {
	Start()
	Stop()
	Reset()
	SetTemperature(v int) error
	SetConcentration(v int) error
}

// Message is the JSON form of a tick result.
type Message struct {
	Tick          uint64            `json:"tick"`
	Generation    uint64            `json:"generation"`
	Reacted       int               `json:"reacted"`
	Concentration int               `json:"concentration"`
	Temperature   int               `json:"temperature"`
	Particles     []ParticleMessage `json:"particles"`
}

// ParticleMessage is the JSON form of one particle.
type ParticleMessage struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Reacted bool    `json:"reacted"`
}

// Command is a control request sent by a client.
type Command struct {
	Op    string `json:"op"`
	Value int    `json:"value,omitempty"`
}

// Command ops.
const (
	OpStart            = "start"
	OpStop             = "stop"
	OpReset            = "reset"
	OpSetTemperature   = "set_temperature"
	OpSetConcentration = "set_concentration"
)

type errorMessage struct {
	Error string `json:"error"`
}

// NewMessage converts a tick result.
func NewMessage(r kinetics.TickResult) Message {
	m := Message{
		Tick:          r.Tick,
		Generation:    r.Generation,
		Reacted:       r.ReactedCount,
		Concentration: r.Concentration,
		Temperature:   r.Temperature,
		Particles:     make([]ParticleMessage, len(r.Population)),
	}
	for i, p := range r.Population {
		m.Particles[i] = ParticleMessage{X: p.Pos.X, Y: p.Pos.Y, Reacted: p.Reacted}
	}
	return m
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans tick results out to websocket clients. It implements
// kinetics.TickObserver and http.Handler.
type Hub struct {
	ctrl         Controller
	log          *slog.Logger
	upgrader     websocket.Upgrader
	queueSize    int
	writeTimeout time.Duration

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool

	dropped atomic.Uint64
}

// NewHub creates a hub applying client commands to ctrl.
func NewHub(ctrl Controller, queueSize int, writeTimeout time.Duration, logger *slog.Logger) *Hub {
	if queueSize < 1 {
		queueSize = 64
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		ctrl:         ctrl,
		log:          logger,
		queueSize:    queueSize,
		writeTimeout: writeTimeout,
		clients:      make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// ObserveTick queues the result for every client without blocking.
// Clients whose queue is full miss the message.
func (h *Hub) ObserveTick(r kinetics.TickResult) {
	data, err := json.Marshal(NewMessage(r))
	if err != nil {
		h.log.Error("encoding tick message", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped.Add(1)
		}
	}
}

// Dropped returns how many messages were discarded for slow clients.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the connection and serves the client until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, h.queueSize)}
	if !h.add(c) {
		conn.Close()
		return
	}
	h.log.Debug("stream client connected", "remote", r.RemoteAddr)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump applies commands until the connection fails.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			h.reply(c, errorMessage{Error: fmt.Sprintf("decoding command: %v", err)})
			continue
		}
		if err := h.apply(cmd); err != nil {
			h.reply(c, errorMessage{Error: err.Error()})
		}
	}
}

// writePump is the only writer on the connection.
func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// reply queues a message for one client if it is still connected.
func (h *Hub) reply(c *client, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hub) apply(cmd Command) error {
	switch cmd.Op {
	case OpStart:
		h.ctrl.Start()
	case OpStop:
		h.ctrl.Stop()
	case OpReset:
		h.ctrl.Reset()
	case OpSetTemperature:
		return h.ctrl.SetTemperature(cmd.Value)
	case OpSetConcentration:
		return h.ctrl.SetConcentration(cmd.Value)
	default:
		return fmt.Errorf("unknown op %q", cmd.Op)
	}
	return nil
}

// Close disconnects every client. The hub accepts no new clients afterwards.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	return nil
}
