// Package realtime maintains the push channel from the shopping cart service
// for one cart. The channel is best-effort: recovery after a drop is bounded
// reconnection plus full-snapshot refresh, never message replay.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"skishop-bff/internal/domain"
)

// State of the channel.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Inbound message types.
const (
	typeConnected    = "connected"
	typeCartUpdated  = "cart_updated"
	typePriceUpdated = "price_updated"
	typeStockUpdated = "stock_updated"
	typeError        = "error"
)

// Envelope is the wire frame in both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outEnvelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Config wires one channel to a cart and its owner's callbacks. Callbacks
// are invoked from the channel's goroutines.
type Config struct {
	URL    string // channel endpoint; the cart id is appended as a path segment
	CartID string

	HeartbeatInterval time.Duration // default 30s
	ReconnectBase     time.Duration // default 1s, delay grows linearly per attempt
	MaxReconnects     int           // default 5

	Dialer *websocket.Dialer
	Logger *log.Logger

	OnCartUpdate func(domain.Cart)
	OnError      func(message string)
	OnConnect    func()
	OnDisconnect func()
}

// Client is the realtime channel state machine:
// Disconnected -> Connecting -> Connected, back to Disconnected on close.
// An abnormal close schedules a reconnect after base x attempt until the
// attempt budget is spent, then surfaces a terminal error exactly once.
type Client struct {
	cfg Config

	mu       sync.Mutex
	state    State
	conn     *websocket.Conn
	attempts int
	closed   bool
	timer    *time.Timer

	writeMu sync.Mutex
}

// New builds a channel client; Connect must be called to open it.
func New(cfg Config) *Client {
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = 30 * time.Second
	}
	if cfg.ReconnectBase <= 0 {
		cfg.ReconnectBase = time.Second
	}
	if cfg.MaxReconnects <= 0 {
		cfg.MaxReconnects = 5
	}
	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Client{cfg: cfg}
}

// Connect opens the channel. No-op unless currently Disconnected.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.closed || c.state != StateDisconnected {
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	c.mu.Unlock()

	go c.dial()
}

// Disconnect tears the channel down permanently; no reconnect follows.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

// IsConnected reports whether the channel is currently open.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateConnected
}

// State returns the current channel state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Send writes one envelope when connected; otherwise the message is dropped,
// never queued.
func (c *Client) Send(msgType string, data interface{}) {
	c.mu.Lock()
	conn := c.conn
	connected := c.state == StateConnected
	c.mu.Unlock()

	if !connected || conn == nil {
		c.cfg.Logger.Printf("cart channel %s: not connected, dropping %q message", c.cfg.CartID, msgType)
		return
	}
	if data == nil {
		data = struct{}{}
	}

	c.writeMu.Lock()
	err := conn.WriteJSON(outEnvelope{Type: msgType, Data: data})
	c.writeMu.Unlock()
	if err != nil {
		c.emitError("cart channel send failed: " + err.Error())
	}
}

func (c *Client) dial() {
	conn, resp, err := c.cfg.Dialer.Dial(c.cfg.URL+"/"+c.cfg.CartID, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		c.cfg.Logger.Printf("cart channel %s: dial: %v", c.cfg.CartID, err)
		c.emitError("cart channel connection failed")

		c.mu.Lock()
		c.state = StateDisconnected
		c.mu.Unlock()

		if c.cfg.OnDisconnect != nil {
			c.cfg.OnDisconnect()
		}
		c.scheduleReconnect()
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.state = StateConnected
	c.attempts = 0
	c.mu.Unlock()

	if c.cfg.OnConnect != nil {
		c.cfg.OnConnect()
	}

	stop := make(chan struct{})
	go c.heartbeat(stop)
	go c.readLoop(conn, stop)
}

func (c *Client) readLoop(conn *websocket.Conn, stop chan struct{}) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.handleClose(conn, stop)
			return
		}
		c.handleMessage(raw)
	}
}

func (c *Client) handleClose(conn *websocket.Conn, stop chan struct{}) {
	close(stop)
	conn.Close()

	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
		c.state = StateDisconnected
	}
	closed := c.closed
	c.mu.Unlock()

	if c.cfg.OnDisconnect != nil {
		c.cfg.OnDisconnect()
	}
	if closed {
		return
	}
	c.scheduleReconnect()
}

func (c *Client) scheduleReconnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.attempts >= c.cfg.MaxReconnects {
		c.mu.Unlock()
		c.cfg.Logger.Printf("cart channel %s: reconnect attempts exhausted", c.cfg.CartID)
		c.emitError("cart channel lost and could not be re-established")
		return
	}
	c.attempts++
	attempt := c.attempts
	delay := time.Duration(attempt) * c.cfg.ReconnectBase
	c.cfg.Logger.Printf("cart channel %s: reconnect %d/%d in %s", c.cfg.CartID, attempt, c.cfg.MaxReconnects, delay)
	c.timer = time.AfterFunc(delay, c.Connect)
	c.mu.Unlock()
}

func (c *Client) heartbeat(stop chan struct{}) {
	ticker := time.NewTicker(c.cfg.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.Send("ping", map[string]interface{}{"timestamp": time.Now().UnixMilli()})
		}
	}
}

func (c *Client) handleMessage(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.emitError("cart channel message could not be parsed")
		return
	}

	switch env.Type {
	case typeConnected:
		c.cfg.Logger.Printf("cart channel %s: confirmed", c.cfg.CartID)
	case typeCartUpdated:
		var payload struct {
			Cart *domain.Cart `json:"cart"`
		}
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			c.emitError("cart channel update could not be parsed")
			return
		}
		if payload.Cart == nil {
			return
		}
		if c.cfg.OnCartUpdate != nil {
			c.cfg.OnCartUpdate(*payload.Cart)
		}
	case typePriceUpdated, typeStockUpdated:
		// Deltas are never applied locally; ask for a full snapshot instead,
		// which comes back as cart_updated.
		c.Send("refresh_cart", struct{}{})
	case typeError:
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(env.Data, &payload)
		msg := payload.Message
		if msg == "" {
			msg = "cart channel reported an error"
		}
		c.emitError(msg)
	default:
		c.cfg.Logger.Printf("cart channel %s: ignoring message type %q", c.cfg.CartID, env.Type)
	}
}

func (c *Client) emitError(msg string) {
	if c.cfg.OnError != nil {
		c.cfg.OnError(msg)
	}
}
