package device

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 32
)

// Hub fans events out to the registers connected for each merchant.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{} // merchant id -> connections
	logger  logger.ZapLogger
}

type client struct {
	hub        *Hub
	merchantID string
	conn       *websocket.Conn
	send       chan []byte
}

func NewHub(log logger.ZapLogger) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		logger:  log,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.merchantID] == nil {
		h.clients[c.merchantID] = make(map[*client]struct{})
	}
	h.clients[c.merchantID][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[c.merchantID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
			if len(conns) == 0 {
				delete(h.clients, c.merchantID)
			}
		}
	}
}

// ClientCount reports the number of live connections for a merchant.
func (h *Hub) ClientCount(merchantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[merchantID])
}

// Publish sends the event to every register of the merchant. Slow consumers
// whose buffers are full are dropped.
func (h *Hub) Publish(merchantID string, event interface{}) {
	data, err := marshalEvent(event)
	if err != nil {
		h.logger.Error("failed to marshal device event", zap.Error(err))
		return
	}

	// Sends stay inside the read lock; unregister closes the channel under
	// the write lock, so a send can never hit a closed channel.
	var slow []*client
	h.mu.RLock()
	for c := range h.clients[merchantID] {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow device connection",
			zap.String("merchant_id", merchantID))
		h.unregister(c)
		c.conn.Close()
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Inbound frames are only keepalives; discard them.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
