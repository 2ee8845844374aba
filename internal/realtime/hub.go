package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients come from the backoffice SPA on a different origin;
	// auth happens via the JWT checked before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub bridges Redis pub/sub to websocket clients. One goroutine per company
// channel fans messages out to every connected socket of that company; the
// subscription is opened lazily on the first client and closed with the last.
type Hub struct {
	publisher *Publisher

	mu      sync.Mutex
	clients map[uuid.UUID]map[*client]bool
	cancels map[uuid.UUID]context.CancelFunc
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(publisher *Publisher) *Hub {
	return &Hub{
		publisher: publisher,
		clients:   make(map[uuid.UUID]map[*client]bool),
		cancels:   make(map[uuid.UUID]context.CancelFunc),
	}
}

// ServeWS upgrades the request and keeps the socket fed with the company's
// order events until either side goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, companyID uuid.UUID) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn, send: make(chan []byte, 32)}
	h.register(companyID, c)

	go c.writeLoop()
	go func() {
		defer h.unregister(companyID, c)
		c.readLoop()
	}()
	return nil
}

func (h *Hub) register(companyID uuid.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[companyID] == nil {
		h.clients[companyID] = make(map[*client]bool)
		ctx, cancel := context.WithCancel(context.Background())
		h.cancels[companyID] = cancel
		go h.fanOut(ctx, companyID)
	}
	h.clients[companyID][c] = true
}

func (h *Hub) unregister(companyID uuid.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.clients[companyID]; ok {
		if clients[c] {
			delete(clients, c)
			close(c.send)
		}
		if len(clients) == 0 {
			delete(h.clients, companyID)
			if cancel, ok := h.cancels[companyID]; ok {
				cancel()
				delete(h.cancels, companyID)
			}
		}
	}
}

// fanOut copies every Redis message on the company channel to all of the
// company's connected sockets.
func (h *Hub) fanOut(ctx context.Context, companyID uuid.UUID) {
	sub := h.publisher.Subscribe(ctx, companyID)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.mu.Lock()
			for c := range h.clients[companyID] {
				select {
				case c.send <- []byte(msg.Payload):
				default:
					// Slow consumer: drop the event rather than block the fan-out.
					log.Warn().Str("company_id", companyID.String()).
						Msg("realtime: dropping event for slow client")
				}
			}
			h.mu.Unlock()
		}
	}
}

func (c *client) writeLoop() {
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

// readLoop discards inbound frames; the socket is one-way. It exists to
// notice closes and answer pings.
func (c *client) readLoop() {
	defer c.conn.Close()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
