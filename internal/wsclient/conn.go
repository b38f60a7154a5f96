package wsclient

import (
	"sync"
	"time"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Conn is one live socket for a (service, role) pair. Frames are decoded at
// the socket boundary and handed to the handler in delivery order; a decode
// failure is logged per frame and the read loop continues. The conn does not
// reconnect on its own: a dropped socket stays down until the manager is
// told to redial, so a wrong backend address surfaces as a disconnected
// state instead of being masked by silent retries.
type Conn struct {
	service      string
	role         types.Role
	conn         *websocket.Conn
	handler      Handler
	writeTimeout time.Duration
	logger       zerolog.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func dial(base, service string, role types.Role, writeTimeout time.Duration, handler Handler, logger zerolog.Logger) (*Conn, error) {
	wsURL := SocketURL(base, service, role)

	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, err
	}

	c := &Conn{
		service:      service,
		role:         role,
		conn:         ws,
		handler:      handler,
		writeTimeout: writeTimeout,
		logger: logger.With().
			Str("service", service).
			Str("role", string(role)).
			Logger(),
		done: make(chan struct{}),
	}

	c.logger.Debug().Str("url", wsURL).Msg("websocket connected")
	go c.readPump()
	return c, nil
}

// readPump delivers inbound frames until the socket closes.
func (c *Conn) readPump() {
	defer close(c.done)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			wasClosed := c.closed
			c.mu.Unlock()
			if !wasClosed {
				c.logger.Debug().Err(err).Msg("websocket closed")
			}
			c.handler.OnDisconnected(c.service)
			return
		}

		msg, err := types.DecodeMessage(raw)
		if err != nil {
			c.logger.Error().Err(err).Msg("unparseable frame, skipping")
			continue
		}
		c.handler.OnMessage(c.service, c.role, msg)
	}
}

// Close tears the socket down. The read pump drains out on its own.
func (c *Conn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(c.writeTimeout))
	c.conn.Close()
	<-c.done
}
