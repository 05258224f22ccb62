package hub

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Outbound buffer per client. A peer that falls this far behind is
	// treated as failed and cleaned up.
	sendBufferSize = 256
)

// Conn is the transport side of a client. *websocket.Conn satisfies it;
// tests plug in fakes.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Client is one live connection tied to exactly one (user, whiteboard)
// pair. Outbound traffic goes through a buffered channel drained by
// WritePump so one slow peer never stalls a broadcast to the others.
type Client struct {
	conn         Conn
	userID       uuid.UUID
	whiteboardID uuid.UUID

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(conn Conn, whiteboardID, userID uuid.UUID) *Client {
	return &Client{
		conn:         conn,
		userID:       userID,
		whiteboardID: whiteboardID,
		send:         make(chan []byte, sendBufferSize),
		done:         make(chan struct{}),
	}
}

func (c *Client) UserID() uuid.UUID       { return c.userID }
func (c *Client) WhiteboardID() uuid.UUID { return c.whiteboardID }

// enqueue puts a message on the client's outbound buffer without
// blocking. It reports false when the buffer is full or the client is
// already shut down.
func (c *Client) enqueue(message []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// shutdown closes the transport and stops the write pump. Safe to call
// from multiple cleanup paths.
func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		if err := c.conn.Close(); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":       c.userID,
				"whiteboard_id": c.whiteboardID,
			}).WithError(err).Debug("Error closing connection")
		}
	})
}

// WritePump drains the send channel onto the websocket and keeps the
// connection alive with periodic pings. It runs in its own goroutine;
// a write failure closes the transport, which makes the read loop exit
// and unregister the client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id":       c.userID,
					"whiteboard_id": c.whiteboardID,
				}).WithError(err).Warn("Failed to write message to websocket")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
