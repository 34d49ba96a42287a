package monitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fkcurrie/fm6126-scan/internal/types"
)

// Client follows the status stream of a running service
type Client struct {
	url        string
	interval   time.Duration
	conn       *websocket.Conn
	statusChan chan types.Status
	commands   chan string
	done       chan struct{}
}

// NewClient creates a client for the websocket at url, e.g.
// ws://localhost:8080/ws. A positive interval also polls with "?".
func NewClient(url string, interval time.Duration) *Client {
	return &Client{
		url:        url,
		interval:   interval,
		statusChan: make(chan types.Status, 10),
		commands:   make(chan string, 1),
		done:       make(chan struct{}),
	}
}

// Connect connects to the status stream
func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}
	c.conn = conn

	go c.readPump(ctx)
	go c.writePump(ctx)

	return nil
}

// Status returns a channel that receives status reports. It is closed when
// the connection ends.
func (c *Client) Status() <-chan types.Status {
	return c.statusChan
}

// Reset asks the service to reset the engine
func (c *Client) Reset() {
	select {
	case c.commands <- "!":
	default:
	}
}

// Close closes the client
func (c *Client) Close() {
	close(c.done)
	if c.conn != nil {
		c.conn.Close()
	}
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		close(c.statusChan)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("error: %v", err)
			}
			return
		}

		status, err := ParseStatus(string(message))
		if err != nil {
			log.Printf("error parsing status message: %v", err)
			continue
		}

		select {
		case c.statusChan <- status:
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
			// Channel is full, skip this update
		}
	}
}

func (c *Client) writePump(ctx context.Context) {
	var poll <-chan time.Time
	if c.interval > 0 {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		poll = ticker.C
	}

	write := func(msg string) error {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		return c.conn.WriteMessage(websocket.TextMessage, []byte(msg))
	}

	for {
		select {
		case <-ctx.Done():
			c.conn.Close()
			return
		case <-c.done:
			return
		case cmd := <-c.commands:
			if err := write(cmd); err != nil {
				return
			}
		case <-poll:
			if err := write("?"); err != nil {
				return
			}
		}
	}
}
