package bridge

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Handler consumes messages read from a Conn. HandleMessage runs on the
// read goroutine; HandleClose runs once, after the connection is gone.
type Handler interface {
	HandleMessage(c *Conn, m *Incoming)
	HandleClose(c *Conn)
}

// Conn is one page's websocket. Writes are queued and flushed by a single
// write goroutine; a page that stops reading is disconnected once its
// queue is full.
type Conn struct {
	ws        *websocket.Conn
	send      chan Outgoing
	done      chan struct{}
	closeOnce sync.Once
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ws:   ws,
		send: make(chan Outgoing, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *Conn) SendCommand(cmd Command) {
	c.Send(Outgoing{Kind: KindCommand, Command: &cmd})
}

func (c *Conn) SendState(state any) {
	c.Send(Outgoing{Kind: KindState, State: state})
}

func (c *Conn) Send(m Outgoing) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- m:
	case <-c.done:
	default:
		log.Warn("websocket send buffer is full, disconnecting")
		c.Close()
	}
}

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Serve pumps the connection until either side goes away.
func (c *Conn) Serve(h Handler) {
	go c.writePump()
	c.readPump(h)
}

func (c *Conn) readPump(h Handler) {
	defer func() {
		c.Close()
		_ = c.ws.Close()
		h.HandleClose(c)
	}()
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var m Incoming
		if err := c.ws.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Warn("websocket read error")
			}
			return
		}
		h.HandleMessage(c, &m)
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case m := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(m); err != nil {
				log.WithError(err).Debug("websocket write error")
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
