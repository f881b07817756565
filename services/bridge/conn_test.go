package bridge

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHandler struct {
	mu       sync.Mutex
	messages []*Incoming
	closed   chan struct{}
	conns    chan *Conn
}

func newTestHandler() *testHandler {
	return &testHandler{
		closed: make(chan struct{}),
		conns:  make(chan *Conn, 1),
	}
}

func (h *testHandler) HandleMessage(_ *Conn, m *Incoming) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, m)
}

func (h *testHandler) HandleClose(_ *Conn) {
	close(h.closed)
}

func (h *testHandler) received() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}

func newTestServer(t *testing.T, h *testHandler) *websocket.Conn {
	t.Helper()
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewConn(ws)
		h.conns <- c
		c.Serve(h)
	}))
	t.Cleanup(srv.Close)
	u := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func TestConn_RoundTrip(t *testing.T) {
	h := newTestHandler()
	ws := newTestServer(t, h)
	c := <-h.conns

	require.NoError(t, ws.WriteJSON(Incoming{Kind: KindEvent, Event: &Event{Type: EventPlay}}))
	require.NoError(t, ws.WriteJSON(Incoming{Kind: KindAction, Action: &Action{Name: "skip", Value: 10}}))
	assert.Eventually(t, func() bool { return h.received() == 2 }, time.Second, 10*time.Millisecond)

	h.mu.Lock()
	assert.Equal(t, EventPlay, h.messages[0].Event.Type)
	assert.Equal(t, 10.0, h.messages[1].Action.Value)
	h.mu.Unlock()

	c.SendCommand(Command{Op: OpSeek, Value: 5})
	var out Outgoing
	_ = ws.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, ws.ReadJSON(&out))
	assert.Equal(t, KindCommand, out.Kind)
	require.NotNil(t, out.Command)
	assert.Equal(t, OpSeek, out.Command.Op)
	assert.Equal(t, 5.0, out.Command.Value)
}

func TestConn_CloseNotifiesHandler(t *testing.T) {
	h := newTestHandler()
	ws := newTestServer(t, h)
	c := <-h.conns

	c.Close()
	select {
	case <-h.closed:
	case <-time.After(time.Second):
		t.Fatal("handler was not notified")
	}
	_ = ws.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := ws.ReadMessage()
	assert.Error(t, err)

	c.SendState(map[string]bool{"ignored": true})
}
