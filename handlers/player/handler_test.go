package player

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webtor-io/video-feed/services/bridge"
	"github.com/webtor-io/video-feed/services/session"
	"github.com/webtor-io/video-feed/services/session/sessiontest"
)

func newEnv(t *testing.T) *sessiontest.Env {
	t.Helper()
	env := sessiontest.New(t)
	RegisterHandler(env.App)
	return env
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) session.View {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var v session.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestPlayer_ActionsJSON(t *testing.T) {
	env := newEnv(t)
	cl := env.Client(t)

	v := decodeView(t, cl.PostJSON("/player/open/2"))
	assert.Equal(t, "full", v.Mode)
	require.NotNil(t, v.State.CurrentVideo)
	assert.Equal(t, "Elephant Dream", v.State.CurrentVideo.Title)
	assert.True(t, v.State.IsPlaying)

	v = decodeView(t, cl.PostJSON("/player/minimize"))
	assert.Equal(t, "minimized", v.Mode)
	v = decodeView(t, cl.PostJSON("/player/toggle"))
	assert.False(t, v.State.IsPlaying)
	v = decodeView(t, cl.PostJSON("/player/restore"))
	assert.Equal(t, "full", v.Mode)
	assert.Equal(t, "2", v.State.CurrentVideo.ID)

	v = decodeView(t, cl.PostJSON("/player/related/toggle"))
	assert.True(t, v.RelatedExpanded)

	v = decodeView(t, cl.PostJSON("/player/close"))
	assert.Equal(t, "closed", v.Mode)
	assert.Nil(t, v.State.CurrentVideo)
	assert.False(t, v.State.IsPlaying)
}

func TestPlayer_FormPostRedirectsBack(t *testing.T) {
	env := newEnv(t)
	cl := env.Client(t)
	w := cl.PostForm("/player/open/5", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	v := decodeView(t, cl.Get("/player/state"))
	assert.Equal(t, "5", v.State.CurrentVideo.ID)
}

func TestPlayer_UnknownVideo(t *testing.T) {
	env := newEnv(t)
	w := env.Client(t).PostJSON("/player/open/404")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlayer_StateIsPerSession(t *testing.T) {
	env := newEnv(t)
	a, b := env.Client(t), env.Client(t)
	decodeView(t, a.PostJSON("/player/open/1"))
	assert.Equal(t, "closed", decodeView(t, b.Get("/player/state")).Mode)
}

func TestPlayer_Websocket(t *testing.T) {
	env := newEnv(t)
	srv := httptest.NewServer(env.Engine)
	t.Cleanup(srv.Close)

	// establish a session cookie, then open a video over plain HTTP
	cl := env.Client(t)
	decodeView(t, cl.PostJSON("/player/open/1"))
	sess := cl.Session()

	header := http.Header{}
	for _, c := range cl.Cookies() {
		header.Add("Cookie", c.Name+"="+c.Value)
	}
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/player/ws"
	ws, _, err := websocket.DefaultDialer.Dial(u, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	// the open video is replayed to the fresh page
	cmds := map[bridge.Op]bridge.Command{}
	var state *session.View
	deadline := time.Now().Add(2 * time.Second)
	for (len(cmds) < 3 || state == nil) && time.Now().Before(deadline) {
		_ = ws.SetReadDeadline(deadline)
		var raw struct {
			Kind    bridge.Kind     `json:"kind"`
			Command *bridge.Command `json:"command"`
			State   *session.View   `json:"state"`
		}
		require.NoError(t, ws.ReadJSON(&raw))
		if raw.Command != nil {
			cmds[raw.Command.Op] = *raw.Command
		}
		if raw.State != nil {
			state = raw.State
		}
	}
	assert.Contains(t, cmds[bridge.OpSrc].URL, "BigBuckBunny.mp4")
	assert.Contains(t, cmds, bridge.OpPlay)
	require.NotNil(t, state)
	assert.Equal(t, "full", state.Mode)

	require.NoError(t, ws.WriteJSON(bridge.Incoming{Kind: bridge.KindEvent, Event: &bridge.Event{Type: bridge.EventPlayRejected}}))
	assert.Eventually(t, func() bool {
		return !sess.View().State.IsPlaying
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, sess.View().State.IsPlayerOpen)
}
