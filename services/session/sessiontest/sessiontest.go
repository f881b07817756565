// Package sessiontest wires a gin engine with the cookie session, CSRF and
// player session middleware for handler tests.
package sessiontest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	csrf "github.com/utrack/gin-csrf"
	"github.com/webtor-io/video-feed/services/catalog"
	"github.com/webtor-io/video-feed/services/player/playertest"
	"github.com/webtor-io/video-feed/services/session"
)

const secret = "test-secret"

// Env is an engine whose routes registered on App run behind the same
// middleware stack as in production.
type Env struct {
	Engine   *gin.Engine
	App      *gin.RouterGroup
	Registry *session.Registry
	Clock    *playertest.Clock
}

func New(t *testing.T) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c := playertest.NewClock()
	reg := session.NewRegistry(catalog.NewSeeded(), c, time.Hour)
	r := gin.New()
	app := r.Group("/")
	app.Use(sessions.Sessions("session", cookie.NewStore([]byte(secret))))
	app.Use(csrf.Middleware(csrf.Options{
		Secret: secret,
		ErrorFunc: func(c *gin.Context) {
			c.String(http.StatusBadRequest, "CSRF token mismatch")
			c.Abort()
		},
	}))
	app.Use(reg.Middleware())
	app.GET("/_csrf", func(c *gin.Context) {
		c.String(http.StatusOK, csrf.GetToken(c))
	})
	app.GET("/_sid", func(c *gin.Context) {
		c.String(http.StatusOK, session.MustGet(c).ID)
	})
	return &Env{
		Engine:   r,
		App:      app,
		Registry: reg,
		Clock:    c,
	}
}

// Client is a browser: it keeps cookies between requests.
type Client struct {
	t       *testing.T
	env     *Env
	cookies map[string]*http.Cookie
}

func (s *Env) Client(t *testing.T) *Client {
	return &Client{t: t, env: s, cookies: map[string]*http.Cookie{}}
}

func (s *Client) Cookies() []*http.Cookie {
	res := make([]*http.Cookie, 0, len(s.cookies))
	for _, c := range s.cookies {
		res = append(res, c)
	}
	return res
}

func (s *Client) Do(req *http.Request) *httptest.ResponseRecorder {
	s.t.Helper()
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.env.Engine.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		s.cookies[c.Name] = c
	}
	return w
}

func (s *Client) Get(path string) *httptest.ResponseRecorder {
	s.t.Helper()
	return s.Do(httptest.NewRequest(http.MethodGet, path, nil))
}

// Token returns a CSRF token valid for this client's session.
func (s *Client) Token() string {
	s.t.Helper()
	return s.Get("/_csrf").Body.String()
}

// Session returns the player session behind this client.
func (s *Client) Session() *session.Session {
	s.t.Helper()
	id := s.Get("/_sid").Body.String()
	sess, err := s.env.Registry.Get(id)
	if err != nil {
		s.t.Fatal(err)
	}
	return sess
}

// PostForm submits form with a valid CSRF token.
func (s *Client) PostForm(path string, form url.Values) *httptest.ResponseRecorder {
	s.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("_csrf", s.Token())
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.Do(req)
}

// PostJSON posts as the page script does, expecting a JSON answer.
func (s *Client) PostJSON(path string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-CSRF-TOKEN", s.Token())
	return s.Do(req)
}

var metaToken = regexp.MustCompile(`name="csrf-token" content="([^"]+)"`)

// PageToken extracts the CSRF token a rendered page carries.
func PageToken(body io.Reader) string {
	b, _ := io.ReadAll(body)
	m := metaToken.FindSubmatch(b)
	if m == nil {
		return ""
	}
	return string(m[1])
}
