package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/webtor-io/lazymap"
	"github.com/webtor-io/video-feed/services/catalog"
	"github.com/webtor-io/video-feed/services/player"
)

const (
	SessionTTLFlag = "session-ttl"
	idKey          = "sid"
	contextKey     = "player_session"
	reapInterval   = time.Minute
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.DurationFlag{
			Name:   SessionTTLFlag,
			Usage:  "how long a player session is kept in memory",
			Value:  24 * time.Hour,
			EnvVar: "SESSION_TTL",
		},
	)
}

// Registry keeps one Session per browser, keyed by an id stored in the
// cookie session. A session expires after ttl without requests or
// websocket messages; expired sessions are closed.
type Registry struct {
	catalog  *catalog.Catalog
	clock    player.Clock
	ttl      time.Duration
	sessions *lazymap.LazyMap[*Session]
	mux      sync.Mutex
	live     map[string]*Session
	reaped   time.Time
}

func New(c *cli.Context, cat *catalog.Catalog) *Registry {
	return NewRegistry(cat, player.SystemClock(), c.Duration(SessionTTLFlag))
}

func NewRegistry(cat *catalog.Catalog, c player.Clock, ttl time.Duration) *Registry {
	return &Registry{
		catalog: cat,
		clock:   c,
		ttl:     ttl,
		sessions: lazymap.New[*Session](&lazymap.Config{
			Expire: ttl,
		}),
		live: map[string]*Session{},
	}
}

func (s *Registry) TTL() time.Duration {
	return s.ttl
}

func (s *Registry) Get(id string) (*Session, error) {
	if id == "" {
		return nil, errors.New("empty session id")
	}
	return s.sessions.Get(id, func() (*Session, error) {
		log.WithField("session", id).Info("starting player session")
		sess := newSession(id, s.catalog, s.clock)
		sess.touch = func() {
			s.Touch(id)
		}
		s.mux.Lock()
		prev := s.live[id]
		s.live[id] = sess
		s.mux.Unlock()
		if prev != nil {
			prev.Close()
		}
		return sess, nil
	})
}

// Touch restarts the expiry of session id.
func (s *Registry) Touch(id string) {
	s.sessions.Touch(id)
}

// Reap closes sessions that have expired and returns how many it closed.
func (s *Registry) Reap() int {
	s.mux.Lock()
	s.reaped = s.clock.Now()
	var dead []*Session
	for id, sess := range s.live {
		if _, ok := s.sessions.Status(id); !ok {
			dead = append(dead, sess)
			delete(s.live, id)
		}
	}
	s.mux.Unlock()
	for _, sess := range dead {
		log.WithField("session", sess.ID).Info("closing expired player session")
		sess.Close()
	}
	return len(dead)
}

func (s *Registry) reapIfDue() {
	s.mux.Lock()
	due := s.clock.Now().Sub(s.reaped) >= reapInterval
	s.mux.Unlock()
	if due {
		s.Reap()
	}
}

// Middleware resolves the browser's Session and stores it in the request
// context. It requires the cookie session middleware to run first.
func (s *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cs := sessions.Default(c)
		id, _ := cs.Get(idKey).(string)
		if id == "" {
			id = uuid.NewString()
			cs.Set(idKey, id)
			if err := cs.Save(); err != nil {
				_ = c.AbortWithError(http.StatusInternalServerError, errors.Wrap(err, "failed to save session"))
				return
			}
		}
		s.reapIfDue()
		sess, err := s.Get(id)
		if err != nil {
			_ = c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		s.Touch(id)
		c.Set(contextKey, sess)
		c.Next()
	}
}

func FromContext(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok
}

// MustGet returns the request's Session. Handlers using it must be mounted
// behind Middleware.
func MustGet(c *gin.Context) *Session {
	sess, ok := FromContext(c)
	if !ok {
		panic("player session requested outside of session middleware")
	}
	return sess
}
