package session

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/video-feed/models"
	"github.com/webtor-io/video-feed/services/bridge"
	"github.com/webtor-io/video-feed/services/catalog"
	"github.com/webtor-io/video-feed/services/player"
	"github.com/webtor-io/video-feed/services/thumbnail"
)

var (
	ErrUnknownAction = errors.New("unknown player action")
	ErrVideoNotFound = errors.New("video not found")
)

const (
	ActionOpen             = "open"
	ActionClose            = "close"
	ActionMinimize         = "minimize"
	ActionRestore          = "restore"
	ActionTogglePlay       = "toggle-play"
	ActionCancelCountdown  = "countdown-cancel"
	ActionToggleRelated    = "related-toggle"
	ActionSeek             = "seek"
	ActionSkip             = "skip"
	ActionVolume           = "volume"
	ActionMute             = "mute"
	ActionInteract         = "interact"
	ActionPictureInPicture = "pip"
	ActionFullscreen       = "fullscreen"
)

const relatedThumbWidth = 160

// View is everything the page needs to draw the player.
type View struct {
	State           player.State        `json:"state"`
	Mode            string              `json:"mode"`
	Countdown       int                 `json:"countdown"`
	CountingDown    bool                `json:"countingDown"`
	Related         []RelatedVideo      `json:"related"`
	RelatedExpanded bool                `json:"relatedExpanded"`
	DragOffset      float64             `json:"dragOffset"`
	Controls        player.ControlsView `json:"controls"`
}

// RelatedVideo is a related list entry with the address its thumbnail is
// loaded from.
type RelatedVideo struct {
	models.Video
	Thumb string `json:"thumb"`
}

// Session is one browser's feed and player. All of its state is touched
// only inside Do.
type Session struct {
	ID       string
	loop     player.Loop
	clock    player.Clock
	ids      *catalog.IDGenerator
	feed     *catalog.Feed
	store    *player.Store
	overlay  *player.Overlay
	controls *player.Controls
	el       *bridge.Element
	conn     *bridge.Conn
	touch    func()
	done     chan struct{}
	once     sync.Once
}

func newSession(id string, cat *catalog.Catalog, c player.Clock) *Session {
	s := &Session{
		ID:    id,
		clock: c,
		ids:   catalog.NewIDGenerator(c.Now),
		feed:  catalog.NewFeed(cat),
		store: player.NewStore(),
		el:    bridge.NewElement(),
		touch: func() {},
		done:  make(chan struct{}),
	}
	s.overlay = player.NewOverlay(s.store, s.feed, c, s)
	s.controls = player.NewControls(s.store, s.el.PictureInPicture(), s.el.Fullscreen(), c, s)
	s.overlay.Mount(s.el)
	s.controls.Mount(s.el)
	return s
}

// Do runs f on the session loop and pushes the resulting view to the
// connected page.
func (s *Session) Do(f func()) {
	s.loop.Do(func() {
		f()
		s.push()
	})
}

func (s *Session) push() {
	if s.conn == nil {
		return
	}
	s.conn.SendState(s.view())
}

func (s *Session) View() (v View) {
	s.loop.Do(func() {
		v = s.view()
	})
	return
}

func (s *Session) view() View {
	n, counting := s.overlay.Countdown()
	v := View{
		State:           s.store.State(),
		Mode:            s.overlay.Mode().String(),
		Countdown:       n,
		CountingDown:    counting,
		RelatedExpanded: s.overlay.RelatedExpanded(),
		DragOffset:      s.overlay.DragOffset(),
		Controls:        s.controls.View(),
	}
	if v.State.IsPlayerOpen {
		for _, r := range s.overlay.Related() {
			v.Related = append(v.Related, RelatedVideo{Video: r, Thumb: thumbnail.URL(r, relatedThumbWidth)})
		}
	}
	return v
}

// Perform applies a player action.
func (s *Session) Perform(a bridge.Action) (err error) {
	s.Do(func() {
		err = s.perform(a)
	})
	return
}

func (s *Session) perform(a bridge.Action) error {
	switch a.Name {
	case ActionOpen:
		v, ok := s.feed.Get(a.ID)
		if !ok {
			return errors.Wrapf(ErrVideoNotFound, "id=%v", a.ID)
		}
		s.store.OpenVideo(v)
	case ActionClose:
		s.store.ClosePlayer()
	case ActionMinimize:
		s.store.MinimizePlayer()
	case ActionRestore:
		s.store.RestorePlayer()
	case ActionTogglePlay:
		s.controls.TogglePlay()
	case ActionCancelCountdown:
		s.overlay.CancelCountdown()
	case ActionToggleRelated:
		s.overlay.ToggleRelated()
	case ActionSeek:
		s.controls.Seek(a.X, a.Width)
	case ActionSkip:
		s.controls.Skip(a.Value)
	case ActionVolume:
		s.controls.SetVolumeAt(a.X, a.Width)
	case ActionMute:
		s.controls.ToggleMute()
	case ActionInteract:
		s.controls.Interact()
	case ActionPictureInPicture:
		s.controls.TogglePictureInPicture()
	case ActionFullscreen:
		s.controls.ToggleFullscreen()
	default:
		return errors.Wrapf(ErrUnknownAction, "name=%v", a.Name)
	}
	return nil
}

func (s *Session) Drag(ev player.DragEvent) (out player.DragOutcome) {
	s.Do(func() {
		out = s.overlay.HandleDrag(ev)
	})
	return
}

// AddVideo validates f and prepends the resulting record to the feed.
func (s *Session) AddVideo(f catalog.Form) (v models.Video, err error) {
	s.Do(func() {
		v, err = f.Build(s.ids.Next(), s.clock.Now())
		if err != nil {
			return
		}
		s.feed.Add(v)
	})
	return
}

func (s *Session) Grouped(c models.Category, query string) (gs []catalog.Group) {
	s.Do(func() {
		gs = s.feed.Grouped(c, query)
	})
	return
}

func (s *Session) Video(id string) (v models.Video, ok bool) {
	s.Do(func() {
		v, ok = s.feed.Get(id)
	})
	return
}

// Attach makes c the page driving this session's player. A previously
// attached page is disconnected.
func (s *Session) Attach(c *bridge.Conn) {
	s.Do(func() {
		if s.conn != nil && s.conn != c {
			s.el.Detach(s.conn)
			s.conn.Close()
		}
		s.conn = c
		s.el.Attach(c)
	})
}

func (s *Session) Detach(c *bridge.Conn) {
	s.Do(func() {
		if s.conn != c {
			return
		}
		s.el.Detach(c)
		s.conn = nil
	})
}

func (s *Session) HandleMessage(c *bridge.Conn, m *bridge.Incoming) {
	s.touch()
	switch m.Kind {
	case bridge.KindEvent:
		if m.Event == nil {
			return
		}
		s.Do(func() {
			if s.conn != c {
				return
			}
			if err := s.el.Apply(*m.Event); err != nil {
				log.WithError(err).WithField("session", s.ID).Warn("failed to apply media event")
			}
		})
	case bridge.KindAction:
		if m.Action == nil {
			return
		}
		if err := s.Perform(*m.Action); err != nil {
			log.WithError(err).WithField("session", s.ID).Warn("failed to perform player action")
		}
	case bridge.KindDrag:
		if m.Drag == nil {
			return
		}
		s.Drag(*m.Drag)
	default:
		log.WithField("kind", m.Kind).Warn("unknown websocket message")
	}
}

func (s *Session) HandleClose(c *bridge.Conn) {
	s.Detach(c)
}

// Close stops timers and releases the player, disconnecting the attached
// page. The session must not be used afterwards.
func (s *Session) Close() {
	s.once.Do(func() {
		s.loop.Do(func() {
			s.overlay.Close()
			s.controls.Close()
			if s.conn != nil {
				s.el.Detach(s.conn)
				s.conn.Close()
				s.conn = nil
			}
		})
		close(s.done)
	})
}

// Done is closed once the session has been closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
