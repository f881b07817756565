package player

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/video-feed/models"
)

const (
	CountdownStart = 2
	CountdownTick  = time.Second
)

type Mode int

const (
	ModeClosed Mode = iota
	ModeFullOpen
	ModeMinimized
)

func (m Mode) String() string {
	switch m {
	case ModeFullOpen:
		return "full"
	case ModeMinimized:
		return "minimized"
	default:
		return "closed"
	}
}

type RelatedSource interface {
	Related(v *models.Video) []models.Video
}

// Overlay hosts the full and minimized player. It loads every newly opened
// video into the bound element, counts down to the next related video when
// playback ends and turns drags on the video surface into minimize.
type Overlay struct {
	store           *Store
	related         RelatedSource
	el              MediaElement
	scope           Scope
	storeSub        *Subscription
	countdown       *Slot
	remaining       int
	counting        bool
	relatedExpanded bool
	dragOffset      float64
}

func NewOverlay(store *Store, related RelatedSource, c Clock, d Dispatcher) *Overlay {
	o := &Overlay{
		store:     store,
		related:   related,
		countdown: NewSlot(c, d),
	}
	o.storeSub = store.Observe(o.onStateChange)
	return o
}

func (o *Overlay) Mode() Mode {
	st := o.store.State()
	switch {
	case !st.IsPlayerOpen:
		return ModeClosed
	case st.IsMinimized:
		return ModeMinimized
	default:
		return ModeFullOpen
	}
}

// Mount binds el as the player's element. If a video is already open it is
// loaded into el.
func (o *Overlay) Mount(el MediaElement) {
	o.Unmount()
	o.el = el
	o.store.Bind(el)
	o.scope.Add(el.On(EventEnded, o.onEnded))
	o.scope.Add(el.On(EventPlay, func() {
		o.store.SetIsPlaying(true)
	}))
	o.scope.Add(el.On(EventPause, func() {
		o.store.SetIsPlaying(false)
	}))
	if v := o.store.State().CurrentVideo; v != nil && el.Src() != v.VideoURL {
		o.load(v)
	}
}

func (o *Overlay) Unmount() {
	o.scope.Close()
	o.stopCountdown()
	o.el = nil
}

// Close unmounts and stops observing the store.
func (o *Overlay) Close() {
	o.Unmount()
	o.storeSub.Unsubscribe()
}

func (o *Overlay) Countdown() (int, bool) {
	return o.remaining, o.counting
}

func (o *Overlay) CancelCountdown() {
	o.stopCountdown()
}

func (o *Overlay) Related() []models.Video {
	v := o.store.State().CurrentVideo
	if v == nil {
		return nil
	}
	return o.related.Related(v)
}

func (o *Overlay) RelatedExpanded() bool {
	return o.relatedExpanded
}

func (o *Overlay) ToggleRelated() {
	o.relatedExpanded = !o.relatedExpanded
}

func (o *Overlay) DragOffset() float64 {
	return o.dragOffset
}

// HandleDrag follows a drag on the full player's video surface. On release
// the surface snaps back and, past the threshold, the player minimizes.
func (o *Overlay) HandleDrag(ev DragEvent) DragOutcome {
	if o.Mode() != ModeFullOpen {
		o.dragOffset = 0
		return DragSnapBack
	}
	if !ev.Released {
		o.dragOffset = ev.OffsetY
		return DragSnapBack
	}
	o.dragOffset = 0
	res := ResolveDrag(ev.OffsetY)
	if res == DragMinimize {
		o.store.MinimizePlayer()
	}
	return res
}

func (o *Overlay) onStateChange(prev, next State) {
	if next.CurrentVideo != nil && next.CurrentVideo != prev.CurrentVideo {
		o.stopCountdown()
		o.relatedExpanded = false
		o.dragOffset = 0
		if o.el != nil {
			o.load(next.CurrentVideo)
		}
		return
	}
	if prev.IsPlayerOpen && !next.IsPlayerOpen {
		o.stopCountdown()
		o.relatedExpanded = false
		o.dragOffset = 0
	}
}

// load points the element at v and starts playback. The source is always
// assigned before play is requested.
func (o *Overlay) load(v *models.Video) {
	o.el.SetSrc(v.VideoURL)
	if err := o.el.Play(); err != nil {
		log.WithError(err).WithField("video_id", v.ID).Debug("autoplay refused")
		o.store.SetIsPlaying(!o.el.Paused())
		return
	}
	o.store.SetIsPlaying(true)
}

func (o *Overlay) onEnded() {
	o.store.SetIsPlaying(false)
	if len(o.Related()) == 0 {
		return
	}
	o.remaining = CountdownStart
	o.counting = true
	o.countdown.Schedule(CountdownTick, o.tick)
}

func (o *Overlay) tick() {
	o.remaining--
	if o.remaining > 0 {
		o.countdown.Schedule(CountdownTick, o.tick)
		return
	}
	o.counting = false
	o.remaining = 0
	rel := o.Related()
	if len(rel) == 0 {
		return
	}
	log.WithField("video_id", rel[0].ID).Debug("auto advancing to related video")
	o.store.OpenVideo(rel[0])
}

func (o *Overlay) stopCountdown() {
	o.countdown.Cancel()
	o.counting = false
	o.remaining = 0
}
