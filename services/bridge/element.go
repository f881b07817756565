package bridge

import (
	"github.com/pkg/errors"
	"github.com/webtor-io/video-feed/services/player"
)

var (
	ErrUnsupported = errors.New("capability is not supported")
	ErrDetached    = errors.New("no browser attached")
)

// Sink receives commands addressed to the browser's video element.
type Sink interface {
	SendCommand(cmd Command)
}

// Element mirrors the state of a <video> element living in the browser.
// Writes are forwarded to the attached Sink as commands and applied to the
// mirror right away; browser events correct the mirror afterwards. Methods
// must be called from the owning session's loop.
type Element struct {
	events      player.Emitter[player.Event]
	sink        Sink
	src         string
	paused      bool
	currentTime float64
	duration    float64
	volume      float64
	pip         *Capability
	fullscreen  *Capability
}

func NewElement() *Element {
	e := &Element{
		paused: true,
		volume: 1,
	}
	e.pip = &Capability{el: e, op: OpPictureInPicture}
	e.fullscreen = &Capability{el: e, op: OpFullscreen}
	return e
}

func (e *Element) PictureInPicture() *Capability {
	return e.pip
}

func (e *Element) Fullscreen() *Capability {
	return e.fullscreen
}

// Attach routes commands to s and replays the mirrored state so a freshly
// loaded page resumes where the previous one left off.
func (e *Element) Attach(s Sink) {
	e.sink = s
	if e.src == "" {
		return
	}
	e.send(Command{Op: OpSrc, URL: e.src})
	if e.currentTime > 0 {
		e.send(Command{Op: OpSeek, Value: e.currentTime})
	}
	e.send(Command{Op: OpVolume, Value: e.volume})
	if !e.paused {
		e.send(Command{Op: OpPlay})
	}
}

// Detach drops s if it is the attached sink. Platform modes do not survive
// the page going away.
func (e *Element) Detach(s Sink) {
	if e.sink != s {
		return
	}
	e.sink = nil
	e.pip.setActive(false)
	e.fullscreen.setActive(false)
}

func (e *Element) Attached() bool {
	return e.sink != nil
}

func (e *Element) send(cmd Command) {
	if e.sink == nil {
		return
	}
	e.sink.SendCommand(cmd)
}

func (e *Element) Src() string {
	return e.src
}

func (e *Element) SetSrc(url string) {
	e.src = url
	e.paused = true
	e.currentTime = 0
	e.duration = 0
	e.send(Command{Op: OpSrc, URL: url})
}

// Play asks the browser to start playback. Autoplay refusal arrives later
// as a play-rejected event, so Play itself never fails.
func (e *Element) Play() error {
	e.paused = false
	e.send(Command{Op: OpPlay})
	return nil
}

func (e *Element) Pause() {
	e.paused = true
	e.send(Command{Op: OpPause})
}

func (e *Element) Paused() bool {
	return e.paused
}

func (e *Element) CurrentTime() float64 {
	return e.currentTime
}

func (e *Element) SetCurrentTime(t float64) {
	e.currentTime = t
	e.send(Command{Op: OpSeek, Value: t})
}

func (e *Element) Duration() float64 {
	return e.duration
}

func (e *Element) Volume() float64 {
	return e.volume
}

func (e *Element) SetVolume(v float64) {
	e.volume = v
	e.send(Command{Op: OpVolume, Value: v})
}

func (e *Element) On(ev player.Event, l player.Listener) *player.Subscription {
	return e.events.On(ev, l)
}

// Apply folds a browser event into the mirror and notifies listeners.
func (e *Element) Apply(ev Event) error {
	switch ev.Type {
	case EventTimeUpdate:
		e.currentTime = ev.Time
		e.events.Emit(player.EventTimeUpdate)
	case EventLoadedMetadata:
		e.duration = ev.Duration
		e.events.Emit(player.EventLoadedMetadata)
	case EventEnded:
		e.paused = true
		if e.duration > 0 {
			e.currentTime = e.duration
		}
		e.events.Emit(player.EventEnded)
	case EventPlay:
		e.paused = false
		e.events.Emit(player.EventPlay)
	case EventPause, EventPlayRejected:
		e.paused = true
		e.events.Emit(player.EventPause)
	case EventVolumeChange:
		e.volume = ev.Volume
		e.events.Emit(player.EventVolumeChange)
	case EventEnterPictureInPicture:
		e.pip.setActive(true)
		e.events.Emit(player.EventEnterPictureInPicture)
	case EventLeavePictureInPicture:
		e.pip.setActive(false)
		e.events.Emit(player.EventLeavePictureInPicture)
	case EventFullscreenChange:
		e.fullscreen.setActive(ev.Active)
	case EventCapabilities:
		e.pip.supported = ev.PictureInPicture
		e.fullscreen.supported = ev.Fullscreen
	default:
		return errors.Errorf("unknown media event %q", ev.Type)
	}
	return nil
}

// Capability is a browser platform mode (picture-in-picture or fullscreen)
// reached through the element's sink. Support is reported by the page on
// connect.
type Capability struct {
	events    player.Emitter[player.Event]
	el        *Element
	op        Op
	supported bool
	active    bool
}

func (c *Capability) Supported() bool {
	return c.supported
}

func (c *Capability) Active() bool {
	return c.active
}

func (c *Capability) Request() error {
	return c.toggle(true)
}

func (c *Capability) Exit() error {
	return c.toggle(false)
}

func (c *Capability) toggle(on bool) error {
	if !c.supported {
		return ErrUnsupported
	}
	if c.el.sink == nil {
		return ErrDetached
	}
	c.el.send(Command{Op: c.op, On: on})
	return nil
}

func (c *Capability) OnChange(l player.Listener) *player.Subscription {
	return c.events.On(player.EventChange, l)
}

func (c *Capability) setActive(active bool) {
	if c.active == active {
		return
	}
	c.active = active
	c.events.Emit(player.EventChange)
}
