package playertest

import (
	"github.com/webtor-io/video-feed/services/player"
)

// Element is an in-memory media element. Notifications are only fired by
// the Fire* helpers, the way a real element reports asynchronously.
type Element struct {
	events      player.Emitter[player.Event]
	src         string
	paused      bool
	currentTime float64
	duration    float64
	volume      float64

	PlayErr   error
	PlayCalls int
	Log       []string
}

func NewElement() *Element {
	return &Element{paused: true, volume: 1}
}

func (e *Element) Src() string {
	return e.src
}

func (e *Element) SetSrc(url string) {
	e.Log = append(e.Log, "src")
	e.src = url
	e.currentTime = 0
	e.paused = true
}

func (e *Element) Play() error {
	e.Log = append(e.Log, "play")
	e.PlayCalls++
	if e.PlayErr != nil {
		return e.PlayErr
	}
	e.paused = false
	return nil
}

func (e *Element) Pause() {
	e.Log = append(e.Log, "pause")
	e.paused = true
}

func (e *Element) Paused() bool {
	return e.paused
}

func (e *Element) CurrentTime() float64 {
	return e.currentTime
}

func (e *Element) SetCurrentTime(t float64) {
	e.currentTime = t
}

func (e *Element) Duration() float64 {
	return e.duration
}

func (e *Element) Volume() float64 {
	return e.volume
}

func (e *Element) SetVolume(v float64) {
	e.volume = v
}

func (e *Element) On(ev player.Event, l player.Listener) *player.Subscription {
	return e.events.On(ev, l)
}

func (e *Element) Listeners(ev player.Event) int {
	return e.events.Count(ev)
}

func (e *Element) FireMetadata(duration float64) {
	e.duration = duration
	e.events.Emit(player.EventLoadedMetadata)
}

func (e *Element) FireTime(t float64) {
	e.currentTime = t
	e.events.Emit(player.EventTimeUpdate)
}

// FireVolume plays a volume change made outside the controls, such as
// from the system media keys.
func (e *Element) FireVolume(v float64) {
	e.volume = v
	e.events.Emit(player.EventVolumeChange)
}

func (e *Element) FireEnded() {
	e.paused = true
	e.currentTime = e.duration
	e.events.Emit(player.EventEnded)
}

func (e *Element) FirePlay() {
	e.paused = false
	e.events.Emit(player.EventPlay)
}

func (e *Element) FirePause() {
	e.paused = true
	e.events.Emit(player.EventPause)
}

func (e *Element) Fire(ev player.Event) {
	e.events.Emit(ev)
}

// Capability is a fake platform capability. Request and Exit only record
// the call; SetActive plays the platform's change notification.
type Capability struct {
	events    player.Emitter[player.Event]
	supported bool
	active    bool
	Err       error
	Requests  int
	Exits     int
}

func NewCapability(supported bool) *Capability {
	return &Capability{supported: supported}
}

func (c *Capability) Supported() bool {
	return c.supported
}

func (c *Capability) Active() bool {
	return c.active
}

func (c *Capability) Request() error {
	c.Requests++
	return c.Err
}

func (c *Capability) Exit() error {
	c.Exits++
	return c.Err
}

func (c *Capability) OnChange(l player.Listener) *player.Subscription {
	return c.events.On(player.EventChange, l)
}

func (c *Capability) SetActive(active bool) {
	c.active = active
	c.events.Emit(player.EventChange)
}
