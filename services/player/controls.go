package player

import (
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/video-feed/models"
)

const (
	SkipSeconds     = 10
	SkipCueDuration = 500 * time.Millisecond
	AutoHideDelay   = 3 * time.Second
)

type SkipCue string

const (
	SkipCueNone     SkipCue = ""
	SkipCueForward  SkipCue = "fwd"
	SkipCueBackward SkipCue = "bwd"
)

type VolumeLevel string

const (
	VolumeMuted VolumeLevel = "muted"
	VolumeLow   VolumeLevel = "low"
	VolumeHigh  VolumeLevel = "high"
)

type CapabilityView struct {
	Supported bool `json:"supported"`
	Active    bool `json:"active"`
}

type ControlsView struct {
	Playing          bool           `json:"playing"`
	CurrentTime      float64        `json:"currentTime"`
	Duration         float64        `json:"duration"`
	Elapsed          string         `json:"elapsed"`
	Total            string         `json:"total"`
	Progress         float64        `json:"progress"`
	Volume           float64        `json:"volume"`
	VolumeLevel      VolumeLevel    `json:"volumeLevel"`
	Visible          bool           `json:"visible"`
	SkipCue          SkipCue        `json:"skipCue"`
	PictureInPicture CapabilityView `json:"pictureInPicture"`
	Fullscreen       CapabilityView `json:"fullscreen"`
}

// TrackFraction maps a pointer offset x on a horizontal track of the given
// width to [0, 1].
func TrackFraction(x, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return clamp(x/width, 0, 1)
}

// Controls keeps the transport display in step with the bound element.
// Play state is owned by the Store; everything else is read from and
// written to the element directly.
type Controls struct {
	store       *Store
	pip         Capability
	fullscreen  Capability
	el          MediaElement
	scope       Scope
	storeSub    *Subscription
	hide        *Slot
	cueSlot     *Slot
	currentTime float64
	duration    float64
	volume      float64
	prevVolume  float64
	visible     bool
	cue         SkipCue
	isPip       bool
	isFull      bool
}

// NewControls creates controls for store. pip and fullscreen may be nil
// when the platform has no such capability.
func NewControls(store *Store, pip, fullscreen Capability, c Clock, d Dispatcher) *Controls {
	ct := &Controls{
		store:      store,
		pip:        pip,
		fullscreen: fullscreen,
		hide:       NewSlot(c, d),
		cueSlot:    NewSlot(c, d),
		volume:     1,
		prevVolume: 1,
		visible:    true,
	}
	ct.storeSub = store.Observe(ct.onStateChange)
	return ct
}

func (c *Controls) Mount(el MediaElement) {
	c.Unmount()
	c.el = el
	c.scope.Add(el.On(EventTimeUpdate, func() {
		c.currentTime = el.CurrentTime()
	}))
	c.scope.Add(el.On(EventLoadedMetadata, func() {
		c.duration = el.Duration()
	}))
	c.scope.Add(el.On(EventVolumeChange, func() {
		v := el.Volume()
		if v == 0 && c.volume > 0 {
			c.prevVolume = c.volume
		}
		c.volume = v
	}))
	c.scope.Add(el.On(EventEnterPictureInPicture, func() {
		c.isPip = true
	}))
	c.scope.Add(el.On(EventLeavePictureInPicture, func() {
		c.isPip = false
	}))
	if c.fullscreen != nil {
		fs := c.fullscreen
		c.scope.Add(fs.OnChange(func() {
			c.isFull = fs.Active()
		}))
		c.isFull = fs.Active()
	}
	if d := el.Duration(); d > 0 {
		c.duration = d
	}
	c.currentTime = el.CurrentTime()
	c.volume = el.Volume()
	c.resetHideTimer()
}

func (c *Controls) Unmount() {
	c.scope.Close()
	c.hide.Cancel()
	c.cueSlot.Cancel()
	c.cue = SkipCueNone
	c.visible = true
	c.el = nil
}

func (c *Controls) Close() {
	c.Unmount()
	c.storeSub.Unsubscribe()
}

// Seek moves playback to the position under the pointer on the progress
// track.
func (c *Controls) Seek(x, width float64) {
	c.SeekFraction(TrackFraction(x, width))
}

func (c *Controls) SeekFraction(p float64) {
	if c.el == nil {
		return
	}
	d := c.el.Duration()
	if !(d > 0) {
		return
	}
	c.el.SetCurrentTime(clamp(p, 0, 1) * d)
	c.resetHideTimer()
}

// Skip moves playback by seconds, staying inside [0, duration].
func (c *Controls) Skip(seconds float64) {
	if c.el == nil {
		return
	}
	t := c.el.CurrentTime() + seconds
	if d := c.el.Duration(); d > 0 && t > d {
		t = d
	}
	if t < 0 {
		t = 0
	}
	c.el.SetCurrentTime(t)
	if seconds > 0 {
		c.cue = SkipCueForward
	} else {
		c.cue = SkipCueBackward
	}
	c.cueSlot.Schedule(SkipCueDuration, func() {
		c.cue = SkipCueNone
	})
	c.resetHideTimer()
}

func (c *Controls) SetVolumeAt(x, width float64) {
	c.SetVolume(TrackFraction(x, width))
}

func (c *Controls) SetVolume(v float64) {
	if c.el == nil {
		return
	}
	v = clamp(v, 0, 1)
	c.el.SetVolume(v)
	c.volume = v
	c.resetHideTimer()
}

// ToggleMute silences the element, remembering the volume it had, or
// brings back the remembered volume.
func (c *Controls) ToggleMute() {
	if c.el == nil {
		return
	}
	if c.volume > 0 {
		c.prevVolume = c.volume
		c.el.SetVolume(0)
		c.volume = 0
	} else {
		v := c.prevVolume
		if v <= 0 {
			v = 1
		}
		c.el.SetVolume(v)
		c.volume = v
	}
	c.resetHideTimer()
}

func (c *Controls) TogglePlay() {
	c.store.TogglePlay()
	c.resetHideTimer()
}

// Interact registers pointer activity over the player.
func (c *Controls) Interact() {
	c.resetHideTimer()
}

// TogglePictureInPicture asks the platform to enter or leave
// picture-in-picture. The displayed state follows the element's own
// notifications, so a refusal changes nothing.
func (c *Controls) TogglePictureInPicture() {
	if c.el == nil {
		return
	}
	toggleCapability(c.pip, "picture-in-picture")
	c.resetHideTimer()
}

func (c *Controls) ToggleFullscreen() {
	if c.el == nil {
		return
	}
	toggleCapability(c.fullscreen, "fullscreen")
	c.resetHideTimer()
}

func (c *Controls) View() ControlsView {
	v := ControlsView{
		Playing:     c.store.State().IsPlaying,
		CurrentTime: c.currentTime,
		Duration:    c.duration,
		Elapsed:     models.FormatDuration(int(c.currentTime)),
		Total:       models.FormatDuration(int(c.duration)),
		Volume:      c.volume,
		VolumeLevel: volumeLevel(c.volume),
		Visible:     c.visible,
		SkipCue:     c.cue,
	}
	if c.duration > 0 {
		v.Progress = clamp(c.currentTime/c.duration, 0, 1) * 100
	}
	if c.pip != nil && c.pip.Supported() {
		v.PictureInPicture = CapabilityView{Supported: true, Active: c.isPip}
	}
	if c.fullscreen != nil && c.fullscreen.Supported() {
		v.Fullscreen = CapabilityView{Supported: true, Active: c.isFull}
	}
	return v
}

func (c *Controls) onStateChange(prev, next State) {
	if next.CurrentVideo != prev.CurrentVideo {
		c.currentTime = 0
		c.duration = 0
		if c.el != nil {
			if d := c.el.Duration(); d > 0 {
				c.duration = d
			}
		}
	}
	if prev.IsPlaying != next.IsPlaying {
		c.resetHideTimer()
	}
}

// resetHideTimer shows the controls and, while playing, hides them again
// after AutoHideDelay without interaction.
func (c *Controls) resetHideTimer() {
	c.visible = true
	c.hide.Cancel()
	if !c.store.State().IsPlaying {
		return
	}
	c.hide.Schedule(AutoHideDelay, func() {
		c.visible = false
	})
}

func toggleCapability(cp Capability, name string) {
	if cp == nil || !cp.Supported() {
		return
	}
	var err error
	if cp.Active() {
		err = cp.Exit()
	} else {
		err = cp.Request()
	}
	if err != nil {
		log.WithError(err).WithField("capability", name).Debug("platform request refused")
	}
}

func volumeLevel(v float64) VolumeLevel {
	switch {
	case v == 0:
		return VolumeMuted
	case v < 0.5:
		return VolumeLow
	default:
		return VolumeHigh
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
