package player

import (
	"sync"
)

type Event string

const (
	EventTimeUpdate            Event = "timeupdate"
	EventLoadedMetadata        Event = "loadedmetadata"
	EventEnded                 Event = "ended"
	EventPlay                  Event = "play"
	EventPause                 Event = "pause"
	EventVolumeChange          Event = "volumechange"
	EventEnterPictureInPicture Event = "enterpictureinpicture"
	EventLeavePictureInPicture Event = "leavepictureinpicture"
	EventChange                Event = "change"
)

type Listener func()

// MediaElement is the playback primitive the player drives. Play may be
// refused by the platform; a refusal shows up either as the returned error
// or as a later EventPause.
type MediaElement interface {
	Src() string
	SetSrc(url string)
	Play() error
	Pause()
	Paused() bool
	CurrentTime() float64
	SetCurrentTime(t float64)
	Duration() float64
	Volume() float64
	SetVolume(v float64)
	On(e Event, l Listener) *Subscription
}

// Capability is an optional platform feature such as fullscreen or
// picture-in-picture. Active reports the platform's view, which may change
// without a Request or Exit from our side.
type Capability interface {
	Supported() bool
	Active() bool
	Request() error
	Exit() error
	OnChange(l Listener) *Subscription
}

type Subscription struct {
	once   sync.Once
	cancel func()
}

func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Scope owns a set of subscriptions and releases them together.
type Scope struct {
	subs []*Subscription
}

func (s *Scope) Add(sub *Subscription) {
	if sub == nil {
		return
	}
	s.subs = append(s.subs, sub)
}

func (s *Scope) Close() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
}

func (s *Scope) Len() int {
	return len(s.subs)
}

type entry struct {
	id int
	l  Listener
}

// Emitter is a listener registry keyed by event. Listeners run in
// registration order on the goroutine calling Emit.
type Emitter[E comparable] struct {
	mu        sync.Mutex
	next      int
	listeners map[E][]entry
}

func (s *Emitter[E]) On(e E, l Listener) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners == nil {
		s.listeners = map[E][]entry{}
	}
	s.next++
	id := s.next
	s.listeners[e] = append(s.listeners[e], entry{id: id, l: l})
	return NewSubscription(func() {
		s.off(e, id)
	})
}

func (s *Emitter[E]) off(e E, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls := s.listeners[e]
	for i, en := range ls {
		if en.id == id {
			s.listeners[e] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

func (s *Emitter[E]) Emit(e E) {
	s.mu.Lock()
	ls := make([]entry, len(s.listeners[e]))
	copy(ls, s.listeners[e])
	s.mu.Unlock()
	for _, en := range ls {
		en.l()
	}
}

func (s *Emitter[E]) Count(e E) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners[e])
}
