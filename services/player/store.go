package player

import (
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/video-feed/models"
)

// State is the player state shared by every part of the UI.
// CurrentVideo is set exactly while IsPlayerOpen is true.
type State struct {
	CurrentVideo *models.Video `json:"currentVideo"`
	IsPlayerOpen bool          `json:"isPlayerOpen"`
	IsMinimized  bool          `json:"isMinimized"`
	IsPlaying    bool          `json:"isPlaying"`
}

type Observer func(prev, next State)

type change struct {
	prev, next State
}

type observerEntry struct {
	id int
	f  Observer
}

// Store is the single source of truth for which video is shown and how.
// It also holds the one bound media element. Not safe for concurrent use;
// callers go through the session Dispatcher.
type Store struct {
	state     State
	el        MediaElement
	observers []observerEntry
	next      int
	pending   []change
	notifying bool
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) State() State {
	return s.state
}

// Bind makes el the element all actions operate on, replacing any
// previously bound element.
func (s *Store) Bind(el MediaElement) {
	s.el = el
}

func (s *Store) Element() MediaElement {
	return s.el
}

func (s *Store) Observe(f Observer) *Subscription {
	s.next++
	id := s.next
	s.observers = append(s.observers, observerEntry{id: id, f: f})
	return NewSubscription(func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	})
}

func (s *Store) OpenVideo(v models.Video) {
	s.set(State{
		CurrentVideo: &v,
		IsPlayerOpen: true,
		IsMinimized:  false,
		IsPlaying:    true,
	})
}

func (s *Store) ClosePlayer() {
	if s.el != nil {
		s.el.Pause()
	}
	s.set(State{})
}

func (s *Store) MinimizePlayer() {
	if !s.state.IsPlayerOpen {
		return
	}
	st := s.state
	st.IsMinimized = true
	s.set(st)
}

func (s *Store) RestorePlayer() {
	if !s.state.IsPlayerOpen {
		return
	}
	st := s.state
	st.IsMinimized = false
	s.set(st)
}

func (s *Store) TogglePlay() {
	if s.el == nil || !s.state.IsPlayerOpen {
		return
	}
	st := s.state
	if s.el.Paused() {
		if err := s.el.Play(); err != nil {
			log.WithError(err).Debug("play request refused")
		}
		st.IsPlaying = true
	} else {
		s.el.Pause()
		st.IsPlaying = false
	}
	s.set(st)
}

// SetIsPlaying reconciles IsPlaying with what the element reports. A
// closed player never becomes playing.
func (s *Store) SetIsPlaying(playing bool) {
	if playing && !s.state.IsPlayerOpen {
		return
	}
	st := s.state
	st.IsPlaying = playing
	s.set(st)
}

// set applies next and notifies observers. Changes made by observers are
// queued and delivered in order after the current round.
func (s *Store) set(next State) {
	prev := s.state
	if prev == next {
		return
	}
	s.state = next
	s.pending = append(s.pending, change{prev: prev, next: next})
	if s.notifying {
		return
	}
	s.notifying = true
	defer func() {
		s.notifying = false
	}()
	for len(s.pending) > 0 {
		c := s.pending[0]
		s.pending = s.pending[1:]
		obs := make([]observerEntry, len(s.observers))
		copy(obs, s.observers)
		for _, o := range obs {
			o.f(c.prev, c.next)
		}
	}
}
