package bridge

import (
	"github.com/webtor-io/video-feed/services/player"
)

type Op string

const (
	OpSrc              Op = "src"
	OpPlay             Op = "play"
	OpPause            Op = "pause"
	OpSeek             Op = "seek"
	OpVolume           Op = "volume"
	OpPictureInPicture Op = "pip"
	OpFullscreen       Op = "fullscreen"
)

// Command is an instruction for the browser's video element.
type Command struct {
	Op    Op      `json:"op"`
	URL   string  `json:"url,omitempty"`
	Value float64 `json:"value"`
	On    bool    `json:"on,omitempty"`
}

type EventType string

const (
	EventTimeUpdate            EventType = "timeupdate"
	EventLoadedMetadata        EventType = "loadedmetadata"
	EventEnded                 EventType = "ended"
	EventPlay                  EventType = "play"
	EventPause                 EventType = "pause"
	EventPlayRejected          EventType = "play-rejected"
	EventVolumeChange          EventType = "volumechange"
	EventEnterPictureInPicture EventType = "enterpictureinpicture"
	EventLeavePictureInPicture EventType = "leavepictureinpicture"
	EventFullscreenChange      EventType = "fullscreenchange"
	EventCapabilities          EventType = "capabilities"
)

// Event is a notification from the browser's video element or document.
type Event struct {
	Type             EventType `json:"type"`
	Time             float64   `json:"time,omitempty"`
	Duration         float64   `json:"duration,omitempty"`
	Volume           float64   `json:"volume,omitempty"`
	Active           bool      `json:"active,omitempty"`
	PictureInPicture bool      `json:"pictureInPicture,omitempty"`
	Fullscreen       bool      `json:"fullscreen,omitempty"`
}

// Action is a user interaction with the player UI.
type Action struct {
	Name  string  `json:"name"`
	ID    string  `json:"id,omitempty"`
	Value float64 `json:"value,omitempty"`
	X     float64 `json:"x,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type Kind string

const (
	KindEvent   Kind = "event"
	KindAction  Kind = "action"
	KindDrag    Kind = "drag"
	KindCommand Kind = "command"
	KindState   Kind = "state"
)

// Incoming is a message read from the page.
type Incoming struct {
	Kind   Kind              `json:"kind"`
	Event  *Event            `json:"event,omitempty"`
	Action *Action           `json:"action,omitempty"`
	Drag   *player.DragEvent `json:"drag,omitempty"`
}

// Outgoing is a message written to the page.
type Outgoing struct {
	Kind    Kind     `json:"kind"`
	Command *Command `json:"command,omitempty"`
	State   any      `json:"state,omitempty"`
}
