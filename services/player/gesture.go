package player

// MinimizeDragThreshold is how far, in logical pixels, the video surface
// has to be dragged down before release minimizes the player.
const MinimizeDragThreshold = 100.0

// DragEvent is one update from the drag recognizer on the video surface.
// The last event of a gesture has Released set and carries the final offset.
type DragEvent struct {
	OffsetY  float64 `json:"offsetY"`
	Released bool    `json:"released"`
}

type DragOutcome int

const (
	DragSnapBack DragOutcome = iota
	DragMinimize
)

func (o DragOutcome) String() string {
	switch o {
	case DragMinimize:
		return "minimize"
	default:
		return "snap-back"
	}
}

// ResolveDrag decides what a released drag does.
func ResolveDrag(offsetY float64) DragOutcome {
	if offsetY > MinimizeDragThreshold {
		return DragMinimize
	}
	return DragSnapBack
}
