package scrolling

import "image"

// WheelPhase is the position of a wheel event within a gesture.
type WheelPhase uint8

const (
	// WheelPhaseNone marks discrete wheel ticks outside any gesture.
	WheelPhaseNone WheelPhase = iota

	// WheelPhaseBegan marks the first event of a trackpad gesture. Swipe
	// detection only looks at these.
	WheelPhaseBegan

	// WheelPhaseChanged marks continuation events of a gesture.
	WheelPhaseChanged

	// WheelPhaseEnded marks the last event of a gesture.
	WheelPhaseEnded
)

// wheelPhaseNames maps WheelPhase values to their string form.
var wheelPhaseNames = [...]string{
	WheelPhaseNone:    "None",
	WheelPhaseBegan:   "Began",
	WheelPhaseChanged: "Changed",
	WheelPhaseEnded:   "Ended",
}

// String returns the string representation of a WheelPhase.
func (p WheelPhase) String() string {
	if int(p) < len(wheelPhaseNames) {
		return wheelPhaseNames[p]
	}
	return "Unknown"
}

// WheelEvent is one wheel tick or gesture step in view coordinates.
//
// Positive deltas scroll content toward its origin, matching platform
// wheel conventions: wheel-up carries a positive DeltaY and moves the
// viewport up.
type WheelEvent struct {
	// Position is the event location in view coordinates. The tree maps
	// it into page coordinates using the main-frame scroll position.
	Position image.Point

	// DeltaX is the horizontal scroll amount.
	DeltaX float64

	// DeltaY is the vertical scroll amount.
	DeltaY float64

	// Phase is the gesture phase, WheelPhaseNone for plain wheel ticks.
	Phase WheelPhase
}
