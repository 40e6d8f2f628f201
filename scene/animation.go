package scene

import "time"

// AnimationOpKind identifies an animation operation carried in a layer
// descriptor.
type AnimationOpKind uint8

const (
	// AnimationOpAdd starts (or restarts) a named animation.
	AnimationOpAdd AnimationOpKind = iota

	// AnimationOpRemove stops and removes a named animation.
	AnimationOpRemove

	// AnimationOpPause freezes a named animation at its current offset.
	AnimationOpPause
)

// animationOpKindNames maps AnimationOpKind values to their string form.
var animationOpKindNames = [...]string{
	AnimationOpAdd:    "Add",
	AnimationOpRemove: "Remove",
	AnimationOpPause:  "Pause",
}

// String returns the string representation of an AnimationOpKind.
func (k AnimationOpKind) String() string {
	if int(k) < len(animationOpKindNames) {
		return animationOpKindNames[k]
	}
	return "Unknown"
}

// AnimationOp is one entry of the ordered animation operation list shipped
// inside a LayerInfo. Operations are applied in list order during sync.
type AnimationOp struct {
	// Kind selects Add, Remove, or Pause.
	Kind AnimationOpKind

	// Name identifies the animation within its layer.
	Name string

	// StartTime is the wall-clock start of the animation (Add only).
	StartTime time.Time

	// Duration is the animation length. Zero means it runs until removed
	// (Add only).
	Duration time.Duration
}

// Animation is the mirrored state of one layer animation. The compositor
// does not evaluate keyframes; it tracks the set so painting can keep
// scheduling frames while something is in flight.
type Animation struct {
	// Name identifies the animation within its layer.
	Name string

	// StartTime is the wall-clock start of the animation.
	StartTime time.Time

	// Duration is the animation length. Zero means unbounded.
	Duration time.Duration

	// Paused is true once a Pause operation froze the animation.
	Paused bool

	// PauseOffset is how far into the animation the pause landed,
	// measured from StartTime.
	PauseOffset time.Duration
}

// Running reports whether the animation is still advancing at the given
// time. Paused animations never run; unbounded animations run until removed.
func (a Animation) Running(now time.Time) bool {
	if a.Paused {
		return false
	}
	if a.Duration <= 0 {
		return true
	}
	return now.Before(a.StartTime.Add(a.Duration))
}
