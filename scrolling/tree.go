package scrolling

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/compositor"
)

// EventResult is the routing decision for one wheel event.
type EventResult uint8

const (
	// DidNotHandleEvent means the tree declined; the caller redispatches
	// the event through the normal main-thread path.
	DidNotHandleEvent EventResult = iota

	// DidHandleEvent means a scrollable node consumed the event.
	DidHandleEvent

	// SendToMainThread means the event must be decided on the main
	// thread: a wheel handler or a slow-scrolling region claims it.
	SendToMainThread
)

// eventResultNames maps EventResult values to their string form.
var eventResultNames = [...]string{
	DidNotHandleEvent: "DidNotHandleEvent",
	DidHandleEvent:    "DidHandleEvent",
	SendToMainThread:  "SendToMainThread",
}

// String returns the string representation of an EventResult.
func (r EventResult) String() string {
	if int(r) < len(eventResultNames) {
		return eventResultNames[r]
	}
	return "Unknown"
}

// Coordinator receives main-frame scroll notifications so the main thread
// can update layout, scrollbars, and the content process.
type Coordinator interface {
	// DidScroll is called after the main frame scrolled on the event
	// thread. No tree lock is held during the call.
	DidScroll(position image.Point)
}

// Tree answers wheel-event routing queries from any goroutine.
//
// Two mutexes partition the state. treeMu guards everything a wheel tick
// touches: the node tree, the non-fast-scrollable region, the main-frame
// scroll position, and the handler flag. swipeMu guards the rarely
// written back/forward and pin state, so navigation pushes never wait
// behind a busy scroll mutation and vice versa. The mutexes are never
// held together.
type Tree struct {
	commits atomic.Uint64

	treeMu                  sync.Mutex
	coordinator             Coordinator
	root                    *Node
	nonFastScrollableRegion Region
	mainFrameScrollPosition image.Point
	hasWheelEventHandlers   bool

	swipeMu       sync.Mutex
	canGoBack     bool
	canGoForward  bool
	pinnedToLeft  bool
	pinnedToRight bool
}

// New creates an empty tree. A nil coordinator is allowed; main-frame
// scrolls then go unreported.
func New(coordinator Coordinator) *Tree {
	return &Tree{coordinator: coordinator}
}

// TryHandleWheelEvent routes one wheel event. Safe to call from any
// goroutine.
//
// Routing order: pages with wheel handlers escalate everything; events
// inside the non-fast-scrollable region escalate; events that would start
// a swipe-navigation gesture are declined so the caller runs the gesture;
// otherwise the deepest scrollable node under the point scrolls and the
// event is consumed. With no such node the event is declined.
func (t *Tree) TryHandleWheelEvent(ev WheelEvent) EventResult {
	t.treeMu.Lock()
	if t.hasWheelEventHandlers {
		t.treeMu.Unlock()
		return SendToMainThread
	}
	if !t.nonFastScrollableRegion.IsEmpty() {
		// The region is in page coordinates; the event is not.
		pagePoint := ev.Position.Add(t.mainFrameScrollPosition)
		if t.nonFastScrollableRegion.Contains(pagePoint) {
			t.treeMu.Unlock()
			return SendToMainThread
		}
	}
	t.treeMu.Unlock()

	if t.WillWheelEventStartSwipeGesture(ev) {
		return DidNotHandleEvent
	}
	return t.applyWheelEvent(ev)
}

// HandleWheelEvent scrolls for one wheel event, skipping the routing
// checks. The event-delivery layer calls this for events it already
// decided belong here.
func (t *Tree) HandleWheelEvent(ev WheelEvent) {
	t.applyWheelEvent(ev)
}

// applyWheelEvent resolves the target node and applies the delta. The
// main frame additionally refreshes pin state and notifies the
// coordinator, both after the tree lock is released.
func (t *Tree) applyWheelEvent(ev WheelEvent) EventResult {
	t.treeMu.Lock()
	if t.root == nil {
		t.treeMu.Unlock()
		return DidNotHandleEvent
	}
	pagePoint := ev.Position.Add(t.mainFrameScrollPosition)
	node := t.root.scrollableNodeAt(pagePoint)
	if node == nil {
		t.treeMu.Unlock()
		return DidNotHandleEvent
	}
	changed := node.scrollBy(ev.DeltaX, ev.DeltaY)

	// An extremity-clamped event is still consumed; it just moves nothing
	// and notifies nobody.
	if node != t.root || !changed {
		t.treeMu.Unlock()
		return DidHandleEvent
	}
	pos := node.scrollPosition
	maxX := node.MaxScrollPosition().X
	coordinator := t.coordinator
	t.mainFrameScrollPosition = pos
	t.treeMu.Unlock()

	t.SetMainFramePinState(pos.X <= 0, pos.X >= maxX)
	if coordinator != nil {
		coordinator.DidScroll(pos)
	}
	return DidHandleEvent
}

// WillWheelEventStartSwipeGesture reports whether the event should start
// a horizontal swipe-navigation gesture instead of scrolling: the gesture
// begins, moves horizontally, and pushes past a pinned edge in a
// direction history can follow.
func (t *Tree) WillWheelEventStartSwipeGesture(ev WheelEvent) bool {
	if ev.Phase != WheelPhaseBegan {
		return false
	}
	if ev.DeltaX == 0 {
		return false
	}

	t.swipeMu.Lock()
	defer t.swipeMu.Unlock()
	if ev.DeltaX > 0 {
		return t.pinnedToLeft && t.canGoBack
	}
	return t.pinnedToRight && t.canGoForward
}

// CommitNewState replaces the whole scrolling state. The replacement node
// tree is built before any lock is taken; in-flight events keep reading
// the old tree until the swap. Safe to call from any goroutine.
//
// A nil state or a state without a root commits an empty tree.
func (t *Tree) CommitNewState(s *State) {
	seq := t.commits.Add(1)

	var (
		root     *Node
		region   Region
		handlers bool
		nodes    int
	)
	if s != nil {
		root = buildNode(s.Root, seq)
		region = s.NonFastScrollableRegion.Clone()
		handlers = s.HasWheelEventHandlers
	}
	if root != nil {
		root.each(func(*Node) { nodes++ })
	}

	t.treeMu.Lock()
	t.root = root
	t.nonFastScrollableRegion = region
	t.hasWheelEventHandlers = handlers
	if root != nil {
		t.mainFrameScrollPosition = root.scrollPosition
	}
	t.treeMu.Unlock()

	compositor.Logger().Debug("scrolling state committed",
		"seq", seq,
		"nodes", nodes,
		"handlers", handlers)
}

// UpdateBackForwardState records session-history navigability. Called
// from any goroutine whenever the main thread's history changes.
func (t *Tree) UpdateBackForwardState(canGoBack, canGoForward bool) {
	t.swipeMu.Lock()
	t.canGoBack = canGoBack
	t.canGoForward = canGoForward
	t.swipeMu.Unlock()
}

// CanGoBack reports the last committed backward navigability.
func (t *Tree) CanGoBack() bool {
	t.swipeMu.Lock()
	defer t.swipeMu.Unlock()
	return t.canGoBack
}

// CanGoForward reports the last committed forward navigability.
func (t *Tree) CanGoForward() bool {
	t.swipeMu.Lock()
	defer t.swipeMu.Unlock()
	return t.canGoForward
}

// SetMainFramePinState records whether the main frame sits at its left or
// right scroll extremity. Scrolls through the tree maintain this on their
// own; hosts driving scrolls elsewhere push it here.
func (t *Tree) SetMainFramePinState(pinnedToLeft, pinnedToRight bool) {
	t.swipeMu.Lock()
	t.pinnedToLeft = pinnedToLeft
	t.pinnedToRight = pinnedToRight
	t.swipeMu.Unlock()
}

// SetMainFrameScrollPosition records a scroll that happened on the main
// thread, keeping the view-to-page mapping of later events accurate.
func (t *Tree) SetMainFrameScrollPosition(p image.Point) {
	t.treeMu.Lock()
	t.mainFrameScrollPosition = p
	t.treeMu.Unlock()
}

// MainFrameScrollPosition returns the main frame's scroll position as
// this tree last saw it.
func (t *Tree) MainFrameScrollPosition() image.Point {
	t.treeMu.Lock()
	defer t.treeMu.Unlock()
	return t.mainFrameScrollPosition
}

// Invalidate drops the node tree and detaches the coordinator. Events
// arriving afterwards are declined. Called during teardown, when the
// page's scrolling state is gone.
func (t *Tree) Invalidate() {
	t.treeMu.Lock()
	t.root = nil
	t.coordinator = nil
	t.nonFastScrollableRegion = Region{}
	t.hasWheelEventHandlers = false
	t.treeMu.Unlock()
	compositor.Logger().Debug("scrolling tree invalidated")
}

// CommitCount returns the number of state commits so far.
func (t *Tree) CommitCount() uint64 {
	return t.commits.Load()
}
