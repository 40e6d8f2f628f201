package scrolling

import "image"

// NodeID names a scrollable node across state commits.
type NodeID uint64

// StateNode describes one scrollable frame or element in a state snapshot.
// Frames nest: a subframe's rectangle lives in the same page coordinate
// space as its ancestors, already offset by their layout.
type StateNode struct {
	// ID names the node.
	ID NodeID

	// Frame is the node's viewport rectangle in page coordinates.
	Frame image.Rectangle

	// ContentsSize is the extent of the scrollable contents. A node whose
	// contents fit its frame cannot scroll.
	ContentsSize image.Point

	// ScrollPosition is the node's current scroll offset.
	ScrollPosition image.Point

	// Children are the nested scrollable nodes.
	Children []*StateNode
}

// State is the page side's complete description of scrolling-relevant
// state, committed wholesale into a Tree. The zero value commits an empty
// tree that declines every event.
type State struct {
	// Root is the main frame's node, nil for a page with no scrollable
	// content.
	Root *StateNode

	// NonFastScrollableRegion collects the page areas whose events must
	// be decided on the main thread.
	NonFastScrollableRegion Region

	// HasWheelEventHandlers reports whether the page registered wheel
	// event handlers. While true, every wheel event escalates, because a
	// handler may prevent the default scroll.
	HasWheelEventHandlers bool
}
