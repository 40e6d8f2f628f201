package scrolling

import (
	"image"
	"math"
)

// Node is one scrollable frame in the live tree. Nodes are built from a
// StateNode snapshot at commit time and mutated only under the owning
// Tree's lock; they never migrate between commits.
type Node struct {
	id             NodeID
	frame          image.Rectangle
	contentsSize   image.Point
	scrollPosition image.Point
	children       []*Node
	commitSeq      uint64
}

// buildNode converts a snapshot subtree into live nodes, stamping every
// node with the commit sequence it arrived in.
func buildNode(s *StateNode, seq uint64) *Node {
	if s == nil {
		return nil
	}
	n := &Node{
		id:             s.ID,
		frame:          s.Frame,
		contentsSize:   s.ContentsSize,
		scrollPosition: clampPoint(s.ScrollPosition, maxScroll(s.Frame, s.ContentsSize)),
		commitSeq:      seq,
	}
	if len(s.Children) > 0 {
		n.children = make([]*Node, 0, len(s.Children))
		for _, c := range s.Children {
			if child := buildNode(c, seq); child != nil {
				n.children = append(n.children, child)
			}
		}
	}
	return n
}

// ID returns the node's identifier.
func (n *Node) ID() NodeID {
	return n.id
}

// Frame returns the node's viewport rectangle in page coordinates.
func (n *Node) Frame() image.Rectangle {
	return n.frame
}

// ScrollPosition returns the node's current scroll offset.
func (n *Node) ScrollPosition() image.Point {
	return n.scrollPosition
}

// CommitSeq returns the sequence number of the commit that built the node.
// Every node of one live tree carries the same value.
func (n *Node) CommitSeq() uint64 {
	return n.commitSeq
}

// Children returns the node's children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// MaxScrollPosition returns the largest valid scroll offset.
func (n *Node) MaxScrollPosition() image.Point {
	return maxScroll(n.frame, n.contentsSize)
}

// IsScrollable reports whether the contents exceed the frame on any axis.
func (n *Node) IsScrollable() bool {
	max := n.MaxScrollPosition()
	return max.X > 0 || max.Y > 0
}

// scrollableNodeAt returns the deepest scrollable node whose frame contains
// the page point, nil when nothing under the point can scroll. A hit in a
// non-scrollable descendant bubbles to the nearest scrollable ancestor.
func (n *Node) scrollableNodeAt(p image.Point) *Node {
	if !p.In(n.frame) {
		return nil
	}
	for _, c := range n.children {
		if found := c.scrollableNodeAt(p); found != nil {
			return found
		}
	}
	if n.IsScrollable() {
		return n
	}
	return nil
}

// scrollBy applies a wheel delta to the node, clamped to the valid range.
// Positive deltas move toward the origin. Returns true when the position
// changed.
func (n *Node) scrollBy(dx, dy float64) bool {
	target := image.Point{
		X: n.scrollPosition.X - int(math.Round(dx)),
		Y: n.scrollPosition.Y - int(math.Round(dy)),
	}
	target = clampPoint(target, n.MaxScrollPosition())
	if target == n.scrollPosition {
		return false
	}
	n.scrollPosition = target
	return true
}

// each visits the subtree in pre-order.
func (n *Node) each(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.each(fn)
	}
}

func maxScroll(frame image.Rectangle, contents image.Point) image.Point {
	max := image.Point{
		X: contents.X - frame.Dx(),
		Y: contents.Y - frame.Dy(),
	}
	if max.X < 0 {
		max.X = 0
	}
	if max.Y < 0 {
		max.Y = 0
	}
	return max
}

func clampPoint(p, max image.Point) image.Point {
	if p.X < 0 {
		p.X = 0
	} else if p.X > max.X {
		p.X = max.X
	}
	if p.Y < 0 {
		p.Y = 0
	} else if p.Y > max.Y {
		p.Y = max.Y
	}
	return p
}
