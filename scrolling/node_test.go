package scrolling

import (
	"image"
	"testing"
)

func TestBuildNodeClampsScrollPosition(t *testing.T) {
	n := buildNode(&StateNode{
		ID:             1,
		Frame:          image.Rect(0, 0, 100, 100),
		ContentsSize:   image.Point{X: 150, Y: 300},
		ScrollPosition: image.Point{X: 999, Y: -5},
	}, 1)

	want := image.Point{X: 50, Y: 0}
	if got := n.ScrollPosition(); got != want {
		t.Errorf("ScrollPosition() = %v, want %v", got, want)
	}
}

func TestBuildNodeStampsCommitSeq(t *testing.T) {
	n := buildNode(&StateNode{
		ID:    1,
		Frame: image.Rect(0, 0, 10, 10),
		Children: []*StateNode{
			{ID: 2, Frame: image.Rect(0, 0, 5, 5)},
			nil, // dropped
		},
	}, 7)

	if got := n.CommitSeq(); got != 7 {
		t.Errorf("CommitSeq() = %d, want 7", got)
	}
	kids := n.Children()
	if len(kids) != 1 {
		t.Fatalf("len(Children()) = %d, want 1", len(kids))
	}
	if got := kids[0].CommitSeq(); got != 7 {
		t.Errorf("child CommitSeq() = %d, want 7", got)
	}
}

func TestMaxScrollPosition(t *testing.T) {
	tests := []struct {
		name     string
		frame    image.Rectangle
		contents image.Point
		want     image.Point
	}{
		{"contents fit", image.Rect(0, 0, 100, 100), image.Point{X: 100, Y: 100}, image.Point{}},
		{"contents smaller", image.Rect(0, 0, 100, 100), image.Point{X: 50, Y: 50}, image.Point{}},
		{"vertical overflow", image.Rect(0, 0, 100, 100), image.Point{X: 100, Y: 400}, image.Point{Y: 300}},
		{"both overflow", image.Rect(10, 10, 110, 110), image.Point{X: 150, Y: 250}, image.Point{X: 50, Y: 150}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := buildNode(&StateNode{Frame: tt.frame, ContentsSize: tt.contents}, 1)
			if got := n.MaxScrollPosition(); got != tt.want {
				t.Errorf("MaxScrollPosition() = %v, want %v", got, tt.want)
			}
			if got, want := n.IsScrollable(), tt.want != (image.Point{}); got != want {
				t.Errorf("IsScrollable() = %v, want %v", got, want)
			}
		})
	}
}

func TestScrollableNodeAt(t *testing.T) {
	// Root scrolls; its first child cannot, but the grandchild inside it
	// can. The second child scrolls on its own.
	root := buildNode(&StateNode{
		ID:           1,
		Frame:        image.Rect(0, 0, 800, 600),
		ContentsSize: image.Point{X: 800, Y: 2000},
		Children: []*StateNode{
			{
				ID:           2,
				Frame:        image.Rect(0, 0, 400, 300),
				ContentsSize: image.Point{X: 400, Y: 300},
				Children: []*StateNode{
					{ID: 3, Frame: image.Rect(100, 100, 200, 200), ContentsSize: image.Point{X: 100, Y: 500}},
				},
			},
			{ID: 4, Frame: image.Rect(400, 300, 800, 600), ContentsSize: image.Point{X: 1000, Y: 300}},
		},
	}, 1)

	tests := []struct {
		name string
		p    image.Point
		want NodeID
	}{
		{"grandchild", image.Pt(150, 150), 3},
		{"static child bubbles to root", image.Pt(300, 250), 1},
		{"scrollable child", image.Pt(500, 400), 4},
		{"root area", image.Pt(100, 500), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := root.scrollableNodeAt(tt.p)
			if n == nil {
				t.Fatalf("scrollableNodeAt(%v) = nil, want node %d", tt.p, tt.want)
			}
			if got := n.ID(); got != tt.want {
				t.Errorf("scrollableNodeAt(%v) = node %d, want %d", tt.p, got, tt.want)
			}
		})
	}

	if n := root.scrollableNodeAt(image.Pt(900, 900)); n != nil {
		t.Errorf("scrollableNodeAt(outside) = node %d, want nil", n.ID())
	}
}

func TestScrollBy(t *testing.T) {
	n := buildNode(&StateNode{
		Frame:        image.Rect(0, 0, 100, 100),
		ContentsSize: image.Point{X: 100, Y: 400},
	}, 1)

	// Negative delta moves away from the origin.
	if !n.scrollBy(0, -50) {
		t.Error("scrollBy(0, -50) = false, want movement")
	}
	if got := n.ScrollPosition(); got != (image.Point{Y: 50}) {
		t.Errorf("ScrollPosition() = %v, want (0,50)", got)
	}

	// Positive delta moves back toward the origin.
	if !n.scrollBy(0, 30) {
		t.Error("scrollBy(0, 30) = false, want movement")
	}
	if got := n.ScrollPosition(); got != (image.Point{Y: 20}) {
		t.Errorf("ScrollPosition() = %v, want (0,20)", got)
	}

	// Clamped at both extremes.
	if !n.scrollBy(0, -9999) {
		t.Error("scrollBy to bottom = false, want movement")
	}
	if got := n.ScrollPosition(); got != (image.Point{Y: 300}) {
		t.Errorf("ScrollPosition() = %v, want (0,300)", got)
	}
	if n.scrollBy(0, -10) {
		t.Error("scrollBy past bottom = true, want no movement")
	}
	if n.scrollBy(-5, 0) {
		t.Error("horizontal scrollBy on vertical-only node = true, want no movement")
	}
}
