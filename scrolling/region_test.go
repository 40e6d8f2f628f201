package scrolling

import (
	"image"
	"testing"
)

func TestRegionContains(t *testing.T) {
	r := NewRegion(
		image.Rect(0, 0, 100, 100),
		image.Rect(300, 300, 400, 400),
	)

	tests := []struct {
		name string
		p    image.Point
		want bool
	}{
		{"inside first", image.Pt(50, 50), true},
		{"inside second", image.Pt(350, 350), true},
		{"between rects", image.Pt(200, 200), false},
		{"min corner", image.Pt(0, 0), true},
		{"max corner excluded", image.Pt(100, 100), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRegionEmpty(t *testing.T) {
	var r Region
	if !r.IsEmpty() {
		t.Error("IsEmpty() = false for zero region")
	}
	if r.Contains(image.Pt(0, 0)) {
		t.Error("empty region contains a point")
	}

	r.Add(image.Rectangle{}) // empty rect is dropped
	if !r.IsEmpty() {
		t.Error("IsEmpty() = false after adding an empty rect")
	}

	r.Add(image.Rect(0, 0, 10, 10))
	if r.IsEmpty() {
		t.Error("IsEmpty() = true after adding a rect")
	}
	if got := r.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestRegionBounds(t *testing.T) {
	r := NewRegion(
		image.Rect(10, 10, 20, 20),
		image.Rect(50, 5, 60, 15),
	)
	want := image.Rect(10, 5, 60, 20)
	if got := r.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}

	var empty Region
	if got := empty.Bounds(); got != (image.Rectangle{}) {
		t.Errorf("empty Bounds() = %v, want zero rect", got)
	}
}

func TestRegionCloneIsIndependent(t *testing.T) {
	orig := NewRegion(image.Rect(0, 0, 10, 10))
	clone := orig.Clone()

	orig.Add(image.Rect(100, 100, 200, 200))
	if clone.Contains(image.Pt(150, 150)) {
		t.Error("clone observed a rect added to the original")
	}
	if got := clone.Len(); got != 1 {
		t.Errorf("clone Len() = %d, want 1", got)
	}
}
