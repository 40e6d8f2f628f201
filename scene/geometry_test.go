package scene

import (
	"image"
	"testing"
)

func TestSizeIsEmpty(t *testing.T) {
	tests := []struct {
		size Size
		want bool
	}{
		{Size{Width: 10, Height: 10}, false},
		{Size{Width: 0, Height: 10}, true},
		{Size{Width: 10, Height: 0}, true},
		{Size{Width: -1, Height: 10}, true},
	}
	for _, tt := range tests {
		if got := tt.size.IsEmpty(); got != tt.want {
			t.Errorf("IsEmpty(%+v) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := RectXYWH(10, 10, 20, 20)

	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(10, 10), true},
		{Pt(15, 15), true},
		{Pt(30, 15), false},
		{Pt(29.9, 29.9), true},
		{Pt(9, 15), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectIntersect(t *testing.T) {
	a := RectXYWH(0, 0, 10, 10)
	b := RectXYWH(5, 5, 10, 10)

	got := a.Intersect(b)
	want := Rect{MinX: 5, MinY: 5, MaxX: 10, MaxY: 10}
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	disjoint := a.Intersect(RectXYWH(20, 20, 5, 5))
	if !disjoint.IsEmpty() {
		t.Errorf("disjoint Intersect = %+v, want empty", disjoint)
	}
}

func TestRectImageRect(t *testing.T) {
	r := Rect{MinX: 0.2, MinY: 0.9, MaxX: 10.1, MaxY: 19.5}
	got := r.ImageRect()
	want := image.Rect(0, 0, 11, 20)
	if got != want {
		t.Errorf("ImageRect() = %v, want %v", got, want)
	}
}
