package scene

import (
	"math"
	"testing"
)

func TestMatrixIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Error("Identity() should report IsIdentity")
	}
	if !m.IsTranslation() {
		t.Error("identity is a (zero) translation")
	}
	p := m.TransformPoint(Pt(3, 4))
	if p != Pt(3, 4) {
		t.Errorf("TransformPoint = %+v, want (3, 4)", p)
	}
}

func TestMatrixTranslate(t *testing.T) {
	m := Translate(10, -5)
	if m.IsIdentity() {
		t.Error("translation should not report IsIdentity")
	}
	if !m.IsTranslation() {
		t.Error("Translate should report IsTranslation")
	}
	p := m.TransformPoint(Pt(1, 1))
	if p != Pt(11, -4) {
		t.Errorf("TransformPoint = %+v, want (11, -4)", p)
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Scale then translate is not translate then scale.
	st := Translate(10, 0).Multiply(Scale(2, 2))
	p := st.TransformPoint(Pt(1, 1))
	if p != Pt(12, 2) {
		t.Errorf("translate*scale point = %+v, want (12, 2)", p)
	}

	ts := Scale(2, 2).Multiply(Translate(10, 0))
	p = ts.TransformPoint(Pt(1, 1))
	if p != Pt(22, 2) {
		t.Errorf("scale*translate point = %+v, want (22, 2)", p)
	}
}

func TestMatrixRotate(t *testing.T) {
	m := Rotate(math.Pi / 2)
	p := m.TransformPoint(Pt(1, 0))
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-1) > 1e-9 {
		t.Errorf("TransformPoint = %+v, want (0, 1)", p)
	}
	if m.IsTranslation() {
		t.Error("rotation should not report IsTranslation")
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(5, 7).Multiply(Scale(2, 4))
	inv := m.Invert()

	p := inv.TransformPoint(m.TransformPoint(Pt(3, 3)))
	if math.Abs(p.X-3) > 1e-9 || math.Abs(p.Y-3) > 1e-9 {
		t.Errorf("inverse round trip = %+v, want (3, 3)", p)
	}

	// Singular matrices invert to identity.
	singular := Matrix{A: 1, B: 2, D: 2, E: 4}
	if !singular.Invert().IsIdentity() {
		t.Error("singular Invert() should return identity")
	}
}
