package geometry

import "testing"

func TestRectContains(t *testing.T) {
	r := RectFromMinSize(Pt(100, 100), 120, 60)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Pt(160, 130), true},
		{"top-left corner", Pt(100, 100), true},
		{"bottom-right corner", Pt(220, 160), true},
		{"left edge", Pt(100, 130), true},
		{"just outside left", Pt(99.999, 130), false},
		{"below", Pt(160, 161), false},
		{"far away", Pt(-500, 9000), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectAccessors(t *testing.T) {
	r := RectFromPoints(Pt(220, 160), Pt(100, 100))

	if r.Left() != 100 || r.Right() != 220 || r.Top() != 100 || r.Bottom() != 160 {
		t.Fatalf("unexpected bounds %+v", r)
	}
	if r.Width() != 120 || r.Height() != 60 {
		t.Errorf("size = %vx%v, want 120x60", r.Width(), r.Height())
	}
	if c := r.Center(); c != Pt(160, 130) {
		t.Errorf("Center() = %v", c)
	}

	moved := r.Translate(V(20, -10))
	if moved.Min != Pt(120, 90) || moved.Max != Pt(240, 150) {
		t.Errorf("Translate = %+v", moved)
	}

	u := r.Union(RectFromMinSize(Pt(0, 150), 10, 100))
	if u.Min != Pt(0, 100) || u.Max != Pt(220, 250) {
		t.Errorf("Union = %+v", u)
	}
}

func TestPointVectorOps(t *testing.T) {
	p := Pt(3, 4)
	if d := p.DistanceSquared(Pt(0, 0)); d != 25 {
		t.Errorf("DistanceSquared = %v, want 25", d)
	}
	if m := Pt(0, 0).Lerp(Pt(10, 20), 0.5); m != Pt(5, 10) {
		t.Errorf("Lerp = %v", m)
	}
	if v := V(1, 2).Add(V(3, 4)).Scale(2).Neg(); v != V(-8, -12) {
		t.Errorf("vector chain = %v", v)
	}
	if !V(0, 0).IsZero() || V(0, 1).IsZero() {
		t.Error("IsZero mismatch")
	}
}
