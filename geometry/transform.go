package geometry

import "math"

// Transform maps between world space (the diagram's own coordinates) and
// screen space (viewport pixels).
//
// Pan is the world coordinate visible at the screen origin. Zoom is the
// number of screen units per world unit and must be positive.
type Transform struct {
	Pan  Vec     `json:"pan"`
	Zoom float64 `json:"zoom"`
}

// NewTransform returns a transform with the given pan and zoom. A
// non-positive or non-finite zoom is replaced by 1 and a non-finite pan by
// zero.
func NewTransform(pan Vec, zoom float64) Transform {
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		zoom = 1
	}
	if !pan.IsFinite() {
		pan = Vec{}
	}
	return Transform{Pan: pan, Zoom: zoom}
}

// Valid reports whether the zoom is positive and finite and the pan finite.
func (t Transform) Valid() bool {
	return t.Zoom > 0 && Finite(t.Zoom) && t.Pan.IsFinite()
}

// Identity returns the transform where world and screen coincide.
func Identity() Transform {
	return Transform{Zoom: 1}
}

// ScreenToWorld converts a screen position to world space.
func (t Transform) ScreenToWorld(p Point) Point {
	return Point{X: t.Pan.X + p.X/t.Zoom, Y: t.Pan.Y + p.Y/t.Zoom}
}

// WorldToScreen converts a world position to screen space.
func (t Transform) WorldToScreen(p Point) Point {
	return Point{X: (p.X - t.Pan.X) * t.Zoom, Y: (p.Y - t.Pan.Y) * t.Zoom}
}

// ScreenVecToWorld converts a screen delta (a pointer motion, say) to world
// space. Only scaling applies.
func (t Transform) ScreenVecToWorld(v Vec) Vec {
	return v.Scale(1 / t.Zoom)
}

// WorldVecToScreen converts a world delta to screen space.
func (t Transform) WorldVecToScreen(v Vec) Vec {
	return v.Scale(t.Zoom)
}

// WorldRectToScreen converts both corners of r to screen space.
func (t Transform) WorldRectToScreen(r Rect) Rect {
	return Rect{Min: t.WorldToScreen(r.Min), Max: t.WorldToScreen(r.Max)}
}

// ScreenDistanceToWorld converts a screen-space length, such as a pick
// tolerance, to world units at the current zoom.
func (t Transform) ScreenDistanceToWorld(d float64) float64 {
	return d / t.Zoom
}

// Panned returns the transform after the view is dragged by a screen delta:
// content follows the pointer, so pan moves the opposite way.
func (t Transform) Panned(screenDelta Vec) Transform {
	t.Pan = t.Pan.Add(t.ScreenVecToWorld(screenDelta).Neg())
	return t
}

// ZoomAround returns the transform with the given zoom (clamped to limits)
// that keeps the world point under cursor at the same screen position.
func (t Transform) ZoomAround(cursor Point, zoom float64, limits ZoomLimits) Transform {
	pivot := t.ScreenToWorld(cursor)
	zoom = limits.Clamp(zoom)
	return Transform{
		Pan:  Vec{X: pivot.X - cursor.X/zoom, Y: pivot.Y - cursor.Y/zoom},
		Zoom: zoom,
	}
}

// ZoomLimits bounds the zoom factor.
type ZoomLimits struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultZoomLimits keeps scale away from degenerate or imprecise values.
var DefaultZoomLimits = ZoomLimits{Min: 0.05, Max: 20}

// Clamp restricts z to [Min, Max]. NaN clamps to Min.
func (l ZoomLimits) Clamp(z float64) float64 {
	if math.IsNaN(z) || z < l.Min {
		return l.Min
	}
	if z > l.Max {
		return l.Max
	}
	return z
}
