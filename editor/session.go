package editor

import (
	"sadt/geometry"
)

// Settings are the tunables of the interaction layer. Radii and tolerances
// are in screen units; they are divided by the zoom before hit-testing so
// picking feels the same at every scale.
type Settings struct {
	// ConnectionPointRadius is the drawn radius of a connection point.
	ConnectionPointRadius float64
	// StartProbeFactor scales the radius when a press looks for a point to
	// start an arrow from.
	StartProbeFactor float64
	// EndProbeFactor scales the radius when a release looks for a target.
	// It is larger than StartProbeFactor so fast drags still land.
	EndProbeFactor float64
	ArrowTolerance float64
	Zoom           geometry.ZoomLimits
	ZoomStep       float64
	// NodeName is a fmt pattern for nodes added from the menu, given the
	// 1-based index of the new node.
	NodeName string
}

// DefaultSettings returns the stock interaction settings.
func DefaultSettings() Settings {
	return Settings{
		ConnectionPointRadius: 4,
		StartProbeFactor:      3,
		EndProbeFactor:        4,
		ArrowTolerance:        5,
		Zoom:                  geometry.DefaultZoomLimits,
		ZoomStep:              1.1,
		NodeName:              "Activity %d",
	}
}

// Session is the transient state of one editing surface. It is a plain
// value: Step returns a new one instead of mutating.
type Session struct {
	Mode      Mode
	Transform geometry.Transform

	// Pointer is the last known pointer position in world space, used for
	// the arrow preview. PointerScreen is the same sample in screen space.
	Pointer       geometry.Point
	PointerScreen geometry.Point

	PrimaryDown bool
	// Panning is set while the secondary or middle button is held. It is
	// independent of Mode.
	Panning bool
}

// NewSession returns an idle session with the given view transform.
func NewSession(t geometry.Transform) Session {
	if t.Zoom <= 0 {
		t = geometry.Identity()
	}
	return Session{Mode: Idle{}, Transform: t}
}
