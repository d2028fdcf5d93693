package board

import "math"

// ViewTransform maintains the pan/zoom state mapping model space to
// viewport space. It keeps two layers: committed values and the
// in-progress delta of the current gesture. The effective transform is
// always committed combined with in-progress, so mid-gesture frames are
// correct without folding on every gesture update; CommitGesture folds
// once, at gesture end.
//
// ViewTransform is owned by the presentation layer. Its methods are not
// synchronized; confine a value to one goroutine or copy it.
type ViewTransform struct {
	// Pan is the committed pan offset in viewport units.
	Pan Point

	// GesturePan is the in-progress pan delta of the active gesture.
	GesturePan Point

	// Zoom is the committed zoom scale. Always > 0.
	Zoom float64

	// GestureZoom is the in-progress zoom factor of the active
	// gesture. Always > 0.
	GestureZoom float64
}

// NewViewTransform returns the identity transform: no pan, zoom 1.
func NewViewTransform() ViewTransform {
	return ViewTransform{Zoom: 1, GestureZoom: 1}
}

// EffectivePan returns committed plus in-progress pan.
func (t ViewTransform) EffectivePan() Point {
	return t.Pan.Add(t.GesturePan)
}

// EffectiveZoom returns committed times in-progress zoom.
func (t ViewTransform) EffectiveZoom() float64 {
	return t.Zoom * t.GestureZoom
}

// ToViewport converts a model-space point to viewport space:
//
//	viewportCenter + p*effectiveZoom + effectivePan
func (t ViewTransform) ToViewport(p Point, viewport Size) Point {
	return viewport.Center().Add(p.Mul(t.EffectiveZoom())).Add(t.EffectivePan())
}

// ToModel converts a viewport-space point to model space. It is the
// exact inverse of ToViewport for the same state and viewport size.
func (t ViewTransform) ToModel(p Point, viewport Size) Point {
	return p.Sub(viewport.Center()).Sub(t.EffectivePan()).Div(t.EffectiveZoom())
}

// Matrix returns the effective model-to-viewport transform as an affine
// matrix: translate(center+pan) * scale(zoom).
func (t ViewTransform) Matrix(viewport Size) Matrix {
	c := viewport.Center().Add(t.EffectivePan())
	return Translate(c.X, c.Y).Multiply(Scale(t.EffectiveZoom()))
}

// ZoomToFit sets the committed zoom so the given image just fits the
// viewport, and resets the committed pan to zero. In-progress gesture
// fields are untouched. No-op if either image dimension is zero.
func (t *ViewTransform) ZoomToFit(image, viewport Size) {
	if image.IsEmpty() {
		return
	}
	t.Zoom = math.Min(viewport.Width/image.Width, viewport.Height/image.Height)
	t.Pan = Point{}
}

// SetGesturePan updates the in-progress pan delta of the active
// gesture. Call with the gesture's cumulative translation each frame.
func (t *ViewTransform) SetGesturePan(delta Point) {
	t.GesturePan = delta
}

// SetGestureZoom updates the in-progress zoom factor of the active
// gesture. Non-positive factors are ignored.
func (t *ViewTransform) SetGestureZoom(factor float64) {
	if factor <= 0 {
		return
	}
	t.GestureZoom = factor
}

// CommitGesture folds the in-progress pan and zoom into the committed
// values and resets the in-progress fields to identity. Call once when
// a gesture ends. The effective transform is unchanged by the fold.
func (t *ViewTransform) CommitGesture() {
	t.Pan = t.Pan.Add(t.GesturePan)
	t.Zoom *= t.GestureZoom
	t.GesturePan = Point{}
	t.GestureZoom = 1
}
