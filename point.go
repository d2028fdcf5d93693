package board

import "math"

// Point represents a 2D point or vector, in model or viewport space
// depending on context.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Div returns the point divided by a scalar.
func (p Point) Div(s float64) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Size represents the dimensions of a viewport or image.
type Size struct {
	Width, Height float64
}

// Sz is a convenience function to create a Size.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// Center returns the center point of a rectangle of this size anchored
// at the origin.
func (s Size) Center() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}
