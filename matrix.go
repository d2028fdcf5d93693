package board

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// ViewTransform.Matrix produces one of these so callers that compose
// transforms (render loops, hit testing) can work with a single affine
// form instead of separate pan/zoom fields.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a uniform scaling matrix.
func Scale(s float64) Matrix {
	return Matrix{
		A: s, B: 0, C: 0,
		D: 0, E: s, F: 0,
	}
}

// Multiply multiplies two matrices (m * other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// Invert returns the inverse transformation. The second return value is
// false if the matrix is singular (zero determinant).
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.E - m.B*m.D
	if det == 0 {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.E*m.C) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.D*m.C - m.A*m.F) * inv,
	}, true
}
