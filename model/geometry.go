package model

import "math"

// Point is a position in PDF user space.
type Point struct {
	X, Y float64
}

// BBox is an axis-aligned rectangle anchored at its lower-left corner.
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBBox returns the box with lower-left corner (x, y) and the given size.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Span returns the smallest box with p and q as opposite corners.
func Span(p, q Point) BBox {
	lx, ly := math.Min(p.X, q.X), math.Min(p.Y, q.Y)
	return BBox{X: lx, Y: ly, Width: math.Abs(q.X - p.X), Height: math.Abs(q.Y - p.Y)}
}

// Right is the X coordinate of the right edge.
func (b BBox) Right() float64 { return b.X + b.Width }

// Top is the Y coordinate of the upper edge.
func (b BBox) Top() float64 { return b.Y + b.Height }

// Union returns the smallest box covering b and o. The zero BBox acts as
// the empty box, so a union can start from BBox{}.
func (b BBox) Union(o BBox) BBox {
	switch {
	case b == (BBox{}):
		return o
	case o == (BBox{}):
		return b
	}
	lx, ly := math.Min(b.X, o.X), math.Min(b.Y, o.Y)
	return BBox{
		X:      lx,
		Y:      ly,
		Width:  math.Max(b.Right(), o.Right()) - lx,
		Height: math.Max(b.Top(), o.Top()) - ly,
	}
}

// Matrix is an affine transform [a b c d e f] mapping (x, y) to
// (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// Identity is the transform that leaves points unchanged.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate moves points by (tx, ty).
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale stretches points by sx and sy.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Transform maps p through m.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply returns the transform that applies m first and n second, the
// product m × n in PDF notation.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
