package chart

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Point is a position in pixels, with y growing downward.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle in pixels. A well-formed Rect has
// Min.X <= Max.X and Min.Y <= Max.Y.
type Rect struct {
	Min, Max Point
}

// NewRect returns the rectangle spanned by two corners, normalized so that
// Min is the top-left corner.
func NewRect(a, b Point) Rect {
	return Rect{
		Min: Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Distance returns the distance from p to the closest point of r, which is
// zero when p is inside.
func (r Rect) Distance(p Point) float64 {
	return math.Hypot(axisDistance(p.X, r.Min.X, r.Max.X), axisDistance(p.Y, r.Min.Y, r.Max.Y))
}

func axisDistance(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}

// Insets are the margins reserved around the plot for axis labels.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// UniformInsets returns insets of v on every side.
func UniformInsets(v float64) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}

// Geometry is the drawing area handed to a chart by its host.
type Geometry struct {
	Width, Height float64
	Margins       Insets
}

// Plot returns the rectangle left for data once the margins are removed.
func (g Geometry) Plot() (Rect, error) {
	if !(g.Width > 0) || !(g.Height > 0) || math.IsInf(g.Width, 0) || math.IsInf(g.Height, 0) {
		return Rect{}, ErrInvalidGeometry
	}
	m := g.Margins
	r := Rect{
		Min: Point{X: m.Left, Y: m.Top},
		Max: Point{X: g.Width - m.Right, Y: g.Height - m.Bottom},
	}
	if !(r.Dx() > 0) || !(r.Dy() > 0) {
		return Rect{}, ErrInvalidGeometry
	}
	return r, nil
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}
