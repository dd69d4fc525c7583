// Package series holds the data a chart is drawn from. Series are built by
// the caller before each frame and are only ever read by the chart packages.
package series

import (
	"image/color"
	"math"
	"strconv"
)

// XKind describes what the x coordinate of a series means.
type XKind uint8

const (
	// Numeric series carry ordered numeric (or time) x values.
	Numeric XKind = iota
	// Categorical series carry one labelled value per category. The X of
	// each point is its position within the series.
	Categorical
)

func (k XKind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "?"
	}
}

// Point is a single datum.
type Point struct {
	X     float64
	Label string
	Y     float64
}

// Finite reports whether both coordinates of the point can be plotted.
func (p Point) Finite() bool {
	return finite(p.X) && finite(p.Y)
}

// Category returns the name of the category the point belongs to. Numeric
// points are named after their formatted x value.
func (p Point) Category() string {
	if p.Label != "" {
		return p.Label
	}
	return strconv.FormatFloat(p.X, 'g', -1, 64)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Series represents one data set in a visualization.
type Series struct {
	Name string
	// Color is the colour the series is drawn with. The zero value asks the
	// chart to pick one from its palette.
	Color  color.NRGBA
	Kind   XKind
	Points []Point
}

// NewNumeric builds a numeric series from parallel x and y slices. Extra
// values in the longer slice are ignored.
func NewNumeric(name string, xs, ys []float64) Series {
	s := Series{Name: name, Kind: Numeric}
	n := min(len(xs), len(ys))
	s.Points = make([]Point, n)
	for i := 0; i < n; i++ {
		s.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return s
}

// NewCategorical builds a categorical series with one value per label.
func NewCategorical(name string, labels []string, values []float64) Series {
	s := Series{Name: name, Kind: Categorical}
	n := min(len(labels), len(values))
	s.Points = make([]Point, n)
	for i := 0; i < n; i++ {
		s.Points[i] = Point{X: float64(i), Label: labels[i], Y: values[i]}
	}
	return s
}

// FromValues builds a numeric series whose x values are the positions of ys.
func FromValues(name string, ys ...float64) Series {
	s := Series{Name: name, Kind: Numeric}
	s.Points = make([]Point, len(ys))
	for i, y := range ys {
		s.Points[i] = Point{X: float64(i), Y: y}
	}
	return s
}

// Append adds a point to the end of the series. Points are kept in the order
// they were appended; that order is what a line chart connects.
func (s *Series) Append(x, y float64) {
	s.Points = append(s.Points, Point{X: x, Y: y})
}

// AppendLabeled adds a categorical point named label.
func (s *Series) AppendLabeled(label string, y float64) {
	s.Points = append(s.Points, Point{X: float64(len(s.Points)), Label: label, Y: y})
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Points)
}

// Empty reports whether the series has no points.
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// Sorted reports whether the x values of the finite points never decrease.
func (s Series) Sorted() bool {
	prev := math.Inf(-1)
	for _, p := range s.Points {
		if !finite(p.X) {
			continue
		}
		if p.X < prev {
			return false
		}
		prev = p.X
	}
	return true
}

// Range returns the minimum and maximum finite y values of the series. The
// ok return value is false when the series has no finite values.
func (s Series) Range() (minimum, maximum float64, ok bool) {
	for _, p := range s.Points {
		if !finite(p.Y) {
			continue
		}
		if !ok {
			minimum, maximum, ok = p.Y, p.Y, true
			continue
		}
		minimum = min(minimum, p.Y)
		maximum = max(maximum, p.Y)
	}
	return minimum, maximum, ok
}

// Sum returns the total of the finite y values.
func (s Series) Sum() float64 {
	var sum float64
	for _, p := range s.Points {
		if finite(p.Y) {
			sum += p.Y
		}
	}
	return sum
}

// Mean returns the mean of the finite y values. The ok return value is false
// when there are none.
func (s Series) Mean() (mean float64, ok bool) {
	var count int
	for _, p := range s.Points {
		if finite(p.Y) {
			mean += p.Y
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return mean / float64(count), true
}

// Lookup returns the index of the first point in category label.
func (s Series) Lookup(label string) (int, bool) {
	for i, p := range s.Points {
		if p.Category() == label {
			return i, true
		}
	}
	return 0, false
}
