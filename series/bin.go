package series

import "math"

// Aggregator folds the values of one bin into a single value.
type Aggregator uint8

const (
	Average Aggregator = iota
	Sum
	Max
)

func (a Aggregator) String() string {
	switch a {
	case Average:
		return "average"
	case Sum:
		return "sum"
	case Max:
		return "max"
	default:
		return "?"
	}
}

// ParseAggregator returns the aggregator named s.
func ParseAggregator(s string) (Aggregator, bool) {
	switch s {
	case "average", "avg", "mean", "":
		return Average, true
	case "sum":
		return Sum, true
	case "max":
		return Max, true
	}
	return Average, false
}

func (a Aggregator) fold(values []float64) float64 {
	switch a {
	case Sum:
		var s float64
		for _, v := range values {
			s += v
		}
		return s
	case Max:
		m := math.Inf(-1)
		for _, v := range values {
			m = max(m, v)
		}
		return m
	default:
		var s float64
		for _, v := range values {
			s += v
		}
		return s / float64(len(values))
	}
}

// Bin groups consecutive points into at most n bins of equal size and
// aggregates the y values of each. A bin takes the x value and category of
// its first point. Non-finite y values are left out of the aggregate; a bin
// without finite values gets a NaN y. When n is not positive, or the series
// already fits, the series is returned unchanged.
func (s Series) Bin(n int, agg Aggregator) Series {
	if n <= 0 || len(s.Points) <= n {
		return s
	}
	size := int(math.Ceil(float64(len(s.Points)) / float64(n)))
	out := Series{Name: s.Name, Color: s.Color, Kind: s.Kind}
	out.Points = make([]Point, 0, n)
	values := make([]float64, 0, size)
	for start := 0; start < len(s.Points); start += size {
		end := min(start+size, len(s.Points))
		values = values[:0]
		for _, p := range s.Points[start:end] {
			if finite(p.Y) {
				values = append(values, p.Y)
			}
		}
		first := s.Points[start]
		y := math.NaN()
		if len(values) > 0 {
			y = agg.fold(values)
		}
		out.Points = append(out.Points, Point{X: first.X, Label: first.Label, Y: y})
	}
	return out
}

// Window returns the points of s in [start, start+count), clamped to the
// series bounds. The returned series shares its backing array with s.
func (s Series) Window(start, count int) Series {
	start = min(max(start, 0), len(s.Points))
	end := min(max(start+count, start), len(s.Points))
	s.Points = s.Points[start:end]
	return s
}
