package series

import (
	"errors"
	"math"
)

// ErrEmpty is returned when there is nothing to plot: either no series at all
// or only series without finite points.
var ErrEmpty = errors.New("series: no data points")

// Dataset is the full input of one chart frame.
type Dataset struct {
	Series []Series
}

// NewDataset wraps the given series.
func NewDataset(series ...Series) Dataset {
	return Dataset{Series: series}
}

// SeriesCount returns the number of series in the dataset.
func (d Dataset) SeriesCount() int {
	return len(d.Series)
}

// PointCount returns the number of points in series i.
func (d Dataset) PointCount(i int) int {
	if i < 0 || i >= len(d.Series) {
		return 0
	}
	return len(d.Series[i].Points)
}

// Empty reports whether no series holds a plottable point.
func (d Dataset) Empty() bool {
	_, err := d.Domain()
	return err != nil
}

// AllCategorical reports whether every non-empty series is categorical.
func (d Dataset) AllCategorical() bool {
	seen := false
	for _, s := range d.Series {
		if s.Empty() {
			continue
		}
		if s.Kind != Categorical {
			return false
		}
		seen = true
	}
	return seen
}

// Categories returns the names of all categories across the dataset in the
// order they first appear.
func (d Dataset) Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range d.Series {
		for _, p := range s.Points {
			name := p.Category()
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// Domain scans every point once and returns the extent of the finite x and y
// values. The returned domain is not padded; see [Domain.Padded].
func (d Dataset) Domain() (Domain, error) {
	var (
		dom Domain
		ok  bool
	)
	for _, s := range d.Series {
		for _, p := range s.Points {
			if !p.Finite() {
				continue
			}
			if !ok {
				dom = Domain{XMin: p.X, XMax: p.X, YMin: p.Y, YMax: p.Y}
				ok = true
				continue
			}
			dom.XMin = min(dom.XMin, p.X)
			dom.XMax = max(dom.XMax, p.X)
			dom.YMin = min(dom.YMin, p.Y)
			dom.YMax = max(dom.YMax, p.Y)
		}
	}
	if !ok {
		return Domain{}, ErrEmpty
	}
	return dom, nil
}

// Domain is the rectangle of data values a chart displays.
type Domain struct {
	XMin, XMax float64
	YMin, YMax float64
}

// degeneratePad is the fraction of the magnitude added on each side of a
// non-integral degenerate range.
const degeneratePad = 0.1

// padRange widens [lo, hi] when it has no span. Integral values are padded by
// one unit, anything else by a tenth of its magnitude. Padded bounds never
// leave the finite float64 range.
func padRange(lo, hi float64) (float64, float64) {
	if lo < hi {
		return lo, hi
	}
	v := lo
	pad := 1.0
	if v != math.Trunc(v) {
		pad = math.Abs(v) * degeneratePad
	}
	if a, b := clampFinite(v-pad), clampFinite(v+pad); a < b {
		return a, b
	}
	// One unit vanishes next to very large magnitudes.
	pad = math.Abs(v) * degeneratePad
	if a, b := clampFinite(v-pad), clampFinite(v+pad); a < b {
		return a, b
	}
	return math.Nextafter(v, -math.MaxFloat64), math.Nextafter(v, math.MaxFloat64)
}

func clampFinite(v float64) float64 {
	return min(max(v, -math.MaxFloat64), math.MaxFloat64)
}

// Padded returns a copy of the domain where each degenerate axis has been
// expanded so that its minimum is strictly below its maximum.
func (d Domain) Padded() Domain {
	d.XMin, d.XMax = padRange(d.XMin, d.XMax)
	d.YMin, d.YMax = padRange(d.YMin, d.YMax)
	return d
}

// IncludeY returns a copy of the domain extended so that v lies on the y axis.
func (d Domain) IncludeY(v float64) Domain {
	d.YMin = min(d.YMin, v)
	d.YMax = max(d.YMax, v)
	return d
}

// Degenerate reports whether either axis has no span.
func (d Domain) Degenerate() bool {
	return !(d.XMin < d.XMax) || !(d.YMin < d.YMax)
}
