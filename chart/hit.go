package chart

import (
	"math"
	"sort"
)

// HitResult identifies the datum under the pointer.
type HitResult struct {
	SeriesIndex int
	// PointIndex indexes the caller's series. For a binned bar chart it is
	// the first point folded into the bar.
	PointIndex int
	DistancePx float64
}

// HitTest returns the datum nearest to p, provided it is within snapRadius
// pixels. A negative snapRadius uses Config.SnapRadiusPx. When several data
// are equally near, the one with the lowest series index wins, then the one
// with the lowest point index.
func (f *Frame) HitTest(p Point, snapRadius float64) (HitResult, bool) {
	if f.err != nil || math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return HitResult{}, false
	}
	if snapRadius < 0 {
		snapRadius = f.Config.SnapRadiusPx
	}
	if f.Kind == KindBar {
		return f.hitBar(p, snapRadius)
	}
	return f.hitLine(p, snapRadius)
}

func (f *Frame) hitLine(p Point, r float64) (HitResult, bool) {
	best := HitResult{DistancePx: math.Inf(1)}
	found := false
	consider := func(i, j int, px Point) {
		if math.IsNaN(px.X) {
			return
		}
		d := math.Hypot(px.X-p.X, px.Y-p.Y)
		if d > r || d >= best.DistancePx {
			return
		}
		best = HitResult{SeriesIndex: i, PointIndex: f.sourceIndex(i, j), DistancePx: d}
		found = true
	}
	for i, pixels := range f.pixels {
		if !f.sorted[i] {
			for j, px := range pixels {
				consider(i, j, px)
			}
			continue
		}
		lo := p.X - r
		start := sort.Search(len(pixels), func(k int) bool { return pixels[k].X >= lo })
		for j := start; j < len(pixels) && pixels[j].X <= p.X+r; j++ {
			consider(i, j, pixels[j])
		}
	}
	return best, found
}

func (f *Frame) hitBar(p Point, r float64) (HitResult, bool) {
	c, ok := f.Band.Index(p.X)
	if !ok || c >= len(f.slots) {
		return HitResult{}, false
	}
	best := HitResult{DistancePx: math.Inf(1)}
	found := false
	for _, k := range f.slots[c] {
		b := f.bars[k]
		if p.X < b.Column.Min.X || p.X > b.Column.Max.X {
			continue
		}
		if axisDistance(p.Y, b.Bounds.Min.Y, b.Bounds.Max.Y) > r {
			continue
		}
		d := b.Bounds.Distance(p)
		if d >= best.DistancePx {
			continue
		}
		best = HitResult{SeriesIndex: b.Series, PointIndex: b.Point, DistancePx: d}
		found = true
	}
	return best, found
}

// bar returns the bar a hit refers to.
func (f *Frame) bar(hit HitResult) (Bar, bool) {
	for _, b := range f.bars {
		if b.Series == hit.SeriesIndex && b.Point == hit.PointIndex {
			return b, true
		}
	}
	return Bar{}, false
}
