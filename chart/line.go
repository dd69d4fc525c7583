package chart

import (
	"fmt"
	"math"

	"git.sr.ht/~whereswaldon/graphkit/scale"
	"git.sr.ht/~whereswaldon/graphkit/series"
)

// categoricalPositions rewrites the x of every point of an all-categorical
// dataset to the index of its category, so that series with different
// category lists line up.
func (f *Frame) categoricalPositions() {
	f.Categories = f.Data.Categories()
	index := make(map[string]int, len(f.Categories))
	for i, c := range f.Categories {
		index[c] = i
	}
	for i, s := range f.Data.Series {
		points := make([]series.Point, len(s.Points))
		for j, p := range s.Points {
			p.X = float64(index[p.Category()])
			points[j] = p
		}
		s.Points = points
		f.Data.Series[i] = s
	}
}

func (f *Frame) layoutLine() error {
	cfg := f.Config
	categorical := f.Data.AllCategorical()
	if categorical {
		f.categoricalPositions()
	}
	dom, err := f.Data.Domain()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmptyData, err)
	}
	if cfg.ZeroBaseline {
		dom = dom.IncludeY(0)
	}
	dom = dom.Padded()

	x, err := scale.New(dom.XMin, dom.XMax, f.Plot.Min.X, f.Plot.Max.X)
	if err != nil {
		return fmt.Errorf("%w: x axis: %w", ErrEmptyData, err)
	}
	f.X = x
	if err := f.buildY(dom.YMin, dom.YMax); err != nil {
		return err
	}
	xTarget := cfg.targetTicks(f.Plot.Dx())
	if categorical {
		f.XTicks = f.categoryTicks(xTarget)
	} else {
		f.XTicks = x.TicksFunc(xTarget, cfg.FormatX)
	}

	f.yGrid()
	if cfg.ShowGrid {
		for _, t := range f.XTicks {
			f.Primitives = append(f.Primitives, Line{
				Path:   []Point{Pt(t.Pixel, f.Plot.Min.Y), Pt(t.Pixel, f.Plot.Max.Y)},
				Stroke: Stroke{Width: 1, Color: cfg.GridColor},
				Role:   RoleGrid,
				Series: -1,
			})
		}
		f.border()
	}

	f.pixels = make([][]Point, len(f.Data.Series))
	f.sorted = make([]bool, len(f.Data.Series))
	for i, s := range f.Data.Series {
		f.pixels[i], f.sorted[i] = f.project(s)
		f.seriesLines(i, s)
	}
	if cfg.ShowPoints {
		for i, s := range f.Data.Series {
			f.markers(i, s)
		}
	}
	if cfg.ShowAverage {
		for i, s := range f.Data.Series {
			if mean, ok := s.Mean(); ok {
				f.averageLine(i, mean, Stroke{Width: 2, Color: withAlpha(cfg.ColorOf(i, s), 160)})
			}
		}
	}
	if cfg.ShowLabels {
		f.yLabels()
		for _, t := range f.XTicks {
			f.xLabel(t.Pixel, t.Label)
		}
	}
	return nil
}

// categoryTicks returns one tick per category, thinned out to roughly target
// labels when there are too many to fit.
func (f *Frame) categoryTicks(target int) []scale.Tick {
	stride := max(1, int(ceil(float64(len(f.Categories))/float64(max(target, 1)))))
	ticks := make([]scale.Tick, 0, len(f.Categories)/stride+1)
	for i := 0; i < len(f.Categories); i += stride {
		v := float64(i)
		ticks = append(ticks, scale.Tick{Value: v, Pixel: f.X.ToPixel(v), Label: f.Categories[i]})
	}
	return ticks
}

// project maps every point of s to pixels. Points that cannot be drawn map
// to NaN. The bool reports whether the pixel x positions never decrease, in
// which case they can be binary searched.
func (f *Frame) project(s series.Series) ([]Point, bool) {
	out := make([]Point, len(s.Points))
	sorted := true
	prevX := math.Inf(-1)
	for j, p := range s.Points {
		if !p.Finite() {
			out[j] = Pt(math.NaN(), math.NaN())
			sorted = false
			continue
		}
		out[j] = Pt(f.X.ToPixel(p.X), f.Y.ToPixel(p.Y))
		if out[j].X < prevX {
			sorted = false
		}
		prevX = out[j].X
	}
	return out, sorted
}

// seriesLines emits the polyline of series i in its original point order,
// broken wherever a point cannot be drawn.
func (f *Frame) seriesLines(i int, s series.Series) {
	stroke := Stroke{Width: f.Config.LineWidth, Color: f.Config.ColorOf(i, s)}
	var path []Point
	flush := func() {
		if len(path) > 0 {
			f.Primitives = append(f.Primitives, Line{Path: path, Stroke: stroke, Role: RoleSeries, Series: i})
		}
		path = nil
	}
	for _, px := range f.pixels[i] {
		if math.IsNaN(px.X) {
			flush()
			continue
		}
		path = append(path, px)
	}
	flush()
}

// markers emits a square marker for every drawable point of series i.
func (f *Frame) markers(i int, s series.Series) {
	cfg := f.Config
	base := cfg.ColorOf(i, s)
	mean, _ := s.Mean()
	half := cfg.PointSize / 2
	for j, px := range f.pixels[i] {
		if math.IsNaN(px.X) {
			continue
		}
		fill := base
		if cfg.PointColor != nil {
			fill = cfg.PointColor(ColorParams{
				Series:  i,
				Index:   j,
				Value:   s.Points[j].Y,
				Average: mean,
				Base:    base,
			})
		}
		f.Primitives = append(f.Primitives, FilledRect{
			Bounds: NewRect(Pt(px.X-half, px.Y-half), Pt(px.X+half, px.Y+half)),
			Fill:   fill,
			Role:   RoleMarker,
			Series: i,
		})
	}
}
