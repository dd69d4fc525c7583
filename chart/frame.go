// Package chart lays out line and bar charts as lists of drawing primitives
// and maps pointer positions back onto the data that was drawn.
//
// Every frame is derived from scratch: Render takes a dataset, a drawing area
// and a configuration and returns a Frame. The Frame keeps the scales it was
// drawn with, so hit-testing a pointer against it always agrees with what is
// on screen.
package chart

import (
	"fmt"

	"git.sr.ht/~whereswaldon/graphkit/scale"
	"git.sr.ht/~whereswaldon/graphkit/series"
)

// Frame is one rendered chart.
type Frame struct {
	Kind     Kind
	Config   Config
	Geometry Geometry
	// Plot is the area data is drawn into.
	Plot Rect
	// Data is the dataset that was drawn, after zooming and binning.
	Data series.Dataset
	// X and Y map data values to pixels. Bar charts use Band instead of X.
	X, Y   scale.Linear
	Band   scale.Band
	XTicks []scale.Tick
	YTicks []scale.Tick
	// Categories names the slots of Band, or the x positions of a line chart
	// whose series are all categorical.
	Categories []string

	Primitives []Primitive

	// source maps point indices of Data back onto the caller's series. A
	// nil entry is the identity.
	source [][]int
	// pixels holds the position of every point of a line chart, NaN for
	// points that could not be drawn.
	pixels [][]Point
	sorted []bool
	bars   []Bar
	// slots lists the indices into bars for each category.
	slots [][]int
	err   error
}

// Bar is the geometry of a single bar in a bar chart.
type Bar struct {
	Series, Point, Category int
	Bounds                  Rect
	// Column is the horizontal band of the category slot owned by this
	// bar's series; hit-testing looks for the pointer inside it.
	Column Rect
}

// Err reports why the frame holds no chart, wrapping ErrEmptyData or
// ErrInvalidGeometry. It is nil for a normal frame.
func (f *Frame) Err() error {
	return f.err
}

// Bars returns the bars of a bar chart frame.
func (f *Frame) Bars() []Bar {
	return f.bars
}

// Render lays out data as a chart of the given kind inside g.
//
// An empty dataset produces a frame holding a placeholder and an Err wrapping
// ErrEmptyData. A drawing area without room for a plot produces a frame with
// no primitives and an Err wrapping ErrInvalidGeometry.
func Render(kind Kind, data series.Dataset, g Geometry, cfg Config) Frame {
	f := Frame{
		Kind:     kind,
		Config:   cfg.normalized(),
		Geometry: g,
	}
	plot, err := g.Plot()
	if err != nil {
		f.err = err
		return f
	}
	f.Plot = plot
	f.prepare(data)
	switch kind {
	case KindBar:
		err = f.layoutBar()
	default:
		err = f.layoutLine()
	}
	if err != nil {
		f.err = err
		f.Primitives = f.placeholder()
	}
	return f
}

// prepare applies zooming and binning to data.
func (f *Frame) prepare(data series.Dataset) {
	cfg := f.Config
	f.Data = series.Dataset{Series: make([]series.Series, len(data.Series))}
	f.source = make([][]int, len(data.Series))
	for i, s := range data.Series {
		start, count := cfg.Zoom.VisibleRange(s.Len(), cfg.BasePoints)
		if start != 0 || count != s.Len() {
			s = s.Window(start, count)
		}
		var size int
		if f.Kind == KindBar && cfg.Bins > 0 && s.Len() > cfg.Bins {
			size = int(ceil(float64(s.Len()) / float64(cfg.Bins)))
			s = s.Bin(cfg.Bins, cfg.Aggregator)
		}
		if start != 0 || size != 0 {
			idx := make([]int, s.Len())
			for j := range idx {
				if size != 0 {
					idx[j] = start + j*size
				} else {
					idx[j] = start + j
				}
			}
			f.source[i] = idx
		}
		f.Data.Series[i] = s
	}
}

// sourceIndex maps point j of series i in f.Data to the caller's index.
func (f *Frame) sourceIndex(i, j int) int {
	if i < len(f.source) && f.source[i] != nil && j < len(f.source[i]) {
		return f.source[i][j]
	}
	return j
}

// dataIndex is the inverse of sourceIndex.
func (f *Frame) dataIndex(i, j int) (int, bool) {
	if i < 0 || i >= len(f.Data.Series) {
		return 0, false
	}
	if i < len(f.source) && f.source[i] != nil {
		for k, src := range f.source[i] {
			if src == j {
				return k, true
			}
		}
		return 0, false
	}
	if j < 0 || j >= f.Data.Series[i].Len() {
		return 0, false
	}
	return j, true
}

// Point returns the series and point a hit refers to.
func (f *Frame) Point(hit HitResult) (series.Series, series.Point, bool) {
	j, ok := f.dataIndex(hit.SeriesIndex, hit.PointIndex)
	if !ok {
		return series.Series{}, series.Point{}, false
	}
	s := f.Data.Series[hit.SeriesIndex]
	return s, s.Points[j], true
}

func (f *Frame) placeholder() []Primitive {
	cfg := f.Config
	return []Primitive{
		Text{
			Anchor: Pt((f.Plot.Min.X+f.Plot.Max.X)/2, (f.Plot.Min.Y+f.Plot.Max.Y)/2),
			Text:   cfg.EmptyText,
			HAlign: AlignMiddle,
			VAlign: AlignCenter,
			Color:  cfg.Foreground,
			Size:   cfg.FontSize,
			Role:   RolePlaceholder,
		},
	}
}

// buildY builds the y scale over [yMin, yMax] and its ticks.
func (f *Frame) buildY(yMin, yMax float64) error {
	y, err := scale.New(yMin, yMax, f.Plot.Max.Y, f.Plot.Min.Y)
	if err != nil {
		return fmt.Errorf("%w: y axis: %w", ErrEmptyData, err)
	}
	f.Y = y
	f.YTicks = y.TicksFunc(f.Config.targetTicks(f.Plot.Dy()), f.Config.FormatY)
	return nil
}

// yGrid emits one horizontal gridline across the plot per y tick.
func (f *Frame) yGrid() {
	for _, t := range f.YTicks {
		f.Primitives = append(f.Primitives, Line{
			Path:   []Point{Pt(f.Plot.Min.X, t.Pixel), Pt(f.Plot.Max.X, t.Pixel)},
			Stroke: Stroke{Width: 1, Color: f.Config.GridColor},
			Role:   RoleGrid,
			Series: -1,
		})
	}
}

// border outlines the plot rectangle.
func (f *Frame) border() {
	r := f.Plot
	f.Primitives = append(f.Primitives, Line{
		Path: []Point{
			r.Min, Pt(r.Max.X, r.Min.Y), r.Max, Pt(r.Min.X, r.Max.Y), r.Min,
		},
		Stroke: Stroke{Width: 1, Color: withAlpha(f.Config.Foreground, 80)},
		Role:   RoleAxis,
		Series: -1,
	})
}

// yLabels places the y tick labels to the left of the plot.
func (f *Frame) yLabels() {
	cfg := f.Config
	for _, t := range f.YTicks {
		f.Primitives = append(f.Primitives, Text{
			Anchor: Pt(f.Plot.Min.X-cfg.LabelGap, t.Pixel),
			Text:   t.Label,
			HAlign: AlignEnd,
			VAlign: AlignCenter,
			Color:  cfg.Foreground,
			Size:   cfg.FontSize,
			Role:   RoleLabel,
		})
	}
}

// xLabel places a label centred under the plot at x.
func (f *Frame) xLabel(x float64, label string) {
	cfg := f.Config
	f.Primitives = append(f.Primitives, Text{
		Anchor: Pt(x, f.Plot.Max.Y+cfg.LabelGap),
		Text:   label,
		HAlign: AlignMiddle,
		VAlign: AlignTop,
		Color:  cfg.Foreground,
		Size:   cfg.FontSize,
		Role:   RoleLabel,
	})
}

// Dash lengths of the average line.
const (
	dashOn  = 15
	dashOff = 5
)

// averageLine draws a dashed horizontal line at value v in colour c.
func (f *Frame) averageLine(seriesIdx int, v float64, stroke Stroke) {
	y := f.Y.ToPixel(v)
	if y < f.Plot.Min.Y || y > f.Plot.Max.Y {
		return
	}
	for x := f.Plot.Min.X; x < f.Plot.Max.X; x += dashOn + dashOff {
		end := min(x+dashOn, f.Plot.Max.X)
		f.Primitives = append(f.Primitives, Line{
			Path:   []Point{Pt(x, y), Pt(end, y)},
			Stroke: stroke,
			Role:   RoleAverage,
			Series: seriesIdx,
		})
	}
}
