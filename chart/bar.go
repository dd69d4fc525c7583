package chart

import (
	"fmt"
	"math"

	"git.sr.ht/~whereswaldon/graphkit/scale"
	"git.sr.ht/~whereswaldon/graphkit/series"
)

// barValue is the value series s holds for one category.
type barValue struct {
	point int
	value float64
	ok    bool
}

// barTable returns, for each series and category, the value to draw.
func (f *Frame) barTable() [][]barValue {
	table := make([][]barValue, len(f.Data.Series))
	for i, s := range f.Data.Series {
		row := make([]barValue, len(f.Categories))
		for c, name := range f.Categories {
			j, ok := s.Lookup(name)
			if !ok {
				continue
			}
			v := s.Points[j].Y
			row[c] = barValue{point: j, value: v, ok: !math.IsNaN(v) && !math.IsInf(v, 0)}
		}
		table[i] = row
	}
	return table
}

// barRange returns the extent of the bar tops. In stacked mode the extent of
// the positive and negative running totals is used instead.
func barRange(table [][]barValue, categories int, mode BarMode) (lo, hi float64, ok bool) {
	if mode == BarStacked {
		for c := 0; c < categories; c++ {
			var pos, neg float64
			seen := false
			for _, row := range table {
				if !row[c].ok {
					continue
				}
				seen = true
				if row[c].value >= 0 {
					pos += row[c].value
				} else {
					neg += row[c].value
				}
			}
			if !seen {
				continue
			}
			if !ok {
				lo, hi, ok = neg, pos, true
				continue
			}
			lo = min(lo, neg)
			hi = max(hi, pos)
		}
		// Running totals of huge values can overflow.
		return clamp(lo, -math.MaxFloat64, math.MaxFloat64), clamp(hi, -math.MaxFloat64, math.MaxFloat64), ok
	}
	for _, row := range table {
		for _, v := range row {
			if !v.ok {
				continue
			}
			if !ok {
				lo, hi, ok = v.value, v.value, true
				continue
			}
			lo = min(lo, v.value)
			hi = max(hi, v.value)
		}
	}
	return lo, hi, ok
}

func (f *Frame) layoutBar() error {
	cfg := f.Config
	f.Categories = f.Data.Categories()
	table := f.barTable()
	lo, hi, ok := barRange(table, len(f.Categories), cfg.BarMode)
	if !ok {
		return fmt.Errorf("%w: %w", ErrEmptyData, series.ErrEmpty)
	}
	// Bars grow from zero, so zero is always on the axis.
	dom := series.Domain{XMin: 0, XMax: float64(len(f.Categories)), YMin: lo, YMax: hi}.IncludeY(0).Padded()
	if err := f.buildY(dom.YMin, dom.YMax); err != nil {
		return err
	}
	f.Band = scale.NewBand(f.Plot.Min.X, f.Plot.Max.X, len(f.Categories))

	f.yGrid()
	if cfg.ShowGrid {
		f.border()
	}
	f.placeBars(table)
	zero := f.Y.ToPixel(0)
	f.Primitives = append(f.Primitives, Line{
		Path:   []Point{Pt(f.Plot.Min.X, zero), Pt(f.Plot.Max.X, zero)},
		Stroke: Stroke{Width: 1, Color: withAlpha(cfg.Foreground, 140)},
		Role:   RoleAxis,
		Series: -1,
	})
	if cfg.ShowAverage {
		for i, s := range f.Data.Series {
			if mean, ok := s.Mean(); ok {
				f.averageLine(i, mean, Stroke{Width: 2, Color: withAlpha(cfg.ColorOf(i, s), 200)})
			}
		}
	}
	if cfg.ShowLabels {
		f.yLabels()
		// Category names tend to be short, so allow them closer together
		// than numeric ticks.
		target := scale.TargetCount(f.Plot.Dx(), cfg.TickSpacingPx/2)
		stride := max(1, int(ceil(float64(len(f.Categories))/float64(target))))
		for c := 0; c < len(f.Categories); c += stride {
			f.xLabel(f.Band.Center(c), f.Categories[c])
			f.XTicks = append(f.XTicks, scale.Tick{Value: float64(c), Pixel: f.Band.Center(c), Label: f.Categories[c]})
		}
	}
	return nil
}

// placeBars computes and emits the rectangle of every bar.
func (f *Frame) placeBars(table [][]barValue) {
	cfg := f.Config
	slot := f.Band.SlotWidth()
	width := slot * (1 - cfg.InterBarGapFraction)
	inset := (slot - width) / 2
	groups := len(f.Data.Series)
	if cfg.BarMode == BarStacked {
		groups = 1
	}
	sub := width / float64(max(groups, 1))

	f.slots = make([][]int, len(f.Categories))
	means := make([]float64, len(f.Data.Series))
	for i, s := range f.Data.Series {
		means[i], _ = s.Mean()
	}
	for c := range f.Categories {
		slotStart := f.Band.SlotStart(c)
		var posBase, negBase float64
		for i, row := range table {
			v := row[c]
			if !v.ok {
				continue
			}
			column := i
			if cfg.BarMode == BarStacked {
				column = 0
			}
			x0 := slotStart + inset + float64(column)*sub
			x1 := x0 + sub
			base := 0.0
			if cfg.BarMode == BarStacked {
				if v.value >= 0 {
					base = posBase
					posBase += v.value
				} else {
					base = negBase
					negBase += v.value
				}
			}
			// The first and last columns reach out to the slot edges.
			colLeft, colRight := x0, x1
			if column == 0 {
				colLeft = slotStart
			}
			if column == groups-1 {
				colRight = slotStart + slot
			}
			bar := Bar{
				Series:   i,
				Point:    f.sourceIndex(i, v.point),
				Category: c,
				Bounds:   NewRect(Pt(x0, f.Y.ToPixel(base)), Pt(x1, f.Y.ToPixel(base+v.value))),
				Column:   Rect{Min: Pt(colLeft, f.Plot.Min.Y), Max: Pt(colRight, f.Plot.Max.Y)},
			}
			f.slots[c] = append(f.slots[c], len(f.bars))
			f.bars = append(f.bars, bar)

			s := f.Data.Series[i]
			fill := cfg.ColorOf(i, s)
			if cfg.PointColor != nil {
				fill = cfg.PointColor(ColorParams{
					Series:  i,
					Index:   c,
					Value:   v.value,
					Average: means[i],
					Base:    fill,
				})
			}
			f.Primitives = append(f.Primitives, FilledRect{
				Bounds: bar.Bounds,
				Fill:   fill,
				Role:   RoleBar,
				Series: i,
			})
		}
	}
}
