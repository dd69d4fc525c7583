package chart

import (
	"image/color"
	"unicode/utf8"
)

var (
	highlightColor = color.NRGBA{A: 77}
	tooltipColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 150}
)

// Overlay returns the primitives that highlight hit: a guide line and enlarged
// marker for line charts, a shaded column for bar charts, and a tooltip for
// both. Hosts draw them after Primitives.
func (f *Frame) Overlay(hit HitResult) []Primitive {
	s, p, ok := f.Point(hit)
	if !ok {
		return nil
	}
	cfg := f.Config
	label := cfg.FormatTooltip(s, p)
	if f.Kind == KindBar {
		b, ok := f.bar(hit)
		if !ok {
			return nil
		}
		out := []Primitive{
			FilledRect{Bounds: b.Column, Fill: highlightColor, Role: RoleHighlight, Series: hit.SeriesIndex},
		}
		anchor := Pt((b.Bounds.Min.X+b.Bounds.Max.X)/2, b.Bounds.Min.Y)
		return append(out, f.tooltip(anchor, label)...)
	}

	j, _ := f.dataIndex(hit.SeriesIndex, hit.PointIndex)
	px := f.pixels[hit.SeriesIndex][j]
	half := cfg.PointSize
	out := []Primitive{
		Line{
			Path:   []Point{Pt(px.X, f.Plot.Min.Y), Pt(px.X, f.Plot.Max.Y)},
			Stroke: Stroke{Width: 1, Color: color.NRGBA{A: 255}},
			Role:   RoleHighlight,
			Series: hit.SeriesIndex,
		},
		FilledRect{
			Bounds: NewRect(Pt(px.X-half, px.Y-half), Pt(px.X+half, px.Y+half)),
			Fill:   cfg.ColorOf(hit.SeriesIndex, s),
			Role:   RoleHighlight,
			Series: hit.SeriesIndex,
		},
	}
	return append(out, f.tooltip(px, label)...)
}

// tooltip places label just above and to the right of anchor, moved as
// needed to stay inside the drawing area. Text is measured approximately, as
// the chart has no access to font metrics.
func (f *Frame) tooltip(anchor Point, label string) []Primitive {
	cfg := f.Config
	pad := cfg.LabelGap
	w := float64(utf8.RuneCountInString(label))*cfg.FontSize*0.6 + 2*pad
	h := cfg.FontSize*1.4 + 2*pad
	x := anchor.X + pad
	y := anchor.Y - pad - h
	x = clamp(x, 0, max(f.Geometry.Width-w, 0))
	y = clamp(y, 0, max(f.Geometry.Height-h, 0))
	box := Rect{Min: Pt(x, y), Max: Pt(x+w, y+h)}
	return []Primitive{
		FilledRect{Bounds: box, Fill: tooltipColor, Role: RoleTooltip, Series: -1},
		Text{
			Anchor: Pt(x+pad, y+h/2),
			Text:   label,
			HAlign: AlignStart,
			VAlign: AlignCenter,
			Color:  cfg.Foreground,
			Size:   cfg.FontSize,
			Role:   RoleTooltip,
		},
	}
}
