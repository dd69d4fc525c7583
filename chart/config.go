package chart

import (
	"image/color"
	"strconv"

	"git.sr.ht/~whereswaldon/graphkit/scale"
	"git.sr.ht/~whereswaldon/graphkit/series"
)

// Config is the visual configuration of a chart. Start from DefaultConfig;
// zero numeric fields fall back to their defaults when a frame is rendered.
type Config struct {
	// TickTargetCount is the number of ticks wanted on each axis. When zero
	// it is derived from the axis length and TickSpacingPx.
	TickTargetCount int
	TickSpacingPx   float64
	// SnapRadiusPx is how far from a datum the pointer may be for the datum
	// to count as hovered.
	SnapRadiusPx float64
	// InterBarGapFraction is the share of each category slot left empty
	// between neighbouring bars.
	InterBarGapFraction float64
	// ZeroBaseline forces the y axis of line charts to include zero. Bar
	// charts always include zero.
	ZeroBaseline bool
	BarMode      BarMode

	ShowGrid    bool
	ShowPoints  bool
	ShowAverage bool
	ShowLabels  bool

	LineWidth float64
	PointSize float64
	FontSize  float64
	// LabelGap is the distance between the plot edge and axis labels.
	LabelGap float64

	Palette    []color.NRGBA
	Foreground color.NRGBA
	GridColor  color.NRGBA
	Background color.NRGBA
	// PointColor colours markers and bars; nil uses the series colour.
	PointColor ColorFunc

	// Zoom and BasePoints select the trailing window of points shown.
	Zoom       Zoom
	BasePoints int
	// Bins, when positive, aggregates each bar series into at most Bins
	// bars using Aggregator.
	Bins       int
	Aggregator series.Aggregator

	FormatX       scale.Formatter
	FormatY       scale.Formatter
	FormatTooltip func(s series.Series, p series.Point) string
	// EmptyText is shown when there is no data to plot.
	EmptyText string
}

// DefaultConfig returns the configuration charts use unless told otherwise.
func DefaultConfig() Config {
	return Config{
		TickSpacingPx:       scale.DefaultTickSpacing,
		SnapRadiusPx:        20,
		InterBarGapFraction: 0.1,
		ShowGrid:            true,
		ShowPoints:          true,
		ShowLabels:          true,
		LineWidth:           2,
		PointSize:           6,
		FontSize:            12,
		LabelGap:            6,
		Palette:             DefaultPalette,
		Foreground:          color.NRGBA{A: 255},
		GridColor:           color.NRGBA{A: 50},
		Background:          color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Zoom:                ZoomFull,
		BasePoints:          50,
		EmptyText:           "No data yet.",
	}
}

// normalized fills in defaults for fields that have no meaningful zero value.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.TickSpacingPx <= 0 {
		c.TickSpacingPx = d.TickSpacingPx
	}
	if c.SnapRadiusPx < 0 {
		c.SnapRadiusPx = 0
	}
	c.InterBarGapFraction = clamp(c.InterBarGapFraction, 0, 0.95)
	if c.LineWidth <= 0 {
		c.LineWidth = d.LineWidth
	}
	if c.PointSize <= 0 {
		c.PointSize = d.PointSize
	}
	if c.FontSize <= 0 {
		c.FontSize = d.FontSize
	}
	if c.LabelGap < 0 {
		c.LabelGap = 0
	}
	if len(c.Palette) == 0 {
		c.Palette = d.Palette
	}
	if c.Foreground == (color.NRGBA{}) {
		c.Foreground = d.Foreground
	}
	if c.GridColor == (color.NRGBA{}) {
		c.GridColor = d.GridColor
	}
	if c.FormatX == nil {
		c.FormatX = scale.FormatTick
	}
	if c.FormatY == nil {
		c.FormatY = scale.FormatTick
	}
	if c.FormatTooltip == nil {
		c.FormatTooltip = defaultTooltip
	}
	if c.EmptyText == "" {
		c.EmptyText = d.EmptyText
	}
	return c
}

func defaultTooltip(s series.Series, p series.Point) string {
	v := strconv.FormatFloat(p.Y, 'f', 2, 64)
	if s.Name == "" {
		return v
	}
	return s.Name + ": " + v
}

// targetTicks returns the tick count wanted along an axis of length px.
func (c Config) targetTicks(px float64) int {
	if c.TickTargetCount > 0 {
		return c.TickTargetCount
	}
	return scale.TargetCount(px, c.TickSpacingPx)
}
