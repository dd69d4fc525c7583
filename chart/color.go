package chart

import (
	"image/color"

	"git.sr.ht/~whereswaldon/graphkit/series"
)

// DefaultPalette holds the colours handed out to series that do not choose
// their own.
var DefaultPalette = []color.NRGBA{
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff}, //#2b7fa8
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff}, //#a4633a
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff}, //#51854d
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff}, //#726cae
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff}, //#857625
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff}, //#975f91
	{R: 0xff, A: 0xff},
	{G: 0xff, A: 0xff},
	{B: 0xff, A: 0xff},
	{R: 0xf0, G: 0xf0, A: 0xff},
}

var (
	colorGood    = color.NRGBA{R: 51, G: 204, B: 77, A: 255}
	colorPoor    = color.NRGBA{R: 230, G: 77, B: 77, A: 255}
	colorAverage = color.NRGBA{R: 255, G: 179, B: 51, A: 255}
	colorWarning = color.NRGBA{R: 255, G: 230, A: 255}
)

// ColorParams describes the datum a ColorFunc is asked to colour.
type ColorParams struct {
	// Series and Index locate the datum within the frame's dataset.
	Series, Index int
	Value         float64
	// Average is the mean of the datum's series.
	Average float64
	// Base is the colour of the datum's series.
	Base color.NRGBA
}

// ColorFunc picks the colour of a single point marker or bar.
type ColorFunc func(ColorParams) color.NRGBA

// SingleColor paints every datum with c.
func SingleColor(c color.NRGBA) ColorFunc {
	return func(ColorParams) color.NRGBA { return c }
}

// SeriesColor paints every datum with the colour of its series.
func SeriesColor(p ColorParams) color.NRGBA {
	return p.Base
}

// PerformanceColors treats low values as good: green below 70% of the series
// average, red above 130%, orange in between.
func PerformanceColors(p ColorParams) color.NRGBA {
	switch {
	case p.Value < p.Average*0.7:
		return colorGood
	case p.Value > p.Average*1.3:
		return colorPoor
	default:
		return colorAverage
	}
}

// GradientColors blends from green through yellow to red as the value goes
// from half to twice the series average.
func GradientColors(p ColorParams) color.NRGBA {
	ratio := 1.0
	if p.Average != 0 {
		ratio = clamp(p.Value/p.Average, 0.5, 2)
	}
	if ratio <= 1 {
		t := (ratio - 0.5) / 0.5
		return color.NRGBA{R: uint8(51 + t*204), G: 204, B: 51, A: 255}
	}
	t := ratio - 1
	return color.NRGBA{R: 255, G: uint8(204 - t*153), B: 51, A: 255}
}

// TrafficLightColors colours by position: green for the first six data,
// yellow for the seventh, red afterwards.
func TrafficLightColors(p ColorParams) color.NRGBA {
	switch {
	case p.Index < 6:
		return colorGood
	case p.Index == 6:
		return colorWarning
	default:
		return colorPoor
	}
}

// ParseColorScheme returns the ColorFunc named s.
func ParseColorScheme(s string) (ColorFunc, bool) {
	switch s {
	case "", "series":
		return SeriesColor, true
	case "performance":
		return PerformanceColors, true
	case "gradient":
		return GradientColors, true
	case "traffic-light":
		return TrafficLightColors, true
	}
	return nil, false
}

// withAlpha returns c with its alpha replaced.
func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// ColorOf returns the colour series s is drawn with at index i.
func (c Config) ColorOf(i int, s series.Series) color.NRGBA {
	if s.Color != (color.NRGBA{}) {
		return s.Color
	}
	if len(c.Palette) == 0 {
		return DefaultPalette[i%len(DefaultPalette)]
	}
	return c.Palette[i%len(c.Palette)]
}
