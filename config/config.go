// Package config reads chart styles from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/graphkit/chart"
	"git.sr.ht/~whereswaldon/graphkit/series"
	"gopkg.in/yaml.v3"
)

// Style is the contents of a style file. Unset keys leave the corresponding
// chart setting alone.
type Style struct {
	Kind                string   `yaml:"kind,omitempty"`
	TickTargetCount     *int     `yaml:"tick_target_count,omitempty"`
	TickSpacingPx       *float64 `yaml:"tick_spacing_px,omitempty"`
	SnapRadiusPx        *float64 `yaml:"snap_radius_px,omitempty"`
	InterBarGapFraction *float64 `yaml:"inter_bar_gap_fraction,omitempty"`
	ZeroBaseline        *bool    `yaml:"zero_baseline,omitempty"`
	BarMode             string   `yaml:"bar_mode,omitempty"`

	ShowGrid    *bool `yaml:"show_grid,omitempty"`
	ShowPoints  *bool `yaml:"show_points,omitempty"`
	ShowAverage *bool `yaml:"show_average,omitempty"`
	ShowLabels  *bool `yaml:"show_labels,omitempty"`

	LineWidth *float64 `yaml:"line_width,omitempty"`
	PointSize *float64 `yaml:"point_size,omitempty"`
	FontSize  *float64 `yaml:"font_size,omitempty"`

	Zoom       *Zoom   `yaml:"zoom,omitempty"`
	BasePoints *int    `yaml:"base_points,omitempty"`
	Bins       *int    `yaml:"bins,omitempty"`
	Aggregator string  `yaml:"aggregator,omitempty"`
	Palette    []Color `yaml:"palette,omitempty"`
	Foreground *Color  `yaml:"foreground,omitempty"`
	Background *Color  `yaml:"background,omitempty"`
	// ColorScheme names how markers and bars are coloured: series,
	// performance, gradient or traffic-light.
	ColorScheme string `yaml:"color_scheme,omitempty"`
	EmptyText   string `yaml:"empty_text,omitempty"`
}

// Zoom is a zoom factor, or "full" for the full view.
type Zoom struct {
	chart.Zoom
}

func (z *Zoom) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: zoom must be a number or \"full\"", value.Line)
	}
	if strings.EqualFold(value.Value, "full") {
		z.Zoom = chart.ZoomFull
		return nil
	}
	f, err := strconv.ParseFloat(value.Value, 32)
	if err != nil || !(f > 0) {
		return fmt.Errorf("line %d: invalid zoom %q", value.Line, value.Value)
	}
	z.Zoom = chart.NewZoom(float32(f))
	return nil
}

func (z Zoom) MarshalYAML() (interface{}, error) {
	if z.IsFull() {
		return "full", nil
	}
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!float",
		Value: strconv.FormatFloat(float64(z.Zoom), 'g', -1, 32),
	}, nil
}

// Color is a colour written as #rrggbb or #rrggbbaa.
type Color color.NRGBA

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = Color(parsed)
	return nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}

// ParseHexColor parses #rrggbb or #rrggbbaa, with or without the leading #.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Parse decodes a style. Unknown keys are rejected so that typos do not go
// unnoticed. An empty document is an empty style.
func Parse(r io.Reader) (Style, error) {
	var s Style
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Style{}, fmt.Errorf("parsing style: %w", err)
	}
	return s, nil
}

// Load reads the style file at path.
func Load(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Style{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Encode writes s as YAML.
func (s Style) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// ChartKind returns the chart kind the style asks for, or fallback.
func (s Style) ChartKind(fallback chart.Kind) (chart.Kind, error) {
	if s.Kind == "" {
		return fallback, nil
	}
	return chart.ParseKind(s.Kind)
}

// Apply returns cfg with every setting of the style applied to it.
func (s Style) Apply(cfg chart.Config) (chart.Config, error) {
	set(&cfg.TickTargetCount, s.TickTargetCount)
	set(&cfg.TickSpacingPx, s.TickSpacingPx)
	set(&cfg.SnapRadiusPx, s.SnapRadiusPx)
	set(&cfg.InterBarGapFraction, s.InterBarGapFraction)
	set(&cfg.ZeroBaseline, s.ZeroBaseline)
	set(&cfg.ShowGrid, s.ShowGrid)
	set(&cfg.ShowPoints, s.ShowPoints)
	set(&cfg.ShowAverage, s.ShowAverage)
	set(&cfg.ShowLabels, s.ShowLabels)
	set(&cfg.LineWidth, s.LineWidth)
	set(&cfg.PointSize, s.PointSize)
	set(&cfg.FontSize, s.FontSize)
	set(&cfg.BasePoints, s.BasePoints)
	set(&cfg.Bins, s.Bins)
	if s.InterBarGapFraction != nil && (*s.InterBarGapFraction < 0 || *s.InterBarGapFraction >= 1) {
		return cfg, fmt.Errorf("inter_bar_gap_fraction must be in [0, 1), got %v", *s.InterBarGapFraction)
	}
	if s.BarMode != "" {
		mode, err := chart.ParseBarMode(s.BarMode)
		if err != nil {
			return cfg, fmt.Errorf("bar_mode: %w", err)
		}
		cfg.BarMode = mode
	}
	if s.Zoom != nil {
		cfg.Zoom = s.Zoom.Zoom
	}
	if s.Aggregator != "" {
		agg, ok := series.ParseAggregator(s.Aggregator)
		if !ok {
			return cfg, fmt.Errorf("aggregator: unknown aggregator %q", s.Aggregator)
		}
		cfg.Aggregator = agg
	}
	if len(s.Palette) > 0 {
		cfg.Palette = make([]color.NRGBA, len(s.Palette))
		for i, c := range s.Palette {
			cfg.Palette[i] = color.NRGBA(c)
		}
	}
	if s.Foreground != nil {
		cfg.Foreground = color.NRGBA(*s.Foreground)
	}
	if s.Background != nil {
		cfg.Background = color.NRGBA(*s.Background)
	}
	if s.ColorScheme != "" {
		fn, ok := chart.ParseColorScheme(s.ColorScheme)
		if !ok {
			return cfg, fmt.Errorf("color_scheme: unknown scheme %q", s.ColorScheme)
		}
		cfg.PointColor = fn
	}
	if s.EmptyText != "" {
		cfg.EmptyText = s.EmptyText
	}
	return cfg, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
