package config

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/graphkit/chart"
	"git.sr.ht/~whereswaldon/graphkit/series"
)

func writeTestStyle(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "style.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestStyle(t, `
kind: bar
snap_radius_px: 12
inter_bar_gap_fraction: 0.25
bar_mode: stacked
show_grid: false
show_average: true
zoom: 2
bins: 8
aggregator: max
palette:
  - "#ff0000"
  - "#00ff0080"
color_scheme: performance
empty_text: Nothing here
`)
	style, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	kind, err := style.ChartKind(chart.KindLine)
	if err != nil || kind != chart.KindBar {
		t.Errorf("expected bar chart, got %v (%v)", kind, err)
	}
	cfg, err := style.Apply(chart.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SnapRadiusPx != 12 {
		t.Errorf("expected snap radius 12, got %v", cfg.SnapRadiusPx)
	}
	if cfg.InterBarGapFraction != 0.25 {
		t.Errorf("expected gap 0.25, got %v", cfg.InterBarGapFraction)
	}
	if cfg.BarMode != chart.BarStacked {
		t.Errorf("expected stacked bars, got %v", cfg.BarMode)
	}
	if cfg.ShowGrid || !cfg.ShowAverage {
		t.Errorf("expected grid off and average on, got %v and %v", cfg.ShowGrid, cfg.ShowAverage)
	}
	if !cfg.ShowPoints {
		t.Errorf("expected unset show_points to keep its default")
	}
	if cfg.Zoom != 2 {
		t.Errorf("expected zoom 2, got %v", cfg.Zoom)
	}
	if cfg.Bins != 8 || cfg.Aggregator != series.Max {
		t.Errorf("expected 8 max bins, got %d %v", cfg.Bins, cfg.Aggregator)
	}
	expected := []color.NRGBA{{R: 0xff, A: 0xff}, {G: 0xff, A: 0x80}}
	if len(cfg.Palette) != 2 || cfg.Palette[0] != expected[0] || cfg.Palette[1] != expected[1] {
		t.Errorf("expected palette %v, got %v", expected, cfg.Palette)
	}
	if cfg.PointColor == nil {
		t.Errorf("expected a colour scheme")
	}
	if cfg.EmptyText != "Nothing here" {
		t.Errorf("expected empty text %q, got %q", "Nothing here", cfg.EmptyText)
	}
}

func TestParseZoomFull(t *testing.T) {
	style, err := Parse(strings.NewReader("zoom: full\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := chart.DefaultConfig()
	cfg.Zoom = 3
	cfg, err = style.Apply(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Zoom.IsFull() {
		t.Errorf("expected the full view, got %v", cfg.Zoom)
	}
}

func TestParseEmpty(t *testing.T) {
	style, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("expected an empty style, got %v", err)
	}
	cfg, err := style.Apply(chart.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SnapRadiusPx != chart.DefaultConfig().SnapRadiusPx {
		t.Errorf("expected defaults to survive an empty style")
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{name: "unknown key", input: "snap_raduis_px: 3\n"},
		{name: "bad zoom", input: "zoom: wide\n"},
		{name: "negative zoom", input: "zoom: -1\n"},
		{name: "bad colour", input: "palette: [\"#12\"]\n"},
		{name: "bad type", input: "bins: many\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.input)); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestApplyErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{name: "bar mode", input: "bar_mode: sideways\n"},
		{name: "aggregator", input: "aggregator: median\n"},
		{name: "scheme", input: "color_scheme: rainbow\n"},
		{name: "gap", input: "inter_bar_gap_fraction: 1.5\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			style, err := Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := style.Apply(chart.DefaultConfig()); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	radius := 7.5
	in := Style{
		Kind:         "line",
		SnapRadiusPx: &radius,
		Zoom:         &Zoom{Zoom: 0.5},
		Palette:      []Color{{R: 0x12, G: 0x34, B: 0x56, A: 0xff}},
	}
	var buf bytes.Buffer
	if err := in.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "#123456") {
		t.Errorf("expected the colour in hex, got:\n%s", buf.String())
	}
	out, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != "line" || out.SnapRadiusPx == nil || *out.SnapRadiusPx != radius {
		t.Errorf("expected kind and radius to survive, got %+v", out)
	}
	if out.Zoom == nil || out.Zoom.Zoom != 0.5 {
		t.Errorf("expected zoom 0.5, got %+v", out.Zoom)
	}
	if len(out.Palette) != 1 || out.Palette[0] != in.Palette[0] {
		t.Errorf("expected palette to survive, got %v", out.Palette)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("2b7fa8")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.NRGBA{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff}) {
		t.Errorf("expected #2b7fa8, got %v", c)
	}
}
