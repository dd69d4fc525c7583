// Package giochart shows charts in gio windows. It paints the primitives of a
// chart.Frame with gio ops and turns pointer input into hover, click and zoom
// interactions by hit-testing that same frame.
package giochart

import (
	"image"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"git.sr.ht/~whereswaldon/graphkit/chart"
	"git.sr.ht/~whereswaldon/graphkit/series"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// Interaction is something the user did to a chart. The concrete types are
// Hovered, Unhovered, Clicked and ZoomChanged.
type Interaction interface {
	isInteraction()
}

// Hovered means the pointer moved onto a datum.
type Hovered struct {
	Hit    chart.HitResult
	Series series.Series
	Point  series.Point
}

// Unhovered means the pointer left the datum it was over.
type Unhovered struct{}

// Clicked means the primary button was pressed over a datum.
type Clicked struct {
	Hit    chart.HitResult
	Series series.Series
	Point  series.Point
}

// ZoomChanged means scrolling changed the zoom factor.
type ZoomChanged struct {
	Zoom chart.Zoom
}

func (Hovered) isInteraction()     {}
func (Unhovered) isInteraction()   {}
func (Clicked) isInteraction()     {}
func (ZoomChanged) isInteraction() {}

// DefaultMargins leave room for the axis labels of a chart.
var DefaultMargins = layout.Inset{Top: 12, Right: 16, Bottom: 24, Left: 48}

// Chart is a chart widget. Sizes within Config are in Dp.
type Chart struct {
	Kind    chart.Kind
	Config  chart.Config
	Margins layout.Inset

	frame   chart.Frame
	zoom    gesture.Scroll
	pending []Interaction
	// hover gesture state
	pos       f32.Point
	isHovered bool
	hit       chart.HitResult
	hasHit    bool
}

func NewChart(kind chart.Kind, cfg chart.Config) *Chart {
	return &Chart{
		Kind:    kind,
		Config:  cfg,
		Margins: DefaultMargins,
	}
}

// Frame returns the frame drawn by the last call to Layout.
func (c *Chart) Frame() *chart.Frame {
	return &c.frame
}

// Hovered returns the datum under the pointer, if any.
func (c *Chart) Hovered() (chart.HitResult, bool) {
	return c.hit, c.hasHit
}

// ZoomIn zooms in one step.
func (c *Chart) ZoomIn() {
	c.setZoom(c.Config.Zoom.Increment(chart.DefaultZoomMax))
}

// ZoomOut zooms out one step.
func (c *Chart) ZoomOut() {
	c.setZoom(c.Config.Zoom.Decrement(chart.DefaultZoomMin))
}

func (c *Chart) setZoom(z chart.Zoom) {
	if z == c.Config.Zoom {
		return
	}
	c.Config.Zoom = z
	c.pending = append(c.pending, ZoomChanged{Zoom: z})
}

// Update processes input and returns the next interaction. Hit-testing uses
// the frame from the previous Layout, which is what is on screen.
func (c *Chart) Update(gtx C) (Interaction, bool) {
	c.poll(gtx)
	if len(c.pending) == 0 {
		return nil, false
	}
	next := c.pending[0]
	c.pending = c.pending[:copy(c.pending, c.pending[1:])]
	return next, true
}

func (c *Chart) poll(gtx C) {
	dist := c.zoom.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6))
	if dist < 0 {
		c.ZoomIn()
	} else if dist > 0 {
		c.ZoomOut()
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move | pointer.Press,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Enter, pointer.Move:
			c.isHovered = true
			c.pos = e.Position
			c.hover()
		case pointer.Leave, pointer.Cancel:
			c.isHovered = false
			if c.hasHit {
				c.pending = append(c.pending, Unhovered{})
			}
			c.hasHit = false
		case pointer.Press:
			if e.Buttons != pointer.ButtonPrimary {
				continue
			}
			c.pos = e.Position
			if hit, ok := c.frame.HitTest(toPoint(c.pos), -1); ok {
				s, p, _ := c.frame.Point(hit)
				c.pending = append(c.pending, Clicked{Hit: hit, Series: s, Point: p})
			}
		}
	}
}

// hover hit-tests the pointer position and records any change of datum.
func (c *Chart) hover() {
	hit, ok := c.frame.HitTest(toPoint(c.pos), -1)
	switch {
	case ok && (!c.hasHit || hit.SeriesIndex != c.hit.SeriesIndex || hit.PointIndex != c.hit.PointIndex):
		s, p, _ := c.frame.Point(hit)
		c.pending = append(c.pending, Hovered{Hit: hit, Series: s, Point: p})
	case !ok && c.hasHit:
		c.pending = append(c.pending, Unhovered{})
	}
	c.hit, c.hasHit = hit, ok
}

// Layout draws data filling the constraints.
func (c *Chart) Layout(gtx C, th *material.Theme, data series.Dataset) D {
	for {
		if _, ok := c.Update(gtx); !ok {
			break
		}
	}
	size := gtx.Constraints.Max
	geometry := chart.Geometry{
		Width:  float64(size.X),
		Height: float64(size.Y),
		Margins: chart.Insets{
			Top:    float64(gtx.Dp(c.Margins.Top)),
			Right:  float64(gtx.Dp(c.Margins.Right)),
			Bottom: float64(gtx.Dp(c.Margins.Bottom)),
			Left:   float64(gtx.Dp(c.Margins.Left)),
		},
	}
	c.frame = chart.Render(c.Kind, data, geometry, scaled(c.Config, gtx.Metric))

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	c.zoom.Add(gtx.Ops)
	event.Op(gtx.Ops, c)
	if bg := c.frame.Config.Background; bg.A != 0 {
		paint.FillShape(gtx.Ops, bg, clip.Rect{Max: size}.Op())
	}
	paintPrimitives(gtx, th, c.frame.Primitives)
	if c.isHovered {
		// The data may have changed under a stationary pointer.
		if hit, ok := c.frame.HitTest(toPoint(c.pos), -1); ok {
			paintPrimitives(gtx, th, c.frame.Overlay(hit))
		}
	}
	return D{Size: size}
}

// scaled converts the Dp sizes of cfg to pixels.
func scaled(cfg chart.Config, m unit.Metric) chart.Config {
	px := func(v float64) float64 {
		return v * float64(m.PxPerDp)
	}
	d := chart.DefaultConfig()
	if cfg.TickSpacingPx <= 0 {
		cfg.TickSpacingPx = d.TickSpacingPx
	}
	if cfg.LineWidth <= 0 {
		cfg.LineWidth = d.LineWidth
	}
	if cfg.PointSize <= 0 {
		cfg.PointSize = d.PointSize
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = d.FontSize
	}
	cfg.TickSpacingPx = px(cfg.TickSpacingPx)
	cfg.SnapRadiusPx = px(cfg.SnapRadiusPx)
	cfg.LineWidth = px(cfg.LineWidth)
	cfg.PointSize = px(cfg.PointSize)
	cfg.LabelGap = px(cfg.LabelGap)
	cfg.FontSize = cfg.FontSize * float64(m.PxPerSp)
	return cfg
}

func toPoint(p f32.Point) chart.Point {
	return chart.Pt(float64(p.X), float64(p.Y))
}
