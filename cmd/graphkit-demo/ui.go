package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/graphkit/backend"
	"git.sr.ht/~whereswaldon/graphkit/chart"
	"git.sr.ht/~whereswaldon/graphkit/giochart"
	"git.sr.ht/~whereswaldon/graphkit/series"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var zoomInIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionZoomIn)
	return icon
}()

var zoomOutIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionZoomOut)
	return icon
}()

var errorColor = color.NRGBA{R: 150, A: 255}

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer
	th   *material.Theme

	chart  *giochart.Chart
	legend giochart.Legend

	tab         widget.Enum
	stacked     widget.Bool
	explorerBtn widget.Clickable
	zoomInBtn   widget.Clickable
	zoomOutBtn  widget.Clickable

	dataStream *stream.Stream[backend.Update]
	data       backend.Update
	hovered    string
	clicked    string
	err        string
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, kind chart.Kind, cfg chart.Config) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:    ws,
		th:    th,
		expl:  expl,
		chart: giochart.NewChart(kind, cfg),
		tab:   widget.Enum{Value: kind.String()},
	}
	ui.stacked.Value = cfg.BarMode == chart.BarStacked
	return ui
}

// Watch shows the contents of the file at path, following it as it grows.
func (ui *UI) Watch(path string) {
	ds := ui.ws.Bundle.Datasource
	ui.dataStream = stream.New(ui.ws.Controller, func(ctx context.Context) <-chan backend.Update {
		return ds.Watch(ctx, path)
	})
}

// open asks the user for a file and shows its contents.
func (ui *UI) open() {
	ds := ui.ws.Bundle.Datasource
	expl := ui.expl
	ui.dataStream = stream.New(ui.ws.Controller, func(ctx context.Context) <-chan backend.Update {
		out := make(chan backend.Update)
		go func() {
			defer close(out)
			f, err := expl.ChooseFile(".csv")
			if err != nil {
				select {
				case out <- backend.Update{Err: err}:
				case <-ctx.Done():
				}
				return
			}
			for update := range ds.Stream(ctx, f) {
				select {
				case out <- update:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	})
}

// Update the state of the UI. Interactions of the chart are drained here so
// that the labels describing them are current before anything is drawn.
func (ui *UI) Update(gtx C) {
	if ui.dataStream != nil {
		if update, ok := ui.dataStream.ReadNew(gtx); ok {
			switch {
			case errors.Is(update.Err, explorer.ErrUserDecline):
				ui.dataStream = nil
			case update.Err != nil:
				log.Printf("failed reading data: %v", update.Err)
				ui.err = update.Err.Error()
			default:
				ui.data = update
				ui.err = ""
			}
		}
	}
	ui.tab.Update(gtx)
	if kind, err := chart.ParseKind(ui.tab.Value); err == nil {
		ui.chart.Kind = kind
	}
	ui.stacked.Update(gtx)
	if ui.stacked.Value {
		ui.chart.Config.BarMode = chart.BarStacked
	} else {
		ui.chart.Config.BarMode = chart.BarGrouped
	}
	if ui.explorerBtn.Clicked(gtx) {
		ui.open()
	}
	if ui.zoomInBtn.Clicked(gtx) {
		ui.chart.ZoomIn()
	}
	if ui.zoomOutBtn.Clicked(gtx) {
		ui.chart.ZoomOut()
	}
	for {
		ev, ok := ui.chart.Update(gtx)
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case giochart.Hovered:
			ui.hovered = describe(ev.Hit, ev.Series, ev.Point)
		case giochart.Unhovered:
			ui.hovered = ""
		case giochart.Clicked:
			ui.clicked = describe(ev.Hit, ev.Series, ev.Point)
			log.Printf("clicked %s", ui.clicked)
		case giochart.ZoomChanged:
			log.Printf("zoom %s", zoomLabel(ev.Zoom))
		}
	}
}

func describe(hit chart.HitResult, s series.Series, p series.Point) string {
	return fmt.Sprintf("%s #%d: %s = %.2f", s.Name, hit.PointIndex, p.Category(), p.Y)
}

func zoomLabel(z chart.Zoom) string {
	if z.IsFull() {
		return "full"
	}
	return fmt.Sprintf("%.1fx", float32(z))
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

func (ui *UI) iconButton(gtx C, btn *widget.Clickable, icon *widget.Icon) D {
	return material.Clickable(gtx, btn, func(gtx C) D {
		return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			gtx.Constraints.Max = image.Pt(gtx.Dp(24), gtx.Dp(24))
			return icon.Layout(gtx, ui.th.Fg)
		})
	})
}

func (ui *UI) layoutToolbar(gtx C) D {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, Tab(ui.th, &ui.tab, chart.KindLine.String(), "Line").Layout),
		layout.Flexed(1, Tab(ui.th, &ui.tab, chart.KindBar.String(), "Bar").Layout),
		layout.Rigid(func(gtx C) D {
			if ui.chart.Kind != chart.KindBar {
				return D{}
			}
			return material.CheckBox(ui.th, &ui.stacked, "Stacked").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			return ui.iconButton(gtx, &ui.zoomOutBtn, zoomOutIcon)
		}),
		layout.Rigid(material.Body2(ui.th, zoomLabel(ui.chart.Config.Zoom)).Layout),
		layout.Rigid(func(gtx C) D {
			return ui.iconButton(gtx, &ui.zoomInBtn, zoomInIcon)
		}),
		layout.Rigid(func(gtx C) D {
			return layout.UniformInset(2).Layout(gtx, material.Button(ui.th, &ui.explorerBtn, "Open CSV").Layout)
		}),
	)
}

func (ui *UI) layoutMainArea(gtx C) D {
	data := ui.data.Data
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Rigid(func(gtx C) D {
			if len(ui.err) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.err)
			l.Color = errorColor
			return l.Layout(gtx)
		}),
		layout.Flexed(3, func(gtx C) D {
			return ui.chart.Layout(gtx, ui.th, ui.legend.Filter(data))
		}),
		layout.Rigid(func(gtx C) D {
			status := ui.hovered
			if status == "" {
				status = ui.clicked
			}
			return layout.UniformInset(4).Layout(gtx, material.Body2(ui.th, status).Layout)
		}),
		layout.Flexed(1, func(gtx C) D {
			return ui.legend.Layout(gtx, ui.th, data, ui.chart.Config)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, ui.chart.Config.EmptyText)
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.explorerBtn, "Open CSV").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			l := material.Body2(ui.th, ui.err)
			l.Color = errorColor
			return l.Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.dataStream != nil || len(ui.data.Data.Series) > 0 {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
