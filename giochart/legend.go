package giochart

import (
	"image"
	"strconv"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"

	"git.sr.ht/~whereswaldon/graphkit/chart"
	"git.sr.ht/~whereswaldon/graphkit/series"
)

// Legend is a table of the series of a dataset that lets the user hide
// series from the chart.
type Legend struct {
	Enabled  []*widget.Bool
	keyTable component.GridState
}

func (l *Legend) sync(n int) {
	for len(l.Enabled) < n {
		l.Enabled = append(l.Enabled, &widget.Bool{Value: true})
	}
}

func (l *Legend) enabled(i int) bool {
	return i >= len(l.Enabled) || l.Enabled[i].Value
}

// Filter returns data with the points of every hidden series removed. Series
// keep their positions, and so their colours.
func (l *Legend) Filter(data series.Dataset) series.Dataset {
	out := series.Dataset{Series: make([]series.Series, len(data.Series))}
	for i, s := range data.Series {
		if !l.enabled(i) {
			s.Points = nil
		}
		out.Series[i] = s
	}
	return out
}

// Totals returns the number of points and the sum of the values of the
// enabled series of data.
func (l *Legend) Totals(data series.Dataset) (points int, sum float64) {
	for i, s := range data.Series {
		if l.enabled(i) {
			points += s.Len()
			sum += s.Sum()
		}
	}
	return points, sum
}

func formatStat(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Layout draws the table, colouring each series as a chart drawn with cfg
// would.
func (l *Legend) Layout(gtx C, th *material.Theme, data series.Dataset, cfg chart.Config) D {
	l.sync(len(data.Series))
	table := component.Table(th, &l.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	statColWidth := gtx.Dp(90)
	nameColWidth := max(gtx.Constraints.Max.X-colorColWidth-3*statColWidth-gtx.Dp(table.VScrollbarStyle.Width()), 0)
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		seriesNameCol
		pointsCol
		meanCol
		sumCol
		numCols
	)
	totalRow := len(data.Series)
	return table.Layout(gtx, totalRow+1, numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case seriesNameCol:
				size = nameColWidth
			default:
				size = statColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var lbl material.LabelStyle
			switch index {
			case colorCol:
				lbl = material.Body1(th, "Color")
			case seriesNameCol:
				lbl = material.Body1(th, "Data Series Name")
				lbl.Alignment = text.Middle
			case pointsCol:
				lbl = material.Body1(th, "Points")
				lbl.Alignment = text.End
			case meanCol:
				lbl = material.Body1(th, "Mean")
				lbl.Alignment = text.End
			case sumCol:
				lbl = material.Body1(th, "Sum")
				lbl.Alignment = text.End
			}
			lbl.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, lbl.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			if row == totalRow {
				return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
					points, sum := l.Totals(data)
					var lbl material.LabelStyle
					switch col {
					case seriesNameCol:
						lbl = material.Body2(th, "Total of enabled series")
					case pointsCol:
						lbl = material.Body2(th, strconv.Itoa(points))
					case sumCol:
						lbl = material.Body2(th, formatStat(sum, points > 0))
					default:
						return D{Size: gtx.Constraints.Min}
					}
					if col != seriesNameCol {
						lbl.Alignment = text.End
					}
					return lbl.Layout(gtx)
				})
			}
			s := data.Series[row]
			toggle := l.Enabled[row]
			toggle.Update(gtx)
			enabled := toggle.Value
			disabledAlpha := uint8(100)
			stat := func(gtx C, str string) D {
				lbl := material.Body2(th, str)
				if !enabled {
					lbl.Color.A = disabledAlpha
				}
				lbl.Alignment = text.End
				return lbl.Layout(gtx)
			}
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return toggle.Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							sideLen := gtx.Dp(10)
							sz := image.Pt(sideLen, sideLen)
							fullColor := cfg.ColorOf(row, s)
							if !enabled {
								fullColor.A = disabledAlpha
							}
							paint.FillShape(gtx.Ops, fullColor, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case seriesNameCol:
					lbl := material.Body2(th, s.Name)
					if !enabled {
						lbl.Color.A = disabledAlpha
					}
					return lbl.Layout(gtx)
				case pointsCol:
					return stat(gtx, strconv.Itoa(s.Len()))
				case meanCol:
					return stat(gtx, formatStat(s.Mean()))
				case sumCol:
					return stat(gtx, formatStat(s.Sum(), s.Len() > 0))
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
			if row&1 != 0 {
				col := cfg.ColorOf(row, s)
				col.A = 50
				paint.FillShape(gtx.Ops, col, clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}
