package giochart

import (
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"golang.org/x/exp/constraints"

	"git.sr.ht/~whereswaldon/graphkit/chart"
)

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

func fpt(p chart.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

// pixelRect returns the smallest integer rectangle covering r.
func pixelRect(r chart.Rect) image.Rectangle {
	return image.Rect(int(floor(r.Min.X)), int(floor(r.Min.Y)), int(ceil(r.Max.X)), int(ceil(r.Max.Y)))
}

// alignOffset returns where a box of the given size goes so that it sits
// against anchor as the alignments ask.
func alignOffset(anchor chart.Point, size image.Point, h chart.HAlign, v chart.VAlign) image.Point {
	pos := image.Pt(int(math.Round(anchor.X)), int(math.Round(anchor.Y)))
	switch h {
	case chart.AlignMiddle:
		pos.X -= size.X / 2
	case chart.AlignEnd:
		pos.X -= size.X
	}
	switch v {
	case chart.AlignCenter:
		pos.Y -= size.Y / 2
	case chart.AlignBottom:
		pos.Y -= size.Y
	}
	return pos
}

func paintPrimitives(gtx C, th *material.Theme, prims []chart.Primitive) {
	for _, p := range prims {
		switch p := p.(type) {
		case chart.Line:
			paintLine(gtx, p)
		case chart.FilledRect:
			paint.FillShape(gtx.Ops, p.Fill, clip.Rect(pixelRect(p.Bounds)).Op())
		case chart.Text:
			paintText(gtx, th, p)
		}
	}
}

func paintLine(gtx C, l chart.Line) {
	if len(l.Path) < 2 {
		return
	}
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(fpt(l.Path[0]))
	for _, pt := range l.Path[1:] {
		p.LineTo(fpt(pt))
	}
	paint.FillShape(gtx.Ops, l.Stroke.Color, clip.Stroke{
		Path:  p.End(),
		Width: float32(l.Stroke.Width),
	}.Op())
}

func paintText(gtx C, th *material.Theme, t chart.Text) {
	label := material.Label(th, unit.Sp(float32(t.Size)/gtx.Metric.PxPerSp), t.Text)
	label.Color = t.Color
	label.MaxLines = 1
	gtx.Constraints.Min = image.Point{}
	dims, call := rec(gtx, label.Layout)
	stack := op.Offset(alignOffset(t.Anchor, dims.Size, t.HAlign, t.VAlign)).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
}
