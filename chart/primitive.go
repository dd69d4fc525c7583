package chart

import "image/color"

// Primitive is a single drawing instruction. The concrete types are Line,
// FilledRect and Text.
type Primitive interface {
	isPrimitive()
}

// Role tells the host what a primitive is for, so it can theme or filter
// primitives without inspecting their geometry.
type Role uint8

const (
	RoleGrid Role = iota
	RoleAxis
	RoleSeries
	RoleMarker
	RoleBar
	RoleLabel
	RoleAverage
	RoleHighlight
	RoleTooltip
	RolePlaceholder
)

func (r Role) String() string {
	switch r {
	case RoleGrid:
		return "grid"
	case RoleAxis:
		return "axis"
	case RoleSeries:
		return "series"
	case RoleMarker:
		return "marker"
	case RoleBar:
		return "bar"
	case RoleLabel:
		return "label"
	case RoleAverage:
		return "average"
	case RoleHighlight:
		return "highlight"
	case RoleTooltip:
		return "tooltip"
	case RolePlaceholder:
		return "placeholder"
	default:
		return "?"
	}
}

// Stroke describes how a Line is drawn.
type Stroke struct {
	Width float64
	Color color.NRGBA
}

// Line is an open polyline through Path.
type Line struct {
	Path   []Point
	Stroke Stroke
	Role   Role
	// Series is the index of the series the line belongs to, or -1.
	Series int
}

// FilledRect is a solid rectangle.
type FilledRect struct {
	Bounds Rect
	Fill   color.NRGBA
	Role   Role
	Series int
}

// HAlign positions text horizontally relative to its anchor.
type HAlign uint8

const (
	AlignStart HAlign = iota
	AlignMiddle
	AlignEnd
)

// VAlign positions text vertically relative to its anchor.
type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignCenter
	AlignBottom
)

// Text is a single line of text placed relative to Anchor.
type Text struct {
	Anchor Point
	Text   string
	HAlign HAlign
	VAlign VAlign
	Color  color.NRGBA
	// Size is the font size in pixels.
	Size float64
	Role Role
}

func (Line) isPrimitive()       {}
func (FilledRect) isPrimitive() {}
func (Text) isPrimitive()       {}

// Filter returns the primitives of prims that have the given role.
func Filter(prims []Primitive, role Role) []Primitive {
	var out []Primitive
	for _, p := range prims {
		if RoleOf(p) == role {
			out = append(out, p)
		}
	}
	return out
}

// RoleOf returns the role of p.
func RoleOf(p Primitive) Role {
	switch p := p.(type) {
	case Line:
		return p.Role
	case FilledRect:
		return p.Role
	case Text:
		return p.Role
	}
	return RolePlaceholder
}
