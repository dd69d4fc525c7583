package chart

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyData means there was nothing to plot. The frame carries a
	// placeholder instead of a chart.
	ErrEmptyData = errors.New("chart: no data to plot")
	// ErrInvalidGeometry means the drawing area, minus its margins, has no
	// area. The frame carries no primitives at all.
	ErrInvalidGeometry = errors.New("chart: drawing area is empty")
)

// Kind selects the layout a chart uses.
type Kind uint8

const (
	KindLine Kind = iota
	KindBar
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBar:
		return "bar"
	default:
		return "?"
	}
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "line", "":
		return KindLine, nil
	case "bar":
		return KindBar, nil
	}
	return KindLine, fmt.Errorf("unknown chart kind %q", s)
}

// BarMode controls how several series share a bar chart.
type BarMode uint8

const (
	// BarGrouped places the bars of each series side by side within a
	// category.
	BarGrouped BarMode = iota
	// BarStacked piles the bars of each series on top of each other.
	BarStacked
)

func (m BarMode) String() string {
	switch m {
	case BarGrouped:
		return "grouped"
	case BarStacked:
		return "stacked"
	default:
		return "?"
	}
}

// ParseBarMode returns the BarMode named s.
func ParseBarMode(s string) (BarMode, error) {
	switch s {
	case "grouped", "":
		return BarGrouped, nil
	case "stacked":
		return BarStacked, nil
	}
	return BarGrouped, fmt.Errorf("unknown bar mode %q", s)
}
