package scale

import "math"

// Band divides the pixel range [Start, End) into Count equal-width slots, one
// per category.
type Band struct {
	Start, End float64
	Count      int
}

// NewBand returns a Band with count slots. Count is clamped to at least one.
func NewBand(start, end float64, count int) Band {
	return Band{Start: start, End: end, Count: max(count, 1)}
}

// SlotWidth returns the width of a single slot.
func (b Band) SlotWidth() float64 {
	return (b.End - b.Start) / float64(max(b.Count, 1))
}

// SlotStart returns the pixel at which slot i begins.
func (b Band) SlotStart(i int) float64 {
	return b.Start + float64(i)*b.SlotWidth()
}

// Center returns the pixel at the middle of slot i.
func (b Band) Center(i int) float64 {
	return b.SlotStart(i) + b.SlotWidth()/2
}

// Index returns the slot containing px. The final slot includes End so that
// the rightmost pixel of the band still belongs to a category.
func (b Band) Index(px float64) (int, bool) {
	w := b.SlotWidth()
	if w <= 0 || px < b.Start || px > b.End {
		return 0, false
	}
	i := int(math.Floor((px - b.Start) / w))
	if i >= b.Count {
		i = b.Count - 1
	}
	return i, true
}
