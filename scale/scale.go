// Package scale maps data values onto pixel offsets and chooses "nice" tick
// marks for chart axes.
package scale

import (
	"errors"
	"math"
)

// ErrZeroSpan is returned when a scale is requested over an empty or
// non-finite domain or pixel range.
var ErrZeroSpan = errors.New("scale: zero or non-finite span")

// Linear maps the domain [DomainMin, DomainMax] onto the pixel range
// [PixelStart, PixelEnd]. The pixel range may run backwards, which is how the
// y axis of a chart is expressed (screen coordinates grow downward).
type Linear struct {
	DomainMin, DomainMax float64
	PixelStart, PixelEnd float64
}

// New builds a Linear scale. The domain bounds must be finite with
// domainMin < domainMax; the pixel span must be non-zero and finite. The
// domain span itself may exceed the float64 range.
func New(domainMin, domainMax, pixelStart, pixelEnd float64) (Linear, error) {
	pSpan := pixelEnd - pixelStart
	if !(domainMin < domainMax) || math.IsInf(domainMin, 0) || math.IsInf(domainMax, 0) {
		return Linear{}, ErrZeroSpan
	}
	if pSpan == 0 || math.IsNaN(pSpan) || math.IsInf(pSpan, 0) {
		return Linear{}, ErrZeroSpan
	}
	return Linear{
		DomainMin:  domainMin,
		DomainMax:  domainMax,
		PixelStart: pixelStart,
		PixelEnd:   pixelEnd,
	}, nil
}

// Halving is exact for normal floats, so working on half values gives the
// same results as the plain formulas without overflowing for domains wider
// than math.MaxFloat64.

// ToPixel returns the pixel offset of v. Values outside of the domain
// extrapolate linearly.
func (s Linear) ToPixel(v float64) float64 {
	return s.PixelStart + (v/2-s.DomainMin/2)/s.halfSpan()*(s.PixelEnd-s.PixelStart)
}

// ToValue is the inverse of ToPixel.
func (s Linear) ToValue(p float64) float64 {
	return 2 * (s.DomainMin/2 + (p-s.PixelStart)/(s.PixelEnd-s.PixelStart)*s.halfSpan())
}

func (s Linear) halfSpan() float64 {
	return s.DomainMax/2 - s.DomainMin/2
}

// Inverted reports whether increasing values map to decreasing pixels.
func (s Linear) Inverted() bool {
	return s.PixelEnd < s.PixelStart
}

// Span returns the width of the domain. It is +Inf for domains wider than
// math.MaxFloat64.
func (s Linear) Span() float64 {
	return s.DomainMax - s.DomainMin
}

// PixelLength returns the absolute length of the pixel range.
func (s Linear) PixelLength() float64 {
	return math.Abs(s.PixelEnd - s.PixelStart)
}

// Contains reports whether v lies within the domain, bounds included.
func (s Linear) Contains(v float64) bool {
	return v >= s.DomainMin && v <= s.DomainMax
}
