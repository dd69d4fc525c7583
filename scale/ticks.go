package scale

import (
	"math"
	"strconv"
)

// DefaultTickSpacing is the preferred distance in pixels between two
// neighbouring tick labels.
const DefaultTickSpacing = 70

// Tick is a labelled reference mark on an axis.
type Tick struct {
	Value float64
	Pixel float64
	Label string
}

// Formatter renders a tick value as text. The step is the distance between
// consecutive ticks and can be used to pick a precision.
type Formatter func(value, step float64) string

// niceMultipliers are the mantissas a tick step may take.
var niceMultipliers = [...]float64{1, 2, 5, 10}

// NiceStep returns the smallest value of the form {1,2,5}×10^k that is greater
// than or equal to raw. A non-finite or non-positive raw step can only come
// from a zero-span domain and is treated as a programming error.
func NiceStep(raw float64) float64 {
	if !(raw > 0) || math.IsInf(raw, 0) {
		panic("scale: non-finite tick step " + strconv.FormatFloat(raw, 'g', -1, 64))
	}
	base := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range niceMultipliers {
		// Tolerate rounding noise in raw so that e.g. 0.2 stays 0.2.
		if step := m * base; step >= raw*(1-1e-9) {
			return step
		}
	}
	// Unreachable: 10×base always exceeds raw.
	return 10 * base
}

// TargetCount returns how many ticks fit into pixelLength when labels are
// spacing pixels apart. It is always at least one.
func TargetCount(pixelLength, spacing float64) int {
	if spacing <= 0 {
		spacing = DefaultTickSpacing
	}
	n := int(math.Floor(pixelLength / spacing))
	return max(n, 1)
}

// Decimals returns the number of fractional digits needed to tell apart
// ticks that are step apart.
func Decimals(step float64) int {
	if !(step > 0) || math.IsInf(step, 0) {
		return 0
	}
	return max(0, -int(math.Floor(math.Log10(step)+1e-9)))
}

// FormatTick is the default Formatter.
func FormatTick(value, step float64) string {
	s := strconv.FormatFloat(value, 'f', Decimals(step), 64)
	if s[0] == '-' && isZero(s[1:]) {
		return s[1:]
	}
	return s
}

func isZero(s string) bool {
	for _, r := range s {
		if r != '0' && r != '.' {
			return false
		}
	}
	return true
}

// maxTickSteps bounds how many ticks the loop in TicksFunc may produce per
// requested tick before the result is considered nonsense.
const maxTickSteps = 4

// Step returns the nice tick step used for roughly target ticks across the
// scale's domain. It is +Inf when no finite step spans the domain, or when the
// domain is so narrow that the step underflows to zero.
func (s Linear) Step(target int) float64 {
	target = max(target, 1)
	raw := s.Span() / float64(target)
	if math.IsInf(raw, 0) {
		raw = s.halfSpan() / float64(target) * 2
	}
	if math.IsInf(raw, 0) || raw == 0 {
		return math.Inf(1)
	}
	// Near math.MaxFloat64 the nice step itself may round up to +Inf.
	return NiceStep(raw)
}

// Ticks returns ticks at every multiple of the nice step that lies within the
// domain, in increasing order, labelled with FormatTick.
func (s Linear) Ticks(target int) []Tick {
	return s.TicksFunc(target, FormatTick)
}

// TicksFunc is like Ticks but labels each tick with format.
//
// When float64 cannot tell the multiples of the step apart, as for a narrow
// domain far from zero, or the domain is wider than any finite step, the
// ticks are the two domain bounds.
func (s Linear) TicksFunc(target int, format Formatter) []Tick {
	if format == nil {
		format = FormatTick
	}
	target = max(target, 1)
	step := s.Step(target)
	if math.IsInf(step, 0) {
		return s.boundTicks(step, format)
	}
	lo, hi := s.DomainMin/step, s.DomainMax/step
	// Slack keeps values like 0.30000000000000004 from dropping out of
	// the domain because of representation error.
	slack := (hi - lo) * 1e-9
	first := math.Ceil(lo - slack)
	last := math.Floor(hi + slack)
	if last < first {
		return nil
	}
	count := last - first + 1
	if first+1 == first || !(count <= float64(maxTickSteps*(target+1))) {
		return s.boundTicks(step, format)
	}
	ticks := make([]Tick, 0, int(count))
	for k := 0; k < int(count); k++ {
		v := (first + float64(k)) * step
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		v = min(max(v, s.DomainMin), s.DomainMax)
		if len(ticks) > 0 && v <= ticks[len(ticks)-1].Value {
			continue
		}
		ticks = append(ticks, Tick{
			Value: v,
			Pixel: s.ToPixel(v),
			Label: format(v, step),
		})
	}
	return ticks
}

// boundTicks returns ticks at both ends of the domain.
func (s Linear) boundTicks(step float64, format Formatter) []Tick {
	ticks := make([]Tick, 0, 2)
	for _, v := range []float64{s.DomainMin, s.DomainMax} {
		ticks = append(ticks, Tick{
			Value: v,
			Pixel: s.ToPixel(v),
			Label: format(v, step),
		})
	}
	return ticks
}
