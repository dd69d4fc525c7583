package scale

import (
	"errors"
	"math"
	"testing"
	"time"
)

func closeTo(a, b float64) bool {
	tol := 1e-9 * max(1, math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= tol
}

func TestNewRejectsZeroSpan(t *testing.T) {
	for _, tc := range []struct {
		name                   string
		dMin, dMax, pMin, pMax float64
	}{
		{name: "equal domain", dMin: 1, dMax: 1, pMin: 0, pMax: 100},
		{name: "reversed domain", dMin: 2, dMax: 1, pMin: 0, pMax: 100},
		{name: "nan domain", dMin: math.NaN(), dMax: 1, pMin: 0, pMax: 100},
		{name: "infinite domain", dMin: math.Inf(-1), dMax: 1, pMin: 0, pMax: 100},
		{name: "equal pixels", dMin: 0, dMax: 1, pMin: 50, pMax: 50},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.dMin, tc.dMax, tc.pMin, tc.pMax)
			if !errors.Is(err, ErrZeroSpan) {
				t.Errorf("expected ErrZeroSpan, got %v", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	type rng struct{ dMin, dMax, pStart, pEnd float64 }
	for _, r := range []rng{
		{0, 2, 0, 100},
		{0, 10, 100, 0},
		{-5, 5, 40, 760},
		{1e-6, 3e-6, 0, 1},
		{-1e9, 1e9, 600, 20},
		{0.1, 0.3, 13.5, 977.25},
		{1e15, 1e15 + 1, 100, 0},
		{-1e300, 1e300, 0, 800},
		{1e-300, 1e300, 800, 0},
		{-math.MaxFloat64, math.MaxFloat64, 0, 800},
	} {
		s, err := New(r.dMin, r.dMax, r.pStart, r.pEnd)
		if err != nil {
			t.Fatalf("unexpected error for %+v: %v", r, err)
		}
		for i := 0; i <= 100; i++ {
			// Halved so that domains wider than MaxFloat64 do not overflow.
			v := 2 * (r.dMin/2 + (r.dMax/2-r.dMin/2)*float64(i)/100)
			got := s.ToValue(s.ToPixel(v))
			if !closeTo(got, v) {
				t.Errorf("%+v: expected round trip of %v, got %v", r, v, got)
			}
		}
	}
}

func TestToPixelEndpoints(t *testing.T) {
	s, err := New(0, 10, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Inverted() {
		t.Errorf("expected inverted scale")
	}
	if p := s.ToPixel(0); p != 100 {
		t.Errorf("expected min to map to 100, got %v", p)
	}
	if p := s.ToPixel(10); p != 0 {
		t.Errorf("expected max to map to 0, got %v", p)
	}
	if p := s.ToPixel(5); p != 50 {
		t.Errorf("expected midpoint to map to 50, got %v", p)
	}
}

func isNice(step float64) bool {
	mantissa := step / math.Pow(10, math.Floor(math.Log10(step)+1e-9))
	for _, m := range []float64{1, 2, 5, 10} {
		if closeTo(mantissa, m) {
			return true
		}
	}
	return false
}

func TestNiceStep(t *testing.T) {
	for _, tc := range []struct {
		raw, expected float64
	}{
		{raw: 1, expected: 1},
		{raw: 1.1, expected: 2},
		{raw: 2, expected: 2},
		{raw: 2.5, expected: 5},
		{raw: 6, expected: 10},
		{raw: 0.2, expected: 0.2},
		{raw: 0.03, expected: 0.05},
		{raw: 1000, expected: 1000},
		{raw: 3.3333333333333335, expected: 5},
	} {
		got := NiceStep(tc.raw)
		if !closeTo(got, tc.expected) {
			t.Errorf("NiceStep(%v): expected %v, got %v", tc.raw, tc.expected, got)
		}
	}
	for raw := 1e-7; raw < 1e7; raw *= 1.37 {
		step := NiceStep(raw)
		if step < raw*(1-1e-9) {
			t.Errorf("NiceStep(%v) = %v is smaller than the raw step", raw, step)
		}
		if !isNice(step) {
			t.Errorf("NiceStep(%v) = %v is not of the form {1,2,5}x10^k", raw, step)
		}
	}
}

func TestNiceStepPanicsOnNonFinite(t *testing.T) {
	for _, raw := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected NiceStep(%v) to panic", raw)
				}
			}()
			NiceStep(raw)
		}()
	}
}

// ticksWithin fails the test when Ticks does not return promptly.
func ticksWithin(t *testing.T, s Linear, target int) []Tick {
	t.Helper()
	done := make(chan []Tick, 1)
	go func() { done <- s.Ticks(target) }()
	select {
	case ticks := <-done:
		return ticks
	case <-time.After(3 * time.Second):
		t.Fatalf("Ticks(%d) did not return for domain [%v, %v]", target, s.DomainMin, s.DomainMax)
	}
	return nil
}

func TestTicks(t *testing.T) {
	type rng struct {
		dMin, dMax float64
		target     int
	}
	for _, r := range []rng{
		{0, 10, 5},
		{0, 2, 3},
		{-2, 5, 4},
		{0.1, 0.3, 4},
		{-1234.5, 98765.4, 7},
		{3, 3.0001, 10},
		{0.5, 0.9, 1},
		{1e15, 1e15 + 1, 10},
		{1e17, 1e17 + 64, 10},
		{-1e300, 1e300, 5},
		{0.9 * math.MaxFloat64, math.MaxFloat64, 10},
		{-math.MaxFloat64, math.MaxFloat64, 1},
	} {
		s, err := New(r.dMin, r.dMax, 0, 500)
		if err != nil {
			t.Fatal(err)
		}
		ticks := ticksWithin(t, s, r.target)
		if len(ticks) == 0 {
			t.Errorf("%+v: expected ticks", r)
		}
		if step := s.Step(r.target); !math.IsInf(step, 1) && !isNice(step) {
			t.Errorf("%+v: step %v is not nice", r, step)
		}
		for i, tick := range ticks {
			if tick.Value < r.dMin || tick.Value > r.dMax {
				t.Errorf("%+v: tick %d value %v outside domain", r, i, tick.Value)
			}
			if i > 0 && !(tick.Value > ticks[i-1].Value) {
				t.Errorf("%+v: ticks not increasing at %d: %v then %v", r, i, ticks[i-1].Value, tick.Value)
			}
			if tick.Pixel != s.ToPixel(tick.Value) {
				t.Errorf("%+v: tick %d pixel %v does not match scale", r, i, tick.Pixel)
			}
		}
	}
}

func TestTicksLabels(t *testing.T) {
	s, err := New(0, 1, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	ticks := s.Ticks(5)
	expected := []string{"0.0", "0.2", "0.4", "0.6", "0.8", "1.0"}
	if len(ticks) != len(expected) {
		t.Fatalf("expected %d ticks, got %d: %+v", len(expected), len(ticks), ticks)
	}
	for i, tick := range ticks {
		if tick.Label != expected[i] {
			t.Errorf("tick %d: expected label %q, got %q", i, expected[i], tick.Label)
		}
	}
}

func TestFormatTickNegativeZero(t *testing.T) {
	if got := FormatTick(-0.00001, 0.5); got != "0.0" {
		t.Errorf("expected negative zero to render as 0.0, got %q", got)
	}
	if got := FormatTick(-2, 1); got != "-2" {
		t.Errorf("expected -2, got %q", got)
	}
}

func TestTargetCount(t *testing.T) {
	for _, tc := range []struct {
		length, spacing float64
		expected        int
	}{
		{length: 700, spacing: 70, expected: 10},
		{length: 30, spacing: 70, expected: 1},
		{length: 0, spacing: 70, expected: 1},
		{length: 140, spacing: 0, expected: 2},
	} {
		if got := TargetCount(tc.length, tc.spacing); got != tc.expected {
			t.Errorf("TargetCount(%v, %v): expected %d, got %d", tc.length, tc.spacing, tc.expected, got)
		}
	}
}

func TestBand(t *testing.T) {
	b := NewBand(0, 90, 3)
	if w := b.SlotWidth(); w != 30 {
		t.Errorf("expected slot width 30, got %v", w)
	}
	for _, tc := range []struct {
		px       float64
		expected int
		ok       bool
	}{
		{px: -1, ok: false},
		{px: 0, expected: 0, ok: true},
		{px: 29.9, expected: 0, ok: true},
		{px: 30, expected: 1, ok: true},
		{px: 89, expected: 2, ok: true},
		{px: 90, expected: 2, ok: true},
		{px: 91, ok: false},
	} {
		i, ok := b.Index(tc.px)
		if ok != tc.ok {
			t.Errorf("Index(%v): expected ok %v, got %v", tc.px, tc.ok, ok)
		} else if ok && i != tc.expected {
			t.Errorf("Index(%v): expected %d, got %d", tc.px, tc.expected, i)
		}
	}
	if c := b.Center(1); c != 45 {
		t.Errorf("expected center 45, got %v", c)
	}
}

func TestTicksFarFromZero(t *testing.T) {
	s, err := New(1e15, 1e15+1, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	ticks := ticksWithin(t, s, 10)
	if len(ticks) < 2 || len(ticks) > 11 {
		t.Fatalf("expected between 2 and 11 ticks, got %d: %+v", len(ticks), ticks)
	}
	if ticks[0].Value < s.DomainMin || ticks[len(ticks)-1].Value > s.DomainMax {
		t.Errorf("expected ticks inside the domain, got %v to %v", ticks[0].Value, ticks[len(ticks)-1].Value)
	}
}

func TestTicksSubnormalDomain(t *testing.T) {
	s, err := New(0, 1e-323, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if ticks := ticksWithin(t, s, 10); len(ticks) != 2 {
		t.Errorf("expected ticks at both bounds, got %+v", ticks)
	}
}

func TestTicksBoundsFallback(t *testing.T) {
	// No finite step covers this domain in one tick.
	s, err := New(-math.MaxFloat64, math.MaxFloat64, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if step := s.Step(1); !math.IsInf(step, 1) {
		t.Errorf("expected an infinite step, got %v", step)
	}
	ticks := ticksWithin(t, s, 1)
	if len(ticks) != 2 {
		t.Fatalf("expected ticks at both bounds, got %+v", ticks)
	}
	if ticks[0].Pixel != 0 || ticks[1].Pixel != 100 {
		t.Errorf("expected bound ticks at pixels 0 and 100, got %v and %v", ticks[0].Pixel, ticks[1].Pixel)
	}
}
