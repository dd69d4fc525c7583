package chart

import "math"

// Zoom controls how many of the most recent points a chart shows. ZoomFull
// shows everything; any positive factor shows BasePoints/factor points.
type Zoom float32

const (
	ZoomFull Zoom = 0

	DefaultZoomMin Zoom = 0.1
	DefaultZoomMax Zoom = 10
)

// NewZoom returns a zoom factor of at least DefaultZoomMin.
func NewZoom(factor float32) Zoom {
	return Zoom(max(factor, float32(DefaultZoomMin)))
}

func (z Zoom) IsFull() bool {
	return z <= 0
}

// roundTenth keeps repeated ±0.1 steps from drifting.
func roundTenth(z Zoom) Zoom {
	return Zoom(math.Round(float64(z)*10) / 10)
}

// Increment zooms in one step. Below 1x the steps are 0.1, above they are
// 1.0, and the result never exceeds limit. Zooming in from the full view
// starts at the smallest factor.
func (z Zoom) Increment(limit Zoom) Zoom {
	if z.IsFull() {
		return DefaultZoomMin
	}
	if z < 1 {
		return min(roundTenth(z+0.1), 1)
	}
	return min(z+1, max(limit, 1))
}

// Decrement zooms out one step. Dropping to or below limit switches to the
// full view.
func (z Zoom) Decrement(limit Zoom) Zoom {
	if z.IsFull() {
		return ZoomFull
	}
	if z <= limit {
		return ZoomFull
	}
	if z <= 1 {
		next := max(roundTenth(z-0.1), limit)
		if next <= limit {
			return ZoomFull
		}
		return next
	}
	return max(z-1, 1)
}

// minVisiblePoints is the fewest points shown when zoomed in.
const minVisiblePoints = 5

// VisibleRange returns the index of the first visible point and the number of
// visible points out of total.
func (z Zoom) VisibleRange(total, basePoints int) (start, count int) {
	if z.IsFull() || basePoints <= 0 {
		return 0, total
	}
	visible := float64(basePoints) / float64(z)
	if z >= 1 {
		visible = max(visible, minVisiblePoints)
	}
	count = min(int(visible), total)
	return total - count, count
}
