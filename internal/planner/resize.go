package planner

import "math"

// Encoder quality bounds.
const (
	QualityMin = 1
	QualityMax = 100
)

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FitWithin returns the dimensions that fit w×h inside maxW×maxH while
// preserving the aspect ratio. Images already inside the box are returned
// unchanged with resize == false; images are never enlarged. The scaled
// side is rounded to the nearest pixel and never drops below 1.
func FitWithin(w, h, maxW, maxH int) (newW, newH int, resize bool) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return w, h, false
	}
	if w <= maxW && h <= maxH {
		return w, h, false
	}

	srcAspect := float64(w) / float64(h)
	boxAspect := float64(maxW) / float64(maxH)
	if srcAspect > boxAspect {
		newW = maxW
		newH = int(math.Round(float64(maxW) / srcAspect))
	} else {
		newH = maxH
		newW = int(math.Round(float64(maxH) * srcAspect))
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH, true
}
