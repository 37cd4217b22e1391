// Package starfield implements the ambient particle field: a sparse set of
// drifting, twinkling stars regenerated whenever the drawable surface changes
// size and redrawn once per display refresh until torn down.
package starfield

import (
	"math"
	"math/rand"
)

const (
	// Surface area (in surface units squared) per star.
	density = 800.0

	// Probability of a star being bright at the right edge of the surface.
	brightBias = 0.4

	// Drift is computed from a centered uniform value scaled by these spans.
	driftSpanX = 0.15
	driftSpanY = 0.08

	// Drift offsets are scaled by this factor when a frame is drawn.
	driftScale = 30.0

	// Angular rates of the drift terms, per millisecond.
	driftRateX = 0.0001
	driftRateY = 0.00008

	twinkleDepth = 0.3
	twinkleBase  = 0.7
)

// Star is one point of the field.
type Star struct {
	// Current render coordinates, updated every frame.
	X, Y float64

	// Anchor established at creation. Drift is relative to it.
	BaseX, BaseY float64

	Size    float64
	Opacity float64

	TwinkleSpeed float64
	TwinklePhase float64

	DriftX float64
	DriftY float64

	Bright bool
}

// MaxStars caps the star count of very large surfaces.
const MaxStars = 1 << 20

// StarCount returns the number of stars for a surface of the given size,
// at most MaxStars. Non-finite sizes get none.
func StarCount(width, height float64) int {
	if !(width > 0) || !(height > 0) || math.IsInf(width*height, 0) {
		return 0
	}
	n := math.Floor(width * height / density)
	if n >= MaxStars {
		return MaxStars
	}
	return int(n)
}

// Generate creates a fresh star set for a width x height surface, drawing
// every random value from rng. Stars toward the right edge are more likely
// to be bright.
func Generate(width, height float64, rng *rand.Rand) []Star {
	n := StarCount(width, height)
	stars := make([]Star, n)
	for i := range stars {
		x := rng.Float64() * width
		y := rng.Float64() * height

		rightBias := x / width
		bright := rng.Float64() < rightBias*brightBias

		var size, opacity float64
		if bright {
			size = 0.8 + rng.Float64()*2.0
			opacity = 0.4 + rng.Float64()*0.6
		} else {
			size = 0.3 + rng.Float64()*1.2
			opacity = 0.1 + rng.Float64()*0.5
		}

		stars[i] = Star{
			X:            x,
			Y:            y,
			BaseX:        x,
			BaseY:        y,
			Size:         size,
			Opacity:      opacity,
			TwinkleSpeed: 0.005 + rng.Float64()*0.02,
			TwinklePhase: rng.Float64() * 2 * math.Pi,
			DriftX:       (rng.Float64() - 0.5) * driftSpanX,
			DriftY:       (rng.Float64() - 0.5) * driftSpanY,
			Bright:       bright,
		}
	}
	return stars
}

// PositionAt returns where star i sits at time t (milliseconds).
func (s Star) PositionAt(t float64, i int) (x, y float64) {
	x = s.BaseX + math.Sin(t*driftRateX+float64(i))*s.DriftX*driftScale
	y = s.BaseY + math.Cos(t*driftRateY+float64(i))*s.DriftY*driftScale
	return x, y
}

// TwinkleAt returns the brightness multiplier at time t, within [0.4, 1].
func (s Star) TwinkleAt(t float64) float64 {
	tw := math.Sin(t*s.TwinkleSpeed+s.TwinklePhase)*twinkleDepth + twinkleBase
	return clamp(tw, twinkleBase-twinkleDepth, 1)
}

// AlphaAt returns the draw alpha at time t, within [0, Opacity].
func (s Star) AlphaAt(t float64) float64 {
	return clamp(s.Opacity*s.TwinkleAt(t), 0, 1)
}

// HasHalo reports whether the star gets a glow halo when drawn.
func (s Star) HasHalo() bool {
	return s.Bright && s.Size > 1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
