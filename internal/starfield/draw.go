package starfield

import colorful "github.com/lucasb-eyer/go-colorful"

// Star colors. Only alpha varies per frame; hue never does.
var (
	AccentTeal = colorful.Color{R: 45.0 / 255, G: 212.0 / 255, B: 191.0 / 255}
	NearWhite  = colorful.Color{R: 248.0 / 255, G: 250.0 / 255, B: 252.0 / 255}
)

const (
	haloRadiusScale = 3.0
	haloAlphaScale  = 0.3
)

// Surface is a drawable area measured in surface units.
type Surface interface {
	Size() (width, height float64)
	Clear()
	FillCircle(x, y, radius float64, c colorful.Color, alpha float64)
}

// Resizer is implemented by surfaces that can change size in place.
type Resizer interface {
	Resize(width, height float64)
}

// Presenter is implemented by surfaces that must be flushed after a frame.
type Presenter interface {
	Present()
}

// Color returns the render color of the star.
func (s Star) Color() colorful.Color {
	if s.Bright {
		return AccentTeal
	}
	return NearWhite
}

// DrawFrame clears surf and draws every star at time t, in list order.
// Each star's X and Y are updated to the drawn position.
func DrawFrame(surf Surface, stars []Star, t float64) {
	surf.Clear()
	for i := range stars {
		s := &stars[i]
		s.X, s.Y = s.PositionAt(t, i)
		alpha := s.AlphaAt(t)
		c := s.Color()

		if s.HasHalo() {
			surf.FillCircle(s.X, s.Y, s.Size*haloRadiusScale, c, alpha*haloAlphaScale)
		}
		surf.FillCircle(s.X, s.Y, s.Size, c, alpha)
	}
	if p, ok := surf.(Presenter); ok {
		p.Present()
	}
}
