package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-starfield/internal/canvas"
)

const (
	heroTitle   = "Describe it. We'll build it."
	heroTagline = "An AI app generator, from a single prompt to a running app"
	heroPrompt  = "> describe the app you want to build_"

	// Rows below its resting place the hero starts from.
	heroDrop = 6.0

	heroFrequency = 5.0
	heroDamping   = 0.55
)

var (
	taglineColor = colorful.Color{R: 148.0 / 255, G: 163.0 / 255, B: 184.0 / 255}
	promptColor  = colorful.Color{R: 100.0 / 255, G: 116.0 / 255, B: 139.0 / 255}
)

// hero is the landing overlay drawn above the field. It springs up into
// place after mount.
type hero struct {
	spring harmonica.Spring
	offset float64
	vel    float64
}

func newHero(fps int) hero {
	return hero{
		spring: harmonica.NewSpring(harmonica.FPS(fps), heroFrequency, heroDamping),
		offset: heroDrop,
	}
}

// step advances the entrance animation by one frame.
func (h hero) step() hero {
	h.offset, h.vel = h.spring.Update(h.offset, h.vel, 0)
	return h
}

// settled reports whether the entrance has finished moving.
func (h hero) settled() bool {
	return math.Abs(h.offset) < 0.01 && math.Abs(h.vel) < 0.01
}

// texts lays the hero out centred on a cols x rows grid.
func (h hero) texts(cols, rows int) []canvas.Text {
	lines := []string{heroTitle, "", heroTagline, "", heroPrompt}
	top := (rows-len(lines))/2 + int(math.Round(h.offset))

	var out []canvas.Text
	title := []rune(heroTitle)
	left := centre(len(title), cols)
	for i, r := range title {
		out = append(out, canvas.Text{
			Col:  left + i,
			Row:  top,
			S:    string(r),
			FG:   gradientColor(i, len(title)),
			Bold: true,
		})
	}
	out = append(out,
		canvas.Text{Col: centre(len([]rune(heroTagline)), cols), Row: top + 2, S: heroTagline, FG: taglineColor},
		canvas.Text{Col: centre(len([]rune(heroPrompt)), cols), Row: top + 4, S: heroPrompt, FG: promptColor},
	)
	return out
}

func centre(n, width int) int {
	if n >= width {
		return 0
	}
	return (width - n) / 2
}

// gradientColor returns the title color at col of width: teal through
// cyan to near-white.
func gradientColor(col, width int) colorful.Color {
	teal := colorful.Color{R: 45.0 / 255, G: 212.0 / 255, B: 191.0 / 255}
	cyan := colorful.Color{R: 34.0 / 255, G: 211.0 / 255, B: 238.0 / 255}
	white := colorful.Color{R: 248.0 / 255, G: 250.0 / 255, B: 252.0 / 255}

	if width <= 1 {
		return teal
	}
	x := float64(col) / float64(width-1)
	if x < 0.5 {
		return teal.BlendLab(cyan, x/0.5).Clamped()
	}
	return cyan.BlendLab(white, (x-0.5)/0.5).Clamped()
}
