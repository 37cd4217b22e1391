// Package canvas provides terminal surfaces for the star field. A canvas
// measures its area in virtual pixels and rasterises drawing onto a grid of
// character cells, each CellWidth x CellHeight virtual pixels.
package canvas

import (
	"errors"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// Circles smaller than this radius are drawn as a glyph in one cell;
	// larger ones only tint the background of the cells they cover.
	pointRadius = 3.0

	// Coverage is estimated on a samples x samples grid per cell.
	samples = 4
)

type glyphRank struct {
	maxRadius float64
	glyph     rune
}

// Glyphs by radius, smallest first. Some of these are ambiguous width and
// take two cells on East Asian terminals; asciiGlyphs never do.
var (
	glyphs = []glyphRank{
		{0.7, '.'},
		{1.2, '·'},
		{1.8, '•'},
		{2.4, '✦'},
		{math.Inf(1), '✶'},
	}
	asciiGlyphs = []glyphRank{
		{0.7, '.'},
		{1.2, '\''},
		{1.8, '+'},
		{2.4, '*'},
		{math.Inf(1), '#'},
	}
)

// Config controls cell geometry and the background color.
type Config struct {
	CellWidth  float64
	CellHeight float64
	Background colorful.Color

	// ASCII draws stars with single-width ASCII glyphs only.
	ASCII bool
}

// DefaultBackground is a deep night blue.
var DefaultBackground = colorful.Color{R: 11.0 / 255, G: 16.0 / 255, B: 32.0 / 255}

// DefaultConfig returns 8x16 virtual pixel cells on DefaultBackground.
func DefaultConfig() Config {
	return Config{
		CellWidth:  8,
		CellHeight: 16,
		Background: DefaultBackground,
	}
}

// Cell is one character position.
type Cell struct {
	Glyph rune
	FG    colorful.Color
	BG    colorful.Color

	rank int
}

// Text is a run of characters stamped over the canvas when rendering.
type Text struct {
	Col, Row int
	S        string
	FG       colorful.Color
	Bold     bool
}

// Canvas is a cell-grid surface. It is not safe for concurrent use.
type Canvas struct {
	cfg Config

	width, height float64
	cols, rows    int
	cells         []Cell
}

// Dimensions returns the virtual pixel size of a cols x rows grid.
func Dimensions(cols, rows int, cfg Config) (width, height float64) {
	return float64(cols) * cfg.CellWidth, float64(rows) * cfg.CellHeight
}

// New creates a cleared canvas of width x height virtual pixels.
func New(width, height float64, cfg Config) (*Canvas, error) {
	if !(cfg.CellWidth > 0) || !(cfg.CellHeight > 0) {
		return nil, errors.New("canvas: cell size must be positive")
	}
	if !(width > 0) || !(height > 0) {
		return nil, errors.New("canvas: size must be positive")
	}
	c := &Canvas{cfg: cfg}
	c.Resize(width, height)
	return c, nil
}

// Size returns the canvas size in virtual pixels.
func (c *Canvas) Size() (float64, float64) {
	return c.width, c.height
}

// Grid returns the number of columns and rows.
func (c *Canvas) Grid() (cols, rows int) {
	return c.cols, c.rows
}

// Resize reallocates the grid for width x height virtual pixels and clears it.
func (c *Canvas) Resize(width, height float64) {
	c.width, c.height = math.Max(width, 0), math.Max(height, 0)
	c.cols = int(math.Ceil(c.width / c.cfg.CellWidth))
	c.rows = int(math.Ceil(c.height / c.cfg.CellHeight))
	c.cells = make([]Cell, c.cols*c.rows)
	c.Clear()
}

// Clear resets every cell to an empty background cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Glyph: ' ', FG: c.cfg.Background, BG: c.cfg.Background}
	}
}

// Cell returns the cell at col, row. Out of range positions return an
// empty background cell.
func (c *Canvas) Cell(col, row int) Cell {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return Cell{Glyph: ' ', FG: c.cfg.Background, BG: c.cfg.Background}
	}
	return c.cells[row*c.cols+col]
}

// FillCircle composites a circle of color col at alpha over the canvas.
func (c *Canvas) FillCircle(x, y, radius float64, col colorful.Color, alpha float64) {
	if alpha <= 0 || radius <= 0 || len(c.cells) == 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	if radius < pointRadius {
		c.point(x, y, radius, col, alpha)
		return
	}
	c.wash(x, y, radius, col, alpha)
}

// point draws a glyph in the cell containing x, y. A smaller glyph never
// replaces a larger one within a frame.
func (c *Canvas) point(x, y, radius float64, col colorful.Color, alpha float64) {
	cx := int(math.Floor(x / c.cfg.CellWidth))
	cy := int(math.Floor(y / c.cfg.CellHeight))
	if cx < 0 || cx >= c.cols || cy < 0 || cy >= c.rows {
		return
	}

	glyph, rank := c.glyphFor(radius)
	cell := &c.cells[cy*c.cols+cx]
	if cell.Glyph != ' ' && rank < cell.rank {
		return
	}
	cell.Glyph = glyph
	cell.rank = rank
	cell.FG = cell.BG.BlendRgb(col, alpha).Clamped()
}

// wash tints the background of every cell the circle covers, weighted by
// the covered fraction of the cell.
func (c *Canvas) wash(x, y, radius float64, col colorful.Color, alpha float64) {
	cw, ch := c.cfg.CellWidth, c.cfg.CellHeight
	c0 := max(int(math.Floor((x-radius)/cw)), 0)
	c1 := min(int(math.Floor((x+radius)/cw)), c.cols-1)
	r0 := max(int(math.Floor((y-radius)/ch)), 0)
	r1 := min(int(math.Floor((y+radius)/ch)), c.rows-1)
	r2 := radius * radius

	for row := r0; row <= r1; row++ {
		for cc := c0; cc <= c1; cc++ {
			hits := 0
			for sy := range samples {
				py := (float64(row) + (float64(sy)+0.5)/samples) * ch
				for sx := range samples {
					px := (float64(cc) + (float64(sx)+0.5)/samples) * cw
					if (px-x)*(px-x)+(py-y)*(py-y) <= r2 {
						hits++
					}
				}
			}
			if hits == 0 {
				continue
			}
			w := alpha * float64(hits) / (samples * samples)
			cell := &c.cells[row*c.cols+cc]
			cell.BG = cell.BG.BlendRgb(col, w).Clamped()
			if cell.Glyph == ' ' {
				cell.FG = cell.BG
			}
		}
	}
}

func (c *Canvas) glyphFor(radius float64) (rune, int) {
	table := glyphs
	if c.cfg.ASCII {
		table = asciiGlyphs
	}
	for i, g := range table {
		if radius < g.maxRadius {
			return g.glyph, i
		}
	}
	last := len(table) - 1
	return table[last].glyph, last
}

// String returns the glyphs only, one line per row.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			b.WriteRune(c.cells[row*c.cols+col].Glyph)
		}
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type styleKey struct {
	fg, bg string
	bold   bool
}

// Render returns the canvas as styled terminal text with texts stamped on
// top. Text keeps the background of the cells beneath it.
func (c *Canvas) Render(texts ...Text) string {
	type stamp struct {
		r    rune
		fg   colorful.Color
		bold bool
	}
	stamps := make(map[int]stamp)
	for _, t := range texts {
		if t.Row < 0 || t.Row >= c.rows {
			continue
		}
		for i, r := range []rune(t.S) {
			col := t.Col + i
			if col < 0 || col >= c.cols {
				continue
			}
			stamps[t.Row*c.cols+col] = stamp{r: r, fg: t.FG, bold: t.Bold}
		}
	}

	styles := make(map[styleKey]lipgloss.Style)
	styleFor := func(k styleKey) lipgloss.Style {
		if s, ok := styles[k]; ok {
			return s
		}
		s := lipgloss.NewStyle().
			Foreground(lipgloss.Color(k.fg)).
			Background(lipgloss.Color(k.bg)).
			Bold(k.bold)
		styles[k] = s
		return s
	}

	var b strings.Builder
	var run strings.Builder
	for row := 0; row < c.rows; row++ {
		var cur styleKey
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			cell := c.cells[i]
			glyph := cell.Glyph
			k := styleKey{fg: cell.FG.Hex(), bg: cell.BG.Hex()}
			if s, ok := stamps[i]; ok {
				glyph = s.r
				k.fg = s.fg.Hex()
				k.bold = s.bold
			}
			if col > 0 && k != cur {
				b.WriteString(styleFor(cur).Render(run.String()))
				run.Reset()
			}
			cur = k
			run.WriteRune(glyph)
		}
		if run.Len() > 0 {
			b.WriteString(styleFor(cur).Render(run.String()))
			run.Reset()
		}
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
