package canvas

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// TcellSurface is a canvas flushed to a tcell screen after every frame.
type TcellSurface struct {
	*Canvas
	screen tcell.Screen
}

// NewTcellSurface creates a surface covering the whole screen.
func NewTcellSurface(screen tcell.Screen, cfg Config) (*TcellSurface, error) {
	cols, rows := screen.Size()
	w, h := Dimensions(cols, rows, cfg)
	c, err := New(w, h, cfg)
	if err != nil {
		return nil, err
	}
	return &TcellSurface{Canvas: c, screen: screen}, nil
}

// ScreenDimensions returns the virtual pixel size of the screen.
func (s *TcellSurface) ScreenDimensions() (width, height float64) {
	cols, rows := s.screen.Size()
	return Dimensions(cols, rows, s.cfg)
}

// Present copies every cell to the screen and shows it.
func (s *TcellSurface) Present() {
	sw, sh := s.screen.Size()
	cols, rows := s.Grid()
	for row := 0; row < rows && row < sh; row++ {
		for col := 0; col < cols && col < sw; col++ {
			cell := s.Cell(col, row)
			style := tcell.StyleDefault.
				Foreground(tcellColor(cell.FG)).
				Background(tcellColor(cell.BG))
			s.screen.SetContent(col, row, cell.Glyph, nil, style)
		}
	}
	s.screen.Show()
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
