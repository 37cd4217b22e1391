// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/version"
)

// Lines reserved below the field for the help footer.
const footerLines = 2

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF"))
	footerStyle = lipgloss.NewStyle().Height(footerLines).PaddingLeft(2)
)

// frameMsg paces the animation, one per display refresh.
type frameMsg time.Time

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Options configures the root model.
type Options struct {
	FPS     int
	Seed    int64 // 0 seeds from the clock
	Overlay bool
	Canvas  canvas.Config
	Logger  *logging.Logger
}

// DefaultOptions returns 60fps with the hero overlay on.
func DefaultOptions() Options {
	return Options{
		FPS:     60,
		Overlay: true,
		Canvas:  canvas.DefaultConfig(),
	}
}

func (o Options) frameInterval() time.Duration {
	if o.FPS <= 0 {
		return starfield.DefaultFrameInterval
	}
	return time.Second / time.Duration(o.FPS)
}

// Model is the root Bubble Tea model: the star field filling the window
// with the hero overlay above it.
type Model struct {
	opts Options
	log  *logging.Logger

	field   *starfield.Field
	surface *canvas.Canvas
	hero    hero

	keys keyMap
	help help.Model

	width    int
	height   int
	overlay  bool
	quitting bool
	epoch    time.Time
}

// New creates a new root UI model.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	fieldOpts := []starfield.Option{starfield.WithLogger(log.With("field"))}
	if opts.Seed != 0 {
		fieldOpts = append(fieldOpts, starfield.WithSeed(opts.Seed))
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}

	return Model{
		opts:    opts,
		log:     log.With("ui"),
		field:   starfield.NewField(fieldOpts...),
		hero:    newHero(fps),
		keys:    defaultKeyMap(),
		help:    help.New(),
		overlay: opts.Overlay,
		epoch:   time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		frameCmd(m.opts.frameInterval()),
		tea.SetWindowTitle("ls-starfield"),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.field.Unmount()
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		case key.Matches(msg, m.keys.Overlay):
			m.overlay = !m.overlay
		case key.Matches(msg, m.keys.Reseed):
			m.field.Resize(m.fieldSize())
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		if m.quitting {
			return m, nil
		}
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.log.Debug("window %dx%d", msg.Width, msg.Height)
		return m.layout(), nil

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		ms := float64(time.Time(msg).Sub(m.epoch)) / float64(time.Millisecond)
		m.field.Frame(ms)
		if !m.hero.settled() {
			m.hero = m.hero.step()
		}
		return m, frameCmd(m.opts.frameInterval())
	}

	return m, nil
}

// fieldSize returns the virtual pixel size of the area above the footer.
func (m Model) fieldSize() (float64, float64) {
	return canvas.Dimensions(m.width, max(m.height-footerLines, 0), m.opts.Canvas)
}

// layout mounts the field on the first usable window size and resizes it
// afterwards.
func (m Model) layout() Model {
	w, h := m.fieldSize()
	if m.field.State() == starfield.Running {
		m.field.Resize(w, h)
		return m
	}

	m.field.Mount(func() (starfield.Surface, error) {
		c, err := canvas.New(w, h, m.opts.Canvas)
		if err != nil {
			return nil, fmt.Errorf("window %dx%d: %w", m.width, m.height, err)
		}
		m.surface = c
		return c, nil
	})
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	footer := m.renderFooter()
	if m.field.State() != starfield.Running || m.surface == nil {
		return m.renderPlainHero() + "\n" + footer
	}

	var texts []canvas.Text
	if m.overlay {
		cols, rows := m.surface.Grid()
		texts = m.hero.texts(cols, rows)
	}
	return m.surface.Render(texts...) + "\n" + footer
}

// renderPlainHero is shown when there is no field to draw on.
func (m Model) renderPlainHero() string {
	body := strings.Join([]string{
		accentStyle.Bold(true).Render(heroTitle),
		"",
		dimStyle.Render(heroTagline),
	}, "\n")
	return lipgloss.Place(m.width, max(m.height-footerLines, 1), lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderFooter() string {
	status := dimStyle.Render(fmt.Sprintf("%d stars | v%s", m.field.Len(), version.Version))
	return footerStyle.Render(m.help.View(m.keys) + "  " + status)
}
