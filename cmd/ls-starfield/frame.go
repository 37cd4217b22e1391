package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/starfield"
)

const (
	fallbackCols = 80
	fallbackRows = 24
)

func (a *app) frameCmd() *cobra.Command {
	var (
		cols, rows int
		at         float64
		plain      bool
	)
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Print a single frame of the star field",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printFrame(cmd.OutOrStdout(), cols, rows, at, plain)
		},
	}
	cmd.Flags().IntVar(&cols, "width", 0, "Columns (default: terminal width, or 80)")
	cmd.Flags().IntVar(&rows, "height", 0, "Rows (default: terminal height, or 24)")
	cmd.Flags().Float64Var(&at, "at", 0, "Frame time in milliseconds")
	cmd.Flags().BoolVar(&plain, "plain", false, "Glyphs only, no color")
	return cmd
}

// printFrame mounts a field on an off-screen canvas, draws one frame at
// time at and writes it to w.
func (a *app) printFrame(w io.Writer, cols, rows int, at float64, plain bool) error {
	log := a.logger
	if a.cfg.LogFile == "" {
		log = logging.New(logging.ParseLevel(a.cfg.LogLevel))
	}
	log = log.With("frame")

	cols, rows = frameSize(cols, rows)
	cfg := a.cfg.Canvas()
	width, height := canvas.Dimensions(cols, rows, cfg)

	var c *canvas.Canvas
	field := starfield.NewField(a.fieldOptions(log)...)
	if !field.Mount(func() (starfield.Surface, error) {
		var err error
		c, err = canvas.New(width, height, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}) {
		return fmt.Errorf("cannot draw a %dx%d frame", cols, rows)
	}
	defer field.Unmount()

	field.Frame(at)
	log.Debug("drew %d stars on %dx%d cells at t=%.0fms", field.Len(), cols, rows, at)

	out := c.Render()
	if plain {
		out = c.String()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// frameSize fills in unset dimensions from the terminal when stdout is one.
func frameSize(cols, rows int) (int, int) {
	if cols > 0 && rows > 0 {
		return cols, rows
	}
	tw, th := fallbackCols, fallbackRows
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 1 {
			// Leave the last row for the shell prompt.
			tw, th = w, h-1
		}
	}
	if cols <= 0 {
		cols = tw
	}
	if rows <= 0 {
		rows = th
	}
	return cols, rows
}
