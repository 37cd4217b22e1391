package main

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/starfield"
)

func (a *app) tcellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tcell",
		Short: "Show the bare star field on a raw tcell screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTcell(cmd.Context())
		},
	}
}

func (a *app) runTcell(ctx context.Context) error {
	return a.runTcellOn(ctx, tcell.NewScreen)
}

// runTcellOn animates the field on the screen from newScreen with its own
// frame loop and redraws on resize until a quit key or ctx cancellation.
func (a *app) runTcellOn(ctx context.Context, newScreen func() (tcell.Screen, error)) error {
	log := a.logger.With("tcell")
	field := starfield.NewField(a.fieldOptions(log)...)

	var (
		screen tcell.Screen
		surf   *canvas.TcellSurface
	)
	mounted := field.Mount(func() (starfield.Surface, error) {
		s, err := newScreen()
		if err != nil {
			return nil, err
		}
		if err := s.Init(); err != nil {
			return nil, err
		}
		ts, err := canvas.NewTcellSurface(s, a.cfg.Canvas())
		if err != nil {
			s.Fini()
			return nil, err
		}
		screen, surf = s, ts
		return ts, nil
	})
	if !mounted {
		log.Debug("no screen available, nothing to draw")
		return nil
	}
	defer screen.Fini()

	sched := starfield.NewTickerScheduler(a.cfg.FrameInterval())
	log.Debug("frame every %v", sched.Interval())
	field.Start(sched)
	defer func() {
		field.Unmount()
		if n := sched.Pending(); n > 0 {
			log.Debug("dropping %d pending frames", n)
		}
		sched.Stop()
	}()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			log.Debug("context cancelled")
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				field.Resize(surf.ScreenDimensions())
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
			}
		}
	}
}

// fieldOptions returns the field options shared by the headless and tcell
// backends.
func (a *app) fieldOptions(log *logging.Logger) []starfield.Option {
	opts := []starfield.Option{starfield.WithLogger(log.With("field"))}
	if a.cfg.Seed != 0 {
		opts = append(opts, starfield.WithSeed(a.cfg.Seed))
	}
	return opts
}
