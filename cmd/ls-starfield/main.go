// Command ls-starfield draws an ambient, drifting star field in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/ui"
	"github.com/litescript/ls-starfield/internal/version"
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	v       *viper.Viper
	cfgPath string

	cfg    *config.Config
	logger *logging.Logger
	close  func() error
}

func main() {
	a := &app{v: viper.New()}
	root := a.rootCmd()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	err := root.ExecuteContext(ctx)
	if a.close != nil {
		_ = a.close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ls-starfield",
		Short:         "An ambient star field for your terminal",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "Config file (default $HOME/.ls-starfield.yaml)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Write logs to this file (TUI modes log nowhere otherwise)")
	flags.Int64("seed", 0, "Random seed for star placement (0 = from clock)")
	flags.Int("fps", 60, "Frames per second")
	flags.Float64("cell-width", 8, "Virtual pixels per terminal column")
	flags.Float64("cell-height", 16, "Virtual pixels per terminal row")
	flags.Bool("overlay", true, "Show the hero overlay")
	flags.String("background", "#0b1020", "Background color as #rrggbb")
	flags.Bool("ascii", runewidth.IsEastAsian(), "Draw stars with ASCII glyphs only")

	for key, flag := range map[string]string{
		"log_level":   "log-level",
		"log_file":    "log-file",
		"seed":        "seed",
		"fps":         "fps",
		"cell_width":  "cell-width",
		"cell_height": "cell-height",
		"overlay":     "overlay",
		"background":  "background",
		"ascii":       "ascii",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Show the star field behind the hero overlay (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTUI(cmd.Context())
			},
		},
		a.tcellCmd(),
		a.frameCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "ls-starfield v%s\n", version.Version)
			},
		},
	)
	return root
}

// setup loads configuration and opens the log destination.
func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		// stderr sits under the alternate screen while a TUI runs.
		a.logger = logging.NewWriter(io.Discard, level)
		return nil
	}
	logger, closeFn, err := logging.Open(cfg.LogFile, level)
	if err != nil {
		return err
	}
	a.logger = logger
	a.close = closeFn
	return nil
}

func (a *app) runTUI(ctx context.Context) error {
	opts := ui.DefaultOptions()
	opts.FPS = a.cfg.FPS
	opts.Seed = a.cfg.Seed
	opts.Overlay = a.cfg.Overlay
	opts.Canvas = a.cfg.Canvas()
	opts.Logger = a.logger

	a.logger.Info("starting TUI at %d fps", a.cfg.FPS)
	p := tea.NewProgram(ui.New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
