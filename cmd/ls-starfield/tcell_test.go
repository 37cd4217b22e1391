package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/viper"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	a := &app{v: viper.New()}
	a.v.Set("seed", 7)
	if err := a.setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return a
}

func screenText(sim tcell.SimulationScreen) string {
	cells, _, _ := sim.GetContents()
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(string(c.Runes))
	}
	return b.String()
}

func TestRunTcell_DrawsUntilQuit(t *testing.T) {
	a := newTestApp(t)
	sim := tcell.NewSimulationScreen("")

	done := make(chan error, 1)
	go func() {
		done <- a.runTcellOn(context.Background(), func() (tcell.Screen, error) {
			return sim, nil
		})
	}()

	deadline := time.Now().Add(2 * time.Second)
	for strings.TrimSpace(screenText(sim)) == "" && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if strings.TrimSpace(screenText(sim)) == "" {
		t.Fatal("no stars drawn on the screen")
	}

	// Growing the screen regenerates the field for the new size.
	sim.SetSize(120, 40)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runTcellOn: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("q did not stop the tcell loop")
	}
}

func TestRunTcell_ContextCancel(t *testing.T) {
	a := newTestApp(t)
	sim := tcell.NewSimulationScreen("")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.runTcellOn(ctx, func() (tcell.Screen, error) { return sim, nil })
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runTcellOn: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not stop the tcell loop")
	}
}

func TestRunTcell_NoScreen(t *testing.T) {
	a := newTestApp(t)
	err := a.runTcellOn(context.Background(), func() (tcell.Screen, error) {
		return nil, errors.New("no tty")
	})
	if err != nil {
		t.Errorf("runTcellOn without a screen = %v, want nil", err)
	}
}
