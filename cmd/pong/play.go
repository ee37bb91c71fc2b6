package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/loop"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/platform/window"
	"github.com/vovakirdan/tui-pong/internal/replay"
)

var flagRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls (configurable under keys: in the config file):
  Up/W       - Move paddle up
  Down/S     - Move paddle down
  P          - Pause
  R          - Restart
  Ctrl+S     - Save a text screenshot to ~/.pong/screenshots
  Q/Esc      - Quit

Terminals only report key presses, so a key counts as held while its
auto-repeat keeps arriving (terminal.hold_ms).

Examples:
  pong play
  pong play --fps 30
  pong play --record`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a 640x480 window. Arrow keys or W/S move the paddle, P pauses,
R restarts and Escape quits.

The window needs a binary built with the ebiten tag:
  go build -tags ebiten ./cmd/pong`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session as a recording")
	windowCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session as a recording")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal, try 'pong simulate'")
	}
	return runSession(cmd, "play", true, tui.Run)
}

func runWindow(cmd *cobra.Command, _ []string) error {
	return runSession(cmd, "window", false, func(lp *loop.Loop, cfg config.Config, _ ...tui.ModelOption) error {
		return window.Run(lp, cfg)
	})
}

type frontEnd func(*loop.Loop, config.Config, ...tui.ModelOption) error

// runSession wires config, logging and an optional recorder around a
// front-end, then saves the recording when the front-end returns.
func runSession(cmd *cobra.Command, source string, fullscreen bool, run frontEnd) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("record") {
		cfg.Storage.Record = flagRecord
	}

	logger, closer, err := newLogger(cfg, fullscreen)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := []loop.Option{loop.WithLogger(logger)}
	var rec *replay.Recorder
	if cfg.Storage.Record {
		rec = replay.NewRecorder()
		opts = append(opts, loop.WithRecorder(rec))
	}
	lp := loop.New(pong.New(), opts...)

	logger.Info("session started", "source", source, "tick_rate", cfg.TickRate, "record", rec != nil)
	if err := run(lp, cfg, tui.WithModelLogger(logger)); err != nil {
		return err
	}
	logger.Info("session ended", "ticks", lp.Game().Tick())

	if rec == nil || rec.Ticks() == 0 {
		return nil
	}
	return saveRecording(cmd, cfg, logger, rec.Finish(lp.Snapshot().Hash(), source, cfg.TickRate))
}
