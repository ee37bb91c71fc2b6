// pong is a minimal Pong game running in the terminal, in a desktop window
// or over SSH.
//
// Usage:
//
//	pong play                - Play in the terminal
//	pong window              - Play in a desktop window (build with -tags ebiten)
//	pong serve               - Start SSH server for remote play
//	pong simulate            - Run the game headless and print the final state
//	pong recordings          - Browse saved recordings
//	pong replay <id>         - Re-run a recording and verify its final state
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.pong/config.yaml, ./configs/pong.yaml)
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path>         - Set database path (default: ~/.pong/pong.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log file for full-screen modes
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/logging"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong - one paddle against a ball-tracking opponent",
	Long: `A minimal Pong: you steer the red paddle on the left, the blue paddle
on the right follows the ball, and every paddle hit makes the ball faster.

Available commands:
  play        - Play in the terminal
  window      - Play in a desktop window
  serve       - Start SSH server for remote play
  simulate    - Run headless and print the final state
  recordings  - Browse saved recordings
  replay      - Re-run a saved recording

Examples:
  pong play
  pong play --record
  pong serve --ssh :2222
  pong simulate --ticks 1000 --hold down`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (steps per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/pong.db", "Path to recordings database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file used while the terminal is full-screen")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(recordingsCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadConfig loads the config file and applies the global flags that were
// set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger logs to stderr, or to the configured file when the terminal is
// taken over by a full-screen UI. The returned closer is never nil.
func newLogger(cfg config.Config, fullscreen bool) (*log.Logger, io.Closer, error) {
	level := logging.FromEnv(cfg.Log.Level)
	if !fullscreen {
		return logging.New(os.Stderr, level, "pong"), nopCloser{}, nil
	}
	if cfg.Log.File == "" {
		return logging.Discard(), nopCloser{}, nil
	}

	path, err := storage.ExpandHome(cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	return logging.New(f, level, "pong"), f, nil
}

// openStore opens the recordings database named in cfg.
func openStore(cfg config.Config) (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("could not open recordings database: %w", err)
	}
	return store, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
