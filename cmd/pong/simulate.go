package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/loop"
	"github.com/vovakirdan/tui-pong/internal/replay"
)

var (
	flagTicks     int
	flagHold      []string
	flagSimRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the game headless and print the final state",
	Long: `Step a fresh game without any UI, holding the given keys for the whole
run, then print the entity state and how many events fired.

Examples:
  pong simulate
  pong simulate --ticks 1000 --hold down
  pong simulate --ticks 600 --hold up,down --record`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to simulate")
	simulateCmd.Flags().StringSliceVar(&flagHold, "hold", nil, "Keys held for the whole run: up, down")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the run as a recording")
}

// parseHold validates the --hold key names.
func parseHold(names []string) ([]core.Key, error) {
	keys := make([]core.Key, 0, len(names))
	for _, n := range names {
		switch k := core.Key(strings.ToLower(strings.TrimSpace(n))); k {
		case core.KeyUp, core.KeyDown:
			keys = append(keys, k)
		default:
			return nil, fmt.Errorf("unknown key %q for --hold, use up or down", n)
		}
	}
	return keys, nil
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagTicks)
	}
	held, err := parseHold(flagHold)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	rec := replay.NewRecorder()
	lp := loop.New(pong.New(), loop.WithLogger(logger), loop.WithRecorder(rec))
	for _, k := range held {
		lp.KeyDown(k)
	}

	counts := map[core.EventKind]int{}
	for range flagTicks {
		for _, ev := range lp.Tick().Events {
			counts[ev.Kind]++
		}
	}

	out := cmd.OutOrStdout()
	snap := lp.Snapshot()
	printState(out, snap)
	fmt.Fprintf(out, "%-8s paddle_bounce=%d goal=%d wall_bounce=%d\n", "events",
		counts[core.EventPaddleBounce], counts[core.EventGoal], counts[core.EventWallBounce])

	if !flagSimRecord {
		return nil
	}
	return saveRecording(cmd, cfg, logger, rec.Finish(snap.Hash(), "simulate", cfg.TickRate))
}

// printState writes the tick, hash and movable entities of snap.
func printState(w io.Writer, snap pong.Snapshot) {
	fmt.Fprintf(w, "%-8s %d\n", "tick", snap.Tick)
	for _, e := range []struct {
		name string
		e    core.Entity
	}{
		{"player", snap.Player},
		{"enemy", snap.Enemy},
		{"ball", snap.Ball},
	} {
		fmt.Fprintf(w, "%-8s x=%g y=%g dx=%g dy=%g\n", e.name, e.e.X, e.e.Y, e.e.DX, e.e.DY)
	}
	fmt.Fprintf(w, "%-8s %.4f\n", "speed", snap.Speed())
	fmt.Fprintf(w, "%-8s %016x\n", "hash", snap.Hash())
}
