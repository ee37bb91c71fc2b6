package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "Browse saved recordings",
	Long: `List the saved recordings, newest first. In a terminal this opens an
interactive table: Enter replays the selected recording, D deletes it.

Examples:
  pong recordings
  pong recordings --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRecordings,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a recording and verify its final state",
	Long: `Load a recording, replay its key events on a fresh game and compare
the final state hash with the recorded one.

Examples:
  pong replay 3`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	recordingsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain list instead of the interactive table")
	recordingsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of recordings to list")
}

// saveRecording stores rec and reports its ID.
func saveRecording(cmd *cobra.Command, cfg config.Config, logger *log.Logger, rec storage.Recording) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRecording(rec)
	if err != nil {
		return err
	}
	logger.Info("recording saved", "id", id, "ticks", rec.Ticks, "events", len(rec.Events))
	fmt.Fprintf(cmd.OutOrStdout(), "Saved recording %d (%d ticks). Replay with: pong replay %d\n", id, rec.Ticks, id)
	return nil
}

func runRecordings(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printRecordings(cmd, store)
	}

	id, err := tui.RunRecordings(store)
	if err != nil || id == 0 {
		return err
	}
	return replayRecording(cmd, store, id)
}

func printRecordings(cmd *cobra.Command, store *storage.Store) error {
	recs, err := store.RecentRecordings(flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "No recordings yet.")
		fmt.Fprintln(out, "Run 'pong play --record' or 'pong simulate --record' to save one.")
		return nil
	}

	fmt.Fprintf(out, "  %-6s  %-9s  %-8s  %-8s  %-16s  %s\n", "ID", "Source", "Ticks", "Length", "Hash", "Date")
	for _, row := range tui.RecordingRows(recs) {
		fmt.Fprintf(out, "  %-6s  %-9s  %-8s  %-8s  %-16s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5])
	}
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid recording id %q", args[0])
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return replayRecording(cmd, store, id)
}

// replayRecording re-simulates a stored recording and prints the outcome.
func replayRecording(cmd *cobra.Command, store *storage.Store, id int64) error {
	rec, err := store.Recording(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Recording %d: %s, %d ticks at %d/s, %d key events\n",
		rec.ID, rec.Source, rec.Ticks, rec.TickRate, len(rec.Events))

	snap, err := replay.Play(rec)
	if errors.Is(err, replay.ErrDiverged) {
		printState(out, snap)
		return err
	}
	if err != nil {
		return err
	}

	printState(out, snap)
	fmt.Fprintln(out, "verified: final state matches the recording")
	return nil
}
