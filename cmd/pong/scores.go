package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresID    string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show match history",
	Long: `Display recent finished matches and side win totals. Without a
variant, matches of every variant are listed.

Examples:
  pong scores
  pong scores brave --limit 25
  pong scores --id 0f8c3a52-6f0e-4d51-9d2c-5b7e6a1c2d3e
  pong scores pong --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of matches to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the history of the variant")
	scoresCmd.Flags().StringVar(&flagScoresID, "id", "", "Show a single match by ID")
}

func runScores(cmd *cobra.Command, args []string) error {
	variant := ""
	if len(args) > 0 {
		variant = args[0]
		if !registry.Exists(variant) {
			return fmt.Errorf("unknown variant %q (run 'pong list' to see available variants)", variant)
		}
	}

	if flagScoresClear && variant == "" {
		return errors.New("--clear needs a variant")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresID != "" {
		m, err := store.MatchByID(flagScoresID)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("no match with ID %q", flagScoresID)
		}
		printMatch(out, *m)
		return nil
	}

	if flagScoresClear {
		if err := store.ClearMatches(variant); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared match history for %s.\n", variant)
		return nil
	}

	if err := printTotals(out, store, variant); err != nil {
		return err
	}

	matches, err := store.RecentMatches(variant, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matches recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Finish a match with 'pong play' to start the history.")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-8s  %-7s  %-6s  %-9s  %-6s  %-8s  %s\n", "Date", "Variant", "Score", "Winner", "End", "Time", "ID", "Player")
	fmt.Fprintf(out, "  %-16s  %-8s  %-7s  %-6s  %-9s  %-6s  %-8s  %s\n", "----", "-------", "-----", "------", "---", "----", "--", "------")

	for _, m := range matches {
		fmt.Fprintf(out, "  %-16s  %-8s  %-7s  %-6s  %-9s  %-6s  %-8s  %s\n",
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.Variant,
			fmt.Sprintf("%d:%d", m.ScoreLeft, m.ScoreRight),
			winnerLabel(m.Winner),
			m.EndReason,
			m.Duration.Round(time.Second),
			shortID(m.ID),
			m.Player,
		)
	}
	return nil
}

// printMatch prints every recorded field of one match.
func printMatch(w io.Writer, m storage.Match) {
	fmt.Fprintf(w, "Match %s\n\n", m.ID)
	fmt.Fprintf(w, "  Variant:  %s\n", m.Variant)
	fmt.Fprintf(w, "  Score:    %d:%d\n", m.ScoreLeft, m.ScoreRight)
	fmt.Fprintf(w, "  Winner:   %s\n", winnerLabel(m.Winner))
	fmt.Fprintf(w, "  End:      %s\n", m.EndReason)
	fmt.Fprintf(w, "  Time:     %s (%d frames)\n", m.Duration.Round(time.Millisecond), m.Frames)
	fmt.Fprintf(w, "  Player:   %s\n", m.Player)
	fmt.Fprintf(w, "  Played:   %s\n", m.CreatedAt.Format("2006-01-02 15:04:05"))
}

func winnerLabel(w string) string {
	if w == storage.WinnerNone {
		return "-"
	}
	return w
}

// shortID is enough of a UUID to pick it out of the table.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printTotals prints win totals for one variant, or every variant when empty.
func printTotals(w io.Writer, store *storage.Store, variant string) error {
	ids := []string{variant}
	if variant == "" {
		ids = ids[:0]
		for _, v := range registry.List() {
			ids = append(ids, v.ID)
		}
	}

	fmt.Fprintln(w, "Match History")
	fmt.Fprintln(w)
	for _, id := range ids {
		stats, err := store.VariantStats(id)
		if err != nil {
			return err
		}
		if stats.Matches == 0 {
			fmt.Fprintf(w, "  %-8s  no matches\n", id)
			continue
		}
		fmt.Fprintf(w, "  %-8s  %d matches, left %d, right %d, avg %s, last %s\n",
			id,
			stats.Matches,
			stats.LeftWins,
			stats.RightWins,
			stats.AvgDuration.Round(time.Second),
			stats.LastPlayed.Format("2006-01-02 15:04"),
		)
	}
	return nil
}
