// pong is a deterministic Pong arena you can play in the terminal, replay
// headlessly, or serve over SSH.
//
// Usage:
//
//	pong list                - List available variants
//	pong play [variant]      - Play a variant (menu when omitted)
//	pong sim                 - Run a headless simulation and print the result
//	pong config              - Print the effective arena config
//	pong scores [variant]    - Show recent matches and win totals
//	pong serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: 60)
//	--db <path>          - Set database path (default: ~/.pong/matches.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Append logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import variants to register them
	_ "github.com/vovakirdan/tui-pong/internal/games/brave"
	_ "github.com/vovakirdan/tui-pong/internal/games/pong"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "TUI Pong - a deterministic Pong arena in your terminal",
	Long: `TUI Pong runs a fixed-geometry Pong arena: two paddles, one ball,
and optionally a free-moving "brave" block, all driven by input axes.

Available commands:
  list     - Show all available variants
  play     - Play a variant (or pick one from the menu)
  sim      - Run a headless, reproducible simulation
  config   - Print the effective arena config
  scores   - View match history
  serve    - Start SSH server for remote play

Examples:
  pong list
  pong play
  pong play brave --difficulty hard
  pong sim --frames 600 --left 1
  pong config --format toml
  pong serve --ssh :2222`,
	// main reports errors returned by commands
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/matches.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the logger for a command. Logs go to --log-file when
// set, otherwise to out. The returned function closes the log file.
func newLogger(out io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}
