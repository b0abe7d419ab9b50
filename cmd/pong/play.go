package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWinScore   int
	flagHold       time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start a match in the terminal. Without a variant, a menu lets you pick
one and return to it after each match.

Controls:
  W/S        - Left paddle
  Up/Down    - Right paddle
  I/J/K/L    - Brave block (brave variant)
  P/Space    - Pause
  R          - Restart (paused or after the match)
  Esc/B      - Back to menu
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower ball, taller paddles
  normal - Config values as written
  hard   - Faster ball and paddles, shorter paddles

Examples:
  pong play
  pong play pong --win-score 11
  pong play brave --difficulty easy
  pong play --config ./my-arena.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom arena config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().IntVar(&flagWinScore, "win-score", -1, "Points needed to win (0 = endless, -1 = from config)")
	playCmd.Flags().DurationVar(&flagHold, "hold", tui.DefaultHoldDuration, "How long one key press keeps a paddle moving")
}

// loadConfig resolves the arena config from the search path, then applies
// the difficulty preset and the win score override.
func loadConfig(path, difficulty string, winScore int) (config.File, error) {
	f, err := config.Load(path)
	if err != nil {
		return config.File{}, err
	}

	preset, err := config.ParseDifficulty(difficulty)
	if err != nil {
		return config.File{}, err
	}
	config.ApplyPreset(&f, preset)

	if winScore >= 0 {
		f.Match.WinScore = winScore
	}

	if err := f.Validate(); err != nil {
		return config.File{}, err
	}
	return f, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	variant := ""
	if len(args) > 0 {
		variant = args[0]
		if !registry.Exists(variant) {
			return fmt.Errorf("unknown variant %q (run 'pong list' to see available variants)", variant)
		}
	}

	arenaFile, err := loadConfig(flagConfig, flagDifficulty, flagWinScore)
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs are dropped unless --log-file is set
	logger, closeLog, err := newLogger(io.Discard, "pong")
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Debug("config loaded", "source", arenaFile.Source)

	runtime := core.DefaultConfig()
	runtime.TickRate = flagFPS
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The match still plays, it just is not recorded
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
	} else {
		defer store.Close()
	}

	opts := tui.GameOptions{
		Variant: variant,
		Config:  arenaFile,
		Runtime: runtime,
		Store:   store,
		Logger:  logger,
		Player:  os.Getenv("USER"),
		Hold:    flagHold,
	}

	if variant == "" {
		err = tui.RunSession(opts)
	} else {
		err = tui.Run(opts)
	}
	if err != nil {
		return fmt.Errorf("running match: %w", err)
	}
	return nil
}
