package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
)

var (
	flagCfgPath       string
	flagCfgDifficulty string
	flagCfgFormat     string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective arena config",
	Long: `Resolve the arena config the same way 'play' does and print it.
The output is a complete config file that can be edited and passed back
with --config.

Search order:
  1. --config <path>
  2. ~/.pong/configs/arena.yaml (or .toml)
  3. ./configs/arena.yaml (or .toml)
  4. built-in defaults

Examples:
  pong config
  pong config --difficulty hard
  pong config --format toml > arena.toml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagCfgPath, "config", "", "Path to custom arena config (YAML or TOML)")
	configCmd.Flags().StringVar(&flagCfgDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	configCmd.Flags().StringVar(&flagCfgFormat, "format", config.FormatYAML, "Output format: yaml, toml")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	f, err := loadConfig(flagCfgPath, flagCfgDifficulty, -1)
	if err != nil {
		return err
	}

	out, err := config.Encode(f, flagCfgFormat)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "# source: %s\n", f.Source)
	_, err = w.Write(out)
	return err
}
