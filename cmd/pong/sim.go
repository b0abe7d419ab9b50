package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pong/internal/arena"
	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

var (
	flagSimVariant    string
	flagSimFrames     int
	flagSimDT         float64
	flagSimConfig     string
	flagSimDifficulty string
	flagSimMoves      bool
)

// Constant axis readings; an axis whose flag is not given has no reading.
var simAxes = []struct {
	flag string
	axis arena.AxisID
}{
	{"left", arena.AxisLeftPaddle},
	{"right", arena.AxisRightPaddle},
	{"brave-x", arena.AxisBraveX},
	{"brave-y", arena.AxisBraveY},
}

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Advance a round by a fixed dt for a number of frames with constant
axis readings, then print the events and the final snapshot as YAML.
The same flags always produce the same output and hash.

Examples:
  pong sim
  pong sim --frames 600 --left 1 --right -0.5
  pong sim --variant brave --brave-x 1 --brave-y -1 --moves
  pong sim --dt 0.5 --frames 20 --difficulty hard

--dt may not exceed the longest frame the arena resolves without the
ball skipping past a paddle (about 1.4s for the default arena).`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimVariant, "variant", "pong", "Variant to simulate")
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 600, "Number of frames to advance")
	simCmd.Flags().Float64Var(&flagSimDT, "dt", 1.0/60, "Seconds per frame")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom arena config (YAML or TOML)")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	simCmd.Flags().BoolVar(&flagSimMoves, "moves", false, "Include paddle and mover movement events")
	for _, a := range simAxes {
		simCmd.Flags().Float64(a.flag, 0, fmt.Sprintf("Constant reading for the %s axis", a.axis))
	}
}

type simEvent struct {
	Frame uint64 `yaml:"frame"`
	Kind  string `yaml:"kind"`
	Side  string `yaml:"side,omitempty"`
	Mover string `yaml:"mover,omitempty"`
}

type simReport struct {
	Variant string           `yaml:"variant"`
	Config  string           `yaml:"config"`
	Frames  int              `yaml:"frames"`
	DT      float64          `yaml:"dt"`
	Inputs  arena.AxisValues `yaml:"inputs,omitempty"`
	Winner  string           `yaml:"winner,omitempty"`
	Events  []simEvent       `yaml:"events"`
	Final   arena.Snapshot   `yaml:"final"`
	Hash    string           `yaml:"hash"`
}

// simulate runs the round and collects the report. It stops early when a
// side reaches the win score.
func simulate(round *arena.Round, f config.File, frames int, dt float64, in arena.AxisValues, moves bool, logger *log.Logger) (simReport, error) {
	report := simReport{
		Config: f.Source,
		DT:     dt,
		Inputs: in,
		Events: []simEvent{},
	}

	for range frames {
		events, err := arena.Advance(round, dt, in)
		if err != nil {
			return report, fmt.Errorf("frame %d: %w", report.Frames+1, err)
		}
		report.Frames++

		for _, e := range events {
			if !moves && (e.Kind == arena.EventPaddleMoved || e.Kind == arena.EventMoverMoved) {
				continue
			}
			se := simEvent{Frame: round.Frame(), Kind: e.Kind.String(), Mover: e.Mover}
			if e.Kind == arena.EventPaddleMoved || e.Kind == arena.EventScored {
				se.Side = e.Side.String()
			}
			report.Events = append(report.Events, se)
			logger.Debug("event", "frame", se.Frame, "kind", se.Kind, "side", se.Side)
		}

		if w := f.Match.WinScore; w > 0 {
			for _, side := range []arena.Side{arena.Left, arena.Right} {
				if int(round.Score(side)) >= w {
					report.Winner = side.String()
				}
			}
			if report.Winner != "" {
				break
			}
		}
	}

	report.Final = round.Snapshot()
	report.Hash = fmt.Sprintf("%016x", report.Final.Hash())
	return report, nil
}

func runSim(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr, "pong-sim")
	if err != nil {
		return err
	}
	defer closeLog()

	f, err := loadConfig(flagSimConfig, flagSimDifficulty, -1)
	if err != nil {
		return err
	}

	round, err := registry.Create(flagSimVariant, f.ArenaConfig())
	if err != nil {
		return err
	}

	in := arena.AxisValues{}
	for _, a := range simAxes {
		if cmd.Flags().Changed(a.flag) {
			v, _ := cmd.Flags().GetFloat64(a.flag)
			in[a.axis] = v
		}
	}

	logger.Info("simulating", "variant", flagSimVariant, "frames", flagSimFrames, "dt", flagSimDT, "config", f.Source)

	report, err := simulate(round, f, flagSimFrames, flagSimDT, in, flagSimMoves, logger)
	if err != nil {
		logger.Error("simulation stopped", "frame", report.Frames, "error", err)
		return err
	}
	report.Variant = flagSimVariant

	out, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
