package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetScaling describes how a preset changes the loaded file.
type presetScaling struct {
	ballSpeed    float64 // Multiplier on both velocity components
	paddleSpeed  float64
	paddleHeight float64
}

var presets = map[DifficultyPreset]presetScaling{
	DifficultyEasy:   {ballSpeed: 0.75, paddleSpeed: 1.0, paddleHeight: 1.25},
	DifficultyNormal: {ballSpeed: 1.0, paddleSpeed: 1.0, paddleHeight: 1.0},
	DifficultyHard:   {ballSpeed: 1.35, paddleSpeed: 1.2, paddleHeight: 0.75},
}

// ParseDifficulty validates a preset name. An empty name means normal.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(name)
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
	return p, nil
}

// ApplyPreset scales speeds and paddle size for a difficulty preset.
// The scaling happens once at load time; speeds never change mid-round.
func ApplyPreset(f *File, preset DifficultyPreset) {
	s, ok := presets[preset]
	if !ok {
		return
	}

	f.Ball.VelocityX *= s.ballSpeed
	f.Ball.VelocityY *= s.ballSpeed
	f.Paddle.Speed *= s.paddleSpeed
	f.Paddle.Height = min(f.Paddle.Height*s.paddleHeight, f.Arena.Height)
}
