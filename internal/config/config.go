// Package config provides YAML-based game configuration loading and
// difficulty presets for the breakout game.
package config

import (
	"errors"
	"fmt"
)

// BreakoutConfig contains all tunable parameters of the breakout simulation.
// World units are abstract "pixels"; the terminal host scales them to cells.
type BreakoutConfig struct {
	Field    BreakoutField    `yaml:"field"`
	Paddle   BreakoutPaddle   `yaml:"paddle"`
	Ball     BreakoutBall     `yaml:"ball"`
	PowerUps BreakoutPowerUps `yaml:"powerups"`
	Gameplay BreakoutGameplay `yaml:"gameplay"`
}

// BreakoutField defines the play-field dimensions.
type BreakoutField struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// BrickArea is the fraction of the field height occupied by the brick grid.
	BrickArea float64 `yaml:"brick_area"`
}

// BreakoutPaddle defines paddle parameters.
type BreakoutPaddle struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`         // Units per second
	SizeIncrease float64 `yaml:"size_increase"` // Width added per pad-size power-up
}

// BreakoutBall defines ball parameters.
type BreakoutBall struct {
	Radius    float64 `yaml:"radius"`
	VelocityX float64 `yaml:"velocity_x"` // Initial horizontal velocity
	VelocityY float64 `yaml:"velocity_y"` // Initial vertical velocity (negative = up)
	Strength  float64 `yaml:"strength"`   // Paddle deflection strength
}

// BreakoutPowerUps defines power-up parameters.
type BreakoutPowerUps struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	FallSpeed       float64 `yaml:"fall_speed"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	PositiveChance  int     `yaml:"positive_chance"` // 1 in N for helpful power-ups
	NegativeChance  int     `yaml:"negative_chance"` // 1 in N for confuse/chaos
}

// BreakoutGameplay defines session-level parameters.
type BreakoutGameplay struct {
	Lives         int     `yaml:"lives"`
	ShakeDuration float64 `yaml:"shake_duration"` // Seconds
}

// Validate reports every invalid parameter, joined into one error.
func (c BreakoutConfig) Validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %gx%g", c.Field.Width, c.Field.Height))
	}
	if c.Field.BrickArea <= 0 || c.Field.BrickArea > 1 {
		errs = append(errs, fmt.Errorf("field brick_area must be in (0, 1], got %g", c.Field.BrickArea))
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		errs = append(errs, fmt.Errorf("paddle size must be positive, got %gx%g", c.Paddle.Width, c.Paddle.Height))
	}
	if c.Paddle.Speed <= 0 {
		errs = append(errs, fmt.Errorf("paddle speed must be positive, got %g", c.Paddle.Speed))
	}
	if c.Ball.Radius <= 0 {
		errs = append(errs, fmt.Errorf("ball radius must be positive, got %g", c.Ball.Radius))
	}
	if c.Ball.VelocityY >= 0 {
		errs = append(errs, fmt.Errorf("ball velocity_y must be negative (upward), got %g", c.Ball.VelocityY))
	}
	if c.Ball.Strength <= 0 {
		errs = append(errs, fmt.Errorf("ball strength must be positive, got %g", c.Ball.Strength))
	}
	if c.PowerUps.Width <= 0 || c.PowerUps.Height <= 0 {
		errs = append(errs, fmt.Errorf("powerup size must be positive, got %gx%g", c.PowerUps.Width, c.PowerUps.Height))
	}
	// Power-ups must fall to leave the field, otherwise they are never collected.
	if c.PowerUps.FallSpeed <= 0 {
		errs = append(errs, fmt.Errorf("powerup fall_speed must be positive, got %g", c.PowerUps.FallSpeed))
	}
	if c.PowerUps.SpeedMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("powerup speed_multiplier must be positive, got %g", c.PowerUps.SpeedMultiplier))
	}
	if c.PowerUps.PositiveChance < 1 || c.PowerUps.NegativeChance < 1 {
		errs = append(errs, errors.New("powerup chances must be at least 1"))
	}
	if c.Gameplay.Lives < 1 {
		errs = append(errs, fmt.Errorf("gameplay lives must be at least 1, got %d", c.Gameplay.Lives))
	}
	if c.Gameplay.ShakeDuration < 0 {
		errs = append(errs, fmt.Errorf("gameplay shake_duration must not be negative, got %g", c.Gameplay.ShakeDuration))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid breakout config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI string to a preset. Empty input yields "".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Paddle.Width *= 1.3
		cfg.Ball.VelocityX *= 0.8
		cfg.Ball.VelocityY *= 0.8
	case DifficultyHard:
		cfg.Paddle.Width *= 0.8
		cfg.Ball.VelocityX *= 1.25
		cfg.Ball.VelocityY *= 1.25
	}
}
