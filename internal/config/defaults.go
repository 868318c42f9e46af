package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: BreakoutField{
			Width:     800,
			Height:    600,
			BrickArea: 0.5, // Bricks fill the top half
		},
		Paddle: BreakoutPaddle{
			Width:        100,
			Height:       20,
			Speed:        500,
			SizeIncrease: 50,
		},
		Ball: BreakoutBall{
			Radius:    12.5,
			VelocityX: 100,
			VelocityY: -350,
			Strength:  2,
		},
		PowerUps: BreakoutPowerUps{
			Width:           60,
			Height:          20,
			FallSpeed:       150,
			SpeedMultiplier: 1.2,
			PositiveChance:  75,
			NegativeChance:  15, // Negative effects spawn ~5x more often
		},
		Gameplay: BreakoutGameplay{
			Lives:         3,
			ShakeDuration: 0.05,
		},
	}
}

// DefaultYAML returns the embedded default YAML, for `config` dumps and docs.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
