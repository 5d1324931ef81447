package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:        0.4,
			Friction:       0.85,
			FrictionSnap:   0.05,
			WallSlideSpeed: 2,
			LandingImpact:  8,
			FallMargin:     100,
		},
		Player: PlatformerPlayer{
			Speed:               5,
			JumpPower:           12,
			StompBounce:         0.6,
			StompTolerance:      10,
			HurtInvulnerability: 120,
			StarInvulnerability: 600,
		},
		Combat: PlatformerCombat{
			FireballSpeed:    8,
			FireballLift:     2,
			FireballGravity:  0.25,
			FireballLife:     120,
			FireballCooldown: 20,
		},
		Camera: PlatformerCamera{
			Lerp:           0.1,
			ViewportWidth:  800,
			ViewportHeight: 600,
			TrailSpeed:     3,
			TrailLength:    10,
			TrailLife:      10,
		},
		Scoring: PlatformerScoring{
			Stomp:      100,
			Fireball:   100,
			BossHit:    50,
			BossDefeat: 1000,
			Coin:       10,
			PowerUp:    50,
		},
		Gameplay: PlatformerGameplay{
			Lives: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 12,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "platformer":
		return defaultPlatformerYAML
	default:
		return nil
	}
}
