// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

// PlatformerConfig contains all tunable values of the platformer.
type PlatformerConfig struct {
	Physics    PlatformerPhysics  `yaml:"physics"`
	Player     PlatformerPlayer   `yaml:"player"`
	Combat     PlatformerCombat   `yaml:"combat"`
	Camera     PlatformerCamera   `yaml:"camera"`
	Scoring    PlatformerScoring  `yaml:"scoring"`
	Gameplay   PlatformerGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig   `yaml:"difficulty"`
}

// PlatformerPhysics defines per-tick physics constants.
type PlatformerPhysics struct {
	Gravity        float64 `yaml:"gravity"`
	Friction       float64 `yaml:"friction"`
	FrictionSnap   float64 `yaml:"friction_snap"`
	WallSlideSpeed float64 `yaml:"wall_slide_speed"`
	LandingImpact  float64 `yaml:"landing_impact"`
	FallMargin     float64 `yaml:"fall_margin"`
}

// PlatformerPlayer defines player movement and damage parameters.
type PlatformerPlayer struct {
	Speed               float64 `yaml:"speed"`
	JumpPower           float64 `yaml:"jump_power"`
	StompBounce         float64 `yaml:"stomp_bounce"`
	StompTolerance      float64 `yaml:"stomp_tolerance"`
	HurtInvulnerability int     `yaml:"hurt_invulnerability"` // ticks
	StarInvulnerability int     `yaml:"star_invulnerability"` // ticks
}

// PlatformerCombat defines fireball parameters.
type PlatformerCombat struct {
	FireballSpeed    float64 `yaml:"fireball_speed"`
	FireballLift     float64 `yaml:"fireball_lift"`
	FireballGravity  float64 `yaml:"fireball_gravity"`
	FireballLife     int     `yaml:"fireball_life"`
	FireballCooldown int     `yaml:"fireball_cooldown"`
}

// PlatformerCamera defines viewport and trail parameters.
type PlatformerCamera struct {
	Lerp           float64 `yaml:"lerp"`
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
	TrailSpeed     float64 `yaml:"trail_speed"`
	TrailLength    int     `yaml:"trail_length"`
	TrailLife      int     `yaml:"trail_life"`
}

// PlatformerScoring defines points per event.
type PlatformerScoring struct {
	Stomp      int `yaml:"stomp"`
	Fireball   int `yaml:"fireball"`
	BossHit    int `yaml:"boss_hit"`
	BossDefeat int `yaml:"boss_defeat"`
	Coin       int `yaml:"coin"`
	PowerUp    int `yaml:"power_up"`
}

// PlatformerGameplay defines run-level settings.
type PlatformerGameplay struct {
	Lives int `yaml:"lives"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Level number or score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// LivesForPreset returns the starting lives for a difficulty preset, or 0
// to keep the configured value.
func LivesForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyNormal:
		return 3
	case DifficultyHard:
		return 2
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
