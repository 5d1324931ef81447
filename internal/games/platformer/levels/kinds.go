package levels

import "fmt"

// PlatformKind distinguishes solid ground from floating platforms.
type PlatformKind int

const (
	PlatformGround PlatformKind = iota
	PlatformFloating
)

// String returns the file-format name of the kind.
func (k PlatformKind) String() string {
	switch k {
	case PlatformGround:
		return "ground"
	case PlatformFloating:
		return "platform"
	default:
		return "unknown"
	}
}

// EnemyKind is the closed set of patrolling enemies.
type EnemyKind int

const (
	EnemyWalker EnemyKind = iota // stompable ground patroller
	EnemySpiker                  // hurts on stomp, only fireballs defeat it
	EnemyFlyer                   // stompable, patrols in the air
)

// String returns the file-format name of the kind.
func (k EnemyKind) String() string {
	switch k {
	case EnemyWalker:
		return "walker"
	case EnemySpiker:
		return "spiker"
	case EnemyFlyer:
		return "flyer"
	default:
		return "unknown"
	}
}

// Stompable reports whether landing on this enemy defeats it.
func (k EnemyKind) Stompable() bool {
	switch k {
	case EnemyWalker, EnemyFlyer:
		return true
	default:
		return false
	}
}

// Size returns the default hitbox for the kind.
func (k EnemyKind) Size() (w, h float64) {
	switch k {
	case EnemyFlyer:
		return 32, 24
	default:
		return 30, 30
	}
}

// PowerUpKind is the closed set of collectible power-ups.
type PowerUpKind int

const (
	PowerUpMushroom PowerUpKind = iota
	PowerUpFireFlower
	PowerUpStar
)

// String returns the file-format name of the kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpMushroom:
		return "mushroom"
	case PowerUpFireFlower:
		return "fire_flower"
	case PowerUpStar:
		return "star"
	default:
		return "unknown"
	}
}

// BossKind is the closed set of bosses; each has its own attack pattern.
type BossKind int

const (
	BossGolem BossKind = iota
	BossWizard
	BossDragon
	BossKing
)

// String returns the file-format name of the kind.
func (k BossKind) String() string {
	switch k {
	case BossGolem:
		return "golem"
	case BossWizard:
		return "wizard"
	case BossDragon:
		return "dragon"
	case BossKing:
		return "king"
	default:
		return "unknown"
	}
}

// ParsePlatformKind maps a file-format name to a PlatformKind.
func ParsePlatformKind(s string) (PlatformKind, error) {
	switch s {
	case "ground", "":
		return PlatformGround, nil
	case "platform":
		return PlatformFloating, nil
	}
	return 0, fmt.Errorf("unknown platform kind %q", s)
}

// ParseEnemyKind maps a file-format name to an EnemyKind.
func ParseEnemyKind(s string) (EnemyKind, error) {
	switch s {
	case "walker", "":
		return EnemyWalker, nil
	case "spiker":
		return EnemySpiker, nil
	case "flyer":
		return EnemyFlyer, nil
	}
	return 0, fmt.Errorf("unknown enemy kind %q", s)
}

// ParsePowerUpKind maps a file-format name to a PowerUpKind.
func ParsePowerUpKind(s string) (PowerUpKind, error) {
	switch s {
	case "mushroom":
		return PowerUpMushroom, nil
	case "fire_flower", "fireflower":
		return PowerUpFireFlower, nil
	case "star":
		return PowerUpStar, nil
	}
	return 0, fmt.Errorf("unknown power-up kind %q", s)
}

// ParseBossKind maps a file-format name to a BossKind.
func ParseBossKind(s string) (BossKind, error) {
	switch s {
	case "golem":
		return BossGolem, nil
	case "wizard":
		return BossWizard, nil
	case "dragon":
		return BossDragon, nil
	case "king":
		return BossKing, nil
	}
	return 0, fmt.Errorf("unknown boss kind %q", s)
}
