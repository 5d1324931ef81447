package engine

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// Rect is the collision box shared by every entity.
type Rect = levels.Rect

// PowerState is the player's current power-up.
type PowerState int

const (
	PowerNormal PowerState = iota
	PowerSuper
	PowerFire
)

func (s PowerState) String() string {
	switch s {
	case PowerNormal:
		return "normal"
	case PowerSuper:
		return "super"
	case PowerFire:
		return "fire"
	default:
		return "unknown"
	}
}

// animFrameTicks is how many ticks each animation frame lasts.
const animFrameTicks = 8

// animFrames is the length of every animation cycle.
const animFrames = 4

// Player is the controllable character.
type Player struct {
	Rect
	VX, VY            float64
	Speed             float64
	JumpPower         float64
	OnGround          bool
	WasOnGround       bool
	WallSliding       bool
	WallDir           int // +1 wall on the right, -1 on the left
	Facing            int
	Power             PowerState
	InvulnerableTicks int
	FireballCooldown  int
	AnimFrame         int
	AnimTimer         int
}

// NewPlayer places a normal-sized player at (x, y).
func NewPlayer(x, y float64, t Tuning) Player {
	return Player{
		Rect:      Rect{X: x, Y: y, W: PlayerWidth, H: PlayerHeight},
		Speed:     t.PlayerSpeed,
		JumpPower: t.JumpPower,
		Facing:    1,
	}
}

// SetPower changes the power state and resizes the hitbox, keeping the
// player's feet where they were.
func (p *Player) SetPower(s PowerState) {
	p.Power = s
	h := float64(PlayerHeight)
	if s != PowerNormal {
		h = PlayerBigHeight
	}
	bottom := p.Bottom()
	p.H = h
	p.Y = bottom - h
}

// Invulnerable reports whether the player currently ignores damage.
func (p *Player) Invulnerable() bool {
	return p.InvulnerableTicks > 0
}

// Airborne reports whether the player is neither grounded nor on a wall.
func (p *Player) Airborne() bool {
	return !p.OnGround && !p.WallSliding
}

// Enemy is a live patrolling enemy.
type Enemy struct {
	Rect
	VX         float64
	MinX, MaxX float64
	Kind       levels.EnemyKind
	AnimFrame  int
	AnimTimer  int
}

// Boss is the level's boss. A defeated boss is removed from the World.
type Boss struct {
	Rect
	VX          float64
	MinX, MaxX  float64
	Health      int
	MaxHealth   int
	AttackTimer int
	Kind        levels.BossKind
	AnimFrame   int
	AnimTimer   int
}

// AttackInterval is the number of ticks between attacks for each boss kind.
func AttackInterval(k levels.BossKind) int {
	switch k {
	case levels.BossGolem:
		return 150
	case levels.BossWizard:
		return 120
	case levels.BossDragon:
		return 100
	case levels.BossKing:
		return 90
	default:
		return 150
	}
}

// BossShot is a hostile projectile spawned by a boss attack.
type BossShot struct {
	Rect
	VX, VY  float64
	Gravity float64
	Life    int
	Kind    levels.BossKind
}

// Coin is a collectible worth points.
type Coin struct {
	Rect
	Collected bool
}

// PowerUp is a collectible that changes the player's power state.
type PowerUp struct {
	Rect
	Kind      levels.PowerUpKind
	Collected bool
}

// Platform is a solid box.
type Platform struct {
	Rect
	Kind levels.PlatformKind
}

// Fireball is the player's projectile.
type Fireball struct {
	Rect
	VX, VY float64
	Life   int
}

// fireballSize is the side of a fireball's hitbox.
const fireballSize = 10

// TrailPoint is a fading sample of a past player position.
type TrailPoint struct {
	X, Y float64
	Life int
}

// Camera is the horizontal scroll offset of the viewport.
type Camera struct {
	X float64
}

// BackgroundLayer is a decorative parallax band. Factor is the fraction of
// the camera movement the layer follows.
type BackgroundLayer struct {
	Factor float64
	Glyph  rune
	Row    float64 // world y of the band's top
	Height float64
	Period float64 // horizontal repeat distance in world units
	Color  core.Color
}

// DefaultBackgrounds returns the parallax layers drawn behind every level.
func DefaultBackgrounds() []BackgroundLayer {
	return []BackgroundLayer{
		{Factor: 0.1, Glyph: '.', Row: 40, Height: 80, Period: 170, Color: core.ColorWhite},
		{Factor: 0.3, Glyph: '^', Row: 380, Height: 60, Period: 260, Color: core.ColorGray},
		{Factor: 0.6, Glyph: '"', Row: 500, Height: 40, Period: 120, Color: core.ColorGreen},
	}
}

func advanceAnim(frame, timer *int) {
	*timer++
	if *timer >= animFrameTicks {
		*timer = 0
		*frame = (*frame + 1) % animFrames
	}
}
