package engine

// Tuning holds the per-tick constants of the simulation. Values are per
// tick, not per second: the host is expected to tick at roughly 60 Hz.
type Tuning struct {
	Gravity        float64 // added to player VY every tick
	Friction       float64 // VX multiplier when no horizontal input
	FrictionSnap   float64 // |VX| below this snaps to 0
	PlayerSpeed    float64
	JumpPower      float64
	WallSlideSpeed float64 // max fall speed while wall sliding
	StompBounce    float64 // fraction of JumpPower used for the stomp bounce
	StompTolerance float64 // how far below an enemy's top a stomp still counts
	LandingImpact  float64 // minimum VY for a landing effect
	FallMargin     float64 // distance below the level that costs a life

	FireballSpeed    float64
	FireballLift     float64
	FireballGravity  float64
	FireballLife     int
	FireballCooldown int

	HurtInvulnerability int
	StarInvulnerability int

	CameraLerp     float64
	ViewportWidth  float64
	ViewportHeight float64

	TrailSpeed  float64
	TrailLength int
	TrailLife   int

	EnemySpeedScale float64 // multiplier applied to enemy and boss patrol speed
	StartingLives   int

	Points Points
}

// Points is the score table.
type Points struct {
	Stomp      int
	Fireball   int
	BossHit    int
	BossDefeat int
	Coin       int
	PowerUp    int
}

// Player hitbox sizes.
const (
	PlayerWidth     = 28
	PlayerHeight    = 32
	PlayerBigHeight = 44
)

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:        0.4,
		Friction:       0.85,
		FrictionSnap:   0.05,
		PlayerSpeed:    5,
		JumpPower:      12,
		WallSlideSpeed: 2,
		StompBounce:    0.6,
		StompTolerance: 10,
		LandingImpact:  8,
		FallMargin:     100,

		FireballSpeed:    8,
		FireballLift:     2,
		FireballGravity:  0.25,
		FireballLife:     120,
		FireballCooldown: 20,

		HurtInvulnerability: 120,
		StarInvulnerability: 600,

		CameraLerp:     0.1,
		ViewportWidth:  800,
		ViewportHeight: 600,

		TrailSpeed:  3,
		TrailLength: 10,
		TrailLife:   10,

		EnemySpeedScale: 1,
		StartingLives:   3,

		Points: Points{
			Stomp:      100,
			Fireball:   100,
			BossHit:    50,
			BossDefeat: 1000,
			Coin:       10,
			PowerUp:    50,
		},
	}
}

// normalized fills zero fields with defaults so a partially specified
// tuning never yields a frozen or unbeatable game.
func (t Tuning) normalized() Tuning {
	d := DefaultTuning()
	setF := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	setI := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	setF(&t.Gravity, d.Gravity)
	setF(&t.Friction, d.Friction)
	setF(&t.FrictionSnap, d.FrictionSnap)
	setF(&t.PlayerSpeed, d.PlayerSpeed)
	setF(&t.JumpPower, d.JumpPower)
	setF(&t.WallSlideSpeed, d.WallSlideSpeed)
	setF(&t.StompBounce, d.StompBounce)
	setF(&t.StompTolerance, d.StompTolerance)
	setF(&t.LandingImpact, d.LandingImpact)
	setF(&t.FallMargin, d.FallMargin)
	setF(&t.FireballSpeed, d.FireballSpeed)
	setF(&t.FireballLift, d.FireballLift)
	setF(&t.FireballGravity, d.FireballGravity)
	setI(&t.FireballLife, d.FireballLife)
	setI(&t.FireballCooldown, d.FireballCooldown)
	setI(&t.HurtInvulnerability, d.HurtInvulnerability)
	setI(&t.StarInvulnerability, d.StarInvulnerability)
	setF(&t.CameraLerp, d.CameraLerp)
	setF(&t.ViewportWidth, d.ViewportWidth)
	setF(&t.ViewportHeight, d.ViewportHeight)
	setF(&t.TrailSpeed, d.TrailSpeed)
	setI(&t.TrailLength, d.TrailLength)
	setI(&t.TrailLife, d.TrailLife)
	setF(&t.EnemySpeedScale, d.EnemySpeedScale)
	setI(&t.StartingLives, d.StartingLives)
	if t.Points == (Points{}) {
		t.Points = d.Points
	}
	return t
}
