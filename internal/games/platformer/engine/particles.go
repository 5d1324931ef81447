package engine

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ParticleKind selects a particle's motion and appearance.
type ParticleKind int

const (
	ParticleLanding ParticleKind = iota
	ParticleWallSlide
	ParticleSparkle
	ParticlePowerUp
	ParticleStomp
	ParticleHit
	ParticleBossHit
	ParticleBossDefeat
	ParticleBossAttack
	ParticleDamage
	ParticleDust
)

// MaxParticles caps live particles; the oldest are dropped first.
const MaxParticles = 600

const (
	particleGravity = 0.15
	particleDamping = 0.98
)

// Particle is a purely cosmetic point sprite.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Kind    ParticleKind
	Size    float64
	Color   core.Color
}

// Fade returns the remaining life as a fraction in [0, 1].
func (p Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// Particles owns the live particle list and the RNG that shapes new ones.
type Particles struct {
	items []Particle
	rng   *rand.Rand
}

// NewParticles creates an empty particle system seeded for reproducible
// effects.
func NewParticles(seed int64) Particles {
	return Particles{rng: rand.New(rand.NewSource(seed))}
}

// Items returns the live particles. The slice is only valid until the
// next tick.
func (ps *Particles) Items() []Particle {
	return ps.items
}

// Len returns the number of live particles.
func (ps *Particles) Len() int {
	return len(ps.items)
}

// Reset drops every particle.
func (ps *Particles) Reset() {
	ps.items = ps.items[:0]
}

type particleStyle struct {
	life      int
	minSpeed  float64
	maxSpeed  float64
	upward    bool // spray biased upwards instead of radial
	gravity   bool
	damped    bool
	size      float64
	colors    []core.Color
	spreadX   float64 // spawn jitter around the origin
	spreadY   float64
	baseSpeed float64 // extra upward push for upward sprays
}

func styleFor(kind ParticleKind) particleStyle {
	switch kind {
	case ParticleLanding:
		return particleStyle{life: 15, minSpeed: 0.5, maxSpeed: 2, upward: true, gravity: true, size: 2,
			colors: []core.Color{core.ColorWhite, core.ColorGray}, spreadX: 12, baseSpeed: 1}
	case ParticleWallSlide:
		return particleStyle{life: 12, minSpeed: 0.2, maxSpeed: 0.8, size: 1,
			colors: []core.Color{core.ColorGray}, spreadY: 6}
	case ParticleSparkle:
		return particleStyle{life: 20, minSpeed: 1, maxSpeed: 3, damped: true, size: 2,
			colors: []core.Color{core.ColorYellow, core.ColorBrightYellow}}
	case ParticlePowerUp:
		return particleStyle{life: 30, minSpeed: 1, maxSpeed: 3, damped: true, size: 3,
			colors: []core.Color{core.ColorMagenta, core.ColorBrightMagenta, core.ColorBrightCyan}}
	case ParticleStomp:
		return particleStyle{life: 20, minSpeed: 1, maxSpeed: 3, upward: true, gravity: true, size: 3,
			colors: []core.Color{core.ColorBrown, core.ColorOrange}, spreadX: 10, baseSpeed: 1}
	case ParticleHit:
		return particleStyle{life: 15, minSpeed: 1, maxSpeed: 4, gravity: true, size: 2,
			colors: []core.Color{core.ColorOrange, core.ColorYellow}}
	case ParticleBossHit:
		return particleStyle{life: 30, minSpeed: 2, maxSpeed: 5, damped: true, gravity: true, size: 4,
			colors: []core.Color{core.ColorRed, core.ColorBrightRed}}
	case ParticleBossDefeat:
		return particleStyle{life: 60, minSpeed: 1, maxSpeed: 6, damped: true, gravity: true, size: 4,
			colors: []core.Color{core.ColorBrightRed, core.ColorBrightYellow, core.ColorBrightGreen,
				core.ColorBrightCyan, core.ColorBrightMagenta}}
	case ParticleBossAttack:
		return particleStyle{life: 20, minSpeed: 0.5, maxSpeed: 2, damped: true, size: 3,
			colors: []core.Color{core.ColorMagenta, core.ColorBrightMagenta}}
	case ParticleDamage:
		return particleStyle{life: 20, minSpeed: 1, maxSpeed: 3, gravity: true, size: 2,
			colors: []core.Color{core.ColorRed}}
	default:
		return particleStyle{life: 10, minSpeed: 0.2, maxSpeed: 1, gravity: true, size: 1,
			colors: []core.Color{core.ColorGray}, spreadX: 8}
	}
}

func (ps *Particles) ensureRNG() {
	if ps.rng == nil {
		ps.rng = rand.New(rand.NewSource(1))
	}
}

func (ps *Particles) between(lo, hi float64) float64 {
	return lo + ps.rng.Float64()*(hi-lo)
}

// Spawn appends count particles of the given kind at (x, y).
func (ps *Particles) Spawn(kind ParticleKind, x, y float64, count int) {
	if count <= 0 || math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	ps.ensureRNG()
	st := styleFor(kind)

	for i := 0; i < count; i++ {
		speed := ps.between(st.minSpeed, st.maxSpeed)
		var vx, vy float64
		if st.upward {
			vx = ps.between(-speed, speed)
			vy = -ps.between(st.baseSpeed*0.5, st.baseSpeed+speed)
		} else {
			angle := ps.rng.Float64() * 2 * math.Pi
			vx = math.Cos(angle) * speed
			vy = math.Sin(angle) * speed
		}
		life := st.life - ps.rng.Intn(st.life/3+1)
		ps.items = append(ps.items, Particle{
			X:       x + ps.between(-st.spreadX, st.spreadX),
			Y:       y + ps.between(-st.spreadY, st.spreadY),
			VX:      vx,
			VY:      vy,
			Life:    life,
			MaxLife: life,
			Kind:    kind,
			Size:    st.size,
			Color:   st.colors[ps.rng.Intn(len(st.colors))],
		})
	}

	if over := len(ps.items) - MaxParticles; over > 0 {
		ps.items = append(ps.items[:0], ps.items[over:]...)
	}
}

// Tick advances every particle one step and drops expired ones.
func (ps *Particles) Tick() {
	live := ps.items[:0]
	for _, p := range ps.items {
		st := styleFor(p.Kind)
		p.X += p.VX
		p.Y += p.VY
		if st.gravity && p.Kind != ParticleWallSlide {
			p.VY += particleGravity
		}
		if st.damped {
			p.VX *= particleDamping
			p.VY *= particleDamping
		}
		p.Life--
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	clear(ps.items[len(live):])
	ps.items = live
}

// Consume turns resolver events into particle bursts.
func (ps *Particles) Consume(events []Event) {
	for _, e := range events {
		switch e.Kind {
		case EventLanding:
			ps.Spawn(ParticleLanding, e.X, e.Y, 8)
		case EventWallSlide:
			ps.Spawn(ParticleWallSlide, e.X, e.Y, 1)
		case EventCoin:
			ps.Spawn(ParticleSparkle, e.X, e.Y, 10)
		case EventPowerUp:
			ps.Spawn(ParticlePowerUp, e.X, e.Y, 16)
		case EventStomp:
			ps.Spawn(ParticleStomp, e.X, e.Y, 10)
		case EventFireballHit:
			ps.Spawn(ParticleHit, e.X, e.Y, 8)
		case EventBossHit:
			ps.Spawn(ParticleBossHit, e.X, e.Y, 20)
		case EventBossDefeat:
			ps.Spawn(ParticleBossDefeat, e.X, e.Y, 60)
		case EventBossAttack:
			ps.Spawn(ParticleBossAttack, e.X, e.Y, 6)
		case EventDamage, EventLifeLost:
			ps.Spawn(ParticleDamage, e.X, e.Y, 12)
		case EventJump:
			ps.Spawn(ParticleDust, e.X, e.Y, 4)
		}
	}
}
