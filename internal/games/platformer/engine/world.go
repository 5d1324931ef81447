package engine

import (
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// World is every mutable entity of the running level. It is owned by a
// Session; renderers read it between ticks and never write to it.
type World struct {
	Width  float64
	Height float64
	Start  levels.Point

	Player    Player
	Enemies   []Enemy
	Boss      *Boss
	BossShots []BossShot
	Coins     []Coin
	PowerUps  []PowerUp
	Platforms []Platform
	Fireballs []Fireball
	Particles Particles
	Trail     []TrailPoint
	Camera    Camera
	Goal      Rect

	Backgrounds []BackgroundLayer
}

// NewWorld builds a fresh World from a level template. The player keeps
// its power state but is moved to the level start with zero velocity.
func NewWorld(l *levels.Level, player Player, t Tuning, particles Particles) *World {
	w := &World{
		Width:       l.Width,
		Height:      l.Height,
		Start:       l.Start,
		Goal:        l.Goal,
		Particles:   particles,
		Backgrounds: DefaultBackgrounds(),
	}
	w.Particles.Reset()

	player.X, player.Y = l.Start.X, l.Start.Y
	player.VX, player.VY = 0, 0
	player.OnGround, player.WasOnGround, player.WallSliding = false, false, false
	player.FireballCooldown = 0
	player.SetPower(player.Power)
	w.Player = player

	w.Platforms = make([]Platform, 0, len(l.Platforms))
	for _, p := range l.Platforms {
		w.Platforms = append(w.Platforms, Platform{Rect: p.Rect, Kind: p.Kind})
	}

	w.Enemies = make([]Enemy, 0, len(l.Enemies))
	for _, e := range l.Enemies {
		w.Enemies = append(w.Enemies, spawnEnemy(e, t.EnemySpeedScale))
	}

	w.Coins = make([]Coin, 0, len(l.Coins))
	for _, c := range l.Coins {
		w.Coins = append(w.Coins, Coin{Rect: c.Rect})
	}

	w.PowerUps = make([]PowerUp, 0, len(l.PowerUps))
	for _, p := range l.PowerUps {
		w.PowerUps = append(w.PowerUps, PowerUp{Rect: p.Rect, Kind: p.Kind})
	}

	if b := l.Boss; b != nil && b.Health > 0 {
		boss := &Boss{
			Rect:      b.Rect,
			VX:        -b.Speed * t.EnemySpeedScale,
			MinX:      b.MinX,
			MaxX:      b.MaxX,
			Health:    b.Health,
			MaxHealth: b.Health,
			Kind:      b.Kind,
		}
		boss.X = clampPatrol(boss.X, boss.MinX, boss.MaxX)
		w.Boss = boss
	}

	w.Camera.X = cameraTarget(w, t)
	return w
}

func spawnEnemy(e levels.Enemy, scale float64) Enemy {
	speed := e.Speed
	if speed == 0 {
		speed = 1
	}
	en := Enemy{
		Rect: e.Rect,
		VX:   -speed * scale,
		MinX: e.MinX,
		MaxX: e.MaxX,
		Kind: e.Kind,
	}
	en.X = clampPatrol(en.X, en.MinX, en.MaxX)
	return en
}

// clampPatrol keeps x inside [min, max]; an inverted range pins to min.
func clampPatrol(x, min, max float64) float64 {
	if max <= min {
		return min
	}
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// Level converts the world's layout back into a level template. Collected
// pickups are kept; live state such as velocities is dropped.
func (w *World) Level(number int, name string) *levels.Level {
	l := &levels.Level{
		Number: number,
		Name:   name,
		Width:  w.Width,
		Height: w.Height,
		Start:  w.Start,
		Goal:   w.Goal,
	}
	for _, p := range w.Platforms {
		l.Platforms = append(l.Platforms, levels.Platform{Rect: p.Rect, Kind: p.Kind})
	}
	for _, e := range w.Enemies {
		speed := e.VX
		if speed < 0 {
			speed = -speed
		}
		l.Enemies = append(l.Enemies, levels.Enemy{
			Rect:  e.Rect,
			Kind:  e.Kind,
			MinX:  e.MinX,
			MaxX:  e.MaxX,
			Speed: speed,
		})
	}
	for _, c := range w.Coins {
		l.Coins = append(l.Coins, levels.Coin{Rect: c.Rect})
	}
	for _, p := range w.PowerUps {
		l.PowerUps = append(l.PowerUps, levels.PowerUp{Rect: p.Rect, Kind: p.Kind})
	}
	return l
}

// BossAlive reports whether a boss still blocks the goal.
func (w *World) BossAlive() bool {
	return w.Boss != nil && w.Boss.Health > 0
}

// CoinsLeft counts uncollected coins.
func (w *World) CoinsLeft() int {
	n := 0
	for _, c := range w.Coins {
		if !c.Collected {
			n++
		}
	}
	return n
}

func cameraTarget(w *World, t Tuning) float64 {
	maxX := w.Width - t.ViewportWidth
	if maxX < 0 {
		maxX = 0
	}
	x := w.Player.X - t.ViewportWidth/2
	if x < 0 {
		return 0
	}
	if x > maxX {
		return maxX
	}
	return x
}
