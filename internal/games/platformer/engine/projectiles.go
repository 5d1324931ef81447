package engine

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// Projectiles outside this margin around the level are discarded.
const (
	projectileMarginX = 100
	projectileMarginY = 200
)

func outOfBounds(w *World, r Rect) bool {
	return r.Right() < -projectileMarginX || r.X > w.Width+projectileMarginX ||
		r.Bottom() < -projectileMarginY || r.Y > w.Height+projectileMarginY
}

func shootFireball(w *World, t Tuning, res *Result) {
	pl := &w.Player
	if pl.Power != PowerFire || pl.FireballCooldown > 0 {
		return
	}
	facing := float64(pl.Facing)
	if facing == 0 {
		facing = 1
	}
	x := pl.CenterX() - fireballSize/2 + facing*pl.W/2
	w.Fireballs = append(w.Fireballs, Fireball{
		Rect: Rect{X: x, Y: pl.CenterY() - fireballSize/2, W: fireballSize, H: fireballSize},
		VX:   facing * t.FireballSpeed,
		VY:   -t.FireballLift,
		Life: t.FireballLife,
	})
	pl.FireballCooldown = t.FireballCooldown
	res.emit(EventFireball, x, pl.CenterY())
}

// updateFireballs moves fireballs and resolves hits against enemies and
// the boss. A fireball is spent on its first hit.
func updateFireballs(w *World, p *Progress, t Tuning, res *Result) {
	kept := w.Fireballs[:0]
	for _, f := range w.Fireballs {
		f.VY += t.FireballGravity
		f.X += f.VX
		f.Y += f.VY
		f.Life--
		if f.Life <= 0 || outOfBounds(w, f.Rect) {
			continue
		}
		if fireballHit(w, p, f.Rect, t, res) {
			continue
		}
		kept = append(kept, f)
	}
	clear(w.Fireballs[len(kept):])
	w.Fireballs = kept
}

func fireballHit(w *World, p *Progress, f Rect, t Tuning, res *Result) bool {
	for i := range w.Enemies {
		e := w.Enemies[i]
		if !f.Intersects(e.Rect) {
			continue
		}
		w.Enemies = append(w.Enemies[:i], w.Enemies[i+1:]...)
		p.Score += t.Points.Fireball
		res.emit(EventFireballHit, e.CenterX(), e.CenterY())
		return true
	}
	if w.Boss != nil && f.Intersects(w.Boss.Rect) {
		res.emit(EventFireballHit, f.CenterX(), f.CenterY())
		hitBoss(w, p, t, res)
		return true
	}
	return false
}

const (
	shotSize = 16
	shotLife = 240
)

// bossAttack spawns the kind-specific volley for b.
func bossAttack(w *World, b *Boss) {
	cx, cy := b.CenterX(), b.CenterY()
	tx, ty := w.Player.CenterX(), w.Player.CenterY()
	toward := 1.0
	if tx < cx {
		toward = -1
	}

	switch b.Kind {
	case levels.BossGolem:
		// Two boulders lobbed both ways.
		w.addShot(b.Kind, cx, b.Y, -4, -7, 0.3)
		w.addShot(b.Kind, cx, b.Y, 4, -7, 0.3)
	case levels.BossWizard:
		// A bolt aimed at the player.
		dx, dy := tx-cx, ty-cy
		d := math.Hypot(dx, dy)
		if d == 0 {
			d = 1
		}
		w.addShot(b.Kind, cx, cy, dx/d*5, dy/d*5, 0)
	case levels.BossDragon:
		// Fire breath fanning toward the player.
		for _, vy := range []float64{-1, 0, 1} {
			w.addShot(b.Kind, cx+toward*b.W/2, cy, toward*6, vy, 0)
		}
	case levels.BossKing:
		// Shockwaves along the ground plus a falling crown strike.
		floor := b.Bottom() - shotSize
		w.addShot(b.Kind, b.X, floor, -5, 0, 0)
		w.addShot(b.Kind, b.Right(), floor, 5, 0, 0)
		w.addShot(b.Kind, tx, -shotSize, 0, 2, 0.2)
	}
}

func (w *World) addShot(kind levels.BossKind, cx, cy, vx, vy, gravity float64) {
	w.BossShots = append(w.BossShots, BossShot{
		Rect:    Rect{X: cx - shotSize/2, Y: cy - shotSize/2, W: shotSize, H: shotSize},
		VX:      vx,
		VY:      vy,
		Gravity: gravity,
		Life:    shotLife,
		Kind:    kind,
	})
}

// updateBossShots moves hostile projectiles and applies damage to the
// player. It reports whether the run is over.
func updateBossShots(w *World, p *Progress, t Tuning, res *Result) bool {
	pl := &w.Player
	kept := w.BossShots[:0]
	lost := false
	for _, s := range w.BossShots {
		if lost {
			kept = append(kept, s)
			continue
		}
		s.VY += s.Gravity
		s.X += s.VX
		s.Y += s.VY
		s.Life--
		if s.Life <= 0 || outOfBounds(w, s.Rect) {
			continue
		}
		if !pl.Invulnerable() && pl.Intersects(s.Rect) {
			lost = damage(w, p, t, res)
			continue
		}
		kept = append(kept, s)
	}
	clear(w.BossShots[len(kept):])
	w.BossShots = kept
	return lost
}
