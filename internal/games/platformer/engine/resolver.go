package engine

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// Progress is the run state the resolver may change: score and lives.
type Progress struct {
	Score int
	Lives int
}

// Resolve advances the world by one tick of play. The steps run in a
// fixed order; an interaction earlier in the order wins over a later one.
// When the player runs out of lives the rest of the tick is skipped.
func Resolve(w *World, p *Progress, in Input, t Tuning) Result {
	var res Result
	pl := &w.Player

	// Counters and animation.
	pl.WasOnGround = pl.OnGround
	if pl.InvulnerableTicks > 0 {
		pl.InvulnerableTicks--
	}
	if pl.FireballCooldown > 0 {
		pl.FireballCooldown--
	}
	advanceAnim(&pl.AnimFrame, &pl.AnimTimer)

	applyHorizontalInput(pl, in, t)
	applyJump(pl, in, &res)
	if in.Fire {
		shootFireball(w, t, &res)
	}

	pl.VY += t.Gravity

	prevX, prevY := pl.X, pl.Y
	pl.X += pl.VX
	pl.Y += pl.VY
	clampPlayerX(w)

	updateFireballs(w, p, t, &res)
	resolvePlatforms(w, prevX, prevY, t, &res)

	prevBottom := prevY + pl.H
	if updateEnemies(w, p, prevBottom, t, &res) {
		return res
	}
	if updateBoss(w, p, prevBottom, t, &res) {
		return res
	}
	if updateBossShots(w, p, t, &res) {
		return res
	}

	collectPickups(w, p, t, &res)

	if !w.BossAlive() && pl.Intersects(w.Goal) {
		res.Outcome = OutcomeGoalReached
		return res
	}

	if pl.Y > w.Height+t.FallMargin {
		res.emit(EventLifeLost, pl.CenterX(), w.Height)
		if loseLife(w, p, t, &res) {
			return res
		}
	}

	w.Camera.X += (cameraTarget(w, t) - w.Camera.X) * t.CameraLerp
	updateTrail(w, t)

	return res
}

func applyHorizontalInput(pl *Player, in Input, t Tuning) {
	switch {
	case in.Left && !in.Right:
		pl.VX = -pl.Speed
		pl.Facing = -1
	case in.Right && !in.Left:
		pl.VX = pl.Speed
		pl.Facing = 1
	default:
		pl.VX *= t.Friction
		if math.Abs(pl.VX) < t.FrictionSnap {
			pl.VX = 0
		}
	}
}

func applyJump(pl *Player, in Input, res *Result) {
	if !in.Jump || !(pl.OnGround || pl.WallSliding) {
		return
	}
	pl.VY = -pl.JumpPower
	if pl.WallSliding && !pl.OnGround {
		pl.VX = -float64(pl.WallDir) * pl.Speed
		pl.Facing = -pl.WallDir
	}
	pl.OnGround = false
	pl.WallSliding = false
	res.emit(EventJump, pl.CenterX(), pl.Bottom())
}

func clampPlayerX(w *World) {
	pl := &w.Player
	maxX := w.Width - pl.W
	if maxX < 0 {
		maxX = 0
	}
	if pl.X < 0 {
		pl.X = 0
	} else if pl.X > maxX {
		pl.X = maxX
	}
}

// resolvePlatforms runs a vertical pass (landing and head bumps) followed
// by a lateral pass (walls) against every platform.
func resolvePlatforms(w *World, prevX, prevY float64, t Tuning, res *Result) {
	pl := &w.Player
	pl.OnGround = false
	pl.WallSliding = false
	pl.WallDir = 0

	prevTop := prevY
	prevBottom := prevY + pl.H

	for i := range w.Platforms {
		plat := w.Platforms[i].Rect
		if !pl.Intersects(plat) {
			continue
		}
		switch {
		case pl.VY >= 0 && prevBottom <= plat.Y+1:
			impact := pl.VY
			pl.Y = plat.Y - pl.H
			pl.VY = 0
			pl.OnGround = true
			if impact > t.LandingImpact && !pl.WasOnGround {
				res.emit(EventLanding, pl.CenterX(), pl.Bottom())
			}
		case pl.VY < 0 && prevTop >= plat.Bottom()-1:
			pl.Y = plat.Bottom()
			pl.VY = 0
		}
	}

	for i := range w.Platforms {
		plat := w.Platforms[i].Rect
		if !pl.Intersects(plat) {
			continue
		}
		dir := 1
		if prevX+pl.W/2 < plat.CenterX() {
			pl.X = plat.X - pl.W
		} else {
			pl.X = plat.Right()
			dir = -1
		}
		pl.VX = 0
		if pl.VY > 0 && !pl.OnGround {
			pl.WallSliding = true
			pl.WallDir = dir
			if pl.VY > t.WallSlideSpeed {
				pl.VY = t.WallSlideSpeed
			}
			edge := pl.Right()
			if dir < 0 {
				edge = pl.X
			}
			res.emit(EventWallSlide, edge, pl.CenterY())
		}
	}
	clampPlayerX(w)
}

// patrol moves x by *vx and reflects at the bounds. A zero-width or
// inverted range pins x to min.
func patrol(x, vx *float64, min, max float64) {
	if max <= min {
		*x = min
		return
	}
	*x += *vx
	if *x <= min {
		*x = min
		*vx = math.Abs(*vx)
	} else if *x >= max {
		*x = max
		*vx = -math.Abs(*vx)
	}
}

// stomps reports whether the player came down on top of target this tick.
func stomps(pl *Player, prevBottom float64, target Rect, t Tuning) bool {
	return pl.VY > 0 && prevBottom <= target.Y+t.StompTolerance
}

func bounce(pl *Player, t Tuning) {
	pl.VY = -pl.JumpPower * t.StompBounce
	pl.OnGround = false
}

func updateEnemies(w *World, p *Progress, prevBottom float64, t Tuning, res *Result) bool {
	pl := &w.Player
	alive := w.Enemies[:0]
	lost := false
	for _, e := range w.Enemies {
		if lost {
			alive = append(alive, e)
			continue
		}
		patrol(&e.X, &e.VX, e.MinX, e.MaxX)
		advanceAnim(&e.AnimFrame, &e.AnimTimer)

		if pl.Invulnerable() || !pl.Intersects(e.Rect) {
			alive = append(alive, e)
			continue
		}
		if e.Kind.Stompable() && stomps(pl, prevBottom, e.Rect, t) {
			bounce(pl, t)
			p.Score += t.Points.Stomp
			res.emit(EventStomp, e.CenterX(), e.Y)
			continue
		}
		alive = append(alive, e)
		lost = damage(w, p, t, res)
	}
	clear(w.Enemies[len(alive):])
	w.Enemies = alive
	return lost
}

func updateBoss(w *World, p *Progress, prevBottom float64, t Tuning, res *Result) bool {
	b := w.Boss
	if b == nil {
		return false
	}
	pl := &w.Player

	patrol(&b.X, &b.VX, b.MinX, b.MaxX)
	advanceAnim(&b.AnimFrame, &b.AnimTimer)

	b.AttackTimer++
	if b.AttackTimer >= AttackInterval(b.Kind) {
		b.AttackTimer = 0
		bossAttack(w, b)
		res.emit(EventBossAttack, b.CenterX(), b.CenterY())
	}

	if pl.Invulnerable() || !pl.Intersects(b.Rect) {
		return false
	}
	if stomps(pl, prevBottom, b.Rect, t) {
		bounce(pl, t)
		hitBoss(w, p, t, res)
		return false
	}
	return damage(w, p, t, res)
}

// hitBoss takes one point of health and removes the boss when it runs out.
func hitBoss(w *World, p *Progress, t Tuning, res *Result) {
	b := w.Boss
	b.Health--
	p.Score += t.Points.BossHit
	res.emit(EventBossHit, b.CenterX(), b.CenterY())
	if b.Health > 0 {
		return
	}
	p.Score += t.Points.BossDefeat
	res.emit(EventBossDefeat, b.CenterX(), b.CenterY())
	w.Boss = nil
	w.BossShots = w.BossShots[:0]
}

func collectPickups(w *World, p *Progress, t Tuning, res *Result) {
	pl := &w.Player
	for i := range w.Coins {
		c := &w.Coins[i]
		if c.Collected || !pl.Intersects(c.Rect) {
			continue
		}
		c.Collected = true
		p.Score += t.Points.Coin
		res.emit(EventCoin, c.CenterX(), c.CenterY())
	}
	for i := range w.PowerUps {
		pu := &w.PowerUps[i]
		if pu.Collected || !pl.Intersects(pu.Rect) {
			continue
		}
		pu.Collected = true
		p.Score += t.Points.PowerUp
		applyPowerUp(pl, pu, t)
		res.emit(EventPowerUp, pu.CenterX(), pu.CenterY())
	}
}

func applyPowerUp(pl *Player, pu *PowerUp, t Tuning) {
	switch pu.Kind {
	case levels.PowerUpMushroom:
		if pl.Power == PowerNormal {
			pl.SetPower(PowerSuper)
		}
	case levels.PowerUpFireFlower:
		pl.SetPower(PowerFire)
	case levels.PowerUpStar:
		if pl.InvulnerableTicks < t.StarInvulnerability {
			pl.InvulnerableTicks = t.StarInvulnerability
		}
	}
}

// damage runs the hurt path: a power-up absorbs the hit, otherwise a life
// is lost. It reports whether the run is over.
func damage(w *World, p *Progress, t Tuning, res *Result) bool {
	pl := &w.Player
	res.emit(EventDamage, pl.CenterX(), pl.CenterY())
	if pl.Power != PowerNormal {
		pl.SetPower(PowerNormal)
		pl.InvulnerableTicks = t.HurtInvulnerability
		return false
	}
	return loseLife(w, p, t, res)
}

// loseLife takes a life and respawns the player, or ends the run.
func loseLife(w *World, p *Progress, t Tuning, res *Result) bool {
	p.Lives--
	if p.Lives <= 0 {
		p.Lives = 0
		res.Outcome = OutcomeLost
		return true
	}
	respawn(w, t)
	return false
}

func respawn(w *World, t Tuning) {
	pl := &w.Player
	pl.SetPower(PowerNormal)
	pl.X, pl.Y = w.Start.X, w.Start.Y
	pl.VX, pl.VY = 0, 0
	pl.OnGround, pl.WallSliding = false, false
	pl.InvulnerableTicks = t.HurtInvulnerability
	w.Trail = w.Trail[:0]
}

func updateTrail(w *World, t Tuning) {
	pl := &w.Player
	kept := w.Trail[:0]
	for _, tp := range w.Trail {
		tp.Life--
		if tp.Life > 0 {
			kept = append(kept, tp)
		}
	}
	w.Trail = kept

	if math.Abs(pl.VX) > t.TrailSpeed || !pl.OnGround {
		w.Trail = append(w.Trail, TrailPoint{})
		copy(w.Trail[1:], w.Trail)
		w.Trail[0] = TrailPoint{X: pl.CenterX(), Y: pl.CenterY(), Life: t.TrailLife}
	}
	if len(w.Trail) > t.TrailLength {
		w.Trail = w.Trail[:t.TrailLength]
	}
}
