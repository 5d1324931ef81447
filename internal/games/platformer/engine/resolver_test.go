package engine

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

func TestHoldRightNeverExceedsSpeed(t *testing.T) {
	w := newTestWorld(flatLevel())
	stand(w, 100)
	p := &Progress{Lives: 3}

	for i := 0; i < 120; i++ {
		tick(w, p, Input{Right: true})
		if w.Player.VX > w.Player.Speed {
			t.Fatalf("tick %d: VX %v exceeds speed %v", i, w.Player.VX, w.Player.Speed)
		}
	}
	if math.Abs(w.Player.VX-w.Player.Speed) > 1e-9 {
		t.Errorf("VX = %v, want %v", w.Player.VX, w.Player.Speed)
	}
	if w.Player.Facing != 1 {
		t.Errorf("Facing = %d, want 1", w.Player.Facing)
	}
	if !w.Player.OnGround {
		t.Error("player should stay grounded on flat ground")
	}
}

func TestFrictionStopsPlayer(t *testing.T) {
	w := newTestWorld(flatLevel())
	stand(w, 100)
	p := &Progress{Lives: 3}

	tick(w, p, Input{Right: true})
	prev := w.Player.VX
	for i := 0; i < 200 && w.Player.VX != 0; i++ {
		tick(w, p, Input{})
		if w.Player.VX > prev {
			t.Fatalf("VX grew without input: %v -> %v", prev, w.Player.VX)
		}
		prev = w.Player.VX
	}
	if w.Player.VX != 0 {
		t.Errorf("VX = %v, friction should snap it to 0", w.Player.VX)
	}
}

func TestJumpOnlyFromGround(t *testing.T) {
	w := newTestWorld(flatLevel())
	stand(w, 100)
	p := &Progress{Lives: 3}

	res := tick(w, p, Input{Jump: true})
	if w.Player.VY >= 0 {
		t.Fatalf("VY = %v after jump, want negative", w.Player.VY)
	}
	if w.Player.OnGround {
		t.Error("player should be airborne after jumping")
	}
	if !res.Has(EventJump) {
		t.Error("expected jump event")
	}

	before := w.Player.VY
	tick(w, p, Input{Jump: true})
	if got, want := w.Player.VY, before+DefaultTuning().Gravity; math.Abs(got-want) > 1e-9 {
		t.Errorf("mid-air jump changed VY: got %v, want %v", got, want)
	}
}

func TestLandingImpactEvent(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	w.Player.X = 100
	w.Player.Y = 510
	w.Player.VY = 9

	res := tick(w, p, Input{})
	if !w.Player.OnGround {
		t.Fatal("player should have landed")
	}
	if w.Player.Bottom() != 550 {
		t.Errorf("player bottom = %v, want 550", w.Player.Bottom())
	}
	if !res.Has(EventLanding) {
		t.Error("expected landing event for a hard landing")
	}

	res = tick(w, p, Input{})
	if res.Has(EventLanding) {
		t.Error("standing still must not emit landing events")
	}
}

func TestHeadBump(t *testing.T) {
	l := flatLevel()
	l.Platforms = append(l.Platforms, levels.Platform{Rect: Rect{X: 80, Y: 400, W: 120, H: 20}})
	w := newTestWorld(l)
	p := &Progress{Lives: 3}
	w.Player.X = 100
	w.Player.Y = 425
	w.Player.VY = -8

	tick(w, p, Input{})
	if w.Player.Y != 420 {
		t.Errorf("Y = %v, want snapped under platform at 420", w.Player.Y)
	}
	if w.Player.VY != 0 {
		t.Errorf("VY = %v, want 0 after head bump", w.Player.VY)
	}
}

func wallLevel() *levels.Level {
	l := flatLevel()
	l.Platforms = append(l.Platforms, levels.Platform{Rect: Rect{X: 300, Y: 0, W: 40, H: 550}})
	return l
}

func TestWallSlideAndWallJump(t *testing.T) {
	w := newTestWorld(wallLevel())
	p := &Progress{Lives: 3}
	w.Player.X = 270
	w.Player.Y = 100
	w.Player.VY = 3

	res := tick(w, p, Input{Right: true})
	pl := w.Player
	if !pl.WallSliding || pl.WallDir != 1 {
		t.Fatalf("WallSliding=%v WallDir=%d, want true/1", pl.WallSliding, pl.WallDir)
	}
	if pl.Right() != 300 {
		t.Errorf("player right edge = %v, want pushed out to 300", pl.Right())
	}
	if pl.VY > DefaultTuning().WallSlideSpeed {
		t.Errorf("VY = %v, want clamped to slide speed", pl.VY)
	}
	if !res.Has(EventWallSlide) {
		t.Error("expected wall-slide event")
	}

	tick(w, p, Input{Jump: true})
	if w.Player.VY >= 0 {
		t.Errorf("VY = %v after wall jump, want negative", w.Player.VY)
	}
	if w.Player.VX >= 0 {
		t.Errorf("VX = %v after wall jump, want kick away from wall", w.Player.VX)
	}
	if w.Player.WallSliding {
		t.Error("wall jump should leave the wall")
	}
}

func TestWallDoesNotSlideWhenGrounded(t *testing.T) {
	w := newTestWorld(wallLevel())
	p := &Progress{Lives: 3}
	stand(w, 260)

	for i := 0; i < 10; i++ {
		tick(w, p, Input{Right: true})
	}
	if w.Player.WallSliding {
		t.Error("grounded player pushing a wall must not wall slide")
	}
	if w.Player.Right() > 300 {
		t.Errorf("player right edge %v passed through the wall", w.Player.Right())
	}
}

func TestPlayerClampedToLevel(t *testing.T) {
	w := newTestWorld(flatLevel())
	stand(w, 2)
	p := &Progress{Lives: 3}

	for i := 0; i < 5; i++ {
		tick(w, p, Input{Left: true})
	}
	if w.Player.X != 0 {
		t.Errorf("X = %v, want clamped to 0", w.Player.X)
	}

	stand(w, w.Width-w.Player.W-2)
	for i := 0; i < 5; i++ {
		tick(w, p, Input{Right: true})
	}
	if w.Player.Right() != w.Width {
		t.Errorf("right edge = %v, want clamped to %v", w.Player.Right(), w.Width)
	}
}

func TestStompDefeatsEnemy(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	w.Enemies = []Enemy{{Rect: Rect{X: 200, Y: 520, W: 30, H: 30}, VX: -1, MinX: 100, MaxX: 300}}
	w.Player.X = 200
	w.Player.Y = 490
	w.Player.VY = 3

	res := tick(w, p, Input{})
	if len(w.Enemies) != 0 {
		t.Fatalf("enemy not removed by stomp")
	}
	if p.Score != 100 {
		t.Errorf("score = %d, want 100", p.Score)
	}
	if w.Player.VY >= 0 {
		t.Errorf("VY = %v, want bounce", w.Player.VY)
	}
	if p.Lives != 3 {
		t.Errorf("lives = %d, stomp must not hurt", p.Lives)
	}
	if !res.Has(EventStomp) {
		t.Error("expected stomp event")
	}
}

func TestSpikerCannotBeStomped(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	w.Enemies = []Enemy{{Rect: Rect{X: 200, Y: 520, W: 30, H: 30}, MinX: 200, MaxX: 200, Kind: levels.EnemySpiker}}
	w.Player.X = 200
	w.Player.Y = 490
	w.Player.VY = 3

	tick(w, p, Input{})
	if len(w.Enemies) != 1 {
		t.Error("spiker should survive a stomp")
	}
	if p.Lives != 2 {
		t.Errorf("lives = %d, want 2", p.Lives)
	}
}

func TestEnemyDamageResetsNormalPlayer(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	w.Enemies = []Enemy{{Rect: Rect{X: 200, Y: 520, W: 30, H: 30}, MinX: 200, MaxX: 200}}
	stand(w, 210)

	res := tick(w, p, Input{})
	if p.Lives != 2 {
		t.Fatalf("lives = %d, want exactly 2", p.Lives)
	}
	if w.Player.X != w.Start.X || w.Player.Y != w.Start.Y {
		t.Errorf("player at (%v,%v), want start (%v,%v)", w.Player.X, w.Player.Y, w.Start.X, w.Start.Y)
	}
	if w.Player.VX != 0 || w.Player.VY != 0 {
		t.Errorf("velocity = (%v,%v), want zero after respawn", w.Player.VX, w.Player.VY)
	}
	if w.Player.InvulnerableTicks != DefaultTuning().HurtInvulnerability {
		t.Errorf("invulnerable ticks = %d, want %d", w.Player.InvulnerableTicks, DefaultTuning().HurtInvulnerability)
	}
	if res.Outcome != OutcomeNone {
		t.Errorf("outcome = %v, want none", res.Outcome)
	}
	if !res.Has(EventDamage) {
		t.Error("expected damage event")
	}
}

func TestPowerUpAbsorbsDamage(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	w.Player.SetPower(PowerSuper)
	stand(w, 210)
	w.Enemies = []Enemy{{Rect: Rect{X: 200, Y: 520, W: 30, H: 30}, MinX: 200, MaxX: 200}}

	tick(w, p, Input{})
	if p.Lives != 3 {
		t.Errorf("lives = %d, power-up should absorb the hit", p.Lives)
	}
	if w.Player.Power != PowerNormal {
		t.Errorf("power = %v, want normal", w.Player.Power)
	}
	if w.Player.H != PlayerHeight {
		t.Errorf("height = %v, want %v", w.Player.H, PlayerHeight)
	}
	if !w.Player.Invulnerable() {
		t.Error("player should be invulnerable after losing a power-up")
	}

	tick(w, p, Input{})
	if p.Lives != 3 {
		t.Error("invulnerable player took damage")
	}
}

func TestLastLifeLosesRun(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 1, Score: 40}
	w.Enemies = []Enemy{{Rect: Rect{X: 200, Y: 520, W: 30, H: 30}, MinX: 200, MaxX: 200}}
	stand(w, 210)

	res := tick(w, p, Input{})
	if res.Outcome != OutcomeLost {
		t.Fatalf("outcome = %v, want lost", res.Outcome)
	}
	if p.Lives != 0 {
		t.Errorf("lives = %d, want 0", p.Lives)
	}
}

func TestFallingOutCostsLife(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	w.Player.SetPower(PowerFire)
	w.Player.X = 100
	w.Player.Y = 700

	tick(w, p, Input{})
	if p.Lives != 2 {
		t.Errorf("lives = %d, want 2", p.Lives)
	}
	if w.Player.Power != PowerNormal {
		t.Error("falling out should not be absorbed by a power-up")
	}
	if w.Player.X != w.Start.X || w.Player.Y != w.Start.Y {
		t.Errorf("player at (%v,%v), want start", w.Player.X, w.Player.Y)
	}
}

func TestPickupsAreIdempotent(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	stand(w, 100)
	w.Coins = []Coin{{Rect: Rect{X: 100, Y: 520, W: 20, H: 20}}}
	w.PowerUps = []PowerUp{{Rect: Rect{X: 104, Y: 520, W: 24, H: 24}, Kind: levels.PowerUpMushroom}}

	res := tick(w, p, Input{})
	if !w.Coins[0].Collected || !w.PowerUps[0].Collected {
		t.Fatal("pickups not collected")
	}
	if p.Score != 60 {
		t.Errorf("score = %d, want 60", p.Score)
	}
	if !res.Has(EventCoin) || !res.Has(EventPowerUp) {
		t.Error("expected coin and power-up events")
	}

	for i := 0; i < 10; i++ {
		tick(w, p, Input{})
	}
	if p.Score != 60 {
		t.Errorf("score = %d after re-overlap, pickups must count once", p.Score)
	}
	if !w.Coins[0].Collected || !w.PowerUps[0].Collected {
		t.Error("collected flag reverted")
	}
}

func TestPowerUpEffects(t *testing.T) {
	tests := []struct {
		kind      levels.PowerUpKind
		start     PowerState
		wantPower PowerState
		wantInv   bool
	}{
		{levels.PowerUpMushroom, PowerNormal, PowerSuper, false},
		{levels.PowerUpMushroom, PowerFire, PowerFire, false},
		{levels.PowerUpFireFlower, PowerNormal, PowerFire, false},
		{levels.PowerUpStar, PowerNormal, PowerNormal, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			w := newTestWorld(flatLevel())
			p := &Progress{Lives: 3}
			w.Player.SetPower(tt.start)
			stand(w, 100)
			w.PowerUps = []PowerUp{{Rect: Rect{X: 104, Y: 520, W: 24, H: 24}, Kind: tt.kind}}

			tick(w, p, Input{})
			if w.Player.Power != tt.wantPower {
				t.Errorf("power = %v, want %v", w.Player.Power, tt.wantPower)
			}
			if w.Player.Bottom() != 550 {
				t.Errorf("bottom = %v, feet should stay on the ground", w.Player.Bottom())
			}
			if tt.wantInv && w.Player.InvulnerableTicks != DefaultTuning().StarInvulnerability {
				t.Errorf("invulnerable ticks = %d, want %d", w.Player.InvulnerableTicks, DefaultTuning().StarInvulnerability)
			}
		})
	}
}

func TestFireballDefeatsEnemy(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	w.Player.SetPower(PowerFire)
	stand(w, 100)
	w.Enemies = []Enemy{{Rect: Rect{X: 160, Y: 520, W: 30, H: 30}, MinX: 160, MaxX: 160, Kind: levels.EnemySpiker}}

	tick(w, p, Input{Fire: true})
	if w.Player.FireballCooldown != DefaultTuning().FireballCooldown {
		t.Errorf("cooldown = %d, want %d", w.Player.FireballCooldown, DefaultTuning().FireballCooldown)
	}

	hit := false
	for i := 0; i < 20 && !hit; i++ {
		res := tick(w, p, Input{})
		hit = res.Has(EventFireballHit)
	}
	if !hit {
		t.Fatal("fireball never hit the enemy")
	}
	if len(w.Enemies) != 0 {
		t.Error("enemy not removed by fireball")
	}
	if len(w.Fireballs) != 0 {
		t.Error("fireball should be spent on hit")
	}
	if p.Score != 100 {
		t.Errorf("score = %d, want 100", p.Score)
	}
}

func TestFireballCooldownAndExpiry(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	w.Player.SetPower(PowerFire)
	stand(w, 100)

	tick(w, p, Input{Fire: true})
	tick(w, p, Input{Fire: true})
	if len(w.Fireballs) != 1 {
		t.Fatalf("fireballs = %d, cooldown should block the second shot", len(w.Fireballs))
	}

	for i := 0; i < DefaultTuning().FireballLife+1; i++ {
		tick(w, p, Input{})
	}
	if len(w.Fireballs) != 0 {
		t.Errorf("fireballs = %d, want expired", len(w.Fireballs))
	}
}

func TestFireRequiresFlower(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	stand(w, 100)

	tick(w, p, Input{Fire: true})
	if len(w.Fireballs) != 0 {
		t.Error("normal player must not shoot")
	}
}

func TestPatrolContainment(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	stand(w, 50)
	w.Enemies = []Enemy{
		{Rect: Rect{X: 1000, Y: 520, W: 30, H: 30}, VX: -3, MinX: 950, MaxX: 1100},
		{Rect: Rect{X: 1200, Y: 400, W: 32, H: 24}, VX: 7, MinX: 1190, MaxX: 1200, Kind: levels.EnemyFlyer},
		{Rect: Rect{X: 1300, Y: 520, W: 30, H: 30}, VX: -1, MinX: 1300, MaxX: 1300},
		{Rect: Rect{X: 1500, Y: 520, W: 30, H: 30}, VX: -1, MinX: 1600, MaxX: 1400},
	}
	w.Boss = &Boss{Rect: Rect{X: 1700, Y: 470, W: 80, H: 80}, VX: -2.5, MinX: 1650, MaxX: 1800, Health: 5, MaxHealth: 5}

	flips := 0
	prevVX := w.Enemies[0].VX
	for i := 0; i < 1000; i++ {
		tick(w, p, Input{})
		for j, e := range w.Enemies {
			lo, hi := e.MinX, e.MaxX
			if hi < lo {
				hi = lo
			}
			if e.X < lo || e.X > hi {
				t.Fatalf("tick %d: enemy %d at %v outside [%v,%v]", i, j, e.X, lo, hi)
			}
		}
		if w.Enemies[0].VX != prevVX {
			flips++
			prevVX = w.Enemies[0].VX
		}
		if b := w.Boss; b != nil && (b.X < b.MinX || b.X > b.MaxX) {
			t.Fatalf("tick %d: boss at %v outside [%v,%v]", i, b.X, b.MinX, b.MaxX)
		}
	}
	if flips == 0 {
		t.Error("patrolling enemy never turned around")
	}
	if w.Enemies[3].X != 1600 {
		t.Errorf("inverted range should pin to min, got %v", w.Enemies[3].X)
	}
}

func TestBossStompAndDefeat(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	w.Boss = &Boss{Rect: Rect{X: 200, Y: 470, W: 80, H: 80}, MinX: 200, MaxX: 200, Health: 2, MaxHealth: 2}

	drop := func() Result {
		w.Player.X = 220
		w.Player.Y = 440
		w.Player.VY = 3
		w.Player.InvulnerableTicks = 0
		return tick(w, p, Input{})
	}

	res := drop()
	if w.Boss == nil || w.Boss.Health != 1 {
		t.Fatalf("boss = %+v, want health 1", w.Boss)
	}
	if !res.Has(EventBossHit) {
		t.Error("expected boss-hit event")
	}
	if p.Score != 50 {
		t.Errorf("score = %d, want 50", p.Score)
	}

	res = drop()
	if w.Boss != nil {
		t.Fatal("boss should be removed at zero health")
	}
	if !res.Has(EventBossDefeat) {
		t.Error("expected boss-defeat event")
	}
	if p.Score != 50+50+1000 {
		t.Errorf("score = %d, want 1100", p.Score)
	}
	if p.Lives != 3 {
		t.Errorf("lives = %d, stomping the boss must not hurt", p.Lives)
	}
}

func TestBossAttackCycle(t *testing.T) {
	tests := []struct {
		kind  levels.BossKind
		shots int
	}{
		{levels.BossGolem, 2},
		{levels.BossWizard, 1},
		{levels.BossDragon, 3},
		{levels.BossKing, 3},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			w := newTestWorld(flatLevel())
			p := &Progress{Lives: 3}
			stand(w, 50)
			w.Boss = &Boss{Rect: Rect{X: 1500, Y: 470, W: 80, H: 80}, VX: -2, MinX: 1400, MaxX: 1600,
				Health: 5, MaxHealth: 5, Kind: tt.kind}

			interval := AttackInterval(tt.kind)
			for i := 1; i < interval; i++ {
				if res := tick(w, p, Input{}); res.Has(EventBossAttack) {
					t.Fatalf("attack fired early at tick %d", i)
				}
			}
			res := tick(w, p, Input{})
			if !res.Has(EventBossAttack) {
				t.Fatal("expected attack at the interval")
			}
			if len(w.BossShots) != tt.shots {
				t.Errorf("shots = %d, want %d", len(w.BossShots), tt.shots)
			}
			if w.Boss.AttackTimer != 0 {
				t.Errorf("attack timer = %d, want reset to 0", w.Boss.AttackTimer)
			}
		})
	}
}

func TestBossShotHurtsPlayer(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	stand(w, 300)
	w.BossShots = []BossShot{{Rect: Rect{X: 305, Y: 525, W: 16, H: 16}, Life: 10}}

	tick(w, p, Input{})
	if p.Lives != 2 {
		t.Errorf("lives = %d, want 2", p.Lives)
	}
	if len(w.BossShots) != 0 {
		t.Error("shot should be removed on hit")
	}
}

func TestGoalBlockedByLiveBoss(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	w.Boss = &Boss{Rect: Rect{X: 1000, Y: 470, W: 80, H: 80}, MinX: 1000, MaxX: 1000, Health: 5, MaxHealth: 5}
	stand(w, w.Goal.X)

	if res := tick(w, p, Input{}); res.Outcome != OutcomeNone {
		t.Errorf("outcome = %v with live boss, want none", res.Outcome)
	}

	w.Boss = nil
	if res := tick(w, p, Input{}); res.Outcome != OutcomeGoalReached {
		t.Errorf("outcome = %v without boss, want goal reached", res.Outcome)
	}
}

func TestCameraEasesWithinBounds(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	stand(w, 1500)
	w.Camera.X = 0

	tick(w, p, Input{})
	want := 0.1 * (1500 - 400)
	if math.Abs(w.Camera.X-want) > 1e-9 {
		t.Errorf("camera = %v, want %v after one eased step", w.Camera.X, want)
	}

	for i := 0; i < 500; i++ {
		tick(w, p, Input{Right: true})
		if w.Camera.X < 0 || w.Camera.X > w.Width-DefaultTuning().ViewportWidth {
			t.Fatalf("camera %v out of bounds", w.Camera.X)
		}
	}
}

func TestCameraOnNarrowLevel(t *testing.T) {
	l := flatLevel()
	l.Width = 500
	w := newTestWorld(l)
	p := &Progress{Lives: 3}
	stand(w, 400)

	for i := 0; i < 50; i++ {
		tick(w, p, Input{Right: true})
	}
	if w.Camera.X != 0 {
		t.Errorf("camera = %v, level narrower than viewport must not scroll", w.Camera.X)
	}
}

func TestTrailWindow(t *testing.T) {
	w := newTestWorld(flatLevel())
	p := &Progress{Lives: 3}
	w.Player.X = 100
	w.Player.Y = 0

	for i := 0; i < 30; i++ {
		tick(w, p, Input{})
		if len(w.Trail) > DefaultTuning().TrailLength {
			t.Fatalf("trail length %d exceeds window", len(w.Trail))
		}
	}
	if len(w.Trail) == 0 {
		t.Fatal("airborne player should leave a trail")
	}
	if w.Trail[0].Life != DefaultTuning().TrailLife {
		t.Errorf("newest sample life = %d, want %d", w.Trail[0].Life, DefaultTuning().TrailLife)
	}

	stand(w, 100)
	for i := 0; i < DefaultTuning().TrailLife+1; i++ {
		tick(w, p, Input{})
	}
	if len(w.Trail) != 0 {
		t.Errorf("trail = %d samples, want faded out while standing", len(w.Trail))
	}
}
