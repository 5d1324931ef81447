package platformer

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// Visual characters for rendering
const (
	GroundChar   = '█'
	PlatformChar = '▒'
	PlayerChar   = '█'
	CoinChar     = 'o'
	FireballChar = '•'
	ShotChar     = '*'
	TrailChar    = '·'
	GoalPoleChar = '│'
	GoalFlagChar = '▶'
	CursorChar   = '+'
)

const (
	hudRows    = 1
	footerRows = 1
)

// layout maps the viewport onto the play area of the screen.
type layout struct {
	top, rows, cols int
	sx, sy          float64 // world units per cell
}

func (g *Game) layout() layout {
	t := g.session.Tuning()
	rows := core.Max(g.viewH-hudRows-footerRows, 1)
	cols := core.Max(g.viewW, 1)
	return layout{
		top:  hudRows,
		rows: rows,
		cols: cols,
		sx:   t.ViewportWidth / float64(cols),
		sy:   t.ViewportHeight / float64(rows),
	}
}

// cell converts a world point to a screen cell.
func (l layout) cell(camX, x, y float64) (col, row int) {
	col = int(math.Floor((x - camX) / l.sx))
	row = l.top + int(math.Floor(y/l.sy))
	return col, row
}

// set draws inside the play area only.
func (l layout) set(dst *core.Screen, col, row int, r rune, c core.Color) {
	if col < 0 || col >= l.cols || row < l.top || row >= l.top+l.rows {
		return
	}
	dst.SetColored(col, row, r, c)
}

// fill draws a world rectangle; every rect covers at least one cell.
func (l layout) fill(dst *core.Screen, camX float64, r engine.Rect, glyph rune, c core.Color) {
	c0, r0 := l.cell(camX, r.X, r.Y)
	c1 := int(math.Ceil((r.Right()-camX)/l.sx)) - 1
	r1 := l.top + int(math.Ceil(r.Bottom()/l.sy)) - 1
	c1 = core.Max(c1, c0)
	r1 = core.Max(r1, r0)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			l.set(dst, col, row, glyph, c)
		}
	}
}

// Render draws the current World, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.viewW, g.viewH = dst.Width(), dst.Height()
	g.screenTooSmall = g.viewW < g.minScreenW || g.viewH < g.minScreenH

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	if g.session == nil {
		g.drawCenteredBox(dst, "LEVELS FAILED TO LOAD", fmt.Sprint(g.loadErr))
		return
	}

	w := g.session.World()
	l := g.layout()
	camX := w.Camera.X

	g.renderBackground(dst, l, w)
	g.renderTerrain(dst, l, w, camX)
	g.renderPickups(dst, l, w, camX)
	g.renderEnemies(dst, l, w, camX)
	g.renderProjectiles(dst, l, w, camX)
	g.renderPlayer(dst, l, w, camX)
	g.renderParticles(dst, l, w, camX)

	if g.session.Mode() == engine.ModeEditor {
		g.renderCursor(dst, l)
	}

	g.renderHUD(dst)
	g.renderFooter(dst)
	g.renderOverlay(dst)
}

// renderBackground draws the parallax bands. A layer moves by Factor of
// the camera offset, so distant layers scroll slower.
func (g *Game) renderBackground(dst *core.Screen, l layout, w *engine.World) {
	for _, bg := range w.Backgrounds {
		if bg.Period <= 0 {
			continue
		}
		offset := w.Camera.X * bg.Factor
		_, r0 := l.cell(0, 0, bg.Row)
		_, r1 := l.cell(0, 0, bg.Row+bg.Height)
		for row := r0; row < core.Max(r1, r0+1); row++ {
			shift := float64(row-r0) * bg.Period * 0.37
			for col := 0; col < l.cols; col++ {
				wx := float64(col)*l.sx + offset + shift
				if math.Mod(wx, bg.Period) < l.sx {
					l.set(dst, col, row, bg.Glyph, bg.Color)
				}
			}
		}
	}
}

func (g *Game) renderTerrain(dst *core.Screen, l layout, w *engine.World, camX float64) {
	for _, p := range w.Platforms {
		if p.Kind == levels.PlatformGround {
			l.fill(dst, camX, p.Rect, GroundChar, core.ColorBrown)
		} else {
			l.fill(dst, camX, p.Rect, PlatformChar, core.ColorGreen)
		}
	}

	// Goal: pole with a flag on top
	pole := w.Goal
	pole.W = 1
	l.fill(dst, camX, pole, GoalPoleChar, core.ColorWhite)
	col, row := l.cell(camX, w.Goal.X, w.Goal.Y)
	color := core.ColorBrightGreen
	if w.BossAlive() {
		color = core.ColorGray
	}
	l.set(dst, col+1, row, GoalFlagChar, color)
}

func (g *Game) renderPickups(dst *core.Screen, l layout, w *engine.World, camX float64) {
	for _, c := range w.Coins {
		if c.Collected {
			continue
		}
		col, row := l.cell(camX, c.CenterX(), c.CenterY())
		l.set(dst, col, row, CoinChar, core.ColorBrightYellow)
	}
	for _, p := range w.PowerUps {
		if p.Collected {
			continue
		}
		glyph, color := powerUpGlyph(p.Kind)
		col, row := l.cell(camX, p.CenterX(), p.CenterY())
		l.set(dst, col, row, glyph, color)
	}
}

func powerUpGlyph(k levels.PowerUpKind) (rune, core.Color) {
	switch k {
	case levels.PowerUpFireFlower:
		return '✿', core.ColorOrange
	case levels.PowerUpStar:
		return '★', core.ColorBrightYellow
	default:
		return '♠', core.ColorBrightRed
	}
}

func (g *Game) renderEnemies(dst *core.Screen, l layout, w *engine.World, camX float64) {
	for _, e := range w.Enemies {
		glyph, color := enemyGlyph(e.Kind, e.AnimFrame)
		l.fill(dst, camX, e.Rect, glyph, color)
	}
	if b := w.Boss; b != nil {
		color := bossColor(b.Kind)
		// Flash on the last ticks before an attack
		if interval := engine.AttackInterval(b.Kind); b.AttackTimer > interval-20 && b.AnimFrame%2 == 0 {
			color = core.ColorBrightWhite
		}
		l.fill(dst, camX, b.Rect, '▓', color)
	}
}

func enemyGlyph(k levels.EnemyKind, frame int) (rune, core.Color) {
	switch k {
	case levels.EnemySpiker:
		return '▲', core.ColorMagenta
	case levels.EnemyFlyer:
		if frame%2 == 0 {
			return '^', core.ColorCyan
		}
		return 'v', core.ColorCyan
	default:
		if frame%2 == 0 {
			return 'M', core.ColorRed
		}
		return 'W', core.ColorRed
	}
}

func bossColor(k levels.BossKind) core.Color {
	switch k {
	case levels.BossWizard:
		return core.ColorMagenta
	case levels.BossDragon:
		return core.ColorRed
	case levels.BossKing:
		return core.ColorYellow
	default:
		return core.ColorGray
	}
}

func (g *Game) renderProjectiles(dst *core.Screen, l layout, w *engine.World, camX float64) {
	for _, s := range w.BossShots {
		col, row := l.cell(camX, s.CenterX(), s.CenterY())
		l.set(dst, col, row, ShotChar, bossColor(s.Kind))
	}
	for _, f := range w.Fireballs {
		col, row := l.cell(camX, f.CenterX(), f.CenterY())
		l.set(dst, col, row, FireballChar, core.ColorOrange)
	}
}

func (g *Game) renderPlayer(dst *core.Screen, l layout, w *engine.World, camX float64) {
	pl := w.Player
	color := playerColor(pl.Power)

	for _, tp := range w.Trail {
		col, row := l.cell(camX, tp.X, tp.Y)
		l.set(dst, col, row, TrailChar, color)
	}

	if pl.Invulnerable() {
		if pl.InvulnerableTicks > g.session.Tuning().HurtInvulnerability {
			// Star: cycle colours
			rainbow := []core.Color{core.ColorBrightRed, core.ColorBrightYellow, core.ColorBrightGreen, core.ColorBrightCyan, core.ColorBrightMagenta}
			color = rainbow[(pl.InvulnerableTicks/4)%len(rainbow)]
		} else if (pl.InvulnerableTicks/4)%2 == 1 {
			return
		}
	}
	l.fill(dst, camX, pl.Rect, PlayerChar, color)

	// Eye on the facing side of the top row
	col, row := l.cell(camX, pl.X, pl.Y)
	if pl.Facing < 0 {
		l.set(dst, col, row, '◀', core.ColorBrightWhite)
	} else {
		c1 := int(math.Ceil((pl.Right()-camX)/l.sx)) - 1
		l.set(dst, core.Max(c1, col), row, '▶', core.ColorBrightWhite)
	}
}

func playerColor(p engine.PowerState) core.Color {
	switch p {
	case engine.PowerSuper:
		return core.ColorRed
	case engine.PowerFire:
		return core.ColorOrange
	default:
		return core.ColorBlue
	}
}

func (g *Game) renderParticles(dst *core.Screen, l layout, w *engine.World, camX float64) {
	for _, p := range w.Particles.Items() {
		glyph := '.'
		switch fade := p.Fade(); {
		case fade > 0.66 && p.Size >= 3:
			glyph = '*'
		case fade > 0.33:
			glyph = '+'
		}
		col, row := l.cell(camX, p.X, p.Y)
		l.set(dst, col, row, glyph, p.Color)
	}
}

func (g *Game) renderCursor(dst *core.Screen, l layout) {
	if !g.cursorVisible {
		return
	}
	l.set(dst, g.cursorCol, g.cursorRow, CursorChar, core.ColorBrightWhite)
}

// renderHUD draws score, lives, level and boss health on the top row.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session

	if s.Mode() == engine.ModeEditor {
		tool := s.Tool()
		dst.DrawTextColored(1, 0, fmt.Sprintf("EDITOR  Tool %d: %s", int(tool)+1, tool), core.ColorBrightCyan)
		width := fmt.Sprintf("Width: %.0f", s.World().Width)
		dst.DrawText(dst.Width()-len(width)-1, 0, width)
		return
	}

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d  Lives: %d", s.Score(), s.Lives()))

	var levelText string
	if s.Custom() {
		levelText = "Custom level"
	} else {
		levelText = fmt.Sprintf("Level %d/%d: %s", s.Level(), s.LevelCount(), s.LevelName())
	}
	dst.DrawTextCentered(0, levelText)

	right := s.World().Player.Power.String()
	if health, maxHealth, ok := s.Boss(); ok {
		right = "Boss " + healthBar(health, maxHealth) + "  " + right
	}
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)
}

func healthBar(health, maxHealth int) string {
	health = core.Clamp(health, 0, maxHealth)
	return strings.Repeat("■", health) + strings.Repeat("□", maxHealth-health)
}

// renderFooter shows the latest status message or the key hints.
func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	if g.messageTimer > 0 {
		dst.DrawTextColored(1, y, g.message, core.ColorBrightYellow)
		return
	}
	var hint string
	if g.session.Mode() == engine.ModeEditor {
		hint = "1-9 tool  click place  ←/→ scroll  ctrl+s save  ctrl+l load  t test  e play"
	} else {
		hint = "←/→ move  space jump  f fire  p pause  e editor  esc menu"
	}
	dst.DrawTextColored(1, y, hint, core.ColorGray)
}

func (g *Game) renderOverlay(dst *core.Screen) {
	s := g.session
	if s.Mode() == engine.ModeEditor {
		return
	}
	if s.Paused() {
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
		return
	}

	switch s.Status() {
	case engine.StatusLevelComplete:
		subtitle := fmt.Sprintf("Score: %d  |  Press ENTER to continue", s.Score())
		g.drawCenteredBox(dst, "LEVEL COMPLETE", subtitle)

	case engine.StatusLost:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", s.Score())
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case engine.StatusWon:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", s.Score())
		g.drawCenteredBox(dst, "YOU WIN!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := len([]rune(title))
	subtitleLen := len([]rune(subtitle))
	boxW := core.Max(titleLen, subtitleLen) + 4
	box := core.Centered(w, h, boxW, 5)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+(boxW-titleLen)/2, box.Y+1, title, core.ColorBrightWhite)
	dst.DrawText(box.X+(boxW-subtitleLen)/2, box.Y+3, subtitle)
}
