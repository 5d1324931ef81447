package engine

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// Tool is the editor's selected placement or erase action.
type Tool int

const (
	ToolPlatform Tool = iota
	ToolGround
	ToolEnemy
	ToolCoin
	ToolMushroom
	ToolFireFlower
	ToolStar
	ToolGoal
	ToolErase
)

// ToolCount is the number of editor tools.
const ToolCount = int(ToolErase) + 1

func (t Tool) String() string {
	switch t {
	case ToolPlatform:
		return "platform"
	case ToolGround:
		return "ground"
	case ToolEnemy:
		return "enemy"
	case ToolCoin:
		return "coin"
	case ToolMushroom:
		return "mushroom"
	case ToolFireFlower:
		return "fire flower"
	case ToolStar:
		return "star"
	case ToolGoal:
		return "goal"
	case ToolErase:
		return "erase"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the defined tools.
func (t Tool) Valid() bool {
	return t >= ToolPlatform && t <= ToolErase
}

// ToolForKey maps the 1-based number key to a tool.
func ToolForKey(n int) (Tool, bool) {
	t := Tool(n - 1)
	return t, t.Valid()
}

// GridSize is the editor's placement grid in world units.
const GridSize = 20

// editorScrollSpeed is how far the editor camera moves per tick of input.
const editorScrollSpeed = 10

// editorMargin is kept free to the right of the rightmost placed entity.
const editorMargin = 400

// Snap aligns v down to the placement grid.
func Snap(v float64) float64 {
	return math.Floor(v/GridSize) * GridSize
}

// Mutate applies the tool at the pointer, given in world units, when the
// button went down this tick. It reports whether the world changed.
func Mutate(w *World, ptr Pointer, tool Tool) bool {
	if !ptr.Pressed || !ptr.Valid() || !tool.Valid() {
		return false
	}
	if tool == ToolErase {
		return erase(w, ptr.X, ptr.Y)
	}

	x, y := Snap(ptr.X), Snap(ptr.Y)
	var placed Rect
	switch tool {
	case ToolPlatform:
		placed = Rect{X: x, Y: y, W: 100, H: 20}
		w.Platforms = append(w.Platforms, Platform{Rect: placed, Kind: levels.PlatformFloating})
	case ToolGround:
		placed = Rect{X: x, Y: y, W: 200, H: 40}
		w.Platforms = append(w.Platforms, Platform{Rect: placed, Kind: levels.PlatformGround})
	case ToolEnemy:
		placed = Rect{X: x, Y: y, W: 30, H: 30}
		w.Enemies = append(w.Enemies, Enemy{
			Rect: placed,
			VX:   -1,
			MinX: x - 100,
			MaxX: x + 100,
			Kind: levels.EnemyWalker,
		})
	case ToolCoin:
		placed = Rect{X: x, Y: y, W: levels.CoinSize, H: levels.CoinSize}
		w.Coins = append(w.Coins, Coin{Rect: placed})
	case ToolMushroom, ToolFireFlower, ToolStar:
		placed = Rect{X: x, Y: y, W: levels.PowerUpSize, H: levels.PowerUpSize}
		w.PowerUps = append(w.PowerUps, PowerUp{Rect: placed, Kind: powerUpForTool(tool)})
	case ToolGoal:
		placed = Rect{X: x, Y: y, W: levels.GoalWidth, H: levels.GoalHeight}
		w.Goal = placed
	}

	if need := placed.Right() + editorMargin; need > w.Width {
		w.Width = need
	}
	return true
}

func powerUpForTool(t Tool) levels.PowerUpKind {
	switch t {
	case ToolFireFlower:
		return levels.PowerUpFireFlower
	case ToolStar:
		return levels.PowerUpStar
	default:
		return levels.PowerUpMushroom
	}
}

// erase removes every platform, enemy, coin and power-up containing the
// point. The goal is never erased.
func erase(w *World, x, y float64) bool {
	n := len(w.Platforms) + len(w.Enemies) + len(w.Coins) + len(w.PowerUps)

	platforms := w.Platforms[:0]
	for _, p := range w.Platforms {
		if !p.Contains(x, y) {
			platforms = append(platforms, p)
		}
	}
	w.Platforms = platforms

	enemies := w.Enemies[:0]
	for _, e := range w.Enemies {
		if !e.Contains(x, y) {
			enemies = append(enemies, e)
		}
	}
	w.Enemies = enemies

	coins := w.Coins[:0]
	for _, c := range w.Coins {
		if !c.Contains(x, y) {
			coins = append(coins, c)
		}
	}
	w.Coins = coins

	powerUps := w.PowerUps[:0]
	for _, p := range w.PowerUps {
		if !p.Contains(x, y) {
			powerUps = append(powerUps, p)
		}
	}
	w.PowerUps = powerUps

	return len(w.Platforms)+len(w.Enemies)+len(w.Coins)+len(w.PowerUps) != n
}

// scrollEditor pans the editor camera with the movement keys.
func scrollEditor(w *World, in Input, t Tuning) {
	switch {
	case in.Left && !in.Right:
		w.Camera.X -= editorScrollSpeed
	case in.Right && !in.Left:
		w.Camera.X += editorScrollSpeed
	}
	maxX := w.Width - t.ViewportWidth
	if maxX < 0 {
		maxX = 0
	}
	w.Camera.X = math.Max(0, math.Min(maxX, w.Camera.X))
}

// EmptyLevel is the blank custom level the editor starts from.
func EmptyLevel() *levels.Level {
	return &levels.Level{
		Name:   "Custom",
		Width:  2400,
		Height: levels.LevelHeight,
		Start:  levels.Point{X: 50, Y: 300},
		Goal:   levels.DefaultGoal(),
	}
}
