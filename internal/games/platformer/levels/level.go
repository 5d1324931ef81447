// Package levels provides the immutable level catalog for the platformer:
// the YAML level format, the embedded 12-level campaign, load-time
// validation and optional override directories.
package levels

// Default entity sizes used when a level file leaves them out.
const (
	CoinSize    = 20
	PowerUpSize = 24
	GoalWidth   = 40
	GoalHeight  = 80
	LevelHeight = 600
)

// Rect is an axis-aligned box in world units.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the x-coordinate of the centre.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the y-coordinate of the centre.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Intersects reports whether two boxes overlap. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Contains reports whether the point lies inside the box, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// Platform is a solid box the player collides with.
type Platform struct {
	Rect
	Kind PlatformKind
}

// Enemy is the spawn template for a patrolling enemy.
type Enemy struct {
	Rect
	Kind       EnemyKind
	MinX, MaxX float64
	Speed      float64
}

// Coin is the spawn template for a coin.
type Coin struct {
	Rect
}

// PowerUp is the spawn template for a power-up.
type PowerUp struct {
	Rect
	Kind PowerUpKind
}

// Boss is the spawn template for a level boss.
type Boss struct {
	Rect
	Kind       BossKind
	Health     int
	MinX, MaxX float64
	Speed      float64
}

// Level is one catalog entry. Levels handed out by a Catalog are copies;
// mutating them never affects the catalog.
type Level struct {
	Number    int
	Name      string
	Width     float64
	Height    float64
	Start     Point
	Platforms []Platform
	Enemies   []Enemy
	Coins     []Coin
	PowerUps  []PowerUp
	Boss      *Boss
	Goal      Rect
}

// Clone returns a deep copy of the level.
func (l *Level) Clone() *Level {
	c := *l
	c.Platforms = append([]Platform(nil), l.Platforms...)
	c.Enemies = append([]Enemy(nil), l.Enemies...)
	c.Coins = append([]Coin(nil), l.Coins...)
	c.PowerUps = append([]PowerUp(nil), l.PowerUps...)
	if l.Boss != nil {
		b := *l.Boss
		c.Boss = &b
	}
	return &c
}

// DefaultGoal is the goal placed in an empty custom level.
func DefaultGoal() Rect {
	return Rect{X: 700, Y: 470, W: GoalWidth, H: GoalHeight}
}
