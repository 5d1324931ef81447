package levels

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel is the on-disk structure of a level file. The same document
// is used for the editor's custom-level blob.
type YAMLLevel struct {
	Number    int         `yaml:"number"`
	Name      string      `yaml:"name,omitempty"`
	Width     float64     `yaml:"width"`
	Height    float64     `yaml:"height,omitempty"`
	Start     YAMLPoint   `yaml:"start"`
	Platforms []YAMLBox   `yaml:"platforms"`
	Enemies   []YAMLEnemy `yaml:"enemies"`
	Coins     []YAMLBox   `yaml:"coins"`
	PowerUps  []YAMLBox   `yaml:"power_ups"`
	Boss      *YAMLBoss   `yaml:"boss,omitempty"`
	Goal      *YAMLBox    `yaml:"goal"`
}

// YAMLPoint is a position.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLBox is a sized, optionally kinded box (platforms, coins, power-ups, goal).
type YAMLBox struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	W    float64 `yaml:"w,omitempty"`
	H    float64 `yaml:"h,omitempty"`
	Kind string  `yaml:"kind,omitempty"`
}

// YAMLEnemy is an enemy spawn.
type YAMLEnemy struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w,omitempty"`
	H     float64 `yaml:"h,omitempty"`
	Kind  string  `yaml:"kind"`
	MinX  float64 `yaml:"min_x"`
	MaxX  float64 `yaml:"max_x"`
	Speed float64 `yaml:"speed"`
}

// YAMLBoss is a boss spawn.
type YAMLBoss struct {
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	Health int     `yaml:"health"`
	MinX   float64 `yaml:"min_x"`
	MaxX   float64 `yaml:"max_x"`
	Speed  float64 `yaml:"speed"`
}

// ErrNoGoal is returned by Decode when a document has no goal entry.
var ErrNoGoal = errors.New("level has no goal")

// Decode parses a YAML level document. Unknown kinds are errors; missing
// sizes fall back to the per-kind defaults. Decode does not validate
// gameplay constraints, see Validate.
func Decode(data []byte) (*Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl.toLevel()
}

// Encode renders a level as a YAML document.
func Encode(l *Level) ([]byte, error) {
	data, err := yaml.Marshal(fromLevel(l))
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

func (yl YAMLLevel) toLevel() (*Level, error) {
	height := yl.Height
	if height == 0 {
		height = LevelHeight
	}
	l := &Level{
		Number: yl.Number,
		Name:   yl.Name,
		Width:  yl.Width,
		Height: height,
		Start:  Point{X: yl.Start.X, Y: yl.Start.Y},
	}

	for i, p := range yl.Platforms {
		kind, err := ParsePlatformKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("platform %d: %w", i, err)
		}
		l.Platforms = append(l.Platforms, Platform{Rect: Rect{p.X, p.Y, p.W, p.H}, Kind: kind})
	}

	for i, e := range yl.Enemies {
		kind, err := ParseEnemyKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("enemy %d: %w", i, err)
		}
		w, h := e.W, e.H
		if w == 0 || h == 0 {
			w, h = kind.Size()
		}
		l.Enemies = append(l.Enemies, Enemy{
			Rect:  Rect{e.X, e.Y, w, h},
			Kind:  kind,
			MinX:  e.MinX,
			MaxX:  e.MaxX,
			Speed: e.Speed,
		})
	}

	for _, c := range yl.Coins {
		l.Coins = append(l.Coins, Coin{Rect: sized(c, CoinSize, CoinSize)})
	}

	for i, p := range yl.PowerUps {
		kind, err := ParsePowerUpKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("power-up %d: %w", i, err)
		}
		l.PowerUps = append(l.PowerUps, PowerUp{Rect: sized(p, PowerUpSize, PowerUpSize), Kind: kind})
	}

	if yl.Boss != nil {
		kind, err := ParseBossKind(yl.Boss.Kind)
		if err != nil {
			return nil, fmt.Errorf("boss: %w", err)
		}
		b := yl.Boss
		l.Boss = &Boss{
			Rect:   Rect{b.X, b.Y, b.W, b.H},
			Kind:   kind,
			Health: b.Health,
			MinX:   b.MinX,
			MaxX:   b.MaxX,
			Speed:  b.Speed,
		}
	}

	if yl.Goal == nil {
		return nil, ErrNoGoal
	}
	l.Goal = sized(*yl.Goal, GoalWidth, GoalHeight)

	return l, nil
}

func fromLevel(l *Level) YAMLLevel {
	yl := YAMLLevel{
		Number:    l.Number,
		Name:      l.Name,
		Width:     l.Width,
		Height:    l.Height,
		Start:     YAMLPoint{X: l.Start.X, Y: l.Start.Y},
		Platforms: make([]YAMLBox, 0, len(l.Platforms)),
		Enemies:   make([]YAMLEnemy, 0, len(l.Enemies)),
		Coins:     make([]YAMLBox, 0, len(l.Coins)),
		PowerUps:  make([]YAMLBox, 0, len(l.PowerUps)),
		Goal:      &YAMLBox{X: l.Goal.X, Y: l.Goal.Y, W: l.Goal.W, H: l.Goal.H},
	}
	for _, p := range l.Platforms {
		yl.Platforms = append(yl.Platforms, YAMLBox{X: p.X, Y: p.Y, W: p.W, H: p.H, Kind: p.Kind.String()})
	}
	for _, e := range l.Enemies {
		yl.Enemies = append(yl.Enemies, YAMLEnemy{
			X: e.X, Y: e.Y, W: e.W, H: e.H,
			Kind: e.Kind.String(), MinX: e.MinX, MaxX: e.MaxX, Speed: e.Speed,
		})
	}
	for _, c := range l.Coins {
		yl.Coins = append(yl.Coins, YAMLBox{X: c.X, Y: c.Y, W: c.W, H: c.H})
	}
	for _, p := range l.PowerUps {
		yl.PowerUps = append(yl.PowerUps, YAMLBox{X: p.X, Y: p.Y, W: p.W, H: p.H, Kind: p.Kind.String()})
	}
	if l.Boss != nil {
		b := l.Boss
		yl.Boss = &YAMLBoss{
			Kind: b.Kind.String(), X: b.X, Y: b.Y, W: b.W, H: b.H,
			Health: b.Health, MinX: b.MinX, MaxX: b.MaxX, Speed: b.Speed,
		}
	}
	return yl
}

func sized(b YAMLBox, w, h float64) Rect {
	r := Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
	if r.W == 0 {
		r.W = w
	}
	if r.H == 0 {
		r.H = h
	}
	return r
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
