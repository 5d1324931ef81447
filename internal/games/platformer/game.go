// Package platformer adapts the platformer engine to the registry.Game
// interface: it maps platform input to engine input and draws the World
// into a core.Screen.
package platformer

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// GameID is the registry and score-table identifier.
const GameID = "platformer"

// messageTicks is how long a status message stays in the HUD.
const messageTicks = 120

var (
	// configPath stores the custom config path set via CLI
	configPath string

	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset

	startLevel int
	levelsDir  string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStartLevel makes new games begin at level n. Zero means the first
// campaign level.
func SetStartLevel(n int) {
	startLevel = n
}

// SetLevelsDir sets a directory of level files that override the
// built-in campaign.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetLogger sets the logger handed to every new session.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game on top of an engine.Session.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.PlatformerConfig
	difficulty *config.DifficultyManager
	session    *engine.Session
	store      engine.Store
	loadErr    error
	startAt    int

	// Last rendered size, used to map pointer cells to world units.
	viewW, viewH int

	cursorCol, cursorRow int
	cursorVisible        bool

	message      string
	messageTimer int

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new platformer game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Platformer"
}

// Reset loads configuration and levels and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.viewW, g.viewH = runtime.ScreenW, runtime.ScreenH

	// Load game config
	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultPlatformerConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyPlatformerPreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.minScreenW = 40
	g.minScreenH = 12
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.message, g.messageTimer = "", 0
	g.cursorVisible = false

	catalog, err := g.loadCatalog()
	if err != nil {
		logger.Warn("some level overrides were skipped", "dir", levelsDir, "err", err)
	}

	opts := []engine.Option{
		engine.WithTuning(TuningFromConfig(cfg)),
		engine.WithLogger(logger),
		engine.WithSeed(runtime.Seed),
		engine.WithSpeedCurve(g.difficulty.SpeedScale),
		engine.WithStartLevel(g.firstLevel()),
	}
	if g.store != nil {
		opts = append(opts, engine.WithStore(g.store))
	}
	g.session, g.loadErr = engine.NewSession(catalog, opts...)
	if g.loadErr != nil {
		logger.Error("session start failed", "err", g.loadErr)
	}
}

// firstLevel returns the level a new run begins at.
func (g *Game) firstLevel() int {
	if g.startAt > 0 {
		return g.startAt
	}
	return startLevel
}

// loadCatalog returns the embedded campaign with overrides from the
// levels directory applied. The catalog is usable even when an error is
// returned.
func (g *Game) loadCatalog() (*levels.Catalog, error) {
	base, err := levels.Embedded()
	if err != nil {
		return levels.NewCatalog(), err
	}
	if levelsDir == "" {
		return base, nil
	}
	return levels.WithDir(base, levelsDir)
}

// TuningFromConfig converts the YAML configuration into engine constants.
func TuningFromConfig(cfg config.PlatformerConfig) engine.Tuning {
	return engine.Tuning{
		Gravity:        cfg.Physics.Gravity,
		Friction:       cfg.Physics.Friction,
		FrictionSnap:   cfg.Physics.FrictionSnap,
		PlayerSpeed:    cfg.Player.Speed,
		JumpPower:      cfg.Player.JumpPower,
		WallSlideSpeed: cfg.Physics.WallSlideSpeed,
		StompBounce:    cfg.Player.StompBounce,
		StompTolerance: cfg.Player.StompTolerance,
		LandingImpact:  cfg.Physics.LandingImpact,
		FallMargin:     cfg.Physics.FallMargin,

		FireballSpeed:    cfg.Combat.FireballSpeed,
		FireballLift:     cfg.Combat.FireballLift,
		FireballGravity:  cfg.Combat.FireballGravity,
		FireballLife:     cfg.Combat.FireballLife,
		FireballCooldown: cfg.Combat.FireballCooldown,

		HurtInvulnerability: cfg.Player.HurtInvulnerability,
		StarInvulnerability: cfg.Player.StarInvulnerability,

		CameraLerp:     cfg.Camera.Lerp,
		ViewportWidth:  cfg.Camera.ViewportWidth,
		ViewportHeight: cfg.Camera.ViewportHeight,

		TrailSpeed:  cfg.Camera.TrailSpeed,
		TrailLength: cfg.Camera.TrailLength,
		TrailLife:   cfg.Camera.TrailLife,

		EnemySpeedScale: 1,
		StartingLives:   cfg.Gameplay.Lives,

		Points: engine.Points{
			Stomp:      cfg.Scoring.Stomp,
			Fireball:   cfg.Scoring.Fireball,
			BossHit:    cfg.Scoring.BossHit,
			BossDefeat: cfg.Scoring.BossDefeat,
			Coin:       cfg.Scoring.Coin,
			PowerUp:    cfg.Scoring.PowerUp,
		},
	}
}

// SetStore implements registry.Persistent.
func (g *Game) SetStore(st registry.BlobStore) {
	g.store = st
	if g.session != nil {
		g.session.SetStore(g.store)
	}
}

// OpenEditor implements registry.Editable. It switches to the editor and
// loads the saved custom level when a store is available.
func (g *Game) OpenEditor() {
	if g.session == nil {
		return
	}
	g.session.SetMode(engine.ModeEditor)
	if g.store != nil {
		if err := g.session.LoadCustomLevel(); err != nil {
			g.say("Load failed: %v", err)
		}
	}
}

// Levels implements registry.Campaign.
func (g *Game) Levels() []registry.LevelInfo {
	catalog, err := g.loadCatalog()
	if err != nil {
		logger.Warn("some level overrides were skipped", "dir", levelsDir, "err", err)
	}
	infos := make([]registry.LevelInfo, 0, catalog.Count())
	for _, n := range catalog.Numbers() {
		l, err := catalog.Get(n)
		if err != nil {
			continue
		}
		infos = append(infos, registry.LevelInfo{Number: n, Name: l.Name, Boss: l.Boss != nil})
	}
	return infos
}

// StartAt implements registry.Campaign. It overrides SetStartLevel for
// this instance.
func (g *Game) StartAt(level int) {
	g.startAt = level
}

// ContentDirs implements registry.Reloadable.
func (g *Game) ContentDirs() []string {
	if levelsDir == "" {
		return nil
	}
	return []string{levelsDir}
}

// ReloadContent implements registry.Reloadable: it re-reads the levels
// directory. The new templates apply from the next level load.
func (g *Game) ReloadContent() error {
	if g.session == nil {
		return g.loadErr
	}
	catalog, err := g.loadCatalog()
	g.session.SetCatalog(catalog)
	if err != nil {
		g.say("Levels reloaded with errors")
		return err
	}
	g.say("Levels reloaded")
	return nil
}

// Session exposes the running engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall || g.session == nil {
		return core.StepResult{State: g.State()}
	}
	if g.messageTimer > 0 {
		g.messageTimer--
	}

	g.handleCommands(in)
	g.session.Tick(g.engineInput(in))

	return core.StepResult{State: g.State()}
}

// handleCommands runs the mode and persistence actions that sit outside
// the per-tick simulation.
func (g *Game) handleCommands(in core.InputFrame) {
	s := g.session
	if in.Has(core.ActionToggleEditor) {
		if s.Mode() == engine.ModeEditor {
			s.SetMode(engine.ModeGame)
		} else {
			s.SetMode(engine.ModeEditor)
		}
	}
	if in.Has(core.ActionSave) {
		if err := s.SaveCustomLevel(); err != nil {
			g.say("Save failed: %v", err)
		} else {
			g.say("Custom level saved")
		}
	}
	if in.Has(core.ActionLoad) {
		if err := s.LoadCustomLevel(); err != nil {
			g.say("Load failed: %v", err)
		} else {
			s.SetMode(engine.ModeEditor)
			g.say("Custom level loaded")
		}
	}
	if in.Has(core.ActionPlayCustom) {
		if err := s.PlayCustomLevel(); err != nil {
			g.say("Level not playable: %v", err)
		} else {
			g.say("Playing custom level")
		}
	}
}

// engineInput maps a platform input frame to the engine's input snapshot.
func (g *Game) engineInput(in core.InputFrame) engine.Input {
	out := engine.Input{
		Left:    in.Has(core.ActionLeft),
		Right:   in.Has(core.ActionRight),
		Jump:    in.Has(core.ActionJump),
		Fire:    in.Has(core.ActionFire),
		Advance: in.Has(core.ActionConfirm),
		Restart: in.Has(core.ActionRestart),
		Pause:   in.Has(core.ActionPause),
	}

	for a := core.ActionTool1; a <= core.ActionTool9; a++ {
		if !in.Has(a) {
			continue
		}
		idx, _ := a.ToolIndex()
		if tool, ok := engine.ToolForKey(idx + 1); ok {
			out.Tool = &tool
		}
	}

	if in.HasPointer {
		g.cursorCol, g.cursorRow = in.Pointer.Col, in.Pointer.Row
		g.cursorVisible = true
		out.Pointer = g.pointerToWorld(in.Pointer)
	}
	return out
}

// pointerToWorld converts a screen cell to viewport world units. Cells
// outside the play area yield an invalid pointer.
func (g *Game) pointerToWorld(p core.Pointer) engine.Pointer {
	l := g.layout()
	if p.Row < l.top || p.Row >= l.top+l.rows || p.Col < 0 || p.Col >= l.cols {
		return engine.Pointer{X: math.NaN(), Y: math.NaN()}
	}
	return engine.Pointer{
		X:       (float64(p.Col) + 0.5) * l.sx,
		Y:       (float64(p.Row-l.top) + 0.5) * l.sy,
		Down:    p.Down,
		Pressed: p.Pressed,
	}
}

func (g *Game) say(format string, args ...any) {
	g.message = fmt.Sprintf(format, args...)
	g.messageTimer = messageTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.Status()
	level := g.session.Level()
	if g.session.Custom() {
		level = 0
	}
	return core.GameState{
		Score:    g.session.Score(),
		Level:    level,
		GameOver: st == engine.StatusWon || st == engine.StatusLost,
		Won:      st == engine.StatusWon,
		Paused:   g.session.Paused(),
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
