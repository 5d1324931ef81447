package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// Status is the session's progression state.
type Status int

const (
	StatusPlaying Status = iota
	StatusLevelComplete
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusLevelComplete:
		return "level complete"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Mode selects which mutator runs each tick.
type Mode int

const (
	ModeGame Mode = iota
	ModeEditor
)

func (m Mode) String() string {
	if m == ModeEditor {
		return "editor"
	}
	return "game"
}

// CustomLevelKey is the store key of the editor's single save slot.
const CustomLevelKey = "custom_level"

// ErrNoStore is returned by persistence calls on a session without a store.
var ErrNoStore = errors.New("engine: no store configured")

// Store is the key/value blob store used for the custom level.
type Store interface {
	SaveBlob(key string, data []byte) error
	LoadBlob(key string) (data []byte, ok bool, err error)
}

// Option configures a Session.
type Option func(*Session)

// WithTuning overrides the simulation constants.
func WithTuning(t Tuning) Option {
	return func(s *Session) { s.tuning = t.normalized() }
}

// WithStore enables saving and loading the custom level.
func WithStore(st Store) Option {
	return func(s *Session) { s.store = st }
}

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSpeedCurve scales enemy and boss speed per level. The curve is
// evaluated each time a level starts with the level number (0 for the
// custom level) and the run's score.
func WithSpeedCurve(curve func(level, score int) float64) Option {
	return func(s *Session) { s.curve = curve }
}

// WithStartLevel makes Restart begin at level n instead of the first
// campaign level. Unknown levels fall back to the first.
func WithStartLevel(n int) Option {
	return func(s *Session) { s.startLevel = n }
}

// WithSeed seeds the particle RNG.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// Session runs one playthrough: it owns the World, tracks progression
// and switches between play and the level editor. A Session is not safe
// for concurrent use.
type Session struct {
	catalog *levels.Catalog
	tuning  Tuning
	store   Store
	logger  *log.Logger
	seed    int64

	curve      func(level, score int) float64
	startLevel int

	world    *World
	progress Progress
	level    int
	status   Status
	paused   bool
	custom   bool
	ticks    int
	events   []Event

	mode   Mode
	tool   Tool
	editor *World
}

// NewSession creates a session and starts the campaign at its first level.
func NewSession(catalog *levels.Catalog, opts ...Option) (*Session, error) {
	s := &Session{
		catalog: catalog,
		tuning:  DefaultTuning(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadLevel replaces the World with a fresh copy of level n. Score, lives
// and the player's power-up carry over. On error the session is unchanged.
func (s *Session) LoadLevel(n int) error {
	l, err := s.catalog.Get(n)
	if err != nil {
		s.logger.Error("level load failed", "level", n, "err", err)
		return err
	}
	player := NewPlayer(0, 0, s.tuning)
	if s.world != nil {
		player.Power = s.world.Player.Power
	}
	s.level = n
	s.custom = false
	s.start(l, player)
	s.logger.Info("level loaded", "level", n, "name", l.Name)
	return nil
}

// Restart begins a new run from the first level with fresh score and lives.
func (s *Session) Restart() error {
	first := s.catalog.First()
	if s.startLevel > 0 && s.startLevel != first {
		if _, err := s.catalog.Get(s.startLevel); err == nil {
			first = s.startLevel
		} else {
			s.logger.Warn("start level unavailable, using first", "level", s.startLevel, "err", err)
		}
	}
	l, err := s.catalog.Get(first)
	if err != nil {
		s.logger.Error("restart failed", "level", first, "err", err)
		return err
	}
	s.progress = Progress{Lives: s.tuning.StartingLives}
	s.level = first
	s.custom = false
	s.start(l, NewPlayer(0, 0, s.tuning))
	s.mode = ModeGame
	s.logger.Info("run started", "level", first, "lives", s.progress.Lives)
	return nil
}

// AdvanceLevel loads the level after the current one. Advancing past the
// last level wins the run.
func (s *Session) AdvanceLevel() error {
	next, ok := s.catalog.Next(s.level)
	if s.custom || !ok {
		s.status = StatusWon
		s.logger.Info("campaign won", "score", s.progress.Score)
		return nil
	}
	return s.LoadLevel(next)
}

func (s *Session) start(l *levels.Level, player Player) {
	particles := NewParticles(s.seed)
	if s.world != nil {
		particles = s.world.Particles
	}
	t := s.tuning
	if s.curve != nil {
		level := s.level
		if s.custom {
			level = 0
		}
		if scale := s.curve(level, s.progress.Score); scale > 0 {
			t.EnemySpeedScale = scale
		}
	}
	s.world = NewWorld(l, player, t, particles)
	s.status = StatusPlaying
	s.paused = false
}

// Tick advances the session by one frame.
func (s *Session) Tick(in Input) {
	s.ticks++
	s.events = s.events[:0]

	if in.Tool != nil {
		s.SetEditorTool(*in.Tool)
	}

	if s.mode == ModeEditor {
		s.tickEditor(in)
		return
	}

	switch s.status {
	case StatusPlaying:
		if in.Pause {
			s.paused = !s.paused
		}
		if s.paused {
			return
		}
		res := Resolve(s.world, &s.progress, in, s.tuning)
		s.events = append(s.events, res.Events...)
		s.world.Particles.Tick()
		s.world.Particles.Consume(res.Events)
		s.finish(res.Outcome)

	case StatusLevelComplete:
		s.world.Particles.Tick()
		if in.Advance {
			if err := s.AdvanceLevel(); err != nil {
				s.logger.Error("advance failed", "err", err)
			}
		}

	case StatusWon, StatusLost:
		s.world.Particles.Tick()
		if in.Restart {
			if err := s.Restart(); err != nil {
				s.logger.Error("restart failed", "err", err)
			}
		}
	}
}

func (s *Session) finish(o Outcome) {
	switch o {
	case OutcomeGoalReached:
		if s.custom || s.catalog.IsLast(s.level) {
			s.status = StatusWon
			s.logger.Info("campaign won", "level", s.level, "score", s.progress.Score)
			return
		}
		s.status = StatusLevelComplete
		s.logger.Info("level complete", "level", s.level, "score", s.progress.Score)
	case OutcomeLost:
		s.status = StatusLost
		s.logger.Info("run lost", "level", s.level, "score", s.progress.Score)
	}
}

func (s *Session) tickEditor(in Input) {
	w := s.editorWorld()
	scrollEditor(w, in, s.tuning)
	ptr := in.Pointer
	ptr.X += w.Camera.X
	if Mutate(w, ptr, s.tool) {
		s.logger.Debug("editor placed", "tool", s.tool, "x", Snap(ptr.X), "y", Snap(ptr.Y))
	}
}

func (s *Session) editorWorld() *World {
	if s.editor == nil {
		s.editor = s.newEditorWorld(EmptyLevel())
	}
	return s.editor
}

func (s *Session) newEditorWorld(l *levels.Level) *World {
	t := s.tuning
	t.EnemySpeedScale = 1
	w := NewWorld(l, NewPlayer(0, 0, t), t, NewParticles(s.seed))
	w.Camera.X = 0
	return w
}

// SetMode switches between play and the editor. The game World is kept
// while editing and resumes where it was left.
func (s *Session) SetMode(m Mode) {
	if m != ModeGame && m != ModeEditor {
		return
	}
	if m == ModeEditor {
		s.editorWorld()
	}
	if s.mode != m {
		s.logger.Debug("mode changed", "mode", m)
	}
	s.mode = m
}

// SetEditorTool selects the editor tool. Unknown tools are ignored.
func (s *Session) SetEditorTool(t Tool) {
	if t.Valid() {
		s.tool = t
	}
}

// SaveCustomLevel stores the editor's layout under CustomLevelKey.
func (s *Session) SaveCustomLevel() error {
	if s.store == nil {
		return ErrNoStore
	}
	data, err := levels.Encode(s.editorWorld().Level(0, "Custom"))
	if err != nil {
		return fmt.Errorf("engine: encoding custom level: %w", err)
	}
	if err := s.store.SaveBlob(CustomLevelKey, data); err != nil {
		return fmt.Errorf("engine: saving custom level: %w", err)
	}
	s.logger.Info("custom level saved", "bytes", len(data))
	return nil
}

// LoadCustomLevel replaces the editor's layout with the stored custom
// level. A missing or unreadable blob falls back to an empty level.
func (s *Session) LoadCustomLevel() error {
	if s.store == nil {
		return ErrNoStore
	}
	s.editor = s.newEditorWorld(s.loadCustom())
	return nil
}

func (s *Session) loadCustom() *levels.Level {
	data, ok, err := s.store.LoadBlob(CustomLevelKey)
	if err != nil {
		s.logger.Warn("custom level unavailable, starting empty", "err", err)
		return EmptyLevel()
	}
	if !ok {
		s.logger.Info("no custom level saved, starting empty")
		return EmptyLevel()
	}
	l, err := levels.Decode(data)
	if err != nil {
		s.logger.Warn("custom level unreadable, starting empty", "err", err)
		return EmptyLevel()
	}
	if l.Width <= 0 {
		l.Width = EmptyLevel().Width
	}
	return l
}

// PlayCustomLevel starts a one-level run on the editor's layout.
func (s *Session) PlayCustomLevel() error {
	l := s.editorWorld().Level(0, "Custom")
	if err := levels.Validate(l); err != nil {
		return err
	}
	s.progress = Progress{Lives: s.tuning.StartingLives}
	s.level = 0
	s.custom = true
	s.start(l, NewPlayer(0, 0, s.tuning))
	s.mode = ModeGame
	s.logger.Info("custom level started")
	return nil
}

// SetCatalog swaps the level catalog. The running World is untouched;
// the new templates apply from the next load.
func (s *Session) SetCatalog(c *levels.Catalog) {
	if c != nil {
		s.catalog = c
	}
}

// SetStore replaces the custom-level store. A nil store disables
// persistence.
func (s *Session) SetStore(st Store) {
	s.store = st
}

// World returns the World the active mutator works on. The pointer is
// only valid for reading until the next Tick.
func (s *Session) World() *World {
	if s.mode == ModeEditor {
		return s.editorWorld()
	}
	return s.world
}

// Status returns the progression state.
func (s *Session) Status() Status { return s.status }

// Score returns the run's score.
func (s *Session) Score() int { return s.progress.Score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.progress.Lives }

// Level returns the current level number; 0 while playing a custom level.
func (s *Session) Level() int { return s.level }

// LevelName returns the display name of the current level.
func (s *Session) LevelName() string {
	if s.custom {
		return "Custom"
	}
	return s.catalog.Name(s.level)
}

// LevelCount returns the number of campaign levels.
func (s *Session) LevelCount() int { return s.catalog.Count() }

// Boss reports the current boss health, if a boss is alive.
func (s *Session) Boss() (health, max int, ok bool) {
	if s.world == nil || s.world.Boss == nil {
		return 0, 0, false
	}
	return s.world.Boss.Health, s.world.Boss.MaxHealth, true
}

// Mode returns the active mode.
func (s *Session) Mode() Mode { return s.mode }

// Tool returns the selected editor tool.
func (s *Session) Tool() Tool { return s.tool }

// Paused reports whether play is paused.
func (s *Session) Paused() bool { return s.paused }

// Custom reports whether the session is playing the custom level.
func (s *Session) Custom() bool { return s.custom }

// Ticks returns the number of ticks processed.
func (s *Session) Ticks() int { return s.ticks }

// Events returns the effect events of the last tick.
func (s *Session) Events() []Event { return s.events }

// Tuning returns the constants the session runs with.
func (s *Session) Tuning() Tuning { return s.tuning }
