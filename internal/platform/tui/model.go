package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithReload feeds content change notifications into the running game.
func WithReload(ch <-chan string) GameOption {
	return func(m *GameModel) { m.reload = ch }
}

// WithEditor starts the game in its level editor.
func WithEditor() GameOption {
	return func(m *GameModel) { m.editor = true }
}

// WithLogger sets the logger used for host-side events.
func WithLogger(l *log.Logger) GameOption {
	return func(m *GameModel) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRenderer renders the game for a specific output, such as an SSH client.
func WithRenderer(r *lipgloss.Renderer) GameOption {
	return func(m *GameModel) { m.renderer = NewScreenRenderer(r) }
}

// WithStartLevel makes new runs begin at the given campaign level.
func WithStartLevel(n int) GameOption {
	return func(m *GameModel) { m.startLevel = n }
}

// GameModel is the Bubble Tea model hosting one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *ScreenRenderer
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	held       heldKeys
	pointer    core.Pointer
	gameState  core.GameState
	keyMapper  *KeyMapper
	logger     *log.Logger
	reload     <-chan string
	editor     bool
	startLevel int
	standalone bool // quit instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	cfg = cfg.WithDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:   defaultRenderer,
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init wires optional game capabilities, resets the game and starts ticking.
func (m GameModel) Init() tea.Cmd {
	if p, ok := m.game.(registry.Persistent); ok && m.store != nil {
		p.SetStore(m.store)
	}
	if c, ok := m.game.(registry.Campaign); ok && m.startLevel > 0 {
		c.StartAt(m.startLevel)
	}

	m.game.Reset(m.config)

	if e, ok := m.game.(registry.Editable); ok && m.editor {
		e.OpenEditor()
	}

	return tea.Batch(tickCmd(m.config.TickRate), waitForReload(m.reload))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		// The game lays itself out on every render; no reset needed.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case ReloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "f12" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case action == core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	case IsHeld(action):
		m.held.press(action)
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse records the left button state. A press stays visible to
// the game until the next tick consumes it.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.pointer.Col, m.pointer.Row = msg.X, msg.Y

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.pointer.Down = true
		m.pointer.Pressed = true
	case tea.MouseActionRelease:
		m.pointer.Down = false
	case tea.MouseActionMotion:
	default:
		return m, nil
	}

	m.inputFrame.SetPointer(m.pointer)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.held.apply(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once). The game restarts itself, which
	// clears GameOver and arms the next save.
	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	m.pointer.Pressed = false

	return m, tickCmd(m.config.TickRate)
}

func (m GameModel) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "err", err)
		return
	}
	m.logger.Info("score saved", "game", m.game.ID(), "score", m.gameState.Score,
		"level", m.gameState.Level, "won", m.gameState.Won)
}

func (m GameModel) handleReload(msg ReloadMsg) (tea.Model, tea.Cmd) {
	if r, ok := m.game.(registry.Reloadable); ok {
		if err := r.ReloadContent(); err != nil {
			m.logger.Warn("content reload had errors", "file", string(msg), "err", err)
		} else {
			m.logger.Info("content reloaded", "file", string(msg))
		}
	}
	return m, waitForReload(m.reload)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir, err := config.UserPath("screenshots")
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for the game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) error {
	model := NewGameModel(game, store, cfg, opts...)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Editor clicks and drags
	)

	_, err := p.Run()
	return err
}
