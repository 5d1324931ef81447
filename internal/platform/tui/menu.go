package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// MenuChoice is what the player picked from the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceEditor
	ChoiceScores
	ChoiceQuit
)

// MenuItem is one line of the main menu.
type MenuItem struct {
	Title  string
	Choice MenuChoice
	picker bool // opens the level list instead of choosing
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	gameID    string
	title     string
	items     []MenuItem
	cursor    int
	levels    []registry.LevelInfo
	picking   bool
	levelCur  int
	highScore int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
	level     int
}

// NewMenuModel creates the main menu for a registered game.
func NewMenuModel(gameID string, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		gameID:    gameID,
		title:     gameID,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}

	if game, err := registry.Create(gameID); err == nil {
		m.title = game.Title()
		if c, ok := game.(registry.Campaign); ok {
			m.levels = c.Levels()
		}
	}

	if store != nil {
		if hs, err := store.HighScore(gameID); err == nil {
			m.highScore = hs
		}
	}

	m.items = append(m.items, MenuItem{Title: "Play Campaign", Choice: ChoicePlay})
	if len(m.levels) > 0 {
		m.items = append(m.items, MenuItem{Title: "Select Level", Choice: ChoicePlay, picker: true})
	}
	m.items = append(m.items,
		MenuItem{Title: "Level Editor", Choice: ChoiceEditor},
		MenuItem{Title: "High Scores", Choice: ChoiceScores},
		MenuItem{Title: "Quit", Choice: ChoiceQuit},
	)
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.picking {
			return m.handlePickerKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		item := m.items[m.cursor]
		if item.picker {
			m.picking = true
			return m, nil
		}
		m.choice = item.Choice
		return m, tea.Quit

	case MenuActionScoreboard:
		m.choice = ChoiceScores
		return m, tea.Quit
	}

	return m, nil
}

// handlePickerKey navigates the level list.
func (m MenuModel) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionBack:
		m.picking = false

	case MenuActionUp:
		if m.levelCur > 0 {
			m.levelCur--
		}

	case MenuActionDown:
		if m.levelCur < len(m.levels)-1 {
			m.levelCur++
		}

	case MenuActionSelect:
		m.choice = ChoicePlay
		m.level = m.levels[m.levelCur].Number
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	var b strings.Builder

	title := strings.Join(strings.Split(strings.ToUpper(m.title), ""), " ")
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	if m.highScore > 0 {
		b.WriteString(centerText(fmt.Sprintf("High score: %d", m.highScore), m.width))
		b.WriteString("\n\n")
	}

	if m.picking {
		b.WriteString(m.levelList())
	} else {
		for i, item := range m.items {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			b.WriteString(centerText(cursor+item.Title, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	if m.picking {
		controls = "Up/Down: Navigate  |  Enter: Play  |  Esc: Back"
	}
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// levelList renders the level picker, scrolled to keep the cursor visible.
func (m MenuModel) levelList() string {
	var b strings.Builder

	visible := core.Max(3, m.height-10)
	first := 0
	if m.levelCur >= visible {
		first = m.levelCur - visible + 1
	}
	last := core.Min(len(m.levels), first+visible)

	for i := first; i < last; i++ {
		lv := m.levels[i]
		cursor := "  "
		if i == m.levelCur {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d. %s", cursor, lv.Number, lv.Name)
		if lv.Boss {
			line += "  [boss]"
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// Choice returns what the player picked, ChoiceNone while the menu runs.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Level returns the picked start level, 0 for the campaign start.
func (m MenuModel) Level() int {
	return m.level
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Level  int
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(gameID string, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(gameID, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}

	return MenuResult{
		Choice: m.Choice(),
		Level:  m.Level(),
		Config: m.Config(),
	}, nil
}
