package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const (
	maxScores   = 100 // rows loaded per board
	dateLayout  = "Jan 02 15:04"
	bestMarker  = "★ best"
	chromeLines = 9 // title, stats, tabs, borders, help
)

// board is one view of the score history.
type board struct {
	title    string
	load     func(store *storage.Store, gameID string) ([]storage.ScoreEntry, error)
	markBest bool // flag rows that tie the all-time high score
}

var boards = []board{
	{
		title: "Top Scores",
		load: func(store *storage.Store, gameID string) ([]storage.ScoreEntry, error) {
			return store.TopScores(gameID, maxScores)
		},
	},
	{
		title: "Recent Runs",
		load: func(store *storage.Store, gameID string) ([]storage.ScoreEntry, error) {
			return store.RecentScores(gameID, maxScores)
		},
		markBest: true,
	},
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBoard, k.PrevBoard, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextBoard: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next board"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreboardStyles are bound to one output so SSH clients get their own
// color profile.
type scoreboardStyles struct {
	title     lipgloss.Style
	stats     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	frame     lipgloss.Style
	empty     lipgloss.Style
	help      lipgloss.Style
	table     table.Styles
}

func newScoreboardStyles(r *lipgloss.Renderer) scoreboardStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	accent := lipgloss.Color("229")
	muted := lipgloss.Color("241")
	border := lipgloss.Color("240")
	highlight := lipgloss.Color("57")

	return scoreboardStyles{
		title:     r.NewStyle().Bold(true).Foreground(accent),
		stats:     r.NewStyle().Foreground(muted),
		tab:       r.NewStyle().Foreground(muted).Padding(0, 1),
		activeTab: r.NewStyle().Bold(true).Foreground(accent).Background(highlight).Padding(0, 1),
		frame:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		empty:     r.NewStyle().Foreground(muted).Italic(true).Padding(2, 4),
		help:      r.NewStyle().Foreground(muted),
		table: table.Styles{
			Header: r.NewStyle().Bold(true).Padding(0, 1).
				BorderStyle(lipgloss.NormalBorder()).BorderForeground(border).BorderBottom(true),
			Cell:     r.NewStyle().Padding(0, 1),
			Selected: r.NewStyle().Foreground(accent).Background(highlight),
		},
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	gameID      string
	title       string
	boardCursor int
	store       *storage.Store
	scores      []storage.ScoreEntry
	stats       *storage.GameStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	styles      scoreboardStyles
	width       int
	height      int
	quitting    bool
	goingBack   bool // Back to the menu rather than quit
}

// NewScoreboardModel creates a scoreboard for gameID drawn with the local
// terminal's renderer.
func NewScoreboardModel(gameID string, store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		gameID: gameID,
		title:  gameID,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		styles: newScoreboardStyles(nil),
		width:  width,
		height: height,
	}
	if game, err := registry.Create(gameID); err == nil {
		m.title = game.Title()
	}

	m.table = m.newTable()
	m.loadScores()
	return m
}

// WithRenderer restyles the scoreboard for another output.
func (m ScoreboardModel) WithRenderer(r *lipgloss.Renderer) ScoreboardModel {
	m.styles = newScoreboardStyles(r)
	m.table.SetStyles(m.styles.table)
	return m
}

// newTable sizes the columns to the window. The date column takes what is
// left after rank, score and the best marker.
func (m *ScoreboardModel) newTable() table.Model {
	dateW := m.width - 4 - 6 - 10 - 10
	dateW = max(12, min(dateW, 20))

	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: dateW},
		{Title: "", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-chromeLines)),
	)
	t.SetStyles(m.styles.table)
	return t
}

// loadScores loads the current board and the summary stats.
func (m *ScoreboardModel) loadScores() {
	m.scores, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		m.scores, m.loadErr = boards[m.boardCursor].load(m.store, m.gameID)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(m.gameID)
		}
	}
	m.refreshRows()
}

func (m *ScoreboardModel) refreshRows() {
	best := -1
	if boards[m.boardCursor].markBest && m.stats != nil {
		best = m.stats.HighScore
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		note := ""
		if s.Score == best {
			note = bestMarker
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format(dateLayout),
			note,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextBoard):
			m.switchBoard(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevBoard):
			m.switchBoard(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.refreshRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchBoard(step int) {
	m.boardCursor = (m.boardCursor + step + len(boards)) % len(boards)
	m.loadScores()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("%s - %s", strings.ToUpper(m.title), boards[m.boardCursor].title)
	b.WriteString(m.styles.title.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(m.styles.stats.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(m.styles.frame.Render(m.body()))
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.help.View(m.keys)))
	return b.String()
}

// statsLine summarizes every recorded run.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("Runs: %d  Best: %d  Average: %.0f  Last played: %s",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore,
		m.stats.LastPlayed.Format(dateLayout))
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(boards))
	for i, bd := range boards {
		if i == m.boardCursor {
			tabs[i] = m.styles.activeTab.Render(bd.title)
		} else {
			tabs[i] = m.styles.tab.Render(bd.title)
		}
	}
	return strings.Join(tabs, " ")
}

// body is the table, or a note when there is nothing to show.
func (m ScoreboardModel) body() string {
	if m.loadErr != nil {
		return m.styles.empty.Render(fmt.Sprintf("Scores unavailable:\n%v", m.loadErr))
	}
	if len(m.scores) == 0 {
		return m.styles.empty.Render("No scores recorded yet.\nFinish a run to set a high score!")
	}
	return m.table.View()
}

// Scores returns the entries on the current board.
func (m ScoreboardModel) Scores() []storage.ScoreEntry {
	return m.scores
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(gameID string, store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(gameID, store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
