package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

const (
	minWidthForSidebar = 90  // Minimum width to show the game list sidebar
	sidebarWidth       = 28  // Width of the game list sidebar
	maxResults         = 100 // Max rows to load
)

// ScoreboardView selects which results the table lists.
type ScoreboardView int

const (
	ViewBestTimes ScoreboardView = iota
	ViewRecent
)

func (v ScoreboardView) String() string {
	if v == ViewRecent {
		return "RECENT GAMES"
	}
	return "BEST TIMES"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextGame   key.Binding
	PrevGame   key.Binding
	ToggleView key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.ToggleView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.ToggleView, k.Back, k.Quit},
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
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "best/recent"),
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

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	view        ScoreboardView
	results     []storage.Result
	stats       storage.Stats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		games:       registry.List(),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.games) > 0 {
		m.load()
	}
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Time", Width: 8},
		{Title: "Score", Width: 7},
		{Title: "Result", Width: 6},
		{Title: "Board", Width: 12},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the results and stats for the selected game.
func (m *ScoreboardModel) load() {
	m.results, m.stats, m.loadErr = nil, storage.Stats{}, nil
	if m.store != nil && len(m.games) > 0 {
		gameID := m.games[m.gameCursor].ID
		if m.view == ViewRecent {
			m.results, m.loadErr = m.store.RecentResults(gameID, maxResults)
		} else {
			m.results, m.loadErr = m.store.BestTimes(gameID, maxResults)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats(gameID)
		}
	}
	m.table.SetRows(resultRows(m.results))
	m.table.GotoTop()
}

// resultRows formats results as table rows.
func resultRows(results []storage.Result) []table.Row {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			formatElapsed(r.Elapsed),
			fmt.Sprintf("%d", r.Score),
			outcome,
			fmt.Sprintf("%dx%d/%d", r.Rows, r.Cols, r.Mines),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// formatElapsed renders a duration as m:ss.t
func formatElapsed(d time.Duration) string {
	d = d.Truncate(100 * time.Millisecond)
	minutes := int(d / time.Minute)
	seconds := d % time.Minute
	return fmt.Sprintf("%d:%04.1f", minutes, seconds.Seconds())
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.ToggleView):
			if m.view == ViewBestTimes {
				m.view = ViewRecent
			} else {
				m.view = ViewBestTimes
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(resultRows(m.results))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := m.view.String()
	if len(m.games) > 0 {
		title = fmt.Sprintf("%s - %s", title, m.games[m.gameCursor].Title)
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(menuMutedStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(menuMutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats.Played == 0 {
		return "No games played"
	}
	line := fmt.Sprintf("Played %d  Won %d  Lost %d", m.stats.Played, m.stats.Won, m.stats.Lost)
	if m.stats.BestTime > 0 {
		line += "  Best " + formatElapsed(m.stats.BestTime)
	}
	return line
}

func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + g.Title))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.games) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.games[m.gameCursor].Title), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Scores are disabled (no database).")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.results) == 0 && m.view == ViewBestTimes:
		return emptyStyle.Render("No wins recorded yet.\nClear a board to set a time!")
	case len(m.results) == 0:
		return emptyStyle.Render("No games recorded yet.")
	}
	return m.table.View()
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
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

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
