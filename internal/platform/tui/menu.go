package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   time.Duration // Fastest win, zero if none
	Played int
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	message        string // Shown under the list, e.g. a failed game start
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model listing every registered game.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if stats, err := store.Stats(g.ID); err == nil {
				item.Best = stats.BestTime
				item.Played = stats.Played
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// WithMessage returns the menu with a status message below the list.
func (m MenuModel) WithMessage(msg string) MenuModel {
	m.message = msg
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

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
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
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M I N E S W E E P E R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuMutedStyle.Render("Select a mode"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title)
		}
		if item.Best > 0 {
			line += menuMutedStyle.Render(fmt.Sprintf("  best %s", item.Best.Truncate(time.Second)))
		} else if item.Played > 0 {
			line += menuMutedStyle.Render(fmt.Sprintf("  %d played", item.Played))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(centerText(menuErrorStyle.Render(m.message), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuMutedStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width, measuring styled text by
// its printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, message string) (MenuResult, error) {
	model := NewMenuModel(store, cfg).WithMessage(message)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
	}
	return result, nil
}
