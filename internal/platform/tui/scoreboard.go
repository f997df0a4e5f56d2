package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

const (
	sidebarMinWidth = 80 // narrower terminals fall back to the tab layout
	sidebarWidth    = 16
	scoreboardLimit = 100 // rows fetched per variant
)

// ScoreboardKeyMap defines the scoreboard key bindings.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp lists the bindings shown in the one-line help bar.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp lists all bindings for the expanded help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap binds scrolling, variant paging and exits.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next variant")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev variant")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel pages through each variant's saved scores in a
// bubbles table.
type ScoreboardModel struct {
	variants []registry.GameInfo
	current  int // index into variants
	store    *storage.Store
	scores   []storage.ScoreEntry
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	sidebar  bool // wide layout with a variant sidebar
	back     bool
	quitting bool
}

// NewScoreboardModel creates a scoreboard sized to the terminal.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
		sidebar:  width >= sidebarMinWidth,
	}
	m.table = m.buildTable()
	m.reload()
	return m
}

// buildTable sizes the score table for the current layout.
func (m *ScoreboardModel) buildTable() table.Model {
	avail := m.width - 4
	if m.sidebar {
		avail -= sidebarWidth + 3
	}

	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 10},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 18},
	}
	if avail > 50 {
		columns[1].Width = 12
		columns[3].Width = min(avail-34, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)
	return t
}

// reload fetches the current variant's scores into the table.
func (m *ScoreboardModel) reload() {
	if len(m.variants) == 0 {
		return
	}

	m.scores = nil
	if m.store != nil {
		if scores, err := m.store.TopScores(m.variants[m.current].ID, scoreboardLimit); err == nil {
			m.scores = scores
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Player,
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// shiftVariant pages to the variant delta steps away, wrapping.
func (m *ScoreboardModel) shiftVariant(delta int) {
	if n := len(m.variants); n > 0 {
		m.current = (m.current + delta + n) % n
		m.reload()
	}
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.shiftVariant(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.shiftVariant(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sidebar = m.width >= sidebarMinWidth
		m.help.Width = msg.Width
		m.table = m.buildTable()
		m.reload()
		return m, nil
	}

	// Everything else, scrolling included, goes to the table
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the title, the active layout and the help bar.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.variants) > 0 {
		title = fmt.Sprintf("HIGH SCORES - %s", m.variants[m.current].Title)
	}

	var b strings.Builder
	b.WriteString(fg("229").Bold(true).MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	if m.sidebar {
		b.WriteString(m.viewWide())
	} else {
		b.WriteString(m.viewNarrow())
	}
	b.WriteString("\n")
	b.WriteString(fg("241").Render(m.help.View(m.keys)))
	return b.String()
}

// borderBox is the rounded frame around the sidebar and the table.
func borderBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
}

// viewWide lays the variant sidebar next to the table.
func (m ScoreboardModel) viewWide() string {
	var side strings.Builder
	side.WriteString("Variants\n")
	side.WriteString(strings.Repeat("-", sidebarWidth-4))
	side.WriteString("\n")

	for i, g := range m.variants {
		// IDs stay readable at sidebar width; the full titles all
		// share a prefix and would truncate identically
		if i == m.current {
			side.WriteString(fg("229").Bold(true).Render("> " + g.ID))
		} else {
			side.WriteString("  " + g.ID)
		}
		side.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		borderBox().Width(sidebarWidth).Render(side.String()),
		"  ",
		borderBox().Render(m.viewTable()),
	)
}

// viewNarrow stacks a variant tab strip above the table.
func (m ScoreboardModel) viewNarrow() string {
	tabs := make([]string, len(m.variants))
	for i, g := range m.variants {
		if i == m.current {
			tabs[i] = fg("229").Bold(true).Background(lipgloss.Color("57")).Padding(0, 1).Render(g.ID)
		} else {
			tabs[i] = fg("241").Render(" " + g.ID + " ")
		}
	}

	line := strings.Join(tabs, " ")
	if len(line) > m.width-4 {
		// No room for the strip, page indicator instead
		line = fmt.Sprintf("< %s >", m.variants[m.current].ID)
	}

	var b strings.Builder
	b.WriteString(centerText(line, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(borderBox().Render(m.viewTable()), m.width))
	return b.String()
}

// viewTable renders the score table or the empty-state hint.
func (m ScoreboardModel) viewTable() string {
	if len(m.scores) == 0 {
		return fg("241").Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the player chose to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the player chose to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard until the player leaves. goBack
// distinguishes returning to the menu from quitting outright.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(ScoreboardModel); ok {
		return m.IsGoingBack(), nil
	}
	return false, nil
}
