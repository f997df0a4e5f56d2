package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// maxStartLevel is the highest level offered by the start-level picker.
const maxStartLevel = 15

const pickerFooter = "Enter: Select  |  Esc: Back  |  Q: Quit"

// MenuSelection holds the variant and options chosen in the menu.
type MenuSelection struct {
	GameID     string
	Difficulty string // difficulty preset name, empty for defaults
	StartLevel int    // 0 keeps the configured start level
}

// difficultyChoices are the rows of the difficulty phase, in order.
var difficultyChoices = []struct {
	label  string
	preset string
}{
	{"Normal", "normal"},
	{"Easy (gentle speed ramp)", "easy"},
	{"Hard (start at level 5)", "hard"},
	{"Fixed speed (no ramp)", "fixed"},
}

type menuPhase int

const (
	pickVariant menuPhase = iota
	pickDifficulty
	pickLevel
)

// MenuModel is the Bubble Tea model for the variant picker. Selecting
// a variant optionally continues into a difficulty phase and a
// start-level phase before the menu hands control back.
type MenuModel struct {
	items []registry.GameInfo
	best  map[string]int // high score per variant, missing when unplayed

	phase   menuPhase
	cursor  int
	diffRow int
	lvlRow  int

	withOptions bool // offer the difficulty and start-level phases
	config      core.RuntimeConfig
	keys        *KeyMapper

	quitting       bool
	selected       *MenuSelection
	openScoreboard bool
}

// NewMenuModel creates a menu over all registered variants. Saved high
// scores, when available, are shown next to each entry.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	items := registry.List()

	best := make(map[string]int, len(items))
	if store != nil {
		for _, it := range items {
			if hs, err := store.HighScore(it.ID); err == nil && hs > 0 {
				best[it.ID] = hs
			}
		}
	}

	return MenuModel{
		items:       items,
		best:        best,
		withOptions: true,
		config:      cfg,
		keys:        NewKeyMapper(),
	}
}

// NewSessionMenuModel creates the menu served to SSH sessions. The
// difficulty and start-level pickers adjust process-wide game settings,
// so shared sessions skip them and play with the configured defaults.
func NewSessionMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := NewMenuModel(store, cfg)
	m.withOptions = false
	return m
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keys.MapKeyToMenuAction(msg)
		if action == MenuActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.phase {
		case pickDifficulty:
			return m.onDifficultyKey(action)
		case pickLevel:
			return m.onLevelKey(action)
		default:
			return m.onVariantKey(action)
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

// choose records the finished selection and ends the menu program.
func (m MenuModel) choose(sel MenuSelection) (tea.Model, tea.Cmd) {
	m.selected = &sel
	return m, tea.Quit
}

func (m MenuModel) onVariantKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			break
		}
		if !m.withOptions {
			return m.choose(MenuSelection{GameID: m.items[m.cursor].ID})
		}
		m.phase = pickDifficulty
		m.diffRow = 0

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) onDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	// One extra row below the presets opens the start-level picker
	last := len(difficultyChoices)

	switch action {
	case MenuActionUp:
		if m.diffRow > 0 {
			m.diffRow--
		}

	case MenuActionDown:
		if m.diffRow < last {
			m.diffRow++
		}

	case MenuActionSelect:
		if m.diffRow < last {
			return m.choose(MenuSelection{
				GameID:     m.items[m.cursor].ID,
				Difficulty: difficultyChoices[m.diffRow].preset,
			})
		}
		m.phase = pickLevel
		m.lvlRow = 0

	case MenuActionBack:
		m.phase = pickVariant
	}

	return m, nil
}

func (m MenuModel) onLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.lvlRow > 0 {
			m.lvlRow--
		}

	case MenuActionDown:
		if m.lvlRow < maxStartLevel-1 {
			m.lvlRow++
		}

	case MenuActionSelect:
		return m.choose(MenuSelection{
			GameID:     m.items[m.cursor].ID,
			StartLevel: m.lvlRow + 1, // rows are 0-based, levels start at 1
		})

	case MenuActionBack:
		m.phase = pickDifficulty
	}

	return m, nil
}

// View renders the active phase.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.phase {
	case pickDifficulty:
		return m.viewDifficulty()
	case pickLevel:
		return m.viewLevels()
	default:
		return m.viewVariants()
	}
}

func (m MenuModel) viewVariants() string {
	w := m.config.ScreenW
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  B L O C K F A L L  ", w))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a variant", w))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + item.Title
		if hs, ok := m.best[item.ID]; ok {
			line = fmt.Sprintf("%s  (best %d)", line, hs)
		}
		b.WriteString(centerText(line, w))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", w))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewDifficulty() string {
	w := m.config.ScreenW
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.items[m.cursor].Title, w))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", w))
	b.WriteString("\n\n")

	for i, choice := range difficultyChoices {
		cursor := "  "
		if i == m.diffRow {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+choice.label, w))
		b.WriteString("\n")
	}

	cursor := "  "
	if m.diffRow == len(difficultyChoices) {
		cursor = "> "
	}
	b.WriteString(centerText(cursor+"Choose start level...", w))
	b.WriteString("\n\n")
	b.WriteString(centerText(pickerFooter, w))

	return b.String()
}

func (m MenuModel) viewLevels() string {
	w := m.config.ScreenW
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("START LEVEL", w))
	b.WriteString("\n\n")

	for i := 0; i < maxStartLevel; i++ {
		cursor := "  "
		if i == m.lvlRow {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%sLevel %2d", cursor, i+1), w))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(pickerFooter, w))

	return b.String()
}

// Selected returns the completed selection, nil while browsing.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting reports whether the player chose to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the player asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, tracking any terminal resizes
// that happened while the menu was up.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text to sit centered in width. Text wider than the
// target, multi-line blocks included, comes back unchanged.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult is what a finished menu run reports back to the caller.
type MenuResult struct {
	GameID          string
	Difficulty      string
	StartLevel      int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu in its own Bubble Tea program and reports
// what the player picked.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.IsQuitting():
		res.Quit = true
	default:
		if sel := m.Selected(); sel != nil {
			res.GameID = sel.GameID
			res.Difficulty = sel.Difficulty
			res.StartLevel = sel.StartLevel
		} else {
			res.Quit = true
		}
	}
	return res, nil
}
