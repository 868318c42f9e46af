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

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Run board layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show level list sidebar
	sidebarWidth       = 24  // Width of level list sidebar
	maxRuns            = 100 // Max runs to load per level
)

// RunboardKeyMap defines the key bindings for the run board.
type RunboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultRunboardKeyMap returns default key bindings.
func DefaultRunboardKeyMap() RunboardKeyMap {
	return RunboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/S-tab", "prev level"),
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

// boardLevel is one entry of the level list.
type boardLevel struct {
	ID    string
	Name  string
	Stats storage.LevelStats
}

// RunboardModel is the Bubble Tea model for the run history screen.
type RunboardModel struct {
	levels      []boardLevel
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	table       table.Model
	help        help.Model
	keys        RunboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
	err         error
}

// NewRunboardModel creates a run board for the given levels. Levels that only
// appear in the history, such as deleted level files, are listed after them.
func NewRunboardModel(store *storage.Store, defs []breakout.LevelData, width, height int) RunboardModel {
	h := help.New()
	h.ShowAll = false

	m := RunboardModel{
		store:       store,
		keys:        DefaultRunboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.loadLevels(defs)
	m.table = m.createTable()
	m.loadRuns()

	return m
}

func (m *RunboardModel) loadLevels(defs []breakout.LevelData) {
	index := make(map[string]int, len(defs))
	for _, d := range defs {
		name := d.Name
		if name == "" {
			name = d.ID
		}
		index[d.ID] = len(m.levels)
		m.levels = append(m.levels, boardLevel{ID: d.ID, Name: name})
	}

	if m.store == nil {
		return
	}
	stats, err := m.store.LevelStats()
	if err != nil {
		m.err = err
		return
	}
	for _, st := range stats {
		if i, ok := index[st.LevelID]; ok {
			m.levels[i].Stats = st
			continue
		}
		name := st.LevelName
		if name == "" {
			name = st.LevelID
		}
		m.levels = append(m.levels, boardLevel{ID: st.LevelID, Name: name, Stats: st})
	}
}

// createTable creates a new table with appropriate columns.
func (m *RunboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Result", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Bricks", Width: 6},
		{Title: "Lost", Width: 4},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, help, and margins
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

// loadRuns loads the best runs of the selected level.
func (m *RunboardModel) loadRuns() {
	m.runs = nil
	if m.store != nil && len(m.levels) > 0 {
		runs, err := m.store.BestRuns(m.levels[m.cursor].ID, maxRuns)
		if err != nil {
			m.err = err
		} else {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *RunboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		elapsed := "-"
		if r.Won() {
			elapsed = FormatDuration(r.Duration)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Outcome,
			elapsed,
			fmt.Sprintf("%d", r.BricksBroken),
			fmt.Sprintf("%d", r.LivesLost),
			r.Player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the run board model.
func (m RunboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run board.
func (m RunboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextLevel):
			if len(m.levels) > 0 {
				m.cursor = (m.cursor + 1) % len(m.levels)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			if len(m.levels) > 0 {
				m.cursor = (m.cursor - 1 + len(m.levels)) % len(m.levels)
				m.loadRuns()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Resize adapts the layout to a new terminal size.
func (m *RunboardModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.showSidebar = m.width >= minWidthForSidebar
	m.table = m.createTable()
	m.updateTableRows()
	m.help.Width = width
}

// View renders the run board.
func (m RunboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "BEST RUNS"
	if len(m.levels) > 0 {
		title = fmt.Sprintf("BEST RUNS - %s", m.levels[m.cursor].Name)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.summary(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary describes the aggregate stats of the selected level.
func (m RunboardModel) summary() string {
	if len(m.levels) == 0 {
		return ""
	}
	st := m.levels[m.cursor].Stats
	best := "-"
	if st.Wins > 0 {
		best = FormatDuration(st.BestTime)
	}
	return fmt.Sprintf("plays %d · wins %d · best %s", st.Plays, st.Wins, best)
}

// renderWideLayout renders the run board with a sidebar for level selection.
func (m RunboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, l := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(l.Name, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the run board with the level name above the table.
func (m RunboardModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.levels) > 0 {
		tab := fmt.Sprintf("< %d/%d %s >", m.cursor+1, len(m.levels), m.levels[m.cursor].Name)
		b.WriteString(centerText(tab, m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RunboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nClear the level to set a time!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the game.
func (m RunboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunboardModel) IsQuitting() bool {
	return m.quitting
}

// RunRunboard runs the run board as its own program.
func RunRunboard(store *storage.Store, defs []breakout.LevelData, width, height int) error {
	model := &runboardProgram{board: NewRunboardModel(store, defs, width, height)}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// runboardProgram quits the program when the board is closed either way.
type runboardProgram struct {
	board RunboardModel
}

func (p *runboardProgram) Init() tea.Cmd { return nil }

func (p *runboardProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := p.board.Update(msg)
	p.board = next.(RunboardModel)
	if p.board.IsQuitting() || p.board.IsGoingBack() {
		return p, tea.Quit
	}
	return p, cmd
}

func (p *runboardProgram) View() string { return p.board.View() }

// FormatDuration renders a run time as m:ss.t.
func FormatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	minutes := int(d / time.Minute)
	seconds := d % time.Minute
	return fmt.Sprintf("%d:%04.1f", minutes, seconds.Seconds())
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
