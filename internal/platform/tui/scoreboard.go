package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const (
	scoreboardLimit  = 50 // records loaded per mode
	scoreboardChrome = 11 // title, stats, tabs, details, help and borders
)

var (
	sbTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sbTabStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbActiveTab    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbFrameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbEmptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
	sbDetailsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// scoreboardKeys binds the scoreboard controls. Left/right and tab switch
// between the classic and endless tables.
type scoreboardKeys struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Next   key.Binding
	Prev   key.Binding
	Help   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Up, k.Down, k.Help, k.Back}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Next, k.Prev},
		{k.Help, k.Back, k.Quit},
	}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "best")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l", "d"), key.WithHelp("tab/→", "next mode")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h", "a"), key.WithHelp("S-tab/←", "prev mode")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best finished games of each mode, with a
// details line for the highlighted record.
type ScoreboardModel struct {
	modes  []registry.GameInfo
	active int
	store  *storage.Store

	records []storage.ScoreEntry
	stats   *storage.GameStats

	table table.Model
	help  help.Model
	keys  scoreboardKeys

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over every registered mode.
// A nil store shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newScoreTable(height)
	m.reload()
	return m
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 7},
			{Title: "Swaps", Width: 5},
			{Title: "Pts/Swap", Width: 8},
			{Title: "Chain", Width: 5},
			{Title: "Played", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-scoreboardChrome, 3)),
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

// reload fetches the active mode's records and stats.
func (m *ScoreboardModel) reload() {
	m.records = nil
	m.stats = nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.active].ID
		if records, err := m.store.TopScores(id, scoreboardLimit); err == nil {
			m.records = records
		}
		if stats, err := m.store.Stats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.MovesUsed),
			pointsPerSwap(r),
			fmt.Sprintf("x%d", r.MaxChain),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// pointsPerSwap is the average score of one kept swap.
func pointsPerSwap(r storage.ScoreEntry) string {
	if r.MovesUsed == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", float64(r.Score)/float64(r.MovesUsed))
}

func (m *ScoreboardModel) switchMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.active = (m.active + delta + len(m.modes)) % len(m.modes)
	m.reload()
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
		case key.Matches(msg, m.keys.Next):
			m.switchMode(1)
		case key.Matches(msg, m.keys.Prev):
			m.switchMode(-1)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
		case key.Matches(msg, m.keys.Bottom):
			m.table.GotoBottom()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-scoreboardChrome, 3))
		return m, nil
	}
	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.center(sbTitleStyle.Render("HIGH SCORES")))
	b.WriteString("\n")
	b.WriteString(m.center(m.renderTabs()))
	b.WriteString("\n")
	b.WriteString(m.center(sbMutedStyle.Render(m.statsLine())))
	b.WriteString("\n\n")

	if len(m.records) == 0 {
		b.WriteString(m.center(sbEmptyStyle.Render("No finished games yet.\nClear some tokens to get on the board!")))
	} else {
		b.WriteString(m.center(sbFrameStyle.Render(m.table.View())))
		b.WriteString("\n")
		b.WriteString(m.center(sbDetailsStyle.Render(m.detailsLine())))
	}

	b.WriteString("\n\n")
	b.WriteString(sbMutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// center places a styled block in the middle of the screen.
func (m ScoreboardModel) center(s string) string {
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.active {
			tabs[i] = sbActiveTab.Render(g.Title)
		} else {
			tabs[i] = sbTabStyle.Render(g.Title)
		}
	}
	return strings.Join(tabs, " ")
}

// detailsLine describes the highlighted record, including how it ended.
func (m ScoreboardModel) detailsLine() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return ""
	}
	r := m.records[i]
	end := r.EndReason
	if end == "" {
		end = "left early"
	}
	return fmt.Sprintf("#%d  %d points in %d swaps, best chain x%d, %s  (%s)",
		i+1, r.Score, r.MovesUsed, r.MaxChain, end, r.CreatedAt.Format("2006-01-02 15:04"))
}

// statsLine summarizes the active mode's history.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No games played"
	}
	st := m.stats
	return fmt.Sprintf("Games: %d  |  Best: %d  |  Avg: %.0f  |  Best chain: x%d  |  Last: %s",
		st.GamesCount, st.HighScore, st.AvgScore, st.BestChain, st.LastPlayed.Format("Jan 02"))
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
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

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
