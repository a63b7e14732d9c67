package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

// Match3Selection holds the user's choice from the match-3 menu.
type Match3Selection struct {
	GameID     string // "match3" or "match3_endless"
	Difficulty config.DifficultyPreset
}

var match3Modes = []struct {
	gameID string
	label  string
}{
	{"match3", "Classic (move budget)"},
	{"match3_endless", "Endless (until the board locks)"},
}

// Match3ModeModel lets users choose the game mode and then a difficulty.
type Match3ModeModel struct {
	cursor         int
	presetCursor   int
	inPresetSelect bool
	width          int
	height         int
	keyMapper      *KeyMapper
	presetLines    []string
	selection      Match3Selection
	choosing       bool
	quitting       bool
	back           bool
}

// NewMatch3ModeModel creates a new mode selection model. The preset
// cursor starts on initial, or on normal when initial is empty.
func NewMatch3ModeModel(width, height int, initial config.DifficultyPreset) Match3ModeModel {
	m := Match3ModeModel{
		width:       width,
		height:      height,
		keyMapper:   NewKeyMapper(),
		presetLines: presetLines(),
		choosing:    true,
	}
	if initial == "" {
		initial = config.DifficultyNormal
	}
	for i, p := range config.Presets {
		if p == initial {
			m.presetCursor = i
		}
	}
	return m
}

// presetLines describes what each preset does to the loaded config.
func presetLines() []string {
	lines := make([]string, len(config.Presets))
	for i, p := range config.Presets {
		cfg, err := match3.PresetConfig(p)
		if err != nil {
			lines[i] = string(p)
			continue
		}
		lines[i] = fmt.Sprintf("%-7s %dx%d board, %d kinds, %d moves",
			p, cfg.Board.Size, cfg.Board.Size, cfg.Board.Kinds, cfg.Rules.Moves)
	}
	return lines
}

// Init initializes the model.
func (m Match3ModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Match3ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Match3ModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inPresetSelect {
		return m.handlePresetSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m Match3ModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, len(match3Modes)-1)
	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, len(match3Modes)-1)
	case MenuActionSelect, MenuActionRight:
		m.inPresetSelect = true
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Match3ModeModel) handlePresetSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.presetCursor = core.Clamp(m.presetCursor-1, 0, len(config.Presets)-1)
	case MenuActionDown:
		m.presetCursor = core.Clamp(m.presetCursor+1, 0, len(config.Presets)-1)
	case MenuActionSelect:
		m.choosing = false
		m.selection = Match3Selection{
			GameID:     match3Modes[m.cursor].gameID,
			Difficulty: config.Presets[m.presetCursor],
		}
		return m, tea.Quit
	case MenuActionBack, MenuActionLeft:
		m.inPresetSelect = false
	}

	return m, nil
}

// View renders the mode/difficulty selection.
func (m Match3ModeModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inPresetSelect {
		return m.viewPresetSelect()
	}
	return m.viewModeSelect()
}

func (m Match3ModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("M A T C H - 3", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i, mode := range match3Modes {
		b.WriteString(centerText(menuLine(i == m.cursor, mode.label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m Match3ModeModel) viewPresetSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT DIFFICULTY", m.width))
	b.WriteString("\n\n")

	for i, line := range m.presetLines {
		b.WriteString(centerText(menuLine(i == m.presetCursor, line), m.width))
		b.WriteString("\n")
	}

	if m.cursor == 1 {
		b.WriteString("\n")
		b.WriteString(centerText("Endless mode ignores the move budget", m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func menuLine(active bool, text string) string {
	if active {
		return "> " + text
	}
	return "  " + text
}

// Selected returns the selection, or nil if still choosing.
func (m Match3ModeModel) Selected() *Match3Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m Match3ModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m Match3ModeModel) WantsBack() bool {
	return m.back
}

// RunMatch3ModeSelector runs the mode selection and returns the selection,
// or nil when the user backed out or quit.
func RunMatch3ModeSelector(cfg core.RuntimeConfig, initial config.DifficultyPreset) (*Match3Selection, core.RuntimeConfig, error) {
	model := NewMatch3ModeModel(cfg.ScreenW, cfg.ScreenH, initial)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(Match3ModeModel)
	if !ok {
		return nil, cfg, nil
	}
	cfg.ScreenW = m.width
	cfg.ScreenH = m.height

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
