package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return s, cmd
}

func TestSessionFlow(t *testing.T) {
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	m := NewSessionModel(nil, testConfig(), "tester", nil)
	if m.current != screenMenu {
		t.Fatalf("session should start on the menu, got %v", m.current)
	}

	m, _ = sessionUpdate(t, m, enter)
	if m.current != screenMode {
		t.Fatalf("enter on menu: screen = %v, want mode selector", m.current)
	}

	// Mode, then difficulty
	m, _ = sessionUpdate(t, m, enter)
	m, _ = sessionUpdate(t, m, enter)
	if m.current != screenGame {
		t.Fatalf("after selecting mode and difficulty: screen = %v, want game", m.current)
	}
	if id := m.game.game.ID(); id != "match3" {
		t.Errorf("game = %q, want match3", id)
	}

	m, cmd := sessionUpdate(t, m, TickMsg{})
	if cmd == nil {
		t.Error("game ticks should keep ticking")
	}

	m, _ = sessionUpdate(t, m, esc)
	if m.current != screenMenu || m.quitting {
		t.Errorf("esc in game: screen = %v quitting = %v, want menu", m.current, m.quitting)
	}
}

func TestSessionEndlessSelection(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "tester", nil)
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.current != screenGame {
		t.Fatalf("screen = %v, want game", m.current)
	}
	if id := m.game.game.ID(); id != "match3_endless" {
		t.Errorf("game = %q, want match3_endless", id)
	}
	if moves := m.game.game.State().Moves; moves != -1 {
		t.Errorf("endless moves = %d, want -1", moves)
	}
}

func TestSessionScoreboardAndQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "tester", nil)

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current != screenScoreboard {
		t.Fatalf("tab on menu: screen = %v, want scoreboard", m.current)
	}
	if m.View() == "" {
		t.Error("scoreboard should render")
	}

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu {
		t.Fatalf("esc on scoreboard: screen = %v, want menu", m.current)
	}

	m, cmd := sessionUpdate(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q on the menu should quit the session")
	}
}

func TestSessionLogsToServerLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	m := NewSessionModel(nil, testConfig(), "tester", logger)
	for range 3 {
		m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	if m.current != screenGame {
		t.Fatalf("screen = %v, want game", m.current)
	}

	out := buf.String()
	if !strings.Contains(out, "game started") {
		t.Errorf("server logger missed the session event: %q", out)
	}
	if !strings.Contains(out, "user=tester") {
		t.Errorf("session logs should carry the user: %q", out)
	}
}
