package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestUndoRedoTimePickRestoresSlotHistory(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	settle(t, m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))

	afterPick := m.State().Draft
	press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.State().Draft; got != "Please confirm:\n5月 3日 (土曜日)" {
		t.Fatalf("expected undo to remove the time, got %q", got)
	}
	if got := m.State().SlotCount(); got != 0 {
		t.Fatalf("expected undo to forget the slot, got %d", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.State().Draft; got != afterPick {
		t.Fatalf("expected redo to restore %q, got %q", afterPick, got)
	}
	if got := m.State().SlotCount(); got != 1 {
		t.Fatalf("expected redo to restore the slot, got %d", got)
	}
}

func TestUndoReset(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})

	if got := m.State().Draft; got != "Please confirm:\n5月 3日 (土曜日)" {
		t.Fatalf("expected undo to bring back the date line, got %q", got)
	}
}

func TestTypingBurstCoalescesIntoSingleUndoStep(t *testing.T) {
	m, _ := newTestModel(t)
	m.setFocus(focusDraft)

	press(m, keyRunes("a"))
	press(m, keyRunes("b"))

	if got := len(m.draftUndo); got != 1 {
		t.Fatalf("expected one undo snapshot for typing burst, got %d", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.State().Draft; got != "Please confirm:\n" {
		t.Fatalf("expected undo to remove burst edits, got %q", got)
	}
}

func TestTypingBurstSplitsAfterIdleWindow(t *testing.T) {
	now := testNow
	m, _ := newTestModel(t, WithClock(func() time.Time { return now }))
	m.setFocus(focusDraft)

	press(m, keyRunes("a"))
	now = now.Add(typingBurstIdleWindow + time.Millisecond)
	press(m, keyRunes("b"))

	if got := len(m.draftUndo); got != 2 {
		t.Fatalf("expected two undo snapshots after idle split, got %d", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.State().Draft; got != "Please confirm:\na" {
		t.Fatalf("expected undo to remove only the second burst, got %q", got)
	}
}

func TestNewMutationClearsRedo(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if len(m.draftRedo) != 1 {
		t.Fatalf("expected one redo entry, got %d", len(m.draftRedo))
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.draftRedo) != 0 {
		t.Fatalf("expected redo chain to be cleared, got %d", len(m.draftRedo))
	}
}

func TestUndoWithEmptyHistory(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if m.status != "Nothing to undo" {
		t.Fatalf("expected empty history status, got %q", m.status)
	}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if m.status != "Nothing to redo" {
		t.Fatalf("expected empty history status, got %q", m.status)
	}
}
