package app

import (
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/chousei/internal/composer"
)

func TestCurrentEditorCursorOffsetCountsRunesNotColumns(t *testing.T) {
	m, _ := newTestModel(t)
	text := "以下の日程\n5月 3日 (土曜日)"
	for _, offset := range []int{0, 3, 5, 6, 9, utf8.RuneCountInString(text)} {
		m.setEditorValueAndCursorOffset(text, offset)
		if got := m.currentEditorCursorOffset(); got != offset {
			t.Fatalf("expected offset %d, got %d", offset, got)
		}
	}
}

func TestEditorSurfaceSelection(t *testing.T) {
	m, _ := newTestModel(t)
	text := "Please confirm:\nabc"
	m.setEditorValueAndCursorOffset(text, 16)
	surface := m.surface()

	if !surface.Attached() {
		t.Fatal("expected laid-out editor to be attached")
	}
	if got := surface.Selection(); got != (composer.Selection{Start: 16, End: 16}) {
		t.Fatalf("expected collapsed selection at 16, got %+v", got)
	}

	surface.SetSelection(composer.Selection{Start: 16, End: 19})
	if got := surface.Selection(); got != (composer.Selection{Start: 16, End: 19}) {
		t.Fatalf("expected range 16-19, got %+v", got)
	}

	surface.SetSelection(composer.Selection{Start: 17, End: 17})
	if m.hasEditorSelectionAnchor() {
		t.Fatal("expected a collapsed selection to clear the anchor")
	}
	if got := m.currentEditorCursorOffset(); got != 17 {
		t.Fatalf("expected cursor 17, got %d", got)
	}
}

func TestEditorSurfaceFocus(t *testing.T) {
	m, _ := newTestModel(t)
	m.surface().Focus()
	if m.focus != focusDraft || !m.editor.Focused() {
		t.Fatalf("expected draft focus, got %v (editor focused %v)", m.focus, m.editor.Focused())
	}
}

func TestShiftArrowExtendsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m.setFocus(focusDraft)

	press(m, tea.KeyMsg{Type: tea.KeyShiftLeft})
	press(m, tea.KeyMsg{Type: tea.KeyShiftLeft})

	start, end, ok := m.editorSelectionRange()
	if !ok {
		t.Fatal("expected an active selection")
	}
	if end-start != 2 {
		t.Fatalf("expected 2 selected runes, got %d", end-start)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.hasEditorSelectionAnchor() {
		t.Fatal("expected esc to clear the selection")
	}
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusCalendar {
		t.Fatalf("expected second esc to leave the editor, got %v", m.focus)
	}
}

func TestSelectionAnchorToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m.setFocus(focusDraft)

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}, Alt: true})
	if !m.hasEditorSelectionAnchor() {
		t.Fatal("expected alt+s to set the anchor")
	}
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}, Alt: true})
	if m.hasEditorSelectionAnchor() {
		t.Fatal("expected alt+s to clear the anchor")
	}
	if got := m.State().Draft; got != "Please confirm:\n" {
		t.Fatalf("expected alt+s not to type, got %q", got)
	}
}

func TestSplitEditorLines(t *testing.T) {
	lines := splitEditorLines("a\n日本\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if string(lines[1]) != "日本" || len(lines[2]) != 0 {
		t.Fatalf("unexpected lines %q", lines)
	}
}
