package app

import (
	"fmt"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/chousei/internal/composer"
)

// noEditorSelectionAnchor is the sentinel value for editorSelectionAnchor,
// indicating that no selection anchor is currently set.
const noEditorSelectionAnchor = -1

// editorSurface exposes the draft textarea to the composer as an editing
// surface. It holds a reference to the model, never a copy, so the composer
// always sees the live cursor.
type editorSurface struct {
	m *Model
}

var _ composer.EditingSurface = editorSurface{}

// surface returns the draft editor as a composer.EditingSurface.
func (m *Model) surface() editorSurface {
	return editorSurface{m: m}
}

// Attached reports whether the editor has been laid out.
func (s editorSurface) Attached() bool {
	return s.m.editorAttached
}

// Selection returns the anchored range, or a collapsed range at the cursor
// when no anchor is set.
func (s editorSurface) Selection() composer.Selection {
	if start, end, ok := s.m.editorSelectionRange(); ok {
		return composer.Selection{Start: start, End: end}
	}
	cursor := s.m.currentEditorCursorOffset()
	return composer.Selection{Start: cursor, End: cursor}
}

// SetSelection moves the cursor to sel.End. A non-empty range leaves the
// anchor at sel.Start.
func (s editorSurface) SetSelection(sel composer.Selection) {
	s.m.setEditorValueAndCursorOffset(s.m.editor.Value(), sel.End)
	if sel.Start == sel.End {
		s.m.clearEditorSelection()
		return
	}
	s.m.editorSelectionAnchor = sel.Start
	s.m.editorSelectionActive = true
}

// Focus moves keyboard focus to the draft editor.
func (s editorSurface) Focus() {
	s.m.setFocus(focusDraft)
}

// clearEditorSelection resets the editor selection state entirely.
func (m *Model) clearEditorSelection() {
	m.editorSelectionAnchor = noEditorSelectionAnchor
	m.editorSelectionActive = false
}

func (m *Model) hasEditorSelectionAnchor() bool {
	return m.editorSelectionActive
}

// currentEditorCursorOffset converts the editor's (row, column) cursor into a
// rune offset from the start of the text, clamped to the text length.
//
// LineInfo().CharOffset is a display width within the soft-wrapped row, which
// is wrong for double-width runes; StartColumn+ColumnOffset is the rune column
// in the logical line.
func (m *Model) currentEditorCursorOffset() int {
	value := m.editor.Value()
	lines := splitEditorLines(value)
	row := clamp(m.editor.Line(), 0, max(0, len(lines)-1))
	info := m.editor.LineInfo()
	col := clamp(info.StartColumn+info.ColumnOffset, 0, len(lines[row]))

	offset := 0
	for i := 0; i < row; i++ {
		offset += len(lines[i]) + 1
	}
	return clamp(offset+col, 0, utf8.RuneCountInString(value))
}

// editorSelectionRange returns the normalized [start, end) rune range between
// the anchor and the cursor. ok is false with no anchor or an empty range.
func (m *Model) editorSelectionRange() (start, end int, ok bool) {
	if !m.hasEditorSelectionAnchor() {
		return 0, 0, false
	}
	start = m.editorSelectionAnchor
	end = m.currentEditorCursorOffset()
	if start > end {
		start, end = end, start
	}
	if start == end {
		return 0, 0, false
	}
	return start, end, true
}

// toggleEditorSelectionAnchor drops an anchor at the cursor or clears the
// current one. A time picked while a range is selected replaces that range.
func (m *Model) toggleEditorSelectionAnchor() {
	if m.hasEditorSelectionAnchor() {
		m.clearEditorSelection()
		m.status = "Selection cleared"
		return
	}
	m.editorSelectionAnchor = m.currentEditorCursorOffset()
	m.editorSelectionActive = true
	m.updateEditorSelectionStatus()
}

// handleEditorShiftSelectionMove extends the selection on Shift+Arrow and
// Shift+Home/End. It reports whether the key was consumed.
func (m *Model) handleEditorShiftSelectionMove(keyMsg tea.KeyMsg) bool {
	msg, ok := selectionMovementKeyMsg(keyMsg)
	if !ok {
		return false
	}
	if !m.hasEditorSelectionAnchor() {
		m.editorSelectionAnchor = m.currentEditorCursorOffset()
		m.editorSelectionActive = true
	}
	m.editor, _ = m.editor.Update(msg)
	m.updateEditorSelectionStatus()
	return true
}

// selectionMovementKeyMsg maps a shifted movement key to its plain form.
func selectionMovementKeyMsg(keyMsg tea.KeyMsg) (tea.KeyMsg, bool) {
	switch keyMsg.Type {
	case tea.KeyShiftLeft:
		return tea.KeyMsg{Type: tea.KeyLeft}, true
	case tea.KeyShiftRight:
		return tea.KeyMsg{Type: tea.KeyRight}, true
	case tea.KeyShiftUp:
		return tea.KeyMsg{Type: tea.KeyUp}, true
	case tea.KeyShiftDown:
		return tea.KeyMsg{Type: tea.KeyDown}, true
	case tea.KeyShiftHome:
		return tea.KeyMsg{Type: tea.KeyHome}, true
	case tea.KeyShiftEnd:
		return tea.KeyMsg{Type: tea.KeyEnd}, true
	default:
		return tea.KeyMsg{}, false
	}
}

func (m *Model) updateEditorSelectionStatus() {
	if start, end, ok := m.editorSelectionRange(); ok {
		m.status = fmt.Sprintf("Selected %d chars (%s to clear)", end-start, m.primaryActionKey(actionSelectAnchor, "Alt+S"))
		return
	}
	if m.hasEditorSelectionAnchor() {
		m.status = "Selection anchor set"
	}
}

// splitEditorLines splits value into logical lines of runes, keeping a
// trailing empty line after a final newline.
func splitEditorLines(value string) [][]rune {
	lines := make([][]rune, 1)
	for _, r := range value {
		if r == '\n' {
			lines = append(lines, nil)
			continue
		}
		last := len(lines) - 1
		lines[last] = append(lines[last], r)
	}
	return lines
}

// setEditorValueAndCursorOffset replaces the editor content and puts the
// cursor at cursorOffset runes from the start.
//
// The textarea has no "set cursor offset" API: SetValue leaves the cursor at
// the end, so the cursor is walked back with left-arrow events. The editor
// must be focused for those events to register; the previous focus state is
// restored afterwards.
func (m *Model) setEditorValueAndCursorOffset(value string, cursorOffset int) {
	total := utf8.RuneCountInString(value)
	cursorOffset = clamp(cursorOffset, 0, total)

	focused := m.editor.Focused()
	m.editor.SetValue(value)
	m.editor.Focus()
	for i := 0; i < total-cursorOffset; i++ {
		m.editor, _ = m.editor.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
	if !focused && m.focus != focusDraft {
		m.editor.Blur()
	}
}

// syncEditorFromState shows the session draft in the editor with the cursor
// at the end. Any selection is dropped.
func (m *Model) syncEditorFromState() {
	m.setEditorValueAndCursorOffset(m.state.Draft, utf8.RuneCountInString(m.state.Draft))
	m.clearEditorSelection()
	m.refreshPreview()
}
