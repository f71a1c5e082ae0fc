package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/chousei/internal/composer"
)

// handleKey routes a key press to the manual time input, the draft editor,
// or the action table, in that order.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.enteringTime {
		return m.handleManualTimeKey(msg)
	}
	if m.showHelp {
		switch m.actionForKey(msg.String()) {
		case actionHelp:
			return m.toggleHelp()
		case actionQuit:
			return m, tea.Quit
		}
		if msg.String() == "esc" {
			return m.toggleHelp()
		}
		return m, nil
	}
	if m.focus == focusDraft {
		return m.handleDraftKey(msg)
	}
	if m.shouldIgnoreInput(msg) {
		return m, nil
	}
	return m.handleAction(m.actionForKey(msg.String()))
}

// handleDraftKey routes keys while the editor has focus. Plain typing always
// reaches the editor; only draftActions are intercepted.
func (m *Model) handleDraftKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.shouldIgnoreInput(msg) {
		return m, nil
	}
	if msg.Type != tea.KeyRunes || msg.Alt {
		if action := m.actionForKey(msg.String()); draftActions[action] {
			return m.handleAction(action)
		}
	}
	if msg.String() == "esc" {
		if m.hasEditorSelectionAnchor() {
			m.clearEditorSelection()
			m.status = "Selection cleared"
			return m, nil
		}
		m.setFocus(focusCalendar)
		return m, nil
	}
	if m.handleEditorShiftSelectionMove(msg) {
		return m, nil
	}

	before := m.captureDraftSnapshot()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if value := m.editor.Value(); value != m.state.Draft {
		m.state = m.state.SetRaw(value)
		m.recordTypingMutation(before, m.captureDraftSnapshot(), m.now())
		m.refreshPreview()
	}
	return m, cmd
}

// handleAction runs a bound action against the focused pane.
func (m *Model) handleAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case actionQuit:
		return m, tea.Quit
	case actionHelp:
		return m.toggleHelp()
	case actionFocusNext:
		m.setFocus((m.focus + 1) % paneCount)
		return m, nil
	case actionFocusPrev:
		m.setFocus((m.focus + paneCount - 1) % paneCount)
		return m, nil
	case actionReset:
		m.resetDraft()
		return m, nil
	case actionUndo:
		m.undoDraftChange()
		return m, nil
	case actionRedo:
		m.redoDraftChange()
		return m, nil
	case actionSelectAnchor:
		if m.focus == focusDraft {
			m.toggleEditorSelectionAnchor()
		}
		return m, nil
	case actionCopyPlain:
		return m, m.copyDraft(composer.FlavorPlain)
	case actionCopySlack:
		return m, m.copyDraft(composer.FlavorSlack)
	case actionTimeManual:
		return m, m.startManualTime()
	}

	switch m.focus {
	case focusCalendar:
		return m.handleCalendarAction(action)
	case focusTimes:
		return m.handleTimesAction(action)
	}
	return m, nil
}

func (m *Model) handleCalendarAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case actionCursorLeft:
		m.moveCalendarDays(-1)
	case actionCursorRight:
		m.moveCalendarDays(1)
	case actionCursorUp:
		m.moveCalendarDays(-7)
	case actionCursorDown:
		m.moveCalendarDays(7)
	case actionPagePrev:
		m.moveCalendarMonths(-1)
	case actionPageNext:
		m.moveCalendarMonths(1)
	case actionCursorHome:
		m.today = m.now()
		m.calendarCursor = m.today
	case actionSelect:
		m.selectCalendarDate()
	}
	return m, nil
}

func (m *Model) handleTimesAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case actionCursorUp:
		m.moveTimeCursor(-1)
	case actionCursorDown:
		m.moveTimeCursor(1)
	case actionPagePrev:
		m.moveTimeCursor(-m.slotsPerHour())
	case actionPageNext:
		m.moveTimeCursor(m.slotsPerHour())
	case actionCursorHome:
		m.timeCursor = defaultTimeCursor(m.timeSlots)
	case actionSelect:
		return m, m.selectListedTime()
	}
	return m, nil
}

// setFocus moves keyboard focus to pane, focusing or blurring the editor.
func (m *Model) setFocus(pane focusPane) {
	m.focus = pane
	if pane == focusDraft {
		m.editor.Focus()
		return
	}
	m.editor.Blur()
}

// resetDraft restores the draft to the preamble and forgets every slot.
func (m *Model) resetDraft() {
	before := m.captureDraftSnapshot()
	m.state = m.state.Reset()
	m.syncEditorFromState()
	m.recordDiscreteMutation(before, m.captureDraftSnapshot())
	m.status = "Reset"
}

// toggleHelp shows or hides the help screen.
func (m *Model) toggleHelp() (tea.Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	if m.showHelp {
		m.status = ""
	}
	return m, nil
}
