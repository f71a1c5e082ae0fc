package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/chousei/internal/clipboard"
	"github.com/treykane/chousei/internal/composer"
)

// cursorUpdateMsg carries the second phase of a draft insertion. It is
// delivered after the editor has been redrawn with the new draft.
type cursorUpdateMsg struct {
	pending composer.PendingCursorUpdate
}

// exportResultMsg is the outcome of an asynchronous clipboard write.
type exportResultMsg struct {
	flavor composer.Flavor
	result clipboard.Result
}

// toastExpiredMsg clears the toast identified by seq if it is still shown.
type toastExpiredMsg struct {
	seq int
}

// deferCursorUpdate schedules pending for the next update cycle.
func deferCursorUpdate(pending composer.PendingCursorUpdate) tea.Cmd {
	return func() tea.Msg {
		return cursorUpdateMsg{pending: pending}
	}
}

// waitForExport blocks on results and converts the outcome into a message.
func waitForExport(results <-chan clipboard.Result, flavor composer.Flavor) tea.Cmd {
	return func() tea.Msg {
		return exportResultMsg{flavor: flavor, result: <-results}
	}
}

// handleSpinnerTick updates the spinner animation state.
func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleWindowResize updates layout dimensions after terminal resize. The
// first resize is also when the draft editor becomes a usable surface.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.applyLayout(m.calculateLayout())
	m.editorAttached = true
	m.refreshPreview()
	return m, nil
}

// handleCursorUpdate applies a deferred cursor move. When several insertions
// happen before their updates arrive, each update uses the offset computed at
// its own insertion.
func (m *Model) handleCursorUpdate(msg cursorUpdateMsg) (tea.Model, tea.Cmd) {
	if !msg.pending.Apply(m.surface()) {
		appLog.Debug("cursor update skipped", "cursor", msg.pending.Cursor)
	}
	return m, nil
}

// handleExportResult shows the outcome of an asynchronous export.
func (m *Model) handleExportResult(msg exportResultMsg) (tea.Model, tea.Cmd) {
	m.exportsInFlight = max(0, m.exportsInFlight-1)
	return m, m.showExportResult(msg.flavor, msg.result)
}

// handleToastExpired hides the toast once its time is up.
func (m *Model) handleToastExpired(msg toastExpiredMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.toastSeq {
		return m, nil
	}
	m.toast = ""
	m.toastSeverity = ""
	m.toastUntil = time.Time{}
	return m, nil
}

// setToast shows message in the footer until ToastDuration elapses.
func (m *Model) setToast(message string, severity clipboard.Severity) tea.Cmd {
	m.toastSeq++
	m.toast = message
	m.toastSeverity = severity
	m.toastUntil = m.now().Add(ToastDuration)
	seq := m.toastSeq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// activeToast returns the toast still within its display window.
func (m *Model) activeToast() (string, clipboard.Severity, bool) {
	if m.toast == "" || m.now().After(m.toastUntil) {
		return "", "", false
	}
	return m.toast, m.toastSeverity, true
}
