package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View draws the full UI: calendar, time list, editor over preview, footer.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	layout := m.calculateLayout()
	var row string
	if m.showHelp {
		row = m.renderHelp(m.width, layout.ContentHeight)
	} else {
		left := lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderCalendar(layout.CalendarWidth, layout.ContentHeight),
			m.renderTimes(layout.TimesWidth, layout.ContentHeight),
		)
		right := m.renderEditor(layout.RightWidth, layout.EditorHeight)
		if layout.PreviewHeight > 0 {
			right = lipgloss.JoinVertical(lipgloss.Left, right, m.renderPreview(layout.RightWidth, layout.PreviewHeight))
		}
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}
	// Clamp the pane row so the footer rows are always reserved.
	row = padBlock(row, m.width, layout.ContentHeight)

	footerRows := m.footerHeightForWidth(m.width)
	view := row + "\n" + m.renderStatus(m.width, footerRows)
	return padBlock(view, m.width, m.height)
}

// renderEditor draws the draft editor with a header showing the slot count.
func (m *Model) renderEditor(width, height int) string {
	pane := paneStyle
	if m.focus == focusDraft {
		pane = editPane
	}
	innerWidth := max(0, width-pane.GetHorizontalFrameSize())
	innerHeight := max(0, height-pane.GetVerticalFrameSize())

	header := titleStyle.Render("メッセージ")
	if count := m.state.SlotCount(); count > 0 {
		header += mutedStyle.Render(fmt.Sprintf("  %d slots", count))
	}
	if m.hasEditorSelectionAnchor() {
		header += mutedStyle.Render("  [select]")
	}
	content := truncate(header, innerWidth) + "\n" + m.editor.View()
	content = padBlock(content, innerWidth, innerHeight)
	return pane.Width(width - pane.GetHorizontalBorderSize()).Height(height - pane.GetVerticalBorderSize()).Render(content)
}

// renderPreview draws the Slack-flavored export as it will be pasted.
func (m *Model) renderPreview(width, height int) string {
	innerWidth := max(0, width-paneStyle.GetHorizontalFrameSize())
	innerHeight := max(0, height-paneStyle.GetVerticalFrameSize())

	header := titleStyle.Render("Slack preview")
	platform := m.probe.Capability().Platform()
	header += mutedStyle.Render("  " + platform.String())

	body := m.preview.View()
	if m.exportsInFlight > 0 {
		body = m.spinner.View() + " Copying...\n" + body
	}
	content := padBlock(truncate(header, innerWidth)+"\n"+body, innerWidth, innerHeight)
	return paneStyle.Width(width - paneStyle.GetHorizontalBorderSize()).Height(height - paneStyle.GetVerticalBorderSize()).Render(content)
}

func (m *Model) renderHelp(width, height int) string {
	key := func(action, fallback string) string {
		return m.allActionKeys(action, fallback)
	}
	rows := [][2]string{
		{"Global", ""},
		{key(actionFocusNext, "Tab") + " / " + key(actionFocusPrev, "Shift+Tab"), "Switch pane"},
		{key(actionCopyPlain, "Ctrl+O"), "Copy message"},
		{key(actionCopySlack, "Ctrl+S"), "Copy for Slack (with stamps)"},
		{key(actionReset, "Ctrl+R"), "Reset to the preamble"},
		{key(actionUndo, "Ctrl+Z") + " / " + key(actionRedo, "Ctrl+Y"), "Undo / redo"},
		{key(actionHelp, "?"), "Toggle help"},
		{key(actionQuit, "q"), "Quit"},
		{"", ""},
		{"Calendar", ""},
		{key(actionCursorLeft, "←") + " / " + key(actionCursorRight, "→"), "Previous / next day"},
		{key(actionCursorUp, "↑") + " / " + key(actionCursorDown, "↓"), "Previous / next week"},
		{key(actionPagePrev, "PgUp") + " / " + key(actionPageNext, "PgDn"), "Previous / next month"},
		{key(actionCursorHome, "Home"), "Today"},
		{key(actionSelect, "Enter"), "Insert date line"},
		{"", ""},
		{"Times", ""},
		{key(actionCursorUp, "↑") + " / " + key(actionCursorDown, "↓"), "Move"},
		{key(actionPagePrev, "PgUp") + " / " + key(actionPageNext, "PgDn"), "Move one hour"},
		{key(actionSelect, "Enter"), "Insert start or end time"},
		{key(actionTimeManual, "T"), "Type a time"},
		{"", ""},
		{"Message", ""},
		{"Shift+Arrows", "Extend selection"},
		{key(actionSelectAnchor, "Alt+S"), "Set/clear selection anchor"},
		{"Esc", "Clear selection, leave editor"},
	}

	lines := []string{titleStyle.Render("Keyboard Shortcuts"), ""}
	for _, row := range rows {
		switch {
		case row[0] == "" && row[1] == "":
			lines = append(lines, "")
		case row[1] == "":
			lines = append(lines, row[0])
		default:
			lines = append(lines, fmt.Sprintf("  %-24s %s", row[0], row[1]))
		}
	}
	lines = append(lines, "", "Press "+m.primaryActionKey(actionHelp, "?")+" to return.")

	visible := min(height, len(lines))
	out := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		out = append(out, truncate(lines[i], width))
	}
	return strings.Join(out, "\n")
}
