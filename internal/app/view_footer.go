package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) renderStatus(width, rows int) string {
	statusRows, _ := m.buildStatusRows(width, rows)
	for len(statusRows) < rows {
		statusRows = append(statusRows, "")
	}

	rendered := make([]string, 0, len(statusRows))
	for _, line := range statusRows {
		line = " " + truncate(line, max(0, width-1))
		rendered = append(rendered, statusStyle.Width(width).Render(line))
	}

	// The toast replaces the last footer row so it is never pushed off
	// screen by help segments.
	if message, severity, ok := m.activeToast(); ok && len(rendered) > 0 {
		toast := " " + truncate(message, max(0, width-1))
		rendered[len(rendered)-1] = toastStyle(severity).Width(width).Render(toast)
	}
	return strings.Join(rendered, "\n")
}

// buildStatusRows packs the help, context and status segments into at most
// rowLimit rows of width. fit is false when something had to be cut.
func (m *Model) buildStatusRows(width, rowLimit int) ([]string, bool) {
	if width <= 0 || rowLimit <= 0 {
		return nil, true
	}

	help := m.statusHelpSegments()
	context := m.statusContextSegments()
	status := strings.TrimSpace(m.status)

	segments := make([]string, 0, len(help)+len(context)+2)
	if len(help) > 0 {
		segments = append(segments, "Keys: "+help[0])
		segments = append(segments, help[1:]...)
	}
	if len(context) > 0 {
		segments = append(segments, "Context: "+context[0])
		segments = append(segments, context[1:]...)
	}
	if status != "" {
		segments = append(segments, "Status: "+status)
	}

	rows := make([]string, 1, rowLimit)
	rowIndex := 0
	fit := true
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segment := seg
		if lipgloss.Width(segment) > width {
			segment = truncateWithEllipsis(segment, width)
		}

		candidate := segment
		if rows[rowIndex] != "" {
			candidate = rows[rowIndex] + " | " + segment
		}
		if lipgloss.Width(candidate) <= width {
			rows[rowIndex] = candidate
			continue
		}
		if rowIndex+1 < rowLimit {
			rowIndex++
			rows = append(rows, segment)
			continue
		}

		fit = false
		rows[rowIndex] = truncateWithEllipsis(candidate, width)
		break
	}
	return rows, fit
}

func (m *Model) statusHelpSegments() []string {
	if m.enteringTime {
		return []string{"Enter insert time", "Esc cancel"}
	}
	if m.showHelp {
		return []string{m.primaryActionKey(actionHelp, "?") + " close help"}
	}

	help := []string{m.primaryActionKey(actionFocusNext, "Tab") + " pane"}
	switch m.focus {
	case focusCalendar:
		help = append(help,
			"←/→ day",
			"↑/↓ week",
			m.primaryActionKey(actionPagePrev, "PgUp")+"/"+m.primaryActionKey(actionPageNext, "PgDn")+" month",
			m.primaryActionKey(actionSelect, "Enter")+" date",
		)
	case focusTimes:
		help = append(help,
			"↑/↓ move",
			m.primaryActionKey(actionSelect, "Enter")+" time",
			m.primaryActionKey(actionTimeManual, "T")+" type time",
		)
	case focusDraft:
		help = append(help,
			"Shift+Arrows select",
			m.primaryActionKey(actionUndo, "Ctrl+Z")+" undo",
			m.primaryActionKey(actionRedo, "Ctrl+Y")+" redo",
		)
	}
	help = append(help,
		m.primaryActionKey(actionCopyPlain, "Ctrl+O")+" copy",
		m.primaryActionKey(actionCopySlack, "Ctrl+S")+" slack",
		m.primaryActionKey(actionReset, "Ctrl+R")+" reset",
	)
	if m.focus != focusDraft {
		help = append(help, m.primaryActionKey(actionHelp, "?")+" help", m.primaryActionKey(actionQuit, "q")+" quit")
	}
	return help
}

func (m *Model) statusContextSegments() []string {
	parts := []string{fmt.Sprintf("%d slots", m.state.SlotCount())}
	if m.exportsInFlight > 0 {
		parts = append(parts, m.spinner.View()+" copying")
	}
	return parts
}
