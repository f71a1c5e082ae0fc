package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/chousei/internal/clipboard"
)

var (
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedPane   = paneStyle.BorderForeground(lipgloss.Color("62"))
	editPane      = paneStyle.BorderForeground(lipgloss.Color("204"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	todayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	sundayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	saturdayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	weekdayPlain  = lipgloss.NewStyle()

	toastSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// weekdayStyle colors Sundays red and Saturdays blue, like a paper calendar.
func weekdayStyle(day time.Weekday) lipgloss.Style {
	switch day {
	case time.Sunday:
		return sundayStyle
	case time.Saturday:
		return saturdayStyle
	default:
		return weekdayPlain
	}
}

func toastStyle(severity clipboard.Severity) lipgloss.Style {
	if severity == clipboard.SeverityError {
		return toastErrorStyle
	}
	return toastSuccessStyle
}

func applyEditorTheme(editor *textarea.Model) {
	focused, blurred := textarea.DefaultStyles()

	base := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cursorLine := lipgloss.NewStyle().Background(lipgloss.Color("53")).Foreground(lipgloss.Color("252"))
	lineNumber := lipgloss.NewStyle().Foreground(lipgloss.Color("218"))
	prompt := lipgloss.NewStyle().Foreground(lipgloss.Color("204"))

	focused.Base = base
	focused.Text = base
	focused.CursorLine = cursorLine
	focused.CursorLineNumber = lineNumber.Bold(true)
	focused.LineNumber = lineNumber
	focused.Prompt = prompt
	focused.Placeholder = mutedStyle

	blurred.Base = base
	blurred.Text = mutedStyle
	blurred.CursorLine = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	blurred.CursorLineNumber = lineNumber
	blurred.LineNumber = lineNumber
	blurred.Prompt = prompt
	blurred.Placeholder = mutedStyle

	editor.FocusedStyle = focused
	editor.BlurredStyle = blurred
	editor.Prompt = "│ "
	editor.EndOfBufferCharacter = ' '
	editor.ShowLineNumbers = false
}
