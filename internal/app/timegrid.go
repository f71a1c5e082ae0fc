package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/chousei/internal/composer"
)

// buildTimeSlots lists every time of day at intervalMinutes spacing, starting
// at 00:00. The date part is irrelevant; only the clock is ever formatted.
func buildTimeSlots(intervalMinutes int) []time.Time {
	if intervalMinutes <= 0 {
		intervalMinutes = 15
	}
	slots := make([]time.Time, 0, 24*60/intervalMinutes)
	for minutes := 0; minutes < 24*60; minutes += intervalMinutes {
		slots = append(slots, time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.Local))
	}
	return slots
}

// defaultTimeCursor returns the index of the first slot at or after
// DefaultTimeCursorHour.
func defaultTimeCursor(slots []time.Time) int {
	for i, slot := range slots {
		if slot.Hour() >= DefaultTimeCursorHour {
			return i
		}
	}
	return 0
}

// slotsPerHour is how many list entries one page move skips.
func (m *Model) slotsPerHour() int {
	if len(m.timeSlots) < 2 {
		return 1
	}
	step := int(m.timeSlots[1].Sub(m.timeSlots[0]) / time.Minute)
	if step <= 0 {
		return 1
	}
	return max(1, 60/step)
}

func (m *Model) moveTimeCursor(delta int) {
	if len(m.timeSlots) == 0 {
		return
	}
	m.timeCursor = clamp(m.timeCursor+delta, 0, len(m.timeSlots)-1)
}

// adjustTimeOffset keeps the cursor inside a window of height rows.
func (m *Model) adjustTimeOffset(height int) {
	if height <= 0 {
		return
	}
	if m.timeCursor < m.timeOffset {
		m.timeOffset = m.timeCursor
	}
	if m.timeCursor >= m.timeOffset+height {
		m.timeOffset = m.timeCursor - height + 1
	}
	m.timeOffset = clamp(m.timeOffset, 0, max(0, len(m.timeSlots)-height))
}

// selectListedTime applies the time under the list cursor.
func (m *Model) selectListedTime() tea.Cmd {
	if len(m.timeSlots) == 0 {
		return nil
	}
	clock := m.timeSlots[m.timeCursor]
	return m.applyTimeSelection(&clock)
}

// applyTimeSelection is the time picker callback. The draft is updated now;
// the cursor lands after the inserted fragment once the editor has been
// refreshed, via the returned command. A nil time is a no-op.
func (m *Model) applyTimeSelection(clock *time.Time) tea.Cmd {
	before := m.captureDraftSnapshot()
	next, pending, err := m.state.SelectTime(clock, m.surface())
	if err != nil {
		appLog.Debug("time selection ignored", "error", err)
		return nil
	}
	m.state = next
	m.showDraftKeepingCursor(before.cursorOffset)
	m.recordDiscreteMutation(before, m.captureDraftSnapshot())

	kind := "start"
	if m.state.SlotCount()%2 == 0 {
		kind = "end"
	}
	m.status = fmt.Sprintf("Time %s: %s", kind, composer.FormatClock(*clock))
	if !pending.Valid {
		return nil
	}
	return deferCursorUpdate(pending)
}

// showDraftKeepingCursor refreshes the editor with the session draft without
// moving the cursor to the inserted text yet.
func (m *Model) showDraftKeepingCursor(cursorOffset int) {
	m.setEditorValueAndCursorOffset(m.state.Draft, cursorOffset)
	m.clearEditorSelection()
	m.refreshPreview()
}

// startManualTime opens the manual time input.
func (m *Model) startManualTime() tea.Cmd {
	m.enteringTime = true
	m.timeInput.SetValue("")
	m.status = "Enter a time (HH:MM)"
	return m.timeInput.Focus()
}

// handleManualTimeKey routes keys while the manual time input is open.
func (m *Model) handleManualTimeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.shouldIgnoreInput(msg) {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.closeManualTime()
		m.status = "Time entry cancelled"
		return m, nil
	case "enter":
		input := m.timeInput.Value()
		m.closeManualTime()
		var clock *time.Time
		if parsed, err := composer.ParseClock(input); err == nil {
			clock = &parsed
		} else {
			appLog.Debug("manual time rejected", "input", input, "error", err)
			m.status = fmt.Sprintf("Invalid time %q", strings.TrimSpace(input))
		}
		return m, m.applyTimeSelection(clock)
	}
	var cmd tea.Cmd
	m.timeInput, cmd = m.timeInput.Update(msg)
	return m, cmd
}

func (m *Model) closeManualTime() {
	m.enteringTime = false
	m.timeInput.Blur()
}

// renderTimes draws the time list and, when open, the manual input.
func (m *Model) renderTimes(width, height int) string {
	innerWidth := max(0, width-paneStyle.GetHorizontalFrameSize())
	innerHeight := max(0, height-paneStyle.GetVerticalFrameSize())

	lines := []string{titleStyle.Render("時間")}
	if m.enteringTime {
		lines = append(lines, m.timeInput.View())
	}
	listHeight := max(0, innerHeight-len(lines))
	m.adjustTimeOffset(listHeight)

	end := min(len(m.timeSlots), m.timeOffset+listHeight)
	for i := m.timeOffset; i < end; i++ {
		line := " " + composer.FormatClock(m.timeSlots[i])
		if i == m.timeCursor {
			if m.focus == focusTimes {
				line = selectedStyle.Width(innerWidth).Render(truncate(line, innerWidth))
			} else {
				line = mutedStyle.Render(">" + line[1:])
			}
		}
		lines = append(lines, line)
	}

	pane := paneStyle
	if m.focus == focusTimes {
		pane = focusedPane
	}
	content := padBlock(strings.Join(lines, "\n"), innerWidth, innerHeight)
	return pane.Width(width - pane.GetHorizontalBorderSize()).Height(height - pane.GetVerticalBorderSize()).Render(content)
}
