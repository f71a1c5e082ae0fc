package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/treykane/chousei/internal/composer"
)

// calendarCellWidth is the display width of one day cell. Weekday headers
// are double-width glyphs, so day numbers are padded to match.
const calendarCellWidth = 2

// moveCalendarDays moves the calendar cursor by days.
func (m *Model) moveCalendarDays(days int) {
	m.calendarCursor = m.calendarCursor.AddDate(0, 0, days)
}

// moveCalendarMonths moves the calendar cursor by whole months, keeping the
// day of month where possible. Jan 31 plus one month is Feb 28 (or 29), not
// early March.
func (m *Model) moveCalendarMonths(months int) {
	m.calendarCursor = addMonthsClamped(m.calendarCursor, months)
}

func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, months, 0)
	day := min(t.Day(), daysIn(target.Year(), target.Month(), t.Location()))
	return target.AddDate(0, 0, day-1)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// selectCalendarDate applies the date under the calendar cursor to the draft.
func (m *Model) selectCalendarDate() {
	date := m.calendarCursor
	m.applyDateSelection(&date)
}

// applyDateSelection is the calendar picker callback. A nil date is the
// picker reporting that nothing was chosen.
func (m *Model) applyDateSelection(date *time.Time) {
	before := m.captureDraftSnapshot()
	next, err := m.state.SelectDate(date)
	if err != nil {
		appLog.Debug("date selection ignored", "error", err)
		return
	}
	m.state = next
	m.syncEditorFromState()
	m.recordDiscreteMutation(before, m.captureDraftSnapshot())
	m.status = "Date: " + composer.FormatDate(*date)
}

// calendarWeeks returns the month containing the calendar cursor as rows of
// seven days starting on Sunday. Days outside the month are zero.
func (m *Model) calendarWeeks() [][7]int {
	cursor := m.calendarCursor
	first := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, cursor.Location())
	total := daysIn(cursor.Year(), cursor.Month(), cursor.Location())

	var weeks [][7]int
	var week [7]int
	column := int(first.Weekday())
	for day := 1; day <= total; day++ {
		week[column] = day
		column++
		if column == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			column = 0
		}
	}
	if column > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// renderCalendar draws the month grid. The cursor day is reversed when the
// pane is focused and underlined otherwise; today is bold.
func (m *Model) renderCalendar(width, height int) string {
	innerWidth := max(0, width-paneStyle.GetHorizontalFrameSize())
	innerHeight := max(0, height-paneStyle.GetVerticalFrameSize())

	lines := []string{titleStyle.Render(composer.FormatMonth(m.calendarCursor))}

	header := make([]string, 0, 7)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		header = append(header, weekdayStyle(weekday).Render(composer.ShortWeekday(weekday)))
	}
	lines = append(lines, strings.Join(header, " "))

	cursor := m.calendarCursor
	for _, week := range m.calendarWeeks() {
		cells := make([]string, 0, 7)
		for column, day := range week {
			if day == 0 {
				cells = append(cells, strings.Repeat(" ", calendarCellWidth))
				continue
			}
			cell := runewidth.FillLeft(strconv.Itoa(day), calendarCellWidth)
			date := time.Date(cursor.Year(), cursor.Month(), day, 0, 0, 0, 0, cursor.Location())
			style := weekdayStyle(time.Weekday(column))
			if composer.SameDay(date, m.today) {
				style = style.Inherit(todayStyle)
			}
			if day == cursor.Day() {
				if m.focus == focusCalendar {
					style = style.Inherit(selectedStyle)
				} else {
					style = style.Underline(true)
				}
			}
			cells = append(cells, style.Render(cell))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	lines = append(lines, "", mutedStyle.Render(composer.FormatDate(cursor)))

	pane := paneStyle
	if m.focus == focusCalendar {
		pane = focusedPane
	}
	content := padBlock(strings.Join(lines, "\n"), innerWidth, innerHeight)
	return pane.Width(width - pane.GetHorizontalBorderSize()).Height(height - pane.GetVerticalBorderSize()).Render(content)
}
