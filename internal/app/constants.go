package app

import "time"

// Layout constants define the default dimensions and spacing for the UI
const (
	// CalendarPaneWidth is the width of the calendar pane including its
	// border. Seven day cells of three columns plus padding.
	CalendarPaneWidth = 27

	// TimePaneWidth is the width of the time list pane including its border.
	TimePaneWidth = 14

	// PreviewMinHeight is the smallest preview pane worth drawing. Below it
	// the draft editor takes the whole right column.
	PreviewMinHeight = 6

	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area. The app targets two rows on typical terminal widths.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3
)

// Input limits define maximum sizes for user input
const (
	// TimeInputCharLimit is the maximum number of characters accepted by the
	// manual time input.
	TimeInputCharLimit = 8
)

// Time list defaults.
const (
	// DefaultTimeCursorHour is where the time list cursor starts.
	DefaultTimeCursorHour = 9
)

// Notification timing.
const (
	// ToastDuration is how long an export outcome stays in the footer.
	ToastDuration = 3 * time.Second
)
