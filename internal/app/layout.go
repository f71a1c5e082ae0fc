// layout.go centralizes all terminal layout calculations.
//
// The screen is three columns above an adaptive footer: the calendar and the
// time list at fixed widths on the left, and a right column holding the draft
// editor over the Slack preview. When the terminal is too short for both, the
// preview is dropped and the editor takes the whole column.
//
// All dimensions are gathered into a single LayoutDimensions value so they
// can be computed once per resize and reused by View and applyLayout.
package app

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	CalendarWidth int // width of the calendar pane including border
	TimesWidth    int // width of the time pane including border
	RightWidth    int // width of the editor/preview column
	ContentHeight int // terminal height minus footer
	EditorHeight  int // outer height of the editor pane
	PreviewHeight int // outer height of the preview pane, 0 when hidden
	EditorWidth   int // usable editor width inside its pane
	EditorRows    int // usable editor rows inside its pane (after header)
	PreviewWidth  int // usable preview width inside its pane
	PreviewRows   int // usable preview rows inside its pane (after header)
}

// calculateLayout computes all UI dimensions based on terminal size.
func (m *Model) calculateLayout() LayoutDimensions {
	calendarWidth := min(CalendarPaneWidth, m.width)
	timesWidth := min(TimePaneWidth, max(0, m.width-calendarWidth))
	rightWidth := max(0, m.width-calendarWidth-timesWidth)
	contentHeight := max(0, m.height-m.footerHeightForWidth(m.width))

	editorHeight := contentHeight
	previewHeight := 0
	if contentHeight/2 >= PreviewMinHeight {
		previewHeight = contentHeight / 2
		editorHeight = contentHeight - previewHeight
	}

	return LayoutDimensions{
		CalendarWidth: calendarWidth,
		TimesWidth:    timesWidth,
		RightWidth:    rightWidth,
		ContentHeight: contentHeight,
		EditorHeight:  editorHeight,
		PreviewHeight: previewHeight,
		EditorWidth:   max(0, rightWidth-editPane.GetHorizontalFrameSize()),
		EditorRows:    max(0, editorHeight-editPane.GetVerticalFrameSize()-1),
		PreviewWidth:  max(0, rightWidth-paneStyle.GetHorizontalFrameSize()),
		PreviewRows:   max(0, previewHeight-paneStyle.GetVerticalFrameSize()-1),
	}
}

// footerHeightForWidth returns how many rows should be reserved for the footer.
// It prefers FooterMinRows and expands to FooterMaxRows when the footer
// segments cannot fit without dropping content.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// applyLayout resizes the editor and preview widgets to the layout.
func (m *Model) applyLayout(layout LayoutDimensions) {
	m.editor.SetWidth(layout.EditorWidth)
	m.editor.SetHeight(max(1, layout.EditorRows))
	m.preview.Width = layout.PreviewWidth
	m.preview.Height = layout.PreviewRows
}
