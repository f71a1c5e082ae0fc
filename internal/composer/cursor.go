package composer

// Selection is a rune-offset range into the draft as reported by the editing
// surface. Start == End is a plain cursor.
type Selection struct {
	Start int
	End   int
}

// normalize clamps both ends to [0, limit] and orders them.
func (sel Selection) normalize(limit int) Selection {
	start := clamp(sel.Start, 0, limit)
	end := clamp(sel.End, 0, limit)
	if start > end {
		start, end = end, start
	}
	return Selection{Start: start, End: end}
}

// EditingSurface is the editor the draft is shown in. The composer reads its
// selection before an insertion and, later, moves its cursor back into place.
// The surface is referenced, never owned.
type EditingSurface interface {
	// Attached reports whether the surface is currently available for input.
	Attached() bool
	// Selection returns the current selection range in rune offsets.
	Selection() Selection
	// SetSelection moves the cursor or selection.
	SetSelection(Selection)
	// Focus gives the surface input focus.
	Focus()
}

// PendingCursorUpdate is the second phase of an insertion: where the cursor
// should land once the surface shows the updated draft.
type PendingCursorUpdate struct {
	Cursor int
	Valid  bool
}

// Apply moves the surface cursor to just after the inserted text and refocuses
// it. It reports whether anything was applied.
func (p PendingCursorUpdate) Apply(surface EditingSurface) bool {
	if !p.Valid || surface == nil || !surface.Attached() {
		return false
	}
	surface.SetSelection(Selection{Start: p.Cursor, End: p.Cursor})
	surface.Focus()
	return true
}

func clamp(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
