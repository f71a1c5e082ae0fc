// Package composer holds the message-composition core: the draft buffer with
// its preamble, the running time-slot sequence, the Japanese date and time
// formatter, and the pure half of clipboard export (line preparation and
// decoration).
//
// Everything in this package is a pure function of its inputs. The draft and
// slot history live in a State value that every operation takes and returns,
// so the terminal UI and the CLI share exactly the same behavior and tests
// need no UI harness.
package composer

import (
	"errors"
	"slices"
	"strings"
)

// DefaultPreamble is the fixed first line of every composed message.
const DefaultPreamble = "以下の日程でご都合いかがでしょうか\n"

// ErrNoSelection is returned when a picker reports that nothing was selected.
// It is a diagnostic, never a user-facing failure.
var ErrNoSelection = errors.New("no selection")

// State is the composer session: the draft text and the time slots picked
// since the last reset.
type State struct {
	Preamble string
	Draft    string
	Slots    []string
}

// New returns a fresh session whose draft is exactly the preamble. A
// non-empty preamble always ends with a newline.
func New(preamble string) State {
	if preamble != "" && !strings.HasSuffix(preamble, "\n") {
		preamble += "\n"
	}
	return State{Preamble: preamble, Draft: preamble}
}

// Reset restores the draft to the preamble and forgets every picked slot.
func (s State) Reset() State {
	return New(s.Preamble)
}

// SetRaw overwrites the draft with user-edited text.
func (s State) SetRaw(text string) State {
	s.Draft = text
	return s
}

// SlotCount reports how many times have been picked since the last reset.
func (s State) SlotCount() int {
	return len(s.Slots)
}

// ReplaceWithDate re-anchors the preamble and appends formatted as the final
// line. Earlier date lines are kept; only the preamble is normalized so that
// it never appears twice.
func (s State) ReplaceWithDate(formatted string) State {
	body := strings.Replace(s.Draft, s.Preamble, "", 1)
	body = strings.TrimSpace(body)
	if body != "" {
		body += "\n"
	}
	s.Draft = s.Preamble + body + formatted
	return s
}

// RequestInsertion replaces the surface's current selection in the draft with
// text. The cursor is not moved here: the returned PendingCursorUpdate must be
// applied once the surface has absorbed the new draft. With no attached
// surface the call does nothing.
func (s State) RequestInsertion(text string, surface EditingSurface) (State, PendingCursorUpdate) {
	if surface == nil || !surface.Attached() {
		return s, PendingCursorUpdate{}
	}
	sel := surface.Selection().normalize(runeLen(s.Draft))
	runes := []rune(s.Draft)
	inserted := []rune(text)

	updated := make([]rune, 0, len(runes)-(sel.End-sel.Start)+len(inserted))
	updated = append(updated, runes[:sel.Start]...)
	updated = append(updated, inserted...)
	updated = append(updated, runes[sel.End:]...)

	s.Draft = string(updated)
	return s, PendingCursorUpdate{Cursor: sel.Start + len(inserted), Valid: true}
}

// withSlot returns a copy of s with clock appended to the slot history. The
// slice is cloned so earlier State values keep their own history.
func (s State) withSlot(clock string) State {
	s.Slots = append(slices.Clip(s.Slots), clock)
	return s
}

func runeLen(value string) int {
	return len([]rune(value))
}
