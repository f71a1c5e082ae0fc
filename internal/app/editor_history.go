package app

import (
	"time"

	"github.com/treykane/chousei/internal/composer"
)

const typingBurstIdleWindow = 750 * time.Millisecond

// draftSnapshot captures the whole composer session and the editor cursor.
// Restoring a snapshot taken before a time pick also forgets that slot, so
// the open/close alternation stays in step with the text.
type draftSnapshot struct {
	state        composer.State
	cursorOffset int
}

func (m *Model) captureDraftSnapshot() draftSnapshot {
	return draftSnapshot{
		state:        m.state,
		cursorOffset: m.currentEditorCursorOffset(),
	}
}

func (m *Model) restoreDraftSnapshot(snapshot draftSnapshot) {
	m.state = snapshot.state
	m.setEditorValueAndCursorOffset(snapshot.state.Draft, snapshot.cursorOffset)
	m.clearEditorSelection()
	m.refreshPreview()
}

func (m *Model) pushUndo(snapshot draftSnapshot) {
	m.draftUndo = append(m.draftUndo, snapshot)
	// Any forward mutation invalidates the redo chain.
	m.draftRedo = nil
}

func (m *Model) finalizeTypingBurstBoundary() {
	m.typingBurstActive = false
	m.typingBurstLastInputAt = time.Time{}
}

func sameDraft(before, after draftSnapshot) bool {
	return before.state.Draft == after.state.Draft &&
		before.state.SlotCount() == after.state.SlotCount() &&
		before.cursorOffset == after.cursorOffset
}

// recordDiscreteMutation records one undo step for a picker or reset.
func (m *Model) recordDiscreteMutation(before, after draftSnapshot) {
	if sameDraft(before, after) {
		return
	}
	m.finalizeTypingBurstBoundary()
	m.pushUndo(before)
}

// recordTypingMutation coalesces keystrokes into one undo step until the
// user pauses for typingBurstIdleWindow.
func (m *Model) recordTypingMutation(before, after draftSnapshot, now time.Time) {
	if before.state.Draft == after.state.Draft {
		return
	}
	if !m.typingBurstActive || now.Sub(m.typingBurstLastInputAt) > typingBurstIdleWindow {
		m.pushUndo(before)
	}
	m.typingBurstActive = true
	m.typingBurstLastInputAt = now
}

func (m *Model) undoDraftChange() {
	m.finalizeTypingBurstBoundary()
	if len(m.draftUndo) == 0 {
		m.status = "Nothing to undo"
		return
	}
	current := m.captureDraftSnapshot()
	last := m.draftUndo[len(m.draftUndo)-1]
	m.draftUndo = m.draftUndo[:len(m.draftUndo)-1]
	m.draftRedo = append(m.draftRedo, current)
	m.restoreDraftSnapshot(last)
	m.status = "Undid edit"
}

func (m *Model) redoDraftChange() {
	m.finalizeTypingBurstBoundary()
	if len(m.draftRedo) == 0 {
		m.status = "Nothing to redo"
		return
	}
	current := m.captureDraftSnapshot()
	next := m.draftRedo[len(m.draftRedo)-1]
	m.draftRedo = m.draftRedo[:len(m.draftRedo)-1]
	m.draftUndo = append(m.draftUndo, current)
	m.restoreDraftSnapshot(next)
	m.status = "Redid edit"
}
