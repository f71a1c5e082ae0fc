package app

import (
	"slices"
	"strings"

	"github.com/treykane/chousei/internal/config"
)

// ---------------------------------------------------------------------------
// Action constants
// ---------------------------------------------------------------------------
//
// Actions are the layer between physical key presses and behavior. A key is
// looked up in keyToAction and the resulting action is dispatched by
// handleAction. Cursor and selection actions are interpreted by the focused
// pane: "cursor.down" moves a week in the calendar and one slot in the time
// list.
//
// Default keys live in defaultActionKeys. Users can override any action via
// the "keybindings" object in ~/.chousei/config.json.
// ---------------------------------------------------------------------------

const (
	// actionCursorUp moves up: one week in the calendar, one slot in the
	// time list.
	actionCursorUp = "cursor.up"

	// actionCursorDown moves down: one week in the calendar, one slot in the
	// time list.
	actionCursorDown = "cursor.down"

	// actionCursorLeft moves one day back in the calendar.
	actionCursorLeft = "cursor.left"

	// actionCursorRight moves one day forward in the calendar.
	actionCursorRight = "cursor.right"

	// actionPagePrev moves one month back in the calendar, one hour back in
	// the time list.
	actionPagePrev = "page.prev"

	// actionPageNext moves one month forward in the calendar, one hour
	// forward in the time list.
	actionPageNext = "page.next"

	// actionCursorHome jumps to today in the calendar and to the start of the
	// working day in the time list.
	actionCursorHome = "cursor.home"

	// actionSelect picks the date or time under the cursor.
	actionSelect = "item.select"

	// actionTimeManual opens the manual time input.
	actionTimeManual = "time.manual"

	// actionFocusNext cycles focus calendar → times → draft.
	actionFocusNext = "focus.next"

	// actionFocusPrev cycles focus in reverse.
	actionFocusPrev = "focus.prev"

	// actionReset restores the draft to the preamble and forgets every slot.
	actionReset = "draft.reset"

	// actionUndo reverts the last draft change.
	actionUndo = "draft.undo"

	// actionRedo re-applies the last undone draft change.
	actionRedo = "draft.redo"

	// actionSelectAnchor sets or clears the draft selection anchor.
	actionSelectAnchor = "draft.select.anchor"

	// actionCopyPlain copies the draft as-is.
	actionCopyPlain = "copy.plain"

	// actionCopySlack copies the draft with Slack stamp decoration.
	actionCopySlack = "copy.slack"

	// actionHelp toggles the keyboard shortcut reference.
	actionHelp = "help.toggle"

	// actionQuit exits the application.
	actionQuit = "app.quit"
)

// defaultActionKeys maps each action to its factory-default key bindings.
//
// Key strings use the Bubble Tea notation ("ctrl+", "alt+", "shift+"
// modifiers, named keys such as "enter" or "pgup", and single characters).
var defaultActionKeys = map[string][]string{
	actionCursorUp:     {"up", "k"},
	actionCursorDown:   {"down", "j"},
	actionCursorLeft:   {"left", "h"},
	actionCursorRight:  {"right", "l"},
	actionPagePrev:     {"pgup", "["},
	actionPageNext:     {"pgdown", "]"},
	actionCursorHome:   {"home", "g"},
	actionSelect:       {"enter", " "},
	actionTimeManual:   {"t"},
	actionFocusNext:    {"tab"},
	actionFocusPrev:    {"shift+tab"},
	actionReset:        {"ctrl+r"},
	actionUndo:         {"ctrl+z"},
	actionRedo:         {"ctrl+y"},
	actionSelectAnchor: {"alt+s"},
	actionCopyPlain:    {"ctrl+o"},
	actionCopySlack:    {"ctrl+s"},
	actionHelp:         {"?"},
	actionQuit:         {"q", "ctrl+c"},
}

// draftActions are the actions still dispatched while the draft editor has
// focus. Every other key goes to the editor so typing is never hijacked.
var draftActions = map[string]bool{
	actionFocusNext:    true,
	actionFocusPrev:    true,
	actionReset:        true,
	actionUndo:         true,
	actionRedo:         true,
	actionSelectAnchor: true,
	actionCopyPlain:    true,
	actionCopySlack:    true,
	actionQuit:         true,
}

// ---------------------------------------------------------------------------
// Keybinding initialization
// ---------------------------------------------------------------------------

// loadKeybindings initializes the key↔action maps from defaultActionKeys and
// then cfg.Keybindings. An override replaces the action's full default key
// set. Unknown actions and key conflicts are logged and ignored; the first
// action to claim a key wins.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}
	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}
	m.rebuildActionKeyIndex()
}

// applyKeybindingOverride replaces a single action's key set with key.
func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

// rebuildActionKeyIndex constructs the reverse lookup map (keyToAction).
//
// Actions are visited in sorted order so that a conflict always resolves the
// same way between runs.
func (m *Model) rebuildActionKeyIndex() {
	m.keyToAction = map[string]string{}
	actions := make([]string, 0, len(m.keyForAction))
	for action := range m.keyForAction {
		actions = append(actions, action)
	}
	slices.Sort(actions)

	for _, action := range actions {
		for _, key := range m.keyForAction[action] {
			if key == "" {
				continue
			}
			if existing, ok := m.keyToAction[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[key] = action
		}
	}
}

// ---------------------------------------------------------------------------
// Key string normalization
// ---------------------------------------------------------------------------

// normalizeKeyString converts a user-provided key string into the canonical
// lowercase form used by Bubble Tea.
//
// A single uppercase letter (e.g. "Y") becomes "shift+y" because Bubble Tea
// may report shifted letters as uppercase runes. A lone space is kept as is.
//
//	normalizeKeyString("Ctrl+S")  → "ctrl+s"
//	normalizeKeyString(" Y ")     → "shift+y"
//	normalizeKeyString(" ")       → " "
func normalizeKeyString(key string) string {
	if key == " " {
		return key
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// actionForKey looks up the action bound to key, or "" when none is.
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" || slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

func (m *Model) primaryActionKey(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return keys[0]
}

func (m *Model) allActionKeys(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return strings.Join(keys, ", ")
}

var specialKeyLabels = map[string]string{
	"up":        "↑",
	"down":      "↓",
	"left":      "←",
	"right":     "→",
	"enter":     "Enter",
	"esc":       "Esc",
	"tab":       "Tab",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PgUp",
	"pgdown":    "PgDn",
	"backspace": "Backspace",
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	switch normalized {
	case "":
		return ""
	case " ":
		return "Space"
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		default:
			if label, ok := specialKeyLabels[part]; ok {
				parts[i] = label
				continue
			}
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "+")
}
