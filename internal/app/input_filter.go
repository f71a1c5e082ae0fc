package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// shouldIgnoreInput drops rune events that are really terminal replies
// leaking into the input stream, such as the OSC 11 background color answer
// some terminals send at startup. Forwarded to the draft editor they would
// show up as "]11;rgb:1c1c/1c1c/1c1c" in the message.
func (m *Model) shouldIgnoreInput(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	sequence := msg.String()
	if !isTerminalColorReply(sequence) && !containsControlRunes(sequence) {
		return false
	}
	if m.debugInput {
		m.status = fmt.Sprintf("Ignored input: %q", sequence)
	}
	appLog.Debug("ignored terminal reply", "input", sequence)
	return true
}

// isTerminalColorReply reports whether sequence looks like an OSC 10/11 color
// report: "rgb:" followed by three slash-separated hex components.
func isTerminalColorReply(sequence string) bool {
	sequence = strings.TrimRight(sequence, "\x1b\\\a")
	index := strings.Index(sequence, "rgb:")
	if index == -1 {
		return false
	}
	prefix := sequence[:index]
	if !strings.Contains(prefix, "\x1b") && !strings.HasSuffix(prefix, "1;") {
		return false
	}

	components := strings.SplitN(sequence[index+len("rgb:"):], "/", 3)
	if len(components) != 3 {
		return false
	}
	for _, component := range components {
		if len(component) < 4 || !isHex(component[:4]) {
			return false
		}
	}
	return true
}

func containsControlRunes(sequence string) bool {
	for _, r := range sequence {
		switch {
		case r == '\n' || r == '\t':
			continue
		case r < 32 || r == 127:
			return true
		}
	}
	return false
}

func isHex(value string) bool {
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return value != ""
}
