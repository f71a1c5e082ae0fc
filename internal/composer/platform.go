package composer

import "strings"

// Platform is the clipboard environment an export runs in.
type Platform int

const (
	// Standard platforms accept an asynchronous clipboard write.
	Standard Platform = iota
	// ClipboardRestricted platforms need the select-and-copy fallback.
	ClipboardRestricted
)

func (p Platform) String() string {
	if p == ClipboardRestricted {
		return "clipboard-restricted"
	}
	return "standard"
}

// Capability describes what the current environment can do. It is resolved
// once per export by a probe and injected into the export path.
type Capability struct {
	SupportsAsyncClipboardWrite bool
}

// Platform maps the capability onto the export branch.
func (c Capability) Platform() Platform {
	if c.SupportsAsyncClipboardWrite {
		return Standard
	}
	return ClipboardRestricted
}

// DefaultRestrictedMarkers identify environments where the system clipboard
// is out of reach: remote shells and Termux. Each one is a token the
// clipboard probe emits into the identification string.
var DefaultRestrictedMarkers = []string{"ssh", "termux"}

// DetectPlatform reports ClipboardRestricted when any of markers equals a
// whole "/"-separated token of identification, ignoring case. Substrings do
// not count, so "ssh" does not match "sshd-session".
func DetectPlatform(identification string, markers []string) Platform {
	tokens := strings.Split(strings.ToLower(identification), "/")
	for _, marker := range markers {
		marker = strings.ToLower(strings.TrimSpace(marker))
		if marker == "" {
			continue
		}
		for _, token := range tokens {
			if strings.TrimSpace(token) == marker {
				return ClipboardRestricted
			}
		}
	}
	return Standard
}
