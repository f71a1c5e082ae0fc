package clipboard

import (
	"os"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/treykane/chousei/internal/composer"
)

// Probe resolves the clipboard capability of the current environment. It is
// called once per export and never cached.
type Probe interface {
	Capability() composer.Capability
}

// StaticProbe always reports the same capability.
type StaticProbe composer.Capability

// Capability returns p.
func (p StaticProbe) Capability() composer.Capability { return composer.Capability(p) }

// EnvironmentProbe inspects the process environment on every call.
type EnvironmentProbe struct {
	// Markers are matched against the identification string; see
	// composer.DetectPlatform.
	Markers []string

	getenv      func(string) string
	unsupported func() bool
}

// NewEnvironmentProbe returns a probe over the real environment.
func NewEnvironmentProbe(markers []string) *EnvironmentProbe {
	return &EnvironmentProbe{
		Markers:     markers,
		getenv:      os.Getenv,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

// Identification builds the "/"-separated identification string, e.g.
// "linux/iTerm.app/xterm-256color/ssh/tmux".
func (p *EnvironmentProbe) Identification() string {
	parts := []string{runtime.GOOS, p.getenv("TERM_PROGRAM"), p.getenv("TERM")}
	if p.getenv("SSH_TTY") != "" || p.getenv("SSH_CONNECTION") != "" {
		parts = append(parts, "ssh")
	}
	if p.getenv("TMUX") != "" {
		parts = append(parts, "tmux")
	}
	if p.getenv("TERMUX_VERSION") != "" {
		parts = append(parts, "termux")
	}
	return strings.Join(parts, "/")
}

// Capability reports restricted when no clipboard utility is available or
// the identification string carries a restricted marker.
func (p *EnvironmentProbe) Capability() composer.Capability {
	if p.unsupported != nil && p.unsupported() {
		return composer.Capability{SupportsAsyncClipboardWrite: false}
	}
	platform := composer.DetectPlatform(p.Identification(), p.Markers)
	return composer.Capability{SupportsAsyncClipboardWrite: platform == composer.Standard}
}
