package clipboard

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// OSC52Copier asks the terminal emulator to set the clipboard by writing an
// OSC 52 escape sequence. It works over SSH and inside most mobile terminal
// apps where no clipboard API is reachable.
type OSC52Copier struct {
	out io.Writer
	env func(string) string
}

// NewOSC52Copier writes sequences to out, or to stderr when out is nil.
func NewOSC52Copier(out io.Writer) *OSC52Copier {
	if out == nil {
		out = os.Stderr
	}
	return &OSC52Copier{out: out, env: os.Getenv}
}

// Copy reads the whole selection and emits it as one OSC 52 sequence. Inside
// tmux or GNU screen the sequence is wrapped in the multiplexer's passthrough.
func (c *OSC52Copier) Copy(selection io.Reader) bool {
	data, err := io.ReadAll(selection)
	if err != nil {
		log.Warn("read copy selection", "error", err)
		return false
	}
	seq := osc52.New(string(data))
	switch {
	case c.env("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(c.env("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.out); err != nil {
		log.Warn("write osc52 sequence", "error", err)
		return false
	}
	return true
}

// CommandCopier pipes the selection into an external copy command such as
// pbcopy, wl-copy or termux-clipboard-set.
type CommandCopier struct {
	name string
	args []string
}

// NewCommandCopier returns a copier for argv. It returns nil when argv is
// empty.
func NewCommandCopier(argv []string) *CommandCopier {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil
	}
	return &CommandCopier{name: argv[0], args: append([]string(nil), argv[1:]...)}
}

// Copy runs the command with the selection on stdin and reports whether it
// exited successfully.
func (c *CommandCopier) Copy(selection io.Reader) bool {
	if _, err := exec.LookPath(c.name); err != nil {
		log.Warn("copy command not found", "command", c.name, "error", err)
		return false
	}
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = selection
	if out, err := cmd.CombinedOutput(); err != nil {
		log.Warn("copy command failed", "command", c.name, "error", err, "output", strings.TrimSpace(string(out)))
		return false
	}
	return true
}
