package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/chousei/internal/app"
	"github.com/treykane/chousei/internal/clipboard"
	"github.com/treykane/chousei/internal/composer"
)

type fakeWriter struct {
	mu   sync.Mutex
	text string
	err  error
}

func (w *fakeWriter) WriteText(_ context.Context, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.text = text
	return w.err
}

// runCmd executes the root command with isolated HOME and config path.
func runCmd(t *testing.T, a *App, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TMPDIR", t.TempDir())
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("CHOUSEI_CONFIG", "")

	if a == nil {
		a = &App{}
	}
	cmd := newRootCmd(a)
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootRunsTUIWithPreambleOverride(t *testing.T) {
	var got *app.Model
	a := &App{runProgram: func(m tea.Model) error {
		got = m.(*app.Model)
		return nil
	}}

	if _, _, err := runCmd(t, a, "", "--preamble", "Please confirm:"); err != nil {
		t.Fatalf("run root: %v", err)
	}
	if got == nil {
		t.Fatal("expected the UI to run")
	}
	if draft := got.State().Draft; draft != "Please confirm:\n" {
		t.Fatalf("expected preamble override, got %q", draft)
	}
}

func TestRootRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"time_interval_minutes": 7}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	a := &App{runProgram: func(tea.Model) error {
		t.Fatal("UI should not start")
		return nil
	}}

	_, _, err := runCmd(t, a, "", "--config", path)
	if err == nil || !strings.Contains(err.Error(), "time_interval_minutes") {
		t.Fatalf("expected interval error, got %v", err)
	}
}

func TestCopyStandardSlack(t *testing.T) {
	writer := &fakeWriter{}
	a := &App{
		exporterOptions: []clipboard.Option{clipboard.WithWriter(writer)},
		probe:           clipboard.StaticProbe{SupportsAsyncClipboardWrite: true},
	}

	draft := "Please confirm:\n\n5月 3日 (土曜日) 09:00~10:00,\n"
	_, stderr, err := runCmd(t, a, draft, "copy", "--slack", "--config", filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("copy: %v", err)
	}

	stamps := composer.DefaultDecorationTables.Standard
	want := "Please confirm:\n" + stamps[0] + " 5月 3日 (土曜日) 09:00~10:00,"
	if writer.text != want {
		t.Fatalf("expected clipboard %q, got %q", want, writer.text)
	}
	if !strings.Contains(stderr, clipboard.MessageCopied) {
		t.Fatalf("expected success toast on stderr, got %q", stderr)
	}
}

func TestCopyFailureReturnsError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("no display")}
	a := &App{
		exporterOptions: []clipboard.Option{clipboard.WithWriter(writer)},
		probe:           clipboard.StaticProbe{SupportsAsyncClipboardWrite: true},
	}

	_, stderr, err := runCmd(t, a, "hello", "copy")
	if !errors.Is(err, errCopyFailed) {
		t.Fatalf("expected errCopyFailed, got %v", err)
	}
	if !strings.Contains(stderr, clipboard.MessageCopyFailed) {
		t.Fatalf("expected failure toast on stderr, got %q", stderr)
	}
}

func TestCopyRestrictedEmitsOSC52(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0o600); err != nil {
		t.Fatalf("write draft: %v", err)
	}

	stdout, stderr, err := runCmd(t, nil, "", "copy", "--restricted", "--print", "--file", path)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if stdout != "a\nb\n" {
		t.Fatalf("expected printed export, got %q", stdout)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte("a\nb"))
	if !strings.Contains(stderr, "\x1b]52;c;"+encoded) {
		t.Fatalf("expected OSC 52 sequence on stderr, got %q", stderr)
	}
	if !strings.Contains(stderr, clipboard.MessageCopied) {
		t.Fatalf("expected success toast, got %q", stderr)
	}
}

func TestCopyMissingFile(t *testing.T) {
	_, _, err := runCmd(t, nil, "", "copy", "--file", filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil || !strings.Contains(err.Error(), "read draft") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestDateCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "plain", args: []string{"date", "2025-05-03"}, want: "5月 3日 (土曜日)\n"},
		{name: "preamble", args: []string{"date", "2025-05-03", "--with-preamble", "--preamble", "Please confirm:"}, want: "Please confirm:\n5月 3日 (土曜日)\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := runCmd(t, nil, "", tc.args...)
			if err != nil {
				t.Fatalf("date: %v", err)
			}
			if stdout != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, stdout)
			}
		})
	}

	if _, _, err := runCmd(t, nil, "", "date", "05/03"); err == nil {
		t.Fatal("expected invalid date error")
	}
}

func TestSlotCommand(t *testing.T) {
	stdout, _, err := runCmd(t, nil, "", "slot", "9:00", "１０：３０", "13:00")
	if err != nil {
		t.Fatalf("slot: %v", err)
	}
	if want := " 09:00~10:30, 13:00~\n"; stdout != want {
		t.Fatalf("expected %q, got %q", want, stdout)
	}

	if _, _, err := runCmd(t, nil, "", "slot", "25:00"); err == nil {
		t.Fatal("expected invalid time error")
	}
}

func TestScriptedMessageJoinsDateAndSlot(t *testing.T) {
	if example := newRootCmd(&App{}).Example; !strings.Contains(example, "chousei date --with-preamble") {
		t.Fatalf("expected the scripted example to include the preamble, got %q", example)
	}

	date, _, err := runCmd(t, nil, "", "date", "2025-05-03", "--with-preamble", "--preamble", "Please confirm:")
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	slot, _, err := runCmd(t, nil, "", "slot", "09:00", "10:00")
	if err != nil {
		t.Fatalf("slot: %v", err)
	}
	// Command substitution drops trailing newlines.
	draft := strings.TrimRight(date, "\n") + strings.TrimRight(slot, "\n") + "\n"

	writer := &fakeWriter{}
	a := &App{
		exporterOptions: []clipboard.Option{clipboard.WithWriter(writer)},
		probe:           clipboard.StaticProbe{SupportsAsyncClipboardWrite: true},
	}
	if _, _, err := runCmd(t, a, draft, "copy", "--slack"); err != nil {
		t.Fatalf("copy: %v", err)
	}

	stamps := composer.DefaultDecorationTables.Standard
	want := "Please confirm:\n" + stamps[0] + " 5月 3日 (土曜日) 09:00~10:00,"
	if writer.text != want {
		t.Fatalf("expected clipboard %q, got %q", want, writer.text)
	}
}

func TestInitDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TMPDIR", t.TempDir())
	t.Setenv("CHOUSEI_CONFIG", "")

	run := func(args ...string) (string, error) {
		cmd := newRootCmd(&App{})
		var stdout bytes.Buffer
		cmd.SetIn(strings.NewReader(""))
		cmd.SetOut(&stdout)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		err := cmd.Execute()
		return stdout.String(), err
	}

	want := filepath.Join(home, ".chousei", "config.json")
	stdout, err := run("init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if strings.TrimSpace(stdout) != want {
		t.Fatalf("expected %s on stdout, got %q", want, stdout)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected config at %s: %v", want, err)
	}

	if _, err := run("init"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected second init to refuse, got %v", err)
	}
	if _, err := run("init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestInitWritesConfigOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	stdout, _, err := runCmd(t, nil, "", "init", "--config", path, "--preamble", "Hi")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if strings.TrimSpace(stdout) != path {
		t.Fatalf("expected path on stdout, got %q", stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), `"preamble": "Hi\n"`) {
		t.Fatalf("expected preamble in config, got %s", data)
	}

	if _, _, err := runCmd(t, nil, "", "init", "--config", path); err == nil {
		t.Fatal("expected second init to refuse overwriting")
	}
	if _, _, err := runCmd(t, nil, "", "init", "--config", path, "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}
