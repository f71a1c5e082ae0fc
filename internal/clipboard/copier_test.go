package clipboard

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

func TestOSC52CopierEncodesSelection(t *testing.T) {
	var out bytes.Buffer
	copier := NewOSC52Copier(&out)
	copier.env = func(string) string { return "" }

	if !copier.Copy(strings.NewReader("日程\n5月 3日")) {
		t.Fatal("expected copy to succeed")
	}
	got := out.String()
	if !strings.HasPrefix(got, "\x1b]52;") {
		t.Fatalf("expected OSC 52 sequence, got %q", got)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte("日程\n5月 3日"))
	if !strings.Contains(got, encoded) {
		t.Fatalf("expected payload %q in %q", encoded, got)
	}
}

func TestOSC52CopierWrapsForTmux(t *testing.T) {
	var out bytes.Buffer
	copier := NewOSC52Copier(&out)
	copier.env = func(key string) string {
		if key == "TMUX" {
			return "/tmp/tmux-1000/default,1,0"
		}
		return ""
	}

	if !copier.Copy(strings.NewReader("x")) {
		t.Fatal("expected copy to succeed")
	}
	if !strings.HasPrefix(out.String(), "\x1bPtmux;") {
		t.Fatalf("expected tmux passthrough, got %q", out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, bytes.ErrTooLarge }

func TestOSC52CopierReportsWriteFailure(t *testing.T) {
	copier := NewOSC52Copier(failingWriter{})
	copier.env = func(string) string { return "" }
	if copier.Copy(strings.NewReader("x")) {
		t.Fatal("expected copy to fail when the terminal write fails")
	}
}

func TestNewCommandCopierRejectsEmptyArgv(t *testing.T) {
	if NewCommandCopier(nil) != nil {
		t.Fatal("expected nil copier for empty argv")
	}
	if NewCommandCopier([]string{"  "}) != nil {
		t.Fatal("expected nil copier for blank command")
	}
}

func TestCommandCopierMissingBinary(t *testing.T) {
	copier := NewCommandCopier([]string{"chousei-definitely-not-installed"})
	if copier.Copy(strings.NewReader("x")) {
		t.Fatal("expected missing command to report failure")
	}
}
