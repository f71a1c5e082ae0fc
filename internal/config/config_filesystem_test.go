package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureLogOutput swaps the package logger for one writing into a buffer.
func captureLogOutput(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	previous := log
	log = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { log = previous })
	fn()
	return buf.String()
}

func skipAsRoot(t *testing.T) {
	t.Helper()
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		perm    os.FileMode
		root    bool
		want    string
	}{
		{name: "invalid json", content: `{"preamble":`, perm: 0o644, want: "parse config"},
		{name: "interval above an hour", content: `{"time_interval_minutes":90}`, perm: 0o644, want: "invalid time_interval_minutes 90"},
		{name: "interval not dividing an hour", content: `{"time_interval_minutes":25}`, perm: 0o644, want: "must divide 60"},
		{name: "unreadable", content: `{"preamble":"Q"}`, perm: 0o000, root: true, want: "read config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.root {
				skipAsRoot(t)
			}
			path := filepath.Join(t.TempDir(), "config.json")
			writeFile(t, path, tc.content, tc.perm)

			_, err := LoadFile(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestSaveFileErrors(t *testing.T) {
	t.Run("parent is a file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "blocker"), "x", 0o644)

		err := SaveFile(filepath.Join(dir, "blocker", "config.json"), Default())
		if err == nil || !strings.Contains(err.Error(), "create config dir") {
			t.Fatalf("expected create config dir error, got %v", err)
		}
	})

	t.Run("read-only dir", func(t *testing.T) {
		skipAsRoot(t)
		dir := filepath.Join(t.TempDir(), "ro")
		if err := os.Mkdir(dir, 0o555); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

		err := SaveFile(filepath.Join(dir, "config.json"), Default())
		if err == nil || !strings.Contains(err.Error(), "write config") {
			t.Fatalf("expected write config error, got %v", err)
		}
	})

	t.Run("invalid config is not written", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		cfg := Default()
		cfg.TimeIntervalMinutes = 7

		if err := SaveFile(path, cfg); err == nil {
			t.Fatal("expected validation error")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("expected no file after failed save, stat err %v", err)
		}
	})
}

func TestSaveLogsPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	logs := captureLogOutput(t, func() {
		if err := Save(Default()); err != nil {
			t.Fatalf("save: %v", err)
		}
	})

	want := filepath.Join(home, configDirName, configFileName)
	if !strings.Contains(logs, "level=INFO") || !strings.Contains(logs, "saved config") {
		t.Fatalf("expected an INFO saved config entry, got %q", logs)
	}
	if !strings.Contains(logs, want) {
		t.Fatalf("expected log to name %s, got %q", want, logs)
	}
}

func TestExistsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	exists, err := ExistsFile(path)
	if err != nil || exists {
		t.Fatalf("expected missing file, got %v, %v", exists, err)
	}

	writeFile(t, path, "{}", 0o644)
	exists, err = ExistsFile(path)
	if err != nil || !exists {
		t.Fatalf("expected existing file, got %v, %v", exists, err)
	}
}

func TestExistsStatError(t *testing.T) {
	skipAsRoot(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	locked := filepath.Join(home, configDirName)
	if err := os.Mkdir(locked, 0o000); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	exists, err := Exists()
	if err == nil || exists {
		t.Fatalf("expected stat failure, got %v, %v", exists, err)
	}
	if !strings.Contains(err.Error(), "stat config path") {
		t.Fatalf("expected stat config path error, got %v", err)
	}
}

func TestConfigPathWithoutHome(t *testing.T) {
	t.Setenv("HOME", "")

	if _, err := ConfigPath(); err == nil || !strings.Contains(err.Error(), "resolve home dir") {
		t.Fatalf("expected resolve home dir error, got %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected Load to fail without a home dir")
	}
}
