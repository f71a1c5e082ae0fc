package composer

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

func collect(seq func(func(string) bool)) []string {
	var out []string
	for line := range seq {
		out = append(out, line)
	}
	return out
}

func TestPrepareLinesDropsBlankLines(t *testing.T) {
	drafts := []string{
		"",
		"\n\n\n",
		"Q\n\n  \n\t\nA\n",
		"  Q  \n 　 \nA",
		"Q\r\n\r\nA",
	}
	for _, draft := range drafts {
		for _, line := range collect(PrepareLines(draft)) {
			if strings.TrimSpace(line) == "" {
				t.Fatalf("PrepareLines(%q) returned blank entry %q", draft, line)
			}
		}
	}

	got := collect(PrepareLines("Q\n\n  \nA\n  B  \n"))
	if want := []string{"Q", "A", "  B  "}; !slices.Equal(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPrepareLinesIsRestartable(t *testing.T) {
	seq := PrepareLines("a\n\nb\nc")
	first := collect(seq)
	second := collect(seq)
	if !slices.Equal(first, second) {
		t.Fatalf("expected identical passes, got %q and %q", first, second)
	}

	var partial []string
	for line := range seq {
		partial = append(partial, line)
		break
	}
	if !slices.Equal(partial, []string{"a"}) {
		t.Fatalf("expected early stop after first line, got %q", partial)
	}
}

func TestDecorateCyclesTable(t *testing.T) {
	lines := []string{"header", "l1", "l2", "l3", "l4", "l5", "l6", "l7", "l8"}
	input := PrepareLines(strings.Join(lines, "\n"))

	tables := map[string]DecorationTable{
		"one":   {"A"},
		"two":   {"A", "B"},
		"prime": {"A", "B", "C", "D", "E"},
	}
	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			got := collect(Decorate(input, table))
			if len(got) != len(lines) {
				t.Fatalf("expected %d lines, got %d", len(lines), len(got))
			}
			if got[0] != "header" {
				t.Fatalf("expected first line untouched, got %q", got[0])
			}
			for i := 1; i < len(lines); i++ {
				want := fmt.Sprintf("%s %s", table[(i-1)%len(table)], lines[i])
				if got[i] != want {
					t.Fatalf("line %d: expected %q, got %q", i, want, got[i])
				}
			}
		})
	}
}

func TestDecorateEmptyTablePassesThrough(t *testing.T) {
	input := PrepareLines("a\nb")
	if got := collect(Decorate(input, nil)); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("expected pass-through, got %q", got)
	}
}

func TestBuildExportFlavors(t *testing.T) {
	draft := "Q\n\nday one\n\nday two\n"
	tables := DecorationTables{
		Standard:   DecorationTable{":one:", ":two:"},
		Restricted: DecorationTable{"1️⃣", "2️⃣"},
	}

	tests := []struct {
		name     string
		flavor   Flavor
		platform Platform
		want     string
	}{
		{name: "plain", flavor: FlavorPlain, platform: Standard, want: "Q\nday one\nday two"},
		{name: "plain restricted", flavor: FlavorPlain, platform: ClipboardRestricted, want: "Q\nday one\nday two"},
		{name: "slack", flavor: FlavorSlack, platform: Standard, want: "Q\n:one: day one\n:two: day two"},
		{name: "slack restricted", flavor: FlavorSlack, platform: ClipboardRestricted, want: "Q\n1️⃣ day one\n2️⃣ day two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildExport(draft, tt.flavor, tt.platform, tables); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBuildExportDoesNotTouchDraft(t *testing.T) {
	s := New("Q\n").SetRaw("Q\n\nA")
	_ = BuildExport(s.Draft, FlavorSlack, Standard, DefaultDecorationTables)
	if s.Draft != "Q\n\nA" {
		t.Fatalf("expected draft untouched, got %q", s.Draft)
	}
}
