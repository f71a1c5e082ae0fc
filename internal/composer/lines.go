package composer

import (
	"iter"
	"strings"
)

// Flavor selects how the draft is turned into clipboard text.
type Flavor int

const (
	// FlavorPlain copies the non-blank lines unchanged.
	FlavorPlain Flavor = iota
	// FlavorSlack prefixes every line after the first with a decoration glyph.
	FlavorSlack
)

func (f Flavor) String() string {
	switch f {
	case FlavorSlack:
		return "slack"
	default:
		return "plain"
	}
}

// DecorationTable is an ordered, cyclically indexed list of glyphs.
type DecorationTable []string

// DecorationTables holds one table per platform.
type DecorationTables struct {
	Standard   DecorationTable
	Restricted DecorationTable
}

// DefaultDecorationTables use Slack shortcodes on the standard platform and
// Unicode keycaps where the text may pass through a terminal escape first.
var DefaultDecorationTables = DecorationTables{
	Standard: DecorationTable{
		":one:", ":two:", ":three:", ":four:", ":five:",
		":six:", ":seven:", ":eight:", ":nine:", ":keycap_ten:",
	},
	Restricted: DecorationTable{
		"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟",
	},
}

// For returns the table for platform.
func (t DecorationTables) For(platform Platform) DecorationTable {
	if platform == ClipboardRestricted {
		return t.Restricted
	}
	return t.Standard
}

// PrepareLines yields the lines of draft that contain something other than
// whitespace. The sequence may be ranged over any number of times.
func PrepareLines(draft string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range strings.Split(draft, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Decorate prefixes every line after the first with a glyph from table,
// chosen as table[(i-1) mod len(table)]. The first line is the message's
// question and is never decorated. An empty table passes lines through.
func Decorate(lines iter.Seq[string], table DecorationTable) iter.Seq[string] {
	if len(table) == 0 {
		return lines
	}
	return func(yield func(string) bool) {
		index := 0
		for line := range lines {
			out := line
			if index > 0 {
				out = table[(index-1)%len(table)] + " " + line
			}
			index++
			if !yield(out) {
				return
			}
		}
	}
}

// BuildExport produces the clipboard text for draft in the given flavor on
// the given platform.
func BuildExport(draft string, flavor Flavor, platform Platform, tables DecorationTables) string {
	lines := PrepareLines(draft)
	if flavor == FlavorSlack {
		lines = Decorate(lines, tables.For(platform))
	}
	var out []string
	for line := range lines {
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
