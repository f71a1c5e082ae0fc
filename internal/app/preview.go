package app

import (
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/treykane/chousei/internal/composer"
)

// emojiShortcode matches Slack-style shortcodes such as ":one:" or
// ":keycap_ten:".
var emojiShortcode = regexp.MustCompile(`:[a-z0-9_+\-]+:`)

var (
	// rendererMu guards rendererCache and glyphCache. A renderer parses the
	// whole style sheet, so one is kept per style.
	rendererMu    sync.Mutex
	rendererCache = map[string]*glamour.TermRenderer{}
	glyphCache    = map[string]string{}
)

// refreshPreview re-renders the Slack preview from the session draft for the
// platform detected right now.
func (m *Model) refreshPreview() {
	if m.preview.Width <= 0 || m.preview.Height <= 0 {
		return
	}
	platform := m.probe.Capability().Platform()
	text := composer.BuildExport(m.state.Draft, composer.FlavorSlack, platform, m.tables)
	m.preview.SetContent(renderSlackPreview(text, m.preview.Width))
	m.preview.GotoBottom()
}

// renderSlackPreview shows export text the way Slack will: one block per
// line, wrapped to width, with emoji shortcodes replaced by their glyphs.
// The text itself is never parsed as markdown, so "09:00~10:00" and a
// leading "#" stay literal.
func renderSlackPreview(text string, width int) string {
	if text == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	style := previewStyleName()
	block := lipgloss.NewStyle().Width(width)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = emojiShortcode.ReplaceAllStringFunc(line, func(code string) string {
			return emojiGlyph(style, code)
		})
		lines[i] = block.Render(line)
	}
	return strings.Join(lines, "\n")
}

// emojiGlyph renders a single shortcode through glamour's emoji extension.
// Unknown shortcodes come back unchanged.
func emojiGlyph(style, code string) string {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	key := style + "\x00" + code
	if glyph, ok := glyphCache[key]; ok {
		return glyph
	}

	glyph := code
	renderer, err := rendererFor(style)
	if err != nil {
		appLog.Warn("build preview renderer", "style", style, "error", err)
		return code
	}
	if out, err := renderer.Render(code); err == nil {
		if rendered := strings.TrimSpace(ansi.Strip(out)); rendered != "" {
			glyph = rendered
		}
	} else {
		appLog.Debug("render emoji", "code", code, "error", err)
	}
	glyphCache[key] = glyph
	return glyph
}

// rendererFor returns the cached renderer for style. Callers hold rendererMu.
func rendererFor(style string) (*glamour.TermRenderer, error) {
	if renderer, ok := rendererCache[style]; ok {
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(style),
		glamour.WithWordWrap(80),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}
	rendererCache[style] = renderer
	return renderer, nil
}

// previewStyleName picks the preview style from CHOUSEI_GLAMOUR_STYLE, then
// GLAMOUR_STYLE, defaulting to "dark". Unknown names fall back to "dark".
func previewStyleName() string {
	style := strings.ToLower(strings.TrimSpace(os.Getenv("CHOUSEI_GLAMOUR_STYLE")))
	if style == "" {
		style = strings.ToLower(strings.TrimSpace(os.Getenv("GLAMOUR_STYLE")))
	}
	switch style {
	case "auto", "dark", "light", "notty", "ascii":
		return style
	default:
		return "dark"
	}
}

func glamourStyleOption(style string) glamour.TermRendererOption {
	if style == "auto" {
		return glamour.WithAutoStyle()
	}
	return glamour.WithStandardStyle(style)
}
