package highlight

import (
	"regexp"
	"strings"

	"github.com/fatih/color"

	"github.com/codestation/huginn-mode/pkg/editor"
	"github.com/codestation/huginn-mode/pkg/mode"
)

// escapeRegex matches backslash escapes and {} / {:0} format placeholders.
var escapeRegex = regexp.MustCompile(`\\.|\{:?[0-9]*\}`)

// Render paints one line. tokens must come from scanning line, as their
// byte offsets index into it.
func Render(line string, tokens []mode.Token, scheme Scheme) string {
	var b strings.Builder
	for _, tok := range tokens {
		text := line[tok.Start:tok.End]
		cat := tok.Category
		if cat == mode.None && tok.Punct != "" {
			cat = Punctuation
		}
		if cat == mode.String && scheme[Escape] != nil {
			renderString(&b, text, scheme[cat], scheme[Escape])
			continue
		}
		b.WriteString(paint(scheme[cat], text))
	}
	return b.String()
}

// RenderDocument paints every line of d.
func RenderDocument(d *editor.Document, scheme Scheme) (string, error) {
	lines := make([]string, d.Len())
	for i := range lines {
		tokens, err := d.Tokens(i)
		if err != nil {
			return "", err
		}
		line, _ := d.Line(i)
		lines[i] = Render(line, tokens, scheme)
	}
	return strings.Join(lines, "\n"), nil
}

func renderString(b *strings.Builder, text string, base, esc *color.Color) {
	last := 0
	for _, loc := range escapeRegex.FindAllStringIndex(text, -1) {
		b.WriteString(paint(base, text[last:loc[0]]))
		b.WriteString(paint(esc, text[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(paint(base, text[last:]))
}

func paint(c *color.Color, text string) string {
	if c == nil || text == "" {
		return text
	}
	return c.Sprint(text)
}
