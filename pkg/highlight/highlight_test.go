package highlight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codestation/huginn-mode/pkg/editor"
	"github.com/codestation/huginn-mode/pkg/huginn"
	"github.com/codestation/huginn-mode/pkg/mode"
)

func forceColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })
}

func renderLine(line string, scheme Scheme) string {
	m := huginn.New()
	return Render(line, m.TokenizeLine(line, 1, m.StartState(0)), scheme)
}

func TestRenderPlainWithoutColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	line := `if (x_ != none) { print("a\n{}"); } // done`
	assert.Equal(t, line, renderLine(line, DefaultScheme()))
}

func TestRenderEmptySchemeIsIdentity(t *testing.T) {
	forceColor(t)
	line := "\tclass Point { _x = 0x1F; }"
	assert.Equal(t, line, renderLine(line, Scheme{}))
}

func TestRenderCategories(t *testing.T) {
	forceColor(t)
	scheme := DefaultScheme()

	got := renderLine("while x", scheme)
	assert.Equal(t, "\x1b[93mwhile\x1b[0m x", got)

	got = renderLine("a = 1;", scheme)
	expected := "a " + scheme[mode.Operator].Sprint("=") + " " +
		scheme[mode.Number].Sprint("1") + scheme[Punctuation].Sprint(";")
	assert.Equal(t, expected, got)
}

func TestRenderStringEscapes(t *testing.T) {
	forceColor(t)
	scheme := DefaultScheme()
	str, esc := scheme[mode.String], scheme[Escape]

	got := renderLine(`"a\tb{:0}c"`, scheme)
	expected := str.Sprint(`"a`) + esc.Sprint(`\t`) + str.Sprint("b") +
		esc.Sprint("{:0}") + str.Sprint(`c"`)
	assert.Equal(t, expected, got)

	delete(scheme, Escape)
	assert.Equal(t, str.Sprint(`"a\tb"`), renderLine(`"a\tb"`, scheme))
}

func TestRenderDocument(t *testing.T) {
	forceColor(t)
	scheme := Scheme{mode.Comment: color.New(color.FgHiCyan)}
	d := editor.New(huginn.New(), "x /* a\nb */ y")

	got, err := RenderDocument(d, scheme)
	require.NoError(t, err)

	c := scheme[mode.Comment]
	assert.Equal(t, "x "+c.Sprint("/* a")+"\n"+c.Sprint("b */")+" y", got)
}

func TestParseColor(t *testing.T) {
	forceColor(t)

	c, err := ParseColor("hi_red bold")
	require.NoError(t, err)
	assert.Equal(t, "\x1b[91;1mx\x1b[0m", c.Sprint("x"))

	_, err = ParseColor("sparkly")
	assert.Error(t, err)
	_, err = ParseColor("  ")
	assert.Error(t, err)
}

func TestLoadScheme(t *testing.T) {
	forceColor(t)

	scheme, err := LoadScheme([]byte("keyword: blue\ncomment: none\n"))
	require.NoError(t, err)
	assert.Equal(t, color.New(color.FgBlue).Sprint("k"), scheme[mode.Keyword].Sprint("k"))
	assert.NotContains(t, scheme, mode.Comment)
	assert.Contains(t, scheme, Escape)

	tests := []struct {
		name string
		data string
	}{
		{"Unknown category", "sparkle: red"},
		{"Unknown color", "keyword: sparkly"},
		{"Invalid YAML", "keyword: [red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScheme([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadSchemeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scheme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("escape: hi_yellow underline\n"), 0o644))

	scheme, err := LoadSchemeFile(path)
	require.NoError(t, err)
	assert.Contains(t, scheme, Escape)

	_, err = LoadSchemeFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
