package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indentAfter(t *testing.T, m *Mode, textAfter string, lines ...string) int {
	t.Helper()
	st := m.StartState(0)
	feed(m, st, lines...)
	n, err := m.Indent(st, textAfter)
	require.NoError(t, err)
	return n
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		textAfter string
		expected  int
	}{
		{"Empty document", nil, "x", 0},
		{"After complete statement", []string{"x = 1;"}, "y", 0},
		{"Inside block", []string{"foo {"}, "x", 4},
		{"Closing block", []string{"foo {"}, "}", 0},
		{"Nested block", []string{"foo {", "    bar {"}, "x", 8},
		{"Indented opener", []string{"    foo {"}, "", 8},
		{"Statement continuation", []string{"x = 1 +"}, "2", 4},
		{"Continuation opening a block", []string{"if (x)"}, "{", 0},
		{"Dangling statement before brace", []string{"{", "    foo"}, "}", 0},
		{"Aligned call argument", []string{"foo(a,"}, "b)", 4},
		{"Aligned call close", []string{"foo(a,"}, ")", 3},
		{"Unaligned call argument", []string{"foo("}, "a", 4},
		{"Aligned list", []string{"x = [1,"}, "2", 5},
		{"Case label in switch", []string{"switch (x) {"}, "case 1:", 4},
		{"Default label in switch", []string{"switch (x) {"}, "default:", 4},
		{"Case body", []string{"switch (x) {", "    case 1:"}, "foo();", 8},
		{"Switch close", []string{"switch (x) {", "    case 1:", "        foo();"}, "}", 0},
		{"After closed block", []string{"if (x) {", "    foo();", "}"}, "bar", 0},
		{"Nested unbraced statement", []string{"while (x)", "    if (y)"}, "z();", 8},
		{"Three unbraced statements", []string{"if (a)", "    if (b)", "        if (c)"}, "d();", 12},
		{"Block inside unbraced statement", []string{"while (x)", "    if (y) {"}, "z();", 8},
		{"Block close inside unbraced statement", []string{"while (x)", "    if (y) {", "        z();"}, "}", 4},
		{"Brace on its own line after nested statement", []string{"while (x)", "    if (y)"}, "{", 4},
	}

	m := New(testConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, indentAfter(t, m, tt.textAfter, tt.lines...))
		})
	}
}

func TestIndentBaseColumn(t *testing.T) {
	m := New(testConfig())
	st := m.StartState(8)
	n, err := m.Indent(st, "x")
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestIndentDontAlignCalls(t *testing.T) {
	cfg := testConfig()
	cfg.DontAlignCalls = true
	m := New(cfg)
	assert.Equal(t, 4, indentAfter(t, m, "b)", "foo(a,"))
}

func TestIndentStatementUnit(t *testing.T) {
	cfg := testConfig()
	cfg.StatementIndentUnit = 2
	m := New(cfg)
	assert.Equal(t, 2, indentAfter(t, m, "2", "x = 1 +"))
	assert.Equal(t, 4, indentAfter(t, m, "x", "foo {"))
}

func TestIndentSwitchDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.IndentSwitch = false
	m := New(cfg)
	assert.Equal(t, 4, indentAfter(t, m, "foo();", "switch (x) {", "case 1:"))
}

func TestIndentPassesInsideContinuations(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"Block comment", []string{"/* open"}},
		{"Escaped string", []string{`x = "abc\`}},
	}

	m := New(testConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := m.StartState(0)
			feed(m, st, tt.lines...)
			_, err := m.Indent(st, "x")
			assert.ErrorIs(t, err, ErrPass)
		})
	}
}

type fixedIndent struct{}

func (fixedIndent) Indent(_ *State, ctx Context, textAfter string, unit int) (int, bool) {
	if len(textAfter) > 0 && textAfter[0] == '#' {
		return 0, true
	}
	return 0, false
}

func TestIndentAdvisorHook(t *testing.T) {
	cfg := testConfig()
	cfg.Hooks = fixedIndent{}
	m := New(cfg)

	assert.Equal(t, 0, indentAfter(t, m, "#pragma", "foo {"))
	assert.Equal(t, 4, indentAfter(t, m, "x", "foo {"))
}

func TestNewFillsDefaults(t *testing.T) {
	m := New(&Config{})
	cfg := m.Config()
	assert.Equal(t, 4, cfg.IndentUnit)
	assert.Equal(t, 4, cfg.TabSize)
	require.NotNil(t, cfg.IsOperator)
	assert.True(t, cfg.IsOperator('+'))

	assert.Equal(t, "clike", New(nil).Config().Name)
}

func TestNewClonesConfig(t *testing.T) {
	cfg := testConfig()
	m := New(cfg)
	cfg.Keywords["extra"] = true
	assert.False(t, m.Config().Keywords["extra"])
}

func TestElectricInput(t *testing.T) {
	m := New(testConfig())
	re := m.ElectricInput()
	assert.True(t, re.MatchString("    }"))
	assert.True(t, re.MatchString("  case 1:"))
	assert.True(t, re.MatchString("default:"))
	assert.False(t, re.MatchString("foo();"))

	cfg := testConfig()
	cfg.IndentSwitch = false
	re = New(cfg).ElectricInput()
	assert.True(t, re.MatchString("  {"))
	assert.False(t, re.MatchString("case 1:"))
}

func TestCommentDelimiters(t *testing.T) {
	m := New(nil)
	assert.Equal(t, "//", m.LineComment())
	start, end := m.BlockComment()
	assert.Equal(t, "/*", start)
	assert.Equal(t, "*/", end)
	assert.Equal(t, "brace", m.Fold())
}

func TestConfigOpensBlock(t *testing.T) {
	cfg := testConfig()
	assert.True(t, cfg.OpensBlock("while"))
	assert.False(t, cfg.OpensBlock("return"))
	assert.False(t, cfg.OpensBlock("WHILE"))

	cfg.CaseInsensitive = true
	assert.True(t, cfg.OpensBlock("WHILE"))
}
