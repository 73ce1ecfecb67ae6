package mode

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRules = `
name: Sample
mime: text/x-sample
keywords: [when, unless, loop]
block_keywords: [when, loop]
types: [int]
atoms: [nil]
operators: "+-=<>"
namespace_separator: "::"
options:
  indent_unit: 2
  use_tabs: true
  dont_align_calls: true
`

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]byte(sampleRules))
	require.NoError(t, err)

	assert.Equal(t, "Sample", rules.Name)
	assert.Equal(t, []string{"when", "unless", "loop"}, rules.Keywords)
	assert.Equal(t, "+-=<>", rules.Operators)
	require.NotNil(t, rules.Options.IndentUnit)
	assert.Equal(t, 2, *rules.Options.IndentUnit)
	assert.Nil(t, rules.Options.TabSize)
}

func TestParseRulesInvalidYAML(t *testing.T) {
	_, err := ParseRules([]byte("keywords: [unclosed"))
	assert.Error(t, err)
}

func TestApplyRules(t *testing.T) {
	rules, err := ParseRules([]byte(sampleRules))
	require.NoError(t, err)

	cfg, err := ApplyRules(testConfig(), rules)
	require.NoError(t, err)

	assert.Equal(t, "Sample", cfg.Name)
	assert.Equal(t, "text/x-sample", cfg.MIME)
	assert.Equal(t, []string{"loop", "unless", "when"}, cfg.Keywords.Sorted())
	assert.Equal(t, []string{"int"}, cfg.Types.Sorted())
	assert.Equal(t, 2, cfg.IndentUnit)
	assert.Equal(t, 4, cfg.TabSize)
	assert.True(t, cfg.UseTabs)
	assert.True(t, cfg.DontAlignCalls)

	// Sets absent from the rules keep their base values.
	assert.True(t, cfg.Builtins["size"])
	assert.True(t, cfg.IsOperator('='))
	assert.False(t, cfg.IsOperator('*'))
	require.NotNil(t, cfg.NamespaceSeparator)

	m := New(cfg)
	tokens := scanTokens(m, m.StartState(0), "loop a::b * nil")
	require.Len(t, tokens, 4)
	assert.Equal(t, Keyword, tokens[0].Category)
	assert.Equal(t, "a::b", tokens[1].Text)
	assert.Equal(t, Atom, tokens[3].Category)
}

func TestApplyRulesDoesNotModifyBase(t *testing.T) {
	base := testConfig()
	_, err := ApplyRules(base, &RulesFile{Keywords: []string{"only"}, BlockKeywords: []string{"only"}})
	require.NoError(t, err)
	assert.True(t, base.Keywords["while"])
	assert.False(t, base.Keywords["only"])
}

func TestApplyRulesCaseInsensitive(t *testing.T) {
	cfg, err := ApplyRules(testConfig(), &RulesFile{
		CaseInsensitive: true,
		Keywords:        []string{"BEGIN", "End"},
		BlockKeywords:   []string{"BEGIN"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "end"}, cfg.Keywords.Sorted())

	m := New(cfg)
	tokens := scanTokens(m, m.StartState(0), "Begin")
	require.Len(t, tokens, 1)
	assert.Equal(t, Keyword, tokens[0].Category)
}

func TestApplyRulesErrors(t *testing.T) {
	tests := []struct {
		name  string
		rules RulesFile
		err   string
	}{
		{
			name:  "Word in two sets",
			rules: RulesFile{Types: []string{"while"}},
			err:   "word 'while' is defined in both keywords and types rules",
		},
		{
			name:  "Block keyword outside keywords",
			rules: RulesFile{BlockKeywords: []string{"integer"}},
			err:   "block keyword 'integer' is neither a keyword nor a builtin",
		},
		{
			name:  "Invalid namespace separator",
			rules: RulesFile{NamespaceSeparator: "("},
			err:   "invalid namespace separator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyRules(testConfig(), &tt.rules)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestLoadRulesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRules), 0o644))

	rules, err := LoadRulesFile(path)
	require.NoError(t, err)
	assert.Equal(t, "text/x-sample", rules.MIME)

	_, err = LoadRulesFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rules file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("keywords: {"), 0o644))
	_, err = LoadRulesFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestRulesFromConfigRoundTrip(t *testing.T) {
	base := testConfig()
	base.NamespaceSeparator = regexp.MustCompile(`^(?:::)`)

	data, err := RulesFromConfig(base, "+-=", "[]{}(),;:.", ";:,").Marshal()
	require.NoError(t, err)

	rules, err := ParseRules(data)
	require.NoError(t, err)
	assert.Equal(t, "::", rules.NamespaceSeparator)
	assert.Equal(t, base.Keywords.Sorted(), rules.Keywords)

	cfg, err := ApplyRules(DefaultConfig(), rules)
	require.NoError(t, err)
	assert.Equal(t, base.Keywords, cfg.Keywords)
	assert.Equal(t, base.Magic, cfg.Magic)
	assert.Equal(t, base.IndentUnit, cfg.IndentUnit)
	assert.True(t, cfg.IsOperator('='))
	assert.False(t, cfg.IsOperator('*'))
}
