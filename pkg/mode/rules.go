package mode

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// RulesFile represents the structure of a YAML rules file.
type RulesFile struct {
	Name string `yaml:"name,omitempty"`
	MIME string `yaml:"mime,omitempty"`

	Keywords      []string `yaml:"keywords,omitempty"`
	BlockKeywords []string `yaml:"block_keywords,omitempty"`
	Types         []string `yaml:"types,omitempty"`
	Builtins      []string `yaml:"builtins,omitempty"`
	Atoms         []string `yaml:"atoms,omitempty"`
	Imports       []string `yaml:"imports,omitempty"`
	Magic         []string `yaml:"magic,omitempty"`

	CaseInsensitive bool `yaml:"case_insensitive,omitempty"`

	// Character classes, each given as the literal set of characters.
	Operators   string `yaml:"operators,omitempty"`
	Punctuation string `yaml:"punctuation,omitempty"`
	Terminators string `yaml:"terminators,omitempty"`

	NamespaceSeparator string `yaml:"namespace_separator,omitempty"`

	Options OptionRules `yaml:"options,omitempty"`
}

// OptionRules holds indentation options. Nil fields keep the base value.
type OptionRules struct {
	IndentUnit          *int  `yaml:"indent_unit,omitempty"`
	StatementIndentUnit *int  `yaml:"statement_indent_unit,omitempty"`
	TabSize             *int  `yaml:"tab_size,omitempty"`
	UseTabs             *bool `yaml:"use_tabs,omitempty"`
	MultiLineStrings    *bool `yaml:"multi_line_strings,omitempty"`
	IndentStatements    *bool `yaml:"indent_statements,omitempty"`
	IndentSwitch        *bool `yaml:"indent_switch,omitempty"`
	DontAlignCalls      *bool `yaml:"dont_align_calls,omitempty"`
}

// LoadRulesFile loads and parses a YAML rules file.
func LoadRulesFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", filename, err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML in rules file '%s': %w", filename, err)
	}
	return rules, nil
}

// ParseRules decodes rules from YAML.
func ParseRules(data []byte) (*RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	return &rules, nil
}

// Marshal encodes the rules as YAML.
func (r *RulesFile) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// ApplyRules applies the rules on top of base and returns a new Config.
// Non-empty lists replace the corresponding base set.
// Returns an error if a word ends up in two vocabulary sets.
func ApplyRules(base *Config, rules *RulesFile) (*Config, error) {
	cfg := base.Clone()

	if rules.Name != "" {
		cfg.Name = rules.Name
	}
	if rules.MIME != "" {
		cfg.MIME = rules.MIME
	}
	if rules.CaseInsensitive {
		cfg.CaseInsensitive = true
	}

	lower := cfg.CaseInsensitive
	for _, r := range []struct {
		dst  *Words
		list []string
	}{
		{&cfg.Keywords, rules.Keywords},
		{&cfg.BlockKeywords, rules.BlockKeywords},
		{&cfg.Types, rules.Types},
		{&cfg.Builtins, rules.Builtins},
		{&cfg.Atoms, rules.Atoms},
		{&cfg.Imports, rules.Imports},
		{&cfg.Magic, rules.Magic},
	} {
		if len(r.list) > 0 {
			*r.dst = make(Words, len(r.list))
			for _, word := range r.list {
				(*r.dst)[word] = true
			}
		}
		if lower {
			*r.dst = lowerWords(*r.dst)
		}
	}

	if rules.Operators != "" {
		cfg.IsOperator = AnyOf(rules.Operators)
	}
	if rules.Punctuation != "" {
		cfg.IsPunctuation = AnyOf(rules.Punctuation)
	}
	if rules.Terminators != "" {
		cfg.IsTerminator = AnyOf(rules.Terminators)
	}
	if rules.NamespaceSeparator != "" {
		re, err := regexp.Compile("^(?:" + rules.NamespaceSeparator + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid namespace separator %q: %w", rules.NamespaceSeparator, err)
		}
		cfg.NamespaceSeparator = re
	}

	opts := rules.Options
	setInt(&cfg.IndentUnit, opts.IndentUnit)
	setInt(&cfg.StatementIndentUnit, opts.StatementIndentUnit)
	setInt(&cfg.TabSize, opts.TabSize)
	setBool(&cfg.UseTabs, opts.UseTabs)
	setBool(&cfg.MultiLineStrings, opts.MultiLineStrings)
	setBool(&cfg.IndentStatements, opts.IndentStatements)
	setBool(&cfg.IndentSwitch, opts.IndentSwitch)
	setBool(&cfg.DontAlignCalls, opts.DontAlignCalls)

	if err := CheckVocabulary(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CheckVocabulary reports a word defined in more than one vocabulary set.
// Block keywords are a marker over keywords and builtins and are not checked.
func CheckVocabulary(cfg *Config) error {
	sets := []struct {
		name  string
		words Words
	}{
		{"keywords", cfg.Keywords},
		{"types", cfg.Types},
		{"builtins", cfg.Builtins},
		{"atoms", cfg.Atoms},
		{"imports", cfg.Imports},
		{"magic", cfg.Magic},
	}

	wordSources := make(map[string]string)
	for _, set := range sets {
		for _, word := range set.words.Sorted() {
			if existing, exists := wordSources[word]; exists {
				return fmt.Errorf("word '%s' is defined in both %s and %s rules", word, existing, set.name)
			}
			wordSources[word] = set.name
		}
	}

	for _, word := range cfg.BlockKeywords.Sorted() {
		if src := wordSources[word]; src != "keywords" && src != "builtins" {
			return fmt.Errorf("block keyword '%s' is neither a keyword nor a builtin", word)
		}
	}
	return nil
}

// RulesFromConfig exports the vocabulary and options of cfg. Character
// classes are predicates and cannot be recovered, so callers pass the
// literal sets they were built from.
func RulesFromConfig(cfg *Config, operators, punctuation, terminators string) *RulesFile {
	rules := &RulesFile{
		Name:            cfg.Name,
		MIME:            cfg.MIME,
		Keywords:        cfg.Keywords.Sorted(),
		BlockKeywords:   cfg.BlockKeywords.Sorted(),
		Types:           cfg.Types.Sorted(),
		Builtins:        cfg.Builtins.Sorted(),
		Atoms:           cfg.Atoms.Sorted(),
		Imports:         cfg.Imports.Sorted(),
		Magic:           cfg.Magic.Sorted(),
		CaseInsensitive: cfg.CaseInsensitive,
		Operators:       operators,
		Punctuation:     punctuation,
		Terminators:     terminators,
		Options: OptionRules{
			IndentUnit:          &cfg.IndentUnit,
			StatementIndentUnit: &cfg.StatementIndentUnit,
			TabSize:             &cfg.TabSize,
			UseTabs:             &cfg.UseTabs,
			MultiLineStrings:    &cfg.MultiLineStrings,
			IndentStatements:    &cfg.IndentStatements,
			IndentSwitch:        &cfg.IndentSwitch,
			DontAlignCalls:      &cfg.DontAlignCalls,
		},
	}
	if cfg.NamespaceSeparator != nil {
		sep := cfg.NamespaceSeparator.String()
		sep = strings.TrimSuffix(strings.TrimPrefix(sep, "^(?:"), ")")
		rules.NamespaceSeparator = strings.TrimPrefix(sep, "^")
	}
	return rules
}

func lowerWords(w Words) Words {
	out := make(Words, len(w))
	for word := range w {
		out[strings.ToLower(word)] = true
	}
	return out
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
