// Package huginn supplies the Huginn vocabulary and character classes to
// the clike engine and registers the dialect with the mode registry.
package huginn

import (
	"sort"
	"sync"

	"github.com/codestation/huginn-mode/pkg/mode"
)

const (
	Name = "Huginn"
	MIME = "text/x-huginn"
)

// Character classes of the dialect.
const (
	Operators   = "+-*/%^=<>!?|&@~⋀⋁∈∉≠≤≥¬"
	Punctuation = "[]{}(),;:."
	Terminators = ";:,"
)

var (
	keywords = "assert break case catch class constructor default destructor else " +
		"for if return super switch this throw try while"
	blockKeywords = "case catch class default else for if switch try while"
	types         = "blob boolean character deque dict integer list lookup number order real set string tuple"
	builtins      = "copy observe size type use"
	atoms         = "none true false"
	imports       = "import as"
	magic         = "bye doc exit imports lsmagic quit reset source"
)

// Config returns a fresh Huginn dialect description.
func Config() *mode.Config {
	cfg := mode.DefaultConfig()
	cfg.Name = Name
	cfg.MIME = MIME
	cfg.Keywords = mode.NewWords(keywords)
	cfg.BlockKeywords = mode.NewWords(blockKeywords)
	cfg.Types = mode.NewWords(types)
	cfg.Builtins = mode.NewWords(builtins)
	cfg.Atoms = mode.NewWords(atoms)
	cfg.Imports = mode.NewWords(imports)
	cfg.Magic = mode.NewWords(magic)
	cfg.IsOperator = mode.AnyOf(Operators)
	cfg.IsPunctuation = mode.AnyOf(Punctuation)
	cfg.IsTerminator = mode.AnyOf(Terminators)
	cfg.UseTabs = true
	return cfg
}

// New returns a Huginn mode.
func New() *mode.Mode {
	return mode.New(Config())
}

// WithRules returns a Huginn mode with a rules file applied on top.
func WithRules(rules *mode.RulesFile) (*mode.Mode, error) {
	cfg, err := mode.ApplyRules(Config(), rules)
	if err != nil {
		return nil, err
	}
	return mode.New(cfg), nil
}

// MakeRules exports the default dialect as a rules file.
func MakeRules() *mode.RulesFile {
	return mode.RulesFromConfig(Config(), Operators, Punctuation, Terminators)
}

// HintWords returns the completion words offered to editors: every
// keyword, type, builtin and atom.
func HintWords() []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range []string{keywords, types, builtins, atoms} {
		for word := range mode.NewWords(list) {
			if !seen[word] {
				seen[word] = true
				out = append(out, word)
			}
		}
	}
	sort.Strings(out)
	return out
}

var registerOnce struct {
	sync.Once
	err error
}

// Register associates the dialect with its MIME type. Safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		info := mode.Info{Name: Name, MIME: MIME, Mode: "clike", Ext: []string{"hgn"}}
		if err := mode.Register(info, New); err != nil {
			registerOnce.err = err
			return
		}
		registerOnce.err = mode.SetHintWords(MIME, HintWords())
	})
	return registerOnce.err
}
