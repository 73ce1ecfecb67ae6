package mode

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Words is a set of reserved words.
type Words map[string]bool

// NewWords builds a set from a space separated list.
func NewWords(list string) Words {
	w := make(Words)
	for _, word := range strings.Fields(list) {
		w[word] = true
	}
	return w
}

// Sorted returns the words in lexical order.
func (w Words) Sorted() []string {
	out := make([]string, 0, len(w))
	for word := range w {
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}

// CharClass is a predicate over a single character.
type CharClass func(rune) bool

// AnyOf returns a CharClass matching any rune in chars.
func AnyOf(chars string) CharClass {
	return func(r rune) bool { return strings.ContainsRune(chars, r) }
}

// Config describes a dialect: its vocabulary, character classes,
// indentation options and optional hooks.
type Config struct {
	Name string
	MIME string

	Keywords      Words
	BlockKeywords Words // Keywords and builtins that open a new statement
	Types         Words
	Builtins      Words
	Atoms         Words
	Imports       Words
	Magic         Words

	// CaseInsensitive lowercases token text before lookup; word sets must
	// then hold lowercase entries.
	CaseInsensitive bool

	IsPunctuation CharClass
	IsOperator    CharClass
	IsTerminator  CharClass
	IsDigit       CharClass
	IsIdentifier  CharClass

	// NamespaceSeparator folds qualified names into one token when set.
	// It must be anchored with ^.
	NamespaceSeparator *regexp.Regexp

	IndentUnit          int
	StatementIndentUnit int // Defaults to IndentUnit
	TabSize             int
	UseTabs             bool
	MultiLineStrings    bool
	IndentStatements    bool
	IndentSwitch        bool
	DontAlignCalls      bool

	// SwitchKeyword opens a switchstatement scope; NamespaceKeyword opens a namespace scope.
	SwitchKeyword    string
	NamespaceKeyword string

	// Hooks may implement CharScanner, TokenRewriter and IndentAdvisor.
	Hooks any
}

// CharScanner overrides scanning for the characters it claims. ScanChar
// is called with the first character already consumed; returning false
// resumes default dispatch from the same position.
type CharScanner interface {
	ScanChar(ch rune, s *Stream, st *State) (Category, bool)
}

// TokenRewriter may replace the category of every styled token.
type TokenRewriter interface {
	RewriteToken(s *Stream, st *State, c Category) (Category, bool)
}

// IndentAdvisor may override the indentation computed for the next line.
type IndentAdvisor interface {
	Indent(st *State, ctx Context, textAfter string, unit int) (int, bool)
}

// DefaultConfig returns a config with the C-family character classes
// and an empty vocabulary.
func DefaultConfig() *Config {
	return &Config{
		Name:                "clike",
		Keywords:            Words{},
		BlockKeywords:       Words{},
		Types:               Words{},
		Builtins:            Words{},
		Atoms:               Words{},
		Imports:             Words{},
		Magic:               Words{},
		IsPunctuation:       AnyOf("[]{}(),;:."),
		IsOperator:          AnyOf("+-*&%=<>!?|/^~@"),
		IsTerminator:        AnyOf(";:,"),
		IsDigit:             unicode.IsDigit,
		IsIdentifier:        isIdentifierChar,
		IndentUnit:          4,
		StatementIndentUnit: 4,
		TabSize:             4,
		IndentStatements:    true,
		IndentSwitch:        true,
		SwitchKeyword:       "switch",
		NamespaceKeyword:    "namespace",
	}
}

// Clone returns a shallow copy with duplicated word sets.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Keywords = cloneWords(c.Keywords)
	cp.BlockKeywords = cloneWords(c.BlockKeywords)
	cp.Types = cloneWords(c.Types)
	cp.Builtins = cloneWords(c.Builtins)
	cp.Atoms = cloneWords(c.Atoms)
	cp.Imports = cloneWords(c.Imports)
	cp.Magic = cloneWords(c.Magic)
	return &cp
}

func (c *Config) statementUnit() int {
	if c.StatementIndentUnit > 0 {
		return c.StatementIndentUnit
	}
	return c.IndentUnit
}

// OpensBlock reports whether word is a block keyword of the dialect.
func (c *Config) OpensBlock(word string) bool {
	return c.contains(c.BlockKeywords, word)
}

func (c *Config) contains(w Words, word string) bool {
	if c.CaseInsensitive {
		word = strings.ToLower(word)
	}
	return w[word]
}

func isIdentifierChar(r rune) bool {
	return r == '_' || r == '$' || r >= 0xa1 || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func cloneWords(w Words) Words {
	out := make(Words, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
