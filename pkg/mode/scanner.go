package mode

import (
	"regexp"
	"unicode/utf8"
)

// Regular expressions for token matching. All are anchored at the cursor.
var (
	dollarNumberRegex = regexp.MustCompile(`^(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
	radixNumberRegex  = regexp.MustCompile(`^(?:[bB][01]+|[oO][0-7]+|[xX][0-9a-fA-F]+)`)
	decimalTailRegex  = regexp.MustCompile(`^\d*(?:\.\d*)?(?:[eE][-+]?\d+)?`)

	constantRegex = regexp.MustCompile(`^[A-Z][A-Z0-9]*(?:_[A-Z0-9]+)+$`)
	classRegex    = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	fieldRegex    = regexp.MustCompile(`^_[a-zA-Z0-9]\w*$`)
	argumentRegex = regexp.MustCompile(`^[a-zA-Z0-9]\w*_$`)
)

// step carries what one call to Token learned about the token besides
// its category.
type step struct {
	punc         rune // structural punctuation, 0 if none
	newStatement bool // a block keyword was scanned
}

// scanFunc scans one token. A non-nil scanFunc stored in State.tokenize
// is a suspended sub-scanner resumed on the next line.
type scanFunc func(m *Mode, s *Stream, st *State, sp *step) Category

// tokenBase is the default scanner; the first matching rule wins.
func tokenBase(m *Mode, s *Stream, st *State, sp *step) Category {
	cfg := m.cfg
	ch, _ := s.Next()

	if hook, ok := cfg.Hooks.(CharScanner); ok {
		if c, ok := hook.ScanChar(ch, s, st); ok {
			return c
		}
		s.pos = s.start + utf8.RuneLen(ch)
	}

	if ch == '"' || ch == '\'' {
		st.tokenize = stringScanner(ch)
		return st.tokenize(m, s, st, sp)
	}
	if cfg.IsPunctuation(ch) {
		sp.punc = ch
		return None
	}
	if ch == '$' && s.Match(dollarNumberRegex, true) {
		return Number
	}
	if ch == '0' && s.Match(radixNumberRegex, true) {
		return Number
	}
	if cfg.IsDigit(ch) {
		s.Match(decimalTailRegex, true)
		return Number
	}
	if ch == '/' {
		if s.EatRune('*') {
			st.tokenize = tokenComment
			return tokenComment(m, s, st, sp)
		}
		if s.EatRune('/') {
			s.SkipToEnd()
			return Comment
		}
	}
	if cfg.IsOperator(ch) {
		for !s.MatchString("//", false) && !s.MatchString("/*", false) && s.Eat(cfg.IsOperator) {
		}
		return Operator
	}

	s.EatWhile(m.isWordChar)
	if cfg.NamespaceSeparator != nil {
		for s.Match(cfg.NamespaceSeparator, true) {
			s.EatWhile(m.isWordChar)
		}
	}
	return m.classify(s.Current(), sp)
}

// classify maps identifier text to a category. Vocabulary sets are
// consulted before the naming-convention patterns.
func (m *Mode) classify(word string, sp *step) Category {
	cfg := m.cfg
	switch {
	case cfg.contains(cfg.Keywords, word):
		sp.newStatement = cfg.contains(cfg.BlockKeywords, word)
		return Keyword
	case cfg.contains(cfg.Types, word):
		return Type
	case cfg.contains(cfg.Builtins, word):
		sp.newStatement = cfg.contains(cfg.BlockKeywords, word)
		return Builtin
	case cfg.contains(cfg.Atoms, word):
		return Atom
	case cfg.contains(cfg.Imports, word):
		return Import
	case cfg.contains(cfg.Magic, word):
		return Magic
	case constantRegex.MatchString(word):
		return Constant
	case classRegex.MatchString(word):
		return Class
	case fieldRegex.MatchString(word):
		return Field
	case argumentRegex.MatchString(word):
		return Argument
	}
	return Variable
}

// isWordChar excludes operator and punctuation characters so that
// dialects with non-ASCII operators still split identifiers correctly.
func (m *Mode) isWordChar(r rune) bool {
	return m.cfg.IsIdentifier(r) && !m.cfg.IsOperator(r) && !m.cfg.IsPunctuation(r)
}

// stringScanner scans up to the matching unescaped quote. A backslash
// escapes the next character only.
func stringScanner(quote rune) scanFunc {
	return func(m *Mode, s *Stream, st *State, _ *step) Category {
		escaped, end := false, false
		for {
			r, ok := s.Next()
			if !ok {
				break
			}
			if r == quote && !escaped {
				end = true
				break
			}
			escaped = !escaped && r == '\\'
		}
		if end || !(escaped || m.cfg.MultiLineStrings) {
			st.tokenize = nil
		}
		return String
	}
}

func tokenComment(_ *Mode, s *Stream, st *State, _ *step) Category {
	maybeEnd := false
	for {
		r, ok := s.Next()
		if !ok {
			break
		}
		if r == '/' && maybeEnd {
			st.tokenize = nil
			break
		}
		maybeEnd = r == '*'
	}
	return Comment
}
