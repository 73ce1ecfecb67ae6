package mode

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Stream is a cursor over a single line of text. The engine consumes
// exactly one token per call to Mode.Token; Current returns its text.
type Stream struct {
	line    string
	pos     int // byte offset of the cursor
	start   int // byte offset where the current token began
	tabSize int
}

// NewStream creates a stream over line. Tabs expand to tabSize columns.
func NewStream(line string, tabSize int) *Stream {
	if tabSize <= 0 {
		tabSize = 4
	}
	return &Stream{line: line, tabSize: tabSize}
}

// String returns the whole line.
func (s *Stream) String() string { return s.line }

// Pos returns the byte offset of the cursor.
func (s *Stream) Pos() int { return s.pos }

// Start returns the byte offset where the current token began.
func (s *Stream) Start() int { return s.start }

// SOL reports whether the cursor is at the start of the line.
func (s *Stream) SOL() bool { return s.pos == 0 }

// EOL reports whether the cursor is at the end of the line.
func (s *Stream) EOL() bool { return s.pos >= len(s.line) }

// Peek returns the next rune without consuming it.
func (s *Stream) Peek() (rune, bool) {
	if s.EOL() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s.line[s.pos:])
	return r, true
}

// Next consumes and returns the next rune.
func (s *Stream) Next() (rune, bool) {
	if s.EOL() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s.line[s.pos:])
	s.pos += size
	return r, true
}

// Eat consumes the next rune if it satisfies pred.
func (s *Stream) Eat(pred func(rune) bool) bool {
	r, ok := s.Peek()
	if !ok || !pred(r) {
		return false
	}
	s.pos += utf8.RuneLen(r)
	return true
}

// EatRune consumes the next rune if it equals r.
func (s *Stream) EatRune(r rune) bool {
	return s.Eat(func(c rune) bool { return c == r })
}

// EatWhile consumes runes while pred holds and reports whether any were consumed.
func (s *Stream) EatWhile(pred func(rune) bool) bool {
	from := s.pos
	for s.Eat(pred) {
	}
	return s.pos > from
}

// EatSpace consumes whitespace and reports whether any was consumed.
func (s *Stream) EatSpace() bool {
	return s.EatWhile(unicode.IsSpace)
}

// SkipToEnd moves the cursor to the end of the line.
func (s *Stream) SkipToEnd() { s.pos = len(s.line) }

// Match tests re against the rest of the line. The expression must be
// anchored with ^. When consume is set a successful match is consumed.
func (s *Stream) Match(re *regexp.Regexp, consume bool) bool {
	loc := re.FindStringIndex(s.line[s.pos:])
	if loc == nil || loc[0] != 0 {
		return false
	}
	if consume {
		s.pos += loc[1]
	}
	return true
}

// MatchString tests for a literal prefix at the cursor.
func (s *Stream) MatchString(prefix string, consume bool) bool {
	if !strings.HasPrefix(s.line[s.pos:], prefix) {
		return false
	}
	if consume {
		s.pos += len(prefix)
	}
	return true
}

// BackUp moves the cursor back n bytes, never before the token start.
func (s *Stream) BackUp(n int) {
	s.pos -= n
	if s.pos < s.start {
		s.pos = s.start
	}
}

// Current returns the text of the token being scanned.
func (s *Stream) Current() string { return s.line[s.start:s.pos] }

// Column returns the visual column of the current token start.
func (s *Stream) Column() int { return countColumn(s.line[:s.start], s.tabSize) }

// Indentation returns the visual width of the line's leading whitespace.
func (s *Stream) Indentation() int {
	trimmed := strings.TrimLeftFunc(s.line, unicode.IsSpace)
	return countColumn(s.line[:len(s.line)-len(trimmed)], s.tabSize)
}

// mark starts a new token at the cursor.
func (s *Stream) mark() { s.start = s.pos }

func countColumn(text string, tabSize int) int {
	col := 0
	for _, r := range text {
		if r == '\t' {
			col += tabSize - col%tabSize
		} else {
			col++
		}
	}
	return col
}
