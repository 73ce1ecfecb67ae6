package mode

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrPass is returned by Indent when the state is inside a string or
// comment continuation and the host should keep its own indentation.
var ErrPass = errors.New("mode: no indentation opinion")

var (
	caseLabelRegex      = regexp.MustCompile(`^(?:case|default)\b`)
	electricSwitchRegex = regexp.MustCompile(`^\s*(?:case .*?:|default:|\{\}?|\})$`)
	electricBraceRegex  = regexp.MustCompile(`^\s*[{}]$`)
)

// Mode is a configured tokenizer. It holds no per-document state and may
// be shared by any number of documents.
type Mode struct {
	cfg *Config
}

// New creates a mode for cfg, filling unset classifiers with the C-family defaults.
func New(cfg *Config) *Mode {
	def := DefaultConfig()
	if cfg == nil {
		cfg = def
	}
	c := cfg.Clone()
	if c.IsPunctuation == nil {
		c.IsPunctuation = def.IsPunctuation
	}
	if c.IsOperator == nil {
		c.IsOperator = def.IsOperator
	}
	if c.IsTerminator == nil {
		c.IsTerminator = def.IsTerminator
	}
	if c.IsDigit == nil {
		c.IsDigit = def.IsDigit
	}
	if c.IsIdentifier == nil {
		c.IsIdentifier = def.IsIdentifier
	}
	if c.IndentUnit <= 0 {
		c.IndentUnit = def.IndentUnit
	}
	if c.TabSize <= 0 {
		c.TabSize = def.TabSize
	}
	return &Mode{cfg: c}
}

// Config returns the mode's dialect description.
func (m *Mode) Config() *Config { return m.cfg }

// StartState returns the state for the first line of a document whose
// content starts at baseColumn.
func (m *Mode) StartState(baseColumn int) *State {
	return &State{
		contexts: []Context{{
			Indented: baseColumn - m.cfg.IndentUnit,
			Type:     TopContext,
			Align:    AlignFalse,
		}},
		StartOfLine: true,
	}
}

// Token scans the next token from s and returns its category.
func (m *Mode) Token(s *Stream, st *State) Category {
	c, _ := m.token(s, st)
	return c
}

func (m *Mode) token(s *Stream, st *State) (Category, rune) {
	ctx := len(st.contexts) - 1
	if s.SOL() {
		if st.contexts[ctx].Align == AlignUnknown {
			st.contexts[ctx].Align = AlignFalse
		}
		st.Indented = s.Indentation()
		st.StartOfLine = true
	}
	s.mark()
	if s.EatSpace() {
		return None, 0
	}

	var sp step
	scan := st.tokenize
	if scan == nil {
		scan = tokenBase
	}
	style := scan(m, s, st, &sp)
	if style == Comment {
		return style, 0
	}
	if st.contexts[ctx].Align == AlignUnknown {
		st.contexts[ctx].Align = AlignTrue
	}

	m.track(s, st, style, sp)

	if hook, ok := m.cfg.Hooks.(TokenRewriter); ok {
		if c, ok := hook.RewriteToken(s, st, style); ok {
			style = c
		}
	}

	st.StartOfLine = false
	switch {
	case style != None:
		st.PrevToken = string(style)
	case sp.punc != 0:
		st.PrevToken = string(sp.punc)
	default:
		st.PrevToken = ""
	}
	return style, sp.punc
}

// track applies the context transitions for one scanned token.
func (m *Mode) track(s *Stream, st *State, style Category, sp step) {
	top := st.Top()
	switch {
	case sp.punc != 0 && m.cfg.IsTerminator(sp.punc):
		st.popImplicit()
	case closerFor[string(sp.punc)] != "":
		st.pushContext(s.Column(), closerFor[string(sp.punc)], "")
	case sp.punc == '}':
		st.closeBlock()
	case sp.punc != 0 && string(sp.punc) == string(top.Type):
		st.popContext()
	case m.cfg.IndentStatements &&
		(((top.Type == BraceContext || top.Type == TopContext) && sp.punc != ';') ||
			(top.Type.Implicit() && sp.newStatement)):
		cur := s.Current()
		typ := StatementContext
		if sp.newStatement && m.cfg.IndentSwitch && cur == m.cfg.SwitchKeyword {
			typ = SwitchContext
		} else if style == Keyword && m.cfg.NamespaceKeyword != "" && cur == m.cfg.NamespaceKeyword {
			typ = NamespaceContext
		}
		st.pushContext(s.Column(), typ, cur)
	}
}

// Indent returns the column the next line should start at, given the
// state after the previous line and the text the next line begins with.
func (m *Mode) Indent(st *State, textAfter string) (int, error) {
	if st.tokenize != nil {
		return 0, ErrPass
	}
	textAfter = strings.TrimLeftFunc(textAfter, unicode.IsSpace)
	first, _ := utf8.DecodeRuneInString(textAfter)

	i := len(st.contexts) - 1
	ctx := st.contexts[i]
	if ctx.Type.Implicit() && first == '}' && i > 0 {
		i--
		ctx = st.contexts[i]
	}
	if hook, ok := m.cfg.Hooks.(IndentAdvisor); ok {
		if n, ok := hook.Indent(st, ctx, textAfter, m.cfg.IndentUnit); ok {
			return n, nil
		}
	}

	closing := textAfter != "" && string(first) == string(ctx.Type)
	switchBlock := i > 0 && st.contexts[i-1].Type == SwitchContext
	unit, stmt := m.cfg.IndentUnit, m.cfg.statementUnit()

	switch {
	case ctx.Type.Implicit():
		if first == '{' {
			return ctx.Indented, nil
		}
		return ctx.Indented + stmt, nil
	case ctx.Align == AlignTrue && (!m.cfg.DontAlignCalls || ctx.Type != ParenContext):
		if closing {
			return ctx.Column, nil
		}
		return ctx.Column + 1, nil
	case ctx.Type == ParenContext && !closing:
		return ctx.Indented + stmt, nil
	}

	n := ctx.Indented
	if !closing {
		n += unit
		if switchBlock && !caseLabelRegex.MatchString(textAfter) {
			n += unit
		}
	}
	return n, nil
}

// TokenizeLine scans a whole line, advancing st, and returns every token
// including whitespace runs. lineNo is used for spans only.
func (m *Mode) TokenizeLine(line string, lineNo int, st *State) []Token {
	s := NewStream(line, m.cfg.TabSize)
	var tokens []Token
	col := 1
	for !s.EOL() {
		c, punc := m.token(s, st)
		if s.pos == s.start {
			s.Next()
		}
		text := s.Current()
		end := col + utf8.RuneCountInString(text)
		tok := Token{
			Text:     text,
			Category: c,
			Span:     Span{Position{lineNo, col}, Position{lineNo, end}},
			Start:    s.start,
			End:      s.pos,
		}
		if punc != 0 {
			tok.Punct = string(punc)
		}
		tokens = append(tokens, tok)
		col = end
	}
	return tokens
}

// ElectricInput matches line content after which the host should
// re-indent the line.
func (m *Mode) ElectricInput() *regexp.Regexp {
	if m.cfg.IndentSwitch {
		return electricSwitchRegex
	}
	return electricBraceRegex
}

// LineComment returns the line comment delimiter.
func (m *Mode) LineComment() string { return "//" }

// BlockComment returns the block comment delimiters.
func (m *Mode) BlockComment() (start, end string) { return "/*", "*/" }

// Fold names the folding strategy used by hosts.
func (m *Mode) Fold() string { return "brace" }
