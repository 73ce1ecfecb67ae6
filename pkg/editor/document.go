// Package editor hosts the clike engine over a line buffer. A Document
// keeps the scanning state before every line, so edits only re-scan the
// lines below them.
package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/codestation/huginn-mode/pkg/mode"
)

// ErrLineOutOfRange is returned for a line index outside the document.
var ErrLineOutOfRange = errors.New("editor: line out of range")

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for re-tokenization traces.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithBaseColumn sets the column the document's content starts at.
func WithBaseColumn(col int) Option {
	return func(d *Document) { d.baseColumn = col }
}

// Document is a line buffer with an incrementally maintained token cache.
// It is not safe for concurrent use.
type Document struct {
	mode       *mode.Mode
	lines      []string
	baseColumn int
	logger     *zap.Logger

	// states[i] is the state before line i. Only a prefix is valid;
	// tokens[i] holds the tokens of line i for every i < len(states)-1.
	states []*mode.State
	tokens [][]mode.Token
}

// New creates a document holding text split on newlines.
func New(m *mode.Mode, text string, opts ...Option) *Document {
	d := &Document{
		mode:   m,
		lines:  strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.states = []*mode.State{m.StartState(d.baseColumn)}
	return d
}

// Mode returns the mode the document is scanned with.
func (d *Document) Mode() *mode.Mode { return d.mode }

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// Line returns the text of line i.
func (d *Document) Line(i int) (string, error) {
	if err := d.check(i, d.Len()); err != nil {
		return "", err
	}
	return d.lines[i], nil
}

// Text returns the whole document.
func (d *Document) Text() string { return strings.Join(d.lines, "\n") }

// SetLine replaces the text of line i.
func (d *Document) SetLine(i int, text string) error {
	if err := d.check(i, d.Len()); err != nil {
		return err
	}
	if d.lines[i] == text {
		return nil
	}
	d.lines[i] = text
	d.invalidate(i)
	return nil
}

// InsertLine inserts text before line i. i may equal Len to append.
func (d *Document) InsertLine(i int, text string) error {
	if err := d.check(i, d.Len()+1); err != nil {
		return err
	}
	d.lines = append(d.lines, "")
	copy(d.lines[i+1:], d.lines[i:])
	d.lines[i] = text
	d.invalidate(i)
	return nil
}

// DeleteLine removes line i.
func (d *Document) DeleteLine(i int) error {
	if err := d.check(i, d.Len()); err != nil {
		return err
	}
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
	d.invalidate(i)
	return nil
}

// Tokens returns the tokens of line i, whitespace runs included.
func (d *Document) Tokens(i int) ([]mode.Token, error) {
	if err := d.check(i, d.Len()); err != nil {
		return nil, err
	}
	d.ensure(i + 1)
	return d.tokens[i], nil
}

// StateAt returns a copy of the state before line i. i may equal Len,
// giving the state after the last line.
func (d *Document) StateAt(i int) (*mode.State, error) {
	if err := d.check(i, d.Len()+1); err != nil {
		return nil, err
	}
	d.ensure(i)
	return d.states[i].Copy(), nil
}

// IndentAt returns the column line i should start at. For i equal to
// Len it answers for a new empty line after the last one. The error is
// mode.ErrPass when line i continues a string or comment.
func (d *Document) IndentAt(i int) (int, error) {
	if err := d.check(i, d.Len()+1); err != nil {
		return 0, err
	}
	d.ensure(i)
	text := ""
	if i < d.Len() {
		text = d.lines[i]
	}
	return d.mode.Indent(d.states[i], text)
}

// Reindent rewrites the leading whitespace of every line and returns the
// number of lines changed. Lines inside a continuation keep theirs;
// whitespace-only lines are emptied.
func (d *Document) Reindent() (int, error) {
	changed := 0
	for i := range d.lines {
		line := d.lines[i]
		n, err := d.IndentAt(i)
		if errors.Is(err, mode.ErrPass) {
			continue
		}
		if err != nil {
			return changed, fmt.Errorf("reindent line %d: %w", i+1, err)
		}

		next := ""
		if body := strings.TrimLeftFunc(line, unicode.IsSpace); body != "" {
			next = d.IndentString(n) + body
		}
		if next != line {
			if err := d.SetLine(i, next); err != nil {
				return changed, err
			}
			changed++
		}
	}
	d.logger.Debug("reindented document", zap.Int("lines", d.Len()), zap.Int("changed", changed))
	return changed, nil
}

// IndentString renders a column as leading whitespace, using tabs when
// the mode asks for them.
func (d *Document) IndentString(n int) string {
	if n <= 0 {
		return ""
	}
	cfg := d.mode.Config()
	if !cfg.UseTabs {
		return strings.Repeat(" ", n)
	}
	return strings.Repeat("\t", n/cfg.TabSize) + strings.Repeat(" ", n%cfg.TabSize)
}

// FoldAt returns the last line of the brace fold starting at line i. A
// fold starts on a line whose last structural '{' is left open on that
// line and ends at the line holding its matching '}'.
func (d *Document) FoldAt(i int) (int, bool, error) {
	tokens, err := d.Tokens(i)
	if err != nil {
		return 0, false, err
	}

	open := 0
	for _, tok := range tokens {
		switch tok.Punct {
		case "{":
			open++
		case "}":
			if open > 0 {
				open--
			}
		}
	}
	if open == 0 {
		return 0, false, nil
	}

	depth := 1
	for j := i + 1; j < d.Len(); j++ {
		tokens, _ := d.Tokens(j)
		for _, tok := range tokens {
			switch tok.Punct {
			case "{":
				depth++
			case "}":
				depth--
			}
			if depth == 0 {
				return j, true, nil
			}
		}
	}
	return 0, false, nil
}

// ensure makes states[n] valid, scanning from the last valid snapshot.
func (d *Document) ensure(n int) {
	from := len(d.states) - 1
	if from >= n {
		return
	}
	st := d.states[from].Copy()
	for i := from; i < n; i++ {
		d.tokens = append(d.tokens, d.mode.TokenizeLine(d.lines[i], i+1, st))
		d.states = append(d.states, st.Copy())
	}
	d.logger.Debug("tokenized lines", zap.Int("from", from+1), zap.Int("to", n))
}

// invalidate drops every snapshot that depends on line i.
func (d *Document) invalidate(i int) {
	if len(d.states) > i+1 {
		d.states = d.states[:i+1]
	}
	if len(d.tokens) > i {
		d.tokens = d.tokens[:i]
	}
}

// Scanned returns how many lines currently have cached tokens.
func (d *Document) Scanned() int { return len(d.tokens) }

func (d *Document) check(i, limit int) error {
	if i < 0 || i >= limit {
		return fmt.Errorf("%w: %d (document has %d lines)", ErrLineOutOfRange, i, d.Len())
	}
	return nil
}
