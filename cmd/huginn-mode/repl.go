package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codestation/huginn-mode/pkg/editor"
	"github.com/codestation/huginn-mode/pkg/highlight"
	"github.com/codestation/huginn-mode/pkg/huginn"
	"github.com/codestation/huginn-mode/pkg/mode"
)

const (
	historyFile = ".huginn_mode_history"
	promptMain  = "huginn> "
	promptCont  = "   ...> "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive line editor with live coloring and auto-indent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMode(rulesFile)
		if err != nil {
			return err
		}
		scheme, err := loadScheme(schemeFile, colorMode)
		if err != nil {
			return err
		}
		return runRepl(cmd.OutOrStdout(), m, scheme)
	},
}

func init() {
	addColorFlags(replCmd)
}

// session accumulates entered lines in a document whose last line is a
// placeholder for the line being typed.
type session struct {
	doc     *editor.Document
	scheme  highlight.Scheme
	entered int
}

func newSession(m *mode.Mode, scheme highlight.Scheme) *session {
	return &session{doc: editor.New(m, "", editor.WithLogger(logger)), scheme: scheme}
}

// prefill returns the indentation to offer for the next line.
func (s *session) prefill() string {
	n, err := s.doc.IndentAt(s.entered)
	if err != nil {
		return ""
	}
	return s.doc.IndentString(n)
}

// add records a line and returns it colorized.
func (s *session) add(line string) (string, error) {
	if err := s.doc.SetLine(s.entered, line); err != nil {
		return "", err
	}
	tokens, err := s.doc.Tokens(s.entered)
	if err != nil {
		return "", err
	}
	s.entered++
	if err := s.doc.InsertLine(s.entered, ""); err != nil {
		return "", err
	}
	return highlight.Render(line, tokens, s.scheme), nil
}

// complete reports whether the entered lines form a whole input. Every
// scope must be closed, except for a single top-level statement that is
// a finished expression without its terminator.
func (s *session) complete() bool {
	st, err := s.doc.StateAt(s.entered)
	if err != nil {
		return true
	}
	if st.Suspended() {
		return false
	}
	switch st.Depth() {
	case 1:
		return true
	case 2:
		return s.finishedExpression(st.Top())
	}
	return false
}

func (s *session) finishedExpression(ctx mode.Context) bool {
	if ctx.Type != mode.StatementContext || s.doc.Mode().Config().OpensBlock(ctx.Info) {
		return false
	}
	tokens, err := s.doc.Tokens(s.entered - 1)
	if err != nil {
		return false
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		switch {
		case tokens[i].IsSpace(), tokens[i].Category == mode.Comment:
			continue
		case tokens[i].Category == mode.Operator:
			return false
		}
		return true
	}
	return false
}

// text returns the entered lines.
func (s *session) text() string {
	lines := make([]string, s.entered)
	for i := range lines {
		lines[i], _ = s.doc.Line(i)
	}
	return strings.Join(lines, "\n")
}

func (s *session) reset() {
	s.doc = editor.New(s.doc.Mode(), "", editor.WithLogger(logger))
	s.entered = 0
}

// completeWord offers hint words for the identifier before the cursor.
func completeWord(hints []string) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		head := line[:pos]
		start := strings.LastIndexFunc(head, func(r rune) bool {
			return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
		}) + 1
		prefix := head[start:]
		if prefix == "" {
			return head, nil, line[pos:]
		}
		var out []string
		for _, word := range hints {
			if strings.HasPrefix(word, prefix) {
				out = append(out, word)
			}
		}
		return head[:start], out, line[pos:]
	}
}

// magicCommand handles a whole-line magic word. It reports whether the
// line was one and whether the REPL should exit.
func magicCommand(w io.Writer, s *session, line string) (handled, exit bool) {
	word := strings.TrimSpace(line)
	if !s.doc.Mode().Config().Magic[word] {
		return false, false
	}
	switch word {
	case "bye", "exit", "quit":
		return true, true
	case "reset":
		s.reset()
	case "lsmagic":
		fmt.Fprintln(w, strings.Join(s.doc.Mode().Config().Magic.Sorted(), " "))
	default:
		fmt.Fprintf(w, "magic '%s' is not supported here\n", word)
	}
	return true, false
}

func runRepl(w io.Writer, m *mode.Mode, scheme highlight.Scheme) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetTabCompletionStyle(liner.TabPrints)

	hints := mode.HintWords(huginn.MIME)
	if len(hints) == 0 {
		hints = huginn.HintWords()
	}
	ln.SetWordCompleter(completeWord(hints))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := newSession(m, scheme)
	for {
		prompt := promptMain
		if !s.complete() {
			prompt = promptCont
		}
		line, err := ln.PromptWithSuggestion(prompt, s.prefill(), -1)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(w)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			s.reset()
			continue
		}
		if err != nil {
			return err
		}

		if s.entered == 0 {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if handled, exit := magicCommand(w, s, line); handled {
				if exit {
					return nil
				}
				continue
			}
		}

		out, err := s.add(line)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
		if s.complete() {
			logger.Debug("statement complete", zap.Int("lines", s.entered))
			ln.AppendHistory(strings.ReplaceAll(s.text(), "\n", " "))
			s.reset()
		}
	}
}
