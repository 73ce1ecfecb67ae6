package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codestation/huginn-mode/pkg/editor"
	"github.com/codestation/huginn-mode/pkg/highlight"
	"github.com/codestation/huginn-mode/pkg/mode"
)

var (
	schemeFile string
	colorMode  string
)

var colorizeCmd = &cobra.Command{
	Use:   "colorize [file]",
	Short: "Print source with ANSI colors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMode(rulesFile)
		if err != nil {
			return err
		}
		scheme, err := loadScheme(schemeFile, colorMode)
		if err != nil {
			return err
		}
		input, err := readSource(cmd.InOrStdin(), argOrEmpty(args))
		if err != nil {
			return err
		}
		return colorize(cmd.OutOrStdout(), m, input, scheme)
	},
}

func init() {
	addColorFlags(colorizeCmd)
}

func addColorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&schemeFile, "scheme", "", "YAML color scheme file")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "When to use colors: auto, always or never")
}

// loadScheme returns the default scheme or the one in file, after
// applying the --color setting.
func loadScheme(file, when string) (highlight.Scheme, error) {
	switch when {
	case "auto":
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return nil, fmt.Errorf("invalid --color value '%s'", when)
	}
	if file == "" {
		return highlight.DefaultScheme(), nil
	}
	return highlight.LoadSchemeFile(file)
}

func colorize(w io.Writer, m *mode.Mode, input string, scheme highlight.Scheme) error {
	d := editor.New(m, input, editor.WithLogger(logger))
	out, err := highlight.RenderDocument(d, scheme)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
