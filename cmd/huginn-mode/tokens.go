package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codestation/huginn-mode/pkg/editor"
)

var (
	tokensOutput string
	tokensSpaces bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print one JSON token object per line",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMode(rulesFile)
		if err != nil {
			return err
		}
		input, err := readSource(cmd.InOrStdin(), argOrEmpty(args))
		if err != nil {
			return err
		}

		output := cmd.OutOrStdout()
		if tokensOutput != "" {
			file, err := os.Create(tokensOutput)
			if err != nil {
				return fmt.Errorf("error creating output file '%s': %w", tokensOutput, err)
			}
			defer file.Close()
			output = file
		}

		d := editor.New(m, input, editor.WithLogger(logger))
		return writeTokens(output, d, tokensSpaces)
	},
}

func init() {
	tokensCmd.Flags().StringVar(&tokensOutput, "output", "", "Output file (defaults to stdout)")
	tokensCmd.Flags().BoolVar(&tokensSpaces, "spaces", false, "Include whitespace tokens")
}

// writeTokens outputs the document's tokens as JSON, one per line.
func writeTokens(w io.Writer, d *editor.Document, withSpaces bool) error {
	count := 0
	for i := 0; i < d.Len(); i++ {
		tokens, err := d.Tokens(i)
		if err != nil {
			return err
		}
		for _, token := range tokens {
			if token.IsSpace() && !withSpaces {
				continue
			}
			jsonBytes, err := json.Marshal(token)
			if err != nil {
				return fmt.Errorf("JSON encoding error: %w", err)
			}
			fmt.Fprintln(w, string(jsonBytes))
			count++
		}
	}
	logger.Debug("wrote tokens", zap.Int("lines", d.Len()), zap.Int("tokens", count))
	return nil
}
