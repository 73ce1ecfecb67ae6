package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codestation/huginn-mode/pkg/editor"
	"github.com/codestation/huginn-mode/pkg/mode"
)

var indentWrite bool

var indentCmd = &cobra.Command{
	Use:   "indent [file]",
	Short: "Re-indent source and print it, or rewrite the file with --write",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := argOrEmpty(args)
		if indentWrite && (path == "" || path == "-") {
			return fmt.Errorf("--write requires a file argument")
		}
		m, err := loadMode(rulesFile)
		if err != nil {
			return err
		}
		input, err := readSource(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}

		text, changed, err := reindent(m, input)
		if err != nil {
			return err
		}
		logger.Info("reindented", zap.String("file", path), zap.Int("changed", changed))

		if !indentWrite {
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		}
		if changed == 0 {
			return nil
		}
		return writeFile(path, text)
	},
}

func init() {
	indentCmd.Flags().BoolVarP(&indentWrite, "write", "w", false, "Write result to the source file instead of stdout")
}

func reindent(m *mode.Mode, input string) (string, int, error) {
	d := editor.New(m, input, editor.WithLogger(logger))
	changed, err := d.Reindent()
	if err != nil {
		return "", 0, err
	}
	return d.Text(), changed, nil
}

// writeFile replaces path's content, keeping its permissions.
func writeFile(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), info.Mode().Perm()); err != nil {
		return fmt.Errorf("error writing file '%s': %w", path, err)
	}
	return nil
}
