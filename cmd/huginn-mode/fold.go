package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codestation/huginn-mode/pkg/editor"
)

var foldLine int

var foldCmd = &cobra.Command{
	Use:   "fold [file]",
	Short: "Print brace fold ranges as start-end line pairs",
	Long: `Print the brace fold starting at --line, or every fold in the file
when --line is not given. Line numbers are 1-based.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMode(rulesFile)
		if err != nil {
			return err
		}
		input, err := readSource(cmd.InOrStdin(), argOrEmpty(args))
		if err != nil {
			return err
		}
		d := editor.New(m, input, editor.WithLogger(logger))
		return writeFolds(cmd.OutOrStdout(), d, foldLine)
	},
}

func init() {
	foldCmd.Flags().IntVarP(&foldLine, "line", "l", 0, "Line to fold (1-based); 0 lists every fold")
}

func writeFolds(w io.Writer, d *editor.Document, line int) error {
	if line > 0 {
		end, ok, err := d.FoldAt(line - 1)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no fold starts at line %d", line)
		}
		_, err = fmt.Fprintf(w, "%d-%d\n", line, end+1)
		return err
	}

	for i := 0; i < d.Len(); i++ {
		end, ok, err := d.FoldAt(i)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintf(w, "%d-%d\n", i+1, end+1)
		}
	}
	return nil
}
