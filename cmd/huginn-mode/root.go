package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codestation/huginn-mode/pkg/huginn"
	"github.com/codestation/huginn-mode/pkg/mode"
)

const version = "0.1.0"

var (
	rulesFile string
	verbose   bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:     "huginn-mode",
	Short:   "huginn-mode - tokenize, colorize and indent Huginn source",
	Version: version,
	Long: `huginn-mode drives the clike editor mode with the Huginn vocabulary.

Every subcommand reads a file, or stdin when no file is given.
See 'huginn-mode make-rules' for the rules file format accepted by --rules.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		return huginn.Register()
	},
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "YAML rules file applied on top of the Huginn defaults")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(colorizeCmd)
	rootCmd.AddCommand(indentCmd)
	rootCmd.AddCommand(foldCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(makeRulesCmd)
}

// loadMode returns the registered Huginn mode, or a fresh one built from
// the rules file when one is given.
func loadMode(rulesFile string) (*mode.Mode, error) {
	if rulesFile == "" {
		if m, _, ok := mode.Lookup(huginn.MIME); ok {
			return m, nil
		}
		return huginn.New(), nil
	}

	rules, err := mode.LoadRulesFile(rulesFile)
	if err != nil {
		return nil, err
	}
	m, err := huginn.WithRules(rules)
	if err != nil {
		return nil, fmt.Errorf("failed to apply rules from '%s': %w", rulesFile, err)
	}
	logger.Debug("loaded rules", zap.String("file", rulesFile))
	return m, nil
}

// readSource reads the named file, or stdin for "" and "-".
func readSource(in io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("error reading from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading file '%s': %w", path, err)
	}
	return string(data), nil
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
