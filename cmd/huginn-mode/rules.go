package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codestation/huginn-mode/pkg/huginn"
	"github.com/codestation/huginn-mode/pkg/mode"
)

var makeRulesCmd = &cobra.Command{
	Use:   "make-rules",
	Short: "Generate default rules YAML to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateDefaultRules(cmd.OutOrStdout(), rulesFile)
	},
}

// generateDefaultRules outputs the Huginn rules in YAML format, merged
// with rulesFile when one is given.
func generateDefaultRules(w io.Writer, rulesFile string) error {
	rules := huginn.MakeRules()
	if rulesFile != "" {
		custom, err := mode.LoadRulesFile(rulesFile)
		if err != nil {
			return err
		}
		cfg, err := mode.ApplyRules(huginn.Config(), custom)
		if err != nil {
			return fmt.Errorf("failed to apply rules from '%s': %w", rulesFile, err)
		}
		operators, punctuation, terminators := huginn.Operators, huginn.Punctuation, huginn.Terminators
		if custom.Operators != "" {
			operators = custom.Operators
		}
		if custom.Punctuation != "" {
			punctuation = custom.Punctuation
		}
		if custom.Terminators != "" {
			terminators = custom.Terminators
		}
		rules = mode.RulesFromConfig(cfg, operators, punctuation, terminators)
	}

	yamlBytes, err := rules.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal rules to YAML: %w", err)
	}
	_, err = w.Write(yamlBytes)
	return err
}
