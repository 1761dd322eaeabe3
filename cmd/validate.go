package cmd

import (
	"fmt"

	"github.com/samzong/hkdocs/internal/cmdspec"
	"github.com/samzong/hkdocs/internal/config"
	"github.com/samzong/hkdocs/internal/nav"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [spec-file]",
	Short: "Check that a usage specification is consistent",
	Long: `Check that every command's full_cmd matches its position in the tree ` +
		`and report how many sidebar entries the specification produces.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runValidate(args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	root, err := loadSpec(cfg, args)
	if err != nil {
		return err
	}
	if err := cmdspec.Validate(root); err != nil {
		return err
	}

	fmt.Fprintf(outWriter(), "Command specification is valid: %d sidebar entries\n", nav.Count(root))
	return nil
}
