package cmd

import (
	"fmt"

	"github.com/samzong/hkdocs/internal/cmdspec"
	"github.com/samzong/hkdocs/internal/config"
	"github.com/samzong/hkdocs/internal/nav"
	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:    "commands",
	Short:  "List the sidebar entries for hkdocs's own commands",
	Long: `List the sidebar entries for hkdocs's own command tree, built with the
same flattener as "sidebar". Hidden commands and cobra's built-in help
command get no entry.`,
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runCommands()
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}

func runCommands() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	entries := nav.Builder{Base: cfg.Base, Separator: cfg.Separator}.Entries(cmdspec.FromCobra(rootCmd))
	return writeEntries(outWriter(), entries, resolveFormat(cfg.Format, isStdoutTerminal()))
}
