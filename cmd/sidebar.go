package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samzong/hkdocs/internal/cmdspec"
	"github.com/samzong/hkdocs/internal/config"
	"github.com/samzong/hkdocs/internal/nav"
	"github.com/spf13/cobra"
)

var (
	outputPath     string
	skipValidation bool

	sidebarCmd = &cobra.Command{
		Use:   "sidebar [spec-file]",
		Short: "Print the sidebar entries for the hk command reference",
		Long: `Load the usage specification of hk, flatten its command tree and print ` +
			`one navigation entry per visible command, in the order the commands ` +
			`are defined.

A hidden command gets no entry of its own, but the commands below it are
still listed.

Examples:
  hkdocs sidebar                             # Read docs/cli/commands.json
  hkdocs sidebar commands.json --format yaml
  hkdocs sidebar -o docs/.vitepress/cli_commands.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSidebar(args)
		},
	}
)

func init() {
	sidebarCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write entries to this file instead of stdout")
	sidebarCmd.Flags().BoolVar(&skipValidation, "skip-validation", false,
		"Emit entries even when full_cmd paths disagree with the tree")
	rootCmd.AddCommand(sidebarCmd)
}

func runSidebar(args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	root, err := loadSpec(cfg, args)
	if err != nil {
		return err
	}
	if skipValidation {
		logger.Debug("skipping validation")
	} else if err := cmdspec.Validate(root); err != nil {
		return err
	}

	entries := nav.Builder{Base: cfg.Base, Separator: cfg.Separator}.Entries(root)
	logger.Debug("flattened command tree", "entries", len(entries))

	if outputPath == "" {
		return writeEntries(outWriter(), entries, resolveFormat(cfg.Format, isStdoutTerminal()))
	}

	var buf bytes.Buffer
	if err := writeEntries(&buf, entries, resolveFormat(cfg.Format, false)); err != nil {
		return err
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write sidebar entries: %w", err)
	}
	logger.Info("wrote sidebar entries", "file", outputPath, "entries", len(entries))
	return nil
}

// loadSpec reads the specification named on the command line, falling back
// to the configured path.
func loadSpec(cfg config.Config, args []string) (*cmdspec.Node, error) {
	path := cfg.Spec
	if len(args) > 0 {
		path = args[0]
	}
	logger.Debug("loading command specification", "file", path)

	doc, err := cmdspec.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Cmd, nil
}
