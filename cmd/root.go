package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samzong/hkdocs/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	verbose   bool
	base      string
	separator string
	format    string

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "hkdocs"})

	rootCmd = &cobra.Command{
		Use:   "hkdocs",
		Short: "hkdocs - sidebar builder for the hk documentation site",
		Long: `hkdocs reads the generated usage specification of hk and turns its ` +
			`command tree into the ordered navigation entries shown in the ` +
			`documentation sidebar.`,
		Version:       fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// RootCmd returns the root command, for documentation generators.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return initConfig()
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "",
		"Configuration file path (default is ./.hkdocs.yaml, then $XDG_CONFIG_HOME/hkdocs/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&base, "base", config.DefaultBase, "Location every sidebar link is placed under")
	flags.StringVar(&separator, "separator", config.DefaultSeparator, "Separator between command names in entry labels")
	flags.StringVar(&format, "format", config.DefaultFormat,
		"Output format ("+strings.Join(config.Formats(), ", ")+")")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.Formats(), cobra.ShellCompDirectiveNoFileComp
	})
}

func initConfig() error {
	logger.SetOutput(errWriter())
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	if err := config.InitConfig(cfgFile); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	for _, key := range []string{"base", "separator", "format"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}

	if used := config.ConfigFileUsed(); used != "" {
		logger.Debug("loaded configuration", "file", used)
	}
	return nil
}
