package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/samzong/hkdocs/internal/config"
	"github.com/samzong/hkdocs/internal/nav"
	"gopkg.in/yaml.v3"
)

var (
	outWriterFunc = func() io.Writer { return os.Stdout }
	errWriterFunc = func() io.Writer { return os.Stderr }

	// isStdoutTerminal reports whether stdout is a terminal.
	// It can be overridden in tests.
	isStdoutTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

func init() {
	outWriterFunc = func() io.Writer { return rootCmd.OutOrStdout() }
	errWriterFunc = func() io.Writer { return rootCmd.ErrOrStderr() }
}

func outWriter() io.Writer {
	return outWriterFunc()
}

func errWriter() io.Writer {
	return errWriterFunc()
}

// resolveFormat picks the concrete format for "auto": a table for a person
// at a terminal, JSON for everything else.
func resolveFormat(f string, toTerminal bool) string {
	if f != config.FormatAuto {
		return f
	}
	if toTerminal {
		return config.FormatText
	}
	return config.FormatJSON
}

func writeEntries(w io.Writer, entries []nav.Entry, f string) error {
	switch f {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(entries)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatText:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "COMMAND\tLINK")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\n", e.Text, e.Link)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("%w %q", config.ErrUnknownFormat, f)
	}
}
