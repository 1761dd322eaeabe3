//go:build ignore

package main

import (
	"fmt"
	"os"

	"github.com/samzong/hkdocs/cmd"
	"github.com/spf13/cobra/doc"
)

func main() {
	dir := "./docs/man"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	header := &doc.GenManHeader{
		Title:   "HKDOCS",
		Section: "1",
		Source:  "hkdocs",
		Manual:  "hkdocs Manual",
	}

	rootCmd := cmd.RootCmd()
	rootCmd.DisableAutoGenTag = true
	if err := doc.GenManTree(rootCmd, header, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Man pages generated in %s\n", dir)
}
