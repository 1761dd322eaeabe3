//go:build tools

package tools

// cobra/doc is only imported by cmd/gendoc, which is build-ignored.
// This file keeps it in go.mod for `go run cmd/gendoc/main.go`.
import (
	_ "github.com/spf13/cobra/doc"
)
