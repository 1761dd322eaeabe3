// Package nav turns a command tree into the ordered navigation list shown in
// the documentation sidebar.
package nav

import (
	"slices"
	"strings"

	"github.com/samzong/hkdocs/internal/cmdspec"
)

// Default values for Builder.
const (
	DefaultBase      = "/cli"
	DefaultSeparator = " "
)

// Flatten returns the full path of every visible command below node, depth
// first, with a parent ahead of its children and siblings in the order they
// were defined. A hidden command contributes no entry of its own but its
// descendants are still listed, so hidden commands can group others without
// getting a page. The root itself is never included. The returned paths are
// copies and may be modified freely.
func Flatten(node *cmdspec.Node) [][]string {
	paths := [][]string{}
	if node == nil {
		return paths
	}
	for _, child := range node.Subcommands.All() {
		if child == nil {
			continue
		}
		if !child.Hidden {
			paths = append(paths, slices.Clone(child.FullPath))
		}
		paths = append(paths, Flatten(child)...)
	}
	return paths
}

// Count returns how many entries Flatten would produce for node.
func Count(node *cmdspec.Node) int {
	if node == nil {
		return 0
	}
	count := 0
	for _, child := range node.Subcommands.All() {
		if child == nil {
			continue
		}
		if !child.Hidden {
			count++
		}
		count += Count(child)
	}
	return count
}

// Entry is one sidebar item.
type Entry struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// Builder formats flattened paths as sidebar entries.
type Builder struct {
	// Base is the location every link is placed under, e.g. "/cli".
	Base string
	// Separator joins path segments in the entry label.
	Separator string
}

// NewBuilder returns a Builder using DefaultBase and DefaultSeparator.
func NewBuilder() Builder {
	return Builder{Base: DefaultBase, Separator: DefaultSeparator}
}

// Entry builds the sidebar entry for one command path.
func (b Builder) Entry(path []string) Entry {
	return Entry{
		Text: strings.Join(path, b.Separator),
		Link: strings.TrimRight(b.Base, "/") + "/" + strings.Join(path, "/"),
	}
}

// Entries flattens root and builds an entry for every visible command.
func (b Builder) Entries(root *cmdspec.Node) []Entry {
	paths := Flatten(root)
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, b.Entry(p))
	}
	return entries
}
