package cmdspec

import (
	"strings"

	"github.com/spf13/cobra"
)

// FromCobra builds a command tree from a cobra command hierarchy. The root
// command's name is not part of any FullPath, matching generated usage
// documents. Children keep the order returned by Commands(), which is sorted
// by name unless cobra.EnableCommandSorting is off. Cobra's built-in help
// command is left out.
func FromCobra(root *cobra.Command) *Node {
	if root == nil {
		return &Node{}
	}
	n := &Node{Name: root.Name(), Help: root.Short, Hidden: root.Hidden}
	addCobraChildren(n, root, nil)
	return n
}

func addCobraChildren(n *Node, c *cobra.Command, prefix []string) {
	for _, sub := range c.Commands() {
		if sub.Name() == "help" {
			continue
		}
		path := append(append([]string(nil), prefix...), sub.Name())
		child := &Node{
			Name:     sub.Name(),
			Help:     strings.TrimSpace(sub.Short),
			Hidden:   sub.Hidden,
			FullPath: path,
		}
		addCobraChildren(child, sub, path)
		n.Subcommands.Set(sub.Name(), child)
	}
}
