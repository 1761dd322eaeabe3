package cmdspec

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidSpec matches every error reported by Validate.
	ErrInvalidSpec = errors.New("invalid command specification")
	// ErrCycle is reported when a node is its own ancestor.
	ErrCycle = fmt.Errorf("%w: command is its own ancestor", ErrInvalidSpec)
)

// ValidationError describes one node whose position and full_cmd disagree.
type ValidationError struct {
	// Path is the chain of subcommand keys leading to the node.
	Path   []string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q: %s", ErrInvalidSpec, strings.Join(e.Path, " "), e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSpec
}

// Validate checks that every descendant of root carries a full_cmd consistent
// with its position in the tree, and that the tree has no cycles. The root's
// own full_cmd is ignored. All problems are reported together.
func Validate(root *Node) error {
	if root == nil {
		return nil
	}
	v := &validator{onPath: make(map[*Node]bool)}
	v.walk(root, nil)
	return errors.Join(v.errs...)
}

type validator struct {
	onPath map[*Node]bool
	errs   []error
}

// walk checks the children of n. keys is the chain of subcommand keys leading
// to n, which is also the full_cmd n is expected to carry.
func (v *validator) walk(n *Node, keys []string) {
	if v.onPath[n] {
		v.errs = append(v.errs, fmt.Errorf("%w: %q", ErrCycle, strings.Join(keys, " ")))
		return
	}
	v.onPath[n] = true
	defer delete(v.onPath, n)

	for key, child := range n.Subcommands.All() {
		path := append(slices.Clip(keys), key)
		if child == nil {
			v.fail(path, "missing command definition")
			continue
		}
		v.check(path, child.FullPath)

		// Children are checked against the path their parent should have had,
		// so one bad full_cmd is not repeated for the whole subtree.
		v.walk(child, path)
	}
}

func (v *validator) check(path, fullPath []string) {
	parentPath, key := path[:len(path)-1], path[len(path)-1]
	switch {
	case len(fullPath) == 0:
		v.fail(path, "full_cmd is empty")
	case len(fullPath) != len(parentPath)+1:
		v.fail(path, fmt.Sprintf("full_cmd has %d segments, want %d", len(fullPath), len(parentPath)+1))
	case !slices.Equal(fullPath[:len(parentPath)], parentPath):
		v.fail(path, fmt.Sprintf("full_cmd prefix %q does not match parent %q",
			strings.Join(fullPath[:len(parentPath)], " "), strings.Join(parentPath, " ")))
	case fullPath[len(fullPath)-1] != key:
		v.fail(path, fmt.Sprintf("full_cmd ends in %q, want %q", fullPath[len(fullPath)-1], key))
	}
}

func (v *validator) fail(path []string, reason string) {
	v.errs = append(v.errs, &ValidationError{Path: path, Reason: reason})
}
