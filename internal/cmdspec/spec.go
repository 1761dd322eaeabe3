package cmdspec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// Document is a generated usage specification. The command tree lives
// under Cmd; Name and Bin are informational.
type Document struct {
	Name string `json:"name" yaml:"name"`
	Bin  string `json:"bin" yaml:"bin"`
	Cmd  *Node  `json:"cmd" yaml:"cmd"`
}

// Node is one command in the hierarchy.
type Node struct {
	Name        string      `json:"name" yaml:"name"`
	Help        string      `json:"help" yaml:"help"`
	Hidden      bool        `json:"hide" yaml:"hide"`
	FullPath    []string    `json:"full_cmd" yaml:"full_cmd"`
	Subcommands Subcommands `json:"subcommands" yaml:"subcommands"`
}

// NewNode returns a node for the given full invocation path.
func NewNode(fullPath ...string) *Node {
	n := &Node{FullPath: fullPath}
	if len(fullPath) > 0 {
		n.Name = fullPath[len(fullPath)-1]
	}
	return n
}

// Add appends child under key and returns the child.
func (n *Node) Add(key string, child *Node) *Node {
	n.Subcommands.Set(key, child)
	return child
}

// Subcommands maps subcommand names to child nodes and remembers the order
// in which they were added. The zero value is empty and ready to use.
type Subcommands struct {
	keys  []string
	nodes map[string]*Node
}

// Len returns the number of subcommands.
func (s *Subcommands) Len() int {
	return len(s.keys)
}

// Keys returns the subcommand names in insertion order.
func (s *Subcommands) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Get returns the child stored under key.
func (s *Subcommands) Get(key string) (*Node, bool) {
	n, ok := s.nodes[key]
	return n, ok
}

// Set stores child under key. Replacing an existing key keeps its position.
func (s *Subcommands) Set(key string, child *Node) {
	if s.nodes == nil {
		s.nodes = make(map[string]*Node)
	}
	if _, ok := s.nodes[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.nodes[key] = child
}

// All iterates over the subcommands in insertion order.
func (s *Subcommands) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for _, k := range s.keys {
			if !yield(k, s.nodes[k]) {
				return
			}
		}
	}
}

// UnmarshalYAML decodes a mapping while keeping its key order, which a
// plain Go map would lose.
func (s *Subcommands) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: subcommands must be a mapping", value.Line)
	}

	*s = Subcommands{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("line %d: invalid subcommand name: %w", keyNode.Line, err)
		}
		if _, dup := s.nodes[key]; dup {
			return fmt.Errorf("line %d: duplicate subcommand %q", keyNode.Line, key)
		}

		var child *Node
		if err := valNode.Decode(&child); err != nil {
			return fmt.Errorf("subcommand %q: %w", key, err)
		}
		s.Set(key, child)
	}
	return nil
}

// UnmarshalJSON is the JSON counterpart of UnmarshalYAML. It walks the
// object token by token so keys come out in document order.
func (s *Subcommands) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if tok != json.Delim('{') {
		return errors.New("subcommands must be a mapping")
	}

	*s = Subcommands{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("invalid subcommand name %v", tok)
		}
		if _, dup := s.nodes[key]; dup {
			return fmt.Errorf("duplicate subcommand %q", key)
		}

		var child *Node
		if err := dec.Decode(&child); err != nil {
			return fmt.Errorf("subcommand %q: %w", key, err)
		}
		s.Set(key, child)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
