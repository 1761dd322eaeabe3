package cmdspec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptySpec is returned when the specification document has no content.
var ErrEmptySpec = errors.New("command specification is empty")

// Load reads a usage specification in JSON or YAML form. The input may be a
// full usage document (root node under "cmd") or a bare root node.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read command specification: %w", err)
	}
	return Parse(data)
}

// LoadFile reads the specification stored at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open command specification: %w", err)
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a specification held in memory. Input whose first non-space
// byte is '{' is read as JSON; anything else is read as YAML.
func Parse(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to parse command specification: %w", ErrEmptySpec)
	}

	var (
		doc *Document
		err error
	)
	if data[0] == '{' {
		doc, err = parseJSON(data)
	} else {
		doc, err = parseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse command specification: %w", err)
	}
	if doc.Cmd == nil {
		doc.Cmd = &Node{}
	}
	return doc, nil
}

func parseJSON(data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	doc := &Document{}
	var target any = doc
	if _, ok := fields["cmd"]; !ok {
		doc.Cmd = &Node{}
		target = doc.Cmd
	}
	if err := json.Unmarshal(data, target); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, ErrEmptySpec
	}

	body := root.Content[0]
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", body.Line)
	}

	doc := &Document{}
	if hasKey(body, "cmd") {
		if err := body.Decode(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	doc.Cmd = &Node{}
	if err := body.Decode(doc.Cmd); err != nil {
		return nil, err
	}
	return doc, nil
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}
