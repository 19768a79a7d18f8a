package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// schema lists the keys allowed in a mapping and the schema of nested
// values. A nil schema accepts anything.
type schema map[string]schema

// readYAML reads path and decodes it into out after checking every mapping
// key against s.
func readYAML(path string, s schema, out any) error {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path is user configuration
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decodeYAML(path, content, s, out)
}

func decodeYAML(file string, content []byte, s schema, out any) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return &ParseError{File: file, Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	if len(doc.Content) == 0 {
		return &ParseError{File: file, Message: "file is empty"}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return &ParseError{File: file, Line: root.Line, Message: "expected a mapping at the top level"}
	}
	if err := checkKeys(file, root, s); err != nil {
		return err
	}
	if err := root.Decode(out); err != nil {
		return &ParseError{File: file, Message: err.Error()}
	}
	return nil
}

func checkKeys(file string, n *yaml.Node, s schema) error {
	if s == nil {
		return nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			sub, ok := s[key.Value]
			if !ok {
				return &UnknownFieldError{File: file, Line: key.Line, Field: key.Value}
			}
			if err := checkKeys(file, val, sub); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			if err := checkKeys(file, item, s); err != nil {
				return err
			}
		}
	}
	return nil
}
