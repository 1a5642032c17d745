package jsonschema

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// MarshalYAML renders s with the same keys and key order as its JSON form.
func (s *Schema) MarshalYAML() (any, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("jsonschema: empty document")
	}
	n := doc.Content[0]
	blockStyle(n)
	return n, nil
}

// blockStyle drops the flow and quoting styles inherited from JSON.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// ToYAML renders s as a YAML document, e.g. for an OpenAPI file.
func ToYAML(s *Schema) ([]byte, error) {
	return yaml.Marshal(s)
}
