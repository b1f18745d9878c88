package codec

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// SerializeYAML renders fields as YAML with the same key order as the JSON
// form.
func SerializeYAML(fields []*model.Field) ([]byte, error) {
	payload, err := json.Marshal(model.ToWire(fields))
	if err != nil {
		return nil, fmt.Errorf("codec: marshal json: %w", err)
	}
	// JSON is valid YAML; decoding into a node keeps mapping order.
	var doc yaml.Node
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("codec: convert to yaml: %w", err)
	}
	blockStyle(&doc)
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal yaml: %w", err)
	}
	return out, nil
}

// DeserializeYAML parses a YAML sequence of fields.
func DeserializeYAML(data []byte) ([]*model.Field, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("codec: unmarshal yaml: %w", err)
	}
	if _, ok := raw.([]any); !ok {
		return nil, ErrNotArray
	}
	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("codec: convert yaml: %w", err)
	}
	return Deserialize(payload)
}

func blockStyle(node *yaml.Node) {
	if node == nil {
		return
	}
	if node.Kind == yaml.ScalarNode {
		node.Tag = node.ShortTag()
	}
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
