package blob

import "gopkg.in/yaml.v3"

// YAML encodes values as YAML documents, useful when stored fields are
// inspected by hand.
type YAML struct{}

// Marshal serializes v to YAML bytes.
func (YAML) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal deserializes YAML bytes into v.
func (YAML) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Name returns "yaml".
func (YAML) Name() string { return "yaml" }
