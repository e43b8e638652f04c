package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Configuration binds a top-level source key (usually a file name) to the
// generated type's Deserialize function. Generated code declares one per
// schema that names a source.
type Configuration[T any] struct {
	Key         string
	Deserialize DeserializeFunc[T]
}

// Load deserializes data through the bound function.
func (c Configuration[T]) Load(data map[string]any, mapper Mapper) Result[T] {
	return c.Deserialize(NewContext(data, mapper))
}

// LoadFile reads dir/c.Key and deserializes it.
func LoadFile[T any](dir string, c Configuration[T]) (T, error) {
	data, err := ReadFile(filepath.Join(dir, c.Key))
	if err != nil {
		var zero T
		return zero, err
	}

	return c.Load(data, JSONMapper{}).Get()
}

// ReadFile reads a YAML or JSON document into a raw mapping. The format is
// picked from the file extension; anything but .json is read as YAML.
func ReadFile(path string) (map[string]any, error) {
	b, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return Parse(b, strings.EqualFold(filepath.Ext(path), ".json"))
}

// Parse decodes a document into a raw mapping. An empty document yields an
// empty mapping.
func Parse(b []byte, isJSON bool) (map[string]any, error) {
	data := map[string]any{}

	if isJSON {
		if err := json.Unmarshal(b, &data); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}

		return data, nil
	}

	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return data, nil
}
