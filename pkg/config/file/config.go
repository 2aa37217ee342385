// Package file loads config values from a YAML document into an in memory
// store.
package file

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/4alls/Mostro-MVP-Program/pkg/config/memory"
)

// LoadYAML parses a flat YAML mapping. Each key is upper cased and prefixed
// with prefix, so a document can mirror the environment variables of a
// component. Nested values are rejected.
func LoadYAML(data []byte, prefix string) (*memory.Store, error) {
	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Wrap(err, "error parsing yaml config")
	}

	store := memory.NewStore()
	for key, value := range parsed {
		switch value.(type) {
		case map[string]interface{}, []interface{}:
			return nil, errors.Errorf("config key %q is not a scalar", key)
		}
		store.Set(prefix+strings.ToUpper(key), value)
	}
	return store, nil
}

// LoadYAMLFile is LoadYAML over the contents of path.
func LoadYAMLFile(path, prefix string) (*memory.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file %s", path)
	}
	return LoadYAML(data, prefix)
}
