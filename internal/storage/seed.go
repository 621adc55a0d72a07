package storage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zhouzirui/items-api/backend/internal/model/item"
)

// SeedFile is the YAML layout of an initial item list:
//
//	items:
//	  - name: popsicle
//	    price: 1.45
type SeedFile struct {
	Items []item.Item `yaml:"items"`
}

// LoadSeed reads the initial items from a YAML file.
// Items without a name or price and repeated names are rejected.
func LoadSeed(path string) ([]item.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var sf SeedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(sf.Items))
	for i, it := range sf.Items {
		if it.Name == "" || it.Price == 0 {
			return nil, fmt.Errorf("seed item %d: %w", i, item.ErrMissingFields)
		}
		if _, dup := seen[it.Name]; dup {
			return nil, fmt.Errorf("seed item %d: duplicate name %q", i, it.Name)
		}
		seen[it.Name] = struct{}{}
	}
	return sf.Items, nil
}
