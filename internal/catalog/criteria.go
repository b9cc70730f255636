// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/template-scraper/pkg/types"
)

// LoadCriteria reads search criteria overrides from a YAML file. Fields absent
// from the file keep their values from base. The offset is always taken from
// the page being fetched, so any offset in the file is ignored.
func LoadCriteria(path string, base types.SearchCriteria) (types.SearchCriteria, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading criteria file: %w", err)
	}

	out := base.WithOffset(0)
	if err := yaml.Unmarshal(data, &out); err != nil {
		return base, fmt.Errorf("parsing criteria file %s: %w", path, err)
	}
	if out.Limit <= 0 {
		return base, fmt.Errorf("criteria file %s: limit must be positive, got %d", path, out.Limit)
	}
	out.Offset = 0
	return out, nil
}

// WriteCriteria saves criteria to a YAML file that LoadCriteria can read back.
func WriteCriteria(path string, criteria types.SearchCriteria) error {
	criteria.Offset = 0
	data, err := yaml.Marshal(&criteria)
	if err != nil {
		return fmt.Errorf("marshaling criteria: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
