package criteria

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agusespa/chateval/internal/types"
)

// LoadFile reads a criteria list from a YAML or JSON file and validates its weights.
// Entries that only name an id inherit the default name, description and rubric.
func LoadFile(path string) ([]types.EvaluationCriterion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read criteria file at %s: %w", path, err)
	}

	var list []types.EvaluationCriterion
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &list)
	default:
		err = yaml.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse criteria file %s: %w", path, err)
	}

	for i, c := range list {
		def, ok := Get(c.ID)
		if !ok {
			continue
		}
		if c.Name == "" {
			list[i].Name = def.Name
		}
		if c.Description == "" {
			list[i].Description = def.Description
		}
		if c.Scale == "" {
			list[i].Scale = def.Scale
		}
		if len(c.Rubric) == 0 {
			list[i].Rubric = def.Rubric
		}
	}

	if err := ValidateWeights(list); err != nil {
		return nil, fmt.Errorf("invalid criteria file %s: %w", path, err)
	}
	return list, nil
}
