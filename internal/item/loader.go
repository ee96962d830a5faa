package item

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoItems     = errors.New("no items defined")
	ErrNegativeID  = errors.New("negative item id")
	ErrDuplicateID = errors.New("duplicate item id")
)

type Def struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	Command string `yaml:"command"`
}

type defFile struct {
	Items []Def `yaml:"items"`
}

// LoadTable builds the base item table from a YAML definition file. The
// table is sized to the largest id + 1.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading item table: %w", err)
	}
	table, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("loading item table %s: %w", path, err)
	}
	return table, nil
}

func ParseTable(data []byte) (*Table, error) {
	var file defFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing item definitions: %w", err)
	}
	if len(file.Items) == 0 {
		return nil, ErrNoItems
	}

	maxID := -1
	seen := make(map[int]struct{}, len(file.Items))
	for _, def := range file.Items {
		if def.ID < 0 {
			return nil, fmt.Errorf("%w: %d", ErrNegativeID, def.ID)
		}
		if _, ok := seen[def.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, def.ID)
		}
		seen[def.ID] = struct{}{}
		maxID = max(maxID, def.ID)
	}

	table := NewTable(maxID + 1)
	for _, def := range file.Items {
		if err := table.Set(def.ID, def.Name, def.Command); err != nil {
			return nil, err
		}
	}
	return table, nil
}
