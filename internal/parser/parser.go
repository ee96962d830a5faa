package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"itempatch/internal/store"
)

// Document is one patch file: the names a single tier corrects, and the item
// ids whose corrections the tier withdraws.
type Document struct {
	Tier       store.Tier
	Patches    []store.NamePatch
	Removals   []int
	SourceFile string
}

var (
	ErrInvalidYAML = errors.New("invalid YAML in patch file")
	ErrMissingTier = errors.New("patch file missing required 'tier' field")
	ErrInvalidTier = errors.New("patch file tier must be 1, 2 or 3")
	ErrNegativeID  = errors.New("patch item id must not be negative")
	ErrEmptyName   = errors.New("patch name must not be empty")
	ErrDuplicateID = errors.New("duplicate item id in patch file")
)

type rawDocument struct {
	Tier    *int       `yaml:"tier"`
	Patches []rawPatch `yaml:"patches"`
	Remove  []int      `yaml:"remove"`
}

type rawPatch struct {
	ID   *int   `yaml:"id"`
	Name string `yaml:"name"`
}

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

func Parse(content []byte) (*Document, error) {
	trimmed := bytes.TrimLeft(content, "\ufeff")

	var raw rawDocument
	if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return nil, ErrInvalidYAML
	}
	if raw.Tier == nil {
		return nil, ErrMissingTier
	}
	tier := store.Tier(*raw.Tier)
	if !tier.Valid() {
		return nil, ErrInvalidTier
	}

	doc := &Document{Tier: tier, Patches: make([]store.NamePatch, 0, len(raw.Patches))}
	seen := make(map[int]struct{}, len(raw.Patches))
	for i, p := range raw.Patches {
		if p.ID == nil {
			return nil, fmt.Errorf("patch %d: missing id", i)
		}
		id := *p.ID
		if id < 0 {
			return nil, fmt.Errorf("patch %d: %w", i, ErrNegativeID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("patch %d (item %d): %w", i, id, ErrEmptyName)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("item %d: %w", id, ErrDuplicateID)
		}
		seen[id] = struct{}{}
		doc.Patches = append(doc.Patches, store.NamePatch{ItemID: id, Name: p.Name})
	}
	for _, id := range raw.Remove {
		if id < 0 {
			return nil, fmt.Errorf("remove: %w", ErrNegativeID)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("item %d is both patched and removed: %w", id, ErrDuplicateID)
		}
		seen[id] = struct{}{}
		doc.Removals = append(doc.Removals, id)
	}
	return doc, nil
}
