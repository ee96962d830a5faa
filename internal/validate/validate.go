package validate

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"itempatch/internal/item"
	"itempatch/internal/store"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeOutOfRange   = "item_out_of_range"
	codeEmptyName    = "empty_name"
	codeUnknownItem  = "unknown_item"
	codeRedundant    = "redundant_patch"
	codeDuplicateTop = "duplicate_across_tiers"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Tier     store.Tier
	ItemID   int
}

type Report struct {
	Issues []Issue
}

func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

type TierReader interface {
	QueryTier(ctx context.Context, tier store.Tier) ([]store.NamePatch, error)
}

// Run checks every tier of the patch data against the base item table.
func Run(ctx context.Context, base *item.Table, src TierReader) (*Report, error) {
	if base == nil {
		return nil, fmt.Errorf("base item table is required")
	}
	if src == nil {
		return nil, fmt.Errorf("patch source is required")
	}

	tiers := make(map[store.Tier]map[int]string, len(store.Tiers))
	ordered := make(map[store.Tier][]store.NamePatch, len(store.Tiers))
	for _, tier := range store.Tiers {
		patches, err := src.QueryTier(ctx, tier)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", tier, err)
		}
		ordered[tier] = patches
		m := make(map[int]string, len(patches))
		for _, p := range patches {
			m[p.ItemID] = p.Name
		}
		tiers[tier] = m
	}

	issues := make([]Issue, 0)
	for _, tier := range store.Tiers {
		for _, p := range ordered[tier] {
			issues = append(issues, validatePatch(base, tier, p)...)
			if higher, ok := duplicatedAbove(tiers, tier, p); ok {
				issues = append(issues, Issue{
					Severity: SeverityWarn,
					Code:     codeDuplicateTop,
					Message:  fmt.Sprintf("same name as tier %d: %q", int(higher), p.Name),
					Tier:     tier,
					ItemID:   p.ItemID,
				})
			}
		}
	}

	slices.SortStableFunc(issues, func(a, b Issue) int {
		if a.ItemID != b.ItemID {
			return a.ItemID - b.ItemID
		}
		return int(a.Tier) - int(b.Tier)
	})
	return &Report{Issues: issues}, nil
}

func validatePatch(base *item.Table, tier store.Tier, p store.NamePatch) []Issue {
	var issues []Issue
	baseName, ok := base.Name(p.ItemID)
	if !ok {
		return append(issues, Issue{
			Severity: SeverityError,
			Code:     codeOutOfRange,
			Message:  fmt.Sprintf("item id outside base table of %d items", base.Len()),
			Tier:     tier,
			ItemID:   p.ItemID,
		})
	}
	if strings.TrimSpace(p.Name) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeEmptyName,
			Message:  "patched name is empty",
			Tier:     tier,
			ItemID:   p.ItemID,
		})
	}
	if baseName == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeUnknownItem,
			Message:  "no base item defined for this id",
			Tier:     tier,
			ItemID:   p.ItemID,
		})
	} else if baseName == p.Name {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeRedundant,
			Message:  fmt.Sprintf("patched name equals base name %q", baseName),
			Tier:     tier,
			ItemID:   p.ItemID,
		})
	}
	return issues
}

func duplicatedAbove(tiers map[store.Tier]map[int]string, tier store.Tier, p store.NamePatch) (store.Tier, bool) {
	for higher := tier + 1; higher <= store.Tier3; higher++ {
		if name, ok := tiers[higher][p.ItemID]; ok && name == p.Name {
			return higher, true
		}
	}
	return 0, false
}
