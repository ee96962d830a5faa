package validate

import (
	"context"
	"errors"
	"testing"

	"itempatch/internal/item"
	"itempatch/internal/store"
)

type mockSource struct {
	tiers map[store.Tier][]store.NamePatch
	err   error
}

func (m *mockSource) QueryTier(ctx context.Context, tier store.Tier) ([]store.NamePatch, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tiers[tier], nil
}

func baseTable(t *testing.T) *item.Table {
	t.Helper()
	table := item.NewTable(200)
	if err := table.Set(100, "Old Name", ""); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := table.Set(150, "Cabbage", "Eat"); err != nil {
		t.Fatalf("set: %v", err)
	}
	return table
}

func TestRun_OutOfRange(t *testing.T) {
	src := &mockSource{tiers: map[store.Tier][]store.NamePatch{
		store.Tier1: {{ItemID: 500, Name: "Ghost"}},
	}}
	report, err := Run(context.Background(), baseTable(t), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !hasIssueCode(report.Issues, codeOutOfRange) {
		t.Fatalf("expected out of range issue")
	}
	if !report.HasErrors() {
		t.Fatalf("expected report to have errors")
	}
}

func TestRun_EmptyAndUnknown(t *testing.T) {
	src := &mockSource{tiers: map[store.Tier][]store.NamePatch{
		store.Tier2: {{ItemID: 100, Name: " "}, {ItemID: 7, Name: "Nameless"}},
	}}
	report, err := Run(context.Background(), baseTable(t), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !hasIssueCode(report.Issues, codeEmptyName) {
		t.Fatalf("expected empty name issue")
	}
	if !hasIssueCode(report.Issues, codeUnknownItem) {
		t.Fatalf("expected unknown item issue")
	}
	if report.Issues[0].ItemID != 7 {
		t.Fatalf("expected issues sorted by item id, got %+v", report.Issues)
	}
}

func TestRun_Redundant(t *testing.T) {
	src := &mockSource{tiers: map[store.Tier][]store.NamePatch{
		store.Tier1: {{ItemID: 150, Name: "Cabbage"}},
	}}
	report, err := Run(context.Background(), baseTable(t), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !hasIssueCode(report.Issues, codeRedundant) {
		t.Fatalf("expected redundant patch issue")
	}
	if report.HasErrors() {
		t.Fatalf("redundant patches are warnings only")
	}
}

func TestRun_DuplicateAcrossTiers(t *testing.T) {
	src := &mockSource{tiers: map[store.Tier][]store.NamePatch{
		store.Tier1: {{ItemID: 100, Name: "Same"}},
		store.Tier3: {{ItemID: 100, Name: "Same"}},
		store.Tier2: {{ItemID: 100, Name: "Different"}},
	}}
	report, err := Run(context.Background(), baseTable(t), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var found []store.Tier
	for _, issue := range report.Issues {
		if issue.Code == codeDuplicateTop {
			found = append(found, issue.Tier)
		}
	}
	if len(found) != 1 || found[0] != store.Tier1 {
		t.Fatalf("expected a single duplicate issue on tier 1, got %v", found)
	}
}

func TestRun_Clean(t *testing.T) {
	src := &mockSource{tiers: map[store.Tier][]store.NamePatch{
		store.Tier1: {{ItemID: 100, Name: "Tier1 Name"}},
	}}
	report, err := Run(context.Background(), baseTable(t), src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", report.Issues)
	}
}

func TestRun_Errors(t *testing.T) {
	if _, err := Run(context.Background(), nil, &mockSource{}); err == nil {
		t.Fatalf("expected error for nil table")
	}
	if _, err := Run(context.Background(), baseTable(t), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := Run(context.Background(), baseTable(t), &mockSource{err: errors.New("boom")}); err == nil {
		t.Fatalf("expected query error")
	}
}

func hasIssueCode(issues []Issue, code string) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}
