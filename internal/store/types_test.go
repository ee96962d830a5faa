package store

import (
	"errors"
	"testing"
)

func TestTier(t *testing.T) {
	for _, tier := range Tiers {
		if err := tier.Validate(); err != nil {
			t.Fatalf("tier %d: unexpected error %v", tier, err)
		}
	}
	if Tier2.TableName() != "patched_names_type2" {
		t.Fatalf("unexpected table name %q", Tier2.TableName())
	}
	for _, bad := range []Tier{0, 4, -1} {
		if err := bad.Validate(); !errors.Is(err, ErrInvalidTier) {
			t.Fatalf("tier %d: expected ErrInvalidTier, got %v", bad, err)
		}
	}
}
