package store

import "fmt"

type Tier int

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
)

// Tiers lists every patch tier, lowest priority first.
var Tiers = []Tier{Tier1, Tier2, Tier3}

func (t Tier) Valid() bool {
	return t >= Tier1 && t <= Tier3
}

func (t Tier) Validate() error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTier, int(t))
	}
	return nil
}

// TableName is the SQL table holding the tier's patched names.
func (t Tier) TableName() string {
	return fmt.Sprintf("patched_names_type%d", int(t))
}

func (t Tier) String() string {
	return fmt.Sprintf("tier%d", int(t))
}

type NamePatch struct {
	ItemID int
	Name   string
}
