package patch

import (
	"context"
	"log/slog"
	"slices"

	"itempatch/internal/item"
	"itempatch/internal/store"
)

// SourceOpener acquires a patch source for the duration of one patch pass.
type SourceOpener func(ctx context.Context) (store.PatchSource, error)

// pass is one layer of a name patch: every entry of Tier whose id is not
// claimed by any tier in Exclude.
type pass struct {
	Tier    store.Tier
	Exclude []store.Tier
}

// passes are listed in write order. At level 3 tier 1 is written before
// tier 2; the exclusions keep the outcome equal to tier 3 > tier 2 > tier 1.
var passes = map[int][]pass{
	1: {
		{Tier: store.Tier1},
	},
	2: {
		{Tier: store.Tier2},
		{Tier: store.Tier1, Exclude: []store.Tier{store.Tier2}},
	},
	3: {
		{Tier: store.Tier3},
		{Tier: store.Tier1, Exclude: []store.Tier{store.Tier2, store.Tier3}},
		{Tier: store.Tier2, Exclude: []store.Tier{store.Tier3}},
	},
}

// TiersFor returns the tiers a level consults.
func TiersFor(level int) []store.Tier {
	var tiers []store.Tier
	for _, p := range passes[NormalizeLevel(level)] {
		for _, t := range append([]store.Tier{p.Tier}, p.Exclude...) {
			if !slices.Contains(tiers, t) {
				tiers = append(tiers, t)
			}
		}
	}
	slices.Sort(tiers)
	return tiers
}

// TierData is the loaded content of each tier, keyed by item id.
type TierData map[store.Tier]map[int]string

// IndexPatches keys a tier's patches by item id.
func IndexPatches(patches []store.NamePatch) map[int]string {
	m := make(map[int]string, len(patches))
	for _, p := range patches {
		m[p.ItemID] = p.Name
	}
	return m
}

// PlanNames computes the ordered name writes for a level. A pass is dropped
// when its own tier or any tier it excludes against is missing from data.
func PlanNames(level int, data TierData) []item.NameWrite {
	var writes []item.NameWrite
	for _, p := range passes[NormalizeLevel(level)] {
		entries, ok := data[p.Tier]
		if !ok {
			continue
		}
		excluded := make([]map[int]string, 0, len(p.Exclude))
		complete := true
		for _, t := range p.Exclude {
			m, ok := data[t]
			if !ok {
				complete = false
				break
			}
			excluded = append(excluded, m)
		}
		if !complete {
			continue
		}

		ids := make([]int, 0, len(entries))
		for id := range entries {
			if !claimed(id, excluded) {
				ids = append(ids, id)
			}
		}
		slices.Sort(ids)
		for _, id := range ids {
			writes = append(writes, item.NameWrite{ItemID: id, Name: entries[id], Tier: int(p.Tier)})
		}
	}
	return writes
}

func claimed(id int, tiers []map[int]string) bool {
	for _, m := range tiers {
		if _, ok := m[id]; ok {
			return true
		}
	}
	return false
}

type Result struct {
	Level       int
	Applied     int
	OutOfRange  int
	FailedTiers []store.Tier
	Unavailable bool
}

type NameResolver struct {
	Open   SourceOpener
	Logger *slog.Logger
}

func NewNameResolver(open SourceOpener, logger *slog.Logger) *NameResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &NameResolver{Open: open, Logger: logger}
}

// Plan loads the tiers a level needs and returns the ordered name writes.
// Result.Unavailable is set when the source could not be opened; callers
// must then leave their table as it is.
func (r *NameResolver) Plan(ctx context.Context, level int) ([]item.NameWrite, Result) {
	log := r.logger()
	normalized := NormalizeLevel(level)
	if normalized != level {
		log.Warn("name patch level out of range, patching disabled", "patch_level", level)
	}
	result := Result{Level: normalized}
	if normalized == 0 {
		return nil, result
	}

	data, failed, err := r.load(ctx, TiersFor(normalized))
	if err != nil {
		log.Warn("item patch source unavailable, keeping current names", "patch_level", normalized, "error", err)
		result.Unavailable = true
		return nil, result
	}
	result.FailedTiers = failed
	return PlanNames(normalized, data), result
}

// Apply patches table for the given level. Every failure is logged and
// leaves the affected names at their previous values.
func (r *NameResolver) Apply(ctx context.Context, level int, table *item.Table) Result {
	writes, result := r.Plan(ctx, level)
	if result.Level == 0 || result.Unavailable {
		return result
	}
	result.Applied, result.OutOfRange = table.Apply(writes)
	r.logResult(result)
	return result
}

// logResult reports the outcome of writes planned by Plan.
func (r *NameResolver) logResult(result Result) {
	log := r.logger()
	if result.OutOfRange > 0 {
		log.Warn("skipped name patches for unknown item ids", "patch_level", result.Level, "count", result.OutOfRange)
	}
	log.Info("applied item name patches", "patch_level", result.Level, "applied", result.Applied)
}

// Report records how many planned writes landed and logs the outcome.
func (r *NameResolver) Report(result Result, applied, outOfRange int) Result {
	result.Applied, result.OutOfRange = applied, outOfRange
	if result.Level != 0 && !result.Unavailable {
		r.logResult(result)
	}
	return result
}

func (r *NameResolver) load(ctx context.Context, tiers []store.Tier) (TierData, []store.Tier, error) {
	src, err := r.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := src.Close(ctx); err != nil {
			r.logger().Warn("closing item patch source", "error", err)
		}
	}()

	data := make(TierData, len(tiers))
	var failed []store.Tier
	for _, tier := range tiers {
		patches, err := src.QueryTier(ctx, tier)
		if err != nil {
			r.logger().Warn("item patch tier query failed, skipping tier", "tier", int(tier), "error", err)
			failed = append(failed, tier)
			continue
		}
		data[tier] = IndexPatches(patches)
	}
	return data, failed, nil
}

func (r *NameResolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
