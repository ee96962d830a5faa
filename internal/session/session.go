// Package session owns the item table for one running client and re-applies
// patches when the profile changes.
package session

import (
	"context"
	"log/slog"
	"sync"

	"itempatch/internal/config"
	"itempatch/internal/item"
	"itempatch/internal/patch"
)

type Session struct {
	mu       sync.Mutex
	table    *item.Table
	base     item.Snapshot
	settings *config.Store
	names    *patch.NameResolver
	log      *slog.Logger
}

type ApplyResult struct {
	Profile          string
	Names            patch.Result
	CommandsCleared  int
	CommandPatchMode int
}

// New takes ownership of table. Its current contents become the base data
// restored before every patch pass.
func New(table *item.Table, settings *config.Store, names *patch.NameResolver, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		table:    table,
		base:     table.Snapshot(),
		settings: settings,
		names:    names,
		log:      logger,
	}
}

func (s *Session) Table() *item.Table {
	return s.table
}

func (s *Session) Start(ctx context.Context) ApplyResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx)
}

func (s *Session) SwitchProfile(ctx context.Context, name string) (ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.settings.SetCurrentProfile(name); err != nil {
		return ApplyResult{}, err
	}
	return s.apply(ctx), nil
}

// apply plans the name patch before touching the table. The rebuild from the
// base data then runs under one table lock, so a lower patch level never
// keeps names from a previous, higher one. When the patch source is
// unavailable the current names are kept and only commands are rebuilt.
func (s *Session) apply(ctx context.Context) ApplyResult {
	profile := s.settings.CurrentProfile()
	res := ApplyResult{
		Profile:          profile,
		CommandPatchMode: s.settings.CommandPatchMode(profile),
	}

	writes, names := s.names.Plan(ctx, s.settings.NamePatchLevel(profile))
	suppressed := patch.SuppressedRareEdibles(res.CommandPatchMode)
	applied, outOfRange, cleared := s.table.Rebuild(s.base, names.Unavailable, writes, suppressed)
	res.Names = s.names.Report(names, applied, outOfRange)
	res.CommandsCleared = cleared

	s.log.Info("item patches applied",
		"profile", profile,
		"names_applied", res.Names.Applied,
		"commands_cleared", res.CommandsCleared,
	)
	return res
}

// ShouldSwapCommand reports whether the eat/drink option of itemID is swapped
// under the current profile and speedrun setting.
func (s *Session) ShouldSwapCommand(itemID int) bool {
	profile := s.settings.CurrentProfile()
	return patch.ShouldSwapQuestEdible(itemID, s.settings.CommandPatchMode(profile), s.settings.SpeedrunOverride(profile))
}

func (s *Session) SetSpeedrunOverride(on bool) error {
	return s.settings.SetSpeedrunOverride(s.settings.CurrentProfile(), on)
}
