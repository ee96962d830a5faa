package config

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"itempatch/internal/patch"
)

// Store is the runtime view of the profile settings. It is safe for
// concurrent use; the speedrun flag may change while the client runs.
type Store struct {
	mu       sync.RWMutex
	current  string
	profiles map[string]Profile
}

func NewStore(cfg *ClientConfig) *Store {
	s := &Store{profiles: make(map[string]Profile)}
	if cfg != nil {
		s.current = cfg.Profile
		maps.Copy(s.profiles, cfg.Profiles)
	}
	return s
}

func (s *Store) CurrentProfile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) SetCurrentProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[name]; !ok {
		return fmt.Errorf("unknown profile %q", name)
	}
	s.current = name
	return nil
}

func (s *Store) Profiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.profiles))
}

func (s *Store) NamePatchLevel(profile string) int {
	return patch.NormalizeLevel(s.profile(profile).NamePatchLevel)
}

func (s *Store) CommandPatchMode(profile string) int {
	return patch.NormalizeLevel(s.profile(profile).CommandPatchMode)
}

func (s *Store) SpeedrunOverride(profile string) bool {
	return s.profile(profile).SpeedrunOverride
}

func (s *Store) SetSpeedrunOverride(profile string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[profile]
	if !ok {
		return fmt.Errorf("unknown profile %q", profile)
	}
	p.SpeedrunOverride = on
	s.profiles[profile] = p
	return nil
}

func (s *Store) profile(name string) Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles[name]
}
