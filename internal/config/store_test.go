package config

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestStore(t *testing.T) {
	cfg, err := LoadClientConfig(filepath.Join("testdata", "valid_config.yaml"))
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	s := NewStore(cfg)

	if s.CurrentProfile() != "default" {
		t.Fatalf("expected default profile, got %q", s.CurrentProfile())
	}
	if got := s.NamePatchLevel("default"); got != 3 {
		t.Fatalf("expected level 3, got %d", got)
	}
	if got := s.CommandPatchMode("default"); got != 1 {
		t.Fatalf("expected mode 1, got %d", got)
	}

	t.Run("out of range reads as zero", func(t *testing.T) {
		if s.NamePatchLevel("broken") != 0 || s.CommandPatchMode("broken") != 0 {
			t.Fatalf("expected out of range values to read as 0")
		}
	})

	t.Run("unknown profile reads as zero", func(t *testing.T) {
		if s.NamePatchLevel("ghost") != 0 || s.SpeedrunOverride("ghost") {
			t.Fatalf("expected zero values for unknown profile")
		}
	})

	t.Run("speedrun toggle", func(t *testing.T) {
		if err := s.SetSpeedrunOverride("default", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !s.SpeedrunOverride("default") {
			t.Fatalf("expected override on")
		}
		if err := s.SetSpeedrunOverride("ghost", true); err == nil {
			t.Fatalf("expected error for unknown profile")
		}
	})

	t.Run("switch profile", func(t *testing.T) {
		if err := s.SetCurrentProfile("speedrun"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.CurrentProfile() != "speedrun" {
			t.Fatalf("expected speedrun profile")
		}
		if err := s.SetCurrentProfile("ghost"); err == nil {
			t.Fatalf("expected error for unknown profile")
		}
	})

	if got := s.Profiles(); !reflect.DeepEqual(got, []string{"broken", "default", "speedrun"}) {
		t.Fatalf("unexpected profiles: %v", got)
	}
}
