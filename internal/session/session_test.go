package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itempatch/internal/config"
	"itempatch/internal/item"
	"itempatch/internal/patch"
	"itempatch/internal/store"
)

type memSource map[store.Tier][]store.NamePatch

func (m memSource) QueryTier(ctx context.Context, tier store.Tier) ([]store.NamePatch, error) {
	return m[tier], nil
}

func (m memSource) Close(ctx context.Context) error { return nil }

func newSession(t *testing.T) *Session {
	t.Helper()
	return newSessionWithSource(t, nil)
}

// newSessionWithSource builds a session whose patch source fails to open
// while *down is true.
func newSessionWithSource(t *testing.T, down *bool) *Session {
	t.Helper()
	table := item.NewTable(800)
	require.NoError(t, table.Set(100, "Old Name", ""))
	require.NoError(t, table.Set(246, "Half full wine jug", "Drink"))
	require.NoError(t, table.Set(718, "Giant Carp", "Eat"))

	src := memSource{
		store.Tier1: {{ItemID: 100, Name: "Tier1 Name"}},
		store.Tier3: {{ItemID: 100, Name: "Tier3 Name"}},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := patch.NewNameResolver(func(ctx context.Context) (store.PatchSource, error) {
		if down != nil && *down {
			return nil, errors.New("patch store unreachable")
		}
		return src, nil
	}, log)

	settings := config.NewStore(&config.ClientConfig{
		Profile: "full",
		Profiles: map[string]config.Profile{
			"full":  {NamePatchLevel: 3, CommandPatchMode: 3},
			"half":  {NamePatchLevel: 2, CommandPatchMode: 2},
			"plain": {},
			"rares": {NamePatchLevel: 3, CommandPatchMode: 1},
		},
	})
	return New(table, settings, resolver, log)
}

func TestSession_EndToEnd(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	r := item.Record{X: 3, Y: 4, Width: 1, Height: 1, TypeID: 100}

	res := s.Start(ctx)
	assert.Equal(t, "full", res.Profile)
	assert.Equal(t, "Tier3 Name", r.Name(s.Table()))
	assert.Equal(t, 4, res.CommandsCleared)
	command, _ := s.Table().Command(246)
	assert.Empty(t, command)

	_, err := s.SwitchProfile(ctx, "half")
	require.NoError(t, err)
	assert.Equal(t, "Tier1 Name", r.Name(s.Table()), "tier 1 fills the gap tier 2 leaves")
	command, _ = s.Table().Command(246)
	assert.Equal(t, "Drink", command, "mode 2 keeps rare edible commands")

	_, err = s.SwitchProfile(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, "Old Name", r.Name(s.Table()))

	_, err = s.SwitchProfile(ctx, "missing")
	assert.Error(t, err)
	assert.Equal(t, "Old Name", r.Name(s.Table()))
}

func TestSession_SpeedrunOverrideIsLive(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	s.Start(ctx)

	assert.True(t, s.ShouldSwapCommand(718))
	assert.False(t, s.ShouldSwapCommand(246))

	require.NoError(t, s.SetSpeedrunOverride(true))
	assert.False(t, s.ShouldSwapCommand(718))

	require.NoError(t, s.SetSpeedrunOverride(false))
	assert.True(t, s.ShouldSwapCommand(718))
}

func TestSession_SwitchProfileWithSourceDown(t *testing.T) {
	ctx := context.Background()
	down := false
	s := newSessionWithSource(t, &down)
	r := item.Record{TypeID: 100}

	s.Start(ctx)
	require.Equal(t, "Tier3 Name", r.Name(s.Table()))

	down = true
	res, err := s.SwitchProfile(ctx, "rares")
	require.NoError(t, err)
	assert.True(t, res.Names.Unavailable)
	assert.Zero(t, res.Names.Applied)
	assert.Equal(t, "Tier3 Name", r.Name(s.Table()), "names keep their pre-call state")

	assert.Equal(t, 4, res.CommandsCleared)
	assert.False(t, s.ShouldSwapCommand(718), "mode 1 does not swap quest edibles")
	command, _ := s.Table().Command(718)
	assert.Equal(t, "Eat", command)

	down = false
	_, err = s.SwitchProfile(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, "Old Name", r.Name(s.Table()))
	command, _ = s.Table().Command(246)
	assert.Equal(t, "Drink", command, "mode 0 brings rare edible commands back")
}
