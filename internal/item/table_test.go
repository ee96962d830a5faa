package item

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Apply(t *testing.T) {
	table := NewTable(3)
	require.NoError(t, table.Set(1, "Base", "Eat"))

	applied, skipped := table.Apply([]NameWrite{
		{ItemID: 1, Name: "First"},
		{ItemID: 1, Name: "Second"},
		{ItemID: 7, Name: "Unknown"},
		{ItemID: -1, Name: "Negative"},
	})
	assert.Equal(t, 2, applied)
	assert.Equal(t, 2, skipped)

	name, ok := table.Name(1)
	assert.True(t, ok)
	assert.Equal(t, "Second", name)

	command, _ := table.Command(1)
	assert.Equal(t, "Eat", command)

	_, ok = table.Name(3)
	assert.False(t, ok)
}

func TestTable_Rebuild(t *testing.T) {
	table := NewTable(3)
	require.NoError(t, table.Set(0, "Bread", "Eat"))
	require.NoError(t, table.Set(1, "Wine", "Drink"))
	base := table.Snapshot()

	table.Apply([]NameWrite{{ItemID: 0, Name: "Loaf"}, {ItemID: 1, Name: "Jug"}})
	assert.True(t, table.ClearCommand(0))
	assert.False(t, table.ClearCommand(3))
	assert.Equal(t, "Bread", base.Name(0))
	assert.Equal(t, "Eat", base.Command(0))
	assert.Equal(t, 3, base.Len())

	t.Run("resets names and commands", func(t *testing.T) {
		applied, skipped, cleared := table.Rebuild(base, false, []NameWrite{{ItemID: 1, Name: "Wine jug"}, {ItemID: 9, Name: "Ghost"}}, []int{1, 42})
		assert.Equal(t, 1, applied)
		assert.Equal(t, 1, skipped)
		assert.Equal(t, 1, cleared)

		name, _ := table.Name(0)
		assert.Equal(t, "Bread", name, "earlier writes do not survive a rebuild")
		command, _ := table.Command(0)
		assert.Equal(t, "Eat", command)
		name, _ = table.Name(1)
		assert.Equal(t, "Wine jug", name)
		command, _ = table.Command(1)
		assert.Empty(t, command)
	})

	t.Run("keeps names", func(t *testing.T) {
		applied, _, cleared := table.Rebuild(base, true, []NameWrite{{ItemID: 0, Name: "Ignored"}}, nil)
		assert.Equal(t, 0, applied)
		assert.Equal(t, 0, cleared)

		name, _ := table.Name(1)
		assert.Equal(t, "Wine jug", name)
		name, _ = table.Name(0)
		assert.Equal(t, "Bread", name)
		command, _ := table.Command(1)
		assert.Equal(t, "Drink", command, "commands always come back from base")
	})
}

func TestLoadTable(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		table, err := LoadTable(filepath.Join("testdata", "items.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 719, table.Len())

		name, _ := table.Name(100)
		assert.Equal(t, "Old Name", name)
		command, _ := table.Command(246)
		assert.Equal(t, "Drink", command)
		name, ok := table.Name(500)
		assert.True(t, ok)
		assert.Empty(t, name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		path := writeTempItems(t, "items:\n  - {id: 1, name: A}\n  - {id: 1, name: B}\n")
		_, err := LoadTable(path)
		assert.True(t, errors.Is(err, ErrDuplicateID))
	})

	t.Run("negative id", func(t *testing.T) {
		_, err := ParseTable([]byte("items:\n  - {id: -4, name: A}\n"))
		assert.ErrorIs(t, err, ErrNegativeID)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseTable([]byte("items: []\n"))
		assert.ErrorIs(t, err, ErrNoItems)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseTable([]byte("items: [\n"))
		assert.Error(t, err)
	})
}

func writeTempItems(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp items: %v", err)
	}
	return path
}
