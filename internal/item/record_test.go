package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Equal(t *testing.T) {
	a := Record{X: 10, Y: 20, Width: 1, Height: 1, TypeID: 718}
	b := Record{X: 10, Y: 20, Width: 3, Height: 5, TypeID: 718}
	c := Record{X: 10, Y: 20, Width: 1, Height: 1, TypeID: 718}

	t.Run("width and height ignored", func(t *testing.T) {
		assert.True(t, a.Equal(b))
		assert.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("equivalence laws", func(t *testing.T) {
		assert.True(t, a.Equal(a), "reflexive")
		assert.Equal(t, a.Equal(b), b.Equal(a), "symmetric")
		assert.True(t, a.Equal(b) && b.Equal(c) && a.Equal(c), "transitive")
	})

	t.Run("identity fields differ", func(t *testing.T) {
		assert.False(t, a.Equal(Record{X: 11, Y: 20, TypeID: 718}))
		assert.False(t, a.Equal(Record{X: 10, Y: 21, TypeID: 718}))
		assert.False(t, a.Equal(Record{X: 10, Y: 20, TypeID: 719}))
	})

	t.Run("usable as map key", func(t *testing.T) {
		seen := map[Key]int{}
		seen[a.Key()]++
		seen[b.Key()]++
		assert.Equal(t, 2, seen[c.Key()])
	})
}

func TestRecord_NameIsLazy(t *testing.T) {
	table := NewTable(101)
	is := assert.New(t)
	is.NoError(table.Set(100, "Old Name", ""))

	r := Record{X: 1, Y: 1, TypeID: 100}
	is.Equal("Old Name", r.Name(table))

	table.Apply([]NameWrite{{ItemID: 100, Name: "Tier3 Name", Tier: 3}})
	is.Equal("Tier3 Name", r.Name(table))

	is.Equal("", Record{TypeID: 5000}.Name(table))
	is.Equal("", r.Name(nil))
}

func TestGround_Count(t *testing.T) {
	g := &Ground{}
	g.Add(Record{X: 5, Y: 5, Width: 1, Height: 1, TypeID: 10})
	g.Add(Record{X: 5, Y: 5, Width: 2, Height: 2, TypeID: 10})
	g.Add(Record{X: 6, Y: 5, TypeID: 10})

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.Count(Record{X: 5, Y: 5, TypeID: 10}))
	assert.Equal(t, 1, g.Count(Record{X: 6, Y: 5, TypeID: 10}))
	assert.Equal(t, 0, g.Count(Record{X: 7, Y: 5, TypeID: 10}))

	assert.True(t, g.Remove(Record{X: 5, Y: 5, TypeID: 10}))
	assert.Equal(t, 1, g.Count(Record{X: 5, Y: 5, TypeID: 10}))
	assert.False(t, g.Remove(Record{X: 9, Y: 9, TypeID: 10}))

	assert.Equal(t, 2, g.Len())
}

func TestGround_ZeroValue(t *testing.T) {
	var g Ground
	assert.Equal(t, 0, g.Count(Record{X: 1}))
	assert.False(t, g.Remove(Record{X: 1}))

	g.Add(Record{X: 1})
	assert.Equal(t, 1, g.Count(Record{X: 1, Width: 3}))
	assert.Equal(t, 1, g.Len())
}
