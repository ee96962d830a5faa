package item

import (
	"fmt"
	"sync"
)

// NameWrite is a single name override destined for the shared table.
type NameWrite struct {
	ItemID int
	Name   string
	Tier   int
}

// Table holds the names and commands of every known item type, indexed by
// item type id. The resolvers are its only writers.
type Table struct {
	mu       sync.RWMutex
	names    []string
	commands []string
}

type Snapshot struct {
	names    []string
	commands []string
}

func NewTable(size int) *Table {
	if size < 0 {
		size = 0
	}
	return &Table{
		names:    make([]string, size),
		commands: make([]string, size),
	}
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}

func (t *Table) Name(id int) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || id >= len(t.names) {
		return "", false
	}
	return t.names[id], true
}

func (t *Table) Command(id int) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || id >= len(t.commands) {
		return "", false
	}
	return t.commands[id], true
}

func (t *Table) Set(id int, name, command string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.names) {
		return fmt.Errorf("item id %d out of range [0,%d)", id, len(t.names))
	}
	t.names[id] = name
	t.commands[id] = command
	return nil
}

// Apply writes names in order under a single lock, so later writes for the
// same id win. It returns the number of writes applied and the number skipped
// because their id is not a known item type.
func (t *Table) Apply(writes []NameWrite) (applied, skipped int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, w := range writes {
		if w.ItemID < 0 || w.ItemID >= len(t.names) {
			skipped++
			continue
		}
		t.names[w.ItemID] = w.Name
		applied++
	}
	return applied, skipped
}

// Rebuild resets the table to base, applies writes and clears the commands
// of clearCommands, all under one write lock so readers never observe a
// partial state. With keepNames the current names survive the reset and
// writes are ignored; only commands are rebuilt.
func (t *Table) Rebuild(base Snapshot, keepNames bool, writes []NameWrite, clearCommands []int) (applied, skipped, cleared int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !keepNames {
		t.names = append(t.names[:0], base.names...)
		for _, w := range writes {
			if w.ItemID < 0 || w.ItemID >= len(t.names) {
				skipped++
				continue
			}
			t.names[w.ItemID] = w.Name
			applied++
		}
	}
	t.commands = append(t.commands[:0], base.commands...)
	for _, id := range clearCommands {
		if id >= 0 && id < len(t.commands) {
			t.commands[id] = ""
			cleared++
		}
	}
	return applied, skipped, cleared
}

func (t *Table) ClearCommand(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.commands) {
		return false
	}
	t.commands[id] = ""
	return true
}

func (t *Table) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		names:    append([]string(nil), t.names...),
		commands: append([]string(nil), t.commands...),
	}
}

func (s Snapshot) Name(id int) string {
	if id < 0 || id >= len(s.names) {
		return ""
	}
	return s.names[id]
}

func (s Snapshot) Command(id int) string {
	if id < 0 || id >= len(s.commands) {
		return ""
	}
	return s.commands[id]
}

func (s Snapshot) Len() int {
	return len(s.names)
}
