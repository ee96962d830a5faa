package patch

import (
	"slices"

	"itempatch/internal/item"
)

// RareEdibles are collectibles whose eat/drink option is removed outright:
// half full wine jug, disk of returning, pumpkin, easter egg.
var RareEdibles = map[int]struct{}{
	246: {},
	387: {},
	422: {},
	677: {},
}

// QuestEdibles are quest items whose eat/drink option is swapped behind the
// examine option: giant carp, chocolaty milk, rock cake, nightshade.
var QuestEdibles = map[int]struct{}{
	718:  {},
	770:  {},
	1061: {},
	1086: {},
}

func SuppressedRareEdibles(mode int) []int {
	switch NormalizeLevel(mode) {
	case 1, 3:
		ids := make([]int, 0, len(RareEdibles))
		for id := range RareEdibles {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		return ids
	default:
		return []int{}
	}
}

// ShouldSwapQuestEdible reports whether the command of a quest edible is
// swapped. It is evaluated per query because the speedrun flag can change
// at any time.
func ShouldSwapQuestEdible(itemID, mode int, speedrun bool) bool {
	if speedrun {
		return false
	}
	switch NormalizeLevel(mode) {
	case 2, 3:
		_, ok := QuestEdibles[itemID]
		return ok
	default:
		return false
	}
}

// ApplyCommandPatch clears the command text of suppressed rare edibles and
// returns how many were cleared.
func ApplyCommandPatch(mode int, table *item.Table) int {
	cleared := 0
	for _, id := range SuppressedRareEdibles(mode) {
		if table.ClearCommand(id) {
			cleared++
		}
	}
	return cleared
}
