package item

// Ground tracks the items currently visible on the ground. Items that look
// the same (same tile and type) are counted together. The zero value is
// ready to use.
type Ground struct {
	counts map[Key]int
	total  int
}

func (g *Ground) Add(r Record) {
	if g.counts == nil {
		g.counts = make(map[Key]int)
	}
	g.counts[r.Key()]++
	g.total++
}

func (g *Ground) Remove(r Record) bool {
	key := r.Key()
	n, ok := g.counts[key]
	if !ok {
		return false
	}
	if n == 1 {
		delete(g.counts, key)
	} else {
		g.counts[key] = n - 1
	}
	g.total--
	return true
}

func (g *Ground) Count(r Record) int {
	return g.counts[r.Key()]
}

func (g *Ground) Len() int {
	return g.total
}
