package item

// Record is one item lying in the world. Width and Height are rendering hints
// and take no part in identity.
type Record struct {
	X      int
	Y      int
	Width  int
	Height int
	TypeID int
}

type Key struct {
	X      int
	Y      int
	TypeID int
}

func (r Record) Key() Key {
	return Key{X: r.X, Y: r.Y, TypeID: r.TypeID}
}

func (r Record) Equal(other Record) bool {
	return r.Key() == other.Key()
}

func (r Record) Hash() uint64 {
	h := uint64(14695981039346656037)
	for _, v := range [...]int{r.X, r.Y, r.TypeID} {
		h ^= uint64(int64(v))
		h *= 1099511628211
	}
	return h
}

// Name resolves the record's name against the table at call time.
func (r Record) Name(t *Table) string {
	if t == nil {
		return ""
	}
	name, _ := t.Name(r.TypeID)
	return name
}
