package qtable

import "fmt"

/*
Handle is an opaque, copyable reference to a canonical table entry. It names
a slot and the generation of that slot, so a handle outlives any bucket
resize and is recognised as stale once its entry has been reclaimed. The zero
Handle never designates an entry.
*/
type Handle struct {
	slot uint32
	gen  uint32
}

func (h Handle) IsZero() bool {
	return h == Handle{}
}

func (h Handle) String() string {
	return fmt.Sprintf("handle(%d@%d)", h.slot, h.gen)
}
