package qtable

// entry is the unit of storage. Only the table's buckets own entries; callers
// see them through a Handle.
type entry struct {
	value  Complex
	refs   uint32
	pinned bool
	hash   uint64
	slot   uint32
	next   *entry // next entry in the same bucket
}

// reclaimable is the single reclamation check.
func (e *entry) reclaimable() bool {
	return e.refs == 0 && !e.pinned
}

// slot is the stable indirection between a Handle and its entry.
// gen is bumped every time the slot's entry is reclaimed.
type slot struct {
	entry *entry
	gen   uint32
}
