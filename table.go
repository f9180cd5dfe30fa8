package qtable

import (
	"fmt"
	"sync"

	"github.com/theapemachine/errnie"
)

// Op is an arithmetic operation Combine can apply to two handles.
type Op int

const (
	OpAdd Op = iota
	OpSubtract
	OpMultiply
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	}
	return fmt.Sprintf("op(%d)", int(op))
}

/*
Table is a unique table for exact complex values. Every distinct value is
stored in exactly one entry, reached through a Handle and kept alive while
its reference count is positive. Entries live in chained hash buckets; a
separate slot array maps handles to entries so that growing the bucket array
never invalidates a handle.

Three pinned entries, 0, 1 and 1/√2, are created with the table and are never
reclaimed.

All methods are safe for concurrent use: mutations take the write lock,
Resolve and the other queries take the read lock.
*/
type Table struct {
	mu      sync.RWMutex
	config  *Config
	hash    HashFunc
	buckets []*entry
	mask    uint64
	slots   []slot
	free    []uint32
	live    int
	pinned  int
	metrics Metrics

	zero     Handle
	one      Handle
	invSqrt2 Handle
}

/*
New creates a table seeded with the pinned constants. A nil config means
NewConfig(). Fields of config that fail Validate fall back to their defaults;
config itself is never modified.
*/
func New(config *Config) *Table {
	if config == nil {
		config = NewConfig()
	}
	if err := config.Validate(); err != nil {
		errnie.Info("qtable.New - invalid config, using defaults: %v", err)
	}
	config = config.normalized()

	n := config.bucketCount()
	t := &Table{
		config:  config,
		hash:    config.hashFunc(),
		buckets: make([]*entry, n),
		mask:    uint64(n - 1),
		slots:   make([]slot, 1), // slot 0 is reserved so the zero Handle is never live
	}

	t.zero = t.pin(ZeroValue())
	t.one = t.pin(OneValue())
	t.invSqrt2 = t.pin(InvSqrt2Value())
	t.metrics = Metrics{}

	errnie.Info(
		"qtable.New - buckets %d, max load factor %v, hash %s",
		n,
		config.MaxLoadFactor,
		config.HashAlgorithm,
	)
	return t
}

// Zero, One and InvSqrt2 return the pinned handles. They are never reclaimed
// and need no Retain or Release.
func (t *Table) Zero() Handle     { return t.zero }
func (t *Table) One() Handle      { return t.one }
func (t *Table) InvSqrt2() Handle { return t.invSqrt2 }

func (t *Table) pin(v Complex) Handle {
	h := t.intern(v)
	e := t.slots[h.slot].entry
	if !e.pinned {
		e.pinned = true
		e.refs = 0
		t.pinned++
	}
	return h
}

/*
LookupOrInsert returns the handle of the entry holding v, creating it with a
reference count of one if the value is new and incrementing the count
otherwise. It is the only way entries come into existence.
*/
func (t *Table) LookupOrInsert(v Complex) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.intern(v)
}

// Find returns the handle of v without inserting it or touching its count.
func (t *Table) Find(v Complex) (Handle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	h := t.hash(v.Bytes())
	for e := t.buckets[h&t.mask]; e != nil; e = e.next {
		if e.hash == h && e.value.Equal(v) {
			return t.handleOf(e), true
		}
	}
	return Handle{}, false
}

// intern must be called with the write lock held.
func (t *Table) intern(v Complex) Handle {
	t.metrics.Lookups++

	h := t.hash(v.Bytes())
	b := h & t.mask

	var last *entry
	for e := t.buckets[b]; e != nil; e = e.next {
		// Equal hashes are not enough: colliding keys are told apart by value.
		if e.hash == h && e.value.Equal(v) {
			e.refs++
			t.metrics.Hits++
			return t.handleOf(e)
		}
		last = e
	}

	e := &entry{value: v, refs: 1, hash: h, slot: t.allocSlot()}
	t.slots[e.slot].entry = e
	if last == nil {
		t.buckets[b] = e
	} else {
		last.next = e
	}
	t.live++
	t.metrics.Inserts++

	if float64(t.live) > t.config.MaxLoadFactor*float64(len(t.buckets)) {
		t.grow()
	}
	return t.handleOf(e)
}

func (t *Table) handleOf(e *entry) Handle {
	return Handle{slot: e.slot, gen: t.slots[e.slot].gen}
}

func (t *Table) allocSlot() uint32 {
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		return idx
	}
	t.slots = append(t.slots, slot{gen: 1})
	return uint32(len(t.slots) - 1)
}

// grow doubles the bucket array and relinks every entry by its cached hash.
// Handles go through the slot array and are unaffected.
func (t *Table) grow() {
	buckets := make([]*entry, len(t.buckets)*2)
	mask := uint64(len(buckets) - 1)

	for _, head := range t.buckets {
		for e := head; e != nil; {
			next := e.next
			b := e.hash & mask
			e.next = buckets[b]
			buckets[b] = e
			e = next
		}
	}

	t.buckets = buckets
	t.mask = mask
	t.metrics.Resizes++

	errnie.Info("qtable.grow - buckets %d, live %d", len(buckets), t.live)
}

type slotState int

const (
	slotLive slotState = iota
	slotReclaimed
	slotInvalid
)

// lookup must be called with the lock held.
func (t *Table) lookup(h Handle) (*entry, slotState) {
	if h.gen == 0 || int(h.slot) >= len(t.slots) {
		return nil, slotInvalid
	}
	s := t.slots[h.slot]
	switch {
	case h.gen == s.gen && s.entry != nil:
		return s.entry, slotLive
	case h.gen < s.gen:
		return nil, slotReclaimed
	}
	return nil, slotInvalid
}

// Resolve returns the value behind h, or ErrDanglingHandle if h no longer
// designates a live entry.
func (t *Table) Resolve(h Handle) (Complex, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.resolve("resolve", h)
}

func (t *Table) resolve(op string, h Handle) (Complex, error) {
	e, state := t.lookup(h)
	if state != slotLive {
		return Complex{}, danglingHandle(op, h)
	}
	return e.value, nil
}

// MustResolve is Resolve for callers that treat a dangling handle as fatal.
func (t *Table) MustResolve(h Handle) Complex {
	v, err := t.Resolve(h)
	if err != nil {
		panic(err)
	}
	return v
}

// Retain adds an owner to h. Pinned counts are tracked but never matter.
func (t *Table) Retain(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, state := t.lookup(h)
	if state != slotLive {
		return danglingHandle("retain", h)
	}
	e.refs++
	return nil
}

/*
Release drops an owner of h. When the count reaches zero a non-pinned entry
is unlinked from its bucket and its slot recycled under a new generation.
Releasing a handle whose entry has already been reclaimed fails with
ErrDoubleRelease and changes nothing. Releasing a pinned handle never fails.
*/
func (t *Table) Release(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, state := t.lookup(h)
	switch state {
	case slotReclaimed:
		return doubleRelease(h)
	case slotInvalid:
		return danglingHandle("release", h)
	}

	t.metrics.Releases++
	if e.refs > 0 {
		e.refs--
	}
	if e.reclaimable() {
		t.reclaim(e)
	}
	return nil
}

// MustRelease is Release for callers that treat lifecycle errors as fatal.
func (t *Table) MustRelease(h Handle) {
	if err := t.Release(h); err != nil {
		panic(err)
	}
}

func (t *Table) reclaim(e *entry) {
	for p := &t.buckets[e.hash&t.mask]; *p != nil; p = &(*p).next {
		if *p == e {
			*p = e.next
			break
		}
	}
	e.next = nil

	s := &t.slots[e.slot]
	s.entry = nil
	s.gen++
	// A wrapped generation would let old handles alias the slot, so it is retired.
	if s.gen != 0 {
		t.free = append(t.free, e.slot)
	}

	t.live--
	t.metrics.Reclaims++
}

/*
Combine resolves a and b, applies op to their values and interns the result,
returning a new owned handle. The operand handles are left untouched.
*/
func (t *Table) Combine(op Op, a, b Handle) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	x, err := t.resolve("combine", a)
	if err != nil {
		return Handle{}, err
	}
	y, err := t.resolve("combine", b)
	if err != nil {
		return Handle{}, err
	}

	var v Complex
	switch op {
	case OpAdd:
		v, err = x.Add(y)
	case OpSubtract:
		v, err = x.Sub(y)
	case OpMultiply:
		v, err = x.Mul(y)
	default:
		return Handle{}, fmt.Errorf("combine: unsupported %s", op)
	}
	if err != nil {
		return Handle{}, err
	}

	return t.intern(v), nil
}

// RefCount reports the current count of h.
func (t *Table) RefCount(h Handle) (uint32, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, state := t.lookup(h)
	if state != slotLive {
		return 0, danglingHandle("refcount", h)
	}
	return e.refs, nil
}

// IsPinned reports whether h designates one of the resident constants.
func (t *Table) IsPinned(h Handle) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, state := t.lookup(h)
	return state == slotLive && e.pinned
}

// Len is the number of live entries, pinned ones included.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.live
}

// Buckets is the current size of the bucket array.
func (t *Table) Buckets() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.buckets)
}

func (t *Table) Metrics() MetricsSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	longest := 0
	for _, head := range t.buckets {
		n := 0
		for e := head; e != nil; e = e.next {
			n++
		}
		if n > longest {
			longest = n
		}
	}

	return MetricsSnapshot{
		Metrics:      t.metrics,
		Live:         t.live,
		Pinned:       t.pinned,
		Buckets:      len(t.buckets),
		LoadFactor:   float64(t.live) / float64(len(t.buckets)),
		LongestChain: longest,
	}
}
