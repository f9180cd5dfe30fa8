package qtable

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// HashFunc maps the canonical key encoding of a value to a 64-bit hash.
type HashFunc func(key []byte) uint64

const (
	HashXXHash  = "xxhash"
	HashMurmur3 = "murmur3"
)

var hashers = map[string]HashFunc{
	HashXXHash:  xxhash.Sum64,
	HashMurmur3: murmur3.Sum64,
}

// LookupHash returns the named hash algorithm.
func LookupHash(name string) (HashFunc, error) {
	if fn, ok := hashers[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown hash algorithm %q", name)
}
