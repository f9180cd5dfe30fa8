package qtable

import (
	"fmt"
	"math"

	"github.com/spf13/viper"
)

const (
	keyInitialBuckets = "qtable.initial_buckets"
	keyMaxLoadFactor  = "qtable.max_load_factor"
	keyHashAlgorithm  = "qtable.hash_algorithm"

	// MaxInitialBuckets bounds Config.InitialBuckets.
	MaxInitialBuckets = 1 << 30
)

// Config holds the construction settings of a Table.
type Config struct {
	// InitialBuckets is rounded up to a power of two.
	InitialBuckets int
	// MaxLoadFactor is the live entries per bucket above which the bucket
	// array doubles.
	MaxLoadFactor float64
	HashAlgorithm string
	// Hash overrides HashAlgorithm when set.
	Hash HashFunc
}

// NewConfig returns the defaults: 16 buckets, a 0.75 load factor and xxhash.
func NewConfig() *Config {
	return &Config{
		InitialBuckets: 16,
		MaxLoadFactor:  0.75,
		HashAlgorithm:  HashXXHash,
	}
}

/*
NewConfigFromViper reads the table settings from v, keeping the defaults of
NewConfig for anything that is not set:

  - qtable.initial_buckets
  - qtable.max_load_factor
  - qtable.hash_algorithm ("xxhash" or "murmur3")
*/
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	config := NewConfig()
	if v == nil {
		return config, nil
	}

	if v.IsSet(keyInitialBuckets) {
		config.InitialBuckets = v.GetInt(keyInitialBuckets)
	}
	if v.IsSet(keyMaxLoadFactor) {
		config.MaxLoadFactor = v.GetFloat64(keyMaxLoadFactor)
	}
	if v.IsSet(keyHashAlgorithm) {
		config.HashAlgorithm = v.GetString(keyHashAlgorithm)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.InitialBuckets <= 0 || c.InitialBuckets > MaxInitialBuckets {
		return fmt.Errorf("%s must be in [1, %d], got %d", keyInitialBuckets, MaxInitialBuckets, c.InitialBuckets)
	}
	if !(c.MaxLoadFactor > 0) || math.IsInf(c.MaxLoadFactor, 1) {
		return fmt.Errorf("%s must be positive and finite, got %v", keyMaxLoadFactor, c.MaxLoadFactor)
	}
	if c.Hash == nil {
		if _, err := LookupHash(c.HashAlgorithm); err != nil {
			return err
		}
	}
	return nil
}

// normalized returns a copy of c with every invalid field replaced by its
// default. A Hash override is always kept.
func (c *Config) normalized() *Config {
	out := *c
	defaults := NewConfig()

	if out.InitialBuckets <= 0 || out.InitialBuckets > MaxInitialBuckets {
		out.InitialBuckets = defaults.InitialBuckets
	}
	if !(out.MaxLoadFactor > 0) || math.IsInf(out.MaxLoadFactor, 1) {
		out.MaxLoadFactor = defaults.MaxLoadFactor
	}
	if _, err := LookupHash(out.HashAlgorithm); err != nil {
		out.HashAlgorithm = defaults.HashAlgorithm
	}
	return &out
}

func (c *Config) hashFunc() HashFunc {
	if c.Hash != nil {
		return c.Hash
	}
	return hashers[c.HashAlgorithm]
}

func (c *Config) bucketCount() int {
	n := 1
	for n < c.InitialBuckets {
		n <<= 1
	}
	return n
}
