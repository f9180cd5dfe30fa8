package qtable

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestConfig(t *testing.T) {
	Convey("Given the default config", t, func() {
		config := NewConfig()

		Convey("Then it should carry the documented defaults", func() {
			So(config.InitialBuckets, ShouldEqual, 16)
			So(config.MaxLoadFactor, ShouldEqual, 0.75)
			So(config.HashAlgorithm, ShouldEqual, HashXXHash)
			So(config.Validate(), ShouldBeNil)
		})

		Convey("Then the bucket count should round up to a power of two", func() {
			config.InitialBuckets = 10
			So(config.bucketCount(), ShouldEqual, 16)
			config.InitialBuckets = 1
			So(config.bucketCount(), ShouldEqual, 1)
		})
	})

	Convey("Given a viper instance", t, func() {
		v := viper.New()

		Convey("When nothing is set", func() {
			config, err := NewConfigFromViper(v)

			Convey("Then the defaults should apply", func() {
				So(err, ShouldBeNil)
				So(config, ShouldResemble, NewConfig())
			})
		})

		Convey("When the table keys are set", func() {
			v.Set("qtable.initial_buckets", 64)
			v.Set("qtable.max_load_factor", 0.5)
			v.Set("qtable.hash_algorithm", HashMurmur3)

			config, err := NewConfigFromViper(v)

			Convey("Then they should be read", func() {
				So(err, ShouldBeNil)
				So(config.InitialBuckets, ShouldEqual, 64)
				So(config.MaxLoadFactor, ShouldEqual, 0.5)
				So(config.HashAlgorithm, ShouldEqual, HashMurmur3)
			})

			Convey("Then a table built from it should use murmur3", func() {
				table := New(config)
				h := table.LookupOrInsert(FromInts(3, 4))

				So(table.Buckets(), ShouldEqual, 64)
				found, ok := table.Find(FromInts(3, 4))
				So(ok, ShouldBeTrue)
				So(found, ShouldResemble, h)
			})
		})

		Convey("When the hash algorithm is unknown", func() {
			v.Set("qtable.hash_algorithm", "md5")
			_, err := NewConfigFromViper(v)

			Convey("Then loading should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "md5")
			})
		})

		Convey("When the load factor is not positive", func() {
			v.Set("qtable.max_load_factor", 0)
			_, err := NewConfigFromViper(v)

			Convey("Then loading should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given out of range settings", t, func() {
		for _, mutate := range []func(*Config){
			func(c *Config) { c.MaxLoadFactor = math.NaN() },
			func(c *Config) { c.MaxLoadFactor = math.Inf(1) },
			func(c *Config) { c.InitialBuckets = MaxInitialBuckets + 1 },
			func(c *Config) { c.InitialBuckets = 0 },
		} {
			config := NewConfig()
			mutate(config)
			So(config.Validate(), ShouldNotBeNil)
			So(config.normalized().Validate(), ShouldBeNil)
		}
	})

	Convey("Given a nil viper instance", t, func() {
		config, err := NewConfigFromViper(nil)

		So(err, ShouldBeNil)
		So(config, ShouldResemble, NewConfig())
	})
}

func TestLookupHash(t *testing.T) {
	Convey("Given the registered hash algorithms", t, func() {
		key := FromInts(1, 2).Bytes()

		Convey("Then each should be deterministic", func() {
			for _, name := range []string{HashXXHash, HashMurmur3} {
				fn, err := LookupHash(name)
				So(err, ShouldBeNil)
				So(fn(key), ShouldEqual, fn(FromInts(1, 2).Bytes()))
			}
		})

		Convey("Then an unknown name should fail", func() {
			_, err := LookupHash("crc32")
			So(err, ShouldNotBeNil)
		})
	})
}
