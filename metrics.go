package qtable

// Metrics counts table activity. It is guarded by the table lock.
type Metrics struct {
	Lookups  uint64
	Hits     uint64
	Inserts  uint64
	Releases uint64
	Reclaims uint64
	Resizes  uint64
}

// MetricsSnapshot is a point-in-time copy of the counters plus the shape of
// the bucket array.
type MetricsSnapshot struct {
	Metrics

	Live         int
	Pinned       int
	Buckets      int
	LoadFactor   float64
	LongestChain int
}

// HitRate is the share of lookups answered by an existing entry.
func (s MetricsSnapshot) HitRate() float64 {
	if s.Lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Lookups)
}

func (s MetricsSnapshot) ExportMetrics() map[string]interface{} {
	return map[string]interface{}{
		"lookups":       s.Lookups,
		"hits":          s.Hits,
		"hit_rate":      s.HitRate(),
		"inserts":       s.Inserts,
		"releases":      s.Releases,
		"reclaims":      s.Reclaims,
		"resizes":       s.Resizes,
		"live":          s.Live,
		"pinned":        s.Pinned,
		"buckets":       s.Buckets,
		"load_factor":   s.LoadFactor,
		"longest_chain": s.LongestChain,
	}
}
