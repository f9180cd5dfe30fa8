package qtable

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes a table's metrics to Prometheus.
type Collector struct {
	table *Table

	live     *prometheus.Desc
	buckets  *prometheus.Desc
	chain    *prometheus.Desc
	lookups  *prometheus.Desc
	hits     *prometheus.Desc
	inserts  *prometheus.Desc
	reclaims *prometheus.Desc
	resizes  *prometheus.Desc
}

// NewCollector describes t under namespace; register the result with a
// prometheus.Registerer.
func NewCollector(t *Table, namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "qtable", name), help, nil, nil)
	}

	return &Collector{
		table:    t,
		live:     desc("entries", "Live entries, pinned constants included."),
		buckets:  desc("buckets", "Size of the bucket array."),
		chain:    desc("longest_chain", "Length of the longest collision chain."),
		lookups:  desc("lookups_total", "Lookup-or-insert calls."),
		hits:     desc("hits_total", "Lookups answered by an existing entry."),
		inserts:  desc("inserts_total", "Entries created."),
		reclaims: desc("reclaims_total", "Entries reclaimed after their count reached zero."),
		resizes:  desc("resizes_total", "Bucket array doublings."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.live, c.buckets, c.chain, c.lookups, c.hits, c.inserts, c.reclaims, c.resizes,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector from a single Metrics snapshot.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.table.Metrics()

	ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(s.Live))
	ch <- prometheus.MustNewConstMetric(c.buckets, prometheus.GaugeValue, float64(s.Buckets))
	ch <- prometheus.MustNewConstMetric(c.chain, prometheus.GaugeValue, float64(s.LongestChain))
	ch <- prometheus.MustNewConstMetric(c.lookups, prometheus.CounterValue, float64(s.Lookups))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.inserts, prometheus.CounterValue, float64(s.Inserts))
	ch <- prometheus.MustNewConstMetric(c.reclaims, prometheus.CounterValue, float64(s.Reclaims))
	ch <- prometheus.MustNewConstMetric(c.resizes, prometheus.CounterValue, float64(s.Resizes))
}
