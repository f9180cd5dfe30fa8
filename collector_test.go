package qtable

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCollector(t *testing.T) {
	Convey("Given a collector over a table", t, func() {
		table := New(nil)
		table.LookupOrInsert(FromInt(5))
		table.LookupOrInsert(FromInt(5))

		collector := NewCollector(table, "sim")

		Convey("Then it should register cleanly", func() {
			So(prometheus.NewRegistry().Register(collector), ShouldBeNil)
		})

		Convey("Then it should emit every table metric", func() {
			So(testutil.CollectAndCount(collector), ShouldEqual, 8)
			So(testutil.CollectAndCount(collector, "sim_qtable_hits_total"), ShouldEqual, 1)
		})

		Convey("Then the snapshot should back the exported values", func() {
			exported := table.Metrics().ExportMetrics()
			So(exported["live"], ShouldEqual, 4)
			So(exported["hits"], ShouldEqual, uint64(1))
			So(exported["hit_rate"], ShouldEqual, 0.5)
		})
	})
}
