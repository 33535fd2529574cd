// Package metrics exports pixring allocator and page cache statistics as
// Prometheus metrics.
//
//	alloc, _ := pixring.NewSync(screen)
//	pages := pagecache.New[int](alloc, 0)
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(
//	    metrics.NewCollector(alloc, prometheus.Labels{"viewer": "main"}),
//	    metrics.NewCacheCollector(pages, prometheus.Labels{"viewer": "main"}),
//	)
//
// Collection runs on the scraping goroutine, so sources must be safe for
// concurrent use: pass a *pixring.SyncAllocator, not a bare Allocator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/pixring"
	"github.com/gogpu/pixring/pagecache"
)

const namespace = "pixring"

// StatsSource provides allocator statistics.
// *pixring.SyncAllocator satisfies it.
type StatsSource interface {
	Stats() pixring.Stats
}

// CacheStatsSource provides page cache statistics.
// *pagecache.Cache satisfies it.
type CacheStatsSource interface {
	Stats() pagecache.Stats
}

// Collector is a prometheus.Collector for one allocator.
type Collector struct {
	src StatsSource

	capacity    *prometheus.Desc
	used        *prometheus.Desc
	occupied    *prometheus.Desc
	live        *prometheus.Desc
	released    *prometheus.Desc
	allocations *prometheus.Desc
	failures    *prometheus.Desc
	sweeps      *prometheus.Desc
	reclaimed   *prometheus.Desc
}

// NewCollector creates a collector reading src on every scrape.
func NewCollector(src StatsSource, labels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, labels)
	}
	return &Collector{
		src:         src,
		capacity:    desc("capacity_elements", "Length of the shared pixel buffer in elements."),
		used:        desc("used_elements", "Elements held by regions that have not been released."),
		occupied:    desc("occupied_elements", "Elements held by listed regions, including released regions not yet swept."),
		live:        desc("live_regions", "Regions in the live list."),
		released:    desc("released_regions", "Released regions waiting for a reclaim sweep."),
		allocations: desc("allocations_total", "Successful region allocations."),
		failures:    desc("allocation_failures_total", "Allocations that failed for lack of space."),
		sweeps:      desc("reclaim_sweeps_total", "Reclaim sweeps over the live list."),
		reclaimed:   desc("reclaimed_regions_total", "Released regions removed by reclaim sweeps."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.used
	ch <- c.occupied
	ch <- c.live
	ch <- c.released
	ch <- c.allocations
	ch <- c.failures
	ch <- c.sweeps
	ch <- c.reclaimed
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()

	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.used, prometheus.GaugeValue, float64(s.Used))
	ch <- prometheus.MustNewConstMetric(c.occupied, prometheus.GaugeValue, float64(s.Occupied))
	ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(s.Live))
	ch <- prometheus.MustNewConstMetric(c.released, prometheus.GaugeValue, float64(s.Released))
	ch <- prometheus.MustNewConstMetric(c.allocations, prometheus.CounterValue, float64(s.Allocations))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.Failures))
	ch <- prometheus.MustNewConstMetric(c.sweeps, prometheus.CounterValue, float64(s.Sweeps))
	ch <- prometheus.MustNewConstMetric(c.reclaimed, prometheus.CounterValue, float64(s.Reclaimed))
}

// CacheCollector is a prometheus.Collector for one page cache.
type CacheCollector struct {
	src CacheStatsSource

	pages     *prometheus.Desc
	capacity  *prometheus.Desc
	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
}

// NewCacheCollector creates a collector reading src on every scrape.
func NewCacheCollector(src CacheStatsSource, labels prometheus.Labels) *CacheCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pagecache", name), help, nil, labels)
	}
	return &CacheCollector{
		src:       src,
		pages:     desc("pages", "Rendered pages currently cached."),
		capacity:  desc("capacity_pages", "Maximum number of cached pages."),
		hits:      desc("hits_total", "Page lookups served from the cache."),
		misses:    desc("misses_total", "Page lookups that had to render."),
		evictions: desc("evictions_total", "Pages dropped to make room."),
	}
}

// Describe implements prometheus.Collector.
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pages
	ch <- c.capacity
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
}

// Collect implements prometheus.Collector.
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()

	ch <- prometheus.MustNewConstMetric(c.pages, prometheus.GaugeValue, float64(s.Len))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.Evictions))
}
