// Package metrics exports allocator statistics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/arenakit/alloc"
)

const namespace = "arena"

// Collector snapshots an allocator on every scrape. The source must be safe
// to call from the scraping goroutine: pass an *alloc.Locked when the
// allocator is in use elsewhere.
type Collector struct {
	src alloc.Heap

	size            *prometheus.Desc
	freeBytes       *prometheus.Desc
	freeBlocks      *prometheus.Desc
	allocatedBytes  *prometheus.Desc
	allocatedBlocks *prometheus.Desc
	largestFree     *prometheus.Desc

	calls          *prometheus.Desc
	slowPath       *prometheus.Desc
	coalesce       *prometheus.Desc
	reallocPaths   *prometheus.Desc
	extends        *prometheus.Desc
	extendBytes    *prometheus.Desc
	extendFailures *prometheus.Desc
	trimBytes      *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector for src. name becomes the "arena" label,
// so several arenas can share a registry.
func NewCollector(name string, src alloc.Heap) *Collector {
	labels := prometheus.Labels{"arena": name}
	desc := func(metric, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", metric), help, variable, labels)
	}
	return &Collector{
		src: src,

		size:            desc("size_bytes", "Total arena size including sentinels."),
		freeBytes:       desc("free_bytes", "Bytes held by free blocks."),
		freeBlocks:      desc("free_blocks", "Number of free blocks."),
		allocatedBytes:  desc("allocated_bytes", "Bytes held by allocated blocks, tags included."),
		allocatedBlocks: desc("allocated_blocks", "Number of allocated blocks."),
		largestFree:     desc("largest_free_bytes", "Size of the largest free block."),

		calls:          desc("calls_total", "Allocator entry point calls.", "op"),
		slowPath:       desc("alloc_slow_path_total", "Allocations that had to extend the arena."),
		coalesce:       desc("coalesce_total", "Releases by neighbour merge case.", "case"),
		reallocPaths:   desc("realloc_path_total", "Resizes by the path that satisfied them.", "path"),
		extends:        desc("extend_total", "Successful arena extensions."),
		extendBytes:    desc("extend_bytes_total", "Bytes added by arena extensions."),
		extendFailures: desc("extend_failures_total", "Extensions refused by the extender."),
		trimBytes:      desc("trim_bytes_total", "Bytes returned to the extender by Trim."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.size, c.freeBytes, c.freeBlocks, c.allocatedBytes, c.allocatedBlocks, c.largestFree,
		c.calls, c.slowPath, c.coalesce, c.reallocPaths,
		c.extends, c.extendBytes, c.extendFailures, c.trimBytes,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()

	gauge := func(d *prometheus.Desc, v int, lv ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v), lv...)
	}
	counter := func(d *prometheus.Desc, v uint64, lv ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), lv...)
	}

	gauge(c.size, s.ArenaSize)
	gauge(c.freeBytes, s.FreeBytes)
	gauge(c.freeBlocks, s.FreeBlocks)
	gauge(c.allocatedBytes, s.AllocatedBytes)
	gauge(c.allocatedBlocks, s.AllocatedBlocks)
	gauge(c.largestFree, s.LargestFree)

	counter(c.calls, s.AllocCalls, "alloc")
	counter(c.calls, s.FreeCalls, "free")
	counter(c.calls, s.ReallocCalls, "realloc")
	counter(c.slowPath, s.AllocSlowPath)

	counter(c.coalesce, s.CoalesceNone, "none")
	counter(c.coalesce, s.CoalesceNext, "next")
	counter(c.coalesce, s.CoalescePrev, "prev")
	counter(c.coalesce, s.CoalesceBoth, "both")

	counter(c.reallocPaths, s.ShrinkInPlace, "shrink")
	counter(c.reallocPaths, s.GrowRight, "right")
	counter(c.reallocPaths, s.GrowLeft, "left")
	counter(c.reallocPaths, s.GrowBoth, "both")
	counter(c.reallocPaths, s.GrowAtEnd, "end")
	counter(c.reallocPaths, s.Relocations, "relocate")

	counter(c.extends, s.Extends)
	counter(c.extendBytes, s.ExtendBytes)
	counter(c.extendFailures, s.ExtendFailures)
	counter(c.trimBytes, s.TrimBytes)
}
