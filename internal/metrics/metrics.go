// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package metrics exports the statistics of BDD computations as Prometheus
// metrics.
package metrics

import (
	"io"
	"math/big"
	"strconv"
	"sync"

	"github.com/dalzilio/cedd/internal/problems"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "cedd"

var labels = []string{"problem", "size"}

type metric struct {
	desc  *prometheus.Desc
	vtype prometheus.ValueType
	value func(r problems.Result) float64
}

func newMetric(name, help string, vtype prometheus.ValueType, value func(r problems.Result) float64) metric {
	return metric{
		desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, labels, nil),
		vtype: vtype,
		value: value,
	}
}

var metrics = []metric{
	newMetric("solutions", "Number of solutions found.", prometheus.GaugeValue,
		func(r problems.Result) float64 {
			if r.Count == nil {
				return 0
			}
			f, _ := new(big.Float).SetInt(r.Count).Float64()
			return f
		}),
	newMetric("result_nodes", "Number of nodes in the BDD of the solution.", prometheus.GaugeValue,
		func(r problems.Result) float64 { return float64(r.Nodes) }),
	newMetric("duration_seconds", "Duration of the computation.", prometheus.GaugeValue,
		func(r problems.Result) float64 { return r.Duration.Seconds() }),
	newMetric("table_nodes", "Number of slots in the node table.", prometheus.GaugeValue,
		func(r problems.Result) float64 { return float64(r.Stats.Nodes) }),
	newMetric("live_nodes", "Number of nodes in use.", prometheus.GaugeValue,
		func(r problems.Result) float64 { return float64(r.Stats.LiveNodes) }),
	newMetric("produced_nodes_total", "Number of nodes ever created.", prometheus.CounterValue,
		func(r problems.Result) float64 { return float64(r.Stats.Produced) }),
	newMetric("resizes_total", "Number of node table extensions.", prometheus.CounterValue,
		func(r problems.Result) float64 { return float64(r.Stats.Resizes) }),
	newMetric("unique_hits_total", "Unique table lookups returning an existing node.", prometheus.CounterValue,
		func(r problems.Result) float64 { return float64(r.Stats.UniqueHit) }),
	newMetric("unique_misses_total", "Unique table lookups creating a node.", prometheus.CounterValue,
		func(r problems.Result) float64 { return float64(r.Stats.UniqueMiss) }),
	newMetric("cache_hits_total", "Operation cache hits.", prometheus.CounterValue,
		func(r problems.Result) float64 { return float64(r.Stats.CacheHits) }),
	newMetric("cache_misses_total", "Operation cache misses.", prometheus.CounterValue,
		func(r problems.Result) float64 { return float64(r.Stats.CacheMisses) }),
	newMetric("gc_total", "Number of garbage collections.", prometheus.CounterValue,
		func(r problems.Result) float64 { return float64(r.Stats.GCCount) }),
	newMetric("gc_reclaimed_total", "Number of nodes reclaimed by the GC.", prometheus.CounterValue,
		func(r problems.Result) float64 { return float64(r.Stats.GCReclaimed) }),
	newMetric("gc_seconds_total", "Time spent in garbage collection.", prometheus.CounterValue,
		func(r problems.Result) float64 { return r.Stats.GCTime.Seconds() }),
}

type key struct {
	name string
	size int
}

// Collector is a prometheus.Collector that reports the last result observed
// for each problem instance. It is safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	results map[key]problems.Result
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{results: make(map[key]problems.Result)}
}

// Observe records r, replacing any previous result for the same problem and
// size.
func (c *Collector) Observe(r problems.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key{r.Name, r.Size}] = r
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range metrics {
		ch <- m.desc
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, r := range c.results {
		size := strconv.Itoa(k.size)
		for _, m := range metrics {
			ch <- prometheus.MustNewConstMetric(m.desc, m.vtype, m.value(r), k.name, size)
		}
	}
}

// Write gathers the metrics of the collectors registered in g and writes them
// to w in the Prometheus text exposition format.
func Write(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "cannot gather metrics")
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "cannot write metric %s", mf.GetName())
		}
	}
	return nil
}
