//////////////////////////////////////////////////////////////////////////////
//
// Prometheus collector for registry statistics
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports registry statistics to Prometheus, one series per
// channel.
type Collector struct {
	registry *Registry

	level     *prometheus.Desc
	limit     *prometheus.Desc
	refs      *prometheus.Desc
	connected *prometheus.Desc
	pushed    *prometheus.Desc
	popped    *prometheus.Desc
	overflows *prometheus.Desc
	discarded *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(r *Registry) *Collector {
	labels := []string{"channel"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("localsurface", "", name), help, labels, nil)
	}
	return &Collector{
		registry:  r,
		level:     desc("queue_level", "Buffers waiting in the jitter buffer."),
		limit:     desc("queue_limit", "Jitter buffer capacity, 0 for unbounded."),
		refs:      desc("references", "Endpoints holding the surface."),
		connected: desc("connected", "1 if both producer and consumer are attached."),
		pushed:    desc("buffers_pushed_total", "Buffers queued by the producer."),
		popped:    desc("buffers_popped_total", "Buffers taken by the consumer."),
		overflows: desc("buffers_overflowed_total", "Pushes rejected because the jitter buffer was full."),
		discarded: desc("buffers_discarded_total", "Pushes dropped because no consumer was attached."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.level
	ch <- c.limit
	ch <- c.refs
	ch <- c.connected
	ch <- c.pushed
	ch <- c.popped
	ch <- c.overflows
	ch <- c.discarded
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, st := range c.registry.Stats() {
		connected := 0.0
		if st.State.Connected() {
			connected = 1
		}
		ch <- prometheus.MustNewConstMetric(c.level, prometheus.GaugeValue, float64(st.Level), st.Name)
		ch <- prometheus.MustNewConstMetric(c.limit, prometheus.GaugeValue, float64(st.Limit), st.Name)
		ch <- prometheus.MustNewConstMetric(c.refs, prometheus.GaugeValue, float64(st.Refs), st.Name)
		ch <- prometheus.MustNewConstMetric(c.connected, prometheus.GaugeValue, connected, st.Name)
		ch <- prometheus.MustNewConstMetric(c.pushed, prometheus.CounterValue, float64(st.Pushed), st.Name)
		ch <- prometheus.MustNewConstMetric(c.popped, prometheus.CounterValue, float64(st.Popped), st.Name)
		ch <- prometheus.MustNewConstMetric(c.overflows, prometheus.CounterValue, float64(st.Overflows), st.Name)
		ch <- prometheus.MustNewConstMetric(c.discarded, prometheus.CounterValue, float64(st.Discarded), st.Name)
	}
}
