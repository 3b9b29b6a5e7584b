// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics exports simulation counters to prometheus.
//
package metrics

import (
	"github.com/db47h/rtlsim"
	"github.com/prometheus/client_golang/prometheus"
)

// Metric labels.
//
const (
	DesignLabel = "design" // name of the simulated design
	KindLabel   = "kind"   // update block kind, "comb" or "seq"
)

// Collector is a rtlsim.Observer that updates prometheus metrics. A single
// Collector can be shared by Sims running in different goroutines.
//
type Collector struct {
	executions *prometheus.CounterVec
	settles    prometheus.Counter
	passes     prometheus.Histogram
	cycles     prometheus.Counter

	comb, seq prometheus.Counter
}

var _ rtlsim.Observer = (*Collector)(nil)

// NewCollector creates the metrics for the named design and registers them
// with reg.
//
func NewCollector(reg prometheus.Registerer, design string) (*Collector, error) {
	labels := prometheus.Labels{DesignLabel: design}
	c := &Collector{
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "rtlsim_block_executions_total",
				Help:        "Monotonic count of update block executions",
				ConstLabels: labels,
			},
			[]string{KindLabel},
		),
		settles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "rtlsim_settles_total",
				Help:        "Monotonic count of combinational settles that executed at least one pass",
				ConstLabels: labels,
			},
		),
		passes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "rtlsim_settle_passes",
				Help:        "Number of passes per combinational settle",
				ConstLabels: labels,
				Buckets:     []float64{1, 2, 3, 5, 8},
			},
		),
		cycles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "rtlsim_cycles_total",
				Help:        "Monotonic count of simulated clock edges",
				ConstLabels: labels,
			},
		),
	}
	for _, m := range []prometheus.Collector{c.executions, c.settles, c.passes, c.cycles} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	c.comb = c.executions.WithLabelValues(rtlsim.Combinational.String())
	c.seq = c.executions.WithLabelValues(rtlsim.Sequential.String())
	return c, nil
}

// BlockExecuted implements rtlsim.Observer.
//
func (c *Collector) BlockExecuted(k rtlsim.Kind) {
	if k == rtlsim.Sequential {
		c.seq.Inc()
	} else {
		c.comb.Inc()
	}
}

// Settled implements rtlsim.Observer.
//
func (c *Collector) Settled(passes, executed int) {
	if passes == 0 {
		return
	}
	c.settles.Inc()
	c.passes.Observe(float64(passes))
}

// Ticked implements rtlsim.Observer.
//
func (c *Collector) Ticked(cycle uint64) {
	c.cycles.Inc()
}
