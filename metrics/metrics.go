/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics exports registry events to Prometheus.
//
//	c, err := metrics.NewCollector(metrics.Config{Registerer: prometheus.DefaultRegisterer})
//	meta.SetConfig(config.NewConfig(config.WithObserver(c)))
package metrics

import (
	"reflect"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/meta/apis"
)

// Config configures the collector.
type Config struct {
	// Registerer receives the collector's metrics. Nil means a private registry.
	Registerer prometheus.Registerer

	// Prefix is added to all metric names (default: "meta").
	Prefix string

	// Buckets for the build duration histogram (in seconds).
	Buckets []float64
}

// DefaultBuckets returns the default build duration buckets.
func DefaultBuckets() []float64 {
	return []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}
}

// Collector implements apis.Observer on top of Prometheus metrics.
type Collector struct {
	built    prometheus.Counter
	failed   prometheus.Counter
	lookups  *prometheus.CounterVec
	duration prometheus.Histogram
	fields   prometheus.Histogram
}

// Ensure Collector implements apis.Observer.
var _ apis.Observer = (*Collector)(nil)

// NewCollector creates the metrics and registers them with cfg.Registerer.
func NewCollector(cfg Config) (*Collector, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = "meta"
	}
	if cfg.Buckets == nil {
		cfg.Buckets = DefaultBuckets()
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.NewRegistry()
	}

	c := &Collector{
		built: prometheus.NewCounter(prometheus.CounterOpts{
			Name: cfg.Prefix + "_descriptors_built_total",
			Help: "Total number of type descriptors built",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: cfg.Prefix + "_descriptors_failed_total",
			Help: "Total number of type descriptors that failed to build",
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: cfg.Prefix + "_descriptor_lookups_total",
			Help: "Total number of descriptor requests by result",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    cfg.Prefix + "_descriptor_build_seconds",
			Help:    "Descriptor build duration in seconds",
			Buckets: cfg.Buckets,
		}),
		fields: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    cfg.Prefix + "_descriptor_fields",
			Help:    "Number of direct members per built descriptor",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}

	ms := []prometheus.Collector{c.built, c.failed, c.lookups, c.duration, c.fields}
	for i, m := range ms {
		if err := cfg.Registerer.Register(m); err != nil {
			// Leave the registerer as it was so the caller can retry.
			for _, done := range ms[:i] {
				cfg.Registerer.Unregister(done)
			}
			return nil, err
		}
	}
	return c, nil
}

// DescriptorBuilt records a successful build.
func (c *Collector) DescriptorBuilt(_ reflect.Type, fields int, took time.Duration) {
	c.built.Inc()
	c.duration.Observe(took.Seconds())
	c.fields.Observe(float64(fields))
}

// DescriptorFailed records a failed build.
func (c *Collector) DescriptorFailed(reflect.Type, error) {
	c.failed.Inc()
}

// Lookup records a descriptor request.
func (c *Collector) Lookup(_ reflect.Type, hit bool) {
	if hit {
		c.lookups.WithLabelValues("hit").Inc()
		return
	}
	c.lookups.WithLabelValues("miss").Inc()
}

// BuiltCounter returns the counter of built descriptors.
func (c *Collector) BuiltCounter() prometheus.Counter { return c.built }

// FailedCounter returns the counter of failed builds.
func (c *Collector) FailedCounter() prometheus.Counter { return c.failed }

// Lookups returns the lookup counter for result ("hit" or "miss").
func (c *Collector) Lookups(result string) prometheus.Counter {
	return c.lookups.WithLabelValues(result)
}
