// Copyright 2017 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license; adapted from github.com/open-policy-agent/opa/metrics.

// Package metrics collects timings and counts for the compile pipeline and
// the language server.
package metrics

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

// Well-known metric names.
const (
	Compile    = "lison_compile"
	Tokenize   = "lison_tokenize"
	Parse      = "lison_parse"
	Format     = "lison_format"
	Files      = "lison_files"
	LSPRequest = "lsp_request"
)

// Metrics is a named collection of timers, histograms and counters.
type Metrics interface {
	Timer(name string) Timer
	Histogram(name string) Histogram
	Counter(name string) Counter
	All() map[string]any
	Clear()
	String() string
	json.Marshaler
}

type metrics struct {
	mtx        sync.Mutex
	timers     map[string]Timer
	histograms map[string]Histogram
	counters   map[string]Counter
}

// New returns an empty collection.
func New() Metrics {
	return &metrics{
		timers:     map[string]Timer{},
		histograms: map[string]Histogram{},
		counters:   map[string]Counter{},
	}
}

// NoOp returns a Metrics that records nothing.
func NoOp() Metrics {
	return noOpInstance
}

// String lists "key:value" pairs sorted by key.
func (m *metrics) String() string {
	all := m.All()

	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%v:%v", key, all[key])
	}

	return strings.Join(parts, " ")
}

func (m *metrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.All())
}

func (m *metrics) Timer(name string) Timer {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	t, ok := m.timers[name]
	if !ok {
		t = &timer{}
		m.timers[name] = t
	}

	return t
}

func (m *metrics) Histogram(name string) Histogram {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	h, ok := m.histograms[name]
	if !ok {
		h = newHistogram()
		m.histograms[name] = h
	}

	return h
}

func (m *metrics) Counter(name string) Counter {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	c, ok := m.counters[name]
	if !ok {
		c = &counter{}
		m.counters[name] = c
	}

	return c
}

// All returns every metric under its formatted key: "timer_<name>_ns",
// "histogram_<name>" or "counter_<name>".
func (m *metrics) All() map[string]any {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	result := make(map[string]any, len(m.timers)+len(m.histograms)+len(m.counters))
	for name, t := range m.timers {
		result["timer_"+name+"_ns"] = t.Value()
	}
	for name, h := range m.histograms {
		result["histogram_"+name] = h.Value()
	}
	for name, c := range m.counters {
		result["counter_"+name] = c.Value()
	}

	return result
}

func (m *metrics) Clear() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.timers = map[string]Timer{}
	m.histograms = map[string]Histogram{}
	m.counters = map[string]Counter{}
}

// Timer accumulates elapsed time over any number of Start/Stop cycles.
type Timer interface {
	Value() any
	Int64() int64
	Start()
	// Stop adds the nanoseconds elapsed since Start and returns them.
	// Stopping a timer that is not running returns 0.
	// Start and Stop track a single interval: concurrent callers use Add.
	Stop() int64
	// Add records delta nanoseconds measured by the caller.
	Add(delta int64)
}

type timer struct {
	mtx   sync.Mutex
	start time.Time
	value int64
}

func (t *timer) Start() {
	t.mtx.Lock()
	t.start = time.Now()
	t.mtx.Unlock()
}

func (t *timer) Stop() int64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if t.start.IsZero() {
		return 0
	}

	delta := time.Since(t.start).Nanoseconds()
	t.value += delta
	t.start = time.Time{}

	return delta
}

func (t *timer) Add(delta int64) {
	t.mtx.Lock()
	t.value += delta
	t.mtx.Unlock()
}

func (t *timer) Value() any {
	return t.Int64()
}

func (t *timer) Int64() int64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	return t.value
}

// Histogram reports count, min, max, mean, stddev and fixed percentiles.
type Histogram interface {
	Value() any
	Update(int64)
}

type histogram struct {
	hist gometrics.Histogram
}

func newHistogram() Histogram {
	sample := gometrics.NewExpDecaySample(1028, 0.015)
	return &histogram{hist: gometrics.NewHistogram(sample)}
}

func (h *histogram) Update(v int64) {
	h.hist.Update(v)
}

func (h *histogram) Value() any {
	snap := h.hist.Snapshot()
	p := snap.Percentiles([]float64{0.5, 0.9, 0.99})

	return map[string]any{
		"count":  snap.Count(),
		"min":    snap.Min(),
		"max":    snap.Max(),
		"mean":   snap.Mean(),
		"stddev": snap.StdDev(),
		"median": p[0],
		"90%":    p[1],
		"99%":    p[2],
	}
}

// Counter is a monotonic counter.
type Counter interface {
	Value() any
	Incr()
	Add(n uint64)
}

type counter struct {
	c atomic.Uint64
}

func (c *counter) Incr()        { c.c.Add(1) }
func (c *counter) Add(n uint64) { c.c.Add(n) }
func (c *counter) Value() any   { return c.c.Load() }

type (
	noOpMetrics   struct{}
	noOpTimer     struct{}
	noOpHistogram struct{}
	noOpCounter   struct{}
)

var noOpInstance = &noOpMetrics{}

func (*noOpMetrics) Timer(string) Timer           { return noOpTimer{} }
func (*noOpMetrics) Histogram(string) Histogram   { return noOpHistogram{} }
func (*noOpMetrics) Counter(string) Counter       { return noOpCounter{} }
func (*noOpMetrics) All() map[string]any          { return nil }
func (*noOpMetrics) Clear()                       {}
func (*noOpMetrics) String() string               { return "" }
func (*noOpMetrics) MarshalJSON() ([]byte, error) { return []byte("{}"), nil }

func (noOpTimer) Start()       {}
func (noOpTimer) Stop() int64  { return 0 }
func (noOpTimer) Add(int64)    {}
func (noOpTimer) Value() any   { return int64(0) }
func (noOpTimer) Int64() int64 { return 0 }

func (noOpHistogram) Update(int64) {}
func (noOpHistogram) Value() any   { return nil }

func (noOpCounter) Incr()      {}
func (noOpCounter) Add(uint64) {}
func (noOpCounter) Value() any { return uint64(0) }
