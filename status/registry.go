// Package status is a lock-free stats registry read by the HUD and the end-of-run summary
package status

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync/atomic"
)

// Metric keys written by the engine
const (
	KeyTicks      = "engine.ticks"
	KeyRuns       = "engine.runs"
	KeyState      = "engine.state"
	KeyScore      = "run.score"
	KeyProgress   = "run.progress"
	KeyStreak     = "run.streak"
	KeyBestStreak = "run.best_streak"
	KeySpeed      = "run.speed"
	KeyTopSpeed   = "run.top_speed"
	KeyPreset     = "run.preset"
	KeyBest       = "record.best"
	KeyMuted      = "audio.muted"
)

// Registry is the central metrics facade
// Owners cache pointers at construction; tick code writes atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot flattens all metrics into formatted values keyed by name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = strconv.FormatBool(v.Load()) })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = strconv.FormatInt(v.Load(), 10) })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = strconv.FormatFloat(v.Get(), 'f', 2, 64) })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}

// WriteSummary prints "key value" lines in sorted key order
func (r *Registry) WriteSummary(w io.Writer) error {
	snap := r.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%-18s %s\n", k, snap[k]); err != nil {
			return err
		}
	}
	return nil
}
