// Package status holds lock-free engine counters and flags
// Producers cache metric pointers once and write atomics directly
package status

import "sync/atomic"

// Registry groups metrics by value type
type Registry struct {
	Bools *MetricMap[atomic.Bool]
	Ints  *MetricMap[atomic.Int64]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Bools: NewMetricMap[atomic.Bool](),
		Ints:  NewMetricMap[atomic.Int64](),
	}
}

// TotalCount returns the number of registered metrics of all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count()
}

// Snapshot copies all integer metrics into a plain map
func (r *Registry) Snapshot() map[string]int64 {
	return r.Group("")
}

// Group copies the integer metrics of one component, keyed by full name
func (r *Registry) Group(component string) map[string]int64 {
	out := make(map[string]int64)
	r.Ints.RangeGroup(component, func(name string, ptr *atomic.Int64) {
		out[name] = ptr.Load()
	})
	return out
}
