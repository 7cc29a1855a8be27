package status

import (
	"sort"
	"strings"
	"sync"
)

// MetricMap holds named metrics of type T with names kept in sorted order
// Producers resolve a pointer once at startup; the footer re-reads every frame,
// so iteration walks the pre-sorted name list instead of sorting map keys
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
	names []string // Sorted
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the pointer for name, allocating it on first use
func (m *MetricMap[T]) Get(name string) *T {
	m.mu.RLock()
	ptr := m.items[name]
	m.mu.RUnlock()
	if ptr != nil {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr = m.items[name]; ptr != nil {
		return ptr
	}

	ptr = new(T)
	m.items[name] = ptr
	i := sort.SearchStrings(m.names, name)
	m.names = append(m.names, "")
	copy(m.names[i+1:], m.names[i:])
	m.names[i] = name
	return ptr
}

// Has reports whether name has been allocated
func (m *MetricMap[T]) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[name] != nil
}

// Range visits every metric in name order
func (m *MetricMap[T]) Range(fn func(name string, ptr *T)) {
	m.RangeGroup("", fn)
}

// RangeGroup visits metrics of one component, e.g. "ripple" matches "ripple.triggered"
// An empty component visits everything
func (m *MetricMap[T]) RangeGroup(component string, fn func(name string, ptr *T)) {
	prefix := ""
	if component != "" {
		prefix = component + "."
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := sort.SearchStrings(m.names, prefix); i < len(m.names); i++ {
		name := m.names[i]
		if !strings.HasPrefix(name, prefix) {
			return
		}
		fn(name, m.items[name])
	}
}

// Count returns the number of allocated metrics
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.names)
}
