package status

import (
	"maps"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen caps string metrics in bytes so overlay rows stay narrow
const MaxStringLen = 24

// MetricMap is a thread-safe registry for metrics of type T
// Registration takes the mutex; cached pointers are then read/written lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an initialized MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{
		items: make(map[string]*T),
	}
}

// Get returns the metric pointer for key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

// Has returns true if the key was registered
func (m *MetricMap[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// Range visits metrics in sorted key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, k := range slices.Sorted(maps.Keys(m.items)) {
		fn(k, m.items[k])
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// AtomicFloat is a float64 metric kept as IEEE bits; the zero value reads 0
type AtomicFloat struct{ v atomic.Uint64 }

func (f *AtomicFloat) Set(val float64) { f.v.Store(math.Float64bits(val)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.v.Load()) }

// Add applies delta with a CAS loop and returns the sum it stored
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		cur := f.v.Load()
		sum := math.Float64frombits(cur) + delta
		if f.v.CompareAndSwap(cur, math.Float64bits(sum)) {
			return sum
		}
	}
}

// AtomicString is a short label metric such as a tier or run state; the zero value reads ""
type AtomicString struct{ v atomic.Pointer[string] }

// Store keeps at most MaxStringLen bytes, cut on a rune boundary
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.v.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return ""
}
