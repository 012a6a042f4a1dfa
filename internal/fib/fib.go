// Package fib computes Fibonacci numbers, either by plain recursion or
// through a process-lifetime cache.
package fib

import (
	"errors"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// MaxN is the largest n whose Fibonacci number fits in a uint64.
const MaxN = 93

var (
	ErrNegative = errors.New("n must not be negative")
	ErrOverflow = errors.New("n too large: result overflows uint64")
)

// Naive recomputes every branch. Cost grows exponentially with n.
func Naive(n int) uint64 {
	if n < 2 {
		return uint64(n)
	}
	return Naive(n-1) + Naive(n-2)
}

// Memo caches results keyed by n. Entries are never evicted.
type Memo struct {
	mu    sync.RWMutex
	cache map[int]uint64
	hits  int64
	group singleflight.Group
}

func NewMemo() *Memo {
	return &Memo{cache: map[int]uint64{0: 0, 1: 1}}
}

func (m *Memo) Get(n int) (uint64, error) {
	if n < 0 {
		return 0, ErrNegative
	}
	if n > MaxN {
		return 0, ErrOverflow
	}

	if v, ok := m.lookup(n); ok {
		return v, nil
	}

	v, _, _ := m.group.Do(strconv.Itoa(n), func() (interface{}, error) {
		return m.compute(n), nil
	})
	return v.(uint64), nil
}

// Len reports how many values are cached.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cache)
}

// Hits reports how many Get calls were answered straight from the cache.
func (m *Memo) Hits() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits
}

func (m *Memo) lookup(n int) (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.cache[n]
	if ok {
		m.hits++
	}
	return v, ok
}

// compute fills the cache upward from the largest known value below n.
func (m *Memo) compute(n int) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.cache[n]; ok {
		return v
	}

	start := n
	for start > 1 {
		if _, ok := m.cache[start-1]; ok {
			if _, ok := m.cache[start-2]; ok {
				break
			}
		}
		start--
	}
	for i := start; i <= n; i++ {
		m.cache[i] = m.cache[i-1] + m.cache[i-2]
	}
	return m.cache[n]
}
