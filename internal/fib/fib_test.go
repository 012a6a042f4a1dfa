package fib

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaive(t *testing.T) {
	assert.Equal(t, uint64(0), Naive(0))
	assert.Equal(t, uint64(1), Naive(1))
	assert.Equal(t, uint64(55), Naive(10))
	assert.Equal(t, uint64(6765), Naive(20))
}

func TestNaive_Performance(t *testing.T) {
	start := time.Now()
	result := Naive(10)
	duration := time.Since(start)

	assert.Equal(t, uint64(55), result)
	assert.Less(t, duration, 100*time.Millisecond)
}

func TestMemo_Get(t *testing.T) {
	tests := []struct {
		n       int
		want    uint64
		wantErr error
	}{
		{n: 0, want: 0},
		{n: 1, want: 1},
		{n: 2, want: 1},
		{n: 10, want: 55},
		{n: 50, want: 12586269025},
		{n: MaxN, want: 12200160415121876738},
		{n: -1, wantErr: ErrNegative},
		{n: MaxN + 1, wantErr: ErrOverflow},
	}

	m := NewMemo()
	for _, tt := range tests {
		got, err := m.Get(tt.n)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "n=%d", tt.n)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
	}
}

func TestMemo_MatchesNaive(t *testing.T) {
	m := NewMemo()
	for n := 25; n >= 0; n-- {
		got, err := m.Get(n)
		require.NoError(t, err)
		assert.Equal(t, Naive(n), got, "n=%d", n)
	}
}

func TestMemo_RepeatedCallsHitCache(t *testing.T) {
	m := NewMemo()

	first, err := m.Get(30)
	require.NoError(t, err)
	size := m.Len()
	hits := m.Hits()

	for i := 0; i < 5; i++ {
		again, err := m.Get(30)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	assert.Equal(t, size, m.Len(), "cache should not grow on repeat calls")
	assert.Equal(t, hits+5, m.Hits())
}

func TestMemo_Concurrent(t *testing.T) {
	m := NewMemo()

	var wg sync.WaitGroup
	results := make([]uint64, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = m.Get(80)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, uint64(23416728348467685), r)
	}
}

func BenchmarkNaive20(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Naive(20)
	}
}

func BenchmarkMemo20(b *testing.B) {
	m := NewMemo()
	for i := 0; i < b.N; i++ {
		m.Get(20)
	}
}
