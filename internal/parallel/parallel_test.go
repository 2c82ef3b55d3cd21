package parallel

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForVisitsEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 64} {
		t.Run(fmt.Sprint(workers), func(t *testing.T) {
			const n = 1000
			counts := make([]int32, n)
			err := For(n, workers, func(i int) error {
				atomic.AddInt32(&counts[i], 1)
				return nil
			})
			require.NoError(t, err)
			for i, c := range counts {
				assert.Equal(t, int32(1), c, "index %d", i)
			}
		})
	}
}

func TestForEmpty(t *testing.T) {
	called := false
	assert.NoError(t, For(0, 4, func(int) error { called = true; return nil }))
	assert.False(t, called)
}

func TestForStopsClaimingAfterFailure(t *testing.T) {
	const n = 10000
	var calls atomic.Int32
	boom := errors.New("boom")
	err := For(n, 4, func(i int) error {
		calls.Add(1)
		if i == 10 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Less(t, int(calls.Load()), n)
}

func TestSequentialLowestIndexWins(t *testing.T) {
	var visited []int
	err := Sequential(10, func(i int) error {
		visited = append(visited, i)
		if i == 3 || i == 7 {
			return fmt.Errorf("fail %d", i)
		}
		return nil
	})
	assert.EqualError(t, err, "fail 3")
	assert.Equal(t, []int{0, 1, 2, 3}, visited)
}

func TestForSingleWorkerIsSequential(t *testing.T) {
	err := For(10, 1, func(i int) error {
		if i >= 5 {
			return fmt.Errorf("fail %d", i)
		}
		return nil
	})
	assert.EqualError(t, err, "fail 5")
}
