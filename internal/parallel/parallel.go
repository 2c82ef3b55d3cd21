// Package parallel runs independent indexed tasks over a bounded group of
// goroutines.
package parallel

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// For calls fn for every index in [0, n) and returns the first error.
//
// With workers <= 0 the pool is sized to runtime.NumCPU(). Workers claim
// the next index from a shared cursor. After a failure no new index is
// claimed; calls already running complete. Which error is reported when
// several calls fail concurrently is not deterministic.
func For(n, workers int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		return Sequential(n, fn)
	}

	var (
		next   atomic.Int64
		failed atomic.Bool
		g      errgroup.Group
	)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				if failed.Load() {
					return nil
				}
				i := int(next.Add(1) - 1)
				if i >= n {
					return nil
				}
				if err := fn(i); err != nil {
					failed.Store(true)
					return err
				}
			}
		})
	}
	return g.Wait()
}

// Sequential calls fn for every index in order on the calling goroutine and
// stops at the first error, so the lowest failing index is reported.
func Sequential(n int, fn func(i int) error) error {
	for i := 0; i < n; i++ {
		if err := fn(i); err != nil {
			return err
		}
	}
	return nil
}
