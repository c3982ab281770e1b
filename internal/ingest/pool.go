// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"runtime"
	"sync"
)

// Map calls fn once per item using at most workers concurrent calls and
// returns the results in item order, regardless of completion order.
// A workers value of zero or less uses one worker per CPU.
func Map[T, R any](items []T, workers int, fn func(T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	throttle := make(chan struct{}, workers)

	for i, item := range items {
		wg.Add(1)
		throttle <- struct{}{}

		go func(i int, item T) {
			defer wg.Done()
			defer func() { <-throttle }()
			results[i] = fn(item)
		}(i, item)
	}

	wg.Wait()
	return results
}
