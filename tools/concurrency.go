package tools

import (
	"sync"
)

// RunWithWorkers fans handler out over jobs with at most maxWorkers in
// flight and blocks until every job finishes. Group reconciliation uses it
// to work independent groups in parallel while each group's own mutations
// stay sequential.
func RunWithWorkers[T any](jobs []T, maxWorkers int, handler func(T)) {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxWorkers)

	for _, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}

		go func(j T) {
			defer wg.Done()
			defer func() { <-sem }()

			handler(j)
		}(job)
	}

	wg.Wait()
}
