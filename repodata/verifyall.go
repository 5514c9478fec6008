package repodata

import (
	"context"
	"sync"
)

// Job is one artifact to verify. Open may be nil.
type Job struct {
	Ref  Data
	Data []byte
	Open []byte
}

// VerifyAll verifies jobs on up to workers goroutines and returns the
// results in job order. Jobs not started before ctx is done report
// ctx.Err().
func VerifyAll(ctx context.Context, jobs []Job, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	results := make([]Result, len(jobs))

	var wg sync.WaitGroup
	ch := make(chan int)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range ch {
				j := jobs[idx]
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Kind: j.Ref.Kind, Location: j.Ref.Location, Err: err}
					continue
				}
				results[idx] = VerifyOpen(j.Data, j.Open, j.Ref)
			}
		}()
	}

	for idx := range jobs {
		ch <- idx
	}
	close(ch)
	wg.Wait()
	return results
}
