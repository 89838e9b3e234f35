package convert

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Pool fans a batch of input files out over a fixed number of workers, each
// running the full pipeline for one file at a time.
type Pool struct {
	driver *Driver
	size   int
}

// NewPool wraps a driver with a worker pool of the given size. Sizes below
// one are clamped to one.
func NewPool(driver *Driver, size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{driver: driver, size: size}
}

type indexedJob struct {
	index int
	job   Job
}

// Run converts every input and returns one result per input, in input order.
// Cancelling the context stops feeding new jobs; inputs never started are
// reported with the context error.
func (p *Pool) Run(ctx context.Context, inputs []string) []Result {
	results := make([]Result, len(inputs))
	jobs := make(chan indexedJob)

	var wg sync.WaitGroup
	workers := p.size
	if workers > len(inputs) {
		workers = len(inputs)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				results[item.index] = p.driver.Run(ctx, item.job)
			}
		}()
	}

feed:
	for i, input := range inputs {
		if ctx.Err() != nil {
			markSkipped(results, inputs, i, ctx.Err())
			break
		}
		select {
		case jobs <- indexedJob{index: i, job: Job{ID: uuid.NewString(), InputPath: input}}:
		case <-ctx.Done():
			markSkipped(results, inputs, i, ctx.Err())
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

func markSkipped(results []Result, inputs []string, from int, err error) {
	for i := from; i < len(inputs); i++ {
		results[i] = Result{
			Job:   Job{InputPath: inputs[i]},
			Stage: StageValidate,
			Err:   err,
		}
	}
}
