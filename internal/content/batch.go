package content

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxBatchSize caps the number of requests accepted by BatchGenerate.
const maxBatchSize = 10

// BatchItem pairs a successful result with the index of the request that
// produced it.
type BatchItem struct {
	RequestIndex int
	Result       *Result
}

// BatchFailure pairs a failed request's index with its error.
type BatchFailure struct {
	RequestIndex int
	Err          error
}

// BatchResult partitions a batch's outcomes. Indexes refer to positions in
// the submitted request slice; Successful and Failed are each ordered by
// request index.
type BatchResult struct {
	Successful []BatchItem
	Failed     []BatchFailure
}

// BatchGenerate runs up to maxBatchSize generation requests concurrently.
// One item's failure never aborts the batch: per-item errors are collected
// into the Failed partition. The only error BatchGenerate itself returns is
// a batch-size violation.
func (g *Generator) BatchGenerate(ctx context.Context, requests []Request) (*BatchResult, error) {
	if len(requests) > maxBatchSize {
		return nil, fmt.Errorf("content: batch size %d exceeds maximum of %d", len(requests), maxBatchSize)
	}

	out := &BatchResult{}
	var mu sync.Mutex

	var wg errgroup.Group
	for i, req := range requests {
		wg.Go(func() error {
			result, err := g.Generate(ctx, req)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				out.Failed = append(out.Failed, BatchFailure{RequestIndex: i, Err: err})
			} else {
				out.Successful = append(out.Successful, BatchItem{RequestIndex: i, Result: result})
			}
			return nil
		})
	}
	_ = wg.Wait()

	// Deterministic output regardless of completion order.
	slices.SortFunc(out.Successful, func(a, b BatchItem) int {
		return a.RequestIndex - b.RequestIndex
	})
	slices.SortFunc(out.Failed, func(a, b BatchFailure) int {
		return a.RequestIndex - b.RequestIndex
	})
	return out, nil
}
