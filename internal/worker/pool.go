// Package worker provides row-wise parallelism for the scoring pass and
// per-host rate limiting for catalog downloads.
package worker

import (
	"sync"

	"github.com/ppiankov/exorank/internal/model"
)

// ScoreFunc transforms one candidate row into its scored form. It must be
// pure: scoring correctness never depends on ordering between rows.
type ScoreFunc func(model.CandidateRow) model.CandidateRow

// ScoreRows applies fn to every row using up to workers goroutines and
// returns results in input order, so the output is deterministic regardless
// of scheduling. workers <= 1 runs the plain sequential loop.
func ScoreRows(rows []model.CandidateRow, workers int, fn ScoreFunc) []model.CandidateRow {
	out := make([]model.CandidateRow, len(rows))

	if workers <= 1 || len(rows) < 2 {
		for i, r := range rows {
			out[i] = fn(r)
		}
		return out
	}

	if workers > len(rows) {
		workers = len(rows)
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)
	for i, r := range rows {
		wg.Add(1)
		go func(idx int, row model.CandidateRow) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			out[idx] = fn(row)
		}(i, r)
	}
	wg.Wait()

	return out
}
