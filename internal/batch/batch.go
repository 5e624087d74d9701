// Package batch loads and parses many documents concurrently on a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/input"
	"github.com/mcncl/jsoncore/internal/reader"
	"github.com/mcncl/jsoncore/internal/value"
	"github.com/panjf2000/ants/v2"
)

const releaseTimeout = 5 * time.Second

// Result is the outcome for one path. Value is null when Err is set.
type Result struct {
	Path  string
	Value value.Value
	Size  int
	Err   error
}

// Runner parses files on an ants pool. A Runner may be reused across Run calls
// until Release.
type Runner struct {
	pool     *ants.Pool
	reader   *reader.Reader
	maxBytes int64
	logger   log.Logger
}

// NewRunner creates a Runner with the given number of workers.
func NewRunner(workers int, rd *reader.Reader, maxBytes int64, logger log.Logger) (*Runner, error) {
	if workers < 1 {
		return nil, errors.NewConfigError(fmt.Sprintf("workers must be at least 1, got %d", workers), nil)
	}
	if rd == nil {
		rd = reader.New()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &Runner{
		pool:     pool,
		reader:   rd,
		maxBytes: maxBytes,
		logger:   logger,
	}, nil
}

// Run processes every path and returns one Result per path in input order.
// Paths not yet started when ctx is cancelled report ctx.Err().
func (r *Runner) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		results[i].Path = path
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		wg.Add(1)
		res := &results[i]
		if err := r.pool.Submit(func() {
			defer wg.Done()
			r.process(ctx, res)
		}); err != nil {
			wg.Done()
			res.Err = fmt.Errorf("failed to schedule '%s': %w", path, err)
		}
	}

	wg.Wait()
	return results
}

func (r *Runner) process(ctx context.Context, res *Result) {
	if err := ctx.Err(); err != nil {
		res.Err = err
		return
	}

	start := time.Now()
	data, err := input.LoadFile(res.Path, r.maxBytes)
	if err != nil {
		res.Err = err
		_ = level.Debug(r.logger).Log("msg", "failed to load", "file", res.Path, "err", err)
		return
	}
	res.Size = len(data)

	v, err := r.reader.Parse(data)
	if err != nil {
		res.Err = errors.NewParsingError(fmt.Sprintf("failed to parse '%s'", res.Path), err)
		_ = level.Debug(r.logger).Log("msg", "failed to parse", "file", res.Path, "err", err)
		return
	}
	res.Value = v

	_ = level.Debug(r.logger).Log("msg", "parsed", "file", res.Path, "bytes", len(data), "duration", time.Since(start))
}

// Release stops the workers once in-flight tasks finish.
func (r *Runner) Release() {
	if err := r.pool.ReleaseTimeout(releaseTimeout); err != nil {
		_ = level.Warn(r.logger).Log("msg", "worker pool did not stop cleanly", "err", err)
	}
}
