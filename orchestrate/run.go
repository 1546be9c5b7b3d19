package orchestrate

import (
	"container/heap"
	"context"
	"fmt"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sasgo/sascore/errs"
	"github.com/sasgo/sascore/ingest"
	"github.com/sasgo/sascore/internal/options"
	"github.com/sasgo/sascore/meta"
	"github.com/sasgo/sascore/parser"
)

// Config holds the resolved orchestration settings.
type Config struct {
	ChunkRows int
	Workers   int   // 0 or 1 means sequential mode
	RowOffset int64 // first row to deliver, 0-based
	RowLimit  int64 // 0 means "through the end of the file"
}

// Option configures a Run call.
type Option = options.Option[*Config]

// WithChunkRows overrides DefaultChunkRows.
func WithChunkRows(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: chunk rows must be positive, got %d", errs.ErrConfig, n)
		}
		c.ChunkRows = n
		return nil
	})
}

// WithWorkers selects parallel mode with the given worker count. n <= 1
// keeps sequential mode.
func WithWorkers(n int) Option {
	return options.New(func(c *Config) error {
		c.Workers = n
		return nil
	})
}

// WithRowOffset narrows the delivered range to start at the given 0-based
// row, skipping everything before it. Combine with WithRowLimit to bound the
// far end too; total rows delivered is min(row_count, row_offset+row_limit)
// minus row_offset.
func WithRowOffset(n int64) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("%w: row offset must be non-negative, got %d", errs.ErrConfig, n)
		}
		c.RowOffset = n
		return nil
	})
}

// WithRowLimit caps the number of rows delivered, counting from RowOffset. 0
// (the default) means no cap: every row through the end of the file.
func WithRowLimit(n int64) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("%w: row limit must be non-negative, got %d", errs.ErrConfig, n)
		}
		c.RowLimit = n
		return nil
	})
}

// dataDriver is the narrow surface runChunk needs from a parser.Driver: drive
// one chunk's value callbacks into a Sink. Behind an interface (rather than
// the concrete *parser.Driver) so a test can substitute a fake that feeds
// runParallel's reorder buffer real out-of-order batches without depending on
// the cgo-backed creadstat.Session.
type dataDriver interface {
	ParseData(rowOffset, rowLimit int64, sink parser.Sink) error
}

// driverFactory opens a fresh dataDriver for one chunk's parse. Each chunk
// uses its own single-threaded parser session; parallelism happens across
// sessions, never within one.
type driverFactory func() dataDriver

// Result streams finished batches in ascending chunk order. Wait blocks
// until every chunk has been produced (or the first error aborts the run)
// and returns that error, if any.
type Result struct {
	Batches <-chan ingest.Batch
	wait    func() error
}

// Wait blocks until the run completes and returns its first error, if any.
func (r *Result) Wait() error {
	return r.wait()
}

// Run plans fm.RowCount rows into chunks and executes them against input,
// appending only the columns named in schema. Sequential mode (the default)
// parses one chunk at a time; WithWorkers(n) switches to parallel mode with
// up to n concurrent parser sessions, while preserving ascending delivery
// order and the bounded-channel backpressure contract.
func Run(ctx context.Context, input parser.Input, fm meta.FileMetadata, schema *arrow.Schema, log zerolog.Logger, opts ...Option) (*Result, error) {
	cfg := &Config{ChunkRows: DefaultChunkRows}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	plans := buildBoundedPlan(int64(fm.RowCount), cfg)
	vars := fm.OrderedVariables()
	newDriver := func() dataDriver { return parser.New(input) }

	out := make(chan ingest.Batch, ChannelCapacity)

	if cfg.Workers <= 1 {
		return runSequential(ctx, plans, vars, schema, log, newDriver, out), nil
	}

	return runParallel(ctx, plans, vars, schema, log, newDriver, cfg.Workers, out), nil
}

// runChunk executes one chunk's parse and is the sole place that recovers a
// builder-kind invariant panic from the ingest package, converting it back
// into an ordinary error the caller's errgroup/sequential loop can surface.
func runChunk(plan Plan, vars []meta.VariableMetadata, schema *arrow.Schema, log zerolog.Logger, newDriver driverFactory) (batch ingest.Batch, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ierr, ok := r.(*errs.InvariantError); ok {
				err = ierr
				return
			}
			panic(r)
		}
	}()

	sink, err := ingest.New(vars, schema, int(plan.RowLimit), log)
	if err != nil {
		return ingest.Batch{}, err
	}

	driver := newDriver()
	if err := driver.ParseData(plan.RowOffset, plan.RowLimit, sink); err != nil {
		return ingest.Batch{}, err
	}

	return sink.Finish(), nil
}

func runSequential(ctx context.Context, plans []Plan, vars []meta.VariableMetadata, schema *arrow.Schema, log zerolog.Logger, newDriver driverFactory, out chan ingest.Batch) *Result {
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		for _, plan := range plans {
			batch, err := runChunk(plan, vars, schema, log, newDriver)
			if err != nil {
				errCh <- err
				return
			}

			select {
			case out <- batch:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
	}()

	return &Result{
		Batches: out,
		wait: func() error {
			for err := range errCh {
				return err
			}
			return nil
		},
	}
}

// reorderItem pairs a finished batch with its chunk index for the min-heap
// reorder buffer parallel mode uses to restore ascending delivery order.
type reorderItem struct {
	index int
	batch ingest.Batch
}

type reorderHeap []reorderItem

func (h reorderHeap) Len() int            { return len(h) }
func (h reorderHeap) Less(i, j int) bool  { return h[i].index < h[j].index }
func (h reorderHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *reorderHeap) Push(x interface{}) { *h = append(*h, x.(reorderItem)) }
func (h *reorderHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func runParallel(ctx context.Context, plans []Plan, vars []meta.VariableMetadata, schema *arrow.Schema, log zerolog.Logger, newDriver driverFactory, workers int, out chan ingest.Batch) *Result {
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	var (
		mu      sync.Mutex
		pending reorderHeap
		next    = 0
	)

	// publish inserts batch into the reorder heap and, still holding mu, emits
	// every heap-buffered batch that has become the next expected chunk index.
	// The channel send happens inside the same critical section as the heap
	// pop so index ordering is enforced at the point of delivery: whichever
	// goroutine's item is at the front of the heap is the only one that can
	// send to out, and every other goroutine is blocked on mu.Lock() for the
	// duration, never racing it.
	publish := func(index int, batch ingest.Batch) error {
		mu.Lock()
		defer mu.Unlock()

		heap.Push(&pending, reorderItem{index: index, batch: batch})

		for len(pending) > 0 && pending[0].index == next {
			item := heap.Pop(&pending).(reorderItem)
			next++

			select {
			case out <- item.batch:
			case <-gctx.Done():
				return gctx.Err()
			}
		}

		return nil
	}

	for _, plan := range plans {
		plan := plan
		group.Go(func() error {
			batch, err := runChunk(plan, vars, schema, log, newDriver)
			if err != nil {
				return err
			}

			return publish(plan.Index, batch)
		})
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		errCh <- group.Wait()
		close(errCh)
	}()

	return &Result{
		Batches: out,
		wait: func() error {
			for err := range errCh {
				return err
			}
			return nil
		},
	}
}
