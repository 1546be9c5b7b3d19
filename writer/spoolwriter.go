package writer

import (
	"bytes"
	"container/heap"
	"context"
	"fmt"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"golang.org/x/sync/errgroup"

	"github.com/sasgo/sascore/errs"
	"github.com/sasgo/sascore/writer/spool"
)

// spoolBufPool recycles the staging buffer Spool serializes a batch into
// before compressing it. The only operations this call site needs are
// Write/Bytes/Reset, which *bytes.Buffer already provides directly — no
// custom growth policy earns its keep here.
var spoolBufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Artifact is one chunk's batch serialized to the Arrow IPC stream format
// and compressed, ready to sit in memory (or be handed to disk) until the
// merge step needs it.
type Artifact struct {
	schema *arrow.Schema
	alg    spool.Algorithm
	data   []byte
}

// Spool serializes batch to the Arrow IPC stream format and compresses it
// with alg. This is the concurrent half of the parallel writing variant:
// every chunk can be spooled on its own goroutine, independent of merge
// order.
func Spool(batch arrow.Record, alg spool.Algorithm) (*Artifact, error) {
	buf := spoolBufPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		spoolBufPool.Put(buf)
	}()

	iw := ipc.NewWriter(buf, ipc.WithSchema(batch.Schema()))
	if err := iw.Write(batch); err != nil {
		return nil, fmt.Errorf("%w: spool write: %w", errs.ErrIO, err)
	}
	if err := iw.Close(); err != nil {
		return nil, fmt.Errorf("%w: spool close: %w", errs.ErrIO, err)
	}

	codec, err := spool.CodecFor(alg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrConfig, err)
	}

	compressed, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: spool compress: %w", errs.ErrIO, err)
	}
	if alg == spool.AlgorithmNone {
		// NoOpCodec returns its input, which is the pooled buffer's storage.
		compressed = bytes.Clone(compressed)
	}

	return &Artifact{schema: batch.Schema(), alg: alg, data: compressed}, nil
}

// Unspool reverses Spool, decompressing and replaying the one record the
// artifact holds. This is the sequential half of the merge step.
func (a *Artifact) Unspool() (arrow.Record, error) {
	codec, err := spool.CodecFor(a.alg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrConfig, err)
	}

	raw, err := codec.Decompress(a.data)
	if err != nil {
		return nil, fmt.Errorf("%w: spool decompress: %w", errs.ErrIO, err)
	}

	reader, err := ipc.NewReader(bytes.NewReader(raw), ipc.WithSchema(a.schema))
	if err != nil {
		return nil, fmt.Errorf("%w: spool reader: %w", errs.ErrIO, err)
	}
	defer reader.Release()

	if !reader.Next() {
		return nil, fmt.Errorf("%w: spool artifact holds no record", errs.ErrIO)
	}

	rec := reader.Record()
	rec.Retain()

	return rec, nil
}

// spooledItem pairs one finished artifact with its position in the input
// stream, so out-of-order completions can be restored to arrival order
// before hitting dst.
type spooledItem struct {
	index int
	art   *Artifact
}

type spoolHeap []spooledItem

func (h spoolHeap) Len() int            { return len(h) }
func (h spoolHeap) Less(i, j int) bool  { return h[i].index < h[j].index }
func (h spoolHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *spoolHeap) Push(x interface{}) { *h = append(*h, x.(spooledItem)) }
func (h *spoolHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// SpoolAndMerge implements the parallel writing variant: up to workers
// batches from in are spooled (serialized + compressed) concurrently, each
// tagged with its arrival index, then unspooled and handed to dst strictly
// in that order. Compression of later chunks can race ahead of earlier
// ones; only the final Write order is held back to match in's order.
func SpoolAndMerge(ctx context.Context, dst Writer, schema *arrow.Schema, in <-chan arrow.Record, alg spool.Algorithm, workers int) error {
	if err := dst.Begin(ctx, schema); err != nil {
		return err
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	var (
		mu      sync.Mutex
		pending spoolHeap
		next    = 0
	)

	// publish inserts art into the reorder heap and, still holding mu, unspools
	// and writes every artifact that has become the next expected index. The
	// unspool-and-write happens inside the same critical section as the heap
	// pop so ordering is enforced at the point of delivery to dst, not just at
	// the point of bookkeeping: only the goroutine holding mu can ever call
	// dst.Write, so two goroutines can never race to deliver out of order.
	publish := func(index int, art *Artifact) error {
		mu.Lock()
		defer mu.Unlock()

		heap.Push(&pending, spooledItem{index: index, art: art})

		for len(pending) > 0 && pending[0].index == next {
			item := heap.Pop(&pending).(spooledItem)
			next++

			rec, err := item.art.Unspool()
			if err != nil {
				return err
			}

			err = dst.Write(ctx, rec)
			rec.Release()
			if err != nil {
				return err
			}
		}

		return nil
	}

	index := 0
	for {
		select {
		case rec, ok := <-in:
			if !ok {
				if err := group.Wait(); err != nil {
					return err
				}
				return dst.Finish(ctx)
			}

			i := index
			index++
			group.Go(func() error {
				art, err := Spool(rec, alg)
				rec.Release()
				if err != nil {
					return err
				}

				return publish(i, art)
			})
		case <-gctx.Done():
			group.Wait()
			return gctx.Err()
		}
	}
}
