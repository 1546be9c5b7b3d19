// Package writer defines the contract the chunk orchestrator's output is
// handed to, plus a Parquet reference implementation.
package writer

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
)

// Writer consumes an ordered stream of column batches sharing one schema.
// Begin is called once before the first Write; Finish is called exactly
// once after the last Write to flush and release resources. A stream that an
// error aborts ends without a Finish call.
type Writer interface {
	Begin(ctx context.Context, schema *arrow.Schema) error
	Write(ctx context.Context, batch arrow.Record) error
	Finish(ctx context.Context) error
}
