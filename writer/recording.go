package writer

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
)

// RecordingWriter is a Writer fake that captures every batch it receives,
// for use in tests that need to assert on delivery order and row counts
// without writing a real file.
type RecordingWriter struct {
	Schema   *arrow.Schema
	Batches  []arrow.Record
	BeginErr error
	WriteErr error
	Finished bool
}

func (w *RecordingWriter) Begin(ctx context.Context, schema *arrow.Schema) error {
	if w.BeginErr != nil {
		return w.BeginErr
	}

	w.Schema = schema

	return nil
}

func (w *RecordingWriter) Write(ctx context.Context, batch arrow.Record) error {
	if w.WriteErr != nil {
		return w.WriteErr
	}

	batch.Retain()
	w.Batches = append(w.Batches, batch)

	return nil
}

func (w *RecordingWriter) Finish(ctx context.Context) error {
	w.Finished = true
	return nil
}

// TotalRows sums the row count across every batch Write received so far.
func (w *RecordingWriter) TotalRows() int64 {
	var total int64
	for _, b := range w.Batches {
		total += b.NumRows()
	}

	return total
}

var _ Writer = (*RecordingWriter)(nil)
