package writer

import (
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/sasgo/sascore/errs"
)

// ParquetWriter writes a stream of same-schema batches to a single Parquet
// file via arrow-go's pqarrow bridge. Each Write appends to the current row
// group with WriteBuffered, so several batches can share one row group; a
// new row group starts when pqarrow's maximum row-group length is reached.
type ParquetWriter struct {
	dst  io.Writer
	opts []parquet.WriterProperty

	fw *pqarrow.FileWriter
}

// NewParquetWriter returns a ParquetWriter that writes to dst, compressing
// with Snappy by default.
func NewParquetWriter(dst io.Writer) *ParquetWriter {
	return &ParquetWriter{
		dst: dst,
		opts: []parquet.WriterProperty{
			parquet.WithCompression(compress.Codecs.Snappy),
		},
	}
}

func (w *ParquetWriter) Begin(ctx context.Context, schema *arrow.Schema) error {
	props := parquet.NewWriterProperties(w.opts...)

	fw, err := pqarrow.NewFileWriter(schema, w.dst, props, pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("%w: opening parquet writer: %v", errs.ErrIO, err)
	}

	w.fw = fw

	return nil
}

func (w *ParquetWriter) Write(ctx context.Context, batch arrow.Record) error {
	if w.fw == nil {
		return fmt.Errorf("%w: Write called before Begin", errs.ErrConfig)
	}

	if err := w.fw.WriteBuffered(batch); err != nil {
		return fmt.Errorf("%w: writing row group: %v", errs.ErrIO, err)
	}

	return nil
}

func (w *ParquetWriter) Finish(ctx context.Context) error {
	if w.fw == nil {
		return nil
	}

	if err := w.fw.Close(); err != nil {
		return fmt.Errorf("%w: closing parquet writer: %v", errs.ErrIO, err)
	}

	return nil
}

var _ Writer = (*ParquetWriter)(nil)
