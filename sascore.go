// Package sascore streams a SAS7BDAT file into Arrow-compatible column
// batches: a metadata-only pass derives the schema, then a chunked,
// optionally parallel data pass drives a native parser via value-level
// callbacks straight into column builders, with no intermediate row
// representation.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around classify, meta,
// parser, ingest, and orchestrate. ReadData takes a variable selection and
// options for chunk size, parallel ingestion, and row range; for anything
// else (schema options, a custom logger) use those packages directly.
//
// # Basic Usage
//
//	fm, err := sascore.ReadMetadata(parser.FromPath("claims.sas7bdat"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	result, schema, err := sascore.ReadData(ctx, parser.FromPath("claims.sas7bdat"), fm, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w := writer.NewParquetWriter(out)
//	w.Begin(ctx, schema)
//	for batch := range result.Batches {
//	    w.Write(ctx, batch.Record())
//	}
//	if err := result.Wait(); err != nil {
//	    log.Fatal(err)
//	}
//	w.Finish(ctx)
package sascore

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/rs/zerolog"

	"github.com/sasgo/sascore/meta"
	"github.com/sasgo/sascore/orchestrate"
	"github.com/sasgo/sascore/parser"
)

// ReadMetadata drives a metadata-only pass over input and returns the file's
// header plus every declared variable.
func ReadMetadata(input parser.Input) (meta.FileMetadata, error) {
	return parser.New(input).ParseMetadata()
}

// ReadDataOption configures ReadData.
type ReadDataOption = orchestrate.Option

// WithChunkRows overrides orchestrate.DefaultChunkRows.
func WithChunkRows(n int) ReadDataOption { return orchestrate.WithChunkRows(n) }

// WithWorkers enables parallel chunk ingestion with n concurrent parser
// sessions. n <= 1 keeps the default sequential mode.
func WithWorkers(n int) ReadDataOption { return orchestrate.WithWorkers(n) }

// WithRowOffset skips the first n rows of the file.
func WithRowOffset(n int64) ReadDataOption { return orchestrate.WithRowOffset(n) }

// WithRowLimit caps delivery at n rows, counting from the row offset. 0 (the
// default) delivers every row through the end of the file.
func WithRowLimit(n int64) ReadDataOption { return orchestrate.WithRowLimit(n) }

// ReadData builds the schema for fm (honoring selection, if any), then
// drives a chunked data pass, returning a streaming Result the caller drains
// in order and waits on for the first error, if any.
func ReadData(ctx context.Context, input parser.Input, fm meta.FileMetadata, selection []string, opts ...ReadDataOption) (*orchestrate.Result, *arrow.Schema, error) {
	schema, err := meta.BuildSchema(fm, selection)
	if err != nil {
		return nil, nil, err
	}

	result, err := orchestrate.Run(ctx, input, fm, schema, zerolog.Nop(), opts...)
	if err != nil {
		return nil, nil, err
	}

	return result, schema, nil
}
