package orchestrate

import (
	"context"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sasgo/sascore/errs"
	"github.com/sasgo/sascore/ingest"
	"github.com/sasgo/sascore/internal/creadstat"
	"github.com/sasgo/sascore/internal/options"
	"github.com/sasgo/sascore/meta"
	"github.com/sasgo/sascore/parser"
)

func fileMeta() meta.FileMetadata {
	return meta.FileMetadata{
		RowCount: 5,
		VarCount: 1,
		Variables: map[int]meta.VariableMetadata{
			0: {Index: 0, Name: "X", StorageClass: meta.Numeric, PhysicalType: meta.PhysicalFloat64},
		},
	}
}

func TestWithChunkRowsRejectsNonPositive(t *testing.T) {
	cfg := &Config{}
	err := options.Apply(cfg, WithChunkRows(0))
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestWithRowOffsetRejectsNegative(t *testing.T) {
	cfg := &Config{}
	err := options.Apply(cfg, WithRowOffset(-1))
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestWithRowLimitRejectsNegative(t *testing.T) {
	cfg := &Config{}
	err := options.Apply(cfg, WithRowLimit(-1))
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestRunSurfacesParserUnavailableWithoutCgo(t *testing.T) {
	fm := fileMeta()
	schema, err := meta.BuildSchema(fm, nil)
	require.NoError(t, err)

	result, err := Run(context.Background(), parser.FromBytes(nil), fm, schema, zerolog.Nop(), WithChunkRows(2))
	require.NoError(t, err)

	for range result.Batches {
	}

	require.ErrorIs(t, result.Wait(), errs.ErrParserUnavailable)
}

// reverseDelayDriver finishes chunks in the reverse of their row-offset
// order (the earliest offset sleeps longest), stressing runParallel's
// reorder buffer: without it, batches would arrive in completion order
// (3,4,2,1,0 with four workers) instead of ascending chunk order.
type reverseDelayDriver struct {
	totalChunks int64
}

func (d reverseDelayDriver) ParseData(rowOffset, rowLimit int64, sink parser.Sink) error {
	time.Sleep(time.Duration(d.totalChunks-rowOffset) * 4 * time.Millisecond)

	for i := int64(0); i < rowLimit; i++ {
		sink.HandleValue(0, creadstat.Value{PhysicalType: 5, Float64: float64(rowOffset)})
	}

	return nil
}

func TestRunParallelDeliversBatchesInAscendingChunkOrder(t *testing.T) {
	fm := fileMeta()
	schema, err := meta.BuildSchema(fm, nil)
	require.NoError(t, err)

	plans := BuildPlan(int64(fm.RowCount), 1)
	vars := fm.OrderedVariables()
	newDriver := func() dataDriver { return reverseDelayDriver{totalChunks: int64(len(plans)) - 1} }

	out := make(chan ingest.Batch, ChannelCapacity)
	result := runParallel(context.Background(), plans, vars, schema, zerolog.Nop(), newDriver, 4, out)

	var gotOffsets []float64
	for batch := range result.Batches {
		col, ok := batch.Columns[0].(*array.Float64)
		require.True(t, ok)
		gotOffsets = append(gotOffsets, col.Value(0))
	}

	require.NoError(t, result.Wait())
	require.Equal(t, []float64{0, 1, 2, 3, 4}, gotOffsets)
}

func TestRunParallelSurfacesParserUnavailableWithoutCgo(t *testing.T) {
	fm := fileMeta()
	schema, err := meta.BuildSchema(fm, nil)
	require.NoError(t, err)

	result, err := Run(context.Background(), parser.FromBytes(nil), fm, schema, zerolog.Nop(), WithChunkRows(2), WithWorkers(3))
	require.NoError(t, err)

	for range result.Batches {
	}

	require.ErrorIs(t, result.Wait(), errs.ErrParserUnavailable)
}
