package writer

import (
	"context"
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"
)

func testRecord(t *testing.T, n int) arrow.Record {
	t.Helper()
	schema := arrow.NewSchema([]arrow.Field{{Name: "X", Type: arrow.PrimitiveTypes.Float64}}, nil)
	b := array.NewFloat64Builder(memory.NewGoAllocator())
	for i := 0; i < n; i++ {
		b.Append(float64(i))
	}
	col := b.NewArray()
	return array.NewRecord(schema, []arrow.Array{col}, int64(n))
}

func TestRecordingWriterCaptures(t *testing.T) {
	w := &RecordingWriter{}
	ctx := context.Background()

	schema := arrow.NewSchema([]arrow.Field{{Name: "X", Type: arrow.PrimitiveTypes.Float64}}, nil)
	require.NoError(t, w.Begin(ctx, schema))

	rec1 := testRecord(t, 3)
	rec2 := testRecord(t, 2)
	require.NoError(t, w.Write(ctx, rec1))
	require.NoError(t, w.Write(ctx, rec2))
	require.NoError(t, w.Finish(ctx))

	require.True(t, w.Finished)
	require.Len(t, w.Batches, 2)
	require.EqualValues(t, 5, w.TotalRows())
}

func TestRecordingWriterPropagatesErrors(t *testing.T) {
	w := &RecordingWriter{WriteErr: errors.New("boom")}
	require.Error(t, w.Write(context.Background(), testRecord(t, 1)))
}
