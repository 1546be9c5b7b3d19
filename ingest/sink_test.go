package ingest

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sasgo/sascore/classify"
	"github.com/sasgo/sascore/errs"
	"github.com/sasgo/sascore/internal/creadstat"
	"github.com/sasgo/sascore/meta"
)

func testVars() []meta.VariableMetadata {
	return []meta.VariableMetadata{
		{Index: 0, Name: "NAME", StorageClass: meta.Text, PhysicalType: meta.PhysicalText},
		{Index: 1, Name: "AMOUNT", StorageClass: meta.Numeric, PhysicalType: meta.PhysicalFloat64},
		{Index: 2, Name: "FILED", StorageClass: meta.Numeric, PhysicalType: meta.PhysicalFloat64, TemporalClass: classify.Date},
	}
}

func testSchema(t *testing.T) *arrow.Schema {
	t.Helper()
	fm := meta.FileMetadata{VarCount: 3, Variables: map[int]meta.VariableMetadata{
		0: testVars()[0], 1: testVars()[1], 2: testVars()[2],
	}}
	schema, err := meta.BuildSchema(fm, nil)
	require.NoError(t, err)
	return schema
}

func TestSinkAppendsRowsAndAdvancesCursor(t *testing.T) {
	vars := testVars()
	schema := testSchema(t)
	sink, err := New(vars, schema, 2, zerolog.Nop())
	require.NoError(t, err)

	feedRow := func(name string, amount float64, filedDays float64) {
		sink.HandleValue(0, creadstat.Value{PhysicalType: 0, Text: name})
		sink.HandleValue(1, creadstat.Value{PhysicalType: 5, Float64: amount})
		sink.HandleValue(2, creadstat.Value{PhysicalType: 5, Float64: filedDays})
	}

	feedRow("Alice", 120.5, 22280+3653)
	require.False(t, sink.Done())
	feedRow("Bob", 99.0, 22281+3653)
	require.True(t, sink.Done())

	batch := sink.Finish()
	require.Len(t, batch.Columns, 3)
	require.Equal(t, 2, batch.Columns[0].Len())
	require.NotZero(t, batch.Digest())
}

func TestBatchDigestMatchesForIdenticalContentDiffersOtherwise(t *testing.T) {
	build := func(amount float64) Batch {
		vars := testVars()
		schema := testSchema(t)
		sink, err := New(vars, schema, 1, zerolog.Nop())
		require.NoError(t, err)

		sink.HandleValue(0, creadstat.Value{PhysicalType: 0, Text: "Alice"})
		sink.HandleValue(1, creadstat.Value{PhysicalType: 5, Float64: amount})
		sink.HandleValue(2, creadstat.Value{PhysicalType: 5, Float64: 22280 + 3653})

		return sink.Finish()
	}

	a := build(120.5)
	b := build(120.5)
	c := build(99.0)

	require.Equal(t, a.Digest(), b.Digest())
	require.NotEqual(t, a.Digest(), c.Digest())
}

func TestSinkMissingValue(t *testing.T) {
	vars := testVars()
	schema := testSchema(t)
	sink, err := New(vars, schema, 1, zerolog.Nop())
	require.NoError(t, err)

	sink.HandleValue(0, creadstat.Value{IsMissing: true})
	sink.HandleValue(1, creadstat.Value{IsMissing: true})
	sink.HandleValue(2, creadstat.Value{IsMissing: true})

	require.True(t, sink.Done())
	batch := sink.Finish()
	require.True(t, batch.Columns[0].IsNull(0))
}

func TestSinkSelectionFiltersColumnsButNotRowCursor(t *testing.T) {
	vars := testVars()
	fm := meta.FileMetadata{VarCount: 3, Variables: map[int]meta.VariableMetadata{
		0: vars[0], 1: vars[1], 2: vars[2],
	}}
	schema, err := meta.BuildSchema(fm, nil, meta.WithSelection("AMOUNT"))
	require.NoError(t, err)

	sink, err := New(vars, schema, 1, zerolog.Nop())
	require.NoError(t, err)

	sink.HandleValue(0, creadstat.Value{PhysicalType: 0, Text: "skipped"})
	sink.HandleValue(1, creadstat.Value{PhysicalType: 5, Float64: 7.0})
	sink.HandleValue(2, creadstat.Value{PhysicalType: 5, Float64: 22281 + 3653})

	require.True(t, sink.Done(), "row cursor must advance on the unfiltered last variable")
	batch := sink.Finish()
	require.Len(t, batch.Columns, 1)
}

func TestSinkUnknownFieldIsConfigError(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{{Name: "GHOST", Type: arrow.PrimitiveTypes.Float64}}, nil)
	_, err := New(nil, schema, 1, zerolog.Nop())
	require.ErrorIs(t, err, errs.ErrConfig)
}

// TestAppendTextInvalidUTF8Fallback covers scenario 6 (spec.md §8): a text
// column declared width 4 holding "café" (5 UTF-8 bytes) truncated mid-é to
// 4 bytes — "caf" plus the lead byte of é (0xC3) with no valid continuation.
// strings.ToValidUTF8 must repair that dangling lead byte to U+FFFD while
// leaving the valid "caf" prefix untouched.
func TestAppendTextInvalidUTF8Fallback(t *testing.T) {
	vars := []meta.VariableMetadata{{Index: 0, Name: "NAME", StorageClass: meta.Text, PhysicalType: meta.PhysicalText, StorageWidth: 4}}
	fm := meta.FileMetadata{VarCount: 1, Variables: map[int]meta.VariableMetadata{0: vars[0]}}
	schema, err := meta.BuildSchema(fm, nil)
	require.NoError(t, err)

	sink, err := New(vars, schema, 1, zerolog.Nop())
	require.NoError(t, err)

	sink.HandleValue(0, creadstat.Value{PhysicalType: 0, Text: "caf\xc3"})
	batch := sink.Finish()
	strArr, ok := batch.Columns[0].(*array.String)
	require.True(t, ok)
	require.Equal(t, 1, strArr.Len())
	require.Equal(t, "caf�", strArr.Value(0))
}

// TestScenarioDateColumn mirrors the worked Date example: SAS value 22281
// (DATE9., 2021-01-20) must store as i32 18647 (days since 1970-01-01).
func TestScenarioDateColumn(t *testing.T) {
	vars := []meta.VariableMetadata{{Index: 0, Name: "FILED", StorageClass: meta.Numeric, PhysicalType: meta.PhysicalFloat64, TemporalClass: classify.Date}}
	fm := meta.FileMetadata{VarCount: 1, Variables: map[int]meta.VariableMetadata{0: vars[0]}}
	schema, err := meta.BuildSchema(fm, nil)
	require.NoError(t, err)

	sink, err := New(vars, schema, 1, zerolog.Nop())
	require.NoError(t, err)

	sink.HandleValue(0, creadstat.Value{PhysicalType: 5, Float64: 22281})
	batch := sink.Finish()

	dates, ok := batch.Columns[0].(*array.Date32)
	require.True(t, ok)
	require.Equal(t, arrow.Date32(18647), dates.Value(0))
}

// TestScenarioDateTimeMilliColumn mirrors the worked DATETIME22.3 example:
// SAS value 1926803152.221 must store as i64 ms 1611183952221.
func TestScenarioDateTimeMilliColumn(t *testing.T) {
	vars := []meta.VariableMetadata{{Index: 0, Name: "OPENED_AT", StorageClass: meta.Numeric, PhysicalType: meta.PhysicalFloat64, TemporalClass: classify.DateTimeMilli, Decimals: 3}}
	fm := meta.FileMetadata{VarCount: 1, Variables: map[int]meta.VariableMetadata{0: vars[0]}}
	schema, err := meta.BuildSchema(fm, nil)
	require.NoError(t, err)

	sink, err := New(vars, schema, 1, zerolog.Nop())
	require.NoError(t, err)

	sink.HandleValue(0, creadstat.Value{PhysicalType: 5, Float64: 1926803152.221})
	batch := sink.Finish()

	ts, ok := batch.Columns[0].(*array.Timestamp)
	require.True(t, ok)
	require.Equal(t, arrow.Timestamp(1611183952221), ts.Value(0))
}

// TestScenarioValueTypeTrumpsDeclaredType covers the documented open question:
// decoding always trusts the value's own reported physical type over the
// variable's declared type. Here the two disagree badly enough (the column
// was built from the declared type) that the mismatch surfaces as a fail-fast
// invariant violation rather than being silently coerced.
func TestScenarioValueTypeTrumpsDeclaredType(t *testing.T) {
	vars := []meta.VariableMetadata{{Index: 0, Name: "X", StorageClass: meta.Numeric, PhysicalType: meta.PhysicalFloat64}}
	fm := meta.FileMetadata{VarCount: 1, Variables: map[int]meta.VariableMetadata{0: vars[0]}}
	schema, err := meta.BuildSchema(fm, nil)
	require.NoError(t, err)

	sink, err := New(vars, schema, 1, zerolog.Nop())
	require.NoError(t, err)

	require.PanicsWithError(t,
		errs.NewInvariantError(0, "builder kind Float64 cannot append a int32 value").Error(),
		func() {
			sink.HandleValue(0, creadstat.Value{PhysicalType: 3, Int32: 42})
		},
	)
}
