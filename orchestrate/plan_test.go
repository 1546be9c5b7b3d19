package orchestrate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPlanEvenSplit(t *testing.T) {
	plans := BuildPlan(30, 10)
	require.Len(t, plans, 3)
	require.Equal(t, Plan{Index: 0, RowOffset: 0, RowLimit: 10}, plans[0])
	require.Equal(t, Plan{Index: 2, RowOffset: 20, RowLimit: 10}, plans[2])
}

func TestBuildPlanRemainder(t *testing.T) {
	plans := BuildPlan(25, 10)
	require.Len(t, plans, 3)
	require.Equal(t, int64(5), plans[2].RowLimit)
}

func TestBuildPlanZeroRows(t *testing.T) {
	require.Empty(t, BuildPlan(0, 10))
	require.Empty(t, BuildPlan(10, 0))
}

func TestBuildPlanSmallChunkSize(t *testing.T) {
	plans := BuildPlan(7, 1)
	require.Len(t, plans, 7)
	for i, p := range plans {
		require.Equal(t, i, p.Index)
		require.Equal(t, int64(1), p.RowLimit)
	}
}

func TestBuildBoundedPlanAppliesOffsetAndLimit(t *testing.T) {
	cfg := &Config{ChunkRows: 10, RowOffset: 15, RowLimit: 20}
	plans := buildBoundedPlan(100, cfg)

	var total int64
	for _, p := range plans {
		total += p.RowLimit
	}

	require.Equal(t, int64(20), total)
	require.Equal(t, int64(15), plans[0].RowOffset)
}

func TestBuildBoundedPlanLimitClampedToRowCount(t *testing.T) {
	cfg := &Config{ChunkRows: 10, RowOffset: 90, RowLimit: 50}
	plans := buildBoundedPlan(100, cfg)

	var total int64
	for _, p := range plans {
		total += p.RowLimit
	}

	require.Equal(t, int64(10), total, "min(row_count, row_offset+row_limit) - row_offset")
}

func TestBuildBoundedPlanZeroLimitMeansThroughEndOfFile(t *testing.T) {
	cfg := &Config{ChunkRows: 10, RowOffset: 95}
	plans := buildBoundedPlan(100, cfg)

	var total int64
	for _, p := range plans {
		total += p.RowLimit
	}

	require.Equal(t, int64(5), total)
}

func TestBuildBoundedPlanOffsetPastEndOfFile(t *testing.T) {
	cfg := &Config{ChunkRows: 10, RowOffset: 1000}
	require.Empty(t, buildBoundedPlan(100, cfg))
}
