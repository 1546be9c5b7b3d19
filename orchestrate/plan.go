// Package orchestrate plans and executes a full-file parse as a sequence of
// bounded-size chunks, delivering each finished batch to a single downstream
// consumer in ascending chunk order.
package orchestrate

// DefaultChunkRows is the default number of rows per chunk.
const DefaultChunkRows = 10_000

// ChannelCapacity bounds how many finished batches may be queued ahead of
// the consumer. It is the orchestrator's sole backpressure mechanism: a
// chunk that finishes while the channel is full blocks until the consumer
// drains one.
const ChannelCapacity = 10

// Plan describes one chunk: its offset and row count within the file.
type Plan struct {
	Index     int
	RowOffset int64
	RowLimit  int64
}

// BuildPlan partitions rowCount rows into chunks of at most chunkRows rows
// each. chunkRows must be positive; callers validate this via Option
// application before calling BuildPlan.
func BuildPlan(rowCount int64, chunkRows int) []Plan {
	if rowCount <= 0 || chunkRows <= 0 {
		return nil
	}

	n := int((rowCount + int64(chunkRows) - 1) / int64(chunkRows))
	plans := make([]Plan, 0, n)

	for i := 0; i < n; i++ {
		offset := int64(i) * int64(chunkRows)
		limit := int64(chunkRows)
		if remaining := rowCount - offset; remaining < limit {
			limit = remaining
		}

		plans = append(plans, Plan{Index: i, RowOffset: offset, RowLimit: limit})
	}

	return plans
}

// buildBoundedPlan narrows [0, rowCount) to [cfg.RowOffset, min(rowCount,
// cfg.RowOffset+cfg.RowLimit)) before chunking it, so WithRowOffset/
// WithRowLimit restrict delivery to a sub-range of the file without the
// chunk-planning logic itself needing to know about it.
func buildBoundedPlan(rowCount int64, cfg *Config) []Plan {
	start := cfg.RowOffset
	if start > rowCount {
		start = rowCount
	}

	end := rowCount
	if cfg.RowLimit > 0 && start+cfg.RowLimit < end {
		end = start + cfg.RowLimit
	}

	plans := BuildPlan(end-start, cfg.ChunkRows)
	for i := range plans {
		plans[i].RowOffset += start
	}

	return plans
}
