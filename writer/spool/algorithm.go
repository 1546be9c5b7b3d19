// Package spool implements the spool-able temp artifact path for the
// parallel Parquet writing variant: each chunk's serialized record batch is
// compressed independently; the merge step decompresses each artifact and
// replays its record into the destination writer in order.
package spool

type Algorithm uint8

const (
	AlgorithmNone Algorithm = iota
	AlgorithmZstd
	AlgorithmS2
	AlgorithmLZ4
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "None"
	case AlgorithmZstd:
		return "Zstd"
	case AlgorithmS2:
		return "S2"
	case AlgorithmLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
