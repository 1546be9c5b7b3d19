package sascore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasgo/sascore/errs"
	"github.com/sasgo/sascore/meta"
	"github.com/sasgo/sascore/parser"
)

func TestReadMetadataSurfacesParserUnavailableWithoutCgo(t *testing.T) {
	_, err := ReadMetadata(parser.FromBytes(nil))
	require.ErrorIs(t, err, errs.ErrParserUnavailable)
}

func TestReadDataBuildsSchemaBeforeParsing(t *testing.T) {
	fm := meta.FileMetadata{
		RowCount: 2,
		VarCount: 1,
		Variables: map[int]meta.VariableMetadata{
			0: {Index: 0, Name: "X", StorageClass: meta.Numeric, PhysicalType: meta.PhysicalFloat64},
		},
	}

	result, schema, err := ReadData(context.Background(), parser.FromBytes(nil), fm, nil, WithChunkRows(1))
	require.NoError(t, err)
	require.Equal(t, 1, schema.NumFields())

	for range result.Batches {
	}
	require.ErrorIs(t, result.Wait(), errs.ErrParserUnavailable)
}

func TestReadDataUnknownSelectionFailsBeforeOrchestration(t *testing.T) {
	fm := meta.FileMetadata{RowCount: 1, VarCount: 1, Variables: map[int]meta.VariableMetadata{
		0: {Index: 0, Name: "X", StorageClass: meta.Numeric, PhysicalType: meta.PhysicalFloat64},
	}}

	_, _, err := ReadData(context.Background(), parser.FromBytes(nil), fm, []string{"GHOST"})
	require.ErrorIs(t, err, errs.ErrConfig)
}
