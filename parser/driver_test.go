package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasgo/sascore/classify"
	"github.com/sasgo/sascore/internal/creadstat"
	"github.com/sasgo/sascore/meta"
)

func TestVariableFromCText(t *testing.T) {
	v := creadstat.Variable{Index: 0, Name: "NAME", IsText: true, StorageWidth: 32}
	vm := variableFromC(v)
	require.Equal(t, meta.Text, vm.StorageClass)
	require.Equal(t, meta.PhysicalText, vm.PhysicalType)
}

func TestVariableFromCNumericWithFormat(t *testing.T) {
	v := creadstat.Variable{Index: 1, Name: "OPENED_AT", FormatString: "DATETIME22.3"}
	vm := variableFromC(v)
	require.Equal(t, meta.Numeric, vm.StorageClass)
	require.Equal(t, classify.DateTimeMilli, vm.TemporalClass)
	require.Equal(t, 3, vm.Decimals)
}

func TestParseDataRejectsNilSink(t *testing.T) {
	d := New(FromBytes(nil))
	err := d.ParseData(0, 10, nil)
	require.Error(t, err)
}

func TestFromBytesInput(t *testing.T) {
	in := FromBytes([]byte{1, 2, 3})
	require.Equal(t, inputBytes, in.kind)
	require.Equal(t, []byte{1, 2, 3}, in.rawBytes())
	require.NoError(t, in.Close())
}

func TestFromPathInput(t *testing.T) {
	in := FromPath("/tmp/does-not-matter.sas7bdat")
	require.Equal(t, inputPath, in.kind)
	require.Nil(t, in.rawBytes())
}
