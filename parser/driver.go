package parser

import (
	"github.com/sasgo/sascore/classify"
	"github.com/sasgo/sascore/errs"
	"github.com/sasgo/sascore/internal/creadstat"
	"github.com/sasgo/sascore/meta"
)

// Sink receives the callbacks a data parse fires, in row-major order. The
// ingest package's sink type is the production implementation; tests may
// supply their own.
type Sink interface {
	HandleValue(varIndex int, val creadstat.Value) creadstat.Status
}

// Driver wraps one creadstat.Session and exposes the two parse operations
// the chunk orchestrator drives. A Driver is not reusable across Input
// values: call New for each Input.
type Driver struct {
	input Input
}

// New returns a Driver bound to input.
func New(input Input) *Driver {
	return &Driver{input: input}
}

// ParseMetadata drives a metadata-only pass: row limit zero, so no value
// callbacks fire. It collects the file header and every declared variable
// into a meta.FileMetadata.
func (d *Driver) ParseMetadata() (meta.FileMetadata, error) {
	var fm meta.FileMetadata
	fm.Variables = make(map[int]meta.VariableMetadata)

	session := d.input.newSession()
	h := creadstat.Handlers{
		OnMetadata: func(m creadstat.Metadata) creadstat.Status {
			fm.TableName = m.TableName
			fm.TableLabel = m.TableLabel
			fm.Encoding = m.Encoding
			fm.Version = m.Version
			fm.Is64Bit = m.Is64Bit
			fm.BigEndian = m.BigEndian
			fm.CreatedAt = m.CreatedAt
			fm.ModifiedAt = m.ModifiedAt
			fm.RowCount = int(m.RowCount)
			fm.VarCount = m.VarCount
			fm.Compressed = meta.CompressionMode(m.Compressed)

			return creadstat.StatusOK
		},
		OnVariable: func(v creadstat.Variable) creadstat.Status {
			fm.Variables[v.Index] = variableFromC(v)
			return creadstat.StatusOK
		},
	}

	if err := session.Parse(creadstat.Window{RowLimit: 0}, h); err != nil {
		return meta.FileMetadata{}, err
	}

	return fm, nil
}

// ParseData drives a data pass over [rowOffset, rowOffset+rowLimit), routing
// every value to sink. Only the value callback is installed: the metadata and
// variable callbacks are ignored, so the file header and variables are not
// checked against the schema during a data pass.
func (d *Driver) ParseData(rowOffset, rowLimit int64, sink Sink) error {
	if sink == nil {
		return errs.NewInvariantError(-1, "ParseData called with a nil sink")
	}

	session := d.input.newSession()
	h := creadstat.Handlers{
		OnValue: func(varIndex int, val creadstat.Value) creadstat.Status {
			return sink.HandleValue(varIndex, val)
		},
	}

	return session.Parse(creadstat.Window{RowOffset: rowOffset, RowLimit: rowLimit}, h)
}

func variableFromC(v creadstat.Variable) meta.VariableMetadata {
	vm := meta.VariableMetadata{
		Index:        v.Index,
		Name:         v.Name,
		Label:        v.Label,
		FormatString: v.FormatString,
		StorageWidth: v.StorageWidth,
		DisplayWidth: v.DisplayWidth,
	}

	if v.IsText {
		vm.StorageClass = meta.Text
		vm.PhysicalType = meta.PhysicalText
	} else {
		vm.StorageClass = meta.Numeric
		vm.PhysicalType = meta.PhysicalFloat64
		vm.TemporalClass, vm.Decimals = classify.ParseFormatString(v.FormatString)
	}

	return vm
}
