// Package meta holds the file- and variable-level metadata model extracted
// from a SAS7BDAT header, and builds the Arrow schema that column batches
// share.
package meta

import (
	"fmt"

	"github.com/sasgo/sascore/classify"
)

// StorageClass is how a variable's raw bytes are physically stored in the
// SAS file.
type StorageClass uint8

const (
	Text StorageClass = iota
	Numeric
)

func (s StorageClass) String() string {
	if s == Text {
		return "Text"
	}

	return "Numeric"
}

// PhysicalType is the concrete encoding the parser reports for a variable's
// raw value bytes. SAS numerics are physically Float64 in practice, but the
// parser reports the narrower variants for some files and the core must
// accept them.
type PhysicalType uint8

const (
	PhysicalText PhysicalType = iota
	PhysicalInt8
	PhysicalInt16
	PhysicalInt32
	PhysicalFloat32
	PhysicalFloat64
)

func (p PhysicalType) String() string {
	switch p {
	case PhysicalText:
		return "Text"
	case PhysicalInt8:
		return "Int8"
	case PhysicalInt16:
		return "Int16"
	case PhysicalInt32:
		return "Int32"
	case PhysicalFloat32:
		return "Float32"
	case PhysicalFloat64:
		return "Float64"
	default:
		return "Unknown"
	}
}

// VariableMetadata describes one column of a SAS7BDAT file.
type VariableMetadata struct {
	// Index is the stable, 0-based ordinal the variable was declared at.
	Index int

	Name         string
	Label        string
	FormatString string

	StorageClass  StorageClass
	PhysicalType  PhysicalType
	StorageWidth  int // bytes; character length for Text, 8 for Numeric
	DisplayWidth  int // optional hint; 0 when absent
	TemporalClass classify.TemporalClass
	Decimals      int // sub-second decimal places, meaningful for Time/DateTime classes only
}

// String returns a short diagnostic one-liner, used only in log fields and
// test failure messages, never in programmatic decisions.
func (v VariableMetadata) String() string {
	return fmt.Sprintf("%s[%d]:%s/%s", v.Name, v.Index, v.PhysicalType, v.TemporalClass)
}

// FileMetadata describes the file-level header of a SAS7BDAT file, plus every
// variable it declares.
type FileMetadata struct {
	TableName  string
	TableLabel string
	Encoding   string
	Version    string
	Is64Bit    bool
	Compressed CompressionMode
	BigEndian  bool

	// CreatedAt and ModifiedAt are surfaced as UTC strings in TimeLayout.
	CreatedAt  string
	ModifiedAt string

	RowCount int
	VarCount int

	// Variables maps 0-based variable index to its metadata, in file order.
	Variables map[int]VariableMetadata
}

// TimeLayout is the fixed calendar format used to render FileMetadata
// timestamps as UTC strings.
const TimeLayout = "2006-01-02T15:04:05Z"

// CompressionMode is the SAS-level page compression scheme a file uses.
type CompressionMode uint8

const (
	CompressionModeNone CompressionMode = iota
	CompressionModeChar
	CompressionModeBinary
)

func (c CompressionMode) String() string {
	switch c {
	case CompressionModeNone:
		return "None"
	case CompressionModeChar:
		return "Char"
	case CompressionModeBinary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// String returns a short diagnostic one-liner for FileMetadata.
func (f FileMetadata) String() string {
	return fmt.Sprintf("%s(%d rows, %d vars, %s)", f.TableName, f.RowCount, f.VarCount, f.Compressed)
}

// OrderedVariables returns the variables in ascending index order.
func (f FileMetadata) OrderedVariables() []VariableMetadata {
	out := make([]VariableMetadata, 0, len(f.Variables))
	for i := 0; i < f.VarCount; i++ {
		if v, ok := f.Variables[i]; ok {
			out = append(out, v)
		}
	}

	return out
}
