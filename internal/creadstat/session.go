// Package creadstat is the cgo boundary to librreadstat, the C library that
// actually decodes SAS7BDAT pages. It exposes nothing but a narrow Session
// type; every SAS-domain decision (schema derivation, temporal classification,
// column building) lives above this package in parser and ingest.
package creadstat

// Status is the small integer code the underlying parser reports on
// completion, or from within a callback to request early termination.
type Status int

const (
	StatusOK Status = iota
	StatusAbort
	StatusSkipVariable
)

// Handlers are the three callbacks a Session drives during a parse. They are
// plain Go closures; the cgo session (when built with cgo) bridges them to
// the C callback ABI via a runtime/cgo.Handle, never a raw unsafe.Pointer
// escaping to a Go heap object.
type Handlers struct {
	OnMetadata func(m Metadata) Status
	OnVariable func(v Variable) Status
	OnValue    func(varIndex int, val Value) Status
}

// Metadata is the file-level header a parse reports exactly once, before any
// variable or value callback fires.
type Metadata struct {
	RowCount   int64
	VarCount   int
	TableName  string
	TableLabel string
	Encoding   string
	Version    string
	Is64Bit    bool
	Compressed int // 0 none, 1 char, 2 binary
	BigEndian  bool
	CreatedAt  string
	ModifiedAt string
}

// Variable is reported once per declared variable, in file order.
type Variable struct {
	Index        int
	Name         string
	Label        string
	FormatString string
	IsText       bool
	StorageWidth int
	DisplayWidth int
}

// Value is a single decoded cell. Exactly one of the typed fields is
// meaningful, selected by PhysicalType; IsMissing takes priority over all of
// them.
type Value struct {
	PhysicalType int // mirrors meta.PhysicalType's ordinal values
	IsMissing    bool

	Text    string
	Int8    int8
	Int16   int16
	Int32   int32
	Float32 float32
	Float64 float64
}

// Window restricts a data parse to a contiguous row range.
type Window struct {
	RowOffset int64
	RowLimit  int64 // 0 means "metadata only, no value callbacks"
}
