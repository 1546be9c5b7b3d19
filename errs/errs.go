// Package errs defines the sentinel error taxonomy shared by every sascore package.
//
// Errors are wrapped at the call site with fmt.Errorf("%w: ...", errs.ErrXxx, ...)
// so callers can still errors.Is against the sentinel while getting a useful message.
package errs

import (
	"errors"
	"fmt"
)

// Config-facing errors: caller passed something invalid.
var (
	// ErrConfig is returned for caller-facing configuration mistakes: an unknown
	// selection name, an illegal chunk size, an invalid input path.
	ErrConfig = errors.New("sascore: config error")

	// ErrUnknownVariable is wrapped with ErrConfig when a selection names a
	// variable that does not exist in the file's metadata.
	ErrUnknownVariable = errors.New("sascore: unknown variable in selection")
)

// I/O errors: the input could not be read.
var (
	// ErrIO covers an input that cannot be opened, an mmap that fails, or an
	// empty in-memory byte slice.
	ErrIO = errors.New("sascore: io error")
)

// Parse errors: the external C parser reported a non-OK status.
var (
	// ErrParse is the base sentinel wrapped by *ParseError.
	ErrParse = errors.New("sascore: parse error")

	// ErrParserUnavailable is returned by every parser.Driver method when the
	// module was built without cgo (see internal/creadstat/session_stub.go).
	ErrParserUnavailable = errors.New("sascore: native SAS parser unavailable (built without cgo)")
)

// Encoding errors: never fatal, always recovered locally (see ingest package),
// kept here only so callers can recognize the condition via errors.Is if the
// count is ever surfaced through a non-error channel.
var (
	ErrEncoding = errors.New("sascore: text value was not valid UTF-8")
)

// Invariant errors: a bug, not a data problem.
var (
	// ErrInvariant indicates a builder/variable type mismatch or other
	// programming invariant violation. It must never be reached by valid input.
	ErrInvariant = errors.New("sascore: invariant violation")
)

// Stage identifies which phase of a parse a ParseError occurred in.
type Stage string

const (
	StageMetadata Stage = "metadata"
	StageVariable Stage = "variables"
	StageValue    Stage = "values"
	StageFinalize Stage = "finalize"
)

// ParseError wraps the integer status code the external C parser reports on
// completion, along with the stage in which the failure was observed.
type ParseError struct {
	Code  int
	Stage Stage
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sascore: parse error code %d at stage %s", e.Code, e.Stage)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// NewParseError constructs a *ParseError for the given status code and stage.
func NewParseError(code int, stage Stage) *ParseError {
	return &ParseError{Code: code, Stage: stage}
}

// InvariantError reports a builder/variable type mismatch discovered while
// appending a value during ingestion. It is always a bug, never a data issue.
type InvariantError struct {
	VarIndex int
	Detail   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("sascore: invariant violation at variable %d: %s", e.VarIndex, e.Detail)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// NewInvariantError constructs an *InvariantError for the given variable index.
func NewInvariantError(varIndex int, detail string) *InvariantError {
	return &InvariantError{VarIndex: varIndex, Detail: detail}
}

