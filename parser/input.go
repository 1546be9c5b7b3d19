// Package parser wraps the cgo-backed creadstat session with the
// metadata/data operations the chunk orchestrator drives, and the three
// input strategies a caller may hand it.
package parser

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/sasgo/sascore/errs"
	"github.com/sasgo/sascore/internal/creadstat"
)

// inputKind selects how Input was constructed.
type inputKind uint8

const (
	inputPath inputKind = iota
	inputMmap
	inputBytes
)

// Input is a closed sum type over the three ways a caller may hand SAS7BDAT
// bytes to a Driver: a file path, a memory-mapped span, or an in-memory byte
// slice. Construct one with FromPath, FromMmap, or FromBytes.
type Input struct {
	kind  inputKind
	path  string
	bytes []byte

	mmapFile *os.File
	mmapData mmap.MMap
}

// FromPath opens input lazily from a file path; the underlying C parser
// reads the file itself.
func FromPath(path string) Input {
	return Input{kind: inputPath, path: path}
}

// FromBytes wraps an in-memory byte span already held by the caller.
func FromBytes(data []byte) Input {
	return Input{kind: inputBytes, bytes: data}
}

// FromMmap memory-maps path read-only and exposes it as a byte span, avoiding
// a full read into the Go heap for large files.
func FromMmap(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return Input{}, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	return Input{kind: inputMmap, mmapFile: f, mmapData: data}, nil
}

// Close releases any resources FromMmap acquired. A no-op for the other two
// input strategies.
func (in Input) Close() error {
	if in.kind != inputMmap {
		return nil
	}

	if err := in.mmapData.Unmap(); err != nil {
		in.mmapFile.Close()
		return err
	}

	return in.mmapFile.Close()
}

// bytes returns the byte span for inputMmap/inputBytes, or nil for inputPath
// (which the session reads by path instead).
func (in Input) rawBytes() []byte {
	switch in.kind {
	case inputMmap:
		return in.mmapData
	case inputBytes:
		return in.bytes
	default:
		return nil
	}
}

// newSession constructs the creadstat.Session matching this Input's kind.
func (in Input) newSession() *creadstat.Session {
	if in.kind == inputPath {
		return creadstat.NewSessionFromPath(in.path)
	}

	return creadstat.NewSessionFromBytes(in.rawBytes())
}
