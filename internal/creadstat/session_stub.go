//go:build !cgo

package creadstat

import "github.com/sasgo/sascore/errs"

// Session is the pure-Go stand-in used when the module is built without
// cgo. It cannot parse anything — librreadstat is a C library with no pure-Go
// port — but its presence keeps every package above parser (classify, meta,
// columnar, writer, and their tests) buildable and testable without a C
// toolchain: never fail to build, degrade gracefully at call time instead.
type Session struct{}

func NewSessionFromPath(path string) *Session {
	return &Session{}
}

func NewSessionFromBytes(data []byte) *Session {
	return &Session{}
}

func (s *Session) Parse(win Window, h Handlers) error {
	return errs.ErrParserUnavailable
}
