//go:build cgo

package creadstat

/*
#cgo pkg-config: readstat
#include <stdlib.h>
#include <readstat.h>

extern int go_metadata_handler(readstat_metadata_t *metadata, void *ctx);
extern int go_variable_handler(int index, readstat_variable_t *variable, const char *val_labels, void *ctx);
extern int go_value_handler(int obs_index, readstat_variable_t *variable, readstat_value_t value, void *ctx);

extern int go_io_open(const char *path, void *io_ctx);
extern int go_io_close(void *io_ctx);
extern readstat_off_t go_io_seek(readstat_off_t offset, readstat_io_flags_t whence, void *io_ctx);
extern ssize_t go_io_read(void *buf, size_t nbyte, void *io_ctx);
extern readstat_error_t go_io_update(long file_size, readstat_progress_handler progress_handler, void *user_ctx, void *io_ctx);
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"unsafe"

	"github.com/sasgo/sascore/errs"
)

// Session owns one readstat_parser_t. It is single-use: once a parse
// completes (successfully or not), the session must be discarded and a new
// one created for the next parse. This matches readstat's own C-level
// lifecycle contract.
type Session struct {
	path string
	data []byte
}

// NewSessionFromPath opens a session against a file path. readstat reads the
// file itself; no Go-side buffering happens for this input strategy.
func NewSessionFromPath(path string) *Session {
	return &Session{path: path}
}

// NewSessionFromBytes opens a session against an in-memory byte span. The
// bytes are handed to readstat through its readstat_io_t callback struct
// (open/read/seek/close/update), wired to memReader below, rather than
// spilled to a temp file; readstat never sees a real path for this strategy.
func NewSessionFromBytes(data []byte) *Session {
	return &Session{data: data}
}

// Parse drives a metadata-and-optionally-data pass over the session's input,
// invoking h for whatever callbacks the parser fires within win.
func (s *Session) Parse(win Window, h Handlers) error {
	parser := C.readstat_parser_init()
	if parser == nil {
		return fmt.Errorf("%w: readstat_parser_init returned NULL", errs.ErrIO)
	}
	defer C.readstat_parser_free(parser)

	C.readstat_set_metadata_handler(parser, (C.readstat_metadata_handler)(C.go_metadata_handler))
	C.readstat_set_variable_handler(parser, (C.readstat_variable_handler)(C.go_variable_handler))

	if win.RowLimit > 0 {
		C.readstat_set_value_handler(parser, (C.readstat_value_handler)(C.go_value_handler))
		C.readstat_set_row_offset(parser, C.long(win.RowOffset))
		C.readstat_set_row_limit(parser, C.long(win.RowLimit))
	}

	handle := cgo.NewHandle(&h)
	defer handle.Delete()

	if s.data != nil {
		return s.parseFromMemory(parser, unsafe.Pointer(&handle), win)
	}

	cPath := C.CString(s.path)
	defer C.free(unsafe.Pointer(cPath))

	rc := C.readstat_parse_sas7bdat(parser, cPath, unsafe.Pointer(&handle))
	if rc != C.READSTAT_OK {
		return errs.NewParseError(int(rc), stageFor(win))
	}

	return nil
}

// parseFromMemory installs an in-memory readstat_io_t backed by a memReader
// over s.data, then drives the same parse entrypoint readstat uses for a
// path-backed session. readstat_parse_sas7bdat's path argument is only
// forwarded to the open handler, which memReader's go_io_open ignores.
func (s *Session) parseFromMemory(parser *C.readstat_parser_t, userCtx unsafe.Pointer, win Window) error {
	reader := &memReader{data: s.data}
	ioHandle := cgo.NewHandle(reader)
	defer ioHandle.Delete()

	io := C.readstat_io_t{
		open:              (C.readstat_open_handler)(C.go_io_open),
		close:             (C.readstat_close_handler)(C.go_io_close),
		seek:              (C.readstat_seek_handler)(C.go_io_seek),
		read:              (C.readstat_read_handler)(C.go_io_read),
		update:            (C.readstat_update_handler)(C.go_io_update),
		io_ctx:            unsafe.Pointer(&ioHandle),
		io_ctx_needs_free: 0,
	}

	if rc := C.readstat_set_io(parser, &io); rc != C.READSTAT_OK {
		return fmt.Errorf("%w: readstat_set_io failed with code %d", errs.ErrIO, int(rc))
	}

	rc := C.readstat_parse_sas7bdat(parser, nil, userCtx)
	if rc != C.READSTAT_OK {
		return errs.NewParseError(int(rc), stageFor(win))
	}

	return nil
}

func stageFor(win Window) errs.Stage {
	if win.RowLimit == 0 {
		return errs.StageMetadata
	}

	return errs.StageValue
}
