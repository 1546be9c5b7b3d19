//go:build cgo

package creadstat

/*
#include <readstat.h>
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

func handlersFromCtx(ctx unsafe.Pointer) *Handlers {
	h := *(*cgo.Handle)(ctx)
	return h.Value().(*Handlers)
}

// memReader is the io_ctx behind a readstat_io_t for an in-memory byte span:
// readstat drives it exactly like a file descriptor, via open/read/seek/close.
type memReader struct {
	data []byte
	pos  int
}

func memReaderFromCtx(ctx unsafe.Pointer) *memReader {
	h := *(*cgo.Handle)(ctx)
	return h.Value().(*memReader)
}

//export go_io_open
func go_io_open(path *C.char, ioCtx unsafe.Pointer) C.int {
	return 0
}

//export go_io_close
func go_io_close(ioCtx unsafe.Pointer) C.int {
	return 0
}

//export go_io_seek
func go_io_seek(offset C.readstat_off_t, whence C.readstat_io_flags_t, ioCtx unsafe.Pointer) C.readstat_off_t {
	r := memReaderFromCtx(ioCtx)

	var base int
	switch whence {
	case C.READSTAT_SEEK_SET:
		base = 0
	case C.READSTAT_SEEK_CUR:
		base = r.pos
	case C.READSTAT_SEEK_END:
		base = len(r.data)
	default:
		return -1
	}

	next := base + int(offset)
	if next < 0 || next > len(r.data) {
		return -1
	}

	r.pos = next
	return C.readstat_off_t(r.pos)
}

//export go_io_read
func go_io_read(buf unsafe.Pointer, nbyte C.size_t, ioCtx unsafe.Pointer) C.ssize_t {
	r := memReaderFromCtx(ioCtx)

	n := int(nbyte)
	remaining := len(r.data) - r.pos
	if remaining <= 0 {
		return 0
	}
	if n > remaining {
		n = remaining
	}

	dst := unsafe.Slice((*byte)(buf), n)
	copy(dst, r.data[r.pos:r.pos+n])
	r.pos += n

	return C.ssize_t(n)
}

//export go_io_update
func go_io_update(fileSize C.long, progressHandler C.readstat_progress_handler, userCtx unsafe.Pointer, ioCtx unsafe.Pointer) C.readstat_error_t {
	return C.READSTAT_OK
}

//export go_metadata_handler
func go_metadata_handler(metadata *C.readstat_metadata_t, ctx unsafe.Pointer) C.int {
	h := handlersFromCtx(ctx)
	if h.OnMetadata == nil {
		return C.int(StatusOK)
	}

	m := Metadata{
		RowCount:   int64(C.readstat_get_row_count(metadata)),
		VarCount:   int(C.readstat_get_var_count(metadata)),
		Compressed: int(C.readstat_get_compression(metadata)),
	}

	return C.int(h.OnMetadata(m))
}

//export go_variable_handler
func go_variable_handler(index C.int, variable *C.readstat_variable_t, valLabels *C.char, ctx unsafe.Pointer) C.int {
	h := handlersFromCtx(ctx)
	if h.OnVariable == nil {
		return C.int(StatusOK)
	}

	v := Variable{
		Index:        int(index),
		Name:         C.GoString(C.readstat_variable_get_name(variable)),
		Label:        C.GoString(C.readstat_variable_get_label(variable)),
		FormatString: C.GoString(C.readstat_variable_get_format(variable)),
		IsText:       C.readstat_variable_get_type_class(variable) == C.READSTAT_TYPE_CLASS_STRING,
		StorageWidth: int(C.readstat_variable_get_storage_width(variable)),
		DisplayWidth: int(C.readstat_variable_get_display_width(variable)),
	}

	return C.int(h.OnVariable(v))
}

//export go_value_handler
func go_value_handler(obsIndex C.int, variable *C.readstat_variable_t, value C.readstat_value_t, ctx unsafe.Pointer) C.int {
	h := handlersFromCtx(ctx)
	if h.OnValue == nil {
		return C.int(StatusOK)
	}

	idx := int(C.readstat_variable_get_index(variable))
	val := valueFromC(value)

	return C.int(h.OnValue(idx, val))
}

// valueFromC decodes a readstat_value_t into the Go Value union, dispatching
// on readstat's own reported type for the cell; the variable's declared type
// is not consulted, and any type not matched below is decoded as a double.
func valueFromC(value C.readstat_value_t) Value {
	if C.readstat_value_is_system_missing(value) != 0 {
		return Value{IsMissing: true}
	}

	switch C.readstat_value_type(value) {
	case C.READSTAT_TYPE_STRING:
		return Value{PhysicalType: 0, Text: C.GoString(C.readstat_string_value(value))}
	case C.READSTAT_TYPE_INT8:
		return Value{PhysicalType: 1, Int8: int8(C.readstat_int8_value(value))}
	case C.READSTAT_TYPE_INT16:
		return Value{PhysicalType: 2, Int16: int16(C.readstat_int16_value(value))}
	case C.READSTAT_TYPE_INT32:
		return Value{PhysicalType: 3, Int32: int32(C.readstat_int32_value(value))}
	case C.READSTAT_TYPE_FLOAT:
		return Value{PhysicalType: 4, Float32: float32(C.readstat_float_value(value))}
	default:
		return Value{PhysicalType: 5, Float64: float64(C.readstat_double_value(value))}
	}
}
