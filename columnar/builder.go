// Package columnar implements the closed set of column builder kinds the
// ingestion core appends values into: a tagged union over every semantic
// type the metadata model can derive, each wrapping a strongly-typed Arrow
// array builder.
package columnar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/sasgo/sascore/errs"
)

// Kind identifies which of the twelve concrete builder variants a Builder
// wraps. It is resolved once per (chunk, variable) from the column's Arrow
// type, never per value.
type Kind uint8

const (
	KindText Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindFloat32
	KindFloat64
	KindDate32
	KindTime32Sec
	KindTime64Micro
	KindTimestampSec
	KindTimestampMilli
	KindTimestampMicro
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindDate32:
		return "Date32"
	case KindTime32Sec:
		return "Time32Sec"
	case KindTime64Micro:
		return "Time64Micro"
	case KindTimestampSec:
		return "TimestampSec"
	case KindTimestampMilli:
		return "TimestampMilli"
	case KindTimestampMicro:
		return "TimestampMicro"
	default:
		return "Unknown"
	}
}

// Builder is the append-only contract every column kind implements. A
// mismatch between an incoming value's Go type and the builder's Kind is a
// programming invariant, not a data error: implementations panic via
// errs.InvariantError, which the chunk orchestrator alone recovers.
type Builder interface {
	Kind() Kind

	// AppendNull advances the row count and marks the slot invalid.
	AppendNull()

	// Finish consumes the builder, yielding an immutable Arrow array. The
	// builder must not be used afterward.
	Finish() arrow.Array

	Len() int
}

// NewBuilder constructs the Builder for field, sized for an expected
// rowCount rows. For text fields, byteHint pre-sizes the backing byte arena
// (rowCount * storage_width, per the variable's declared width); pass 0 when
// no hint is available.
func NewBuilder(field arrow.Field, rowCount, byteHint int) (Builder, error) {
	pool := memory.NewGoAllocator()

	switch t := field.Type.(type) {
	case *arrow.StringType:
		b := array.NewStringBuilder(pool)
		b.Reserve(rowCount)
		if byteHint > 0 {
			b.ReserveData(byteHint)
		}
		return &textBuilder{b: b}, nil

	case *arrow.Int8Type:
		b := array.NewInt8Builder(pool)
		b.Reserve(rowCount)
		return &int8Builder{b: b}, nil

	case *arrow.Int16Type:
		b := array.NewInt16Builder(pool)
		b.Reserve(rowCount)
		return &int16Builder{b: b}, nil

	case *arrow.Int32Type:
		b := array.NewInt32Builder(pool)
		b.Reserve(rowCount)
		return &int32Builder{b: b}, nil

	case *arrow.Float32Type:
		b := array.NewFloat32Builder(pool)
		b.Reserve(rowCount)
		return &float32Builder{b: b}, nil

	case *arrow.Float64Type:
		b := array.NewFloat64Builder(pool)
		b.Reserve(rowCount)
		return &float64Builder{b: b}, nil

	case *arrow.Date32Type:
		b := array.NewDate32Builder(pool)
		b.Reserve(rowCount)
		return &date32Builder{b: b}, nil

	case *arrow.Time32Type:
		b := array.NewTime32Builder(pool, t)
		b.Reserve(rowCount)
		return &time32Builder{b: b}, nil

	case *arrow.Time64Type:
		b := array.NewTime64Builder(pool, t)
		b.Reserve(rowCount)
		return &time64Builder{b: b}, nil

	case *arrow.TimestampType:
		b := array.NewTimestampBuilder(pool, t)
		b.Reserve(rowCount)
		switch t.Unit {
		case arrow.Second:
			return &timestampBuilder{b: b, kind: KindTimestampSec}, nil
		case arrow.Millisecond:
			return &timestampBuilder{b: b, kind: KindTimestampMilli}, nil
		case arrow.Microsecond:
			return &timestampBuilder{b: b, kind: KindTimestampMicro}, nil
		default:
			return nil, fmt.Errorf("%w: unsupported timestamp unit %v", errs.ErrConfig, t.Unit)
		}

	default:
		return nil, fmt.Errorf("%w: unsupported arrow type %v for column %q", errs.ErrConfig, field.Type, field.Name)
	}
}
