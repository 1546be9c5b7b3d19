package columnar

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Each concrete builder below wraps exactly one arrow/array builder and adds
// a single strongly-typed Append method plus the common Builder methods.
// Callers resolve the Kind once per (chunk, variable) and then call the
// matching typed Append directly — never through a boxed interface{} value.

type textBuilder struct{ b *array.StringBuilder }

func (t *textBuilder) Kind() Kind          { return KindText }
func (t *textBuilder) AppendNull()         { t.b.AppendNull() }
func (t *textBuilder) Finish() arrow.Array { return t.b.NewArray() }
func (t *textBuilder) Len() int            { return t.b.Len() }
func (t *textBuilder) AppendString(v string) {
	t.b.Append(v)
}

type int8Builder struct{ b *array.Int8Builder }

func (n *int8Builder) Kind() Kind          { return KindInt8 }
func (n *int8Builder) AppendNull()         { n.b.AppendNull() }
func (n *int8Builder) Finish() arrow.Array { return n.b.NewArray() }
func (n *int8Builder) Len() int            { return n.b.Len() }
func (n *int8Builder) AppendInt8(v int8)    { n.b.Append(v) }

type int16Builder struct{ b *array.Int16Builder }

func (n *int16Builder) Kind() Kind          { return KindInt16 }
func (n *int16Builder) AppendNull()         { n.b.AppendNull() }
func (n *int16Builder) Finish() arrow.Array { return n.b.NewArray() }
func (n *int16Builder) Len() int            { return n.b.Len() }
func (n *int16Builder) AppendInt16(v int16) { n.b.Append(v) }

type int32Builder struct{ b *array.Int32Builder }

func (n *int32Builder) Kind() Kind          { return KindInt32 }
func (n *int32Builder) AppendNull()         { n.b.AppendNull() }
func (n *int32Builder) Finish() arrow.Array { return n.b.NewArray() }
func (n *int32Builder) Len() int            { return n.b.Len() }
func (n *int32Builder) AppendInt32(v int32) { n.b.Append(v) }

type float32Builder struct{ b *array.Float32Builder }

func (n *float32Builder) Kind() Kind            { return KindFloat32 }
func (n *float32Builder) AppendNull()           { n.b.AppendNull() }
func (n *float32Builder) Finish() arrow.Array   { return n.b.NewArray() }
func (n *float32Builder) Len() int              { return n.b.Len() }
func (n *float32Builder) AppendFloat32(v float32) { n.b.Append(v) }

type float64Builder struct{ b *array.Float64Builder }

func (n *float64Builder) Kind() Kind              { return KindFloat64 }
func (n *float64Builder) AppendNull()             { n.b.AppendNull() }
func (n *float64Builder) Finish() arrow.Array     { return n.b.NewArray() }
func (n *float64Builder) Len() int                { return n.b.Len() }
func (n *float64Builder) AppendFloat64(v float64) { n.b.Append(v) }

type date32Builder struct{ b *array.Date32Builder }

func (n *date32Builder) Kind() Kind                { return KindDate32 }
func (n *date32Builder) AppendNull()               { n.b.AppendNull() }
func (n *date32Builder) Finish() arrow.Array       { return n.b.NewArray() }
func (n *date32Builder) Len() int                  { return n.b.Len() }
func (n *date32Builder) AppendDate32(v arrow.Date32) { n.b.Append(v) }

type time32Builder struct{ b *array.Time32Builder }

func (n *time32Builder) Kind() Kind                { return KindTime32Sec }
func (n *time32Builder) AppendNull()               { n.b.AppendNull() }
func (n *time32Builder) Finish() arrow.Array       { return n.b.NewArray() }
func (n *time32Builder) Len() int                  { return n.b.Len() }
func (n *time32Builder) AppendTime32(v arrow.Time32) { n.b.Append(v) }

type time64Builder struct{ b *array.Time64Builder }

func (n *time64Builder) Kind() Kind                { return KindTime64Micro }
func (n *time64Builder) AppendNull()               { n.b.AppendNull() }
func (n *time64Builder) Finish() arrow.Array       { return n.b.NewArray() }
func (n *time64Builder) Len() int                  { return n.b.Len() }
func (n *time64Builder) AppendTime64(v arrow.Time64) { n.b.Append(v) }

// timestampBuilder covers all three timestamp units; kind distinguishes them
// since array.TimestampBuilder itself is unit-agnostic at the Go type level.
type timestampBuilder struct {
	b    *array.TimestampBuilder
	kind Kind
}

func (n *timestampBuilder) Kind() Kind              { return n.kind }
func (n *timestampBuilder) AppendNull()             { n.b.AppendNull() }
func (n *timestampBuilder) Finish() arrow.Array     { return n.b.NewArray() }
func (n *timestampBuilder) Len() int                { return n.b.Len() }
func (n *timestampBuilder) AppendTimestamp(v arrow.Timestamp) { n.b.Append(v) }
