// Package ingest implements the value-handling callback at the heart of the
// ingestion core: decoding one parser-reported cell at a time and appending
// it to the matching column builder with zero intermediate boxing.
package ingest

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/rs/zerolog"

	"github.com/sasgo/sascore/classify"
	"github.com/sasgo/sascore/columnar"
	"github.com/sasgo/sascore/errs"
	"github.com/sasgo/sascore/internal/creadstat"
	"github.com/sasgo/sascore/internal/hash"
	"github.com/sasgo/sascore/meta"
)

// Batch is the immutable result of one chunk's worth of ingestion: one
// finished column per schema field, in schema order.
type Batch struct {
	Schema  *arrow.Schema
	Columns []arrow.Array
}

// Record assembles the batch's columns into an arrow.Record, the shape the
// writer package consumes. Every column must share the same length; that
// invariant is guaranteed by construction since every builder in a Sink is
// advanced once per row.
func (b Batch) Record() arrow.Record {
	numRows := int64(0)
	if len(b.Columns) > 0 {
		numRows = int64(b.Columns[0].Len())
	}

	return array.NewRecord(b.Schema, b.Columns, numRows)
}

// Digest returns a stable xxHash64 of the batch's serialized content, for
// test round-trip assertions and dedup checks between independently
// produced batches. Two batches with identical schema and column contents
// always produce the same digest, regardless of which chunk produced them.
func (b Batch) Digest() uint64 {
	rec := b.Record()
	defer rec.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(rec.Schema()))
	if err := w.Write(rec); err != nil {
		return 0
	}
	if err := w.Close(); err != nil {
		return 0
	}

	return hash.ID(buf.String())
}

// Sink owns the per-chunk builder set and cursor state a data parse drives
// values into. One Sink is good for exactly one chunk; the chunk orchestrator
// allocates a fresh Sink per chunk.
type Sink struct {
	vars       []meta.VariableMetadata // unfiltered, file order; len == total_var_count
	selected   map[int]int             // unfiltered var index -> position in builders/schema
	builders   []columnar.Builder
	schema     *arrow.Schema
	rowLimit   int
	rowCursor  int
	log        zerolog.Logger
	done       bool
}

// New builds a Sink for one chunk of up to rowLimit rows, selecting a
// builder for every field in schema. vars must be in file order and include
// every declared variable, selected or not: the row-boundary check needs the
// unfiltered count to stay in sync with the parser.
func New(vars []meta.VariableMetadata, schema *arrow.Schema, rowLimit int, log zerolog.Logger) (*Sink, error) {
	selected := make(map[int]int, schema.NumFields())
	builders := make([]columnar.Builder, schema.NumFields())

	byName := make(map[string]int, len(vars))
	for _, v := range vars {
		byName[v.Name] = v.Index
	}

	for pos := 0; pos < schema.NumFields(); pos++ {
		field := schema.Field(pos)
		varIndex, ok := byName[field.Name]
		if !ok {
			return nil, fmt.Errorf("%w: schema field %q has no matching variable", errs.ErrConfig, field.Name)
		}

		byteHint := 0
		if w, ok := field.Metadata.GetValue(meta.MetaStorageWidth); ok {
			byteHint = rowLimit * parseWidth(w)
		}

		b, err := columnar.NewBuilder(field, rowLimit, byteHint)
		if err != nil {
			return nil, err
		}

		builders[pos] = b
		selected[varIndex] = pos
	}

	return &Sink{
		vars:     vars,
		selected: selected,
		builders: builders,
		schema:   schema,
		rowLimit: rowLimit,
		log:      log,
	}, nil
}

// HandleValue implements parser.Sink. It is the single entry point for every
// decoded cell the parser reports, in row-major order.
func (s *Sink) HandleValue(varIndex int, val creadstat.Value) creadstat.Status {
	pos, wanted := s.selected[varIndex]
	if wanted {
		s.appendValue(pos, varIndex, val)
	}

	s.maybeAdvanceRow(varIndex)

	return creadstat.StatusOK
}

// appendValue decodes val and routes it to the builder at schema position
// pos. Dispatch trusts the value's own reported physical type, not the
// variable's declared type: the two disagree in rare files, and the value
// is what the parser actually handed back for this cell.
func (s *Sink) appendValue(pos, varIndex int, val creadstat.Value) {
	b := s.builders[pos]

	if val.IsMissing {
		b.AppendNull()
		return
	}

	v := s.vars[varIndex]

	switch meta.PhysicalType(val.PhysicalType) {
	case meta.PhysicalText:
		s.appendText(b, varIndex, val.Text)
	case meta.PhysicalInt8:
		asInt8(b, varIndex).AppendInt8(val.Int8)
	case meta.PhysicalInt16:
		asInt16(b, varIndex).AppendInt16(val.Int16)
	case meta.PhysicalInt32:
		asInt32(b, varIndex).AppendInt32(val.Int32)
	case meta.PhysicalFloat32:
		asFloat32(b, varIndex).AppendFloat32(val.Float32)
	case meta.PhysicalFloat64:
		s.appendFloat64(b, v, varIndex, classify.Round14(val.Float64))
	}

	if s.log.Debug().Enabled() {
		s.log.Debug().Int("var", varIndex).Str("kind", b.Kind().String()).Msg("appended value")
	}
}

// appendText validates val as UTF-8 and appends it; invalid sequences are
// repaired with the replacement character rather than rejected, since an
// empty or malformed string value is still a value, not missing data.
func (s *Sink) appendText(b columnar.Builder, varIndex int, val string) {
	tb, ok := b.(interface{ AppendString(string) })
	if !ok {
		panicMismatch(b, varIndex, "text")
	}
	if utf8.ValidString(val) {
		tb.AppendString(val)
		return
	}

	tb.AppendString(strings.ToValidUTF8(val, "�"))
}

// appendFloat64 dispatches the rounded value by the column's temporal class,
// converting SAS's 1960-01-01 epoch to the Unix 1970-01-01 epoch where
// applicable.
func (s *Sink) appendFloat64(b columnar.Builder, v meta.VariableMetadata, varIndex int, rounded float64) {
	switch v.TemporalClass {
	case classify.None:
		asFloat64(b, varIndex).AppendFloat64(rounded)

	case classify.Date:
		days := int32(rounded) - classify.DayShift
		asDate32(b, varIndex).AppendDate32(arrow.Date32(days))

	case classify.Time:
		asTime32(b, varIndex).AppendTime32(arrow.Time32(int32(rounded)))

	case classify.TimeMicro:
		micros := int64(rounded * 1e6)
		asTime64(b, varIndex).AppendTime64(arrow.Time64(micros))

	case classify.DateTimeSec:
		secs := int64(rounded) - classify.SecShift
		asTimestamp(b, varIndex).AppendTimestamp(arrow.Timestamp(secs))

	case classify.DateTimeMilli:
		millis := int64((rounded - classify.SecShift) * 1e3)
		asTimestamp(b, varIndex).AppendTimestamp(arrow.Timestamp(millis))

	case classify.DateTimeMicro:
		micros := int64((rounded - classify.SecShift) * 1e6)
		asTimestamp(b, varIndex).AppendTimestamp(arrow.Timestamp(micros))
	}
}

// The asXxx helpers assert a builder supports the Append method a decoded
// value needs. A failed assertion means the value's reported physical type
// disagreed with the column's declared type badly enough that no conversion
// applies — a programming invariant, not a data error — so each panics with
// an *errs.InvariantError rather than returning one. The panic is recovered
// only at the chunk-task boundary in the orchestrate package.

type int8Appender interface{ AppendInt8(int8) }
type int16Appender interface{ AppendInt16(int16) }
type int32Appender interface{ AppendInt32(int32) }
type float32Appender interface{ AppendFloat32(float32) }
type float64Appender interface{ AppendFloat64(float64) }
type date32Appender interface{ AppendDate32(arrow.Date32) }
type time32Appender interface{ AppendTime32(arrow.Time32) }
type time64Appender interface{ AppendTime64(arrow.Time64) }
type timestampAppender interface{ AppendTimestamp(arrow.Timestamp) }

func asInt8(b columnar.Builder, varIndex int) int8Appender {
	a, ok := b.(int8Appender)
	if !ok {
		panicMismatch(b, varIndex, "int8")
	}
	return a
}

func asInt16(b columnar.Builder, varIndex int) int16Appender {
	a, ok := b.(int16Appender)
	if !ok {
		panicMismatch(b, varIndex, "int16")
	}
	return a
}

func asInt32(b columnar.Builder, varIndex int) int32Appender {
	a, ok := b.(int32Appender)
	if !ok {
		panicMismatch(b, varIndex, "int32")
	}
	return a
}

func asFloat32(b columnar.Builder, varIndex int) float32Appender {
	a, ok := b.(float32Appender)
	if !ok {
		panicMismatch(b, varIndex, "float32")
	}
	return a
}

func asFloat64(b columnar.Builder, varIndex int) float64Appender {
	a, ok := b.(float64Appender)
	if !ok {
		panicMismatch(b, varIndex, "float64")
	}
	return a
}

func asDate32(b columnar.Builder, varIndex int) date32Appender {
	a, ok := b.(date32Appender)
	if !ok {
		panicMismatch(b, varIndex, "date32")
	}
	return a
}

func asTime32(b columnar.Builder, varIndex int) time32Appender {
	a, ok := b.(time32Appender)
	if !ok {
		panicMismatch(b, varIndex, "time32")
	}
	return a
}

func asTime64(b columnar.Builder, varIndex int) time64Appender {
	a, ok := b.(time64Appender)
	if !ok {
		panicMismatch(b, varIndex, "time64")
	}
	return a
}

func asTimestamp(b columnar.Builder, varIndex int) timestampAppender {
	a, ok := b.(timestampAppender)
	if !ok {
		panicMismatch(b, varIndex, "timestamp")
	}
	return a
}

func panicMismatch(b columnar.Builder, varIndex int, wanted string) {
	panic(errs.NewInvariantError(varIndex, fmt.Sprintf("builder kind %s cannot append a %s value", b.Kind(), wanted)))
}

// maybeAdvanceRow implements the row-boundary rule: the row counter advances
// on the last unfiltered variable index, regardless of selection, so that
// filtering variables out of the schema never desynchronizes the cursor.
func (s *Sink) maybeAdvanceRow(varIndex int) {
	if varIndex != len(s.vars)-1 {
		return
	}

	s.rowCursor++
	if s.rowCursor >= s.rowLimit {
		s.done = true
	}
}

// Done reports whether this chunk has received its full row quota.
func (s *Sink) Done() bool {
	return s.done
}

// Finish consumes every builder and returns the assembled Batch. The Sink
// must not be used afterward.
func (s *Sink) Finish() Batch {
	cols := make([]arrow.Array, len(s.builders))
	for i, b := range s.builders {
		cols[i] = b.Finish()
	}

	return Batch{Schema: s.schema, Columns: cols}
}

func parseWidth(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return n
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}
