package meta

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/sasgo/sascore/classify"
	"github.com/sasgo/sascore/errs"
	"github.com/sasgo/sascore/internal/options"
)

// Annotation keys attached to arrow.Field.Metadata and arrow.Schema.Metadata.
// These are the on-the-wire contract consumers read to recover SAS-specific
// context that the Arrow type system alone cannot express.
const (
	MetaLabel        = "label"
	MetaSASFormat    = "sas_format"
	MetaStorageWidth = "storage_width"
	MetaDisplayWidth = "display_width"
	MetaTableLabel   = "table_label"
)

// schemaConfig holds the build-time configuration BuildSchema assembles from
// its SchemaOption list.
type schemaConfig struct {
	selection []string
}

// SchemaOption configures a BuildSchema call.
type SchemaOption = options.Option[*schemaConfig]

// WithSelection restricts the built schema to the named variables, in the
// given order. Variables not named are still parsed (the parser is always
// driven over every declared variable) but excluded from the schema and from
// every column batch.
func WithSelection(names ...string) SchemaOption {
	return options.New(func(cfg *schemaConfig) error {
		cfg.selection = names
		return nil
	})
}

// BuildSchema derives the Arrow schema for fm, honoring an optional variable
// selection. Each field's Arrow type is computed from the variable's
// storage class, physical type, and temporal class:
//
//   - Text                              -> Text (utf8)
//   - Numeric + Date                    -> Date32 (days since Unix epoch)
//   - Numeric + Time (sec precision)    -> Time32 seconds (since midnight)
//   - Numeric + TimeMicro                -> Time64 microseconds (since midnight)
//   - Numeric + DateTimeSec             -> Timestamp seconds (since Unix epoch)
//   - Numeric + DateTimeMilli           -> Timestamp milliseconds
//   - Numeric + DateTimeMicro           -> Timestamp microseconds
//   - Numeric + None                   -> numeric of the variable's physical
//     type, widened to Float64 when the physical type already is Float64
//
// An unknown name in selection returns errs.ErrConfig wrapped with the
// offending name.
func BuildSchema(fm FileMetadata, selection []string, opts ...SchemaOption) (*arrow.Schema, error) {
	cfg := &schemaConfig{selection: selection}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	ordered := fm.OrderedVariables()

	var chosen []VariableMetadata
	if len(cfg.selection) == 0 {
		chosen = ordered
	} else {
		byName := make(map[string]VariableMetadata, len(ordered))
		for _, v := range ordered {
			byName[v.Name] = v
		}

		chosen = make([]VariableMetadata, 0, len(cfg.selection))
		for _, name := range cfg.selection {
			v, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("%w: %w: %q", errs.ErrConfig, errs.ErrUnknownVariable, name)
			}
			chosen = append(chosen, v)
		}
	}

	tracker := newNameTracker()
	fields := make([]arrow.Field, 0, len(chosen))
	for _, v := range chosen {
		if err := tracker.track(v.Name); err != nil {
			return nil, err
		}
		fields = append(fields, fieldFor(v))
	}

	meta := arrow.Metadata{}
	if fm.TableLabel != "" {
		meta = arrow.NewMetadata([]string{MetaTableLabel}, []string{fm.TableLabel})
	}

	return arrow.NewSchema(fields, &meta), nil
}

// fieldFor derives the Arrow field for a single variable, per the semantic
// type derivation table.
func fieldFor(v VariableMetadata) arrow.Field {
	return arrow.Field{
		Name:     v.Name,
		Type:     arrowTypeFor(v),
		Nullable: true,
		Metadata: fieldMetadata(v),
	}
}

func arrowTypeFor(v VariableMetadata) arrow.DataType {
	if v.StorageClass == Text {
		return arrow.BinaryTypes.String
	}

	switch v.TemporalClass {
	case classify.Date:
		return arrow.FixedWidthTypes.Date32
	case classify.Time:
		return &arrow.Time32Type{Unit: arrow.Second}
	case classify.TimeMicro:
		return &arrow.Time64Type{Unit: arrow.Microsecond}
	case classify.DateTimeSec:
		return &arrow.TimestampType{Unit: arrow.Second}
	case classify.DateTimeMilli:
		return &arrow.TimestampType{Unit: arrow.Millisecond}
	case classify.DateTimeMicro:
		return &arrow.TimestampType{Unit: arrow.Microsecond}
	default:
		return numericTypeFor(v.PhysicalType)
	}
}

// numericTypeFor maps each numeric physical type to the Arrow type of the
// same width, with no widening or narrowing; Float64 (and any unrecognized
// physical type) maps to Float64.
func numericTypeFor(p PhysicalType) arrow.DataType {
	switch p {
	case PhysicalInt8:
		return arrow.PrimitiveTypes.Int8
	case PhysicalInt16:
		return arrow.PrimitiveTypes.Int16
	case PhysicalInt32:
		return arrow.PrimitiveTypes.Int32
	case PhysicalFloat32:
		return arrow.PrimitiveTypes.Float32
	default:
		return arrow.PrimitiveTypes.Float64
	}
}

func fieldMetadata(v VariableMetadata) arrow.Metadata {
	keys := make([]string, 0, 4)
	vals := make([]string, 0, 4)

	keys = append(keys, MetaLabel, MetaSASFormat, MetaStorageWidth)
	vals = append(vals, v.Label, v.FormatString, fmt.Sprint(v.StorageWidth))

	if v.DisplayWidth != 0 {
		keys = append(keys, MetaDisplayWidth)
		vals = append(vals, fmt.Sprint(v.DisplayWidth))
	}

	return arrow.NewMetadata(keys, vals)
}
