package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/wippyai/fudge"
	"github.com/wippyai/fudge/transcoder"
	"github.com/wippyai/fudge/wire"
)

// buildSpec describes an envelope in TOML:
//
//	taxonomy = 3
//
//	[[field]]
//	name = "flag"
//	value = true
//
//	[[field]]
//	name = "ids"
//	type = "int[]"
//	value = [1, 2, 3]
//
//	[[field]]
//	name = "child"
//	[[field.field]]
//	ordinal = 1
//	value = "nested"
type buildSpec struct {
	Fields        []fieldSpec `toml:"field"`
	TextWidth     int         `toml:"text_width"`
	Taxonomy      int16       `toml:"taxonomy"`
	Directives    uint8       `toml:"directives"`
	SchemaVersion uint8       `toml:"schema_version"`
}

// fieldSpec is one field. Without a type the wire type is inferred from the
// value; a field with nested fields is a sub-message.
type fieldSpec struct {
	Value   any         `toml:"value"`
	Name    *string     `toml:"name"`
	Ordinal *int64      `toml:"ordinal"`
	Type    string      `toml:"type"`
	Fields  []fieldSpec `toml:"field"`
}

func parseBuildSpec(data []byte) (buildSpec, error) {
	var spec buildSpec
	if err := toml.Unmarshal(data, &spec); err != nil {
		return buildSpec{}, fmt.Errorf("parse message description: %w", err)
	}
	return spec, nil
}

// buildEnvelope turns a description into an envelope. textWidth applies
// unless the description sets its own.
func buildEnvelope(spec buildSpec, textWidth int) (*fudge.Envelope, error) {
	if spec.TextWidth != 0 {
		textWidth = spec.TextWidth
	}
	msg, err := buildMessage(spec.Fields, transcoder.TextWidth(textWidth), "field")
	if err != nil {
		return nil, err
	}
	return fudge.NewEnvelope(msg,
		fudge.WithDirectives(spec.Directives),
		fudge.WithSchemaVersion(spec.SchemaVersion),
		fudge.WithTaxonomy(spec.Taxonomy))
}

func buildMessage(specs []fieldSpec, width transcoder.TextWidth, path string) (*fudge.Message, error) {
	msg := fudge.NewMessage(fudge.WithTextWidth(width))
	for i, fs := range specs {
		where := fmt.Sprintf("%s[%d]", path, i)
		if err := addField(msg, fs, width, where); err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}
	}
	return msg, nil
}

func addField(msg *fudge.Message, fs fieldSpec, width transcoder.TextWidth, where string) error {
	var opts []fudge.FieldOption
	if fs.Name != nil {
		opts = append(opts, fudge.WithName(*fs.Name))
	}
	if fs.Ordinal != nil {
		if *fs.Ordinal < 0 || *fs.Ordinal > 0xFFFF {
			return fmt.Errorf("ordinal %d outside 0..65535", *fs.Ordinal)
		}
		opts = append(opts, fudge.WithOrdinal(uint16(*fs.Ordinal)))
	}

	if len(fs.Fields) > 0 || fs.Type == wire.TypeMessage.String() {
		if fs.Value != nil {
			return fmt.Errorf("a message field takes nested fields, not a value")
		}
		child, err := buildMessage(fs.Fields, width, where+".field")
		if err != nil {
			return err
		}
		return msg.AddMessage(child, opts...)
	}

	value := calendarValue(fs.Value)
	if fs.Type == "" {
		return msg.Add(value, opts...)
	}

	typ, ok := wire.Lookup(fs.Type)
	if !ok {
		return fmt.Errorf("unknown type %q", fs.Type)
	}
	switch typ {
	case wire.TypeDate:
		return msg.AddDate(value, opts...)
	case wire.TypeTime:
		return msg.AddTime(value, opts...)
	case wire.TypeDateTime:
		return msg.AddDateTime(value, opts...)
	}
	return msg.Add(value, append(opts, fudge.WithType(typ))...)
}

// calendarValue maps TOML local dates and times to wire values. Other values
// are returned unchanged.
func calendarValue(v any) any {
	switch t := v.(type) {
	case toml.LocalDate:
		return wire.Date{Year: int32(t.Year), Month: uint8(t.Month), Day: uint8(t.Day)}
	case toml.LocalTime:
		return localTime(t)
	case toml.LocalDateTime:
		return wire.DateTime{
			Date: wire.Date{Year: int32(t.Year), Month: uint8(t.Month), Day: uint8(t.Day)},
			Time: localTime(t.LocalTime),
		}
	case time.Time:
		return t
	}
	return v
}

func localTime(t toml.LocalTime) wire.Time {
	p := wire.PrecisionSecond
	switch {
	case t.Precision > 6:
		p = wire.PrecisionNanosecond
	case t.Precision > 3:
		p = wire.PrecisionMicrosecond
	case t.Precision > 0:
		p = wire.PrecisionMillisecond
	}
	return wire.Time{
		Precision:  p,
		Hour:       uint8(t.Hour),
		Minute:     uint8(t.Minute),
		Second:     uint8(t.Second),
		Nanosecond: uint32(t.Nanosecond),
	}
}

func runBuild(cfg Config, specPath, outPath string) error {
	data, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	spec, err := parseBuildSpec(data)
	if err != nil {
		return err
	}
	env, err := buildEnvelope(spec, cfg.TextWidth)
	if err != nil {
		return err
	}
	encoded, err := env.Encode()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	fmt.Printf("wrote %d fields (%d bytes) to %s\n", env.Message().Len(), len(encoded), outPath)
	return nil
}
