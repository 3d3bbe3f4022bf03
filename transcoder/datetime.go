package transcoder

import (
	"time"

	"github.com/wippyai/fudge/errors"
	"github.com/wippyai/fudge/transcoder/internal/abi"
	"github.com/wippyai/fudge/wire"
)

const (
	MinYear = -1 << 22
	MaxYear = 1<<22 - 1

	// MaxOffsetQuarters bounds time zone offsets; -128 is reserved on the wire
	// for "no offset".
	MaxOffsetQuarters = 127
)

func checkComponent(name string, v, low, high int64) error {
	if v < low || v > high {
		return errors.InvalidComponentRange(errors.PhaseConvert, name, v, low, high)
	}
	return nil
}

// RawDate builds a Date from components. Zero month or day means unset.
func RawDate(year, month, day int) (wire.Date, error) {
	if err := checkComponent("year", int64(year), MinYear, MaxYear); err != nil {
		return wire.Date{}, err
	}
	if err := checkComponent("month", int64(month), 0, 12); err != nil {
		return wire.Date{}, err
	}
	if err := checkComponent("day", int64(day), 0, 31); err != nil {
		return wire.Date{}, err
	}
	return wire.Date{Year: int32(year), Month: uint8(month), Day: uint8(day)}, nil
}

// RawTime builds a Time without a UTC offset.
func RawTime(p wire.Precision, hour, minute, second, nanosecond int) (wire.Time, error) {
	if err := checkComponent("precision", int64(p), int64(wire.PrecisionMillennium), int64(wire.PrecisionNanosecond)); err != nil {
		return wire.Time{}, err
	}
	if err := checkComponent("hour", int64(hour), 0, 23); err != nil {
		return wire.Time{}, err
	}
	if err := checkComponent("minute", int64(minute), 0, 59); err != nil {
		return wire.Time{}, err
	}
	if err := checkComponent("second", int64(second), 0, 59); err != nil {
		return wire.Time{}, err
	}
	if err := checkComponent("nanosecond", int64(nanosecond), 0, 999_999_999); err != nil {
		return wire.Time{}, err
	}
	return wire.Time{
		Precision:  p,
		Hour:       uint8(hour),
		Minute:     uint8(minute),
		Second:     uint8(second),
		Nanosecond: uint32(nanosecond),
	}, nil
}

// RawTimeWithOffset builds a Time with a UTC offset, which must be a whole
// number of quarter hours.
func RawTimeWithOffset(p wire.Precision, hour, minute, second, nanosecond int, offset time.Duration) (wire.Time, error) {
	t, err := RawTime(p, hour, minute, second, nanosecond)
	if err != nil {
		return wire.Time{}, err
	}
	q, err := OffsetQuarters(offset)
	if err != nil {
		return wire.Time{}, err
	}
	t.Offset, t.HasOffset = q, true
	return t, nil
}

// RawDateTime builds a DateTime without a UTC offset.
func RawDateTime(p wire.Precision, year, month, day, hour, minute, second, nanosecond int) (wire.DateTime, error) {
	d, err := RawDate(year, month, day)
	if err != nil {
		return wire.DateTime{}, err
	}
	t, err := RawTime(p, hour, minute, second, nanosecond)
	if err != nil {
		return wire.DateTime{}, err
	}
	return wire.DateTime{Date: d, Time: t}, nil
}

// RawDateTimeWithOffset builds a DateTime with a UTC offset.
func RawDateTimeWithOffset(p wire.Precision, year, month, day, hour, minute, second, nanosecond int, offset time.Duration) (wire.DateTime, error) {
	d, err := RawDate(year, month, day)
	if err != nil {
		return wire.DateTime{}, err
	}
	t, err := RawTimeWithOffset(p, hour, minute, second, nanosecond, offset)
	if err != nil {
		return wire.DateTime{}, err
	}
	return wire.DateTime{Date: d, Time: t}, nil
}

// OffsetQuarters converts a UTC offset to quarter hours. Offsets are never
// rounded.
func OffsetQuarters(offset time.Duration) (int8, error) {
	if offset%wire.QuarterHour != 0 {
		return 0, errors.UnsupportedOffsetResolution(errors.PhaseConvert, offset)
	}
	q := int64(offset / wire.QuarterHour)
	if err := checkComponent("offset", q, -MaxOffsetQuarters, MaxOffsetQuarters); err != nil {
		return 0, err
	}
	return int8(q), nil
}

func zoneOffset(t time.Time) time.Duration {
	_, secs := t.Zone()
	return time.Duration(secs) * time.Second
}

func dateMismatch(typ wire.Type, value any) error {
	return errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
		GoType(abi.TypeName(value)).
		WireType(typ.String()).
		Mismatch(typ.String(), abi.TypeName(value)).
		Detail("expected a calendar value").
		Build()
}

// ToDate converts a time.Time (its calendar date) or a wire.Date.
func ToDate(value any) (wire.Date, error) {
	switch v := value.(type) {
	case wire.Date:
		return RawDate(int(v.Year), int(v.Month), int(v.Day))
	case time.Time:
		return RawDate(v.Year(), int(v.Month()), v.Day())
	}
	return wire.Date{}, dateMismatch(wire.TypeDate, value)
}

// ToTime converts a time.Time (its time of day and zone offset, microsecond
// precision) or a wire.Time.
func ToTime(value any) (wire.Time, error) {
	switch v := value.(type) {
	case wire.Time:
		return validTime(v)
	case time.Time:
		return RawTimeWithOffset(wire.PrecisionMicrosecond,
			v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), zoneOffset(v))
	}
	return wire.Time{}, dateMismatch(wire.TypeTime, value)
}

// ToDateTime converts a time.Time (microsecond precision, zone offset kept) or
// a wire.DateTime.
func ToDateTime(value any) (wire.DateTime, error) {
	switch v := value.(type) {
	case wire.DateTime:
		d, err := ToDate(v.Date)
		if err != nil {
			return wire.DateTime{}, err
		}
		t, err := validTime(v.Time)
		if err != nil {
			return wire.DateTime{}, err
		}
		return wire.DateTime{Date: d, Time: t}, nil
	case time.Time:
		return RawDateTimeWithOffset(wire.PrecisionMicrosecond,
			v.Year(), int(v.Month()), v.Day(),
			v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), zoneOffset(v))
	}
	return wire.DateTime{}, dateMismatch(wire.TypeDateTime, value)
}

func validTime(v wire.Time) (wire.Time, error) {
	t, err := RawTime(v.Precision, int(v.Hour), int(v.Minute), int(v.Second), int(v.Nanosecond))
	if err != nil {
		return wire.Time{}, err
	}
	if v.HasOffset {
		if err := checkComponent("offset", int64(v.Offset), -MaxOffsetQuarters, MaxOffsetQuarters); err != nil {
			return wire.Time{}, err
		}
		t.Offset, t.HasOffset = v.Offset, true
	}
	return t, nil
}
