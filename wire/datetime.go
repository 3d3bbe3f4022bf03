package wire

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date. Zero components mean unset.
type Date struct {
	Year  int32
	Month uint8 // 0–12
	Day   uint8 // 0–31
}

// IsZero reports whether every component is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// AsTime returns midnight UTC on d. Unset month and day read as 1 and an
// all-unset date reads as 0001-01-01.
func (d Date) AsTime() time.Time {
	year, month, day := int(d.Year), int(d.Month), int(d.Day)
	if d.IsZero() {
		year = 1
	}
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// QuarterHour is the unit of time zone offsets.
const QuarterHour = 15 * time.Minute

// Time is a time of day with an optional UTC offset in quarter hours.
type Time struct {
	Precision  Precision
	Hour       uint8  // 0–23
	Minute     uint8  // 0–59
	Second     uint8  // 0–59
	Nanosecond uint32 // 0–999,999,999
	Offset     int8   // quarter hours east of UTC, valid when HasOffset
	HasOffset  bool
}

// SinceMidnight returns the elapsed time from midnight, ignoring the offset.
func (t Time) SinceMidnight() time.Duration {
	return time.Duration(t.Hour)*time.Hour +
		time.Duration(t.Minute)*time.Minute +
		time.Duration(t.Second)*time.Second +
		time.Duration(t.Nanosecond)
}

// OffsetDuration returns the UTC offset, or 0 when none is set.
func (t Time) OffsetDuration() time.Duration {
	if !t.HasOffset {
		return 0
	}
	return time.Duration(t.Offset) * QuarterHour
}

// Location returns a fixed zone for the offset, or UTC when none is set.
func (t Time) Location() *time.Location {
	if !t.HasOffset {
		return time.UTC
	}
	return time.FixedZone(OffsetName(t.Offset), int(t.OffsetDuration()/time.Second))
}

func (t Time) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond != 0 {
		fmt.Fprintf(&b, ".%09d", t.Nanosecond)
	}
	if t.HasOffset {
		b.WriteString(OffsetName(t.Offset))
	}
	return b.String()
}

// OffsetName renders a quarter-hour offset as ±HH:MM.
func OffsetName(quarters int8) string {
	sign := byte('+')
	q := int(quarters)
	if q < 0 {
		sign = '-'
		q = -q
	}
	return fmt.Sprintf("%c%02d:%02d", sign, q/4, (q%4)*15)
}

// DateTime is a Date and a Time.
type DateTime struct {
	Date
	Time
}

func (dt DateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}

// AsTime combines the date and time of day in the value's zone. Unset date
// components follow Date.AsTime.
func (dt DateTime) AsTime() time.Time {
	d := dt.Date.AsTime()
	return time.Date(d.Year(), d.Month(), d.Day(),
		int(dt.Hour), int(dt.Minute), int(dt.Second), int(dt.Nanosecond),
		dt.Location())
}
