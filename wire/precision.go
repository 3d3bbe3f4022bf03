package wire

// Precision is the resolution a Time or DateTime value is meaningful to. It is
// stored alongside the components and is independent of which components are
// populated.
type Precision uint8

const (
	PrecisionMillennium Precision = iota
	PrecisionCentury
	PrecisionYear
	PrecisionMonth
	PrecisionDay
	PrecisionHour
	PrecisionMinute
	PrecisionSecond
	PrecisionMillisecond
	PrecisionMicrosecond
	PrecisionNanosecond
)

var precisionNames = [...]string{
	PrecisionMillennium:  "millennium",
	PrecisionCentury:     "century",
	PrecisionYear:        "year",
	PrecisionMonth:       "month",
	PrecisionDay:         "day",
	PrecisionHour:        "hour",
	PrecisionMinute:      "minute",
	PrecisionSecond:      "second",
	PrecisionMillisecond: "millisecond",
	PrecisionMicrosecond: "microsecond",
	PrecisionNanosecond:  "nanosecond",
}

func (p Precision) String() string {
	if int(p) < len(precisionNames) {
		return precisionNames[p]
	}
	return "unknown"
}

// Valid reports whether p is one of the defined precisions.
func (p Precision) Valid() bool {
	return p <= PrecisionNanosecond
}
