// Package timestamp classifies Google Tasks due dates and renders them for display.
package timestamp

import (
	"strings"
	"time"
)

// Kind says which parts of a Timestamp carry meaning.
type Kind int

const (
	// KindDate is a calendar day with no time-of-day meaning.
	KindDate Kind = iota + 1
	// KindTime is a time-of-day with no calendar meaning.
	KindTime
	// KindDateTime carries both.
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "datetime"
	default:
		return "invalid"
	}
}

const (
	// dateSuffix marks a date-only value on the wire.
	dateSuffix = "T00:00:00.000Z"

	// timePrefix marks a time-only value on the wire.
	timePrefix = "0000-00-00T"

	timeOfDayLayout = "15:04:05.999999999Z07:00"
	wireLayout      = "2006-01-02T15:04:05.000Z07:00"
	dateLayout      = "2006-01-02"
)

// Timestamp is a due date of exactly one Kind.
type Timestamp struct {
	kind  Kind
	value time.Time
}

// Date returns a date-only Timestamp.
func Date(year int, month time.Month, day int) Timestamp {
	return Timestamp{kind: KindDate, value: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// TimeOfDay returns a time-only Timestamp. The calendar part is year zero.
func TimeOfDay(hour, min, sec int, loc *time.Location) Timestamp {
	if loc == nil {
		loc = time.UTC
	}
	return Timestamp{kind: KindTime, value: time.Date(0, time.January, 1, hour, min, sec, 0, loc)}
}

// DateTime returns a Timestamp with both date and time meaning.
func DateTime(t time.Time) Timestamp {
	return Timestamp{kind: KindDateTime, value: t}
}

// Kind returns the timestamp's shape.
func (ts Timestamp) Kind() Kind { return ts.kind }

// Value returns the underlying time. Only the parts meaningful for Kind
// should be read.
func (ts Timestamp) Value() time.Time { return ts.value }

// Classify turns a raw due string into a Timestamp.
// The second result is false when the string cannot be parsed; a malformed
// due date is treated as absent.
func Classify(raw string) (Timestamp, bool) {
	if rest, ok := strings.CutPrefix(raw, timePrefix); ok {
		t, err := time.Parse(timeOfDayLayout, rest)
		if err != nil {
			return Timestamp{}, false
		}
		return TimeOfDay(t.Hour(), t.Minute(), t.Second(), t.Location()), true
	}

	if datePart, ok := strings.CutSuffix(raw, dateSuffix); ok {
		d, err := time.Parse(dateLayout, datePart)
		if err != nil {
			return Timestamp{}, false
		}
		return Date(d.Year(), d.Month(), d.Day()), true
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Timestamp{}, false
	}
	return DateTime(t), true
}

// Encode renders ts in the wire encoding Classify understands.
// Time-only values have no representation the backend accepts, so Encode
// reports false for them and callers leave the field out.
func Encode(ts Timestamp) (string, bool) {
	switch ts.kind {
	case KindDate:
		return ts.value.Format(dateLayout) + dateSuffix, true
	case KindDateTime:
		return ts.value.UTC().Format(wireLayout), true
	default:
		return "", false
	}
}
