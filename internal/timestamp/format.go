package timestamp

import (
	"fmt"
	"time"
)

// Urgency classifies a due date relative to now.
type Urgency int

const (
	// UrgencyNone is used when no comparison with now was made.
	UrgencyNone Urgency = iota
	// UrgencyOverdue is a due date in the past.
	UrgencyOverdue
	// UrgencyDueNow is today, or this minute.
	UrgencyDueNow
	// UrgencyUpcoming is a due date in the future.
	UrgencyUpcoming
)

func (u Urgency) String() string {
	switch u {
	case UrgencyOverdue:
		return "overdue"
	case UrgencyDueNow:
		return "now"
	case UrgencyUpcoming:
		return "upcoming"
	default:
		return "none"
	}
}

const day = 24 * time.Hour

// Absolute renders the calendar date of ts as YYYY-MM-DD.
// Time-only values render their placeholder date as well.
// TODO: decide with product whether time-only values should show the clock instead.
func Absolute(ts Timestamp) (string, Urgency) {
	return ts.value.Format(dateLayout), UrgencyNone
}

// Relative renders ts as a short phrase relative to now ("tomorrow",
// "in 3 hours") together with its urgency.
func Relative(ts Timestamp, now time.Time) (string, Urgency) {
	switch ts.kind {
	case KindDate:
		return relativeDays(daysBetween(now, ts.value))
	case KindTime:
		return relativeMinutes(minutesUntilClock(ts.value, now))
	case KindDateTime:
		diff := ts.value.Sub(now)
		if days := int(diff / day); days != 0 {
			return relativeDays(daysBetween(now, ts.value.In(now.Location())))
		}
		return relativeMinutes(int(diff / time.Minute))
	default:
		return "", UrgencyNone
	}
}

// daysBetween counts whole calendar days from now's date to target's date.
func daysBetween(now, target time.Time) int {
	return civilDay(target) - civilDay(now)
}

// civilDay is the number of days since 1970-01-01 for t's calendar date.
func civilDay(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Unix() / int64(day/time.Second))
}

// minutesUntilClock compares the time-of-day of clock against now, both read
// in clock's zone, truncated toward zero.
func minutesUntilClock(clock, now time.Time) int {
	n := now.In(clock.Location())
	target := time.Date(n.Year(), n.Month(), n.Day(), clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), clock.Location())
	return int(target.Sub(n) / time.Minute)
}

func relativeDays(d int) (string, Urgency) {
	var s string
	switch {
	case d <= -14:
		s = fmt.Sprintf("%d weeks ago", -d/7)
	case d <= -7:
		s = "1 week ago"
	case d <= -2:
		s = fmt.Sprintf("%d days ago", -d)
	case d == -1:
		s = "yesterday"
	case d == 0:
		s = "today"
	case d == 1:
		s = "tomorrow"
	case d <= 6:
		s = fmt.Sprintf("in %d days", d)
	case d <= 13:
		s = "in 1 week"
	default:
		s = fmt.Sprintf("in %d weeks", d/7)
	}
	return s, urgencyOf(d)
}

func relativeMinutes(m int) (string, Urgency) {
	var s string
	switch {
	case m <= -120:
		s = fmt.Sprintf("%d hours ago", -m/60)
	case m <= -60:
		s = "1 hour ago"
	case m <= -2:
		s = fmt.Sprintf("%d minutes ago", -m)
	case m == -1:
		s = "1 minute ago"
	case m == 0:
		s = "now"
	case m == 1:
		s = "in 1 minute"
	case m <= 59:
		s = fmt.Sprintf("in %d minutes", m)
	case m <= 119:
		s = "in 1 hour"
	default:
		s = fmt.Sprintf("in %d hours", m/60)
	}
	return s, urgencyOf(m)
}

func urgencyOf(n int) Urgency {
	switch {
	case n < 0:
		return UrgencyOverdue
	case n == 0:
		return UrgencyDueNow
	default:
		return UrgencyUpcoming
	}
}
