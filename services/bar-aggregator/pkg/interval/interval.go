package interval

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Day is a 24 hour span. Bars are aligned in UTC so every day has this length.
	Day = 24 * time.Hour
	// Week is a 7 day span.
	Week = 7 * Day
)

// mondayEpoch is the first Monday after the unix epoch; week multiples are aligned to it.
var mondayEpoch = time.Date(1970, time.January, 5, 0, 0, 0, 0, time.UTC)

// Duration is the calendar span of a wall-clock bar. It is comparable and is used as a map key.
//
// Fixed spans (seconds up to weeks) live in Span and are aligned on the unix epoch, with week
// multiples aligned on Mondays. Month spans are counted in Months and aligned on month starts.
// Exactly one of Span and Months is set.
type Duration struct {
	Span   time.Duration
	Months int
}

// Fixed returns a Duration of a fixed length.
func Fixed(span time.Duration) Duration {
	return Duration{Span: span}
}

// MonthSpan returns a Duration of n calendar months.
func MonthSpan(n int) Duration {
	return Duration{Months: n}
}

// IsZero reports whether d is the zero Duration, which is what tick bars have.
func (d Duration) IsZero() bool {
	return d.Span <= 0 && d.Months <= 0
}

// IsMonthly reports whether d is counted in calendar months.
func (d Duration) IsMonthly() bool {
	return d.Months > 0
}

// Floor returns the start of the window containing t.
func (d Duration) Floor(t time.Time) time.Time {
	t = t.UTC()

	switch {
	case d.IsMonthly():
		idx := floorDiv(int64(t.Year()-1970)*12+int64(t.Month()-1), int64(d.Months)) * int64(d.Months)
		return time.Date(1970+int(floorDiv(idx, 12)), time.Month(idx-floorDiv(idx, 12)*12+1), 1, 0, 0, 0, 0, time.UTC)
	case d.Span <= 0:
		return t
	case d.Span%Week == 0:
		elapsed := t.Sub(mondayEpoch)
		return mondayEpoch.Add(time.Duration(floorDiv(int64(elapsed), int64(d.Span)) * int64(d.Span)))
	default:
		ns := t.UnixNano()
		return time.Unix(0, floorDiv(ns, int64(d.Span))*int64(d.Span)).UTC()
	}
}

// Ceiling returns the first window boundary strictly after t.
func (d Duration) Ceiling(t time.Time) time.Time {
	return d.Next(d.Floor(t))
}

// Next returns the boundary one span after the boundary t.
func (d Duration) Next(t time.Time) time.Time {
	if d.IsMonthly() {
		return t.AddDate(0, d.Months, 0)
	}
	return t.Add(d.Span)
}

// String renders d in the short form used in job keys and metric labels, e.g. 1m, 4h, 1w, 3mo.
func (d Duration) String() string {
	switch {
	case d.IsMonthly():
		return strconv.Itoa(d.Months) + "mo"
	case d.Span <= 0:
		return "0s"
	case d.Span%Week == 0:
		return strconv.FormatInt(int64(d.Span/Week), 10) + "w"
	case d.Span%Day == 0:
		return strconv.FormatInt(int64(d.Span/Day), 10) + "d"
	case d.Span%time.Hour == 0:
		return strconv.FormatInt(int64(d.Span/time.Hour), 10) + "h"
	case d.Span%time.Minute == 0:
		return strconv.FormatInt(int64(d.Span/time.Minute), 10) + "m"
	case d.Span%time.Second == 0:
		return strconv.FormatInt(int64(d.Span/time.Second), 10) + "s"
	default:
		return d.Span.String()
	}
}

// Parse reads the short form produced by String.
func Parse(s string) (Duration, error) {
	units := []struct {
		suffix string
		span   time.Duration
	}{
		{"mo", 0},
		{"w", Week},
		{"d", Day},
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	}

	for _, u := range units {
		if !strings.HasSuffix(s, u.suffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(s, u.suffix))
		if err != nil || n <= 0 {
			return Duration{}, fmt.Errorf("invalid interval: %s", s)
		}
		if u.span == 0 {
			return MonthSpan(n), nil
		}
		return Fixed(time.Duration(n) * u.span), nil
	}

	return Duration{}, fmt.Errorf("unsupported interval: %s", s)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
