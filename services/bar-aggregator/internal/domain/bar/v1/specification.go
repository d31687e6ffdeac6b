package barv1

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/interval"
)

// Resolution is the unit a bar period is counted in.
type Resolution int

// Resolutions supported by the aggregator.
const (
	ResolutionUnknown Resolution = iota
	ResolutionTick
	ResolutionSecond
	ResolutionMinute
	ResolutionHour
	ResolutionDay
	ResolutionWeek
	ResolutionMonth
)

var resolutionNames = map[Resolution]string{
	ResolutionTick:   "TICK",
	ResolutionSecond: "SECOND",
	ResolutionMinute: "MINUTE",
	ResolutionHour:   "HOUR",
	ResolutionDay:    "DAY",
	ResolutionWeek:   "WEEK",
	ResolutionMonth:  "MONTH",
}

func (r Resolution) String() string {
	if name, ok := resolutionNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseResolution parses the upper or lower case name of a resolution.
func ParseResolution(s string) (Resolution, error) {
	for r, name := range resolutionNames {
		if strings.EqualFold(name, s) {
			return r, nil
		}
	}
	return ResolutionUnknown, errors.Newf(errors.InvalidBarSpecificationError, "resolution", "unrecognised resolution %q", s)
}

// QuoteType selects which side of a tick a bar is built from.
type QuoteType int

// Quote types.
const (
	QuoteUnknown QuoteType = iota
	Bid
	Ask
	Mid
)

var quoteNames = map[QuoteType]string{
	Bid: "BID",
	Ask: "ASK",
	Mid: "MID",
}

func (q QuoteType) String() string {
	if name, ok := quoteNames[q]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseQuoteType parses the upper or lower case name of a quote type.
func ParseQuoteType(s string) (QuoteType, error) {
	for q, name := range quoteNames {
		if strings.EqualFold(name, s) {
			return q, nil
		}
	}
	return QuoteUnknown, errors.Newf(errors.InvalidBarSpecificationError, "quote_type", "unrecognised quote type %q", s)
}

// BarSpecification is the shape of a bar independent of the instrument it is built for.
// The fields are only set through NewBarSpecification so a value is always valid;
// two specifications are equal when period, resolution and quote type match.
type BarSpecification struct {
	period     int
	resolution Resolution
	quoteType  QuoteType
}

// NewBarSpecification validates and returns a BarSpecification.
func NewBarSpecification(period int, resolution Resolution, quoteType QuoteType) (BarSpecification, error) {
	if period < 1 {
		return BarSpecification{}, errors.Newf(errors.InvalidBarSpecificationError, "period", "bar period must be positive, got %d", period)
	}
	if _, ok := resolutionNames[resolution]; !ok {
		return BarSpecification{}, errors.Newf(errors.InvalidBarSpecificationError, "resolution", "unrecognised resolution %d", int(resolution))
	}
	if _, ok := quoteNames[quoteType]; !ok {
		return BarSpecification{}, errors.Newf(errors.InvalidBarSpecificationError, "quote_type", "unrecognised quote type %d", int(quoteType))
	}
	if unit := unitSpan(resolution); unit > 0 && int64(period) > math.MaxInt64/int64(unit) {
		return BarSpecification{}, errors.Newf(errors.InvalidBarSpecificationError, "period", "bar period %d-%s is too long", period, resolution)
	}

	return BarSpecification{period: period, resolution: resolution, quoteType: quoteType}, nil
}

// unitSpan is the longest span of one resolution unit. Tick bars have none.
func unitSpan(r Resolution) time.Duration {
	switch r {
	case ResolutionSecond:
		return time.Second
	case ResolutionMinute:
		return time.Minute
	case ResolutionHour:
		return time.Hour
	case ResolutionDay:
		return interval.Day
	case ResolutionWeek:
		return interval.Week
	case ResolutionMonth:
		return 31 * interval.Day
	default:
		return 0
	}
}

// MustBarSpecification is NewBarSpecification for values known to be valid. It panics otherwise.
func MustBarSpecification(period int, resolution Resolution, quoteType QuoteType) BarSpecification {
	spec, err := NewBarSpecification(period, resolution, quoteType)
	if err != nil {
		panic(err)
	}
	return spec
}

// ParseBarSpecification parses the PERIOD-RESOLUTION-QUOTE form, e.g. 1-MINUTE-BID.
func ParseBarSpecification(s string) (BarSpecification, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return BarSpecification{}, errors.Newf(errors.InvalidBarSpecificationError, "specification", "malformed bar specification %q", s)
	}

	period, err := strconv.Atoi(parts[0])
	if err != nil {
		return BarSpecification{}, errors.Newf(errors.InvalidBarSpecificationError, "period", "malformed bar period %q", parts[0])
	}

	resolution, err := ParseResolution(parts[1])
	if err != nil {
		return BarSpecification{}, err
	}

	quoteType, err := ParseQuoteType(parts[2])
	if err != nil {
		return BarSpecification{}, err
	}

	return NewBarSpecification(period, resolution, quoteType)
}

// Period returns the number of resolution units in one bar.
func (s BarSpecification) Period() int { return s.period }

// Resolution returns the bar resolution.
func (s BarSpecification) Resolution() Resolution { return s.resolution }

// QuoteType returns the side of the tick the bar is built from.
func (s BarSpecification) QuoteType() QuoteType { return s.quoteType }

// IsTickBar reports whether bars close by tick count instead of wall clock.
func (s BarSpecification) IsTickBar() bool { return s.resolution == ResolutionTick }

// Duration returns the wall-clock span of the bar. Tick bars have none and return false.
// Fixed spans are normalised so 60-SECOND and 1-MINUTE share a Duration.
func (s BarSpecification) Duration() (interval.Duration, bool) {
	p := time.Duration(s.period)
	switch s.resolution {
	case ResolutionSecond:
		return interval.Fixed(p * time.Second), true
	case ResolutionMinute:
		return interval.Fixed(p * time.Minute), true
	case ResolutionHour:
		return interval.Fixed(p * time.Hour), true
	case ResolutionDay:
		return interval.Fixed(p * interval.Day), true
	case ResolutionWeek:
		return interval.Fixed(p * interval.Week), true
	case ResolutionMonth:
		return interval.MonthSpan(s.period), true
	default:
		return interval.Duration{}, false
	}
}

// String renders the specification as PERIOD-RESOLUTION-QUOTE.
func (s BarSpecification) String() string {
	return strconv.Itoa(s.period) + "-" + s.resolution.String() + "-" + s.quoteType.String()
}
