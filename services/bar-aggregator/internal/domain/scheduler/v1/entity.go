package schedulerv1

import (
	"fmt"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	aggregationv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/aggregation/v1"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/interval"
	"github.com/robfig/cron/v3"
)

// JobKey identifies a scheduled job.
type JobKey struct {
	Group string
	Name  string
}

func (k JobKey) String() string {
	return k.Group + "/" + k.Name
}

// MisfirePolicy decides what happens to fire times that passed while a job was paused or late.
type MisfirePolicy int

const (
	// MisfireFireNow fires once immediately for any number of missed fire times, then
	// continues on schedule.
	MisfireFireNow MisfirePolicy = iota
	// MisfireSkip drops missed fire times and waits for the next one.
	MisfireSkip
)

func (p MisfirePolicy) String() string {
	if p == MisfireSkip {
		return "skip"
	}
	return "fire_now"
}

// Trigger computes fire times.
type Trigger interface {
	// Next returns the first fire time strictly after t. The zero time means no more fires.
	Next(t time.Time) time.Time
	String() string
}

// IntervalTrigger fires at Start and then every Every, forever.
type IntervalTrigger struct {
	Start time.Time
	Every interval.Duration
}

// Next implements Trigger.
func (t IntervalTrigger) Next(after time.Time) time.Time {
	if after.Before(t.Start) {
		return t.Start
	}
	if t.Every.IsZero() {
		return time.Time{}
	}

	if !t.Every.IsMonthly() {
		steps := after.Sub(t.Start)/t.Every.Span + 1
		return t.Start.Add(steps * t.Every.Span)
	}

	next := t.Start
	for !next.After(after) {
		next = t.Every.Next(next)
	}
	return next
}

func (t IntervalTrigger) String() string {
	return fmt.Sprintf("every %s from %s", t.Every, t.Start.UTC().Format(time.RFC3339))
}

// CronTrigger fires on a standard five field cron expression evaluated in UTC.
type CronTrigger struct {
	expr     string
	schedule cron.Schedule
}

// NewCronTrigger parses expr, e.g. "0 21 * * SUN".
func NewCronTrigger(expr string) (CronTrigger, error) {
	schedule, err := cron.ParseStandard("CRON_TZ=UTC " + expr)
	if err != nil {
		return CronTrigger{}, errors.NewErrorDetailsWithObject(err.Error(), string(errors.InvalidCronExpressionError), "cron", expr)
	}
	return CronTrigger{expr: expr, schedule: schedule}, nil
}

// Next implements Trigger.
func (t CronTrigger) Next(after time.Time) time.Time {
	if t.schedule == nil {
		return time.Time{}
	}
	return t.schedule.Next(after).UTC()
}

func (t CronTrigger) String() string {
	return "cron " + t.expr
}

// CreateJob asks the scheduler to deliver Payload to Receiver on every fire of Trigger.
type CreateJob struct {
	Key      JobKey
	Trigger  Trigger
	Misfire  MisfirePolicy
	Payload  aggregationv1.Message
	Receiver aggregationv1.Receiver

	ID        string
	Timestamp time.Time
}
