package aggregation

import (
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/componentry"
	barv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/bar/v1"
	schedulerv1 "github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/domain/scheduler/v1"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/interval"
)

// JobGroup is the scheduler group of every job the controller creates.
const JobGroup = "bar_aggregation"

// BarJobKey returns the key of the bar-close job of d.
func BarJobKey(d interval.Duration) schedulerv1.JobKey {
	return schedulerv1.JobKey{Group: JobGroup, Name: d.String()}
}

type triggerEntry struct {
	trigger  schedulerv1.IntervalTrigger
	barTypes []barv1.BarType
	specRefs map[barv1.BarSpecification]int
}

// TriggerCoordinator shares one trigger between every bar type of the same duration.
// It is owned by the controller and is not safe for concurrent use.
type TriggerCoordinator struct {
	clock   componentry.Clock
	logger  logger.Interface
	entries map[interval.Duration]*triggerEntry
	order   []interval.Duration
}

// NewTriggerCoordinator returns an empty coordinator.
func NewTriggerCoordinator(cctx componentry.Context) *TriggerCoordinator {
	return &TriggerCoordinator{
		clock:   cctx.Clock,
		logger:  cctx.Logger,
		entries: make(map[interval.Duration]*triggerEntry),
	}
}

// Acquire registers barType against the trigger of its duration and reports whether the
// trigger had to be created. Tick bar types have no trigger and are ignored.
func (c *TriggerCoordinator) Acquire(barType barv1.BarType) bool {
	d, ok := barType.Specification.Duration()
	if !ok {
		return false
	}

	created := false
	entry, ok := c.entries[d]
	if !ok {
		entry = &triggerEntry{
			trigger: schedulerv1.IntervalTrigger{
				Start: d.Ceiling(c.clock.Now()),
				Every: d,
			},
			specRefs: make(map[barv1.BarSpecification]int),
		}
		c.entries[d] = entry
		c.order = append(c.order, d)
		created = true
	}

	for _, bt := range entry.barTypes {
		if bt == barType {
			return created
		}
	}

	entry.barTypes = append(entry.barTypes, barType)
	entry.specRefs[barType.Specification]++

	return created
}

// Release unregisters barType and reports whether the trigger of its duration lost its last
// bar type and was dropped.
func (c *TriggerCoordinator) Release(barType barv1.BarType) bool {
	d, ok := barType.Specification.Duration()
	if !ok {
		return false
	}

	entry, ok := c.entries[d]
	if !ok {
		c.logger.Warn("Release without trigger", logger.NewField("bar_type", barType.String()))
		return false
	}

	idx := -1
	for i, bt := range entry.barTypes {
		if bt == barType {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.logger.Warn("Release of unregistered bar type", logger.NewField("bar_type", barType.String()))
		return false
	}

	entry.barTypes = append(entry.barTypes[:idx], entry.barTypes[idx+1:]...)
	entry.specRefs[barType.Specification]--
	if entry.specRefs[barType.Specification] <= 0 {
		delete(entry.specRefs, barType.Specification)
	}

	if len(entry.barTypes) > 0 {
		return false
	}

	delete(c.entries, d)
	for i, o := range c.order {
		if o == d {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Durations returns the durations with a live trigger in creation order.
func (c *TriggerCoordinator) Durations() []interval.Duration {
	out := make([]interval.Duration, len(c.order))
	copy(out, c.order)
	return out
}

// BarTypes returns the bar types depending on d in registration order.
func (c *TriggerCoordinator) BarTypes(d interval.Duration) []barv1.BarType {
	entry, ok := c.entries[d]
	if !ok {
		return nil
	}
	out := make([]barv1.BarType, len(entry.barTypes))
	copy(out, entry.barTypes)
	return out
}

// RefCount returns the number of distinct bar types depending on d.
func (c *TriggerCoordinator) RefCount(d interval.Duration) int {
	entry, ok := c.entries[d]
	if !ok {
		return 0
	}
	return len(entry.barTypes)
}

// SpecificationRefs returns how many symbols use spec under the trigger of its duration.
func (c *TriggerCoordinator) SpecificationRefs(spec barv1.BarSpecification) int {
	d, ok := spec.Duration()
	if !ok {
		return 0
	}
	entry, ok := c.entries[d]
	if !ok {
		return 0
	}
	return entry.specRefs[spec]
}

// Trigger returns the trigger definition of d.
func (c *TriggerCoordinator) Trigger(d interval.Duration) (schedulerv1.IntervalTrigger, bool) {
	entry, ok := c.entries[d]
	if !ok {
		return schedulerv1.IntervalTrigger{}, false
	}
	return entry.trigger, true
}
