package schedulerv1

import (
	"testing"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/interval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalTrigger_Next(t *testing.T) {
	start := time.Date(2024, 3, 14, 10, 16, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		trigger  IntervalTrigger
		after    time.Time
		expected time.Time
	}{
		{
			name:     "before start fires at start",
			trigger:  IntervalTrigger{Start: start, Every: interval.Fixed(time.Minute)},
			after:    start.Add(-30 * time.Second),
			expected: start,
		},
		{
			name:     "at start fires one interval later",
			trigger:  IntervalTrigger{Start: start, Every: interval.Fixed(time.Minute)},
			after:    start,
			expected: start.Add(time.Minute),
		},
		{
			name:     "between fires",
			trigger:  IntervalTrigger{Start: start, Every: interval.Fixed(time.Minute)},
			after:    start.Add(150 * time.Second),
			expected: start.Add(3 * time.Minute),
		},
		{
			name:     "monthly",
			trigger:  IntervalTrigger{Start: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Every: interval.MonthSpan(1)},
			after:    time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "zero interval fires once",
			trigger:  IntervalTrigger{Start: start},
			after:    start,
			expected: time.Time{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.trigger.Next(tc.after))
		})
	}
}

func TestCronTrigger(t *testing.T) {
	trigger, err := NewCronTrigger("0 21 * * SUN")
	require.NoError(t, err)

	// Thursday
	after := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 17, 21, 0, 0, 0, time.UTC), trigger.Next(after))

	// exactly at a fire time the next one is a week later
	assert.Equal(t, time.Date(2024, 3, 24, 21, 0, 0, 0, time.UTC), trigger.Next(time.Date(2024, 3, 17, 21, 0, 0, 0, time.UTC)))
	assert.Equal(t, "cron 0 21 * * SUN", trigger.String())

	_, err = NewCronTrigger("61 25 * * FUNDAY")
	assert.True(t, errors.HasCode(err, errors.InvalidCronExpressionError))
}

func TestJobKey_String(t *testing.T) {
	assert.Equal(t, "bar_aggregation/1m", JobKey{Group: "bar_aggregation", Name: "1m"}.String())
}
