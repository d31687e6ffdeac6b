package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseError(t *testing.T) {
	baseErr := NewBaseError()
	assert.False(t, baseErr.HasDetails())
	assert.False(t, baseErr.IsAllCodeEqual(string(InvalidConfigurationError)))

	baseErr.AddErrorDetails(
		Newf(InvalidConfigurationError, "AGGREGATION_SUBSCRIPTIONS", "subscription %q: malformed", "AUDUSD"),
		Newf(InvalidBarSpecificationError, "period", "bar period must be positive, got %d", 0),
	)

	assert.True(t, baseErr.HasDetails())
	assert.True(t, baseErr.IsAnyCodeEqual(string(InvalidBarSpecificationError)))
	assert.False(t, baseErr.IsAllCodeEqual(string(InvalidConfigurationError)))
	assert.Contains(t, baseErr.Error(), `subscription "AUDUSD": malformed`)

	assert.True(t, HasCode(baseErr, InvalidConfigurationError))
	assert.True(t, HasCode(baseErr, InvalidBarSpecificationError))
	assert.False(t, HasCode(baseErr, SchedulerStoppedError))
}

func TestErrorTracer(t *testing.T) {
	details := Newf(SchedulerJobNotFoundError, "job", "job %s not found", "bar_aggregation/1m")
	tracer := NewTracer("failed to pause job").Wrap(details)

	assert.Equal(t, "failed to pause job", tracer.Error())
	assert.NotNil(t, tracer.StackTrace())
	assert.True(t, HasCode(tracer, SchedulerJobNotFoundError))

	var target *ErrorDetails
	assert.True(t, stderrors.As(tracer, &target))
	assert.Equal(t, "job", target.Field)
}
