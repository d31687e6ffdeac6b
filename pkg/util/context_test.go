package util

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWithRequestID(t *testing.T) {
	testCases := []struct {
		name     string
		id       string
		assertFn func(t *testing.T, got string)
	}{
		{
			name: "keeps given id",
			id:   "req-1",
			assertFn: func(t *testing.T, got string) {
				assert.Equal(t, "req-1", got)
			},
		},
		{
			name: "generates uuid when empty",
			id:   "",
			assertFn: func(t *testing.T, got string) {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := WithRequestID(context.Background(), tc.id)
			tc.assertFn(t, GetRequestID(ctx))
		})
	}
}

func TestFieldsFromContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithEventID(ctx, "evt-1")
	ctx = WithRequester(ctx, "bar-aggregation-controller")

	fields := (&FieldsFromContext{}).Fields(ctx)

	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "evt-1", fields["event_id"])
	assert.Equal(t, "bar-aggregation-controller", fields["requester"])
	assert.Equal(t, "", GetEventID(context.Background()))
}
