package componentry

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox_FIFO(t *testing.T) {
	mb := NewMailbox[int](2)

	for i := 0; i < 5; i++ {
		require.True(t, mb.Post(i))
	}

	select {
	case <-mb.Ready():
	default:
		t.Fatal("mailbox not signalled")
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, mb.Drain())
	assert.Equal(t, 0, mb.Len())
	assert.Empty(t, mb.Drain())
}

func TestMailbox_Close(t *testing.T) {
	mb := NewMailbox[string](0)
	require.True(t, mb.Post("a"))
	mb.Close()

	assert.False(t, mb.Post("b"))
	assert.Equal(t, []string{"a"}, mb.Drain())
}

func TestMailbox_ConcurrentProducers(t *testing.T) {
	mb := NewMailbox[int](0)
	const producers, perProducer = 8, 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				mb.Post(i)
			}
		}()
	}

	received := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for received < producers*perProducer {
		select {
		case <-mb.Ready():
			received += len(mb.Drain())
		case <-done:
			received += len(mb.Drain())
		case <-time.After(time.Second):
			t.Fatalf("timed out after %d messages", received)
		}
	}

	assert.Equal(t, producers*perProducer, received)
}

func TestStubClock(t *testing.T) {
	start := time.Date(2024, 3, 14, 10, 15, 0, 0, time.UTC)
	clock := NewStubClock(start)

	clock.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), clock.Now())

	clock.Set(start)
	assert.Equal(t, start, clock.Now())
}

func TestNewContext(t *testing.T) {
	ctx := NewContext(logger.NewNop())

	_, err := uuid.Parse(ctx.NewID())
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, ctx.Now().Location())
}
