// Package componentry holds what every actor in the service is built with: a clock, an id
// source, a logger and a mailbox.
package componentry

import (
	"sync"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/util"
)

// Clock tells the time. Components never call time.Now directly.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// StubClock is a Clock that only moves when told to.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewStubClock returns a StubClock set to now.
func NewStubClock(now time.Time) *StubClock {
	return &StubClock{now: now.UTC()}
}

// Now returns the stubbed time.
func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *StubClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Context is passed to every component constructor.
type Context struct {
	Clock  Clock
	NewID  func() string
	Logger logger.Interface
}

// NewContext returns a Context on the system clock with uuid ids.
func NewContext(log logger.Interface) Context {
	return Context{
		Clock:  SystemClock{},
		NewID:  util.NewID,
		Logger: log,
	}
}

// WithLogger returns a copy of c logging through log.
func (c Context) WithLogger(log logger.Interface) Context {
	c.Logger = log
	return c
}

// Now is shorthand for c.Clock.Now().
func (c Context) Now() time.Time {
	return c.Clock.Now()
}
