// Package collection owns the client's copy of the students collection.
//
// The Controller is the only writer. Its Refresh operation replaces the
// whole collection with a fresh List result; workflows that change the
// service never touch the collection themselves, they ask for a Refresh
// after their own call has succeeded.
package collection

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-manager/internal/feedback"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// Lister fetches the whole collection from the service.
type Lister interface {
	List(ctx context.Context) ([]types.Student, error)
}

// Refresher is the capability workflows receive to request a refresh.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc adapts an ordinary function to a Refresher.
type RefreshFunc func(ctx context.Context) error

// Refresh calls f(ctx).
func (f RefreshFunc) Refresh(ctx context.Context) error {
	return f(ctx)
}

// Snapshot is a consistent view of the controller state.
type Snapshot struct {
	Students []types.Student
	// Fetching is true while at least one List call is outstanding.
	Fetching bool
	// Loaded is true once any refresh has succeeded.
	Loaded bool
}

// Controller holds the collection and its loading status.
// It is safe for concurrent use.
type Controller struct {
	lister   Lister
	feedback feedback.Channel
	logger   *slog.Logger

	mu       sync.RWMutex
	students []types.Student
	loaded   bool
	inflight int

	// Every refresh takes a token from issued. A response is applied only if
	// its token is newer than applied, so a slow, older List call can never
	// overwrite the result of a newer one.
	issued  uint64
	applied uint64
}

// New creates a controller with an empty collection.
func New(lister Lister, ch feedback.Channel, logger *slog.Logger) *Controller {
	if ch == nil {
		ch = feedback.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		lister:   lister,
		feedback: ch,
		logger:   logger,
		students: []types.Student{},
	}
}

// Refresh fetches the collection and replaces the local copy wholesale.
//
// On failure the previous collection is kept and one error message is sent
// to the feedback channel. Either way the fetching status is cleared before
// Refresh returns.
func (c *Controller) Refresh(ctx context.Context) error {
	token := c.begin()
	defer c.end()

	students, err := c.lister.List(ctx)
	if err != nil {
		c.logger.Error("refreshing students failed", slog.String("error", err.Error()))
		c.feedback.Notify(feedback.Failure(err))
		return fmt.Errorf("refresh students: %w", err)
	}

	if !c.apply(token, students) {
		c.logger.Debug("discarding stale students response", slog.Uint64("token", token))
		return nil
	}

	c.logger.Debug("students refreshed", slog.Int("count", len(students)))
	return nil
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight++
	c.issued++
	return c.issued
}

func (c *Controller) end() {
	c.mu.Lock()
	c.inflight--
	c.mu.Unlock()
}

func (c *Controller) apply(token uint64, students []types.Student) bool {
	fresh := make([]types.Student, len(students))
	copy(fresh, students)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token < c.applied {
		return false
	}
	c.applied = token
	c.students = fresh
	c.loaded = true
	return true
}

// Students returns a copy of the current collection.
func (c *Controller) Students() []types.Student {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.Student, len(c.students))
	copy(out, c.students)
	return out
}

// Len returns the size of the current collection.
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.students)
}

// Fetching reports whether a List call is outstanding.
func (c *Controller) Fetching() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// Loaded reports whether any refresh has succeeded yet.
func (c *Controller) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Snapshot returns the collection and status read under one lock.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.Student, len(c.students))
	copy(out, c.students)
	return Snapshot{Students: out, Fetching: c.inflight > 0, Loaded: c.loaded}
}
