// Package deletion implements the remove-a-student workflow.
//
// A delete is never issued without an explicit yes from the user. The
// workflow offers two ways to get it: ConfirmAndDelete asks a Confirmer
// synchronously, and Request hands out a Confirmation that an event-driven
// UI resolves later with Yes or No.
package deletion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-manager/internal/collection"
	"github.com/aanand-mishra/student-manager/internal/feedback"
)

var (
	// ErrDeclined is returned when the user answered no.
	ErrDeclined = errors.New("deletion declined")

	// ErrResolved is returned when a Confirmation is answered twice.
	ErrResolved = errors.New("confirmation already resolved")
)

// SuccessTitle is the title of the message sent after a student is deleted.
const SuccessTitle = "Student deleted"

// Deleter removes a student on the service.
type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

// Confirmer asks the user whether the student with the given id should
// really be deleted.
type Confirmer interface {
	Confirm(ctx context.Context, id int64) bool
}

// ConfirmFunc adapts an ordinary function to a Confirmer.
type ConfirmFunc func(ctx context.Context, id int64) bool

// Confirm calls f(ctx, id).
func (f ConfirmFunc) Confirm(ctx context.Context, id int64) bool {
	return f(ctx, id)
}

// Workflow holds no state between invocations.
type Workflow struct {
	deleter   Deleter
	refresher collection.Refresher
	feedback  feedback.Channel
	logger    *slog.Logger
}

// New wires a workflow.
func New(deleter Deleter, refresher collection.Refresher, ch feedback.Channel, logger *slog.Logger) *Workflow {
	if ch == nil {
		ch = feedback.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		deleter:   deleter,
		refresher: refresher,
		feedback:  ch,
		logger:    logger,
	}
}

// ConfirmAndDelete asks confirmer and, on yes, deletes id. A no returns
// ErrDeclined and touches nothing.
func (w *Workflow) ConfirmAndDelete(ctx context.Context, id int64, confirmer Confirmer) error {
	if confirmer == nil || !confirmer.Confirm(ctx, id) {
		w.logger.Debug("student deletion declined", slog.Int64("id", id))
		return ErrDeclined
	}
	return w.delete(ctx, id)
}

// delete runs the remote call and reports its outcome. Only a successful
// delete is followed by a refresh: a failed one changed nothing remotely.
func (w *Workflow) delete(ctx context.Context, id int64) error {
	if err := w.deleter.Delete(ctx, id); err != nil {
		w.logger.Error("deleting student failed",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		w.feedback.Notify(feedback.Failure(err))
		return fmt.Errorf("delete student %d: %w", id, err)
	}

	w.logger.Info("student deleted", slog.Int64("id", id))
	w.feedback.Notify(feedback.Success(SuccessTitle, fmt.Sprintf("Student %d is deleted", id)))

	if err := w.refresher.Refresh(ctx); err != nil {
		w.logger.Warn("refresh after delete failed", slog.String("error", err.Error()))
	}
	return nil
}

// Request opens a confirmation for id. Nothing is sent to the service until
// the confirmation is answered with Yes.
func (w *Workflow) Request(id int64) *Confirmation {
	return &Confirmation{workflow: w, id: id}
}

// Confirmation is a pending yes/no question for one student id.
// It can be answered once.
type Confirmation struct {
	workflow *Workflow
	id       int64

	mu       sync.Mutex
	resolved bool
}

// ID is the student the confirmation is about.
func (c *Confirmation) ID() int64 {
	return c.id
}

// Yes deletes the student.
func (c *Confirmation) Yes(ctx context.Context) error {
	if !c.resolve() {
		return ErrResolved
	}
	return c.workflow.delete(ctx, c.id)
}

// No drops the confirmation without any remote call.
func (c *Confirmation) No() {
	c.resolve()
}

// Resolved reports whether Yes or No has been called.
func (c *Confirmation) Resolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolved
}

func (c *Confirmation) resolve() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved {
		return false
	}
	c.resolved = true
	return true
}
