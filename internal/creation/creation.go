// Package creation implements the add-a-student workflow.
//
// The workflow holds the draft being edited and a submitting flag. A
// successful submission clears the draft, closes the form and asks for a
// collection refresh; a failed one keeps the draft and the form so the user
// can correct and resubmit.
package creation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-manager/internal/collection"
	"github.com/aanand-mishra/student-manager/internal/feedback"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// ErrBusy is returned by Submit while another submission is in flight.
var ErrBusy = errors.New("a submission is already in progress")

// SuccessTitle is the title of the message sent after a student is added.
const SuccessTitle = "Student successfully added"

// Creator persists a draft on the service.
type Creator interface {
	Create(ctx context.Context, draft types.Draft) (types.Student, error)
}

// Panel is the form container the workflow closes after a successful submit.
type Panel interface {
	Close()
}

// Workflow is the creation state machine over {idle, submitting}.
// It is safe for concurrent use.
type Workflow struct {
	creator   Creator
	refresher collection.Refresher
	feedback  feedback.Channel
	panel     Panel
	logger    *slog.Logger

	mu         sync.Mutex
	draft      types.Draft
	submitting bool
}

// New wires a workflow. panel may be nil when there is no form to close.
func New(creator Creator, refresher collection.Refresher, ch feedback.Channel, panel Panel, logger *slog.Logger) *Workflow {
	if ch == nil {
		ch = feedback.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		creator:   creator,
		refresher: refresher,
		feedback:  ch,
		panel:     panel,
		logger:    logger,
	}
}

// Submit sends draft to the service.
//
// The caller is expected to have run draft.Validate already; the service
// remains the authority on correctness and its rejection is reported like
// any other failure. Submitting is true only while the create call is
// outstanding, whatever its outcome.
func (w *Workflow) Submit(ctx context.Context, draft types.Draft) error {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return ErrBusy
	}
	w.submitting = true
	w.draft = draft
	w.mu.Unlock()

	created, err := w.create(ctx, draft)
	if err != nil {
		w.logger.Error("creating student failed",
			slog.String("email", draft.Email),
			slog.String("error", err.Error()))
		w.feedback.Notify(feedback.Failure(err, feedback.WithPlacement(feedback.BottomLeft)))
		return fmt.Errorf("create student: %w", err)
	}

	w.logger.Info("student created", slog.Int64("id", created.ID))
	w.feedback.Notify(feedback.Success(SuccessTitle, fmt.Sprintf("%s was added to the system", draft.Name)))

	// A refresh failure is already reported by the refresher; the create
	// itself succeeded.
	if err := w.refresher.Refresh(ctx); err != nil {
		w.logger.Warn("refresh after create failed", slog.String("error", err.Error()))
	}
	return nil
}

// create runs the remote call and resets the submitting flag on every path.
// On success the draft is cleared and the form closed before the flag drops,
// so the same draft cannot be submitted twice.
func (w *Workflow) create(ctx context.Context, draft types.Draft) (types.Student, error) {
	created := false
	defer func() {
		if created && w.panel != nil {
			w.panel.Close()
		}
		w.mu.Lock()
		if created {
			w.draft = types.Draft{}
		}
		w.submitting = false
		w.mu.Unlock()
	}()

	student, err := w.creator.Create(ctx, draft)
	created = err == nil
	return student, err
}

// Cancel discards the draft and closes the form.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	w.draft = types.Draft{}
	w.mu.Unlock()
	if w.panel != nil {
		w.panel.Close()
	}
}

// SetDraft records the form's current content.
func (w *Workflow) SetDraft(draft types.Draft) {
	w.mu.Lock()
	w.draft = draft
	w.mu.Unlock()
}

// Draft returns the draft being edited.
func (w *Workflow) Draft() types.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Submitting reports whether a create call is outstanding.
func (w *Workflow) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}
