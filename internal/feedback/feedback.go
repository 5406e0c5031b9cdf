// Package feedback delivers short-lived, classified messages to the user.
//
// Delivery is fire-and-forget: a Channel accepts a Message and returns
// nothing, and the sender never waits for the user to see it.
package feedback

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/student-manager/internal/client"
)

// Kind classifies a message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Placement is where a presentation layer should show the message.
type Placement string

const (
	TopRight    Placement = "topRight"
	TopLeft     Placement = "topLeft"
	BottomRight Placement = "bottomRight"
	BottomLeft  Placement = "bottomLeft"
)

// Message is a single notification.
type Message struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	Placement   Placement
	At          time.Time
}

// Channel receives messages.
type Channel interface {
	Notify(Message)
}

// Func adapts an ordinary function to a Channel.
type Func func(Message)

// Notify calls f(msg).
func (f Func) Notify(msg Message) {
	f(msg)
}

// Option adjusts a message before it is sent.
type Option func(*Message)

// WithPlacement overrides the default TopRight placement.
func WithPlacement(p Placement) Option {
	return func(m *Message) {
		m.Placement = p
	}
}

// New builds a message of the given kind.
func New(kind Kind, title, description string, opts ...Option) Message {
	msg := Message{
		ID:          uuid.New().String(),
		Kind:        kind,
		Title:       title,
		Description: description,
		Placement:   TopRight,
		At:          time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&msg)
	}
	return msg
}

// Success builds a success message.
func Success(title, description string, opts ...Option) Message {
	return New(KindSuccess, title, description, opts...)
}

// Error builds an error message.
func Error(title, description string, opts ...Option) Message {
	return New(KindError, title, description, opts...)
}

// Info builds an informational message.
func Info(title, description string, opts ...Option) Message {
	return New(KindInfo, title, description, opts...)
}

// Warning builds a warning message.
func Warning(title, description string, opts ...Option) Message {
	return New(KindWarning, title, description, opts...)
}

// IssueTitle is the title of every error message raised by a failed remote call.
const IssueTitle = "There was an Issue"

// Describe turns an operation error into the text shown to the user.
// Service errors render as message[status][error]; anything else uses the
// error's own text.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var svcErr *client.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Body().String()
	}
	return err.Error()
}

// Failure builds the error message for a failed remote call.
func Failure(err error, opts ...Option) Message {
	return Error(IssueTitle, Describe(err), opts...)
}
