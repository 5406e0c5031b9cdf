package feedback

import (
	"context"
	"log/slog"
	"sync"
)

// Queue buffers messages until a presentation layer drains them.
// It is safe for concurrent use.
type Queue struct {
	mu       sync.Mutex
	messages []Message
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Notify appends msg.
func (q *Queue) Notify(msg Message) {
	q.mu.Lock()
	q.messages = append(q.messages, msg)
	q.mu.Unlock()
}

// Drain returns every pending message and empties the queue.
func (q *Queue) Drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.messages
	q.messages = nil
	return out
}

// Messages returns a copy of the pending messages without removing them.
func (q *Queue) Messages() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Message, len(q.messages))
	copy(out, q.messages)
	return out
}

// Len returns the number of pending messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}

// Log writes every message to a structured logger.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a Log channel. A nil logger means slog.Default().
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Notify logs msg at a level matching its kind.
func (l *Log) Notify(msg Message) {
	level := slog.LevelInfo
	switch msg.Kind {
	case KindError:
		level = slog.LevelError
	case KindWarning:
		level = slog.LevelWarn
	}
	l.logger.Log(context.Background(), level, "feedback",
		slog.String("id", msg.ID),
		slog.String("kind", string(msg.Kind)),
		slog.String("title", msg.Title),
		slog.String("description", msg.Description))
}

// Multi fans a message out to several channels, in order.
type Multi []Channel

// Notify delivers msg to every channel.
func (m Multi) Notify(msg Message) {
	for _, ch := range m {
		if ch != nil {
			ch.Notify(msg)
		}
	}
}

// Discard drops every message.
var Discard Channel = Func(func(Message) {})
