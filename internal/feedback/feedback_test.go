package feedback

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-manager/internal/client"
)

func TestNewDefaults(t *testing.T) {
	msg := Success("Student deleted", "Student 5 is deleted")

	assert.Equal(t, KindSuccess, msg.Kind)
	assert.Equal(t, TopRight, msg.Placement)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.At.IsZero())

	other := Success("Student deleted", "Student 5 is deleted")
	assert.NotEqual(t, msg.ID, other.ID)
}

func TestWithPlacement(t *testing.T) {
	msg := Error("x", "y", WithPlacement(BottomLeft))
	assert.Equal(t, BottomLeft, msg.Placement)
	assert.Equal(t, KindError, msg.Kind)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindSuccess, Success("a", "b").Kind)
	assert.Equal(t, KindError, Error("a", "b").Kind)
	assert.Equal(t, KindInfo, Info("a", "b").Kind)
	assert.Equal(t, KindWarning, Warning("a", "b").Kind)
}

func TestDescribe(t *testing.T) {
	svcErr := &client.ServiceError{Status: 409, Message: "email taken", Reason: "Conflict"}
	assert.Equal(t, "email taken[409][Conflict]", Describe(svcErr))
	assert.Equal(t, "email taken[409][Conflict]", Describe(fmt.Errorf("create: %w", svcErr)))

	trErr := &client.TransportError{Op: "list students", Err: errors.New("connection refused")}
	assert.Equal(t, "list students: connection refused", Describe(trErr))

	assert.Equal(t, "", Describe(nil))
}

func TestFailure(t *testing.T) {
	msg := Failure(errors.New("boom"), WithPlacement(BottomLeft))
	assert.Equal(t, IssueTitle, msg.Title)
	assert.Equal(t, "boom", msg.Description)
	assert.Equal(t, BottomLeft, msg.Placement)
}

func TestQueue(t *testing.T) {
	q := NewQueue()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Notify(Info("n", "m"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, q.Len())
	assert.Len(t, q.Messages(), 20)
	assert.Len(t, q.Drain(), 20)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain())
}

func TestLogChannel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewLog(logger).Notify(Failure(errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "description=boom")
}

func TestMulti(t *testing.T) {
	a, b := NewQueue(), NewQueue()
	Multi{a, nil, b}.Notify(Info("x", "y"))

	require.Equal(t, 1, a.Len())
	require.Equal(t, 1, b.Len())
	assert.Equal(t, a.Messages()[0].ID, b.Messages()[0].ID)
}
