package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"
)

func newTestDB(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.db")
	db, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, path
}

func TestCreateAndList(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	students, err := db.GetStudents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)

	ana, err := db.CreateStudent(ctx, types.Draft{Name: "Ana Li", Email: "ana@x.com", Gender: types.GenderFemale})
	require.NoError(t, err)
	bob, err := db.CreateStudent(ctx, types.Draft{Name: "Bob", Email: "bob@x.com", Gender: types.GenderMale})
	require.NoError(t, err)
	assert.Greater(t, bob.ID, ana.ID)

	students, err = db.GetStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Student{ana, bob}, students)
}

func TestCreateDuplicateEmail(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateStudent(ctx, types.Draft{Name: "Ana", Email: "dup@x.com", Gender: types.GenderFemale})
	require.NoError(t, err)

	_, err = db.CreateStudent(ctx, types.Draft{Name: "Bob", Email: "dup@x.com", Gender: types.GenderMale})
	assert.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestCreateRejectsUnknownGender(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.CreateStudent(context.Background(), types.Draft{Name: "X", Email: "x@x.com", Gender: "ROBOT"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrEmailTaken)
}

func TestDelete(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	ana, err := db.CreateStudent(ctx, types.Draft{Name: "Ana", Email: "ana@x.com", Gender: types.GenderFemale})
	require.NoError(t, err)

	require.NoError(t, db.DeleteStudentByID(ctx, ana.ID))
	assert.ErrorIs(t, db.DeleteStudentByID(ctx, ana.ID), storage.ErrNotFound)

	students, err := db.GetStudents(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestReopenKeepsData(t *testing.T) {
	db, path := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateStudent(ctx, types.Draft{Name: "Ana", Email: "ana@x.com", Gender: types.GenderFemale})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	students, err := reopened.GetStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

var _ storage.Storage = (*SQLite)(nil)
