package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-manager/internal/types"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/"})
}

func TestList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, CollectionPath, r.URL.Path)
		io.WriteString(w, `[{"id":1,"name":"Ana Li","email":"ana@x.com","gender":"FEMALE"},
			{"id":7,"name":"Bob","email":"bob@x.com","gender":"MALE"}]`)
	})

	students, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.Student{
		{ID: 1, Name: "Ana Li", Email: "ana@x.com", Gender: types.GenderFemale},
		{ID: 7, Name: "Bob", Email: "bob@x.com", Gender: types.GenderMale},
	}, students)
}

func TestListEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	students, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestListServiceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message":"db down","status":500,"error":"Internal Server Error"}`)
	})

	students, err := c.List(context.Background())
	assert.Nil(t, students)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 500, svcErr.Status)
	assert.Equal(t, "db down[500][Internal Server Error]", err.Error())
}

func TestListTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url})
	students, err := c.List(context.Background())
	assert.Nil(t, students)
	assert.True(t, IsTransport(err))
}

func TestListUndecodableBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":`)
	})

	_, err := c.List(context.Background())
	assert.True(t, IsTransport(err))
}

func TestCreate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, CollectionPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var draft types.Draft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, types.Draft{Name: "Bob", Email: "bob@x.com", Gender: types.GenderMale}, draft)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(types.Student{ID: 12, Name: draft.Name, Email: draft.Email, Gender: draft.Gender})
	})

	created, err := c.Create(context.Background(), types.Draft{Name: "Bob", Email: "bob@x.com", Gender: types.GenderMale})
	require.NoError(t, err)
	assert.Equal(t, int64(12), created.ID)
	assert.Equal(t, "Bob", created.Name)
}

func TestCreateConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"message":"email taken","status":409,"error":"Conflict"}`)
	})

	_, err := c.Create(context.Background(), types.Draft{Name: "Bob", Email: "dup@x.com", Gender: types.GenderMale})

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, types.ErrorBody{Message: "email taken", Status: 409, Error: "Conflict"}, svcErr.Body())
	assert.Contains(t, err.Error(), "email taken[409][Conflict]")
}

func TestDelete(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), 5))
	assert.Equal(t, CollectionPath+"/5", gotPath)
}

func TestDeleteNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Student with id 5 does not exist.","status":404,"error":"Not Found"}`)
	})

	err := c.Delete(context.Background(), 5)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsTransport(err))
}

func TestServiceErrorFallbacks(t *testing.T) {
	svcErr := serviceError(http.StatusBadGateway, []byte("upstream unavailable\n"))
	assert.Equal(t, "upstream unavailable", svcErr.Message)
	assert.Equal(t, "Bad Gateway", svcErr.Reason)

	svcErr = serviceError(http.StatusForbidden, nil)
	assert.Equal(t, "request failed[403][Forbidden]", svcErr.Error())
}

func TestCanceledContextIsTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, context.Canceled)
}
