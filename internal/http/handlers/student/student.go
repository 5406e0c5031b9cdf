// Package student contains the HTTP handlers for the students collection.
//
// Handlers are built by factories that receive their dependencies and
// return the http.HandlerFunc the router needs:
//
//	router.HandleFunc("POST /api/v1/students", student.New(storage))
//
// New(storage) is called once at startup; the returned closure runs on
// every request.
package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"
	"github.com/aanand-mishra/student-manager/internal/utils/response"
)

// Register mounts every students route on mux.
func Register(mux *http.ServeMux, s storage.Storage) {
	mux.HandleFunc("GET /api/v1/students", GetList(s))
	mux.HandleFunc("POST /api/v1/students", New(s))
	mux.HandleFunc("DELETE /api/v1/students/{id}", Delete(s))
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/v1/students
//
// Request body (JSON):
//
//	{ "name": "Ana Li", "email": "ana@x.com", "gender": "FEMALE" }
//
// Success response (201 Created): the stored student, including its id.
//
// Error responses:
//
//	400 Bad Request  empty body, malformed JSON, failed validation,
//	                 or an email that is already taken
//	500 Internal     database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var draft types.Draft
		err := json.NewDecoder(r.Body).Decode(&draft)
		if errors.Is(err, io.EOF) {
			response.Error(w, r, http.StatusBadRequest, "request body is empty")
			return
		}
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		draft = draft.Trimmed()
		if err := draft.Validate(); err != nil {
			var validateErrs validator.ValidationErrors
			if errors.As(err, &validateErrs) {
				response.Error(w, r, http.StatusBadRequest, response.ValidationMessage(validateErrs))
				return
			}
			response.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		created, err := s.CreateStudent(r.Context(), draft)
		if errors.Is(err, storage.ErrEmailTaken) {
			response.Error(w, r, http.StatusBadRequest,
				fmt.Sprintf("Email %s is already taken", draft.Email))
			return
		}
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, err.Error())
			return
		}

		slog.Info("student created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/v1/students
// Returns a JSON array of all students, [] (not null) when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := s.GetStudents(r.Context())
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, err.Error())
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/v1/students/{id}
//
// Success response: 204 No Content.
//
// Error responses:
//
//	400 Bad Request  id is not an integer
//	404 Not Found    no student with that id
//	500 Internal     database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid id: must be an integer")
			return
		}

		err = s.DeleteStudentByID(r.Context(), intID)
		if errors.Is(err, storage.ErrNotFound) {
			response.Error(w, r, http.StatusNotFound,
				fmt.Sprintf("Student with id %d does not exist.", intID))
			return
		}
		if err != nil {
			slog.Error("error deleting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, err.Error())
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
