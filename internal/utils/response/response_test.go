package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-manager/internal/types"
)

func TestError(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/students/9", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, Error(rec, req, http.StatusNotFound, "Student with id 9 does not exist."))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body types.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 404, body.Status)
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "Student with id 9 does not exist.", body.Message)
	assert.Equal(t, "/api/v1/students/9", body.Path)
	assert.NotEmpty(t, body.Timestamp)
}

func TestValidationMessage(t *testing.T) {
	err := validator.New().Struct(types.Draft{Name: "Ana", Gender: "ROBOT"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t,
		"field Email is required, field Gender must be one of MALE FEMALE OTHER",
		ValidationMessage(verrs))
}
