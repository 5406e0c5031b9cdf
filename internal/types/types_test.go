package types

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftValidate(t *testing.T) {
	valid := Draft{Name: "Ana Li", Email: "ana@x.com", Gender: GenderFemale}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"missing name", Draft{Email: "a@x.com", Gender: GenderMale}, "Name"},
		{"blank name", Draft{Name: "   ", Email: "a@x.com", Gender: GenderMale}, "Name"},
		{"missing email", Draft{Name: "Bob", Gender: GenderMale}, "Email"},
		{"missing gender", Draft{Name: "Bob", Email: "b@x.com"}, "Gender"},
		{"unknown gender", Draft{Name: "Bob", Email: "b@x.com", Gender: "ROBOT"}, "Gender"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestGenderValid(t *testing.T) {
	for _, g := range Genders {
		assert.True(t, g.Valid(), g)
	}
	assert.False(t, Gender("").Valid())
	assert.False(t, Gender("male").Valid())
}

func TestErrorBodyString(t *testing.T) {
	body := ErrorBody{Message: "email taken", Status: 409, Error: "Conflict"}
	assert.Equal(t, "email taken[409][Conflict]", body.String())
}

func TestDraftIsZero(t *testing.T) {
	assert.True(t, Draft{}.IsZero())
	assert.False(t, Draft{Name: "x"}.IsZero())
}
