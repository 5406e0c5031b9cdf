package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-manager/internal/types"
)

type formField int

const (
	fieldName formField = iota
	fieldEmail
	fieldGender
	fieldCount
)

// Messages shown under a field the user left empty.
const (
	NameRequired   = "Please enter student name"
	EmailRequired  = "Please enter student email"
	GenderRequired = "Please select a gender"
)

// form is the creation drawer's content.
type form struct {
	name   string
	email  string
	gender int // index into types.Genders, -1 when nothing is selected
	focus  formField
	errors map[formField]string
}

func newForm() form {
	return form{gender: -1}
}

func (f form) draft() types.Draft {
	d := types.Draft{Name: f.name, Email: f.email}
	if f.gender >= 0 && f.gender < len(types.Genders) {
		d.Gender = types.Genders[f.gender]
	}
	return d
}

// validate fills f.errors from the draft's presence rules and reports
// whether the form can be submitted.
func (f *form) validate() bool {
	f.errors = nil
	err := f.draft().Validate()
	if err == nil {
		return true
	}

	f.errors = make(map[formField]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		f.errors[fieldName] = err.Error()
		return false
	}
	for _, e := range verrs {
		switch e.Field() {
		case "Name":
			f.errors[fieldName] = NameRequired
		case "Email":
			f.errors[fieldEmail] = EmailRequired
		case "Gender":
			f.errors[fieldGender] = GenderRequired
		}
	}
	return false
}

// handleKey edits the focused field. Enter and esc are handled by the App.
func (f *form) handleKey(m tea.KeyMsg) {
	switch m.Type {
	case tea.KeyTab, tea.KeyDown:
		f.focus = (f.focus + 1) % fieldCount
		return
	case tea.KeyShiftTab, tea.KeyUp:
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		return
	}

	if f.focus == fieldGender {
		switch m.Type {
		case tea.KeyLeft:
			f.cycleGender(-1)
		case tea.KeyRight, tea.KeySpace:
			f.cycleGender(1)
		}
		return
	}

	text := f.text()
	switch m.Type {
	case tea.KeyBackspace:
		if r := []rune(*text); len(r) > 0 {
			*text = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		*text += " "
	case tea.KeyRunes:
		*text += string(m.Runes)
	}
}

func (f *form) text() *string {
	if f.focus == fieldEmail {
		return &f.email
	}
	return &f.name
}

func (f *form) cycleGender(step int) {
	n := len(types.Genders)
	if f.gender < 0 {
		if step > 0 {
			f.gender = 0
		} else {
			f.gender = n - 1
		}
		return
	}
	f.gender = (f.gender + step + n) % n
}

func (f form) genderLabel() string {
	if f.gender < 0 || f.gender >= len(types.Genders) {
		return GenderRequired
	}
	return string(types.Genders[f.gender])
}
