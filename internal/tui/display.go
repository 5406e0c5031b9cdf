package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/aanand-mishra/student-manager/internal/types"
)

// Initials is the avatar text for a student name: "" for a blank name, the
// first letter for a single word, otherwise the first letters of the first
// and last words ("Ana Li" → "AL").
func Initials(name string) string {
	words := strings.Fields(name)
	switch len(words) {
	case 0:
		return ""
	case 1:
		return firstRune(words[0])
	default:
		return firstRune(words[0]) + firstRune(words[len(words)-1])
	}
}

func firstRune(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r))
}

// PageOf returns the page'th slice of size students, counting from zero.
// Out-of-range pages are empty.
func PageOf(students []types.Student, page, size int) []types.Student {
	if size <= 0 || page < 0 {
		return nil
	}
	start := page * size
	if start >= len(students) {
		return nil
	}
	end := start + size
	if end > len(students) {
		end = len(students)
	}
	return students[start:end]
}

// PageCount is the number of pages needed for n students, at least one.
func PageCount(n, size int) int {
	if size <= 0 || n <= size {
		return 1
	}
	return (n + size - 1) / size
}
