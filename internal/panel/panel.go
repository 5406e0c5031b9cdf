// Package panel holds UI-only visibility state: whether the creation form
// is open, whether the side menu is collapsed. Each piece of state is its
// own object, handed to whoever needs it; nothing here is global.
package panel

import "sync"

// Visibility is an open/closed flag safe for concurrent use.
type Visibility struct {
	mu   sync.Mutex
	open bool
}

// New returns a Visibility with the given initial state.
func New(open bool) *Visibility {
	return &Visibility{open: open}
}

// Open shows the panel.
func (v *Visibility) Open() {
	v.set(true)
}

// Close hides the panel.
func (v *Visibility) Close() {
	v.set(false)
}

// Toggle flips the state and returns the new value.
func (v *Visibility) Toggle() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.open = !v.open
	return v.open
}

// IsOpen reports whether the panel is shown.
func (v *Visibility) IsOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.open
}

func (v *Visibility) set(open bool) {
	v.mu.Lock()
	v.open = open
	v.mu.Unlock()
}
