package task

// EditSession tracks the single task currently being edited.
// The zero value is an idle session.
type EditSession struct {
	id     int64
	text   string
	active bool
}

// Start begins editing id with text as the buffer.
// Any edit already in progress is abandoned without being committed.
func (e *EditSession) Start(id int64, text string) {
	e.id = id
	e.text = text
	e.active = true
}

// Update replaces the edit buffer. It does nothing when no edit is active.
func (e *EditSession) Update(text string) {
	if !e.active {
		return
	}
	e.text = text
}

// Cancel discards the edit in progress.
func (e *EditSession) Cancel() {
	*e = EditSession{}
}

// Active returns the id and buffer of the edit in progress.
func (e *EditSession) Active() (id int64, text string, ok bool) {
	return e.id, e.text, e.active
}

// Editing reports whether id is the task being edited.
func (e *EditSession) Editing(id int64) bool {
	return e.active && e.id == id
}

// Commit writes the buffer into s.
//
// A blank buffer is rejected and the session stays open. When the edited task
// no longer exists the session is closed and s is returned unchanged.
func (e *EditSession) Commit(s Store) (Store, bool) {
	if !e.active || IsBlank(e.text) {
		return s, false
	}
	out, changed := SetText(s, e.id, e.text)
	e.Cancel()
	return out, changed
}
