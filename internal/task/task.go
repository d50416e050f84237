// Package task defines the todo item model and the pure operations on an ordered task list.
package task

import "strings"

// Task represents a single todo item.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Store is the ordered sequence of tasks, oldest first.
// Operations never reorder it and never modify the receiver's backing array;
// they return a new Store together with a flag reporting whether anything changed.
type Store []Task

// IsBlank reports whether text is empty after trimming whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Add appends a new open task with the given id.
// Blank text leaves the store unchanged. The stored text is not trimmed.
func Add(s Store, text string, id int64) (Store, bool) {
	if IsBlank(text) {
		return s, false
	}
	out := make(Store, len(s), len(s)+1)
	copy(out, s)
	return append(out, Task{ID: id, Text: text}), true
}

// Toggle flips the completed flag of the task with the given id.
func Toggle(s Store, id int64) (Store, bool) {
	i := s.index(id)
	if i < 0 {
		return s, false
	}
	out := s.clone()
	out[i].Completed = !out[i].Completed
	return out, true
}

// Delete removes the task with the given id.
func Delete(s Store, id int64) (Store, bool) {
	i := s.index(id)
	if i < 0 {
		return s, false
	}
	out := make(Store, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...), true
}

// SetText replaces the text of the task with the given id.
// Blank text is rejected.
func SetText(s Store, id int64, text string) (Store, bool) {
	if IsBlank(text) {
		return s, false
	}
	i := s.index(id)
	if i < 0 {
		return s, false
	}
	out := s.clone()
	out[i].Text = text
	return out, true
}

// Find returns the task with the given id.
func (s Store) Find(id int64) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s[i], true
}

// MaxID returns the largest id in the store, or 0 for an empty store.
func (s Store) MaxID() int64 {
	var max int64
	for _, t := range s {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

func (s Store) index(id int64) int {
	for i, t := range s {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s Store) clone() Store {
	out := make(Store, len(s))
	copy(out, s)
	return out
}
