package task

import "fmt"

// Filter selects a subset of tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter parses a filter name. The empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive, FilterCompleted:
		return Filter(s), nil
	}
	return "", fmt.Errorf("invalid filter: %s", s)
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Entry is a task together with its 1-based position in the unfiltered store.
type Entry struct {
	Num  int
	Task Task
}

// Apply returns the tasks passing f, keeping their original positions.
func (f Filter) Apply(s Store) []Entry {
	out := make([]Entry, 0, len(s))
	for i, t := range s {
		if f.Match(t) {
			out = append(out, Entry{Num: i + 1, Task: t})
		}
	}
	return out
}

// Counts summarizes a store.
type Counts struct {
	Total     int
	Active    int
	Completed int
}

// Count returns the task counts of s.
func (s Store) Count() Counts {
	c := Counts{Total: len(s)}
	for _, t := range s {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}
