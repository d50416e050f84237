package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"todo/internal/controller"
	"todo/internal/persist"
	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/testutil"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func send(m *Model, msgs ...tea.Msg) *Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(*Model)
	}
	return m
}

func typeText(m *Model, s string) *Model {
	for _, r := range s {
		m = send(m, runes(string(r)))
	}
	return m
}

func texts(s task.Store) []string {
	out := make([]string, 0, len(s))
	for _, t := range s {
		out = append(out, t.Text)
	}
	return out
}

func TestModel_LoadingUntilMounted(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	ctl := controller.New(persist.New(mem, persist.DefaultKey))

	m := NewModel(ctx, ctl)
	if !strings.Contains(m.View(), "Loading...") {
		t.Fatalf("expected loading state, got:\n%s", m.View())
	}

	// Keys are ignored until the list is loaded
	m = send(m, runes("a"), enter)
	if len(ctl.Tasks()) != 0 {
		t.Fatal("expected no task added before mount")
	}

	m = send(m, m.mount())
	view := m.View()
	if strings.Contains(view, "Loading...") {
		t.Errorf("expected loading state gone, got:\n%s", view)
	}
	if !strings.Contains(view, "No tasks available.") {
		t.Errorf("expected empty state, got:\n%s", view)
	}
}

func TestModel_MountFailureQuits(t *testing.T) {
	m := NewModel(context.Background(), controller.New(persist.New(storage.NewMemory(), persist.DefaultKey)))

	_, cmd := m.Update(mountedMsg{err: errors.New("boom")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.loadErr == nil {
		t.Error("expected load error recorded")
	}
}

func TestModel_AddClearsInput(t *testing.T) {
	svc := testutil.NewFakeService()
	m := NewModel(context.Background(), svc)

	m = typeText(m, "Buy milk")
	m = send(m, enter)

	if diff := cmp.Diff([]string{"Buy milk"}, texts(svc.Stored())); diff != "" {
		t.Errorf("stored mismatch (-want +got):\n%s", diff)
	}
	if m.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "[ ] Buy milk") {
		t.Errorf("expected new row, got:\n%s", m.View())
	}
}

func TestModel_AddBlankIgnored(t *testing.T) {
	svc := testutil.NewFakeService()
	m := NewModel(context.Background(), svc)

	m = typeText(m, "   ")
	m = send(m, enter)

	if len(svc.Tasks()) != 0 {
		t.Errorf("expected no task, got %v", svc.Tasks())
	}
	if m.input.Value() != "   " {
		t.Errorf("expected input kept, got %q", m.input.Value())
	}
}

func TestModel_ToggleAndDelete(t *testing.T) {
	svc := testutil.NewFakeService(
		task.Task{ID: 1, Text: "Buy milk"},
		task.Task{ID: 2, Text: "Walk dog"},
	)
	m := NewModel(context.Background(), svc)

	m = send(m, tab, down, space)
	if got := svc.Stored(); got[0].Completed || !got[1].Completed {
		t.Fatalf("expected second task completed, got %+v", got)
	}
	if !strings.Contains(m.View(), "[x] Walk dog") {
		t.Errorf("expected completed row, got:\n%s", m.View())
	}

	m = send(m, runes("d"))
	if diff := cmp.Diff([]string{"Buy milk"}, texts(svc.Stored())); diff != "" {
		t.Errorf("stored mismatch (-want +got):\n%s", diff)
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", m.cursor)
	}
}

func TestModel_EditSaveAndCancel(t *testing.T) {
	svc := testutil.NewFakeService(task.Task{ID: 1, Text: "Buy milk"})
	m := NewModel(context.Background(), svc)

	m = send(m, tab, runes("e"))
	if id, text, ok := svc.Editing(); !ok || id != 1 || text != "Buy milk" {
		t.Fatalf("expected edit of 1, got %d %q %v", id, text, ok)
	}

	m = typeText(m, " and bread")
	if _, text, _ := svc.Editing(); text != "Buy milk and bread" {
		t.Errorf("expected buffer synced, got %q", text)
	}
	m = send(m, enter)
	if _, _, ok := svc.Editing(); ok {
		t.Error("expected edit closed after save")
	}
	if got := svc.Stored()[0].Text; got != "Buy milk and bread" {
		t.Errorf("expected saved text, got %q", got)
	}

	m = send(m, runes("e"))
	m = typeText(m, "!!")
	m = send(m, esc)
	if _, _, ok := svc.Editing(); ok {
		t.Error("expected edit closed after cancel")
	}
	if got := svc.Stored()[0].Text; got != "Buy milk and bread" {
		t.Errorf("expected text unchanged by cancel, got %q", got)
	}
}

func TestModel_EditBlankStaysOpen(t *testing.T) {
	svc := testutil.NewFakeService(task.Task{ID: 1, Text: "ab"})
	m := NewModel(context.Background(), svc)

	m = send(m, tab, runes("e"),
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		enter)

	if _, _, ok := svc.Editing(); !ok {
		t.Error("expected edit to stay open on blank text")
	}
	if got := svc.Stored()[0].Text; got != "ab" {
		t.Errorf("expected text unchanged, got %q", got)
	}
}

func TestModel_Filters(t *testing.T) {
	svc := testutil.NewFakeService(
		task.Task{ID: 1, Text: "Buy milk"},
		task.Task{ID: 2, Text: "Walk dog", Completed: true},
	)
	m := NewModel(context.Background(), svc)

	m = send(m, tab, runes("3"))
	view := m.View()
	if strings.Contains(view, "Buy milk") || !strings.Contains(view, "Walk dog") {
		t.Errorf("expected only completed rows, got:\n%s", view)
	}

	// Toggling the only visible row hides it
	m = send(m, space)
	if !strings.Contains(m.View(), "No matching tasks.") {
		t.Errorf("expected no matches state, got:\n%s", m.View())
	}

	m = send(m, runes("1"))
	view = m.View()
	if !strings.Contains(view, "Buy milk") || !strings.Contains(view, "Walk dog") {
		t.Errorf("expected all rows, got:\n%s", view)
	}
}

func TestModel_SaveErrorShown(t *testing.T) {
	svc := testutil.NewFakeService(task.Task{ID: 1, Text: "Buy milk"})
	svc.DeleteTaskErr = errors.New("disk full")
	m := NewModel(context.Background(), svc)

	m = send(m, tab, runes("d"))
	if !strings.Contains(m.View(), "error: disk full") {
		t.Errorf("expected error line, got:\n%s", m.View())
	}
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(context.Background(), testutil.NewFakeService())

	// q types into the input while it has focus
	m = send(m, runes("q"))
	if m.input.Value() != "q" {
		t.Fatalf("expected q typed into input, got %q", m.input.Value())
	}

	m = send(m, esc)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_XDoesNotToggle(t *testing.T) {
	svc := testutil.NewFakeService(task.Task{ID: 1, Text: "Buy milk"})
	m := NewModel(context.Background(), svc)

	send(m, tab, runes("x"))
	if svc.Stored()[0].Completed {
		t.Error("expected only space to toggle")
	}
}
