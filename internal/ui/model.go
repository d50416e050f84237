package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/output"
	"todo/internal/service"
	"todo/internal/task"
)

const (
	title         = "Todo List"
	placeholder   = "Add a new task"
	loadingText   = "Loading..."
	noTasksText   = "No tasks available."
	noMatchesText = "No matching tasks."
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// mounter is implemented by services that load their list lazily.
type mounter interface {
	Mount(ctx context.Context) error
	Mounted() bool
}

type mountedMsg struct {
	err error
}

// Model is the bubbletea model of the task list widget.
type Model struct {
	ctx     context.Context
	svc     service.Service
	keys    keyMap
	help    help.Model
	input   textinput.Model
	editor  textinput.Model
	focus   focus
	filter  task.Filter
	cursor  int
	loaded  bool
	loadErr error
	err     error
}

// NewModel creates the widget over svc. If svc has not loaded its list yet,
// the widget shows a loading state and loads it on start. `todo ui` hands
// over an already mounted service, so only embedders that pass an unmounted
// controller see the loading state.
func NewModel(ctx context.Context, svc service.Service) *Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "> "
	input.Focus()

	editor := textinput.New()
	editor.Prompt = ""

	m := &Model{
		ctx:    ctx,
		svc:    svc,
		keys:   defaultKeyMap(),
		help:   help.New(),
		input:  input,
		editor: editor,
		filter: task.FilterAll,
		loaded: true,
	}
	if mt, ok := svc.(mounter); ok && !mt.Mounted() {
		m.loaded = false
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	if !m.loaded {
		return tea.Batch(m.mount, textinput.Blink)
	}
	return textinput.Blink
}

func (m *Model) mount() tea.Msg {
	mt, ok := m.svc.(mounter)
	if !ok {
		return mountedMsg{}
	}
	return mountedMsg{err: mt.Mount(m.ctx)}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, tea.Quit
		}
		m.loaded = true
		return m, nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if !m.loaded {
			return m, nil
		}
		if _, _, ok := m.svc.Editing(); ok {
			return m.updateEditor(msg)
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		_, added, err := m.svc.AddTask(m.ctx, m.input.Value())
		m.err = err
		if added {
			m.input.Reset()
		}
		return m, nil
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Cancel):
		m.focusList()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.entries()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		return m, m.focusInput()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.All):
		m.setFilter(task.FilterAll)
	case key.Matches(msg, m.keys.Active):
		m.setFilter(task.FilterActive)
	case key.Matches(msg, m.keys.Completed):
		m.setFilter(task.FilterCompleted)
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(entries); ok {
			_, m.err = m.svc.ToggleCompletion(m.ctx, t.ID)
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(entries); ok {
			_, m.err = m.svc.DeleteTask(m.ctx, t.ID)
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(entries); ok {
			m.svc.StartEdit(t.ID, t.Text)
			m.editor.SetValue(t.Text)
			m.editor.CursorEnd()
			return m, m.editor.Focus()
		}
	}
	return m, nil
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.svc.UpdateEditedText(m.editor.Value())
		_, m.err = m.svc.CommitEdit(m.ctx)
		// Blank text leaves the edit open
		if _, _, ok := m.svc.Editing(); !ok {
			m.editor.Blur()
			m.clampCursor()
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.svc.CancelEdit()
		m.editor.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.svc.UpdateEditedText(m.editor.Value())
	return m, cmd
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
	m.clampCursor()
}

func (m *Model) setFilter(f task.Filter) {
	m.filter = f
	m.clampCursor()
}

func (m *Model) entries() []task.Entry {
	return m.filter.Apply(m.svc.Tasks())
}

func (m *Model) selected(entries []task.Entry) (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(entries) {
		return task.Task{}, false
	}
	return entries[m.cursor].Task, true
}

// clampCursor keeps the cursor on a visible row after the list changed.
func (m *Model) clampCursor() {
	n := len(m.entries())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if !m.loaded {
		b.WriteString(loadingText)
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	tasks := m.svc.Tasks()
	entries := m.filter.Apply(tasks)
	switch {
	case len(tasks) == 0:
		b.WriteString(emptyStyle.Render(noTasksText))
		b.WriteString("\n")
	case len(entries) == 0:
		b.WriteString(emptyStyle.Render(noMatchesText))
		b.WriteString("\n")
	}

	editID, _, editing := m.svc.Editing()
	for i, e := range entries {
		b.WriteString(m.row(i, e.Task, editing && e.Task.ID == editID))
		b.WriteString("\n")
	}

	c := tasks.Count()
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s · %d active · %d completed", m.filter, c.Active, c.Completed)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) row(i int, t task.Task, editing bool) string {
	prefix := "  "
	if i == m.cursor && m.focus == focusList {
		prefix = cursorStyle.Render("> ")
	}

	var text string
	switch {
	case editing:
		text = m.editor.View()
	case t.Completed:
		text = completedStyle.Render(output.NormalizeText(t.Text))
	default:
		text = output.NormalizeText(t.Text)
	}
	return prefix + output.Checkbox(t.Completed) + " " + text
}
