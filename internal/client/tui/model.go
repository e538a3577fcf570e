package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"todolist/internal/client/controller"
	"todolist/shared/constant"
	"todolist/shared/timezone"
)

const (
	titleCharLimit = 200
	dateLayout     = "2006-01-02"
)

type loadedMsg struct{ err error }

type operationMsg struct{ err error }

type submittedMsg struct{ err error }

// Model renders the todo list. Begin steps run inside Update so optimistic changes show on the
// next frame; the network half of each transition runs as a tea.Cmd.
type Model struct {
	ctx     context.Context
	list    *controller.List
	form    *controller.Form
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	input   textinput.Model
	cursor  int
	adding  bool
	addErr  string
}

func New(ctx context.Context, gateway controller.Gateway) Model {
	list := controller.NewList(gateway)

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = titleCharLimit

	return Model{
		ctx:     ctx,
		list:    list,
		form:    controller.NewForm(gateway, list),
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		input:   input,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case loadedMsg, operationMsg, submittedMsg:
		return m.settle(), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) View() string {
	if !m.list.Ready() {
		return panelStyle.Render(m.spinner.View() + " Loading todos...")
	}

	items := m.list.Items()

	var b strings.Builder

	b.WriteString(header(items))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("No todos yet. Press a to add one."))
		b.WriteString("\n")
	}

	for idx, item := range items {
		b.WriteString(m.renderItem(item.State(), idx == m.cursor))
		b.WriteString("\n")
	}

	if m.adding {
		title := "Add new todo"
		if m.addErr != "" {
			title += "  " + errorStyle.Render(m.addErr)
		}

		b.WriteString("\n")
		b.WriteString(panelStyle.Render(title + "\n" + m.input.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return panelStyle.Render(b.String())
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.list.Load(m.ctx)}
	}
}

func (m Model) submit(title string) tea.Cmd {
	return func() tea.Msg {
		return submittedMsg{err: m.form.Submit(m.ctx, title)}
	}
}

// begin runs the synchronous half of a transition now and returns the request as a command.
// Rejected actions, such as anything on a busy item, are ignored.
func (m Model) begin(item *controller.Item, start func(*controller.Item) (*controller.Operation, error)) tea.Cmd {
	if item == nil {
		return nil
	}

	op, err := start(item)
	if err != nil {
		log.Debug().Err(err).Int64("todo_id", item.ID()).Msg("todo action ignored")

		return nil
	}

	return func() tea.Msg {
		return operationMsg{err: op.Run(m.ctx)}
	}
}

func (m Model) selected() *controller.Item {
	items := m.list.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return nil
	}

	return items[m.cursor]
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.adding {
		return m.handleAddKey(msg)
	}

	item := m.selected()
	if item != nil && item.State().Editing {
		return m.handleEditKey(item, msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		return m.move(-1), nil
	case key.Matches(msg, m.keys.Down):
		return m.move(1), nil
	case key.Matches(msg, m.keys.Toggle):
		return m, m.begin(item, (*controller.Item).BeginToggle)
	case key.Matches(msg, m.keys.Delete):
		return m, m.begin(item, (*controller.Item).BeginDelete)
	case key.Matches(msg, m.keys.Edit):
		if item == nil {
			return m, nil
		}

		if err := item.BeginEdit(); err != nil {
			log.Debug().Err(err).Int64("todo_id", item.ID()).Msg("todo action ignored")

			return m, nil
		}

		return m.syncInput(), textinput.Blink
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.addErr = ""
		m.input.Reset()
		m.input.Placeholder = "New todo title..."
		cmd := m.input.Focus()

		return m, cmd
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	}

	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Commit):
		title := m.input.Value()
		if strings.TrimSpace(title) == "" {
			m.addErr = "Title cannot be empty"

			return m, nil
		}

		m = m.closeAdd()

		return m, m.submit(title)
	case key.Matches(msg, m.keys.Cancel):
		return m.closeAdd(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) closeAdd() Model {
	m.adding = false
	m.addErr = ""
	m.input.Reset()
	m.input.Blur()

	return m.syncInput()
}

// handleEditKey routes keys to the selected item's editor. Arrow keys move focus away, which
// commits the draft like Enter does.
func (m Model) handleEditKey(item *controller.Item, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Commit):
		cmd := m.begin(item, (*controller.Item).BeginCommit)

		return m.syncInput(), cmd
	case key.Matches(msg, m.keys.Cancel):
		if err := item.CancelEdit(); err != nil {
			log.Debug().Err(err).Int64("todo_id", item.ID()).Msg("todo action ignored")
		}

		return m.syncInput(), nil
	case msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		cmd := m.begin(item, (*controller.Item).BeginCommit)

		delta := 1
		if msg.Type == tea.KeyUp {
			delta = -1
		}

		return m.move(delta), cmd
	}

	if item.State().Loading {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if err := item.SetDraft(m.input.Value()); err != nil {
		log.Debug().Err(err).Int64("todo_id", item.ID()).Msg("todo action ignored")
	}

	return m, cmd
}

func (m Model) move(delta int) Model {
	last := max(len(m.list.Items())-1, 0)
	m.cursor = min(max(m.cursor+delta, 0), last)

	return m.syncInput()
}

// settle runs after any request finishes: the list may have shrunk or been replaced.
func (m Model) settle() Model {
	last := max(len(m.list.Items())-1, 0)
	m.cursor = min(m.cursor, last)

	return m.syncInput()
}

// syncInput points the shared text input at the selected item's draft while it is being edited.
func (m Model) syncInput() Model {
	if m.adding {
		return m
	}

	item := m.selected()
	if item == nil {
		m.input.Blur()

		return m
	}

	state := item.State()
	if !state.Editing {
		m.input.Blur()

		return m
	}

	if m.input.Value() != state.Draft {
		m.input.SetValue(state.Draft)
		m.input.CursorEnd()
	}

	m.input.Placeholder = "Edit todo title..."
	m.input.Focus()

	return m
}

func (m Model) renderItem(state controller.State, selected bool) string {
	prefix := "  "
	if selected {
		prefix = selectedStyle.Render(">") + " "
	}

	box := mutedStyle.Render(boxUnchecked)
	text := state.Title

	if state.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(state.Title)
	}

	if state.Editing {
		text = accentStyle.Render(state.Draft)
		if selected && !m.adding {
			text = m.input.View()
		}
	}

	line := prefix + box + " " + text

	if date := formatDate(state.CreatedAt); date != "" {
		line += "  " + mutedStyle.Render(date)
	}

	if state.Loading {
		line += " " + m.spinner.View()
	}

	return line
}

func header(items []*controller.Item) string {
	done := 0

	for _, item := range items {
		if item.State().Completed {
			done++
		}
	}

	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(items)-done,
		accentStyle.Render("Total"), len(items),
	)
}

func formatDate(value string) string {
	t, err := timezone.Parse(constant.DateFormat, value)
	if err != nil {
		return ""
	}

	return timezone.Format(t, dateLayout)
}
