package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"todolist/internal/client/mocks"
	"todolist/internal/domains/todo/model/dto"
)

var errNetwork = errors.New("connection refused")

var fixtures = []dto.TodoResponse{
	{ID: 2, Title: "Walk the dog", CreatedAt: "2024-05-02T08:00:00Z", UpdatedAt: "2024-05-02T08:00:00Z"},
	{ID: 1, Title: "Buy milk", CreatedAt: "2024-05-01T08:00:00Z", UpdatedAt: "2024-05-01T08:00:00Z"},
}

func newModel(t *testing.T, todos []dto.TodoResponse) (Model, *mocks.MockGateway) {
	t.Helper()

	gateway := mocks.NewMockGateway(gomock.NewController(t))
	gateway.EXPECT().List(gomock.Any()).Return(todos, nil)

	m := New(context.Background(), gateway)

	return step(t, m, m.load()), gateway
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	model, ok := next.(Model)
	require.True(t, ok)

	return model, cmd
}

// step runs cmd and feeds its message back into the model.
func step(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	require.NotNil(t, cmd)

	next, _ := update(t, m, cmd())

	return next
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func stringPtr(value string) *string {
	return &value
}

func TestModel_View(t *testing.T) {
	gateway := mocks.NewMockGateway(gomock.NewController(t))
	m := New(context.Background(), gateway)

	assert.Contains(t, m.View(), "Loading todos...")

	gateway.EXPECT().List(gomock.Any()).Return(fixtures, nil)
	m = step(t, m, m.load())

	view := m.View()
	assert.Contains(t, view, "Walk the dog")
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "2024-05-01")
	assert.Less(t, strings.Index(view, "Walk the dog"), strings.Index(view, "Buy milk"))
}

func TestModel_EmptyView(t *testing.T) {
	m, _ := newModel(t, nil)

	assert.Contains(t, m.View(), "No todos yet")
}

func TestModel_ToggleIsOptimistic(t *testing.T) {
	m, gateway := newModel(t, fixtures)

	m, cmd := update(t, m, runes(" "))
	require.NotNil(t, cmd)

	state := m.list.Items()[0].State()
	assert.True(t, state.Completed)
	assert.True(t, state.Loading)

	_, busy := update(t, m, runes("d"))
	assert.Nil(t, busy)

	gateway.EXPECT().Update(gomock.Any(), int64(2), gomock.Any()).Return(dto.TodoResponse{}, errNetwork)

	m = step(t, m, cmd)

	state = m.list.Items()[0].State()
	assert.False(t, state.Completed)
	assert.False(t, state.Loading)
}

func TestModel_EditAndCommit(t *testing.T) {
	m, gateway := newModel(t, fixtures)

	m, _ = update(t, m, runes("e"))
	require.True(t, m.list.Items()[0].State().Editing)

	m, _ = update(t, m, runes(" now"))
	assert.Equal(t, "Walk the dog now", m.list.Items()[0].State().Draft)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	gateway.EXPECT().
		Update(gomock.Any(), int64(2), dto.UpdateTodoRequest{Title: stringPtr("Walk the dog now")}).
		Return(dto.TodoResponse{ID: 2, Title: "Walk the dog now"}, nil)

	m = step(t, m, cmd)

	state := m.list.Items()[0].State()
	assert.Equal(t, "Walk the dog now", state.Title)
	assert.False(t, state.Editing)
	assert.False(t, m.input.Focused())
}

func TestModel_EscapeCancelsEdit(t *testing.T) {
	m, _ := newModel(t, fixtures)

	m, _ = update(t, m, runes("e"))
	m, _ = update(t, m, runes("xyz"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)

	state := m.list.Items()[0].State()
	assert.False(t, state.Editing)
	assert.Equal(t, "Walk the dog", state.Title)
	assert.Equal(t, "Walk the dog", state.Draft)
}

func TestModel_MovingAwayCommitsEdit(t *testing.T) {
	m, gateway := newModel(t, fixtures)

	m, _ = update(t, m, runes("e"))
	m, _ = update(t, m, runes("!"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	assert.Equal(t, 1, m.cursor)

	gateway.EXPECT().
		Update(gomock.Any(), int64(2), dto.UpdateTodoRequest{Title: stringPtr("Walk the dog!")}).
		Return(dto.TodoResponse{}, nil)

	m = step(t, m, cmd)

	assert.Equal(t, "Walk the dog!", m.list.Items()[0].State().Title)
}

func TestModel_Delete(t *testing.T) {
	m, gateway := newModel(t, fixtures)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, runes("d"))

	gateway.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

	m = step(t, m, cmd)

	require.Len(t, m.list.Items(), 1)
	assert.NotContains(t, m.View(), "Buy milk")
	assert.Equal(t, 0, m.cursor)
}

func TestModel_Add(t *testing.T) {
	m, gateway := newModel(t, fixtures)

	m, _ = update(t, m, runes("a"))
	require.True(t, m.adding)

	m, _ = update(t, m, runes("Water plants"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.adding)

	created := dto.TodoResponse{ID: 3, Title: "Water plants", CreatedAt: "2024-05-03T08:00:00Z"}

	gomock.InOrder(
		gateway.EXPECT().Create(gomock.Any(), "Water plants").Return(created, nil),
		gateway.EXPECT().List(gomock.Any()).Return(append([]dto.TodoResponse{created}, fixtures...), nil),
	)

	m = step(t, m, cmd)

	require.Len(t, m.list.Items(), 3)
	assert.Equal(t, int64(3), m.list.Items()[0].ID())
}

func TestModel_AddBlankTitle(t *testing.T) {
	m, _ := newModel(t, fixtures)

	m, _ = update(t, m, runes("a"))
	m, _ = update(t, m, runes("   "))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, m.adding)
	assert.Contains(t, m.View(), "Title cannot be empty")
}

func TestModel_Reload(t *testing.T) {
	m, gateway := newModel(t, fixtures)

	m, cmd := update(t, m, runes("r"))

	gateway.EXPECT().List(gomock.Any()).Return(fixtures[1:], nil)

	m = step(t, m, cmd)

	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, int64(1), m.list.Items()[0].ID())
}

func TestModel_Quit(t *testing.T) {
	m, _ := newModel(t, fixtures)

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m, _ = update(t, m, runes("e"))
	m, _ = update(t, m, runes("q"))
	assert.Equal(t, "Walk the dogq", m.list.Items()[0].State().Draft)

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
