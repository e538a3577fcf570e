package http_test

import (
	"cmp"
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"todolist/config"
	"todolist/infras/kafka"
	"todolist/infras/otel/mocks"
	"todolist/internal/client/api"
	"todolist/internal/client/controller"
	"todolist/internal/domains/todo/event"
	"todolist/internal/domains/todo/model"
	"todolist/internal/domains/todo/model/dto"
	"todolist/internal/domains/todo/service"
	"todolist/internal/handlers/todo"
	cacheMocks "todolist/shared/cache/mocks"
	"todolist/shared/failure"
	transport "todolist/transport/http"
	"todolist/transport/http/middleware"
	"todolist/transport/http/router"
)

// memoryStore keeps todos in memory with serial ids and strictly increasing
// creation times.
type memoryStore struct {
	mu     sync.Mutex
	nextID int64
	clock  time.Time
	todos  map[int64]model.Todo
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		clock: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		todos: make(map[int64]model.Todo),
	}
}

func (s *memoryStore) FindAll(_ context.Context) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := make([]model.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		todos = append(todos, todo)
	}

	slices.SortFunc(todos, func(a, b model.Todo) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(b.ID, a.ID)
	})

	return todos, nil
}

func (s *memoryStore) FindByID(_ context.Context, id int64) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.todos[id], nil
}

func (s *memoryStore) Create(_ context.Context, todo model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.clock = s.clock.Add(time.Second)

	todo.ID = s.nextID
	todo.CreatedAt = s.clock
	todo.UpdatedAt = s.clock
	s.todos[todo.ID] = todo

	return todo, nil
}

func (s *memoryStore) Update(_ context.Context, id int64, patch model.Patch) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[id]
	if !ok {
		return model.Todo{}, nil
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}

	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}

	s.clock = s.clock.Add(time.Second)
	todo.UpdatedAt = s.clock
	s.todos[id] = todo

	return todo, nil
}

func (s *memoryStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.todos[id]
	delete(s.todos, id)

	return ok, nil
}

func newBackend(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()

	cfg := &config.Config{}
	otel := mocks.NewOtel()
	publisher, cleanup := kafka.New(cfg)
	t.Cleanup(cleanup)

	svc := service.New(newMemoryStore(), event.New(publisher, otel), otel)
	appMiddleware := middleware.NewAppMiddleware(otel, cfg, cacheMocks.NewMockRedisCache(gomock.NewController(t)))
	r := router.New(cfg, router.DomainHandlers{Todo: todo.New(svc, otel)}, appMiddleware)

	server := httptest.NewServer(transport.New(cfg, r))
	t.Cleanup(server.Close)

	return server, api.NewWithHTTPClient(server.URL, "", server.Client(), otel)
}

func status(t *testing.T, server *httptest.Server, path string) int {
	t.Helper()

	resp, err := server.Client().Get(server.URL + path)
	require.NoError(t, err)
	_ = resp.Body.Close()

	return resp.StatusCode
}

func TestLifecycle_CreateToggleDelete(t *testing.T) {
	ctx := context.Background()
	_, client := newBackend(t)

	list := controller.NewList(client)
	form := controller.NewForm(client, list)

	require.NoError(t, list.Load(ctx))
	assert.True(t, list.Ready())
	assert.Empty(t, list.Items())

	require.NoError(t, form.Submit(ctx, "Walk dog"))
	require.NoError(t, form.Submit(ctx, "Buy milk"))

	items := list.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Buy milk", items[0].State().Title)
	assert.False(t, items[0].State().Completed)
	assert.Equal(t, "Walk dog", items[1].State().Title)

	milk := items[0]
	require.NoError(t, milk.Toggle(ctx))
	assert.True(t, milk.State().Completed)

	require.NoError(t, list.Load(ctx))
	items = list.Items()
	require.Len(t, items, 2)
	assert.Equal(t, milk.ID(), items[0].ID())
	assert.True(t, items[0].State().Completed)

	require.NoError(t, items[0].Delete(ctx))
	assert.Equal(t, []string{"Walk dog"}, titles(list.Items()))

	require.NoError(t, list.Load(ctx))
	assert.Equal(t, []string{"Walk dog"}, titles(list.Items()))
}

func TestLifecycle_DeletedTodoIsGone(t *testing.T) {
	ctx := context.Background()
	server, client := newBackend(t)

	created, err := client.Create(ctx, "Buy milk")
	require.NoError(t, err)

	path := "/todos/" + itoa(created.ID)
	assert.Equal(t, http.StatusOK, status(t, server, path))

	require.NoError(t, client.Delete(ctx, created.ID))
	assert.Equal(t, http.StatusNotFound, status(t, server, path))

	require.NoError(t, client.Delete(ctx, created.ID))

	completed := true
	_, err = client.Update(ctx, created.ID, dto.UpdateTodoRequest{Completed: &completed})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Equal(t, model.MessageNotFound, err.Error())
}

func TestLifecycle_RenameThroughItem(t *testing.T) {
	ctx := context.Background()
	_, client := newBackend(t)

	list := controller.NewList(client)
	require.NoError(t, controller.NewForm(client, list).Submit(ctx, "Buy milk"))

	item := list.Items()[0]
	require.NoError(t, item.BeginEdit())
	require.NoError(t, item.SetDraft("Buy oat milk"))
	require.NoError(t, item.CommitEdit(ctx))

	require.NoError(t, list.Load(ctx))
	assert.Equal(t, []string{"Buy oat milk"}, titles(list.Items()))
}

func titles(items []*controller.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.State().Title)
	}

	return out
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
