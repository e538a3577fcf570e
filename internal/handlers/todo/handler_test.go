package todo_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"todolist/infras/otel/mocks"
	todoMocks "todolist/internal/domains/todo/mocks"
	"todolist/internal/domains/todo/model"
	"todolist/internal/domains/todo/model/dto"
	"todolist/internal/handlers/todo"
	"todolist/shared/failure"
)

func newServer(t *testing.T) (*todoMocks.MockTodoService, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := todoMocks.NewMockTodoService(ctrl)

	handler := todo.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	return recorder
}

var sample = dto.TodoResponse{
	ID:        1,
	Title:     "Buy milk",
	Completed: false,
	CreatedAt: "2024-05-01T08:00:00Z",
	UpdatedAt: "2024-05-01T08:00:00Z",
}

const sampleJSON = `{"id":1,"title":"Buy milk","completed":false,"createdAt":"2024-05-01T08:00:00Z","updatedAt":"2024-05-01T08:00:00Z"}`

func TestHandler_GetTodos(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(svc *todoMocks.MockTodoService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "list",
			setupMock: func(svc *todoMocks.MockTodoService) {
				svc.EXPECT().List(gomock.Any()).Return([]dto.TodoResponse{sample}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "[" + sampleJSON + "]",
		},
		{
			name: "empty list is an empty array",
			setupMock: func(svc *todoMocks.MockTodoService) {
				svc.EXPECT().List(gomock.Any()).Return([]dto.TodoResponse{}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "[]",
		},
		{
			name: "storage failure",
			setupMock: func(svc *todoMocks.MockTodoService) {
				svc.EXPECT().List(gomock.Any()).Return(nil, failure.Internal("Failed to fetch todos", errors.New("down")))
			},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Failed to fetch todos"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, server := newServer(t)
			tt.setupMock(svc)

			recorder := serve(server, http.MethodGet, "/todos", "")

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}

func TestHandler_CreateTodo(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *todoMocks.MockTodoService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "created",
			body: `{"title":"Buy milk","completed":true}`,
			setupMock: func(svc *todoMocks.MockTodoService) {
				svc.EXPECT().Create(gomock.Any(), dto.CreateTodoRequest{Title: "Buy milk"}).Return(sample, nil)
			},
			wantCode: http.StatusOK,
			wantBody: sampleJSON,
		},
		{
			name:      "malformed body",
			body:      `{"title":`,
			setupMock: func(_ *todoMocks.MockTodoService) {},
			wantCode:  http.StatusInternalServerError,
			wantBody:  `{"error":"Failed to create todo"}`,
		},
		{
			name: "service failure",
			body: `{"title":""}`,
			setupMock: func(svc *todoMocks.MockTodoService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.TodoResponse{}, failure.Internal("Failed to create todo", errors.New("blank")))
			},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Failed to create todo"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, server := newServer(t)
			tt.setupMock(svc)

			recorder := serve(server, http.MethodPost, "/todos", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}

func TestHandler_GetTodoByID(t *testing.T) {
	tests := []struct {
		name     string
		result   dto.TodoResponse
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "found",
			result:   sample,
			wantCode: http.StatusOK,
			wantBody: sampleJSON,
		},
		{
			name:     "not found",
			err:      failure.NotFound("Todo not found"),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Todo not found"}`,
		},
		{
			name:     "storage failure",
			err:      failure.Internal("Failed to fetch todo", errors.New("down")),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Failed to fetch todo"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, server := newServer(t)
			svc.EXPECT().Get(gomock.Any(), "1").Return(tt.result, tt.err)

			recorder := serve(server, http.MethodGet, "/todos/1", "")

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}

func TestHandler_UpdateTodo(t *testing.T) {
	completed := true

	tests := []struct {
		name      string
		body      string
		setupMock func(svc *todoMocks.MockTodoService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "partial update",
			body: `{"completed":true}`,
			setupMock: func(svc *todoMocks.MockTodoService) {
				svc.EXPECT().
					Update(gomock.Any(), "1", model.Patch{Completed: &completed}).
					Return(sample, nil)
			},
			wantCode: http.StatusOK,
			wantBody: sampleJSON,
		},
		{
			name: "empty object",
			body: `{}`,
			setupMock: func(svc *todoMocks.MockTodoService) {
				svc.EXPECT().Update(gomock.Any(), "1", model.Patch{}).Return(sample, nil)
			},
			wantCode: http.StatusOK,
			wantBody: sampleJSON,
		},
		{
			name: "not found",
			body: `{"title":"Walk dog"}`,
			setupMock: func(svc *todoMocks.MockTodoService) {
				svc.EXPECT().Update(gomock.Any(), "1", gomock.Any()).Return(dto.TodoResponse{}, failure.NotFound("Todo not found"))
			},
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Todo not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, server := newServer(t)
			tt.setupMock(svc)

			recorder := serve(server, http.MethodPatch, "/todos/1", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}

func TestHandler_UpdateTodoRejectsUnknownFields(t *testing.T) {
	_, server := newServer(t)

	recorder := serve(server, http.MethodPatch, "/todos/1", `{"title":"Walk dog","id":99}`)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"error":"Failed to update todo"`)
	assert.Contains(t, recorder.Body.String(), `unknown field`)
}

func TestHandler_UpdateTodoRejectsTrailingData(t *testing.T) {
	_, server := newServer(t)

	recorder := serve(server, http.MethodPatch, "/todos/1", `{"completed":true}{"priority":1}`)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"error":"Failed to update todo"`)
	assert.Contains(t, recorder.Body.String(), `unexpected data after JSON value`)
}

func TestHandler_DeleteTodo(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "deleted",
			wantCode: http.StatusOK,
			wantBody: `{"message":"Todo deleted"}`,
		},
		{
			name:     "storage failure",
			err:      failure.Internal("Failed to delete todo", errors.New("down")),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Failed to delete todo"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, server := newServer(t)
			svc.EXPECT().Delete(gomock.Any(), "1").Return(tt.err)

			recorder := serve(server, http.MethodDelete, "/todos/1", "")

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}
