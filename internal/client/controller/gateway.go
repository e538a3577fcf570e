package controller

//go:generate go run go.uber.org/mock/mockgen -source=./gateway.go -destination=../mocks/gateway_mock.go -package=mocks

import (
	"context"

	"todolist/internal/domains/todo/model/dto"
)

// Gateway is the client's view of the todo REST surface.
type Gateway interface {
	List(ctx context.Context) ([]dto.TodoResponse, error)
	Create(ctx context.Context, title string) (dto.TodoResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTodoRequest) (dto.TodoResponse, error)
	Delete(ctx context.Context, id int64) error
}
