package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Todo=MockTodoService

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"todolist/infras/otel"
	"todolist/internal/domains/todo/event"
	"todolist/internal/domains/todo/model"
	"todolist/internal/domains/todo/model/dto"
	"todolist/internal/domains/todo/repository"
	"todolist/shared/constant"
	"todolist/shared/failure"
	"todolist/shared/validator"
)

type Todo interface {
	List(ctx context.Context) ([]dto.TodoResponse, error)
	Get(ctx context.Context, id string) (dto.TodoResponse, error)
	Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error)
	Update(ctx context.Context, id string, patch model.Patch) (dto.TodoResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Todo
	publisher event.Publisher
	otel      otel.Otel
}

func New(repo repository.Todo, publisher event.Publisher, otel otel.Otel) Todo {
	return &serviceImpl{
		repo:      repo,
		publisher: publisher,
		otel:      otel,
	}
}

// parseID accepts only base-10 integers. Anything else can never match a stored todo.
func parseID(id string) (int64, bool) {
	value, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todos, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		return nil, failure.Internal(model.MessageListFailed, err)
	}

	scope.SetAttribute("todo.count", len(todos))

	return dto.FromModels(todos), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todoID, ok := parseID(id)
	if !ok {
		return res, failure.NotFound(model.MessageNotFound)
	}

	todo, err := s.repo.FindByID(ctx, todoID)
	if err != nil {
		log.Error().Err(err).Int64("id", todoID).Msg("failed to get todo")

		return res, failure.Internal(model.MessageFetchFailed, err)
	}

	if todo.ID == 0 {
		return res, failure.NotFound(model.MessageNotFound)
	}

	res.FromModel(todo)

	return res, nil
}

// Create stores a new todo. Completion is always false for new todos.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		log.Error().Err(err).Msg("invalid todo")

		return res, failure.Internal(model.MessageCreateFailed, err)
	}

	todo, err := s.repo.Create(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return res, failure.Internal(model.MessageCreateFailed, err)
	}

	res.FromModel(todo)
	s.publisher.Publish(ctx, event.Created(res))

	return res, nil
}

// Update applies patch to an existing todo. A patch with no fields still
// refreshes updatedAt.
func (s *serviceImpl) Update(ctx context.Context, id string, patch model.Patch) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todoID, ok := parseID(id)
	if !ok {
		return res, failure.NotFound(model.MessageNotFound)
	}

	existing, err := s.repo.FindByID(ctx, todoID)
	if err != nil {
		log.Error().Err(err).Int64("id", todoID).Msg("failed to check if todo exists")

		return res, failure.InternalWithDetails(model.MessageUpdateFailed, err)
	}

	if existing.ID == 0 {
		return res, failure.NotFound(model.MessageNotFound)
	}

	todo, err := s.repo.Update(ctx, todoID, patch)
	if err != nil {
		log.Error().Err(err).Int64("id", todoID).Msg("failed to update todo")

		return res, failure.InternalWithDetails(model.MessageUpdateFailed, err)
	}

	if todo.ID == 0 {
		return res, failure.NotFound(model.MessageNotFound)
	}

	res.FromModel(todo)
	s.publisher.Publish(ctx, event.Updated(res))

	return res, nil
}

// Delete removes a todo. Deleting an id that does not exist succeeds.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todoID, ok := parseID(id)
	if !ok {
		return nil
	}

	deleted, err := s.repo.Delete(ctx, todoID)
	if err != nil {
		log.Error().Err(err).Int64("id", todoID).Msg("failed to delete todo")

		return failure.Internal(model.MessageDeleteFailed, err)
	}

	if deleted {
		s.publisher.Publish(ctx, event.Deleted(todoID))
	}

	return nil
}
