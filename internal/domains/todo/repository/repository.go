package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"todolist/infras/otel"
	"todolist/infras/postgres"
	"todolist/internal/domains/todo/model"
	"todolist/shared"
	"todolist/shared/constant"
	gDto "todolist/shared/dto"
	gRepo "todolist/shared/repository"
)

// Todo is the persistence gateway for todos. Lookups that match nothing
// return a zero-ID todo rather than an error.
type Todo interface {
	FindAll(ctx context.Context) ([]model.Todo, error)
	FindByID(ctx context.Context, id int64) (model.Todo, error)
	Create(ctx context.Context, todo model.Todo) (model.Todo, error)
	Update(ctx context.Context, id int64, patch model.Patch) (model.Todo, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Todo]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Todo {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Todo](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// FindAll returns every todo, newest first.
func (r *repositoryImpl) FindAll(ctx context.Context) ([]model.Todo, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.FindAll")
	defer scope.End()

	params := gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: constant.SortDirDesc,
	}

	return r.GetAll(ctx, params, gDto.FilterGroup{}) //nolint:wrapcheck
}

func (r *repositoryImpl) FindByID(ctx context.Context, id int64) (model.Todo, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.FindByID")
	defer scope.End()

	scope.SetAttribute("todo.id", id)

	return r.GetPrimary(ctx, byID(id)) //nolint:wrapcheck
}

func (r *repositoryImpl) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Create")
	defer scope.End()

	return r.InsertReturning(ctx, todo) //nolint:wrapcheck
}

// Update applies the non-nil patch fields and refreshes updated_at.
func (r *repositoryImpl) Update(ctx context.Context, id int64, patch model.Patch) (model.Todo, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Update")
	defer scope.End()

	scope.SetAttribute("todo.id", id)

	return r.UpdateReturning(ctx, shared.TransformFields(patch), byID(id)) //nolint:wrapcheck
}

// Delete reports whether a row was removed.
func (r *repositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Delete")
	defer scope.End()

	scope.SetAttribute("todo.id", id)

	affected, err := r.Repository.Delete(ctx, byID(id))
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}

func byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}
