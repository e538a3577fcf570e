package dto

import (
	"todolist/internal/domains/todo/model"
	"todolist/shared/constant"
	"todolist/shared/timezone"
)

type CreateTodoRequest struct {
	Title string `json:"title" validate:"notblank"`
}

// ToModel builds a new, not yet completed todo stamped with the current time.
func (c *CreateTodoRequest) ToModel() model.Todo {
	now := timezone.Now()

	return model.Todo{
		Title:     c.Title,
		Completed: false,
		Metadata: model.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// UpdateTodoRequest is a partial update. Absent fields are not changed.
type UpdateTodoRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (u *UpdateTodoRequest) ToPatch() model.Patch {
	return model.Patch{
		Title:     u.Title,
		Completed: u.Completed,
	}
}

type TodoResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (r *TodoResponse) FromModel(model model.Todo) {
	r.ID = model.ID
	r.Title = model.Title
	r.Completed = model.Completed
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	r.UpdatedAt = timezone.Format(model.UpdatedAt, constant.DateFormat)
}

func FromModels(models []model.Todo) []TodoResponse {
	todos := make([]TodoResponse, len(models))
	for i, mod := range models {
		todos[i].FromModel(mod)
	}

	return todos
}
