package model

import "time"

const (
	TableName  = "todos"
	EntityName = "todo"

	FieldID = "id"
)

type Metadata struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Todo struct {
	ID        int64  `db:"id" generated:"true"`
	Title     string `db:"title"`
	Completed bool   `db:"completed"`
	Metadata
}

// Patch holds the fields a partial update may change. Nil fields are left untouched.
type Patch struct {
	Title     *string `db:"title"`
	Completed *bool   `db:"completed"`
}

const (
	MessageNotFound     = "Todo not found"
	MessageDeleted      = "Todo deleted"
	MessageFetchFailed  = "Failed to fetch todo"
	MessageListFailed   = "Failed to fetch todos"
	MessageCreateFailed = "Failed to create todo"
	MessageUpdateFailed = "Failed to update todo"
	MessageDeleteFailed = "Failed to delete todo"
)
