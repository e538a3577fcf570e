package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"todolist/infras/kafka"
	"todolist/infras/otel"
	"todolist/internal/domains/todo/model/dto"
	"todolist/shared/constant"
	"todolist/shared/timezone"
)

const (
	TypeCreated = "todo.created"
	TypeUpdated = "todo.updated"
	TypeDeleted = "todo.deleted"
)

// Event describes a committed change to a todo. Todo is omitted for deletions.
type Event struct {
	Type       string            `json:"type"`
	TodoID     int64             `json:"todo_id"`
	Todo       *dto.TodoResponse `json:"todo,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func Created(todo dto.TodoResponse) Event {
	return Event{Type: TypeCreated, TodoID: todo.ID, Todo: &todo, OccurredAt: timezone.Now()}
}

func Updated(todo dto.TodoResponse) Event {
	return Event{Type: TypeUpdated, TodoID: todo.ID, Todo: &todo, OccurredAt: timezone.Now()}
}

func Deleted(id int64) Event {
	return Event{Type: TypeDeleted, TodoID: id, OccurredAt: timezone.Now()}
}

// Publisher emits change events. Delivery is best effort: failures are
// logged and never reported to the caller.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type publisherImpl struct {
	client kafka.Client
	otel   otel.Otel
}

func New(client kafka.Client, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		otel:   otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, event Event) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"event.type": event.Type,
		"todo.id":    event.TodoID,
	})

	message := kafka.Message{
		Key:   strconv.FormatInt(event.TodoID, 10),
		Value: event,
	}

	if err := p.client.SendMessages(ctx, []kafka.Message{message}); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("type", event.Type).Int64("todo_id", event.TodoID).Msg("failed to publish todo event")
	}
}
