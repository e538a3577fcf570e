package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"todolist/internal/domains/todo/model/dto"
)

var (
	// ErrBusy is returned by every action while a request for the item is in flight.
	ErrBusy = errors.New("todo item is busy")
	// ErrInvalidState is returned when an action does not apply to the current edit mode.
	ErrInvalidState = errors.New("action not allowed in current state")

	errInterrupted = errors.New("operation interrupted")
)

// State is a point-in-time copy of an item, safe to render.
type State struct {
	ID        int64
	Title     string
	CreatedAt string
	Completed bool
	Draft     string
	Editing   bool
	Loading   bool
}

// Item holds the client-side state of one todo. Network-bound transitions are split into a
// synchronous Begin step, which applies guards and enters loading, and an Operation that
// performs the request and settles the item.
type Item struct {
	mu       sync.Mutex
	gateway  Gateway
	onRemove func(id int64)

	id        int64
	createdAt string
	title     string
	completed bool
	draft     string
	editing   bool
	loading   bool
}

func NewItem(todo dto.TodoResponse, gateway Gateway, onRemove func(id int64)) *Item {
	return &Item{
		gateway:   gateway,
		onRemove:  onRemove,
		id:        todo.ID,
		createdAt: todo.CreatedAt,
		title:     todo.Title,
		completed: todo.Completed,
		draft:     todo.Title,
	}
}

func (i *Item) ID() int64 {
	return i.id
}

func (i *Item) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()

	return State{
		ID:        i.id,
		Title:     i.title,
		CreatedAt: i.createdAt,
		Completed: i.completed,
		Draft:     i.draft,
		Editing:   i.editing,
		Loading:   i.loading,
	}
}

// BeginToggle flips the displayed completion flag immediately. The returned operation
// reverts it if the update is not confirmed.
func (i *Item) BeginToggle() (*Operation, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.loading {
		return nil, ErrBusy
	}

	previous := i.completed
	next := !previous

	i.completed = next
	i.loading = true

	return &Operation{
		item: i,
		name: "toggle",
		request: func(ctx context.Context) error {
			_, err := i.gateway.Update(ctx, i.id, dto.UpdateTodoRequest{Completed: &next})

			return err
		},
		rollback: func() { i.completed = previous },
	}, nil
}

func (i *Item) BeginEdit() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.loading {
		return ErrBusy
	}

	if i.editing {
		return ErrInvalidState
	}

	i.draft = i.title
	i.editing = true

	return nil
}

func (i *Item) SetDraft(text string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.loading {
		return ErrBusy
	}

	if !i.editing {
		return ErrInvalidState
	}

	i.draft = text

	return nil
}

func (i *Item) CancelEdit() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.loading {
		return ErrBusy
	}

	if !i.editing {
		return ErrInvalidState
	}

	i.draft = i.title
	i.editing = false

	return nil
}

// BeginCommit saves the draft as the new title. A blank draft is discarded without a request
// and the returned operation does nothing. The title only changes once the server confirms;
// on failure the item stays in edit mode with the draft kept.
func (i *Item) BeginCommit() (*Operation, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.loading {
		return nil, ErrBusy
	}

	if !i.editing {
		return nil, ErrInvalidState
	}

	if strings.TrimSpace(i.draft) == "" {
		i.draft = i.title
		i.editing = false

		return &Operation{}, nil
	}

	title := i.draft
	i.loading = true

	return &Operation{
		item: i,
		name: "rename",
		request: func(ctx context.Context) error {
			_, err := i.gateway.Update(ctx, i.id, dto.UpdateTodoRequest{Title: &title})

			return err
		},
		confirm: func() {
			i.title = title
			i.editing = false
		},
	}, nil
}

// BeginDelete marks the item loading. The item is never removed locally; on success the
// operation asks the owning list to drop it.
func (i *Item) BeginDelete() (*Operation, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.loading {
		return nil, ErrBusy
	}

	i.loading = true

	return &Operation{
		item: i,
		name: "delete",
		request: func(ctx context.Context) error {
			return i.gateway.Delete(ctx, i.id)
		},
		done: func() {
			if i.onRemove != nil {
				i.onRemove(i.id)
			}
		},
	}, nil
}

func (i *Item) Toggle(ctx context.Context) error {
	op, err := i.BeginToggle()
	if err != nil {
		return err
	}

	return op.Run(ctx)
}

func (i *Item) CommitEdit(ctx context.Context) error {
	op, err := i.BeginCommit()
	if err != nil {
		return err
	}

	return op.Run(ctx)
}

func (i *Item) Delete(ctx context.Context) error {
	op, err := i.BeginDelete()
	if err != nil {
		return err
	}

	return op.Run(ctx)
}

func (i *Item) settle(op *Operation, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.loading = false

	if err != nil {
		if op.rollback != nil {
			op.rollback()
		}

		return
	}

	if op.confirm != nil {
		op.confirm()
	}
}

// Operation is the network half of an item transition. Run must be called exactly once.
type Operation struct {
	item     *Item
	name     string
	request  func(ctx context.Context) error
	confirm  func()
	rollback func()
	// done runs after the item lock is released, on success only.
	done func()
}

// Run issues the request and settles the item: confirm on success, rollback on failure.
// Loading is cleared on every path, including a panicking request.
func (o *Operation) Run(ctx context.Context) (err error) {
	if o.request == nil {
		return nil
	}

	err = errInterrupted

	func() {
		defer func() { o.item.settle(o, err) }()

		err = o.request(ctx)
	}()

	if err != nil {
		log.Error().Err(err).Int64("todo_id", o.item.id).Msgf("failed to %s todo", o.name)

		return err
	}

	if o.done != nil {
		o.done()
	}

	return nil
}
