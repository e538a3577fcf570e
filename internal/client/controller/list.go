package controller

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

// List owns the ordered collection of items shown to the user. Every Load replaces the
// collection with the server's order; nothing is merged or inserted locally. Ids whose
// deletion was confirmed are filtered out of later loads, so a listing fetched before
// the delete landed cannot bring them back. Server ids are never reused.
type List struct {
	mu      sync.Mutex
	gateway Gateway
	items   []*Item
	removed map[int64]struct{}
	ready   bool
}

func NewList(gateway Gateway) *List {
	return &List{
		gateway: gateway,
		removed: make(map[int64]struct{}),
	}
}

func (l *List) Load(ctx context.Context) error {
	todos, err := l.gateway.List(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.ready = true

	if err != nil {
		log.Error().Err(err).Msg("failed to load todos")

		return err
	}

	items := make([]*Item, 0, len(todos))
	for _, todo := range todos {
		if _, gone := l.removed[todo.ID]; gone {
			continue
		}

		items = append(items, NewItem(todo, l.gateway, l.Remove))
	}

	l.items = items

	return nil
}

// Items returns a copy of the current collection.
func (l *List) Items() []*Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.items)
}

// Remove drops the item with the given id, keeping the order of the rest.
func (l *List) Remove(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.removed[id] = struct{}{}
	l.items = slices.DeleteFunc(slices.Clone(l.items), func(item *Item) bool {
		return item.ID() == id
	})
}

// Ready reports whether the first Load has finished, successfully or not.
func (l *List) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.ready
}
