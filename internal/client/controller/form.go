package controller

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"todolist/shared/validator"
)

// Form creates todos and then refetches the whole list.
type Form struct {
	gateway Gateway
	list    *List
}

func NewForm(gateway Gateway, list *List) *Form {
	return &Form{
		gateway: gateway,
		list:    list,
	}
}

func (f *Form) Submit(ctx context.Context, title string) error {
	if err := validator.ValidateVar(title, "notblank"); err != nil {
		return fmt.Errorf("invalid title: %w", err)
	}

	if _, err := f.gateway.Create(ctx, title); err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return err
	}

	return f.list.Load(ctx)
}
