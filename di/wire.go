//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"todolist/config"
	"todolist/infras/kafka"
	"todolist/infras/otel"
	"todolist/infras/postgres"
	"todolist/infras/redis"
	todoEvent "todolist/internal/domains/todo/event"
	todoRepository "todolist/internal/domains/todo/repository"
	todoService "todolist/internal/domains/todo/service"
	todoHandler "todolist/internal/handlers/todo"
	"todolist/shared/cache"
	"todolist/transport/http"
	"todolist/transport/http/middleware"
	"todolist/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoEvent.New,
	todoService.New,
)

var domains = wire.NewSet(
	todoDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	todoHandler.New,
	router.New,
)

// InitializeService builds the HTTP server. The cleanup closes storage and
// brokers and must run after Serve returns.
func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return nil, nil, nil
}
