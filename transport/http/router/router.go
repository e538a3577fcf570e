package router

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"todolist/config"
	"todolist/internal/handlers/todo"
	"todolist/shared/constant"
	"todolist/transport/http/middleware"
)

var defaultAllowedMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}

type DomainHandlers struct {
	Todo todo.Handler
}

type Router struct {
	Config         *config.Config
	DomainHandlers DomainHandlers
	Middleware     middleware.AppMiddleware
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.Middleware.RequestID)
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.Middleware.Logger)
	router.Use(r.Middleware.Tracing)

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(r.corsOptions()))
	}

	router.Group(func(routerGroup chi.Router) {
		routerGroup.Use(r.Middleware.RateLimit)
		routerGroup.Use(r.Middleware.APIKey)

		r.DomainHandlers.Todo.Router(routerGroup)
	})

	if r.Config.Server.Env != constant.ServerEnvProduction {
		router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}
}

func (r *Router) corsOptions() cors.Options {
	corsConfig := r.Config.App.CORS

	methods := corsConfig.AllowedMethods
	if len(methods) == 0 {
		methods = defaultAllowedMethods
	}

	origins := corsConfig.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{constant.Asterix}
	}

	headers := corsConfig.AllowedHeaders
	if len(headers) == 0 {
		headers = []string{
			constant.RequestHeaderAccept,
			constant.RequestHeaderContentType,
			constant.RequestHeaderAPIKey,
			constant.RequestHeaderRequestID,
		}
	}

	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		ExposedHeaders:   []string{constant.RequestHeaderRequestID},
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	}
}

func New(cfg *config.Config, domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware) Router {
	return Router{
		Config:         cfg,
		DomainHandlers: domainHandlers,
		Middleware:     appMiddleware,
	}
}
