package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/repository"
)

// Router wires the HTTP surface of the ShareIt server.
type Router struct {
	userHandler    *UserHandler
	itemHandler    *ItemHandler
	requestHandler *RequestHandler
	bookingHandler *BookingHandler
	health         repository.DatabaseHealth
	extra          []func(http.Handler) http.Handler
	logger         zerolog.Logger
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	UserHandler    *UserHandler
	ItemHandler    *ItemHandler
	RequestHandler *RequestHandler
	BookingHandler *BookingHandler
	Health         repository.DatabaseHealth

	// Middlewares are applied to every route after the built-in stack.
	Middlewares []func(http.Handler) http.Handler

	Logger zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(config RouterConfig) *Router {
	return &Router{
		userHandler:    config.UserHandler,
		itemHandler:    config.ItemHandler,
		requestHandler: config.RequestHandler,
		bookingHandler: config.BookingHandler,
		health:         config.Health,
		extra:          config.Middlewares,
		logger:         config.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(RequestLogger(rt.logger))
	r.Use(middleware.Recoverer)
	for _, mw := range rt.extra {
		r.Use(mw)
	}

	r.Get("/health", rt.handleHealth)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", rt.userHandler.Create)
		r.Get("/", rt.userHandler.List)
		r.Get("/{userId}", rt.userHandler.Get)
		r.Patch("/{userId}", rt.userHandler.Update)
		r.Delete("/{userId}", rt.userHandler.Delete)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", rt.itemHandler.Create)
		r.Get("/", rt.itemHandler.ListOwned)
		r.Get("/search", rt.itemHandler.Search)
		r.Get("/{itemId}", rt.itemHandler.Get)
		r.Patch("/{itemId}", rt.itemHandler.Update)
		r.Post("/{itemId}/comment", rt.itemHandler.AddComment)
	})

	r.Route("/requests", func(r chi.Router) {
		r.Post("/", rt.requestHandler.Create)
		r.Get("/", rt.requestHandler.ListOwn)
		r.Get("/all", rt.requestHandler.ListOthers)
		r.Get("/{requestId}", rt.requestHandler.Get)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", rt.bookingHandler.Create)
		r.Get("/", rt.bookingHandler.ListForBooker)
		r.Get("/owner", rt.bookingHandler.ListForOwner)
		r.Get("/{bookingId}", rt.bookingHandler.Get)
		r.Patch("/{bookingId}", rt.bookingHandler.Approve)
	})

	return r
}

// handleHealth reports liveness, including database reachability.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	if rt.health != nil {
		if err := rt.health.Ping(r.Context()); err != nil {
			rt.logger.Error().Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
