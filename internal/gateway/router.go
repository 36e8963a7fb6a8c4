package gateway

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/handler"
)

// Router wires the gateway's validating HTTP surface.
type Router struct {
	proxy  *Proxy
	extra  []func(http.Handler) http.Handler
	logger zerolog.Logger
}

// RouterConfig contains configuration for the gateway router.
type RouterConfig struct {
	Proxy *Proxy

	// Middlewares are applied to every route after the built-in stack.
	Middlewares []func(http.Handler) http.Handler

	Logger zerolog.Logger
}

// NewRouter creates a new gateway Router.
func NewRouter(config RouterConfig) *Router {
	return &Router{
		proxy:  config.Proxy,
		extra:  config.Middlewares,
		logger: config.Logger.With().Str("component", "gateway-router").Logger(),
	}
}

// Handler returns the gateway HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(rt.logger))
	r.Use(middleware.Recoverer)
	for _, mw := range rt.extra {
		r.Use(mw)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", rt.withBody(nil, validateCreateUser))
		r.Get("/", rt.passthrough())
		r.Get("/{userId}", rt.passthrough())
		r.Patch("/{userId}", rt.withBody(nil, validateUpdateUser))
		r.Delete("/{userId}", rt.passthrough())
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", rt.withBody(requireSharer, validateCreateItem))
		r.Get("/", rt.forSharer(validatePagination))
		r.Get("/search", rt.forSharer(validatePagination))
		r.Get("/{itemId}", rt.forSharer())
		r.Patch("/{itemId}", rt.withBody(requireSharer, nil))
		r.Post("/{itemId}/comment", rt.withBody(requireSharer, validateComment))
	})

	r.Route("/requests", func(r chi.Router) {
		r.Post("/", rt.withBody(requireSharer, validateCreateRequest))
		r.Get("/", rt.forSharer())
		r.Get("/all", rt.forSharer(validatePagination))
		r.Get("/{requestId}", rt.forSharer())
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", rt.withBody(requireSharer, func(body []byte) error {
			return validateCreateBooking(body, time.Now())
		}))
		r.Get("/", rt.forSharer(validatePagination, validateState))
		r.Get("/owner", rt.forSharer(validatePagination, validateState))
		r.Get("/{bookingId}", rt.forSharer())
		r.Patch("/{bookingId}", rt.forSharer(validateApproved))
	})

	return r
}

// passthrough forwards a bodyless request without validation.
func (rt *Router) passthrough() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rt.proxy.Forward(w, r, nil)
	}
}

// forSharer forwards a bodyless request after checking the sharer header and
// any query validators.
func (rt *Router) forSharer(checks ...func(*http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireSharer(r); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		for _, check := range checks {
			if err := check(r); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		rt.proxy.Forward(w, r, nil)
	}
}

// withBody forwards a request with a JSON body after the header check and
// body validator run.
func (rt *Router) withBody(headerCheck func(*http.Request) error, validate func([]byte) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if headerCheck != nil {
			if err := headerCheck(r); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		body, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable request body")
			return
		}
		if validate != nil {
			if err := validate(body); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		rt.proxy.Forward(w, r, body)
	}
}
