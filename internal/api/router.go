package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/contact-book-be/internal/api/handlers"
	"github.com/isdelr/contact-book-be/internal/api/response"
	"github.com/isdelr/contact-book-be/internal/apierror"
	"github.com/isdelr/contact-book-be/internal/auth"
	"github.com/isdelr/contact-book-be/internal/metrics"
	"github.com/isdelr/contact-book-be/internal/services"
	"github.com/isdelr/contact-book-be/internal/websocket"
)

// RouterDeps carries everything the HTTP layer is built from.
type RouterDeps struct {
	Hub            *websocket.Hub
	UserService    services.UserServiceProvider
	ContactService services.ContactServiceProvider
	AddressService services.AddressServiceProvider
	EventService   services.EventServiceProvider
	Metrics        *metrics.Metrics
	LoginLimiter   *auth.LoginLimiter
	AllowedOrigins []string
	SecureCookie   bool
	// TrustProxy makes X-Forwarded-For / X-Real-IP replace the peer address.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	if deps.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, apierror.NotFound("Not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, apierror.New(http.StatusMethodNotAllowed, "Method not allowed"))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w)
	})
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	// Initialize handlers
	var connections handlers.ConnectionCloser
	if deps.Hub != nil {
		connections = deps.Hub
	}
	userHandler := handlers.NewUserHandler(deps.UserService, connections, deps.SecureCookie)
	contactHandler := handlers.NewContactHandler(deps.ContactService)
	addressHandler := handlers.NewAddressHandler(deps.AddressService)
	eventHandler := handlers.NewEventHandler(deps.EventService)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub, deps.AllowedOrigins)

	login := http.Handler(http.HandlerFunc(userHandler.Login))
	if deps.LoginLimiter != nil {
		login = deps.LoginLimiter.Middleware(login)
	}

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", userHandler.Register)
		r.Method(http.MethodPost, "/users/login", login)

		// Everything else requires a session token.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(deps.UserService))

			r.Get("/users/current", userHandler.GetCurrent)
			r.Patch("/users/current", userHandler.UpdateCurrent)
			r.Delete("/users/logout", userHandler.Logout)

			r.Route("/contacts", func(r chi.Router) {
				r.Post("/", contactHandler.Create)
				r.Get("/", contactHandler.Search)
				r.Route("/{contactId}", func(r chi.Router) {
					r.Get("/", contactHandler.Get)
					r.Put("/", contactHandler.Update)
					r.Delete("/", contactHandler.Delete)

					r.Route("/addresses", func(r chi.Router) {
						r.Post("/", addressHandler.Create)
						r.Get("/", addressHandler.List)
						r.Route("/{addressId}", func(r chi.Router) {
							r.Get("/", addressHandler.Get)
							r.Put("/", addressHandler.Update)
							r.Delete("/", addressHandler.Delete)
						})
					})
				})
			})

			r.Get("/events", eventHandler.GetRecent)

			// WebSocket connection endpoint
			r.Get("/ws", wsHandler.Serve)
		})
	})

	return r
}
