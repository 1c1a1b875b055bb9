package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"moviepicks/internal/handler"
	"moviepicks/internal/httputil"
	"moviepicks/internal/session"
	sessmw "moviepicks/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler  *handler.AuthHandler
	MovieHandler *handler.MovieHandler
	Sessions     *session.Manager
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Forms can only GET/POST; logout tunnels DELETE through _method.
	// Must run before routing so chi matches the overridden method.
	r.Use(sessmw.MethodOverride)

	// Every route sees a session, authenticated or not.
	r.Use(sessmw.SessionMiddleware(cfg.Sessions))

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - login/signup flow
	r.Get("/login", cfg.AuthHandler.LoginPage)
	r.Post("/users/new", cfg.AuthHandler.Signup)
	r.Post("/session", cfg.AuthHandler.Login)
	r.Delete("/session", cfg.AuthHandler.Logout)

	// Protected routes - anonymous visitors bounce to /login
	r.Group(func(r chi.Router) {
		r.Use(sessmw.RequireUser)

		r.Get("/", cfg.MovieHandler.Home)
		r.Get("/pick", cfg.MovieHandler.Pick)

		r.Get("/movies/new", cfg.MovieHandler.NewMoviePage)
		r.Post("/movies/search", cfg.MovieHandler.Search)
		r.Get("/movies/search/{title}/{page}", cfg.MovieHandler.SearchPage)
		r.Post("/movies", cfg.MovieHandler.Create)
		r.Post("/movies/{id}", cfg.MovieHandler.MarkWatched)
	})

	return r
}
