package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"funlife/internal/handler"
	"funlife/internal/httputil"
	"funlife/internal/service"
	authmw "funlife/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	VideoHandler   *handler.VideoHandler
	CommentHandler *handler.CommentHandler
	FollowHandler  *handler.FollowHandler
	MediaHandler   *handler.MediaHandler
	AuthService    *service.AuthService

	// StaticDir, when non-empty, is served under StaticPrefix so locally
	// stored uploads are reachable over HTTP.
	StaticDir    string
	StaticPrefix string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	optional := authmw.OptionalAuth(cfg.AuthService)
	required := authmw.RequireAuth(cfg.AuthService)

	r.Route("/api", func(r chi.Router) {
		// Public routes - no authentication required
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})

		// Public read endpoints with optional viewer resolution. The viewer
		// only affects the is_liked / is_following flags.
		r.Group(func(r chi.Router) {
			r.Use(optional)

			r.Get("/users/search", cfg.UserHandler.Search)
			r.Get("/users/{id}", cfg.UserHandler.GetProfile)
			r.Get("/users/{id}/videos", cfg.UserHandler.GetVideos)

			r.Get("/videos/feed", cfg.VideoHandler.GetFeed)
			r.Get("/videos/search", cfg.VideoHandler.Search)
			r.Get("/videos/{id}", cfg.VideoHandler.GetByID)
			r.Get("/videos/{id}/comments", cfg.CommentHandler.List)
		})

		// Protected routes - require a resolved viewer
		r.Group(func(r chi.Router) {
			r.Use(required)

			r.Patch("/users/{id}", cfg.UserHandler.Update)
			r.Post("/users/{id}/follow", cfg.FollowHandler.Follow)
			r.Delete("/users/{id}/follow", cfg.FollowHandler.Unfollow)

			r.Post("/videos", cfg.VideoHandler.Create)
			r.Post("/videos/{id}/like", cfg.VideoHandler.Like)
			r.Delete("/videos/{id}/like", cfg.VideoHandler.Unlike)
			r.Post("/videos/{id}/comments", cfg.CommentHandler.Create)

			r.Post("/media/profile-picture", cfg.MediaHandler.UploadProfilePicture)
		})
	})

	if cfg.StaticDir != "" {
		fileServer := http.StripPrefix(cfg.StaticPrefix, http.FileServer(http.Dir(cfg.StaticDir)))
		r.Get(cfg.StaticPrefix+"/*", func(w http.ResponseWriter, r *http.Request) {
			fileServer.ServeHTTP(w, r)
		})
	}

	return r
}
