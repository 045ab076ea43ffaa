package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vibecheck/internal/auth"
	"vibecheck/internal/config"
	"vibecheck/internal/httpserver/handlers"
	"vibecheck/internal/store"
)

func NewRouter(db *gorm.DB, lg *zap.SugaredLogger, cfg config.Config, tokens *auth.TokenService) http.Handler {
	reports := store.NewReports(db)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"The Vibe Check API is online!","status":"ok"}`))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api/auth", func(api chi.Router) {
		api.Post("/register", handlers.Register(db, lg))
		api.Post("/login", handlers.Login(db, lg, tokens))
		api.Group(func(protected chi.Router) {
			protected.Use(auth.RequireUser(db, tokens))
			protected.Get("/me", handlers.Me())
			protected.Put("/me", handlers.UpdateMe(db, lg, cfg))
		})
	})

	r.Route("/api/reports", func(api chi.Router) {
		api.Get("/nearby", handlers.NearbyReports(reports, lg))
		api.Group(func(protected chi.Router) {
			protected.Use(auth.RequireUser(db, tokens))
			protected.Post("/", handlers.SubmitReport(reports, lg))
			protected.Delete("/{id}", handlers.DeleteReport(reports, lg))
		})
	})

	r.Route("/api/users", func(api chi.Router) {
		api.Post("/", handlers.CreateUser(db, lg, cfg))
		api.Get("/", handlers.ListUsers(db, lg, cfg))
		api.Get("/{id}", handlers.GetUser(db, lg, cfg))
		api.Put("/{id}", handlers.UpdateUser(db, lg, cfg))
		api.Delete("/{id}", handlers.DeleteUser(db, lg))
	})

	r.Route("/api/vibes", func(api chi.Router) {
		api.Get("/random", handlers.RandomVibe())
		api.Get("/", handlers.ListVibes(db, lg))
		api.Group(func(protected chi.Router) {
			protected.Use(auth.RequireUser(db, tokens))
			protected.Post("/", handlers.CreateVibe(db, lg))
			protected.Put("/{id}", handlers.UpdateVibe(db, lg))
			protected.Delete("/{id}", handlers.DeleteVibe(db, lg))
		})
	})

	r.Handle("/static/uploads/*", http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	return r
}
