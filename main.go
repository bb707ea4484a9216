package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hackvent/hackvent-backend/audit"
	"github.com/hackvent/hackvent-backend/auth"
	"github.com/hackvent/hackvent-backend/controllers"
	"github.com/hackvent/hackvent-backend/database"
	"github.com/hackvent/hackvent-backend/logging"
	"github.com/hackvent/hackvent-backend/middleware"
	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/repositories"
	"github.com/hackvent/hackvent-backend/services"
)

func main() {
	// Load environment variables from .env file, if present
	_ = godotenv.Load()

	log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	// Initialize database
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "hackvent.db"
	}
	if err := database.InitializeDatabase(dbPath); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer database.CloseDB()

	db := database.GetDB()

	// Initialize repositories and attach the audit interceptor
	repos := repositories.NewRepositories(db)
	audit.Attach(repos.Hooks, audit.DefaultExclusions, repos.Audit, log)

	// Token manager
	ttl := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.WithError(err).Fatal("invalid TOKEN_TTL")
		}
		ttl = parsed
	}
	tokens, err := auth.NewManager(os.Getenv("TOKEN_SECRET"), ttl)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize token manager")
	}

	// Initialize services and controllers
	srvs := services.NewServices(repos, tokens)
	ctrl := controllers.NewControllers(srvs)

	r := setupRouter(ctrl, tokens, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithFields(logrus.Fields{
		"port":     port,
		"database": dbPath,
	}).Info("hackvent backend starting")

	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, tokens *auth.Manager, log *logrus.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))

	// PUBLIC ROUTES (no authentication required)
	r.Post("/auth/register", ctrl.Users.Register)
	r.Post("/auth/login", ctrl.Users.Login)
	r.Get("/events/active", ctrl.Events.Active)
	r.Get("/hardware/catalog", ctrl.Hardware.Catalog)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "hackvent-backend"}`)
	})

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))

		r.Get("/me", ctrl.Users.Me)

		// Events are readable by any authenticated user
		r.Get("/events", ctrl.Events.Index)
		r.Get("/events/{id}", ctrl.Events.Show)
		r.Get("/events/{id}/teams", ctrl.Teams.Index)
		r.Get("/events/{id}/sponsors", ctrl.Sponsors.ByEvent)

		// Teams
		r.Route("/teams", func(r chi.Router) {
			r.Post("/", ctrl.Teams.Create)
			r.Get("/{id}", ctrl.Teams.Show)
			r.Put("/{id}", ctrl.Teams.Update)
			r.Delete("/{id}", ctrl.Teams.Delete)
			r.Get("/{id}/members", ctrl.Teams.Members)
			r.Post("/{id}/members", ctrl.Teams.AddMember)
			r.Delete("/{id}/members/{userID}", ctrl.Teams.RemoveMember)
		})

		// Tiers are readable by any authenticated user
		r.Get("/sponsor-tiers", ctrl.Sponsors.Tiers)

		// STAFF ROUTES
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleStaff))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", ctrl.Users.Index)
				r.Get("/{id}", ctrl.Users.Show)
				r.Put("/{id}", ctrl.Users.Update)
			})

			r.Get("/events/{id}/participants", ctrl.Events.Participants)

			r.Route("/hardware", func(r chi.Router) {
				r.Get("/", ctrl.Hardware.Index)
				r.Post("/", ctrl.Hardware.Create)
				r.Get("/availability", ctrl.Hardware.Availability)
				r.Get("/{id}", ctrl.Hardware.Show)
				r.Put("/{id}", ctrl.Hardware.Update)
				r.Delete("/{id}", ctrl.Hardware.Delete)
				r.Post("/{id}/checkout", ctrl.Hardware.Checkout)
				r.Post("/{id}/return", ctrl.Hardware.Return)
				r.Get("/{id}/images", ctrl.Hardware.Images)
				r.Post("/{id}/images", ctrl.Hardware.AddImage)
				r.Delete("/images/{imageID}", ctrl.Hardware.RemoveImage)
			})

			r.Route("/sponsors", func(r chi.Router) {
				r.Get("/", ctrl.Sponsors.Index)
				r.Post("/", ctrl.Sponsors.Create)
				r.Put("/{id}", ctrl.Sponsors.Update)
				r.Delete("/{id}", ctrl.Sponsors.Delete)
			})
			r.Delete("/events/{id}/sponsors/{sponsorID}", ctrl.Sponsors.RemoveFromEvent)
		})

		// ADMIN ROUTES
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Post("/events", ctrl.Events.Create)
			r.Put("/events/{id}", ctrl.Events.Update)
			r.Delete("/events/{id}", ctrl.Events.Delete)

			r.Delete("/users/{id}", ctrl.Users.Delete)

			r.Post("/sponsor-tiers", ctrl.Sponsors.CreateTier)
			r.Put("/sponsor-tiers/{id}", ctrl.Sponsors.UpdateTier)
			r.Delete("/sponsor-tiers/{id}", ctrl.Sponsors.DeleteTier)

			r.Post("/audit-logs/search", ctrl.Audit.Search)
		})
	})

	return r
}
