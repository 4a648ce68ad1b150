package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Charlydk/Portal-GTR-sub000/config"
	"github.com/Charlydk/Portal-GTR-sub000/database"
	"github.com/Charlydk/Portal-GTR-sub000/geovictoria"
	"github.com/Charlydk/Portal-GTR-sub000/handlers"
	"github.com/Charlydk/Portal-GTR-sub000/middleware"
	"github.com/Charlydk/Portal-GTR-sub000/models"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.GeoVictoriaUser == "" || cfg.GeoVictoriaPassword == "" {
		log.Println("Warning: GEOVICTORIA_USER / GEOVICTORIA_PASSWORD not set, period queries will fail")
	}

	attendance := geovictoria.NewClient(
		cfg.GeoVictoriaBaseURL,
		cfg.GeoVictoriaUser,
		cfg.GeoVictoriaPassword,
		cfg.GeoVictoriaTimeout,
	)
	store := database.NewValidationStore(database.GetDB())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	hheeHandler := handlers.NewHHEEHandler(cfg, attendance, store)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/token", authHandler.Login)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Get("/users/me", authHandler.Me)

		// HHEE portal
		r.Route("/hhee", func(r chi.Router) {
			r.Post("/consultar-empleado", hheeHandler.Query)
			r.Get("/pendientes", hheeHandler.Pending)
			r.Post("/guardar-validaciones", hheeHandler.Submit)

			// Supervisor and responsable only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleSupervisor, models.RoleResponsable))
				r.Get("/export/csv", hheeHandler.ExportCSV)
			})
		})

		// Responsable only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleResponsable))
			r.Post("/register", authHandler.Register)
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
