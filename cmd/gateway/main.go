package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/examtrack/examtrack/internal/api/http"
	"github.com/examtrack/examtrack/internal/audit"
	"github.com/examtrack/examtrack/internal/auth"
	"github.com/examtrack/examtrack/internal/config"
	"github.com/examtrack/examtrack/internal/db"
	"github.com/examtrack/examtrack/internal/question"
	"github.com/examtrack/examtrack/internal/rbac"
	"github.com/examtrack/examtrack/internal/result"
	"github.com/examtrack/examtrack/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	docs, err := storage.NewDocStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("doc store: %v", err)
	}

	results := result.NewService(
		result.NewSQLStore(dbh, cfg.DBDriver),
		result.NewSidecar(docs),
		audit.NewEventRepo(dbh),
	)

	questions, err := question.NewFileStore(docs)
	if err != nil {
		log.Fatalf("question catalog: %v", err)
	}

	authSvc := auth.NewService(dbh, cfg.DBDriver, cfg.SignedTokens, cfg.HMACSecret)
	if err := authSvc.EnsureDefaults(ctx); err != nil {
		log.Fatalf("seed users: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/questions", api.ListQuestionsHandler(questions))

		ar.Get("/results", api.ListResultsHandler(results))
		ar.Get("/results/{type}", api.ListResultsByTypeHandler(results))
		ar.Post("/results", api.CreateResultHandler(results))
		ar.Delete("/results/{id}", api.DeleteResultHandler(results))
		ar.Get("/stats", api.StatsHandler(results))
		ar.Post("/score", api.ScoreHandler())

		ar.Post("/auth/login", api.LoginHandler(authSvc))
		ar.Post("/auth/verify", api.VerifyHandler(authSvc))
		ar.Get("/health", api.HealthHandler(cfg.Version))

		// Token-gated (token → role in context → RBAC)
		ar.Group(func(pr chi.Router) {
			pr.Use(auth.Middleware(authSvc))

			pr.With(rbac.Require("user:change_password")).
				Post("/auth/change-password", api.ChangePasswordHandler(authSvc))

			pr.With(rbac.Require("users:list")).
				Get("/users", api.ListUsersHandler(authSvc))
			pr.With(rbac.Require("users:create")).
				Post("/users", api.CreateUserHandler(authSvc))
			pr.With(rbac.Require("users:update")).
				Put("/users/{id}", api.UpdateUserHandler(authSvc))
			pr.With(rbac.Require("users:delete")).
				Delete("/users/{id}", api.DeleteUserHandler(authSvc))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Endpoint not found"}`))
	})

	log.Printf("listening on %s (db=%s, data=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.DataDir)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
