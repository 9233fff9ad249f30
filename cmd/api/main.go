package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/projectboard/projectboard-go/internal/config"
	"github.com/projectboard/projectboard-go/internal/handler"
	"github.com/projectboard/projectboard-go/internal/middleware"
	"github.com/projectboard/projectboard-go/internal/repository"
	"github.com/projectboard/projectboard-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	greetingHandler := handler.NewGreetingHandler()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/hello", func(r chi.Router) {
		r.Get("/", greetingHandler.HandleGet)
		r.Post("/", greetingHandler.HandlePost)
		r.Put("/{helloId}", greetingHandler.HandlePut)
		r.Delete("/{helloId}", greetingHandler.HandleDelete)
	})

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database connection failed, user/auth/project routes disabled", "error", err)
	} else {
		userRepo := repository.NewUserRepository(db)
		tokenRepo := repository.NewTokenRepository(db)
		projectRepo := repository.NewProjectRepository(db)

		authService := service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, cfg.TokenTTL)
		userService := service.NewUserService(userRepo)
		projectService := service.NewProjectService(projectRepo)

		authHandler := handler.NewAuthHandler(authService, cfg.CookieMaxAge)
		userHandler := handler.NewUserHandler(userService)
		projectHandler := handler.NewProjectHandler(projectService)

		requireAuth := middleware.TokenAuth(authService)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/api/signin", authHandler.HandleSignIn)
			r.Post("/api/users", userHandler.HandleRegister)
		})

		r.Get("/api/users", userHandler.HandleList)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/api/signout", authHandler.HandleSignOut)

			r.Put("/api/users/{userId}", userHandler.HandleUpdate)
			r.Delete("/api/users/{userId}", userHandler.HandleDelete)

			r.Get("/api/projects", projectHandler.HandleList)
			r.Post("/api/projects", projectHandler.HandleCreate)
			r.Get("/api/projects/{projectId}", projectHandler.HandleGet)
			r.Put("/api/projects/{projectId}", projectHandler.HandleUpdate)
			r.Delete("/api/projects/{projectId}", projectHandler.HandleDelete)
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
