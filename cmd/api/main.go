//	@title			Atelier Studio API
//	@version		1.0
//	@description	Content backend for the studio website — team, projects, blog, contact form.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/auth"
	"github.com/atelier-studio/backend/internal/blog"
	"github.com/atelier-studio/backend/internal/config"
	"github.com/atelier-studio/backend/internal/contact"
	"github.com/atelier-studio/backend/internal/db"
	"github.com/atelier-studio/backend/internal/mail"
	appMiddleware "github.com/atelier-studio/backend/internal/middleware"
	"github.com/atelier-studio/backend/internal/project"
	"github.com/atelier-studio/backend/internal/storage"
	"github.com/atelier-studio/backend/internal/team"

	_ "github.com/atelier-studio/backend/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStore(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StoragePublicBase,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	var mailer mail.Mailer
	if cfg.MailgunAPIKey != "" && cfg.MailgunDomain != "" && cfg.OwnerEmail != "" {
		mailer = mail.NewMailgunMailer(cfg.MailgunAPIKey, cfg.MailgunDomain, cfg.MailSender, cfg.OwnerEmail)
	} else {
		log.Println("outbound mail not configured, contact notifications disabled")
	}

	// Wire dependencies: repository → lifecycle → handler
	resolver := attachment.NewResolver(store)

	teamHandler := team.NewHandler(team.NewLifecycle(team.NewRepository(pool), resolver))
	projectHandler := project.NewHandler(project.NewLifecycle(project.NewRepository(pool), resolver))

	blogRepo := blog.NewRepository(pool)
	blogHandler := blog.NewHandler(blog.NewLifecycle(blogRepo, resolver), blogRepo)

	contactHandler := contact.NewHandler(contact.NewService(contact.NewRepository(pool), mailer))

	authSvc := auth.NewService(cfg)
	authHandler := auth.NewHandler(authSvc)
	requireAdmin := appMiddleware.RequireAdmin(authSvc.AccessSecret())

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(requireAdmin).Get("/protected", authHandler.Protected)
	})

	r.Route("/team", func(r chi.Router) {
		r.Get("/", teamHandler.List)
		r.Get("/{id}", teamHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", teamHandler.Create)
			r.Put("/{id}", teamHandler.Update)
			r.Delete("/{id}", teamHandler.Delete)
		})
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", projectHandler.List)
		r.Get("/{id}", projectHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", projectHandler.Create)
			r.Put("/{id}", projectHandler.Update)
			r.Delete("/{id}", projectHandler.Delete)
		})
	})

	r.Route("/blog", func(r chi.Router) {
		r.Get("/", blogHandler.List)
		r.Get("/{id}", blogHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", blogHandler.Create)
			r.Put("/{id}", blogHandler.Update)
			r.Delete("/{id}", blogHandler.Delete)
		})
	})

	// One limiter shared by both paths so the legacy alias cannot bypass it.
	contactLimit := contact.RateLimit()
	r.With(contactLimit).Post("/contact", contactHandler.Submit)
	r.With(contactLimit).Post("/test", contactHandler.Submit)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
