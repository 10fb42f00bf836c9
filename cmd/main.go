package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	s3 "uniprep/aws"
	"uniprep/database"
	"uniprep/internal/cache"
	"uniprep/internal/config"
	"uniprep/internal/handlers"
	appmiddleware "uniprep/internal/middleware"
	"uniprep/internal/repository"
	"uniprep/internal/repository/mongodb"
	"uniprep/internal/seed"
	utility "uniprep/internal/utility"
)

func main() {
	seedFile := flag.String("seed", "", "YAML file with semesters, subjects and admins to create before serving")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()
	ctx := context.Background()

	client, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("MongoDB disconnect: %v", err)
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	stores := repository.Stores{
		Semesters: mongodb.NewSemesterStore(db),
		Subjects:  mongodb.NewSubjectStore(db),
		Questions: mongodb.NewQuestionStore(db),
		Users:     mongodb.NewUserStore(db),
	}

	if *seedFile != "" {
		f, err := seed.Load(*seedFile)
		if err != nil {
			log.Fatalf("failed to load seed file: %v", err)
		}
		if _, err := seed.Apply(ctx, stores, f); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
	}

	h := handlers.New(stores, utility.NewSMTPMailer(cfg.Mail), handlers.Options{
		JWTSecret:      cfg.Auth.JWTSecret,
		TokenTTL:       cfg.Auth.TokenTTL,
		OTPTTL:         cfg.Auth.OTPTTL,
		AdminAuth:      cfg.Auth.AdminAuth,
		MaxUploadBytes: cfg.MaxUploadBytes,
		RequestTimeout: cfg.RequestTimeout,
	})

	if cfg.Redis.Addr != "" {
		questionCache, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Printf("Redis unavailable, serving questions uncached: %v", err)
		} else {
			defer questionCache.Close()
			h.WithCache(questionCache)
		}
	}

	if cfg.AWS.UploadBucket != "" {
		uploader, err := s3.NewUploader(cfg.AWS)
		if err != nil {
			log.Fatalf("failed to initialize upload archive: %v", err)
		}
		h.WithArchiver(uploader)
	}

	if !cfg.Auth.AdminAuth {
		log.Println("ADMIN_AUTH is off: catalogue and upload routes are open")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := appmiddleware.NewMetrics(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(appmiddleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Handler)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/health", handlers.Health(client))
	r.Method(http.MethodGet, "/metrics", metrics.Exposition())
	h.Routes(r)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server is running on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
