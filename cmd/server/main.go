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
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/arman/volunteer-network-server/internal/auth"
	"github.com/arman/volunteer-network-server/internal/config"
	"github.com/arman/volunteer-network-server/internal/events"
	"github.com/arman/volunteer-network-server/internal/httpx"
	"github.com/arman/volunteer-network-server/internal/logging"
	"github.com/arman/volunteer-network-server/internal/middleware"
	"github.com/arman/volunteer-network-server/internal/posts"
	"github.com/arman/volunteer-network-server/internal/requests"
	"github.com/arman/volunteer-network-server/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	if cfg.SecretKey == "" {
		logger.Fatal("SECRET_KEY is required")
	}

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.MongoDB)

	postStore := store.NewPostStore(db)
	requestStore := store.NewRequestStore(db)
	eventStore := store.NewEventStore(db)

	if err := requestStore.EnsureIndexes(ctx); err != nil {
		logger.Fatal("request indexes", zap.Error(err))
	}
	if err := eventStore.Seed(ctx); err != nil {
		logger.Fatal("event seed", zap.Error(err))
	}

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()
	cache := store.NewListingCache(rdb)

	// ── Services & handlers ──────────────────────────────────
	tokens := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL)
	authHandler := auth.NewHandler(tokens, logger, cfg.Production())
	postHandler := posts.NewHandler(postStore, cache, logger)
	requestService := requests.NewService(requestStore, postStore, logger)
	requestHandler := requests.NewHandler(requestService, requestStore, cache, logger)
	eventHandler := events.NewHandler(eventStore)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Volunteer Network Server is Running"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, readpref.Primary()); err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Auth
	r.Post("/jwt", authHandler.IssueToken)
	r.Get("/logout", authHandler.Logout)

	// Posts
	r.Post("/addPost", postHandler.Create)
	r.Get("/volunteerPosts", postHandler.List)
	r.Get("/volunteerNeedsNow", postHandler.NeedsNow)
	r.Get("/volunteerPost/{id}", postHandler.Get)
	r.With(middleware.RequireAuth(tokens)).Get("/my-posts", postHandler.MyPosts)
	r.Put("/volunteerPost/{id}", postHandler.Update)
	r.Patch("/volunteerPost/{id}", postHandler.Patch)
	r.Delete("/volunteerPost/{id}", postHandler.Delete)

	// Requests
	r.Post("/requestVolunteer/{id}", requestHandler.Submit)
	r.Get("/requests-by-owner", requestHandler.ListByOwner)
	r.Delete("/my-volunteer-requests/{id}", requestHandler.Delete)

	// Events
	r.Get("/events", eventHandler.List)
	r.Get("/events/{id}", eventHandler.Get)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
