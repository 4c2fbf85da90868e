// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the bonsai society site API.
// It loads configuration, builds the catalogs from fixtures or PostgreSQL,
// connects to services, sets up routing, and starts the HTTP server with
// graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bonsaisite/internal/cache"
	"bonsaisite/internal/config"
	"bonsaisite/internal/database"
	"bonsaisite/internal/dataset"
	"bonsaisite/internal/docstore"
	"bonsaisite/internal/events"
	"bonsaisite/internal/forum"
	"bonsaisite/internal/gallery"
	"bonsaisite/internal/handlers"
	"bonsaisite/internal/learning"
	"bonsaisite/internal/members"
	"bonsaisite/internal/middleware"
	"bonsaisite/internal/models"
	"bonsaisite/internal/router"
	"bonsaisite/internal/search"
	"bonsaisite/internal/session"
	"bonsaisite/internal/storage"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"data_source", cfg.DataSource,
	)

	ctx := context.Background()

	// Load the dataset. With PostgreSQL, forum writes are persisted too.
	data, forumStore, db, err := loadDataset(ctx, cfg)
	if err != nil {
		slog.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	// Fixture members carry no password hashes; give them one in development.
	if cfg.IsDev() {
		n, err := data.AssignDevPasswords(cfg.DevMemberPassword, bcrypt.DefaultCost)
		if err != nil {
			slog.Error("failed to assign development passwords", "error", err)
			os.Exit(1)
		}
		if n > 0 {
			slog.Info("development passwords assigned", "members", n)
		}
	}

	// Build the in-memory catalogs.
	galleries := gallery.New(data.Galleries, data.Photos)
	learn := learning.New(data.Articles, data.Resources, data.Vendors)
	evs := events.New(data.Events)
	var forumOpts []forum.Option
	if forumStore != nil {
		forumOpts = append(forumOpts, forum.WithStore(forumStore))
	}
	forumCatalog := forum.New(data.ForumCategories, data.ForumPosts, forumOpts...)
	directory, err := members.New(data.Members)
	if err != nil {
		slog.Error("failed to build member directory", "error", err)
		os.Exit(1)
	}
	aggregator := search.New(evs, learn, learn)

	slog.Info("catalogs ready",
		"galleries", len(data.Galleries),
		"photos", len(data.Photos),
		"articles", len(data.Articles),
		"events", len(data.Events),
		"forum_posts", len(data.ForumPosts),
		"members", len(data.Members),
	)

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)

	// Connect to S3-compatible object storage (optional: originals are
	// unavailable without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3BucketPublic, cfg.S3BucketPrivate, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage configured",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", cfg.S3BucketPublic,
			"private_bucket", cfg.S3BucketPrivate,
		)
	} else {
		slog.Warn("s3 storage not configured, original photos disabled")
	}

	// Writes are limited per member; sign-in attempts per address.
	forumLimiter := middleware.NewRateLimiter("forum", cfg.ForumWriteLimit, time.Minute)
	defer forumLimiter.Stop()
	signInLimiter := middleware.NewRateLimiter("signin", 10, time.Minute)
	defer signInLimiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, router.Handlers{
		Gallery:  handlers.NewGallery(galleries, storageClient),
		Learning: handlers.NewLearning(learn),
		Events:   handlers.NewEvents(evs),
		Forum:    handlers.NewForum(forumCatalog, responseCache),
		Search:   handlers.NewSearch(aggregator, responseCache),
		Members:  handlers.NewMembers(directory),
		Auth:     handlers.NewAuth(sessionStore, directory),
	}, router.Options{
		SecureCookies: secureCookies,
		ForumLimiter:  forumLimiter,
		SignInLimiter: signInLimiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// loadDataset reads the fixtures and, when PostgreSQL is the data source,
// seeds any empty collections from them and reads everything back. The
// forum post collection and db are nil for the fixtures source.
func loadDataset(ctx context.Context, cfg *config.Config) (*dataset.Dataset, docstore.Collection[models.ForumPost], *sql.DB, error) {
	var (
		fixtures *dataset.Dataset
		err      error
	)
	if cfg.FixturesDir != "" {
		fixtures, err = dataset.FromDir(cfg.FixturesDir)
	} else {
		fixtures, err = dataset.Fixtures()
	}
	if err != nil {
		return nil, nil, nil, err
	}
	if !cfg.UsesPostgres() {
		return fixtures, nil, nil, nil
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	stores := dataset.PostgresStores(db, docstore.DefaultBreakerSettings)
	if err := dataset.Seed(ctx, stores, fixtures); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("seed documents: %w", err)
	}
	return dataset.FromStore(ctx, stores), stores.ForumPosts, db, nil
}
