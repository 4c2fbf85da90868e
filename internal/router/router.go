// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// bonsai society site API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bonsaisite/internal/handlers"
	"bonsaisite/internal/middleware"
	"bonsaisite/internal/session"
)

// Handlers bundles the handler groups the router dispatches to.
type Handlers struct {
	Gallery  *handlers.Gallery
	Learning *handlers.Learning
	Events   *handlers.Events
	Forum    *handlers.Forum
	Search   *handlers.Search
	Members  *handlers.Members
	Auth     *handlers.Auth
}

// Options tune the middleware stacks. Nil limiters disable rate limiting
// for their routes.
type Options struct {
	SecureCookies bool
	ForumLimiter  *middleware.RateLimiter
	SignInLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, h Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)

	// Operational endpoints: no session, no CSRF.
	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoadSession(sessionStore))
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		r.Route("/galleries", func(r chi.Router) {
			r.Get("/", h.Gallery.ListGalleries)
			r.Get("/{id}", h.Gallery.GetGallery)
			r.Get("/{id}/photos", h.Gallery.ListGalleryPhotos)
		})

		r.Route("/photos", func(r chi.Router) {
			r.Get("/recent", h.Gallery.RecentPhotos)
			r.Get("/{id}", h.Gallery.GetPhoto)
			r.Get("/{id}/original", h.Gallery.PhotoOriginal)
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", h.Learning.ListArticles)
			r.Get("/featured", h.Learning.FeaturedArticles)
			r.Get("/categories", h.Learning.ListCategories)
			r.Get("/{id}", h.Learning.GetArticle)
		})
		r.Get("/resources", h.Learning.ListResources)
		r.Get("/vendors", h.Learning.ListVendors)

		r.Get("/events", h.Events.ListEvents)
		r.Get("/events/{id}", h.Events.GetEvent)

		r.Route("/forum", func(r chi.Router) {
			r.Get("/categories", h.Forum.ListCategories)
			r.Get("/categories/{id}/posts", h.Forum.ListCategoryPosts)
			r.Get("/posts/{id}", h.Forum.GetPost)

			// Writes are limited per member (per IP when signed out).
			r.Group(func(r chi.Router) {
				if opts.ForumLimiter != nil {
					r.Use(opts.ForumLimiter.Middleware)
				}
				r.Post("/posts", h.Forum.CreatePost)
				r.Post("/posts/{id}/replies", h.Forum.AddReply)
			})
		})

		r.Get("/search", h.Search.SearchAll)
		r.Get("/members", h.Members.ListMembers)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.Auth.CurrentSession)
			r.Get("/csrf", h.Auth.CSRFToken)
			r.Delete("/", h.Auth.SignOut)
			r.Group(func(r chi.Router) {
				if opts.SignInLimiter != nil {
					r.Use(opts.SignInLimiter.Middleware)
				}
				r.Post("/", h.Auth.SignIn)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
