// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelgraph/reelgraph/internal/config"
	"github.com/reelgraph/reelgraph/internal/metrics"
	"github.com/reelgraph/reelgraph/internal/middleware"
)

// NewRouter builds the full route tree for the service.
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/api/v1/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit.Enabled {
			r.Use(httprate.Limit(
				cfg.RateLimit.RequestsPerWindow,
				cfg.RateLimit.Window,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
					respondError(w, http.StatusTooManyRequests, "RATE_LIMITED",
						"too many requests", nil)
				}),
			))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Route("/films", func(r chi.Router) {
			r.Get("/", h.ListFilms)
			r.Post("/", h.CreateFilm)
			r.Put("/", h.UpdateFilm)

			r.Get("/popular", h.PopularFilms)
			r.Get("/common", h.CommonFilms)
			r.Get("/search", h.SearchFilms)
			r.Get("/director/{directorId}", h.DirectorFilms)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetFilm)
				r.Delete("/", h.DeleteFilm)
				r.Put("/like/{userId}", h.AddLike)
				r.Delete("/like/{userId}", h.RemoveLike)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Put("/", h.UpdateUser)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Delete("/", h.DeleteUser)

				r.Get("/friends", h.Friends)
				r.Put("/friends/{friendId}", h.AddFriend)
				r.Delete("/friends/{friendId}", h.RemoveFriend)
				r.Get("/friends/common/{otherId}", h.CommonFriends)

				r.Get("/recommendations", h.Recommendations)
				r.Get("/feed", h.Feed)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", h.ListReviews)
			r.Post("/", h.CreateReview)
			r.Put("/", h.UpdateReview)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetReview)
				r.Delete("/", h.DeleteReview)
				r.Put("/like/{userId}", h.LikeReview)
				r.Put("/dislike/{userId}", h.DislikeReview)
				r.Delete("/like/{userId}", h.UnlikeReview)
				r.Delete("/dislike/{userId}", h.UndislikeReview)
			})
		})

		r.Route("/directors", func(r chi.Router) {
			r.Get("/", h.ListDirectors)
			r.Post("/", h.CreateDirector)
			r.Put("/", h.UpdateDirector)
			r.Get("/{id}", h.GetDirector)
			r.Delete("/{id}", h.DeleteDirector)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", h.ListGenres)
			r.Get("/{id}", h.GetGenre)
		})

		r.Route("/mpa", func(r chi.Router) {
			r.Get("/", h.ListMpaRatings)
			r.Get("/{id}", h.GetMpaRating)
		})
	})

	return r
}
