// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"net/http"
	"time"

	"github.com/reelgraph/reelgraph/internal/metrics"
	"github.com/reelgraph/reelgraph/internal/models"
)

const defaultPopularCount = 10

// CreateFilm handles POST /api/v1/films
func (h *Handler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var film models.Film
	if err := decodeJSON(r, &film); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	created, err := h.engine.AddFilm(r.Context(), &film)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusCreated, created, start)
}

// UpdateFilm handles PUT /api/v1/films
func (h *Handler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var film models.Film
	if err := decodeJSON(r, &film); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	updated, err := h.engine.UpdateFilm(r.Context(), &film)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, updated, start)
}

// ListFilms handles GET /api/v1/films
func (h *Handler) ListFilms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	films, err := h.engine.AllFilms(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, films, start)
}

// GetFilm handles GET /api/v1/films/{id}
func (h *Handler) GetFilm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	film, err := h.engine.GetFilm(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, film, start)
}

// DeleteFilm handles DELETE /api/v1/films/{id}
func (h *Handler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	removed, err := h.engine.DeleteFilm(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, removed, start)
}

// AddLike handles PUT /api/v1/films/{id}/like/{userId}
func (h *Handler) AddLike(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	filmID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	userID, err := urlParamInt(r, "userId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.engine.AddLike(r.Context(), userID, filmID); err != nil {
		respondDomainError(w, err)
		return
	}

	metrics.LikesRecorded.WithLabelValues("add").Inc()
	respondData(w, http.StatusOK, nil, start)
}

// RemoveLike handles DELETE /api/v1/films/{id}/like/{userId}
func (h *Handler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	filmID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	userID, err := urlParamInt(r, "userId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.engine.RemoveLike(r.Context(), userID, filmID); err != nil {
		respondDomainError(w, err)
		return
	}

	metrics.LikesRecorded.WithLabelValues("remove").Inc()
	respondData(w, http.StatusOK, nil, start)
}

// PopularFilms handles GET /api/v1/films/popular?count=&genreId=&year=
func (h *Handler) PopularFilms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	count := getIntParam(r, "count", defaultPopularCount)
	genreID := getIntParam(r, "genreId", 0)
	year := getIntParam(r, "year", 0)

	films, err := h.engine.TopFilms(r.Context(), count, genreID, year)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, films, start)
}

// DirectorFilms handles GET /api/v1/films/director/{directorId}?sortBy=
func (h *Handler) DirectorFilms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	directorID, err := urlParamInt(r, "directorId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	films, err := h.engine.FilmsByDirector(r.Context(), directorID, r.URL.Query().Get("sortBy"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, films, start)
}

// SearchFilms handles GET /api/v1/films/search?query=&by=
func (h *Handler) SearchFilms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := r.URL.Query().Get("query")
	by := r.URL.Query().Get("by")

	films, err := h.engine.SearchFilms(r.Context(), query, by)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, films, start)
}

// CommonFilms handles GET /api/v1/films/common?userId=&friendId=
func (h *Handler) CommonFilms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID := getIntParam(r, "userId", 0)
	friendID := getIntParam(r, "friendId", 0)
	if userID <= 0 || friendID <= 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"userId and friendId query parameters must be positive integers", nil)
		return
	}

	films, err := h.engine.CommonFilms(r.Context(), userID, friendID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, films, start)
}
