// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"net/http"
	"time"

	"github.com/reelgraph/reelgraph/internal/models"
)

// ListGenres handles GET /api/v1/genres
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	genres, err := h.engine.Genres(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, genres, start)
}

// GetGenre handles GET /api/v1/genres/{id}
func (h *Handler) GetGenre(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	genre, err := h.engine.GenreByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, genre, start)
}

// ListMpaRatings handles GET /api/v1/mpa
func (h *Handler) ListMpaRatings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ratings, err := h.engine.MpaRatings(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, ratings, start)
}

// GetMpaRating handles GET /api/v1/mpa/{id}
func (h *Handler) GetMpaRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	mpa, err := h.engine.MpaByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, mpa, start)
}

// CreateDirector handles POST /api/v1/directors
func (h *Handler) CreateDirector(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var director models.Director
	if err := decodeJSON(r, &director); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	created, err := h.engine.AddDirector(r.Context(), &director)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusCreated, created, start)
}

// UpdateDirector handles PUT /api/v1/directors
func (h *Handler) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var director models.Director
	if err := decodeJSON(r, &director); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	updated, err := h.engine.UpdateDirector(r.Context(), &director)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, updated, start)
}

// ListDirectors handles GET /api/v1/directors
func (h *Handler) ListDirectors(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	directors, err := h.engine.AllDirectors(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, directors, start)
}

// GetDirector handles GET /api/v1/directors/{id}
func (h *Handler) GetDirector(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	director, err := h.engine.GetDirector(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, director, start)
}

// DeleteDirector handles DELETE /api/v1/directors/{id}
func (h *Handler) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.engine.DeleteDirector(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, nil, start)
}
