// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/reelgraph/reelgraph/internal/models"
)

// CreateReview handles POST /api/v1/reviews
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var review models.Review
	if err := decodeJSON(r, &review); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	created, err := h.engine.AddReview(r.Context(), &review)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusCreated, created, start)
}

// UpdateReview handles PUT /api/v1/reviews
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var review models.Review
	if err := decodeJSON(r, &review); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	updated, err := h.engine.UpdateReview(r.Context(), &review)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, updated, start)
}

// ListReviews handles GET /api/v1/reviews?filmId=&count=
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	filmID := getIntParam(r, "filmId", 0)
	count := getIntParam(r, "count", 0)

	reviews, err := h.engine.Reviews(r.Context(), filmID, count)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, reviews, start)
}

// GetReview handles GET /api/v1/reviews/{id}
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	review, err := h.engine.GetReview(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, review, start)
}

// DeleteReview handles DELETE /api/v1/reviews/{id}
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.engine.DeleteReview(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, nil, start)
}

// handleVote runs one of the four vote operations against the path
// parameters shared by all vote endpoints.
func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request,
	vote func(ctx context.Context, reviewID, userID int) (*models.Review, error)) {
	start := time.Now()

	reviewID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	userID, err := urlParamInt(r, "userId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	review, err := vote(r.Context(), reviewID, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, review, start)
}

// LikeReview handles PUT /api/v1/reviews/{id}/like/{userId}
func (h *Handler) LikeReview(w http.ResponseWriter, r *http.Request) {
	h.handleVote(w, r, h.engine.LikeReview)
}

// DislikeReview handles PUT /api/v1/reviews/{id}/dislike/{userId}
func (h *Handler) DislikeReview(w http.ResponseWriter, r *http.Request) {
	h.handleVote(w, r, h.engine.DislikeReview)
}

// UnlikeReview handles DELETE /api/v1/reviews/{id}/like/{userId}
func (h *Handler) UnlikeReview(w http.ResponseWriter, r *http.Request) {
	h.handleVote(w, r, h.engine.UnlikeReview)
}

// UndislikeReview handles DELETE /api/v1/reviews/{id}/dislike/{userId}
func (h *Handler) UndislikeReview(w http.ResponseWriter, r *http.Request) {
	h.handleVote(w, r, h.engine.UndislikeReview)
}
