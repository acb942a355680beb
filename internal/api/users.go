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

// CreateUser handles POST /api/v1/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	created, err := h.engine.AddUser(r.Context(), &user)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusCreated, created, start)
}

// UpdateUser handles PUT /api/v1/users
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	updated, err := h.engine.UpdateUser(r.Context(), &user)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, updated, start)
}

// ListUsers handles GET /api/v1/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	users, err := h.engine.AllUsers(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, users, start)
}

// GetUser handles GET /api/v1/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	user, err := h.engine.GetUser(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, user, start)
}

// DeleteUser handles DELETE /api/v1/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	removed, err := h.engine.DeleteUser(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, removed, start)
}

// userPairParams extracts the {id} and second path parameter for
// friendship endpoints.
func userPairParams(r *http.Request, second string) (int, int, error) {
	userID, err := urlParamInt(r, "id")
	if err != nil {
		return 0, 0, err
	}
	otherID, err := urlParamInt(r, second)
	if err != nil {
		return 0, 0, err
	}
	return userID, otherID, nil
}

// AddFriend handles PUT /api/v1/users/{id}/friends/{friendId}
func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, friendID, err := userPairParams(r, "friendId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.engine.AddFriend(r.Context(), userID, friendID); err != nil {
		respondDomainError(w, err)
		return
	}

	metrics.FriendshipsRecorded.WithLabelValues("add").Inc()
	respondData(w, http.StatusOK, nil, start)
}

// RemoveFriend handles DELETE /api/v1/users/{id}/friends/{friendId}
func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, friendID, err := userPairParams(r, "friendId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.engine.RemoveFriend(r.Context(), userID, friendID); err != nil {
		respondDomainError(w, err)
		return
	}

	metrics.FriendshipsRecorded.WithLabelValues("remove").Inc()
	respondData(w, http.StatusOK, nil, start)
}

// Friends handles GET /api/v1/users/{id}/friends
func (h *Handler) Friends(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	friends, err := h.engine.Friends(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, friends, start)
}

// CommonFriends handles GET /api/v1/users/{id}/friends/common/{otherId}
func (h *Handler) CommonFriends(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, otherID, err := userPairParams(r, "otherId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	common, err := h.engine.CommonFriends(r.Context(), userID, otherID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, common, start)
}

// Recommendations handles GET /api/v1/users/{id}/recommendations
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	films, err := h.engine.Recommendations(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	metrics.RecommendationsServed.Inc()
	respondData(w, http.StatusOK, films, start)
}

// Feed handles GET /api/v1/users/{id}/feed
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	events, err := h.engine.Feed(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, events, start)
}
