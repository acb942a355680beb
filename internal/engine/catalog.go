// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package engine

import (
	"context"

	"github.com/reelgraph/reelgraph/internal/models"
	"github.com/reelgraph/reelgraph/internal/validation"
)

// Genres returns the fixed genre catalog.
func (e *Engine) Genres(ctx context.Context) ([]models.Genre, error) {
	return e.store.Genres(ctx)
}

// GenreByID returns one genre; unknown ids are NotFound.
func (e *Engine) GenreByID(ctx context.Context, id int) (*models.Genre, error) {
	return e.store.GenreByID(ctx, id)
}

// MpaRatings returns the fixed MPA catalog.
func (e *Engine) MpaRatings(ctx context.Context) ([]models.Mpa, error) {
	return e.store.MpaRatings(ctx)
}

// MpaByID returns one MPA rating; unknown ids are NotFound.
func (e *Engine) MpaByID(ctx context.Context, id int) (*models.Mpa, error) {
	return e.store.MpaByID(ctx, id)
}

// AddDirector validates and creates a director.
func (e *Engine) AddDirector(ctx context.Context, director *models.Director) (*models.Director, error) {
	if err := validation.ValidateStruct(director); err != nil {
		return nil, err
	}
	if err := e.store.CreateDirector(ctx, director); err != nil {
		return nil, err
	}
	return director, nil
}

// GetDirector returns one director by id.
func (e *Engine) GetDirector(ctx context.Context, id int) (*models.Director, error) {
	return e.store.GetDirector(ctx, id)
}

// AllDirectors returns all directors ordered by id.
func (e *Engine) AllDirectors(ctx context.Context) ([]models.Director, error) {
	return e.store.ListDirectors(ctx)
}

// UpdateDirector replaces the director's name.
func (e *Engine) UpdateDirector(ctx context.Context, director *models.Director) (*models.Director, error) {
	if err := validation.ValidateStruct(director); err != nil {
		return nil, err
	}
	if err := e.store.UpdateDirector(ctx, director); err != nil {
		return nil, err
	}
	return director, nil
}

// DeleteDirector removes the director and their film links.
func (e *Engine) DeleteDirector(ctx context.Context, id int) error {
	return e.store.DeleteDirector(ctx, id)
}
