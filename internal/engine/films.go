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

// AddFilm validates and creates a film, assigning its id.
func (e *Engine) AddFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := validation.ValidateStruct(film); err != nil {
		return nil, err
	}
	if err := e.store.CreateFilm(ctx, film); err != nil {
		return nil, err
	}
	e.log.Info().Int("film_id", film.ID).Str("title", film.Title).Msg("film created")
	return film, nil
}

// GetFilm returns one film by id.
func (e *Engine) GetFilm(ctx context.Context, id int) (*models.Film, error) {
	return e.store.GetFilm(ctx, id)
}

// AllFilms returns the whole catalog ordered by film id.
func (e *Engine) AllFilms(ctx context.Context) ([]models.Film, error) {
	return e.store.ListFilms(ctx)
}

// UpdateFilm validates and full-replaces a film's mutable fields.
// The like edges of the film are not touched by updates.
func (e *Engine) UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := validation.ValidateStruct(film); err != nil {
		return nil, err
	}
	if err := e.store.UpdateFilm(ctx, film); err != nil {
		return nil, err
	}
	return e.store.GetFilm(ctx, film.ID)
}

// DeleteFilm removes a film and all edges referencing it, returning
// the removed record.
func (e *Engine) DeleteFilm(ctx context.Context, id int) (*models.Film, error) {
	film, err := e.store.GetFilm(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.store.DeleteFilm(ctx, id); err != nil {
		return nil, err
	}
	e.log.Info().Int("film_id", id).Msg("film deleted")
	return film, nil
}
