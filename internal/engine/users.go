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

// AddUser validates and creates a user. A blank display name falls
// back to the login before validation of the rest of the record.
func (e *Engine) AddUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.ApplyDefaults()
	if err := validation.ValidateStruct(user); err != nil {
		return nil, err
	}
	if err := e.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	e.log.Info().Int("user_id", user.ID).Str("login", user.Login).Msg("user created")
	return user, nil
}

// GetUser returns one user by id.
func (e *Engine) GetUser(ctx context.Context, id int) (*models.User, error) {
	return e.store.GetUser(ctx, id)
}

// AllUsers returns all users ordered by id.
func (e *Engine) AllUsers(ctx context.Context) ([]models.User, error) {
	return e.store.ListUsers(ctx)
}

// UpdateUser validates and full-replaces a user's mutable fields.
// The login fallback for a blank display name applies on update too.
func (e *Engine) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.ApplyDefaults()
	if err := validation.ValidateStruct(user); err != nil {
		return nil, err
	}
	if err := e.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return e.store.GetUser(ctx, user.ID)
}

// DeleteUser removes a user and all edges referencing them, returning
// the removed record.
func (e *Engine) DeleteUser(ctx context.Context, id int) (*models.User, error) {
	user, err := e.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.store.DeleteUser(ctx, id); err != nil {
		return nil, err
	}
	e.log.Info().Int("user_id", id).Msg("user deleted")
	return user, nil
}
