// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package engine

import (
	"context"
	"fmt"

	"github.com/reelgraph/reelgraph/internal/models"
)

// RecordEvent appends one activity-feed event for the acting user.
// The actor must exist; the entity id is not checked here because the
// entity may legitimately have just been deleted (REVIEW/REMOVE).
func (e *Engine) RecordEvent(ctx context.Context, entityID int, typ models.EventType, op models.EventOperation, userID int) (*models.Event, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown event type %q", models.ErrInvalidArgument, typ)
	}
	if !op.Valid() {
		return nil, fmt.Errorf("%w: unknown event operation %q", models.ErrInvalidArgument, op)
	}
	if err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	event := &models.Event{
		EntityID:  entityID,
		Type:      typ,
		Operation: op,
		UserID:    userID,
	}
	if err := e.store.AppendEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Feed returns every event the user performed, oldest first.
func (e *Engine) Feed(ctx context.Context, userID int) ([]models.Event, error) {
	if err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return e.store.EventsByUser(ctx, userID)
}
