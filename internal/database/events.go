// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/reelgraph/reelgraph/internal/models"
)

// AppendEvent records an event, assigning a fresh id and the current
// epoch-millisecond timestamp.
func (db *DB) AppendEvent(ctx context.Context, event *models.Event) error {
	event.Timestamp = time.Now().UnixMilli()

	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO events (user_id, entity_id, event_type, operation, event_ts)
		 VALUES (?, ?, ?, ?, ?) RETURNING event_id`,
		event.UserID, event.EntityID, string(event.Type), string(event.Operation), event.Timestamp).
		Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// EventsByUser returns every event the user performed, oldest first.
// Events are inserted in timestamp order, so ordering by event id
// replays the feed chronologically.
func (db *DB) EventsByUser(ctx context.Context, userID int) ([]models.Event, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT event_id, user_id, entity_id, event_type, operation, event_ts
		 FROM events WHERE user_id = ? ORDER BY event_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var (
			e       models.Event
			typeStr string
			opStr   string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.EntityID, &typeStr, &opStr, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Type = models.EventType(typeStr)
		e.Operation = models.EventOperation(opStr)
		events = append(events, e)
	}
	return events, rows.Err()
}
