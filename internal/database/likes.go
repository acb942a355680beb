// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package database

import (
	"context"
	"fmt"
)

// AddLike inserts the like edge (userID, filmID). Inserting an edge
// that already exists has no effect; the film's rating is a COUNT over
// this table, so idempotence here is what keeps the rating invariant.
func (db *DB) AddLike(ctx context.Context, userID, filmID int) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO likes (user_id, film_id) VALUES (?, ?)
		 ON CONFLICT DO NOTHING`, userID, filmID)
	if err != nil {
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

// RemoveLike deletes the like edge if present. Removing a nonexistent
// edge is a no-op.
func (db *DB) RemoveLike(ctx context.Context, userID, filmID int) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND film_id = ?`, userID, filmID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

// LikedFilmIDs returns the ids of every film the user has liked,
// ordered ascending.
func (db *DB) LikedFilmIDs(ctx context.Context, userID int) ([]int, error) {
	return db.queryIDs(ctx,
		`SELECT film_id FROM likes WHERE user_id = ? ORDER BY film_id`, userID)
}

// UsersWhoLiked returns the ids of every user who liked the film,
// ordered ascending.
func (db *DB) UsersWhoLiked(ctx context.Context, filmID int) ([]int, error) {
	return db.queryIDs(ctx,
		`SELECT user_id FROM likes WHERE film_id = ? ORDER BY user_id`, filmID)
}
