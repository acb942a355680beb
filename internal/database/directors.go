// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reelgraph/reelgraph/internal/models"
)

// CreateDirector inserts a director and assigns the new id.
func (db *DB) CreateDirector(ctx context.Context, director *models.Director) error {
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO directors (director_name) VALUES (?) RETURNING director_id`,
		director.Name).Scan(&director.ID)
	if err != nil {
		return fmt.Errorf("failed to insert director: %w", err)
	}
	return nil
}

// GetDirector returns one director by id.
func (db *DB) GetDirector(ctx context.Context, id int) (*models.Director, error) {
	var d models.Director
	err := db.conn.QueryRowContext(ctx,
		`SELECT director_id, director_name FROM directors WHERE director_id = ?`, id).
		Scan(&d.ID, &d.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", models.ErrDirectorNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query director: %w", err)
	}
	return &d, nil
}

// ListDirectors returns all directors ordered by id.
func (db *DB) ListDirectors(ctx context.Context) ([]models.Director, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT director_id, director_name FROM directors ORDER BY director_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query directors: %w", err)
	}
	defer rows.Close()

	directors := []models.Director{}
	for rows.Next() {
		var d models.Director
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan director: %w", err)
		}
		directors = append(directors, d)
	}
	return directors, rows.Err()
}

// DirectorExists reports whether a director with the given id exists.
func (db *DB) DirectorExists(ctx context.Context, id int) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM directors WHERE director_id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check director existence: %w", err)
	}
	return n > 0, nil
}

// UpdateDirector replaces the director's name.
func (db *DB) UpdateDirector(ctx context.Context, director *models.Director) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE directors SET director_name = ? WHERE director_id = ?`,
		director.Name, director.ID)
	if err != nil {
		return fmt.Errorf("failed to update director: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", models.ErrDirectorNotFound, director.ID)
	}
	return nil
}

// DeleteDirector removes the director and their film links.
func (db *DB) DeleteDirector(ctx context.Context, id int) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM directors WHERE director_id = ?`, id).Scan(&n); err != nil {
			return fmt.Errorf("failed to check director existence: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: id %d", models.ErrDirectorNotFound, id)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM film_directors WHERE director_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete director links: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM directors WHERE director_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete director: %w", err)
		}
		return nil
	})
}
