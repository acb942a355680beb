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

// Fixed catalogs. Seeded once on first startup; the ids are part of
// the external contract (MPA 1..5, genres 1..6).
var (
	seedMpaRatings = []models.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
	seedGenres = []models.Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Cartoon"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}
)

// seedCatalogs populates the MPA and genre catalogs if empty.
func (db *DB) seedCatalogs() error {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM mpa_ratings`).Scan(&n); err != nil {
		return fmt.Errorf("failed to count mpa ratings: %w", err)
	}
	if n == 0 {
		for _, m := range seedMpaRatings {
			if _, err := db.conn.Exec(
				`INSERT INTO mpa_ratings (mpa_id, mpa_name) VALUES (?, ?)`, m.ID, m.Name); err != nil {
				return fmt.Errorf("failed to seed mpa rating: %w", err)
			}
		}
	}

	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM genres`).Scan(&n); err != nil {
		return fmt.Errorf("failed to count genres: %w", err)
	}
	if n == 0 {
		for _, g := range seedGenres {
			if _, err := db.conn.Exec(
				`INSERT INTO genres (genre_id, genre_name) VALUES (?, ?)`, g.ID, g.Name); err != nil {
				return fmt.Errorf("failed to seed genre: %w", err)
			}
		}
	}
	return nil
}

// Genres returns the genre catalog ordered by id.
func (db *DB) Genres(ctx context.Context) ([]models.Genre, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT genre_id, genre_name FROM genres ORDER BY genre_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	genres := []models.Genre{}
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// GenreByID returns one genre from the catalog.
func (db *DB) GenreByID(ctx context.Context, id int) (*models.Genre, error) {
	var g models.Genre
	err := db.conn.QueryRowContext(ctx,
		`SELECT genre_id, genre_name FROM genres WHERE genre_id = ?`, id).
		Scan(&g.ID, &g.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", models.ErrGenreNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query genre: %w", err)
	}
	return &g, nil
}

// MpaRatings returns the MPA catalog ordered by id.
func (db *DB) MpaRatings(ctx context.Context) ([]models.Mpa, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT mpa_id, mpa_name FROM mpa_ratings ORDER BY mpa_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query mpa ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.Mpa{}
	for rows.Next() {
		var m models.Mpa
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan mpa rating: %w", err)
		}
		ratings = append(ratings, m)
	}
	return ratings, rows.Err()
}

// MpaByID returns one MPA rating from the catalog.
func (db *DB) MpaByID(ctx context.Context, id int) (*models.Mpa, error) {
	var m models.Mpa
	err := db.conn.QueryRowContext(ctx,
		`SELECT mpa_id, mpa_name FROM mpa_ratings WHERE mpa_id = ?`, id).
		Scan(&m.ID, &m.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", models.ErrMpaNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query mpa rating: %w", err)
	}
	return &m, nil
}

// mpaNames returns the id -> name map for the MPA catalog.
func (db *DB) mpaNames(ctx context.Context) (map[int]string, error) {
	ratings, err := db.MpaRatings(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(ratings))
	for _, m := range ratings {
		names[m.ID] = m.Name
	}
	return names, nil
}
