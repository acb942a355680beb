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

// querier is satisfied by both *sql.DB and *sql.Tx so film scanning
// helpers work inside and outside transactions.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// filmColumns selects film fields plus the derived rating. The rating
// subquery is the single source of truth for like counts; there is no
// stored counter to fall out of sync.
const filmColumns = `f.film_id, f.title, f.description, f.release_date, f.duration_minutes, f.mpa_id,
	(SELECT COUNT(*) FROM likes l WHERE l.film_id = f.film_id) AS rating`

// CreateFilm inserts a film with its genre and director links and
// assigns the new id. A film with the same title and release date is a
// conflict.
func (db *DB) CreateFilm(ctx context.Context, film *models.Film) error {
	film.NormalizeSets()
	return db.withTx(ctx, func(tx *sql.Tx) error {
		var dup int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM films WHERE title = ? AND release_date = ?`,
			film.Title, film.ReleaseDate.Time).Scan(&dup)
		if err != nil {
			return fmt.Errorf("failed to check film uniqueness: %w", err)
		}
		if dup > 0 {
			return models.ErrFilmExists
		}

		if err := validateFilmRefs(ctx, tx, film); err != nil {
			return err
		}

		err = tx.QueryRowContext(ctx,
			`INSERT INTO films (title, description, release_date, duration_minutes, mpa_id)
			 VALUES (?, ?, ?, ?, ?) RETURNING film_id`,
			film.Title, film.Description, film.ReleaseDate.Time, film.Duration, mpaIDOrNull(film.Mpa)).
			Scan(&film.ID)
		if err != nil {
			return fmt.Errorf("failed to insert film: %w", err)
		}

		return insertFilmLinks(ctx, tx, film)
	})
}

// GetFilm returns one film with genres, directors and MPA resolved.
func (db *DB) GetFilm(ctx context.Context, id int) (*models.Film, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+filmColumns+` FROM films f WHERE f.film_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query film: %w", err)
	}
	films, err := scanFilms(rows)
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, models.ErrFilmNotFound
	}
	if err := db.loadFilmAssociations(ctx, films); err != nil {
		return nil, err
	}
	return &films[0], nil
}

// ListFilms returns the full catalog ordered by film id.
func (db *DB) ListFilms(ctx context.Context) ([]models.Film, error) {
	return db.queryFilms(ctx,
		`SELECT `+filmColumns+` FROM films f ORDER BY f.film_id`)
}

// FilmExists reports whether a film with the given id exists.
func (db *DB) FilmExists(ctx context.Context, id int) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM films WHERE film_id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check film existence: %w", err)
	}
	return n > 0, nil
}

// UpdateFilm replaces all mutable fields of the film and its genre and
// director links. The like edges are untouched by updates.
func (db *DB) UpdateFilm(ctx context.Context, film *models.Film) error {
	film.NormalizeSets()
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := filmExistsTx(ctx, tx, film.ID); err != nil {
			return err
		}
		if err := validateFilmRefs(ctx, tx, film); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE films SET title = ?, description = ?, release_date = ?, duration_minutes = ?, mpa_id = ?
			 WHERE film_id = ?`,
			film.Title, film.Description, film.ReleaseDate.Time, film.Duration,
			mpaIDOrNull(film.Mpa), film.ID)
		if err != nil {
			return fmt.Errorf("failed to update film: %w", err)
		}

		for _, stmt := range []string{
			`DELETE FROM film_genres WHERE film_id = ?`,
			`DELETE FROM film_directors WHERE film_id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, film.ID); err != nil {
				return fmt.Errorf("failed to clear film links: %w", err)
			}
		}
		return insertFilmLinks(ctx, tx, film)
	})
}

// DeleteFilm removes the film together with every edge referencing it:
// likes, genre/director links, reviews and review votes.
func (db *DB) DeleteFilm(ctx context.Context, id int) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := filmExistsTx(ctx, tx, id); err != nil {
			return err
		}
		for _, stmt := range []string{
			`DELETE FROM review_votes WHERE review_id IN (SELECT review_id FROM reviews WHERE film_id = ?)`,
			`DELETE FROM reviews WHERE film_id = ?`,
			`DELETE FROM likes WHERE film_id = ?`,
			`DELETE FROM film_genres WHERE film_id = ?`,
			`DELETE FROM film_directors WHERE film_id = ?`,
			`DELETE FROM films WHERE film_id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to cascade film delete: %w", err)
			}
		}
		return nil
	})
}

// RankedFilms returns films ordered by rating descending, ties broken
// by ascending film id. genreID and year are optional facets; zero
// disables a facet. Unknown facet values simply match nothing.
func (db *DB) RankedFilms(ctx context.Context, genreID, year int) ([]models.Film, error) {
	query := `SELECT ` + filmColumns + ` FROM films f`
	var args []interface{}

	if genreID > 0 {
		query += ` JOIN film_genres fg ON fg.film_id = f.film_id AND fg.genre_id = ?`
		args = append(args, genreID)
	}
	if year > 0 {
		query += ` WHERE EXTRACT(year FROM f.release_date) = ?`
		args = append(args, year)
	}
	query += ` ORDER BY rating DESC, f.film_id ASC`

	return db.queryFilms(ctx, query, args...)
}

// FilmsByDirector returns the director's films ordered by release date
// ascending (byYear true) or rating descending (byYear false). The
// caller is responsible for checking the director exists.
func (db *DB) FilmsByDirector(ctx context.Context, directorID int, byYear bool) ([]models.Film, error) {
	order := `rating DESC, f.film_id ASC`
	if byYear {
		order = `f.release_date ASC, f.film_id ASC`
	}
	return db.queryFilms(ctx,
		`SELECT `+filmColumns+` FROM films f
		 JOIN film_directors fd ON fd.film_id = f.film_id
		 WHERE fd.director_id = ?
		 ORDER BY `+order, directorID)
}

// FilmsByIDs resolves a set of film ids to full records, ordered by
// rating descending then film id. Unknown ids are skipped.
func (db *DB) FilmsByIDs(ctx context.Context, ids []int) ([]models.Film, error) {
	if len(ids) == 0 {
		return []models.Film{}, nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return db.queryFilms(ctx,
		`SELECT `+filmColumns+` FROM films f
		 WHERE f.film_id IN (`+placeholders(len(ids))+`)
		 ORDER BY rating DESC, f.film_id ASC`, args...)
}

// queryFilms runs a film query and resolves associations.
func (db *DB) queryFilms(ctx context.Context, query string, args ...interface{}) ([]models.Film, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query films: %w", err)
	}
	films, err := scanFilms(rows)
	if err != nil {
		return nil, err
	}
	if err := db.loadFilmAssociations(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// scanFilms consumes film rows produced with filmColumns.
func scanFilms(rows *sql.Rows) ([]models.Film, error) {
	defer rows.Close()

	films := []models.Film{}
	for rows.Next() {
		var (
			f       models.Film
			release sql.NullTime
			mpaID   sql.NullInt64
		)
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &release, &f.Duration, &mpaID, &f.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan film: %w", err)
		}
		if release.Valid {
			f.ReleaseDate = models.Date{Time: release.Time.UTC()}
		}
		if mpaID.Valid {
			f.Mpa.ID = int(mpaID.Int64)
		}
		f.Genres = []models.Genre{}
		f.Directors = []models.Director{}
		films = append(films, f)
	}
	return films, rows.Err()
}

// loadFilmAssociations fills genres, directors and MPA names for the
// given films with three batched queries.
func (db *DB) loadFilmAssociations(ctx context.Context, films []models.Film) error {
	if len(films) == 0 {
		return nil
	}

	index := make(map[int]*models.Film, len(films))
	args := make([]interface{}, len(films))
	for i := range films {
		index[films[i].ID] = &films[i]
		args[i] = films[i].ID
	}
	in := placeholders(len(films))

	rows, err := db.conn.QueryContext(ctx,
		`SELECT fg.film_id, g.genre_id, g.genre_name
		 FROM film_genres fg JOIN genres g ON g.genre_id = fg.genre_id
		 WHERE fg.film_id IN (`+in+`)
		 ORDER BY fg.film_id, g.genre_id`, args...)
	if err != nil {
		return fmt.Errorf("failed to query film genres: %w", err)
	}
	if err := func() error {
		defer rows.Close()
		for rows.Next() {
			var (
				filmID int
				g      models.Genre
			)
			if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
				return fmt.Errorf("failed to scan film genre: %w", err)
			}
			if f := index[filmID]; f != nil {
				f.Genres = append(f.Genres, g)
			}
		}
		return rows.Err()
	}(); err != nil {
		return err
	}

	rows, err = db.conn.QueryContext(ctx,
		`SELECT fd.film_id, d.director_id, d.director_name
		 FROM film_directors fd JOIN directors d ON d.director_id = fd.director_id
		 WHERE fd.film_id IN (`+in+`)
		 ORDER BY fd.film_id, d.director_id`, args...)
	if err != nil {
		return fmt.Errorf("failed to query film directors: %w", err)
	}
	if err := func() error {
		defer rows.Close()
		for rows.Next() {
			var (
				filmID int
				d      models.Director
			)
			if err := rows.Scan(&filmID, &d.ID, &d.Name); err != nil {
				return fmt.Errorf("failed to scan film director: %w", err)
			}
			if f := index[filmID]; f != nil {
				f.Directors = append(f.Directors, d)
			}
		}
		return rows.Err()
	}(); err != nil {
		return err
	}

	mpaNames, err := db.mpaNames(ctx)
	if err != nil {
		return err
	}
	for i := range films {
		if films[i].Mpa.ID > 0 {
			films[i].Mpa.Name = mpaNames[films[i].Mpa.ID]
		}
	}
	return nil
}

// validateFilmRefs confirms the MPA, genre and director ids a film
// references exist in the catalogs.
func validateFilmRefs(ctx context.Context, q querier, film *models.Film) error {
	if film.Mpa.ID != 0 {
		var n int
		err := q.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM mpa_ratings WHERE mpa_id = ?`, film.Mpa.ID).Scan(&n)
		if err != nil {
			return fmt.Errorf("failed to check mpa rating: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: id %d", models.ErrMpaNotFound, film.Mpa.ID)
		}
	}
	for _, g := range film.Genres {
		var n int
		err := q.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM genres WHERE genre_id = ?`, g.ID).Scan(&n)
		if err != nil {
			return fmt.Errorf("failed to check genre: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: id %d", models.ErrGenreNotFound, g.ID)
		}
	}
	for _, d := range film.Directors {
		var n int
		err := q.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM directors WHERE director_id = ?`, d.ID).Scan(&n)
		if err != nil {
			return fmt.Errorf("failed to check director: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: id %d", models.ErrDirectorNotFound, d.ID)
		}
	}
	return nil
}

// insertFilmLinks writes the genre and director edges of the film.
func insertFilmLinks(ctx context.Context, q querier, film *models.Film) error {
	for _, g := range film.Genres {
		_, err := q.ExecContext(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES (?, ?)`, film.ID, g.ID)
		if err != nil {
			return fmt.Errorf("failed to link genre: %w", err)
		}
	}
	for _, d := range film.Directors {
		_, err := q.ExecContext(ctx,
			`INSERT INTO film_directors (film_id, director_id) VALUES (?, ?)`, film.ID, d.ID)
		if err != nil {
			return fmt.Errorf("failed to link director: %w", err)
		}
	}
	return nil
}

// filmExistsTx returns ErrFilmNotFound when the id is absent.
func filmExistsTx(ctx context.Context, q querier, id int) error {
	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM films WHERE film_id = ?`, id).Scan(&n); err != nil {
		return fmt.Errorf("failed to check film existence: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", models.ErrFilmNotFound, id)
	}
	return nil
}

// mpaIDOrNull converts a zero MPA id to SQL NULL.
func mpaIDOrNull(m models.Mpa) interface{} {
	if m.ID == 0 {
		return nil
	}
	return m.ID
}
