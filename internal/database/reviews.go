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

// reviewColumns selects review fields plus the derived usefulness:
// +1 per like vote, -1 per dislike vote.
const reviewColumns = `r.review_id, r.content, r.is_positive, r.user_id, r.film_id,
	COALESCE((SELECT SUM(CASE WHEN v.is_like THEN 1 ELSE -1 END)
	          FROM review_votes v WHERE v.review_id = r.review_id), 0) AS usefulness`

// CreateReview inserts a review and assigns the new id. The caller has
// already verified the user and film exist.
func (db *DB) CreateReview(ctx context.Context, review *models.Review) error {
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO reviews (content, is_positive, user_id, film_id)
		 VALUES (?, ?, ?, ?) RETURNING review_id`,
		review.Content, *review.IsPositive, review.UserID, review.FilmID).
		Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	review.Usefulness = 0
	return nil
}

// GetReview returns one review with its derived usefulness.
func (db *DB) GetReview(ctx context.Context, id int) (*models.Review, error) {
	var (
		r        models.Review
		positive bool
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews r WHERE r.review_id = ?`, id).
		Scan(&r.ID, &r.Content, &positive, &r.UserID, &r.FilmID, &r.Usefulness)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", models.ErrReviewNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query review: %w", err)
	}
	r.IsPositive = &positive
	return &r, nil
}

// ListReviews returns reviews ordered by usefulness descending, ties
// broken by review id. filmID of zero lists reviews for all films.
// count caps the result size.
func (db *DB) ListReviews(ctx context.Context, filmID, count int) ([]models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews r`
	var args []interface{}
	if filmID > 0 {
		query += ` WHERE r.film_id = ?`
		args = append(args, filmID)
	}
	query += ` ORDER BY usefulness DESC, r.review_id ASC LIMIT ?`
	args = append(args, count)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var (
			r        models.Review
			positive bool
		)
		if err := rows.Scan(&r.ID, &r.Content, &positive, &r.UserID, &r.FilmID, &r.Usefulness); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		p := positive
		r.IsPositive = &p
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// UpdateReview replaces content and verdict only; the author and film
// of a review are immutable.
func (db *DB) UpdateReview(ctx context.Context, review *models.Review) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE reviews SET content = ?, is_positive = ? WHERE review_id = ?`,
		review.Content, *review.IsPositive, review.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", models.ErrReviewNotFound, review.ID)
	}
	return nil
}

// DeleteReview removes the review and its votes.
func (db *DB) DeleteReview(ctx context.Context, id int) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE review_id = ?`, id).Scan(&n); err != nil {
			return fmt.Errorf("failed to check review existence: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: id %d", models.ErrReviewNotFound, id)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM review_votes WHERE review_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete review votes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE review_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		return nil
	})
}

// AddReviewVote records a like (isLike true) or dislike vote from
// userID on the review. One vote per (review, user); voting again is a
// conflict.
func (db *DB) AddReviewVote(ctx context.Context, reviewID, userID int, isLike bool) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO review_votes (review_id, user_id, is_like) VALUES (?, ?, ?)`,
		reviewID, userID, isLike)
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.ErrVoteExists
		}
		return fmt.Errorf("failed to insert review vote: %w", err)
	}
	return nil
}

// RemoveReviewVote deletes a vote of the given direction. Removing a
// vote that is not there is a no-op.
func (db *DB) RemoveReviewVote(ctx context.Context, reviewID, userID int, isLike bool) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM review_votes WHERE review_id = ? AND user_id = ? AND is_like = ?`,
		reviewID, userID, isLike)
	if err != nil {
		return fmt.Errorf("failed to delete review vote: %w", err)
	}
	return nil
}
