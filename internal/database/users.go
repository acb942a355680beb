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

// CreateUser inserts a user and assigns the new id. A duplicate email
// is a conflict, not a silent overwrite.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	user.ApplyDefaults()

	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO users (email, login, display_name, birthday)
		 VALUES (?, ?, ?, ?) RETURNING user_id`,
		user.Email, user.Login, user.DisplayName, user.Birthday.Time).
		Scan(&user.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", models.ErrEmailExists, user.Email)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUser returns one user by id.
func (db *DB) GetUser(ctx context.Context, id int) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT user_id, email, login, display_name, birthday FROM users WHERE user_id = ?`, id)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
	}
	return user, err
}

// ListUsers returns all users ordered by id.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, email, login, display_name, birthday FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var (
			u        models.User
			birthday sql.NullTime
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.Login, &u.DisplayName, &birthday); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if birthday.Valid {
			u.Birthday = models.Date{Time: birthday.Time.UTC()}
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UserExists reports whether a user with the given id exists.
func (db *DB) UserExists(ctx context.Context, id int) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE user_id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return n > 0, nil
}

// UpdateUser replaces the user's mutable fields. The id is fixed.
func (db *DB) UpdateUser(ctx context.Context, user *models.User) error {
	user.ApplyDefaults()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET email = ?, login = ?, display_name = ?, birthday = ? WHERE user_id = ?`,
		user.Email, user.Login, user.DisplayName, user.Birthday.Time, user.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", models.ErrEmailExists, user.Email)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", models.ErrUserNotFound, user.ID)
	}
	return nil
}

// DeleteUser removes the user together with every edge referencing
// them: likes, both directions of friendships, review votes, reviews
// and feed events.
func (db *DB) DeleteUser(ctx context.Context, id int) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE user_id = ?`, id).Scan(&n); err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
		}
		for _, stmt := range []string{
			`DELETE FROM likes WHERE user_id = ?`,
			`DELETE FROM friendships WHERE user_id = ? OR friend_id = ?`,
			`DELETE FROM review_votes WHERE user_id = ?`,
			`DELETE FROM review_votes WHERE review_id IN (SELECT review_id FROM reviews WHERE user_id = ?)`,
			`DELETE FROM reviews WHERE user_id = ?`,
			`DELETE FROM events WHERE user_id = ?`,
			`DELETE FROM users WHERE user_id = ?`,
		} {
			args := []interface{}{id}
			if stmt == `DELETE FROM friendships WHERE user_id = ? OR friend_id = ?` {
				args = append(args, id)
			}
			if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
				return fmt.Errorf("failed to cascade user delete: %w", err)
			}
		}
		return nil
	})
}

// AddFriend inserts the directed edge userID -> friendID. The edge is
// one-directional; symmetry is a call-site decision, never implied.
// Inserting an existing edge is a no-op.
func (db *DB) AddFriend(ctx context.Context, userID, friendID int) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO friendships (user_id, friend_id) VALUES (?, ?)
		 ON CONFLICT DO NOTHING`, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to insert friendship: %w", err)
	}
	return nil
}

// RemoveFriend deletes the directed edge userID -> friendID if present.
func (db *DB) RemoveFriend(ctx context.Context, userID, friendID int) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM friendships WHERE user_id = ? AND friend_id = ?`, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}
	return nil
}

// FriendIDs returns the ids of all users that userID follows, ordered
// ascending for determinism.
func (db *DB) FriendIDs(ctx context.Context, userID int) ([]int, error) {
	return db.queryIDs(ctx,
		`SELECT friend_id FROM friendships WHERE user_id = ? ORDER BY friend_id`, userID)
}

// scanUser reads a single user row.
func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u        models.User
		birthday sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Login, &u.DisplayName, &birthday); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if birthday.Valid {
		u.Birthday = models.Date{Time: birthday.Time.UTC()}
	}
	return &u, nil
}

// queryIDs runs a single-column integer query.
func (db *DB) queryIDs(ctx context.Context, query string, args ...interface{}) ([]int, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ids: %w", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
