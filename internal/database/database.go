// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Package database implements the storage layer on embedded DuckDB.
//
// The like graph, social graph, event log and catalog all live in one
// database file (or fully in memory for tests). Film rating and review
// usefulness are never stored: both are derived on read by aggregating
// over the likes and review_votes tables, which removes the
// counter-update race entirely.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/reelgraph/reelgraph/internal/config"
	"github.com/reelgraph/reelgraph/internal/logging"
)

// DB wraps the DuckDB connection and provides data access methods.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the database and initializes the schema and seed catalogs.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for file-backed databases.
	// 0750 per gosec G301.
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, numThreads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Int("threads", numThreads).Msg("Database ready")
	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// initialize creates the schema and seeds the fixed catalogs.
func (db *DB) initialize() error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return db.seedCatalogs()
}

// schemaStatements create all tables and id sequences. Statements are
// idempotent so reopening an existing database file is safe.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS film_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS user_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS director_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS review_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS event_id_seq START 1`,

	`CREATE TABLE IF NOT EXISTS mpa_ratings (
		mpa_id INTEGER PRIMARY KEY,
		mpa_name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		genre_id INTEGER PRIMARY KEY,
		genre_name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS films (
		film_id INTEGER PRIMARY KEY DEFAULT nextval('film_id_seq'),
		title VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT '',
		release_date DATE NOT NULL,
		duration_minutes INTEGER NOT NULL,
		mpa_id INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS film_genres (
		film_id INTEGER NOT NULL,
		genre_id INTEGER NOT NULL,
		PRIMARY KEY (film_id, genre_id)
	)`,
	`CREATE TABLE IF NOT EXISTS directors (
		director_id INTEGER PRIMARY KEY DEFAULT nextval('director_id_seq'),
		director_name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS film_directors (
		film_id INTEGER NOT NULL,
		director_id INTEGER NOT NULL,
		PRIMARY KEY (film_id, director_id)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id INTEGER PRIMARY KEY DEFAULT nextval('user_id_seq'),
		email VARCHAR NOT NULL UNIQUE,
		login VARCHAR NOT NULL,
		display_name VARCHAR NOT NULL,
		birthday DATE
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		user_id INTEGER NOT NULL,
		film_id INTEGER NOT NULL,
		PRIMARY KEY (user_id, film_id)
	)`,
	`CREATE TABLE IF NOT EXISTS friendships (
		user_id INTEGER NOT NULL,
		friend_id INTEGER NOT NULL,
		PRIMARY KEY (user_id, friend_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		review_id INTEGER PRIMARY KEY DEFAULT nextval('review_id_seq'),
		content VARCHAR NOT NULL,
		is_positive BOOLEAN NOT NULL,
		user_id INTEGER NOT NULL,
		film_id INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS review_votes (
		review_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		is_like BOOLEAN NOT NULL,
		PRIMARY KEY (review_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		event_id INTEGER PRIMARY KEY DEFAULT nextval('event_id_seq'),
		user_id INTEGER NOT NULL,
		entity_id INTEGER NOT NULL,
		event_type VARCHAR NOT NULL,
		operation VARCHAR NOT NULL,
		event_ts BIGINT NOT NULL
	)`,
}

// withTx runs fn inside a transaction, committing on nil error and
// rolling back otherwise. Every multi-statement mutation goes through
// this so readers never observe a half-applied write.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Err(rbErr).Msg("Transaction rollback failed")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueConstraintError reports whether err is a unique/primary key
// constraint violation from DuckDB.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "primary key")
}

// closeQuietly closes c, logging (not returning) any error.
func closeQuietly(c interface{ Close() error }) {
	if err := c.Close(); err != nil {
		logging.Err(err).Msg("Failed to close database connection")
	}
}

// placeholders returns "?, ?, ..." for n parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
