// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Package engine implements the ranking and recommendation core on top
// of an injected storage abstraction.
//
// The engine owns all cross-entity rules: existence checks before edge
// mutations, the ranked-film ordering contract, text search semantics,
// the nearest-neighbor recommendation heuristic and the activity feed.
// Storage stays a set of narrow data-access interfaces so the engine
// tests run against an in-memory fake without the embedded database.
package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/metrics"
	"github.com/reelgraph/reelgraph/internal/models"
)

// FilmStore provides film lookup, listing and mutation.
type FilmStore interface {
	CreateFilm(ctx context.Context, film *models.Film) error
	GetFilm(ctx context.Context, id int) (*models.Film, error)
	ListFilms(ctx context.Context) ([]models.Film, error)
	UpdateFilm(ctx context.Context, film *models.Film) error
	DeleteFilm(ctx context.Context, id int) error
	FilmExists(ctx context.Context, id int) (bool, error)

	// RankedFilms returns films ordered by rating descending, ties by
	// ascending film id. genreID and year are optional facets; zero
	// disables a facet.
	RankedFilms(ctx context.Context, genreID, year int) ([]models.Film, error)

	// FilmsByDirector orders by release date ascending when byYear is
	// true, otherwise by rating descending.
	FilmsByDirector(ctx context.Context, directorID int, byYear bool) ([]models.Film, error)

	// FilmsByIDs resolves ids to full records ordered by rating
	// descending then film id.
	FilmsByIDs(ctx context.Context, ids []int) ([]models.Film, error)
}

// UserStore provides user lookup, listing and mutation.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int) error
	UserExists(ctx context.Context, id int) (bool, error)
}

// LikeStore provides like-edge access over the bipartite user-film
// relation.
type LikeStore interface {
	AddLike(ctx context.Context, userID, filmID int) error
	RemoveLike(ctx context.Context, userID, filmID int) error
	LikedFilmIDs(ctx context.Context, userID int) ([]int, error)
	UsersWhoLiked(ctx context.Context, filmID int) ([]int, error)
}

// FriendStore provides directed friendship-edge access.
type FriendStore interface {
	AddFriend(ctx context.Context, userID, friendID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) error
	FriendIDs(ctx context.Context, userID int) ([]int, error)
}

// EventStore appends and replays activity-feed events.
type EventStore interface {
	AppendEvent(ctx context.Context, event *models.Event) error
	EventsByUser(ctx context.Context, userID int) ([]models.Event, error)
}

// ReviewStore provides review and review-vote access.
type ReviewStore interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, id int) (*models.Review, error)
	ListReviews(ctx context.Context, filmID, count int) ([]models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id int) error
	AddReviewVote(ctx context.Context, reviewID, userID int, isLike bool) error
	RemoveReviewVote(ctx context.Context, reviewID, userID int, isLike bool) error
}

// DirectorStore provides director lookup, listing and mutation.
type DirectorStore interface {
	CreateDirector(ctx context.Context, director *models.Director) error
	GetDirector(ctx context.Context, id int) (*models.Director, error)
	ListDirectors(ctx context.Context) ([]models.Director, error)
	UpdateDirector(ctx context.Context, director *models.Director) error
	DeleteDirector(ctx context.Context, id int) error
	DirectorExists(ctx context.Context, id int) (bool, error)
}

// CatalogStore provides the fixed genre and MPA catalogs.
type CatalogStore interface {
	Genres(ctx context.Context) ([]models.Genre, error)
	GenreByID(ctx context.Context, id int) (*models.Genre, error)
	MpaRatings(ctx context.Context) ([]models.Mpa, error)
	MpaByID(ctx context.Context, id int) (*models.Mpa, error)
}

// Storage is the full storage surface the engine consumes. The
// database package satisfies it; tests use an in-memory fake.
type Storage interface {
	FilmStore
	UserStore
	LikeStore
	FriendStore
	EventStore
	ReviewStore
	DirectorStore
	CatalogStore
}

// Engine is the ranking, recommendation and social-graph core.
type Engine struct {
	store Storage
	log   zerolog.Logger
}

// New creates an Engine over the given storage.
func New(store Storage) *Engine {
	return &Engine{
		store: store,
		log:   logging.With().Str("component", "engine").Logger(),
	}
}

// requireUser returns ErrUserNotFound when the id is absent.
func (e *Engine) requireUser(ctx context.Context, id int) error {
	ok, err := e.store.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
	}
	return nil
}

// requireFilm returns ErrFilmNotFound when the id is absent.
func (e *Engine) requireFilm(ctx context.Context, id int) error {
	ok, err := e.store.FilmExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: id %d", models.ErrFilmNotFound, id)
	}
	return nil
}

// recordEvent appends one feed event for an already-validated actor.
func (e *Engine) recordEvent(ctx context.Context, entityID int, typ models.EventType, op models.EventOperation, userID int) error {
	event := &models.Event{
		EntityID:  entityID,
		Type:      typ,
		Operation: op,
		UserID:    userID,
	}
	if err := e.store.AppendEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to record %s/%s event: %w", typ, op, err)
	}
	metrics.RecordFeedEvent(string(typ), string(op))
	return nil
}
