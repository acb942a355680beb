// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelgraph/reelgraph/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func seedReview(t *testing.T, e *Engine, userID, filmID int, positive bool) *models.Review {
	t.Helper()
	review, err := e.AddReview(context.Background(), &models.Review{
		Content:    "worth watching",
		IsPositive: boolPtr(positive),
		UserID:     userID,
		FilmID:     filmID,
	})
	require.NoError(t, err)
	return review
}

func TestAddReview(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	f1 := seedFilm(store, "The Matrix", 1999)
	u1 := seedUser(store, "alice")

	review := seedReview(t, engine, u1.ID, f1.ID, true)
	assert.Positive(t, review.ID)
	assert.Equal(t, 0, review.Usefulness)

	feed, err := engine.Feed(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.EventReview, feed[0].Type)
	assert.Equal(t, models.OperationAdd, feed[0].Operation)
	assert.Equal(t, review.ID, feed[0].EntityID)
}

func TestAddReviewValidation(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	f1 := seedFilm(store, "The Matrix", 1999)
	u1 := seedUser(store, "alice")

	tests := []struct {
		name    string
		review  models.Review
		wantErr error
	}{
		{
			"missing verdict",
			models.Review{Content: "fine", UserID: u1.ID, FilmID: f1.ID},
			models.ErrInvalidArgument,
		},
		{
			"blank content",
			models.Review{Content: "   ", IsPositive: boolPtr(true), UserID: u1.ID, FilmID: f1.ID},
			models.ErrInvalidArgument,
		},
		{
			"unknown film",
			models.Review{Content: "fine", IsPositive: boolPtr(true), UserID: u1.ID, FilmID: 999},
			models.ErrFilmNotFound,
		},
		{
			"unknown author",
			models.Review{Content: "fine", IsPositive: boolPtr(true), UserID: 999, FilmID: f1.ID},
			models.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.AddReview(ctx, &tt.review)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateReviewKeepsAuthorAndFilm(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	f1 := seedFilm(store, "The Matrix", 1999)
	f2 := seedFilm(store, "Heat", 1995)
	u1 := seedUser(store, "alice")
	u2 := seedUser(store, "bob")

	review := seedReview(t, engine, u1.ID, f1.ID, true)

	updated, err := engine.UpdateReview(ctx, &models.Review{
		ID:         review.ID,
		Content:    "changed my mind",
		IsPositive: boolPtr(false),
		UserID:     u2.ID, // must be ignored
		FilmID:     f2.ID, // must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, "changed my mind", updated.Content)
	assert.False(t, *updated.IsPositive)
	assert.Equal(t, u1.ID, updated.UserID)
	assert.Equal(t, f1.ID, updated.FilmID)

	// The update event belongs to the original author.
	feed, err := engine.Feed(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, models.OperationUpdate, feed[1].Operation)
}

func TestDeleteReview(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	f1 := seedFilm(store, "The Matrix", 1999)
	u1 := seedUser(store, "alice")

	review := seedReview(t, engine, u1.ID, f1.ID, true)
	require.NoError(t, engine.DeleteReview(ctx, review.ID))

	_, err := engine.GetReview(ctx, review.ID)
	require.ErrorIs(t, err, models.ErrReviewNotFound)

	require.ErrorIs(t, engine.DeleteReview(ctx, review.ID), models.ErrReviewNotFound)

	feed, err := engine.Feed(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, models.OperationRemove, feed[1].Operation)
}

func TestReviewVotes(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	f1 := seedFilm(store, "The Matrix", 1999)
	u1 := seedUser(store, "alice")
	u2 := seedUser(store, "bob")
	u3 := seedUser(store, "carol")

	review := seedReview(t, engine, u1.ID, f1.ID, true)

	got, err := engine.LikeReview(ctx, review.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Usefulness)

	got, err = engine.DislikeReview(ctx, review.ID, u3.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Usefulness)

	// One vote per user per review.
	_, err = engine.DislikeReview(ctx, review.ID, u2.ID)
	require.ErrorIs(t, err, models.ErrVoteExists)

	// Withdrawing the wrong vote kind is a no-op.
	got, err = engine.UnlikeReview(ctx, review.ID, u3.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Usefulness)

	got, err = engine.UndislikeReview(ctx, review.ID, u3.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Usefulness)

	got, err = engine.UnlikeReview(ctx, review.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Usefulness)
}

func TestReviewVoteRequiresReviewAndUser(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	f1 := seedFilm(store, "The Matrix", 1999)
	u1 := seedUser(store, "alice")

	review := seedReview(t, engine, u1.ID, f1.ID, true)

	_, err := engine.LikeReview(ctx, 999, u1.ID)
	require.ErrorIs(t, err, models.ErrReviewNotFound)

	_, err = engine.LikeReview(ctx, review.ID, 999)
	require.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestReviewsListing(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	f1 := seedFilm(store, "The Matrix", 1999)
	f2 := seedFilm(store, "Heat", 1995)
	u1 := seedUser(store, "alice")
	u2 := seedUser(store, "bob")

	r1 := seedReview(t, engine, u1.ID, f1.ID, true)
	r2 := seedReview(t, engine, u2.ID, f1.ID, false)
	seedReview(t, engine, u1.ID, f2.ID, true)

	// r2 becomes the most useful review.
	_, err := engine.LikeReview(ctx, r2.ID, u1.ID)
	require.NoError(t, err)

	reviews, err := engine.Reviews(ctx, f1.ID, 10)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, r2.ID, reviews[0].ID)
	assert.Equal(t, r1.ID, reviews[1].ID)

	// filmID zero lists across all films; count caps the result.
	reviews, err = engine.Reviews(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	reviews, err = engine.Reviews(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 3, "non-positive count falls back to the default cap")

	_, err = engine.Reviews(ctx, 999, 10)
	require.ErrorIs(t, err, models.ErrFilmNotFound)
}
