// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelgraph/reelgraph/internal/config"
	"github.com/reelgraph/reelgraph/internal/models"
)

// testDBSemaphore serializes DuckDB usage across tests. Concurrent
// CGO calls from parallel tests can hang under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

// testDBMutex serializes the New() call itself.
var testDBMutex sync.Mutex

// setupTestDB creates an in-memory database with the full schema and
// seeded catalogs. The semaphore is held for the whole test lifecycle
// so only one test has an active connection at a time.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	}

	testDBMutex.Lock()
	db, err := New(cfg)
	testDBMutex.Unlock()
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db
}

func testFilm(title string, year int) *models.Film {
	return &models.Film{
		Title:       title,
		Description: "test film",
		ReleaseDate: models.NewDate(year, time.June, 15),
		Duration:    120,
		Mpa:         models.Mpa{ID: 3},
		Genres:      []models.Genre{{ID: 2}, {ID: 4}},
	}
}

func testUser(login string) *models.User {
	return &models.User{
		Email:       login + "@example.com",
		Login:       login,
		DisplayName: login,
		Birthday:    models.NewDate(1990, time.January, 1),
	}
}

func TestCatalogSeeding(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	genres, err := db.Genres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 6)
	assert.Equal(t, "Comedy", genres[0].Name)
	assert.Equal(t, "Action", genres[5].Name)

	mpa, err := db.MpaRatings(ctx)
	require.NoError(t, err)
	require.Len(t, mpa, 5)
	assert.Equal(t, "G", mpa[0].Name)
	assert.Equal(t, "NC-17", mpa[4].Name)
}

func TestFilmCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	film := testFilm("The Matrix", 1999)
	require.NoError(t, db.CreateFilm(ctx, film))
	require.Positive(t, film.ID)

	got, err := db.GetFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", got.Title)
	assert.Equal(t, 0, got.Rating)
	assert.Equal(t, "PG-13", got.Mpa.Name)
	require.Len(t, got.Genres, 2)
	assert.Equal(t, "Drama", got.Genres[0].Name)

	got.Description = "updated"
	got.Genres = []models.Genre{{ID: 1}}
	require.NoError(t, db.UpdateFilm(ctx, got))

	got, err = db.GetFilm(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Description)
	require.Len(t, got.Genres, 1)
	assert.Equal(t, "Comedy", got.Genres[0].Name)

	require.NoError(t, db.DeleteFilm(ctx, got.ID))
	_, err = db.GetFilm(ctx, got.ID)
	require.ErrorIs(t, err, models.ErrFilmNotFound)
}

func TestFilmDuplicateAndBadRefs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateFilm(ctx, testFilm("The Matrix", 1999)))

	err := db.CreateFilm(ctx, testFilm("The Matrix", 1999))
	require.ErrorIs(t, err, models.ErrFilmExists)

	badMpa := testFilm("Heat", 1995)
	badMpa.Mpa = models.Mpa{ID: 99}
	require.ErrorIs(t, db.CreateFilm(ctx, badMpa), models.ErrMpaNotFound)

	badGenre := testFilm("Alien", 1979)
	badGenre.Genres = []models.Genre{{ID: 99}}
	require.ErrorIs(t, db.CreateFilm(ctx, badGenre), models.ErrGenreNotFound)
}

func TestLikesDeriveRating(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	film := testFilm("The Matrix", 1999)
	require.NoError(t, db.CreateFilm(ctx, film))
	u1 := testUser("alice")
	u2 := testUser("bob")
	require.NoError(t, db.CreateUser(ctx, u1))
	require.NoError(t, db.CreateUser(ctx, u2))

	require.NoError(t, db.AddLike(ctx, u1.ID, film.ID))
	require.NoError(t, db.AddLike(ctx, u2.ID, film.ID))
	// ON CONFLICT DO NOTHING keeps the insert idempotent.
	require.NoError(t, db.AddLike(ctx, u1.ID, film.ID))

	got, err := db.GetFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rating)

	require.NoError(t, db.RemoveLike(ctx, u1.ID, film.ID))
	require.NoError(t, db.RemoveLike(ctx, u1.ID, film.ID))

	got, err = db.GetFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Rating)

	audience, err := db.UsersWhoLiked(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{u2.ID}, audience)
}

func TestRankedFilmsOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	f1 := testFilm("The Matrix", 1999)
	f2 := testFilm("Heat", 1995)
	f3 := testFilm("Alien", 1979)
	for _, f := range []*models.Film{f1, f2, f3} {
		require.NoError(t, db.CreateFilm(ctx, f))
	}
	u1 := testUser("alice")
	u2 := testUser("bob")
	require.NoError(t, db.CreateUser(ctx, u1))
	require.NoError(t, db.CreateUser(ctx, u2))

	require.NoError(t, db.AddLike(ctx, u1.ID, f2.ID))
	require.NoError(t, db.AddLike(ctx, u2.ID, f2.ID))
	require.NoError(t, db.AddLike(ctx, u1.ID, f3.ID))

	ranked, err := db.RankedFilms(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, f2.ID, ranked[0].ID)
	assert.Equal(t, f3.ID, ranked[1].ID)
	assert.Equal(t, f1.ID, ranked[2].ID)

	// Year facet.
	ranked, err = db.RankedFilms(ctx, 0, 1999)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, f1.ID, ranked[0].ID)

	// Genre facet matching every seeded film.
	ranked, err = db.RankedFilms(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, ranked, 3)
}

func TestUserUniqueEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateUser(ctx, testUser("alice")))

	dup := testUser("alice2")
	dup.Email = "alice@example.com"
	require.ErrorIs(t, db.CreateUser(ctx, dup), models.ErrEmailExists)
}

func TestFriendshipEdges(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u1 := testUser("alice")
	u2 := testUser("bob")
	require.NoError(t, db.CreateUser(ctx, u1))
	require.NoError(t, db.CreateUser(ctx, u2))

	require.NoError(t, db.AddFriend(ctx, u1.ID, u2.ID))
	require.NoError(t, db.AddFriend(ctx, u1.ID, u2.ID))

	friends, err := db.FriendIDs(ctx, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{u2.ID}, friends)

	// The edge is directed.
	friends, err = db.FriendIDs(ctx, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	require.NoError(t, db.RemoveFriend(ctx, u1.ID, u2.ID))
	friends, err = db.FriendIDs(ctx, u1.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestEventAppendAndReplay(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u1 := testUser("alice")
	require.NoError(t, db.CreateUser(ctx, u1))

	first := &models.Event{
		EntityID:  7,
		Type:      models.EventLike,
		Operation: models.OperationAdd,
		UserID:    u1.ID,
	}
	require.NoError(t, db.AppendEvent(ctx, first))
	require.Positive(t, first.ID)
	require.Positive(t, first.Timestamp)

	second := &models.Event{
		EntityID:  7,
		Type:      models.EventLike,
		Operation: models.OperationRemove,
		UserID:    u1.ID,
	}
	require.NoError(t, db.AppendEvent(ctx, second))

	events, err := db.EventsByUser(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.OperationAdd, events[0].Operation)
	assert.Equal(t, models.OperationRemove, events[1].Operation)
	assert.LessOrEqual(t, events[0].Timestamp, events[1].Timestamp)
}

func TestReviewVotesDeriveUsefulness(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	film := testFilm("The Matrix", 1999)
	require.NoError(t, db.CreateFilm(ctx, film))
	u1 := testUser("alice")
	u2 := testUser("bob")
	require.NoError(t, db.CreateUser(ctx, u1))
	require.NoError(t, db.CreateUser(ctx, u2))

	positive := true
	review := &models.Review{
		Content:    "worth watching",
		IsPositive: &positive,
		UserID:     u1.ID,
		FilmID:     film.ID,
	}
	require.NoError(t, db.CreateReview(ctx, review))

	require.NoError(t, db.AddReviewVote(ctx, review.ID, u2.ID, true))

	got, err := db.GetReview(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Usefulness)

	// One vote per user per review.
	require.ErrorIs(t, db.AddReviewVote(ctx, review.ID, u2.ID, false), models.ErrVoteExists)

	require.NoError(t, db.RemoveReviewVote(ctx, review.ID, u2.ID, true))
	got, err = db.GetReview(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Usefulness)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	film := testFilm("The Matrix", 1999)
	require.NoError(t, db.CreateFilm(ctx, film))
	u1 := testUser("alice")
	u2 := testUser("bob")
	require.NoError(t, db.CreateUser(ctx, u1))
	require.NoError(t, db.CreateUser(ctx, u2))

	require.NoError(t, db.AddLike(ctx, u1.ID, film.ID))
	require.NoError(t, db.AddFriend(ctx, u2.ID, u1.ID))

	require.NoError(t, db.DeleteUser(ctx, u1.ID))

	got, err := db.GetFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Rating, "the deleted user's likes disappear")

	friends, err := db.FriendIDs(ctx, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, friends, "edges toward the deleted user disappear")
}
