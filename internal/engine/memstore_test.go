// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/reelgraph/reelgraph/internal/models"
)

// memStore is an in-memory Storage implementation with the same
// observable semantics as the database package: derived ratings and
// usefulness, idempotent edge inserts, and the documented orderings.
type memStore struct {
	films     map[int]*models.Film
	users     map[int]*models.User
	directors map[int]*models.Director
	reviews   map[int]*models.Review
	genres    map[int]string
	mpa       map[int]string

	likes   map[int]map[int]bool // userID -> filmID set
	friends map[int]map[int]bool // userID -> friendID set
	votes   map[int]map[int]bool // reviewID -> userID -> isLike
	events  []models.Event

	nextFilmID     int
	nextUserID     int
	nextDirectorID int
	nextReviewID   int
	nextEventID    int
}

func newMemStore() *memStore {
	return &memStore{
		films:     map[int]*models.Film{},
		users:     map[int]*models.User{},
		directors: map[int]*models.Director{},
		reviews:   map[int]*models.Review{},
		genres: map[int]string{
			1: "Comedy", 2: "Drama", 3: "Cartoon",
			4: "Thriller", 5: "Documentary", 6: "Action",
		},
		mpa: map[int]string{
			1: "G", 2: "PG", 3: "PG-13", 4: "R", 5: "NC-17",
		},
		likes:   map[int]map[int]bool{},
		friends: map[int]map[int]bool{},
		votes:   map[int]map[int]bool{},
	}
}

// --- FilmStore ---

func (s *memStore) CreateFilm(_ context.Context, film *models.Film) error {
	for _, f := range s.films {
		if f.Title == film.Title && f.ReleaseDate.Equal(film.ReleaseDate.Time) {
			return models.ErrFilmExists
		}
	}
	s.nextFilmID++
	film.ID = s.nextFilmID
	film.NormalizeSets()
	cp := *film
	s.films[film.ID] = &cp
	return nil
}

func (s *memStore) GetFilm(_ context.Context, id int) (*models.Film, error) {
	f, ok := s.films[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrFilmNotFound, id)
	}
	cp := *f
	cp.Rating = s.rating(id)
	return &cp, nil
}

func (s *memStore) ListFilms(_ context.Context) ([]models.Film, error) {
	out := []models.Film{}
	for _, f := range s.films {
		cp := *f
		cp.Rating = s.rating(f.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) UpdateFilm(_ context.Context, film *models.Film) error {
	if _, ok := s.films[film.ID]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrFilmNotFound, film.ID)
	}
	film.NormalizeSets()
	cp := *film
	s.films[film.ID] = &cp
	return nil
}

func (s *memStore) DeleteFilm(_ context.Context, id int) error {
	if _, ok := s.films[id]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrFilmNotFound, id)
	}
	delete(s.films, id)
	for _, liked := range s.likes {
		delete(liked, id)
	}
	for rid, r := range s.reviews {
		if r.FilmID == id {
			delete(s.reviews, rid)
			delete(s.votes, rid)
		}
	}
	return nil
}

func (s *memStore) FilmExists(_ context.Context, id int) (bool, error) {
	_, ok := s.films[id]
	return ok, nil
}

func (s *memStore) RankedFilms(ctx context.Context, genreID, year int) ([]models.Film, error) {
	all, _ := s.ListFilms(ctx)
	out := []models.Film{}
	for _, f := range all {
		if genreID > 0 && !f.HasGenre(genreID) {
			continue
		}
		if year > 0 && f.ReleaseYear() != year {
			continue
		}
		out = append(out, f)
	}
	sortByRating(out)
	return out, nil
}

func (s *memStore) FilmsByDirector(ctx context.Context, directorID int, byYear bool) ([]models.Film, error) {
	all, _ := s.ListFilms(ctx)
	out := []models.Film{}
	for _, f := range all {
		for _, d := range f.Directors {
			if d.ID == directorID {
				out = append(out, f)
				break
			}
		}
	}
	if byYear {
		sort.Slice(out, func(i, j int) bool {
			return out[i].ReleaseDate.Before(out[j].ReleaseDate.Time)
		})
	} else {
		sortByRating(out)
	}
	return out, nil
}

func (s *memStore) FilmsByIDs(ctx context.Context, ids []int) ([]models.Film, error) {
	out := []models.Film{}
	for _, id := range ids {
		if f, err := s.GetFilm(ctx, id); err == nil {
			out = append(out, *f)
		}
	}
	sortByRating(out)
	return out, nil
}

func (s *memStore) rating(filmID int) int {
	n := 0
	for _, liked := range s.likes {
		if liked[filmID] {
			n++
		}
	}
	return n
}

func sortByRating(films []models.Film) {
	sort.Slice(films, func(i, j int) bool {
		if films[i].Rating != films[j].Rating {
			return films[i].Rating > films[j].Rating
		}
		return films[i].ID < films[j].ID
	})
}

// --- UserStore ---

func (s *memStore) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return models.ErrEmailExists
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memStore) GetUser(_ context.Context, id int) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) ListUsers(_ context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrUserNotFound, user.ID)
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memStore) DeleteUser(_ context.Context, id int) error {
	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
	}
	delete(s.users, id)
	delete(s.likes, id)
	delete(s.friends, id)
	for _, set := range s.friends {
		delete(set, id)
	}
	for rid, r := range s.reviews {
		if r.UserID == id {
			delete(s.reviews, rid)
			delete(s.votes, rid)
		}
	}
	for _, votes := range s.votes {
		delete(votes, id)
	}
	kept := s.events[:0]
	for _, ev := range s.events {
		if ev.UserID != id {
			kept = append(kept, ev)
		}
	}
	s.events = kept
	return nil
}

func (s *memStore) UserExists(_ context.Context, id int) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

// --- LikeStore ---

func (s *memStore) AddLike(_ context.Context, userID, filmID int) error {
	if s.likes[userID] == nil {
		s.likes[userID] = map[int]bool{}
	}
	s.likes[userID][filmID] = true
	return nil
}

func (s *memStore) RemoveLike(_ context.Context, userID, filmID int) error {
	delete(s.likes[userID], filmID)
	return nil
}

func (s *memStore) LikedFilmIDs(_ context.Context, userID int) ([]int, error) {
	return sortedKeys(s.likes[userID]), nil
}

func (s *memStore) UsersWhoLiked(_ context.Context, filmID int) ([]int, error) {
	out := []int{}
	for userID, liked := range s.likes {
		if liked[filmID] {
			out = append(out, userID)
		}
	}
	sort.Ints(out)
	return out, nil
}

// --- FriendStore ---

func (s *memStore) AddFriend(_ context.Context, userID, friendID int) error {
	if s.friends[userID] == nil {
		s.friends[userID] = map[int]bool{}
	}
	s.friends[userID][friendID] = true
	return nil
}

func (s *memStore) RemoveFriend(_ context.Context, userID, friendID int) error {
	delete(s.friends[userID], friendID)
	return nil
}

func (s *memStore) FriendIDs(_ context.Context, userID int) ([]int, error) {
	return sortedKeys(s.friends[userID]), nil
}

func sortedKeys(set map[int]bool) []int {
	out := []int{}
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// --- EventStore ---

func (s *memStore) AppendEvent(_ context.Context, event *models.Event) error {
	s.nextEventID++
	event.ID = s.nextEventID
	event.Timestamp = time.Now().UnixMilli()
	s.events = append(s.events, *event)
	return nil
}

func (s *memStore) EventsByUser(_ context.Context, userID int) ([]models.Event, error) {
	out := []models.Event{}
	for _, ev := range s.events {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// --- ReviewStore ---

func (s *memStore) CreateReview(_ context.Context, review *models.Review) error {
	s.nextReviewID++
	review.ID = s.nextReviewID
	cp := *review
	s.reviews[review.ID] = &cp
	return nil
}

func (s *memStore) GetReview(_ context.Context, id int) (*models.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrReviewNotFound, id)
	}
	cp := *r
	cp.Usefulness = s.usefulness(id)
	return &cp, nil
}

func (s *memStore) ListReviews(ctx context.Context, filmID, count int) ([]models.Review, error) {
	out := []models.Review{}
	for id, r := range s.reviews {
		if filmID > 0 && r.FilmID != filmID {
			continue
		}
		cp := *r
		cp.Usefulness = s.usefulness(id)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Usefulness != out[j].Usefulness {
			return out[i].Usefulness > out[j].Usefulness
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > count {
		out = out[:count]
	}
	return out, nil
}

func (s *memStore) UpdateReview(_ context.Context, review *models.Review) error {
	if _, ok := s.reviews[review.ID]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrReviewNotFound, review.ID)
	}
	cp := *review
	s.reviews[review.ID] = &cp
	return nil
}

func (s *memStore) DeleteReview(_ context.Context, id int) error {
	if _, ok := s.reviews[id]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrReviewNotFound, id)
	}
	delete(s.reviews, id)
	delete(s.votes, id)
	return nil
}

func (s *memStore) AddReviewVote(_ context.Context, reviewID, userID int, isLike bool) error {
	if s.votes[reviewID] == nil {
		s.votes[reviewID] = map[int]bool{}
	}
	if _, voted := s.votes[reviewID][userID]; voted {
		return models.ErrVoteExists
	}
	s.votes[reviewID][userID] = isLike
	return nil
}

func (s *memStore) RemoveReviewVote(_ context.Context, reviewID, userID int, isLike bool) error {
	if stored, voted := s.votes[reviewID][userID]; voted && stored == isLike {
		delete(s.votes[reviewID], userID)
	}
	return nil
}

func (s *memStore) usefulness(reviewID int) int {
	n := 0
	for _, isLike := range s.votes[reviewID] {
		if isLike {
			n++
		} else {
			n--
		}
	}
	return n
}

// --- DirectorStore ---

func (s *memStore) CreateDirector(_ context.Context, director *models.Director) error {
	s.nextDirectorID++
	director.ID = s.nextDirectorID
	cp := *director
	s.directors[director.ID] = &cp
	return nil
}

func (s *memStore) GetDirector(_ context.Context, id int) (*models.Director, error) {
	d, ok := s.directors[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrDirectorNotFound, id)
	}
	cp := *d
	return &cp, nil
}

func (s *memStore) ListDirectors(_ context.Context) ([]models.Director, error) {
	out := []models.Director{}
	for _, d := range s.directors {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) UpdateDirector(_ context.Context, director *models.Director) error {
	if _, ok := s.directors[director.ID]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrDirectorNotFound, director.ID)
	}
	cp := *director
	s.directors[director.ID] = &cp
	return nil
}

func (s *memStore) DeleteDirector(_ context.Context, id int) error {
	if _, ok := s.directors[id]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrDirectorNotFound, id)
	}
	delete(s.directors, id)
	for _, f := range s.films {
		kept := f.Directors[:0]
		for _, d := range f.Directors {
			if d.ID != id {
				kept = append(kept, d)
			}
		}
		f.Directors = kept
	}
	return nil
}

func (s *memStore) DirectorExists(_ context.Context, id int) (bool, error) {
	_, ok := s.directors[id]
	return ok, nil
}

// --- CatalogStore ---

func (s *memStore) Genres(_ context.Context) ([]models.Genre, error) {
	out := []models.Genre{}
	for id, name := range s.genres {
		out = append(out, models.Genre{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GenreByID(_ context.Context, id int) (*models.Genre, error) {
	name, ok := s.genres[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrGenreNotFound, id)
	}
	return &models.Genre{ID: id, Name: name}, nil
}

func (s *memStore) MpaRatings(_ context.Context) ([]models.Mpa, error) {
	out := []models.Mpa{}
	for id, name := range s.mpa {
		out = append(out, models.Mpa{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) MpaByID(_ context.Context, id int) (*models.Mpa, error) {
	name, ok := s.mpa[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrMpaNotFound, id)
	}
	return &models.Mpa{ID: id, Name: name}, nil
}

// --- test fixtures ---

// newTestEngine returns an engine over a fresh in-memory store.
func newTestEngine() (*Engine, *memStore) {
	store := newMemStore()
	return New(store), store
}

// seedFilm inserts a film with the given title, release year and
// optional directors.
func seedFilm(s *memStore, title string, year int, directors ...models.Director) *models.Film {
	film := &models.Film{
		Title:       title,
		Description: "test film",
		ReleaseDate: models.NewDate(year, 6, 15),
		Duration:    100,
		Mpa:         models.Mpa{ID: 1},
		Directors:   directors,
	}
	if err := s.CreateFilm(context.Background(), film); err != nil {
		panic(err)
	}
	return film
}

// seedUser inserts a user with a derived unique email and login.
func seedUser(s *memStore, login string) *models.User {
	user := &models.User{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: models.NewDate(1990, 1, 1),
	}
	user.ApplyDefaults()
	if err := s.CreateUser(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}
