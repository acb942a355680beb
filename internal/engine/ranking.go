// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/reelgraph/reelgraph/internal/models"
)

// Sort keys accepted by FilmsByDirector.
const (
	SortByYear  = "year"
	SortByLikes = "likes"
)

// AddLike records that userID endorses filmID. Both endpoints must
// exist. Liking a film twice has no additional effect on the like
// graph; the feed still records each call.
func (e *Engine) AddLike(ctx context.Context, userID, filmID int) error {
	if err := e.requireFilm(ctx, filmID); err != nil {
		return err
	}
	if err := e.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := e.store.AddLike(ctx, userID, filmID); err != nil {
		return err
	}
	e.log.Debug().Int("user_id", userID).Int("film_id", filmID).Msg("like added")
	return e.recordEvent(ctx, filmID, models.EventLike, models.OperationAdd, userID)
}

// RemoveLike withdraws the endorsement. Removing a like that does not
// exist leaves the like graph unchanged and is not an error.
func (e *Engine) RemoveLike(ctx context.Context, userID, filmID int) error {
	if err := e.requireFilm(ctx, filmID); err != nil {
		return err
	}
	if err := e.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := e.store.RemoveLike(ctx, userID, filmID); err != nil {
		return err
	}
	e.log.Debug().Int("user_id", userID).Int("film_id", filmID).Msg("like removed")
	return e.recordEvent(ctx, filmID, models.EventLike, models.OperationRemove, userID)
}

// TopFilms returns up to count films ordered by rating descending,
// ties broken by ascending film id. genreID and year are optional
// facets (zero disables one); both set means the intersection.
// count <= 0 yields an empty result; a count beyond the catalog size
// returns the whole (filtered) catalog. Facet values matching nothing
// yield an empty result, not an error.
func (e *Engine) TopFilms(ctx context.Context, count, genreID, year int) ([]models.Film, error) {
	if count <= 0 {
		return []models.Film{}, nil
	}
	films, err := e.store.RankedFilms(ctx, genreID, year)
	if err != nil {
		return nil, err
	}
	if len(films) > count {
		films = films[:count]
	}
	return films, nil
}

// FilmsByDirector returns the director's films: sortBy "year" orders
// by release date ascending, "likes" by rating descending. Any other
// sort key is a validation error and an unknown director is NotFound.
func (e *Engine) FilmsByDirector(ctx context.Context, directorID int, sortBy string) ([]models.Film, error) {
	if sortBy != SortByYear && sortBy != SortByLikes {
		return nil, fmt.Errorf("%w: sortBy must be %q or %q, got %q",
			models.ErrInvalidArgument, SortByYear, SortByLikes, sortBy)
	}
	ok, err := e.store.DirectorExists(ctx, directorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrDirectorNotFound, directorID)
	}
	return e.store.FilmsByDirector(ctx, directorID, sortBy == SortByYear)
}

// SearchFilms matches films whose title and/or director name contains
// query, case-insensitively. by selects the fields: "title",
// "director", or both comma-separated in either order (combined mode
// is a logical OR). Results come most-liked first, ties broken by
// ascending film id. An unsupported by value is a validation error.
func (e *Engine) SearchFilms(ctx context.Context, query, by string) ([]models.Film, error) {
	byTitle, byDirector, err := parseSearchFields(by)
	if err != nil {
		return nil, err
	}

	films, err := e.store.ListFilms(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := []models.Film{}
	for _, f := range films {
		if byTitle && strings.Contains(strings.ToLower(f.Title), needle) {
			matched = append(matched, f)
			continue
		}
		if byDirector && directorMatches(&f, needle) {
			matched = append(matched, f)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Rating != matched[j].Rating {
			return matched[i].Rating > matched[j].Rating
		}
		return matched[i].ID < matched[j].ID
	})
	return matched, nil
}

// parseSearchFields resolves the by parameter into field flags.
func parseSearchFields(by string) (byTitle, byDirector bool, err error) {
	for _, field := range strings.Split(by, ",") {
		switch strings.TrimSpace(field) {
		case "title":
			byTitle = true
		case "director":
			byDirector = true
		default:
			return false, false, fmt.Errorf(
				"%w: by must be title, director or both, got %q", models.ErrInvalidArgument, by)
		}
	}
	return byTitle, byDirector, nil
}

func directorMatches(f *models.Film, needle string) bool {
	for _, d := range f.Directors {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			return true
		}
	}
	return false
}

// CommonFilms returns the films both users liked, most-liked first.
func (e *Engine) CommonFilms(ctx context.Context, userID, friendID int) ([]models.Film, error) {
	if err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := e.requireUser(ctx, friendID); err != nil {
		return nil, err
	}

	mine, err := e.store.LikedFilmIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := e.store.LikedFilmIDs(ctx, friendID)
	if err != nil {
		return nil, err
	}

	return e.store.FilmsByIDs(ctx, intersect(mine, theirs))
}

// intersect returns the values present in both slices, preserving the
// order of a.
func intersect(a, b []int) []int {
	inB := make(map[int]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	out := []int{}
	for _, v := range a {
		if inB[v] {
			out = append(out, v)
		}
	}
	return out
}
