// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package models

import "errors"

// Domain errors shared by the engine, the storage layer and the API.
// Handlers map them to HTTP statuses with errors.Is: NotFound family
// to 404, AlreadyExists family to 409, ErrInvalidArgument to 400,
// everything else to 500.
var (
	ErrFilmNotFound     = errors.New("film not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDirectorNotFound = errors.New("director not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrMpaNotFound      = errors.New("mpa rating not found")
	ErrReviewNotFound   = errors.New("review not found")

	ErrFilmExists  = errors.New("film with this title and release date already exists")
	ErrEmailExists = errors.New("user with this email already exists")
	ErrVoteExists  = errors.New("user already voted on this review")

	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFound reports whether err belongs to the NotFound family.
func NotFound(err error) bool {
	return errors.Is(err, ErrFilmNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrDirectorNotFound) ||
		errors.Is(err, ErrGenreNotFound) ||
		errors.Is(err, ErrMpaNotFound) ||
		errors.Is(err, ErrReviewNotFound)
}

// Conflict reports whether err belongs to the AlreadyExists family.
func Conflict(err error) bool {
	return errors.Is(err, ErrFilmExists) ||
		errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrVoteExists)
}
