// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package models

// Review is a user's written opinion on a film. UserID and FilmID are
// immutable once set; updates replace only Content and IsPositive.
// Usefulness starts at 0 and moves by one for every like/dislike vote
// from other users; like rating, it is derived from the vote table on
// read rather than kept as a mutable counter.
type Review struct {
	ID         int    `json:"review_id"`
	Content    string `json:"content" validate:"required,notblank"`
	IsPositive *bool  `json:"is_positive" validate:"required"`
	UserID     int    `json:"user_id" validate:"required"`
	FilmID     int    `json:"film_id" validate:"required"`
	Usefulness int    `json:"usefulness"`
}
