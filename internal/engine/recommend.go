// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package engine

import (
	"context"

	"github.com/reelgraph/reelgraph/internal/models"
)

// minSharedLikes is the similarity threshold for a candidate neighbor:
// a single film in common is not considered significant.
const minSharedLikes = 2

// Recommendations proposes films for the user with the most-similar-
// neighbor heuristic:
//
//  1. L(u) is the set of films the target user liked.
//  2. Candidate neighbors are every other user v with
//     |L(u) ∩ L(v)| >= minSharedLikes.
//  3. The single best candidate by shared-like count wins; which one
//     wins a tied count is unspecified.
//  4. The result is L(v) \ L(u) resolved to full film records, or
//     empty when no candidate exists.
//
// This is deliberately a one-neighbor heuristic: cheap to compute and
// easy to explain to the user, at the cost of stability when one
// dominant neighbor swings all recommendations.
func (e *Engine) Recommendations(ctx context.Context, userID int) ([]models.Film, error) {
	if err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	liked, err := e.store.LikedFilmIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(liked) == 0 {
		return []models.Film{}, nil
	}

	// Count shared likes per co-liking user by walking each liked
	// film's audience. Only users overlapping L(u) can be candidates,
	// so this never touches the rest of the user base.
	shared := map[int]int{}
	for _, filmID := range liked {
		audience, err := e.store.UsersWhoLiked(ctx, filmID)
		if err != nil {
			return nil, err
		}
		for _, v := range audience {
			if v != userID {
				shared[v]++
			}
		}
	}

	neighbor, best := 0, 0
	for v, n := range shared {
		if n >= minSharedLikes && n > best {
			neighbor, best = v, n
		}
	}
	if neighbor == 0 {
		return []models.Film{}, nil
	}

	neighborLiked, err := e.store.LikedFilmIDs(ctx, neighbor)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(liked))
	for _, id := range liked {
		seen[id] = true
	}
	fresh := []int{}
	for _, id := range neighborLiked {
		if !seen[id] {
			fresh = append(fresh, id)
		}
	}

	e.log.Debug().Int("user_id", userID).Int("neighbor_id", neighbor).
		Int("shared_likes", best).Int("candidates", len(fresh)).
		Msg("recommendations computed")

	return e.store.FilmsByIDs(ctx, fresh)
}
