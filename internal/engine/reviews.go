// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package engine

import (
	"context"

	"github.com/reelgraph/reelgraph/internal/models"
	"github.com/reelgraph/reelgraph/internal/validation"
)

// defaultReviewCount caps review listings when the caller does not ask
// for a specific count.
const defaultReviewCount = 10

// AddReview validates and creates a review; the author and film must
// exist. Records a REVIEW/ADD feed event for the author.
func (e *Engine) AddReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := validation.ValidateStruct(review); err != nil {
		return nil, err
	}
	if err := e.requireFilm(ctx, review.FilmID); err != nil {
		return nil, err
	}
	if err := e.requireUser(ctx, review.UserID); err != nil {
		return nil, err
	}
	if err := e.store.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	if err := e.recordEvent(ctx, review.ID, models.EventReview, models.OperationAdd, review.UserID); err != nil {
		return nil, err
	}
	return review, nil
}

// GetReview returns one review by id.
func (e *Engine) GetReview(ctx context.Context, id int) (*models.Review, error) {
	return e.store.GetReview(ctx, id)
}

// Reviews lists reviews ordered by usefulness descending. filmID of
// zero lists across all films; count <= 0 applies the default cap.
func (e *Engine) Reviews(ctx context.Context, filmID, count int) ([]models.Review, error) {
	if filmID > 0 {
		if err := e.requireFilm(ctx, filmID); err != nil {
			return nil, err
		}
	}
	if count <= 0 {
		count = defaultReviewCount
	}
	return e.store.ListReviews(ctx, filmID, count)
}

// UpdateReview replaces the review's content and verdict. The author
// and film are immutable; whatever the caller sends for them is
// ignored in favor of the stored values. Records REVIEW/UPDATE for the
// original author.
func (e *Engine) UpdateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	existing, err := e.store.GetReview(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	review.UserID = existing.UserID
	review.FilmID = existing.FilmID
	if err := validation.ValidateStruct(review); err != nil {
		return nil, err
	}
	if err := e.store.UpdateReview(ctx, review); err != nil {
		return nil, err
	}
	if err := e.recordEvent(ctx, review.ID, models.EventReview, models.OperationUpdate, existing.UserID); err != nil {
		return nil, err
	}
	return e.store.GetReview(ctx, review.ID)
}

// DeleteReview removes the review and its votes, recording
// REVIEW/REMOVE for the author.
func (e *Engine) DeleteReview(ctx context.Context, id int) error {
	existing, err := e.store.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if err := e.store.DeleteReview(ctx, id); err != nil {
		return err
	}
	return e.recordEvent(ctx, id, models.EventReview, models.OperationRemove, existing.UserID)
}

// LikeReview records a usefulness upvote from userID.
func (e *Engine) LikeReview(ctx context.Context, reviewID, userID int) (*models.Review, error) {
	return e.voteReview(ctx, reviewID, userID, true, true)
}

// DislikeReview records a usefulness downvote from userID.
func (e *Engine) DislikeReview(ctx context.Context, reviewID, userID int) (*models.Review, error) {
	return e.voteReview(ctx, reviewID, userID, false, true)
}

// UnlikeReview withdraws an upvote; absent votes are a no-op.
func (e *Engine) UnlikeReview(ctx context.Context, reviewID, userID int) (*models.Review, error) {
	return e.voteReview(ctx, reviewID, userID, true, false)
}

// UndislikeReview withdraws a downvote; absent votes are a no-op.
func (e *Engine) UndislikeReview(ctx context.Context, reviewID, userID int) (*models.Review, error) {
	return e.voteReview(ctx, reviewID, userID, false, false)
}

func (e *Engine) voteReview(ctx context.Context, reviewID, userID int, isLike, add bool) (*models.Review, error) {
	if _, err := e.store.GetReview(ctx, reviewID); err != nil {
		return nil, err
	}
	if err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	var err error
	if add {
		err = e.store.AddReviewVote(ctx, reviewID, userID, isLike)
	} else {
		err = e.store.RemoveReviewVote(ctx, reviewID, userID, isLike)
	}
	if err != nil {
		return nil, err
	}
	return e.store.GetReview(ctx, reviewID)
}
