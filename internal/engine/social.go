// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package engine

import (
	"context"
	"fmt"

	"github.com/reelgraph/reelgraph/internal/models"
)

// AddFriend inserts the directed edge userID -> friendID. Friendship
// is asymmetric: the reverse edge exists only if the other user adds
// it. Both users must exist and self-friending is rejected.
func (e *Engine) AddFriend(ctx context.Context, userID, friendID int) error {
	if userID == friendID {
		return fmt.Errorf("%w: cannot befriend yourself", models.ErrInvalidArgument)
	}
	if err := e.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := e.requireUser(ctx, friendID); err != nil {
		return err
	}
	if err := e.store.AddFriend(ctx, userID, friendID); err != nil {
		return err
	}
	e.log.Debug().Int("user_id", userID).Int("friend_id", friendID).Msg("friend added")
	return e.recordEvent(ctx, friendID, models.EventFriend, models.OperationAdd, userID)
}

// RemoveFriend deletes the directed edge userID -> friendID. Removing
// an absent edge is a no-op, not an error.
func (e *Engine) RemoveFriend(ctx context.Context, userID, friendID int) error {
	if err := e.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := e.requireUser(ctx, friendID); err != nil {
		return err
	}
	if err := e.store.RemoveFriend(ctx, userID, friendID); err != nil {
		return err
	}
	e.log.Debug().Int("user_id", userID).Int("friend_id", friendID).Msg("friend removed")
	return e.recordEvent(ctx, friendID, models.EventFriend, models.OperationRemove, userID)
}

// Friends returns the users that userID follows.
func (e *Engine) Friends(ctx context.Context, userID int) ([]models.User, error) {
	if err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := e.store.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.resolveUsers(ctx, ids)
}

// CommonFriends returns the users both userID and otherID follow.
// Zero-id sentinels are filtered out defensively.
func (e *Engine) CommonFriends(ctx context.Context, userID, otherID int) ([]models.User, error) {
	if err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := e.requireUser(ctx, otherID); err != nil {
		return nil, err
	}

	mine, err := e.store.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := e.store.FriendIDs(ctx, otherID)
	if err != nil {
		return nil, err
	}

	common := []int{}
	for _, id := range intersect(mine, theirs) {
		if id != 0 {
			common = append(common, id)
		}
	}
	return e.resolveUsers(ctx, common)
}

// resolveUsers maps ids to full user records, preserving order.
func (e *Engine) resolveUsers(ctx context.Context, ids []int) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		u, err := e.store.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}
