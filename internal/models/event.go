// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package models

// EventType classifies what kind of entity an event concerns.
type EventType string

// Event types.
const (
	EventLike   EventType = "LIKE"
	EventReview EventType = "REVIEW"
	EventFriend EventType = "FRIEND"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventLike, EventReview, EventFriend:
		return true
	}
	return false
}

// EventOperation describes the action taken on the entity.
type EventOperation string

// Event operations.
const (
	OperationAdd    EventOperation = "ADD"
	OperationRemove EventOperation = "REMOVE"
	OperationUpdate EventOperation = "UPDATE"
)

// Valid reports whether o is a known event operation.
func (o EventOperation) Valid() bool {
	switch o {
	case OperationAdd, OperationRemove, OperationUpdate:
		return true
	}
	return false
}

// Event is one timestamped record in a user's activity feed.
// Timestamp is epoch milliseconds assigned at record time.
type Event struct {
	ID        int            `json:"event_id"`
	EntityID  int            `json:"entity_id"`
	Type      EventType      `json:"event_type"`
	Operation EventOperation `json:"operation"`
	UserID    int            `json:"user_id"`
	Timestamp int64          `json:"timestamp"`
}
