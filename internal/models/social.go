// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package models

import "time"

// User is a catalog member. Name falls back to Login when left blank.
// Friends lists ids on CONFIRMED outgoing friendships.
type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Login    string  `json:"login" validate:"notblank,nowhitespace,max=100"`
	Name     string  `json:"name" validate:"max=255"`
	Birthday *Date   `json:"birthday,omitempty" validate:"omitempty,notfuture"`
	Friends  []int64 `json:"friends"`
}

// FriendshipStatus is the state of a directed friendship edge.
type FriendshipStatus string

// Friendship states. An absent row is the third state.
const (
	FriendshipPending   FriendshipStatus = "PENDING"
	FriendshipConfirmed FriendshipStatus = "CONFIRMED"
)

// Friendship is a directed edge from UserID to FriendID.
type Friendship struct {
	UserID   int64            `json:"userId"`
	FriendID int64            `json:"friendId"`
	Status   FriendshipStatus `json:"status"`
}

// Review is a user's opinion of a film. Useful is always likes minus dislikes
// and cannot be set by clients.
type Review struct {
	ReviewID   int64     `json:"reviewId"`
	Content    string    `json:"content" validate:"notblank,max=5000"`
	IsPositive *bool     `json:"isPositive" validate:"required"`
	UserID     int64     `json:"userId" validate:"required"`
	FilmID     int64     `json:"filmId" validate:"required"`
	Useful     int       `json:"useful"`
	CreatedAt  time.Time `json:"createdAt"`
	Likes      []int64   `json:"likes"`
	Dislikes   []int64   `json:"dislikes"`
}

// EventType is the kind of action a feed event records.
type EventType string

// Feed event types.
const (
	EventLike   EventType = "LIKE"
	EventReview EventType = "REVIEW"
	EventFriend EventType = "FRIEND"
)

// Operation is what happened to the entity a feed event refers to.
type Operation string

// Feed event operations.
const (
	OperationAdd    Operation = "ADD"
	OperationRemove Operation = "REMOVE"
	OperationUpdate Operation = "UPDATE"
)

// FeedEvent is one immutable activity-feed entry. Timestamp is epoch milliseconds.
type FeedEvent struct {
	EventID   int64     `json:"eventId"`
	UserID    int64     `json:"userId"`
	EntityID  int64     `json:"entityId"`
	EventType EventType `json:"eventType"`
	Operation Operation `json:"operation"`
	Timestamp int64     `json:"timestamp"`
}

// LikeOverlap counts the films another user liked in common with a target user.
type LikeOverlap struct {
	UserID int64 `json:"userId"`
	Common int   `json:"common"`
}
