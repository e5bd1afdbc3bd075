// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/filmgraph/internal/models"
)

// AddFriend creates a PENDING edge userID -> friendID. An existing edge keeps
// its status. Reports whether a new edge was created.
func (s *Store) AddFriend(ctx context.Context, userID, friendID int64) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "INSERT", "friendships",
		"INSERT INTO friendships (user_id, friend_id, status) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
		userID, friendID, string(models.FriendshipPending))
	if err != nil {
		return false, fmt.Errorf("add friend %d -> %d: %w", userID, friendID, err)
	}
	return rowsAffected(res) > 0, nil
}

// ConfirmFriend promotes the edge userID -> friendID to CONFIRMED.
// Returns ErrNotFound when there is no edge to confirm.
func (s *Store) ConfirmFriend(ctx context.Context, userID, friendID int64) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "UPDATE", "friendships",
		"UPDATE friendships SET status = ? WHERE user_id = ? AND friend_id = ?",
		string(models.FriendshipConfirmed), userID, friendID)
	if err != nil {
		return fmt.Errorf("confirm friend %d -> %d: %w", userID, friendID, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("friendship %d -> %d: %w", userID, friendID, ErrNotFound)
	}
	return nil
}

// RemoveFriend deletes the edge userID -> friendID if present.
// Reports whether an edge was removed.
func (s *Store) RemoveFriend(ctx context.Context, userID, friendID int64) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "DELETE", "friendships",
		"DELETE FROM friendships WHERE user_id = ? AND friend_id = ?", userID, friendID)
	if err != nil {
		return false, fmt.Errorf("remove friend %d -> %d: %w", userID, friendID, err)
	}
	return rowsAffected(res) > 0, nil
}

// GetFriendship returns the edge userID -> friendID or ErrNotFound.
func (s *Store) GetFriendship(ctx context.Context, userID, friendID int64) (*models.Friendship, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	f := models.Friendship{UserID: userID, FriendID: friendID}
	var status string
	start := time.Now()
	err := s.q.QueryRowContext(ctx,
		"SELECT status FROM friendships WHERE user_id = ? AND friend_id = ?", userID, friendID).Scan(&status)
	recordQuery("SELECT", "friendships", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("friendship %d -> %d: %w", userID, friendID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get friendship %d -> %d: %w", userID, friendID, err)
	}
	f.Status = models.FriendshipStatus(status)
	return &f, nil
}

// Friends returns the users userID has CONFIRMED outgoing edges to, by id.
func (s *Store) Friends(ctx context.Context, userID int64) ([]models.User, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "friendships",
		"SELECT friend_id FROM friendships WHERE user_id = ? AND status = ? ORDER BY friend_id",
		userID, string(models.FriendshipConfirmed))
	if err != nil {
		return nil, fmt.Errorf("friends of user %d: %w", userID, err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan friends: %w", err)
	}
	return s.UsersByIDs(ctx, ids)
}

// CommonFriends returns users both userID and otherID have confirmed, by id.
func (s *Store) CommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	confirmed := string(models.FriendshipConfirmed)
	rows, err := s.query(ctx, "friendships", `SELECT friend_id FROM friendships WHERE user_id = ? AND status = ?
		INTERSECT
		SELECT friend_id FROM friendships WHERE user_id = ? AND status = ?
		ORDER BY friend_id`, userID, confirmed, otherID, confirmed)
	if err != nil {
		return nil, fmt.Errorf("common friends of %d and %d: %w", userID, otherID, err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan common friends: %w", err)
	}
	return s.UsersByIDs(ctx, ids)
}
