// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"fmt"
)

// AddLike records that userID likes filmID. Liking twice is a no-op.
// Reports whether a new like was stored.
func (s *Store) AddLike(ctx context.Context, filmID, userID int64) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "INSERT", "likes",
		"INSERT INTO likes (film_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING", filmID, userID)
	if err != nil {
		return false, fmt.Errorf("like film %d by user %d: %w", filmID, userID, err)
	}
	return rowsAffected(res) > 0, nil
}

// RemoveLike deletes a like if present. Reports whether a like was removed.
func (s *Store) RemoveLike(ctx context.Context, filmID, userID int64) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "DELETE", "likes",
		"DELETE FROM likes WHERE film_id = ? AND user_id = ?", filmID, userID)
	if err != nil {
		return false, fmt.Errorf("unlike film %d by user %d: %w", filmID, userID, err)
	}
	return rowsAffected(res) > 0, nil
}

// LikedFilmIDs returns the ids of films userID likes, ascending.
func (s *Store) LikedFilmIDs(ctx context.Context, userID int64) ([]int64, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "likes", "SELECT film_id FROM likes WHERE user_id = ? ORDER BY film_id", userID)
	if err != nil {
		return nil, fmt.Errorf("liked films of user %d: %w", userID, err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan liked films: %w", err)
	}
	return ids, nil
}
