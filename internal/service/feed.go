// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package service

import (
	"context"

	"github.com/tomtom215/filmgraph/internal/database"
	"github.com/tomtom215/filmgraph/internal/models"
)

// FeedService reads the append-only activity feed. Events are written by the
// other services inside their own transactions.
type FeedService struct {
	db *database.DB
}

// UserFeed returns userID's events in the order they happened.
func (s *FeedService) UserFeed(ctx context.Context, userID int64) ([]models.FeedEvent, error) {
	if err := requireUser(ctx, s.db.Store, userID); err != nil {
		return nil, err
	}
	events, err := s.db.UserFeed(ctx, userID)
	if err != nil {
		return nil, Internal("read feed", err)
	}
	return events, nil
}
