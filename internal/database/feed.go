// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/filmgraph/internal/models"
)

// InsertFeedEvent appends an event and sets EventID and Timestamp.
// Event ids come from a sequence and only grow.
func (s *Store) InsertFeedEvent(ctx context.Context, e *models.FeedEvent) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	start := time.Now()
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO feed_events (user_id, entity_id, event_type, operation, created_at)
		VALUES (?, ?, ?, ?, ?) RETURNING event_id`,
		e.UserID, e.EntityID, string(e.EventType), string(e.Operation), now).Scan(&e.EventID)
	recordQuery("INSERT", "feed_events", start, err)
	if err != nil {
		return fmt.Errorf("append feed event: %w", err)
	}
	e.Timestamp = now.UnixMilli()
	return nil
}

// UserFeed returns userID's events in event id order.
func (s *Store) UserFeed(ctx context.Context, userID int64) ([]models.FeedEvent, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "feed_events", `SELECT event_id, user_id, entity_id, event_type, operation, created_at
		FROM feed_events WHERE user_id = ? ORDER BY event_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("feed of user %d: %w", userID, err)
	}

	events := make([]models.FeedEvent, 0)
	err = eachRow(rows, func(r *sql.Rows) error {
		var (
			e             models.FeedEvent
			eventType, op string
			createdAt     time.Time
		)
		if err := r.Scan(&e.EventID, &e.UserID, &e.EntityID, &eventType, &op, &createdAt); err != nil {
			return err
		}
		e.EventType = models.EventType(eventType)
		e.Operation = models.Operation(op)
		e.Timestamp = createdAt.UnixMilli()
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan feed: %w", err)
	}
	return events, nil
}

// DeleteEventsByUserID removes every event on userID's feed.
func (s *Store) DeleteEventsByUserID(ctx context.Context, userID int64) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if _, err := s.exec(ctx, "DELETE", "feed_events", "DELETE FROM feed_events WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete feed of user %d: %w", userID, err)
	}
	return nil
}

// DeleteEventsByEntityID removes events of eventType that reference entityID.
func (s *Store) DeleteEventsByEntityID(ctx context.Context, entityID int64, eventType models.EventType) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if _, err := s.exec(ctx, "DELETE", "feed_events",
		"DELETE FROM feed_events WHERE entity_id = ? AND event_type = ?", entityID, string(eventType)); err != nil {
		return fmt.Errorf("delete %s events of entity %d: %w", eventType, entityID, err)
	}
	return nil
}
