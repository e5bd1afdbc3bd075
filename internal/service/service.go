// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package service

import (
	"context"
	"fmt"

	"github.com/tomtom215/filmgraph/internal/database"
	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/metrics"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend"
)

// Services groups one service per entity group over a shared database.
type Services struct {
	Films           *FilmService
	Users           *UserService
	Reviews         *ReviewService
	Directors       *DirectorService
	Genres          *GenreService
	Mpa             *MpaService
	Feed            *FeedService
	Recommendations *RecommendationService
}

// New wires every service to db.
func New(db *database.DB) *Services {
	return &Services{
		Films:           &FilmService{db: db},
		Users:           &UserService{db: db},
		Reviews:         &ReviewService{db: db},
		Directors:       &DirectorService{db: db},
		Genres:          &GenreService{db: db},
		Mpa:             &MpaService{db: db},
		Feed:            &FeedService{db: db},
		Recommendations: &RecommendationService{db: db, engine: recommend.NewEngine()},
	}
}

// requireUser fails with NotFound when the user does not exist.
func requireUser(ctx context.Context, s *database.Store, id int64) error {
	ok, err := s.UserExists(ctx, id)
	if err != nil {
		return Internal("check user", err)
	}
	if !ok {
		return NotFoundf("user %d not found", id)
	}
	return nil
}

// requireFilm fails with NotFound when the film does not exist.
func requireFilm(ctx context.Context, s *database.Store, id int64) error {
	ok, err := s.FilmExists(ctx, id)
	if err != nil {
		return Internal("check film", err)
	}
	if !ok {
		return NotFoundf("film %d not found", id)
	}
	return nil
}

// emit appends a feed event inside the caller's transaction.
func emit(ctx context.Context, tx *database.Store, userID, entityID int64, eventType models.EventType, op models.Operation) error {
	e := &models.FeedEvent{UserID: userID, EntityID: entityID, EventType: eventType, Operation: op}
	if err := tx.InsertFeedEvent(ctx, e); err != nil {
		return Internal("append feed event", err)
	}
	metrics.RecordFeedEvent(string(eventType), string(op))
	logging.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Int64("entity_id", entityID).
		Str("event_type", string(eventType)).
		Str("operation", string(op)).
		Int64("event_id", e.EventID).
		Msg("Feed event appended")
	return nil
}

// describe names an entity in NotFound and Conflict messages.
func describe(kind string, id int64) string {
	return fmt.Sprintf("%s %d", kind, id)
}
