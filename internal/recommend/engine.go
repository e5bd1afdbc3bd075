// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/metrics"
	"github.com/tomtom215/filmgraph/internal/models"
)

// DataProvider supplies the like data the engine ranks.
// It is implemented by the database layer. Passing a transaction-scoped
// store keeps every read of one Recommend call on the same snapshot.
type DataProvider interface {
	// LikeOverlaps returns, for every other user sharing at least one liked
	// film with userID, the number of shared films.
	LikeOverlaps(ctx context.Context, userID int64) ([]models.LikeOverlap, error)

	// LikedFilmIDs returns the films userID likes.
	LikedFilmIDs(ctx context.Context, userID int64) ([]int64, error)
}

// Engine computes recommendations. It is safe for concurrent use.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates an engine.
func NewEngine() *Engine {
	return &Engine{logger: logging.WithComponent("recommend")}
}

// Recommend returns the ids of films liked by the user most similar to
// userID and not yet liked by userID, reading everything from data.
// The caller checks that userID exists.
func (e *Engine) Recommend(ctx context.Context, data DataProvider, userID int64) ([]int64, error) {
	start := time.Now()

	overlaps, err := data.LikeOverlaps(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load like overlaps: %w", err)
	}

	similar, ok := MostSimilar(overlaps)
	if !ok {
		metrics.RecordRecommendation(time.Since(start), false, 0)
		e.logger.Debug().Int64("user_id", userID).Msg("No similar user, nothing to recommend")
		return []int64{}, nil
	}

	theirs, err := data.LikedFilmIDs(ctx, similar.UserID)
	if err != nil {
		return nil, fmt.Errorf("load likes of user %d: %w", similar.UserID, err)
	}
	mine, err := data.LikedFilmIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load likes of user %d: %w", userID, err)
	}

	films := Difference(theirs, mine)
	metrics.RecordRecommendation(time.Since(start), true, len(films))
	e.logger.Debug().
		Int64("user_id", userID).
		Int64("similar_user_id", similar.UserID).
		Int("common", similar.Common).
		Int("films", len(films)).
		Msg("Recommendations computed")
	return films, nil
}

// MostSimilar picks the overlap with the highest Common count, breaking ties
// by the lowest UserID. Entries with Common <= 0 are ignored. The input order
// does not matter.
func MostSimilar(overlaps []models.LikeOverlap) (models.LikeOverlap, bool) {
	var (
		best  models.LikeOverlap
		found bool
	)
	for _, o := range overlaps {
		if o.Common <= 0 {
			continue
		}
		if !found || o.Common > best.Common || (o.Common == best.Common && o.UserID < best.UserID) {
			best = o
			found = true
		}
	}
	return best, found
}

// Difference returns the members of a that are not in b, keeping a's order.
func Difference(a, b []int64) []int64 {
	exclude := make(map[int64]struct{}, len(b))
	for _, id := range b {
		exclude[id] = struct{}{}
	}
	out := make([]int64, 0, len(a))
	for _, id := range a {
		if _, skip := exclude[id]; skip {
			continue
		}
		out = append(out, id)
	}
	return out
}
