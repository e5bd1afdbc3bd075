// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package service

import (
	"context"

	"github.com/tomtom215/filmgraph/internal/database"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend"
)

// RecommendationService turns engine output into film records.
type RecommendationService struct {
	db     *database.DB
	engine *recommend.Engine
}

// ForUser returns films recommended to userID, most popular first. The
// existence check, the engine reads and the ranking share one transaction.
func (s *RecommendationService) ForUser(ctx context.Context, userID int64) ([]models.Film, error) {
	var films []models.Film
	err := s.db.WithTx(ctx, func(tx *database.Store) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		ids, err := s.engine.Recommend(ctx, tx, userID)
		if err != nil {
			return Internal("recommend films", err)
		}
		films, err = tx.RankFilms(ctx, ids)
		if err != nil {
			return Internal("load recommended films", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return films, nil
}
