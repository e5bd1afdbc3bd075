// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package service

import (
	"context"

	"github.com/tomtom215/filmgraph/internal/database"
	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/validation"
)

func validateEntity(v any) error {
	if verr := validation.ValidateStruct(v); verr != nil {
		return invalid(verr)
	}
	return nil
}

// GenreService manages the genre dictionary.
type GenreService struct {
	db *database.DB
}

func (s *GenreService) Create(ctx context.Context, g *models.Genre) (*models.Genre, error) {
	if err := validateEntity(g); err != nil {
		return nil, err
	}
	if err := s.db.CreateGenre(ctx, g); err != nil {
		return nil, Internal("create genre", err)
	}
	logging.Ctx(ctx).Debug().Int64("genre_id", g.ID).Str("name", g.Name).Msg("Genre created")
	return g, nil
}

func (s *GenreService) Update(ctx context.Context, g *models.Genre) (*models.Genre, error) {
	if err := validateEntity(g); err != nil {
		return nil, err
	}
	if err := s.db.UpdateGenre(ctx, g); err != nil {
		return nil, fromStore("update genre", describe("genre", g.ID), err)
	}
	return g, nil
}

func (s *GenreService) Get(ctx context.Context, id int64) (*models.Genre, error) {
	g, err := s.db.GetGenre(ctx, id)
	if err != nil {
		return nil, fromStore("get genre", describe("genre", id), err)
	}
	return g, nil
}

func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	genres, err := s.db.ListGenres(ctx)
	if err != nil {
		return nil, Internal("list genres", err)
	}
	return genres, nil
}

// Delete removes a genre and unlinks it from every film.
func (s *GenreService) Delete(ctx context.Context, id int64) error {
	return s.db.WithTx(ctx, func(tx *database.Store) error {
		return fromStore("delete genre", describe("genre", id), tx.DeleteGenre(ctx, id))
	})
}

// MpaService manages MPA ratings.
type MpaService struct {
	db *database.DB
}

func (s *MpaService) Create(ctx context.Context, m *models.MpaRating) (*models.MpaRating, error) {
	if err := validateEntity(m); err != nil {
		return nil, err
	}
	if err := s.db.CreateMpa(ctx, m); err != nil {
		return nil, Internal("create mpa rating", err)
	}
	logging.Ctx(ctx).Debug().Int64("mpa_id", m.ID).Str("name", m.Name).Msg("MPA rating created")
	return m, nil
}

func (s *MpaService) Update(ctx context.Context, m *models.MpaRating) (*models.MpaRating, error) {
	if err := validateEntity(m); err != nil {
		return nil, err
	}
	if err := s.db.UpdateMpa(ctx, m); err != nil {
		return nil, fromStore("update mpa rating", describe("mpa rating", m.ID), err)
	}
	return m, nil
}

func (s *MpaService) Get(ctx context.Context, id int64) (*models.MpaRating, error) {
	m, err := s.db.GetMpa(ctx, id)
	if err != nil {
		return nil, fromStore("get mpa rating", describe("mpa rating", id), err)
	}
	return m, nil
}

func (s *MpaService) List(ctx context.Context) ([]models.MpaRating, error) {
	ratings, err := s.db.ListMpa(ctx)
	if err != nil {
		return nil, Internal("list mpa ratings", err)
	}
	return ratings, nil
}

// Delete removes an MPA rating that no film uses. Conflict otherwise.
func (s *MpaService) Delete(ctx context.Context, id int64) error {
	return s.db.WithTx(ctx, func(tx *database.Store) error {
		return fromStore("delete mpa rating", describe("mpa rating", id), tx.DeleteMpa(ctx, id))
	})
}

// DirectorService manages directors.
type DirectorService struct {
	db *database.DB
}

// Create stores a new director. When d.ID names an existing director, that
// director is updated instead.
func (s *DirectorService) Create(ctx context.Context, d *models.Director) (*models.Director, error) {
	if err := validateEntity(d); err != nil {
		return nil, err
	}

	err := s.db.WithTx(ctx, func(tx *database.Store) error {
		if d.ID > 0 {
			ok, err := tx.DirectorExists(ctx, d.ID)
			if err != nil {
				return Internal("check director", err)
			}
			if ok {
				return fromStore("update director", describe("director", d.ID), tx.UpdateDirector(ctx, d))
			}
		}
		return fromStore("create director", "director", tx.CreateDirector(ctx, d))
	})
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Debug().Int64("director_id", d.ID).Str("name", d.Name).Msg("Director saved")
	return d, nil
}

func (s *DirectorService) Update(ctx context.Context, d *models.Director) (*models.Director, error) {
	if err := validateEntity(d); err != nil {
		return nil, err
	}
	if err := s.db.UpdateDirector(ctx, d); err != nil {
		return nil, fromStore("update director", describe("director", d.ID), err)
	}
	return d, nil
}

func (s *DirectorService) Get(ctx context.Context, id int64) (*models.Director, error) {
	d, err := s.db.GetDirector(ctx, id)
	if err != nil {
		return nil, fromStore("get director", describe("director", id), err)
	}
	return d, nil
}

func (s *DirectorService) List(ctx context.Context) ([]models.Director, error) {
	directors, err := s.db.ListDirectors(ctx)
	if err != nil {
		return nil, Internal("list directors", err)
	}
	return directors, nil
}

// Delete unlinks a director from its films and removes it.
func (s *DirectorService) Delete(ctx context.Context, id int64) error {
	err := s.db.WithTx(ctx, func(tx *database.Store) error {
		return fromStore("delete director", describe("director", id), tx.DeleteDirector(ctx, id))
	})
	if err != nil {
		return err
	}
	logging.Ctx(ctx).Debug().Int64("director_id", id).Msg("Director deleted")
	return nil
}
