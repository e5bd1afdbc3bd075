// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package service

import (
	"context"
	"strings"

	"github.com/tomtom215/filmgraph/internal/database"
	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/validation"
)

// SearchPopularFallback is the number of popular films a blank search returns.
const SearchPopularFallback = 10

// Search targets accepted in the comma-separated "by" parameter.
const (
	SearchByTitle    = "title"
	SearchByDirector = "director"
)

// FilmService manages films, their likes and the ranking queries over them.
type FilmService struct {
	db *database.DB
}

// Create validates f, checks its references and stores it with its links.
func (s *FilmService) Create(ctx context.Context, f *models.Film) (*models.Film, error) {
	if err := s.validate(f); err != nil {
		return nil, err
	}

	err := s.db.WithTx(ctx, func(tx *database.Store) error {
		if err := checkFilmRefs(ctx, tx, f); err != nil {
			return err
		}
		return fromStore("create film", "film", tx.CreateFilm(ctx, f))
	})
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().Int64("film_id", f.ID).Str("name", f.Name).Msg("Film created")
	return s.Get(ctx, f.ID)
}

// Update overwrites an existing film, replacing its genre and director sets.
func (s *FilmService) Update(ctx context.Context, f *models.Film) (*models.Film, error) {
	if err := s.validate(f); err != nil {
		return nil, err
	}

	err := s.db.WithTx(ctx, func(tx *database.Store) error {
		if err := requireFilm(ctx, tx, f.ID); err != nil {
			return err
		}
		if err := checkFilmRefs(ctx, tx, f); err != nil {
			return err
		}
		return fromStore("update film", describe("film", f.ID), tx.UpdateFilm(ctx, f))
	})
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().Int64("film_id", f.ID).Msg("Film updated")
	return s.Get(ctx, f.ID)
}

// Get returns one film.
func (s *FilmService) Get(ctx context.Context, id int64) (*models.Film, error) {
	f, err := s.db.GetFilm(ctx, id)
	if err != nil {
		return nil, fromStore("get film", describe("film", id), err)
	}
	return f, nil
}

// List returns every film by id.
func (s *FilmService) List(ctx context.Context) ([]models.Film, error) {
	films, err := s.db.ListFilms(ctx)
	if err != nil {
		return nil, Internal("list films", err)
	}
	return films, nil
}

// Delete removes a film with its likes, links and reviews.
func (s *FilmService) Delete(ctx context.Context, id int64) error {
	err := s.db.WithTx(ctx, func(tx *database.Store) error {
		return fromStore("delete film", describe("film", id), tx.DeleteFilm(ctx, id))
	})
	if err != nil {
		return err
	}
	logging.Ctx(ctx).Debug().Int64("film_id", id).Msg("Film deleted")
	return nil
}

// Genres returns the genres of a film in insertion order.
func (s *FilmService) Genres(ctx context.Context, filmID int64) ([]models.Genre, error) {
	if err := requireFilm(ctx, s.db.Store, filmID); err != nil {
		return nil, err
	}
	genres, err := s.db.FilmGenres(ctx, filmID)
	if err != nil {
		return nil, Internal("list film genres", err)
	}
	return genres, nil
}

// AddLike records userID's like of filmID and appends a LIKE/ADD event.
// Liking an already liked film changes nothing but still logs the event.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID int64) error {
	return s.db.WithTx(ctx, func(tx *database.Store) error {
		if err := requireFilm(ctx, tx, filmID); err != nil {
			return err
		}
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := tx.AddLike(ctx, filmID, userID); err != nil {
			return Internal("add like", err)
		}
		return emit(ctx, tx, userID, filmID, models.EventLike, models.OperationAdd)
	})
}

// RemoveLike deletes userID's like of filmID, if any, and appends a
// LIKE/REMOVE event.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	return s.db.WithTx(ctx, func(tx *database.Store) error {
		if err := requireFilm(ctx, tx, filmID); err != nil {
			return err
		}
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := tx.RemoveLike(ctx, filmID, userID); err != nil {
			return Internal("remove like", err)
		}
		return emit(ctx, tx, userID, filmID, models.EventLike, models.OperationRemove)
	})
}

// Popular returns at most count films by like count, optionally restricted
// to a genre and a release year.
func (s *FilmService) Popular(ctx context.Context, count int, genreID *int64, year *int) ([]models.Film, error) {
	if count <= 0 {
		return nil, Validationf("count must be positive, got %d", count)
	}
	films, err := s.db.PopularFilms(ctx, count, genreID, year)
	if err != nil {
		return nil, Internal("popular films", err)
	}
	return films, nil
}

// Common returns the films both users like, by popularity.
func (s *FilmService) Common(ctx context.Context, userID, friendID int64) ([]models.Film, error) {
	if err := requireUser(ctx, s.db.Store, userID); err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.db.Store, friendID); err != nil {
		return nil, err
	}
	films, err := s.db.CommonFilms(ctx, userID, friendID)
	if err != nil {
		return nil, Internal("common films", err)
	}
	return films, nil
}

// Search matches query against titles and/or director names, as selected by
// the comma-separated by list. A blank query returns the most popular films.
func (s *FilmService) Search(ctx context.Context, query, by string) ([]models.Film, error) {
	if strings.TrimSpace(query) == "" {
		return s.Popular(ctx, SearchPopularFallback, nil, nil)
	}

	byTitle, byDirector, err := ParseSearchTargets(by)
	if err != nil {
		return nil, err
	}
	films, err := s.db.SearchFilms(ctx, query, byTitle, byDirector)
	if err != nil {
		return nil, Internal("search films", err)
	}
	return films, nil
}

// ParseSearchTargets reads a "title,director" style list. At least one
// target is required and unknown targets are rejected.
func ParseSearchTargets(by string) (byTitle, byDirector bool, err error) {
	for _, token := range strings.Split(by, ",") {
		switch strings.ToLower(strings.TrimSpace(token)) {
		case "":
		case SearchByTitle:
			byTitle = true
		case SearchByDirector:
			byDirector = true
		default:
			return false, false, Validationf("unknown search target %q, use %q or %q", token, SearchByTitle, SearchByDirector)
		}
	}
	if !byTitle && !byDirector {
		return false, false, Validationf("search requires by=%s and/or by=%s", SearchByTitle, SearchByDirector)
	}
	return byTitle, byDirector, nil
}

// DirectorFilms lists a director's films sorted by release year or likes.
func (s *FilmService) DirectorFilms(ctx context.Context, directorID int64, sortBy string) ([]models.Film, error) {
	switch sortBy {
	case "":
		sortBy = models.SortByYear
	case models.SortByYear, models.SortByLikes:
	default:
		return nil, Validationf("sortBy must be %q or %q, got %q", models.SortByYear, models.SortByLikes, sortBy)
	}

	ok, err := s.db.DirectorExists(ctx, directorID)
	if err != nil {
		return nil, Internal("check director", err)
	}
	if !ok {
		return nil, NotFoundf("director %d not found", directorID)
	}

	films, err := s.db.DirectorFilms(ctx, directorID, sortBy)
	if err != nil {
		return nil, Internal("director films", err)
	}
	return films, nil
}

func (s *FilmService) validate(f *models.Film) error {
	if f == nil {
		return Validationf("film body is required")
	}
	if verr := validation.ValidateStruct(f); verr != nil {
		return invalid(verr)
	}
	if f.Mpa == nil || f.Mpa.ID <= 0 {
		return invalid(validation.NewRequestValidationError("mpa", "required", "mpa is required", nil))
	}
	return nil
}

// checkFilmRefs fails with NotFound when the MPA rating or any genre or
// director named by f does not exist.
func checkFilmRefs(ctx context.Context, tx *database.Store, f *models.Film) error {
	if _, err := tx.GetMpa(ctx, f.Mpa.ID); err != nil {
		return fromStore("check mpa rating", describe("mpa rating", f.Mpa.ID), err)
	}

	missing, err := tx.MissingGenres(ctx, f.GenreIDs())
	if err != nil {
		return Internal("check genres", err)
	}
	if len(missing) > 0 {
		return NotFoundf("genre %d not found", missing[0])
	}

	missing, err = tx.MissingDirectors(ctx, f.DirectorIDs())
	if err != nil {
		return Internal("check directors", err)
	}
	if len(missing) > 0 {
		return NotFoundf("director %d not found", missing[0])
	}
	return nil
}
