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

// CreateGenre inserts a genre and sets g.ID.
func (s *Store) CreateGenre(ctx context.Context, g *models.Genre) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := s.q.QueryRowContext(ctx, "INSERT INTO genres (name) VALUES (?) RETURNING id", g.Name).Scan(&g.ID)
	recordQuery("INSERT", "genres", start, err)
	if err != nil {
		return fmt.Errorf("insert genre: %w", err)
	}
	return nil
}

// UpdateGenre renames a genre. Returns ErrNotFound if it does not exist.
func (s *Store) UpdateGenre(ctx context.Context, g *models.Genre) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "UPDATE", "genres", "UPDATE genres SET name = ? WHERE id = ?", g.Name, g.ID)
	if err != nil {
		return fmt.Errorf("update genre %d: %w", g.ID, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("genre %d: %w", g.ID, ErrNotFound)
	}
	return nil
}

// GetGenre returns a genre or ErrNotFound.
func (s *Store) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var g models.Genre
	start := time.Now()
	err := s.q.QueryRowContext(ctx, "SELECT id, name FROM genres WHERE id = ?", id).Scan(&g.ID, &g.Name)
	recordQuery("SELECT", "genres", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("genre %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get genre %d: %w", id, err)
	}
	return &g, nil
}

// ListGenres returns all genres ordered by id.
func (s *Store) ListGenres(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "genres", "SELECT id, name FROM genres ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	genres := make([]models.Genre, 0)
	err = eachRow(rows, func(r *sql.Rows) error {
		var g models.Genre
		if err := r.Scan(&g.ID, &g.Name); err != nil {
			return err
		}
		genres = append(genres, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan genres: %w", err)
	}
	return genres, nil
}

// DeleteGenre removes a genre and unlinks it from every film.
// Run it inside WithTx.
func (s *Store) DeleteGenre(ctx context.Context, id int64) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if _, err := s.exec(ctx, "DELETE", "film_genres", "DELETE FROM film_genres WHERE genre_id = ?", id); err != nil {
		return fmt.Errorf("unlink genre %d: %w", id, err)
	}
	res, err := s.exec(ctx, "DELETE", "genres", "DELETE FROM genres WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete genre %d: %w", id, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("genre %d: %w", id, ErrNotFound)
	}
	return nil
}

// MissingGenres returns the ids from ids that name no genre, in input order.
func (s *Store) MissingGenres(ctx context.Context, ids []int64) ([]int64, error) {
	return s.missingIDs(ctx, "genres", ids)
}

// CreateMpa inserts an MPA rating and sets m.ID.
func (s *Store) CreateMpa(ctx context.Context, m *models.MpaRating) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := s.q.QueryRowContext(ctx,
		"INSERT INTO mpa_ratings (name, description) VALUES (?, ?) RETURNING id",
		m.Name, m.Description).Scan(&m.ID)
	recordQuery("INSERT", "mpa_ratings", start, err)
	if err != nil {
		return fmt.Errorf("insert mpa rating: %w", err)
	}
	return nil
}

// UpdateMpa overwrites an MPA rating. Returns ErrNotFound if it does not exist.
func (s *Store) UpdateMpa(ctx context.Context, m *models.MpaRating) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "UPDATE", "mpa_ratings",
		"UPDATE mpa_ratings SET name = ?, description = ? WHERE id = ?", m.Name, m.Description, m.ID)
	if err != nil {
		return fmt.Errorf("update mpa rating %d: %w", m.ID, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("mpa rating %d: %w", m.ID, ErrNotFound)
	}
	return nil
}

// GetMpa returns an MPA rating or ErrNotFound.
func (s *Store) GetMpa(ctx context.Context, id int64) (*models.MpaRating, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var m models.MpaRating
	start := time.Now()
	err := s.q.QueryRowContext(ctx, "SELECT id, name, description FROM mpa_ratings WHERE id = ?", id).
		Scan(&m.ID, &m.Name, &m.Description)
	recordQuery("SELECT", "mpa_ratings", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("mpa rating %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get mpa rating %d: %w", id, err)
	}
	return &m, nil
}

// ListMpa returns all MPA ratings ordered by id.
func (s *Store) ListMpa(ctx context.Context) ([]models.MpaRating, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "mpa_ratings", "SELECT id, name, description FROM mpa_ratings ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list mpa ratings: %w", err)
	}
	ratings := make([]models.MpaRating, 0)
	err = eachRow(rows, func(r *sql.Rows) error {
		var m models.MpaRating
		if err := r.Scan(&m.ID, &m.Name, &m.Description); err != nil {
			return err
		}
		ratings = append(ratings, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan mpa ratings: %w", err)
	}
	return ratings, nil
}

// DeleteMpa removes an MPA rating. A rating still assigned to a film cannot
// be removed and yields ErrConflict.
func (s *Store) DeleteMpa(ctx context.Context, id int64) error {
	inUse, err := s.exists(ctx, "films", "SELECT 1 FROM films WHERE mpa_id = ? LIMIT 1", id)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("mpa rating %d is assigned to films: %w", id, ErrConflict)
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "DELETE", "mpa_ratings", "DELETE FROM mpa_ratings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete mpa rating %d: %w", id, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("mpa rating %d: %w", id, ErrNotFound)
	}
	return nil
}

// missingIDs returns the members of ids with no row in table.
func (s *Store) missingIDs(ctx context.Context, table string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	ph, args := placeholders(ids)
	rows, err := s.query(ctx, table, fmt.Sprintf("SELECT id FROM %s WHERE id IN (%s)", table, ph), args...)
	if err != nil {
		return nil, fmt.Errorf("check %s ids: %w", table, err)
	}
	found, err := scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan %s ids: %w", table, err)
	}

	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
