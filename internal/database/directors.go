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

// CreateDirector inserts a director and sets d.ID.
func (s *Store) CreateDirector(ctx context.Context, d *models.Director) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := s.q.QueryRowContext(ctx, "INSERT INTO directors (name) VALUES (?) RETURNING id", d.Name).Scan(&d.ID)
	recordQuery("INSERT", "directors", start, err)
	if err != nil {
		return fmt.Errorf("insert director: %w", err)
	}
	return nil
}

// UpdateDirector renames a director. Returns ErrNotFound if it does not exist.
func (s *Store) UpdateDirector(ctx context.Context, d *models.Director) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "UPDATE", "directors", "UPDATE directors SET name = ? WHERE id = ?", d.Name, d.ID)
	if err != nil {
		return fmt.Errorf("update director %d: %w", d.ID, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("director %d: %w", d.ID, ErrNotFound)
	}
	return nil
}

// GetDirector returns a director or ErrNotFound.
func (s *Store) GetDirector(ctx context.Context, id int64) (*models.Director, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var d models.Director
	start := time.Now()
	err := s.q.QueryRowContext(ctx, "SELECT id, name FROM directors WHERE id = ?", id).Scan(&d.ID, &d.Name)
	recordQuery("SELECT", "directors", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("director %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get director %d: %w", id, err)
	}
	return &d, nil
}

// ListDirectors returns all directors ordered by id.
func (s *Store) ListDirectors(ctx context.Context) ([]models.Director, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "directors", "SELECT id, name FROM directors ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list directors: %w", err)
	}
	directors := make([]models.Director, 0)
	err = eachRow(rows, func(r *sql.Rows) error {
		var d models.Director
		if err := r.Scan(&d.ID, &d.Name); err != nil {
			return err
		}
		directors = append(directors, d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan directors: %w", err)
	}
	return directors, nil
}

// DeleteDirector unlinks a director from every film, then removes it.
// Run it inside WithTx.
func (s *Store) DeleteDirector(ctx context.Context, id int64) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if _, err := s.exec(ctx, "DELETE", "film_directors", "DELETE FROM film_directors WHERE director_id = ?", id); err != nil {
		return fmt.Errorf("unlink director %d: %w", id, err)
	}
	res, err := s.exec(ctx, "DELETE", "directors", "DELETE FROM directors WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete director %d: %w", id, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("director %d: %w", id, ErrNotFound)
	}
	return nil
}

// DirectorExists reports whether a director with id exists.
func (s *Store) DirectorExists(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, "directors", "SELECT 1 FROM directors WHERE id = ?", id)
}

// MissingDirectors returns the ids from ids that name no director, in input order.
func (s *Store) MissingDirectors(ctx context.Context, ids []int64) ([]int64, error) {
	return s.missingIDs(ctx, "directors", ids)
}
