// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/filmgraph/internal/models"
)

// popularityOrder ranks by like count descending, ties by id ascending.
const popularityOrder = " GROUP BY f.id ORDER BY COUNT(l.user_id) DESC, f.id ASC"

// PopularFilms returns at most count films by popularity. genreID and year,
// when non-nil, restrict the result to films of that genre and release year.
func (s *Store) PopularFilms(ctx context.Context, count int, genreID *int64, year *int) ([]models.Film, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := "SELECT f.id FROM films f LEFT JOIN likes l ON l.film_id = f.id"
	var (
		where []string
		args  []any
	)
	if genreID != nil {
		where = append(where, "EXISTS (SELECT 1 FROM film_genres fg WHERE fg.film_id = f.id AND fg.genre_id = ?)")
		args = append(args, *genreID)
	}
	if year != nil {
		where = append(where, "year(f.release_date) = ?")
		args = append(args, *year)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += popularityOrder + " LIMIT ?"
	args = append(args, count)

	rows, err := s.query(ctx, "films", query, args...)
	if err != nil {
		return nil, fmt.Errorf("popular films: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan popular films: %w", err)
	}
	return s.FilmsByIDs(ctx, ids)
}

// CommonFilms returns films liked by both users, by popularity.
func (s *Store) CommonFilms(ctx context.Context, userID, friendID int64) ([]models.Film, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "likes", `SELECT f.id FROM films f
		LEFT JOIN likes l ON l.film_id = f.id
		WHERE f.id IN (
			SELECT film_id FROM likes WHERE user_id = ?
			INTERSECT
			SELECT film_id FROM likes WHERE user_id = ?
		)`+popularityOrder, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("common films of %d and %d: %w", userID, friendID, err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan common films: %w", err)
	}
	return s.FilmsByIDs(ctx, ids)
}

// RankFilms loads the given films ordered by popularity.
func (s *Store) RankFilms(ctx context.Context, ids []int64) ([]models.Film, error) {
	if len(ids) == 0 {
		return []models.Film{}, nil
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	ph, args := placeholders(ids)
	rows, err := s.query(ctx, "films", "SELECT f.id FROM films f LEFT JOIN likes l ON l.film_id = f.id WHERE f.id IN ("+
		ph+")"+popularityOrder, args...)
	if err != nil {
		return nil, fmt.Errorf("rank films: %w", err)
	}
	ranked, err := scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan ranked films: %w", err)
	}
	return s.FilmsByIDs(ctx, ranked)
}

// SearchFilms returns films whose title and/or a director's name contains
// query, ignoring case, by popularity. At least one of byTitle and byDirector
// must be set.
func (s *Store) SearchFilms(ctx context.Context, query string, byTitle, byDirector bool) ([]models.Film, error) {
	if !byTitle && !byDirector {
		return nil, errors.New("search needs a title or director target")
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	needle := strings.ToLower(query)
	var (
		match []string
		args  []any
	)
	if byTitle {
		match = append(match, "contains(lower(f.name), ?)")
		args = append(args, needle)
	}
	if byDirector {
		match = append(match, `EXISTS (SELECT 1 FROM film_directors fd
			JOIN directors d ON d.id = fd.director_id
			WHERE fd.film_id = f.id AND contains(lower(d.name), ?))`)
		args = append(args, needle)
	}

	rows, err := s.query(ctx, "films", "SELECT f.id FROM films f LEFT JOIN likes l ON l.film_id = f.id WHERE "+
		strings.Join(match, " OR ")+popularityOrder, args...)
	if err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan search results: %w", err)
	}
	return s.FilmsByIDs(ctx, ids)
}

// LikeOverlaps counts, for every other user sharing at least one liked film
// with userID, how many liked films they share. Ordered by overlap
// descending, then user id ascending.
func (s *Store) LikeOverlaps(ctx context.Context, userID int64) ([]models.LikeOverlap, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "likes", `SELECT other.user_id, COUNT(*) AS common
		FROM likes mine
		JOIN likes other ON other.film_id = mine.film_id AND other.user_id <> mine.user_id
		WHERE mine.user_id = ?
		GROUP BY other.user_id
		ORDER BY common DESC, other.user_id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("like overlaps of user %d: %w", userID, err)
	}
	defer closeWithLog(rows, "rows")

	overlaps := make([]models.LikeOverlap, 0)
	for rows.Next() {
		var (
			o      models.LikeOverlap
			common int64
		)
		if err := rows.Scan(&o.UserID, &common); err != nil {
			return nil, fmt.Errorf("scan like overlap: %w", err)
		}
		o.Common = int(common)
		overlaps = append(overlaps, o)
	}
	return overlaps, rows.Err()
}
