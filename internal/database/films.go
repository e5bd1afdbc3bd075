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

const filmSelect = `SELECT f.id, f.name, f.description, f.release_date, f.duration,
	m.id, m.name, m.description
FROM films f
JOIN mpa_ratings m ON m.id = f.mpa_id`

// CreateFilm inserts the film with its genre and director links and sets f.ID.
// Run it inside WithTx so the links commit together with the film row.
func (s *Store) CreateFilm(ctx context.Context, f *models.Film) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO films (name, description, release_date, duration, mpa_id)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
		f.Name, f.Description, f.ReleaseDate.Time, f.Duration, f.Mpa.ID,
	).Scan(&f.ID)
	recordQuery("INSERT", "films", start, err)
	if err != nil {
		return fmt.Errorf("insert film: %w", err)
	}

	return s.replaceFilmLinks(ctx, f.ID, f.GenreIDs(), f.DirectorIDs())
}

// UpdateFilm overwrites the film's fields and replaces its links.
// Returns ErrNotFound if the film does not exist.
func (s *Store) UpdateFilm(ctx context.Context, f *models.Film) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "UPDATE", "films",
		`UPDATE films SET name = ?, description = ?, release_date = ?, duration = ?, mpa_id = ?
		WHERE id = ?`,
		f.Name, f.Description, f.ReleaseDate.Time, f.Duration, f.Mpa.ID, f.ID)
	if err != nil {
		return fmt.Errorf("update film %d: %w", f.ID, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("film %d: %w", f.ID, ErrNotFound)
	}

	return s.replaceFilmLinks(ctx, f.ID, f.GenreIDs(), f.DirectorIDs())
}

// replaceFilmLinks makes film_genres and film_directors match the given ids.
// Links that stay are updated in place rather than deleted and reinserted,
// which keeps DuckDB's primary key index from rejecting the same key twice in
// one transaction.
func (s *Store) replaceFilmLinks(ctx context.Context, filmID int64, genreIDs, directorIDs []int64) error {
	if err := s.replaceLinks(ctx, "film_genres", "genre_id", filmID, genreIDs); err != nil {
		return err
	}
	return s.replaceLinks(ctx, "film_directors", "director_id", filmID, directorIDs)
}

func (s *Store) replaceLinks(ctx context.Context, table, column string, filmID int64, ids []int64) error {
	del := fmt.Sprintf("DELETE FROM %s WHERE film_id = ?", table)
	args := []any{filmID}
	if len(ids) > 0 {
		ph, idArgs := placeholders(ids)
		del += fmt.Sprintf(" AND %s NOT IN (%s)", column, ph)
		args = append(args, idArgs...)
	}
	if _, err := s.exec(ctx, "DELETE", table, del, args...); err != nil {
		return fmt.Errorf("clear %s for film %d: %w", table, filmID, err)
	}

	upsert := fmt.Sprintf(`INSERT INTO %[1]s (film_id, %[2]s, sort_order) VALUES (?, ?, ?)
		ON CONFLICT (film_id, %[2]s) DO UPDATE SET sort_order = excluded.sort_order`, table, column)
	for i, id := range ids {
		if _, err := s.exec(ctx, "INSERT", table, upsert, filmID, id, i); err != nil {
			return fmt.Errorf("link film %d to %s %d: %w", filmID, column, id, err)
		}
	}
	return nil
}

// GetFilm returns one film with its relations, or ErrNotFound.
func (s *Store) GetFilm(ctx context.Context, id int64) (*models.Film, error) {
	films, err := s.FilmsByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, fmt.Errorf("film %d: %w", id, ErrNotFound)
	}
	return &films[0], nil
}

// ListFilms returns every film ordered by id.
func (s *Store) ListFilms(ctx context.Context) ([]models.Film, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "films", filmSelect+" ORDER BY f.id")
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	films, err := scanFilms(rows)
	if err != nil {
		return nil, fmt.Errorf("scan films: %w", err)
	}
	return films, s.attachFilmRelations(ctx, films)
}

// FilmsByIDs loads the given films in the order of ids. Unknown ids are skipped.
func (s *Store) FilmsByIDs(ctx context.Context, ids []int64) ([]models.Film, error) {
	if len(ids) == 0 {
		return []models.Film{}, nil
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	ph, args := placeholders(ids)
	rows, err := s.query(ctx, "films", filmSelect+" WHERE f.id IN ("+ph+")", args...)
	if err != nil {
		return nil, fmt.Errorf("load films: %w", err)
	}
	loaded, err := scanFilms(rows)
	if err != nil {
		return nil, fmt.Errorf("scan films: %w", err)
	}

	byID := make(map[int64]models.Film, len(loaded))
	for _, f := range loaded {
		byID[f.ID] = f
	}
	films := make([]models.Film, 0, len(loaded))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			films = append(films, f)
		}
	}
	return films, s.attachFilmRelations(ctx, films)
}

// DeleteFilm removes the film together with its likes, links, reviews and
// review votes. Returns ErrNotFound if the film does not exist.
// Run it inside WithTx.
func (s *Store) DeleteFilm(ctx context.Context, id int64) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	cascade := []struct{ table, query string }{
		{"review_votes", "DELETE FROM review_votes WHERE review_id IN (SELECT id FROM reviews WHERE film_id = ?)"},
		{"reviews", "DELETE FROM reviews WHERE film_id = ?"},
		{"likes", "DELETE FROM likes WHERE film_id = ?"},
		{"film_genres", "DELETE FROM film_genres WHERE film_id = ?"},
		{"film_directors", "DELETE FROM film_directors WHERE film_id = ?"},
	}
	for _, c := range cascade {
		if _, err := s.exec(ctx, "DELETE", c.table, c.query, id); err != nil {
			return fmt.Errorf("delete %s of film %d: %w", c.table, id, err)
		}
	}

	res, err := s.exec(ctx, "DELETE", "films", "DELETE FROM films WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete film %d: %w", id, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("film %d: %w", id, ErrNotFound)
	}
	return nil
}

// FilmExists reports whether a film with id exists.
func (s *Store) FilmExists(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, "films", "SELECT 1 FROM films WHERE id = ?", id)
}

// FilmGenres returns a film's genres in insertion order.
func (s *Store) FilmGenres(ctx context.Context, filmID int64) ([]models.Genre, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "film_genres",
		`SELECT g.id, g.name FROM film_genres fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id = ?
		ORDER BY fg.sort_order`, filmID)
	if err != nil {
		return nil, fmt.Errorf("film %d genres: %w", filmID, err)
	}
	defer closeWithLog(rows, "rows")

	genres := make([]models.Genre, 0)
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// DirectorFilms returns the films of a director ordered by release date
// (sortBy "year") or by like count (sortBy "likes"), ties by id.
func (s *Store) DirectorFilms(ctx context.Context, directorID int64, sortBy string) ([]models.Film, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	order := "f.release_date ASC, f.id ASC"
	if sortBy == models.SortByLikes {
		order = "COUNT(l.user_id) DESC, f.id ASC"
	}

	rows, err := s.query(ctx, "film_directors", `SELECT f.id
		FROM films f
		JOIN film_directors fd ON fd.film_id = f.id
		LEFT JOIN likes l ON l.film_id = f.id
		WHERE fd.director_id = ?
		GROUP BY f.id, f.release_date
		ORDER BY `+order, directorID)
	if err != nil {
		return nil, fmt.Errorf("director %d films: %w", directorID, err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan director films: %w", err)
	}
	return s.FilmsByIDs(ctx, ids)
}

func scanFilms(rows *sql.Rows) ([]models.Film, error) {
	defer closeWithLog(rows, "rows")

	films := make([]models.Film, 0)
	for rows.Next() {
		var (
			f       models.Film
			mpa     models.MpaRating
			release time.Time
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &release, &f.Duration,
			&mpa.ID, &mpa.Name, &mpa.Description); err != nil {
			return nil, err
		}
		f.ReleaseDate = models.Date{Time: release.UTC()}
		f.Mpa = &mpa
		films = append(films, f)
	}
	return films, rows.Err()
}

// attachFilmRelations fills Genres, Directors and Likes with three batched
// queries, one per relation.
func (s *Store) attachFilmRelations(ctx context.Context, films []models.Film) error {
	if len(films) == 0 {
		return nil
	}

	index := make(map[int64]int, len(films))
	ids := make([]int64, len(films))
	for i := range films {
		films[i].Genres = []models.Genre{}
		films[i].Directors = []models.Director{}
		films[i].Likes = []int64{}
		index[films[i].ID] = i
		ids[i] = films[i].ID
	}
	ph, args := placeholders(ids)

	rows, err := s.query(ctx, "film_genres", `SELECT fg.film_id, g.id, g.name
		FROM film_genres fg JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id IN (`+ph+`)
		ORDER BY fg.film_id, fg.sort_order`, args...)
	if err != nil {
		return fmt.Errorf("load film genres: %w", err)
	}
	err = eachRow(rows, func(r *sql.Rows) error {
		var filmID int64
		var g models.Genre
		if err := r.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return err
		}
		f := &films[index[filmID]]
		f.Genres = append(f.Genres, g)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan film genres: %w", err)
	}

	rows, err = s.query(ctx, "film_directors", `SELECT fd.film_id, d.id, d.name
		FROM film_directors fd JOIN directors d ON d.id = fd.director_id
		WHERE fd.film_id IN (`+ph+`)
		ORDER BY fd.film_id, fd.sort_order`, args...)
	if err != nil {
		return fmt.Errorf("load film directors: %w", err)
	}
	err = eachRow(rows, func(r *sql.Rows) error {
		var filmID int64
		var d models.Director
		if err := r.Scan(&filmID, &d.ID, &d.Name); err != nil {
			return err
		}
		f := &films[index[filmID]]
		f.Directors = append(f.Directors, d)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan film directors: %w", err)
	}

	rows, err = s.query(ctx, "likes", `SELECT film_id, user_id FROM likes
		WHERE film_id IN (`+ph+`)
		ORDER BY film_id, user_id`, args...)
	if err != nil {
		return fmt.Errorf("load film likes: %w", err)
	}
	err = eachRow(rows, func(r *sql.Rows) error {
		var filmID, userID int64
		if err := r.Scan(&filmID, &userID); err != nil {
			return err
		}
		f := &films[index[filmID]]
		f.Likes = append(f.Likes, userID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan film likes: %w", err)
	}
	return nil
}

// eachRow calls fn for every row and closes rows.
func eachRow(rows *sql.Rows, fn func(*sql.Rows) error) error {
	defer closeWithLog(rows, "rows")
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
