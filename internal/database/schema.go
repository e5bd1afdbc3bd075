// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/filmgraph/internal/logging"
)

func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// Relations are enforced by the application inside transactions rather than
// by FOREIGN KEY clauses, because DuckDB foreign keys cannot cascade.
var schemaQueries = []string{
	`CREATE SEQUENCE IF NOT EXISTS seq_mpa_ratings START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_genres START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_directors START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_films START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_users START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_reviews START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_feed_events START 1`,

	`CREATE TABLE IF NOT EXISTS mpa_ratings (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_mpa_ratings'),
		name VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_genres'),
		name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS directors (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_directors'),
		name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS films (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_films'),
		name VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT '',
		release_date DATE NOT NULL,
		duration INTEGER NOT NULL,
		mpa_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_users'),
		email VARCHAR NOT NULL,
		login VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		birthday DATE
	)`,
	`CREATE TABLE IF NOT EXISTS film_genres (
		film_id BIGINT NOT NULL,
		genre_id BIGINT NOT NULL,
		sort_order INTEGER NOT NULL,
		PRIMARY KEY (film_id, genre_id)
	)`,
	`CREATE TABLE IF NOT EXISTS film_directors (
		film_id BIGINT NOT NULL,
		director_id BIGINT NOT NULL,
		sort_order INTEGER NOT NULL,
		PRIMARY KEY (film_id, director_id)
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		film_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		PRIMARY KEY (film_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS friendships (
		user_id BIGINT NOT NULL,
		friend_id BIGINT NOT NULL,
		status VARCHAR NOT NULL DEFAULT 'PENDING',
		PRIMARY KEY (user_id, friend_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_reviews'),
		content VARCHAR NOT NULL,
		is_positive BOOLEAN NOT NULL,
		user_id BIGINT NOT NULL,
		film_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		UNIQUE (user_id, film_id)
	)`,
	`CREATE TABLE IF NOT EXISTS review_votes (
		review_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		is_like BOOLEAN NOT NULL,
		PRIMARY KEY (review_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS feed_events (
		event_id BIGINT PRIMARY KEY DEFAULT nextval('seq_feed_events'),
		user_id BIGINT NOT NULL,
		entity_id BIGINT NOT NULL,
		event_type VARCHAR NOT NULL,
		operation VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_likes_user ON likes(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_film ON reviews(film_id)`,
	`CREATE INDEX IF NOT EXISTS idx_feed_user ON feed_events(user_id)`,
}

func (db *DB) createSchema(ctx context.Context) error {
	for _, q := range schemaQueries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to execute schema query: %s: %w", q, err)
		}
	}
	return nil
}

// MPA ratings and genres inserted into an empty database, in id order.
var (
	seedMpaRatings = []struct{ name, description string }{
		{"G", "у фильма нет возрастных ограничений"},
		{"PG", "детям рекомендуется смотреть фильм с родителями"},
		{"PG-13", "детям до 13 лет просмотр не желателен"},
		{"R", "лицам до 17 лет просматривать фильм можно только в присутствии взрослого"},
		{"NC-17", "лицам до 18 лет просмотр запрещён"},
	}
	seedGenres = []string{"Комедия", "Драма", "Мультфильм", "Триллер", "Документальный", "Боевик"}
)

// seedDictionaries fills mpa_ratings and genres once; existing rows are left alone.
func (db *DB) seedDictionaries(ctx context.Context) error {
	return db.WithTx(ctx, func(tx *Store) error {
		var n int
		if err := tx.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM mpa_ratings").Scan(&n); err != nil {
			return fmt.Errorf("count mpa ratings: %w", err)
		}
		if n == 0 {
			for _, m := range seedMpaRatings {
				if _, err := tx.q.ExecContext(ctx,
					"INSERT INTO mpa_ratings (name, description) VALUES (?, ?)", m.name, m.description); err != nil {
					return fmt.Errorf("seed mpa rating %s: %w", m.name, err)
				}
			}
			logging.Debug().Int("count", len(seedMpaRatings)).Msg("Seeded MPA ratings")
		}

		if err := tx.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM genres").Scan(&n); err != nil {
			return fmt.Errorf("count genres: %w", err)
		}
		if n == 0 {
			for _, g := range seedGenres {
				if _, err := tx.q.ExecContext(ctx, "INSERT INTO genres (name) VALUES (?)", g); err != nil {
					return fmt.Errorf("seed genre %s: %w", g, err)
				}
			}
			logging.Debug().Int("count", len(seedGenres)).Msg("Seeded genres")
		}
		return nil
	})
}
