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

const reviewSelect = `SELECT r.id, r.content, r.is_positive, r.user_id, r.film_id, r.created_at,
	CAST(COALESCE(SUM(CASE WHEN v.is_like THEN 1 WHEN NOT v.is_like THEN -1 ELSE 0 END), 0) AS BIGINT) AS useful
FROM reviews r
LEFT JOIN review_votes v ON v.review_id = r.id`

const reviewGroupOrder = `
GROUP BY r.id, r.content, r.is_positive, r.user_id, r.film_id, r.created_at
ORDER BY useful DESC, r.id ASC`

// CreateReview inserts a review and sets ReviewID and CreatedAt. A second
// review by the same user for the same film yields ErrConflict.
func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	r.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	start := time.Now()
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO reviews (content, is_positive, user_id, film_id, created_at)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
		r.Content, *r.IsPositive, r.UserID, r.FilmID, r.CreatedAt).Scan(&r.ReviewID)
	recordQuery("INSERT", "reviews", start, err)
	if isConstraintViolation(err) {
		return fmt.Errorf("review by user %d for film %d: %w", r.UserID, r.FilmID, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	r.Useful = 0
	r.Likes = []int64{}
	r.Dislikes = []int64{}
	return nil
}

// HasReview reports whether userID already reviewed filmID.
func (s *Store) HasReview(ctx context.Context, userID, filmID int64) (bool, error) {
	return s.exists(ctx, "reviews", "SELECT 1 FROM reviews WHERE user_id = ? AND film_id = ?", userID, filmID)
}

// ReviewExists reports whether a review with id exists.
func (s *Store) ReviewExists(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, "reviews", "SELECT 1 FROM reviews WHERE id = ?", id)
}

// UpdateReview changes content and polarity. Author, film and votes are kept.
func (s *Store) UpdateReview(ctx context.Context, r *models.Review) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := s.exec(ctx, "UPDATE", "reviews",
		"UPDATE reviews SET content = ?, is_positive = ? WHERE id = ?", r.Content, *r.IsPositive, r.ReviewID)
	if err != nil {
		return fmt.Errorf("update review %d: %w", r.ReviewID, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("review %d: %w", r.ReviewID, ErrNotFound)
	}
	return nil
}

// GetReview returns a review with its votes, or ErrNotFound.
func (s *Store) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.query(ctx, "reviews", reviewSelect+" WHERE r.id = ?"+reviewGroupOrder, id)
	if err != nil {
		return nil, fmt.Errorf("get review %d: %w", id, err)
	}
	reviews, err := scanReviews(rows)
	if err != nil {
		return nil, fmt.Errorf("scan review: %w", err)
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	if err := s.attachVotes(ctx, reviews); err != nil {
		return nil, err
	}
	return &reviews[0], nil
}

// ListReviews returns up to limit reviews, most useful first, ties by id.
// A nil filmID lists reviews of every film.
func (s *Store) ListReviews(ctx context.Context, filmID *int64, limit int) ([]models.Review, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := reviewSelect
	var args []any
	if filmID != nil {
		query += " WHERE r.film_id = ?"
		args = append(args, *filmID)
	}
	query += reviewGroupOrder + " LIMIT ?"
	args = append(args, limit)

	rows, err := s.query(ctx, "reviews", query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	reviews, err := scanReviews(rows)
	if err != nil {
		return nil, fmt.Errorf("scan reviews: %w", err)
	}
	return reviews, s.attachVotes(ctx, reviews)
}

// DeleteReview removes a review and its votes. Run it inside WithTx.
func (s *Store) DeleteReview(ctx context.Context, id int64) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if _, err := s.exec(ctx, "DELETE", "review_votes", "DELETE FROM review_votes WHERE review_id = ?", id); err != nil {
		return fmt.Errorf("delete votes of review %d: %w", id, err)
	}
	res, err := s.exec(ctx, "DELETE", "reviews", "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete review %d: %w", id, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	return nil
}

// SetVote stores userID's vote on a review, replacing any earlier vote, so a
// user is never both a liker and a disliker.
func (s *Store) SetVote(ctx context.Context, reviewID, userID int64, isLike bool) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	_, err := s.exec(ctx, "INSERT", "review_votes",
		`INSERT INTO review_votes (review_id, user_id, is_like) VALUES (?, ?, ?)
		ON CONFLICT (review_id, user_id) DO UPDATE SET is_like = excluded.is_like`,
		reviewID, userID, isLike)
	if err != nil {
		return fmt.Errorf("vote on review %d by user %d: %w", reviewID, userID, err)
	}
	return nil
}

// RemoveVote deletes userID's vote only when it is of the given kind.
func (s *Store) RemoveVote(ctx context.Context, reviewID, userID int64, isLike bool) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	_, err := s.exec(ctx, "DELETE", "review_votes",
		"DELETE FROM review_votes WHERE review_id = ? AND user_id = ? AND is_like = ?",
		reviewID, userID, isLike)
	if err != nil {
		return fmt.Errorf("remove vote on review %d by user %d: %w", reviewID, userID, err)
	}
	return nil
}

func scanReviews(rows *sql.Rows) ([]models.Review, error) {
	defer closeWithLog(rows, "rows")

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var (
			r        models.Review
			positive bool
			useful   int64
		)
		if err := rows.Scan(&r.ReviewID, &r.Content, &positive, &r.UserID, &r.FilmID, &r.CreatedAt, &useful); err != nil {
			return nil, err
		}
		r.IsPositive = &positive
		r.CreatedAt = r.CreatedAt.UTC()
		r.Useful = int(useful)
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// attachVotes fills Likes and Dislikes and recomputes Useful from them.
func (s *Store) attachVotes(ctx context.Context, reviews []models.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	index := make(map[int64]int, len(reviews))
	ids := make([]int64, len(reviews))
	for i := range reviews {
		reviews[i].Likes = []int64{}
		reviews[i].Dislikes = []int64{}
		index[reviews[i].ReviewID] = i
		ids[i] = reviews[i].ReviewID
	}

	ph, args := placeholders(ids)
	rows, err := s.query(ctx, "review_votes", `SELECT review_id, user_id, is_like FROM review_votes
		WHERE review_id IN (`+ph+`)
		ORDER BY review_id, user_id`, args...)
	if err != nil {
		return fmt.Errorf("load review votes: %w", err)
	}
	err = eachRow(rows, func(r *sql.Rows) error {
		var reviewID, userID int64
		var isLike bool
		if err := r.Scan(&reviewID, &userID, &isLike); err != nil {
			return err
		}
		rv := &reviews[index[reviewID]]
		if isLike {
			rv.Likes = append(rv.Likes, userID)
		} else {
			rv.Dislikes = append(rv.Dislikes, userID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan review votes: %w", err)
	}

	for i := range reviews {
		reviews[i].Useful = len(reviews[i].Likes) - len(reviews[i].Dislikes)
	}
	return nil
}
