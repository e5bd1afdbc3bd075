// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package service

import (
	"context"
	"fmt"

	"github.com/tomtom215/filmgraph/internal/database"
	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/validation"
)

// DefaultReviewCount is used when a listing does not name a count.
const DefaultReviewCount = 10

// ReviewService manages reviews and the votes cast on them.
type ReviewService struct {
	db *database.DB
}

// Create stores a review and appends REVIEW/ADD on the author's feed.
// A user may review each film once.
func (s *ReviewService) Create(ctx context.Context, r *models.Review) (*models.Review, error) {
	if err := validateReview(r); err != nil {
		return nil, err
	}

	err := s.db.WithTx(ctx, func(tx *database.Store) error {
		if err := requireUser(ctx, tx, r.UserID); err != nil {
			return err
		}
		if err := requireFilm(ctx, tx, r.FilmID); err != nil {
			return err
		}
		dup, err := tx.HasReview(ctx, r.UserID, r.FilmID)
		if err != nil {
			return Internal("check review", err)
		}
		if dup {
			return Conflictf("user %d already reviewed film %d", r.UserID, r.FilmID)
		}
		if err := tx.CreateReview(ctx, r); err != nil {
			return fromStore("create review", "review", err)
		}
		return emit(ctx, tx, r.UserID, r.ReviewID, models.EventReview, models.OperationAdd)
	})
	if err != nil {
		return nil, fromStore("create review", fmt.Sprintf("review by user %d for film %d", r.UserID, r.FilmID), err)
	}

	logging.Ctx(ctx).Debug().Int64("review_id", r.ReviewID).Int64("film_id", r.FilmID).Msg("Review created")
	return s.Get(ctx, r.ReviewID)
}

// Update changes a review's content and polarity. Only the author may edit;
// usefulness stays vote-derived.
func (s *ReviewService) Update(ctx context.Context, r *models.Review) (*models.Review, error) {
	if err := validateReview(r); err != nil {
		return nil, err
	}

	err := s.db.WithTx(ctx, func(tx *database.Store) error {
		existing, err := tx.GetReview(ctx, r.ReviewID)
		if err != nil {
			return fromStore("get review", describe("review", r.ReviewID), err)
		}
		if existing.UserID != r.UserID {
			return Forbiddenf("user %d cannot edit review %d of user %d", r.UserID, r.ReviewID, existing.UserID)
		}
		if err := tx.UpdateReview(ctx, r); err != nil {
			return fromStore("update review", describe("review", r.ReviewID), err)
		}
		return emit(ctx, tx, existing.UserID, r.ReviewID, models.EventReview, models.OperationUpdate)
	})
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().Int64("review_id", r.ReviewID).Msg("Review updated")
	return s.Get(ctx, r.ReviewID)
}

// Get returns one review with its votes.
func (s *ReviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	r, err := s.db.GetReview(ctx, id)
	if err != nil {
		return nil, fromStore("get review", describe("review", id), err)
	}
	return r, nil
}

// Delete removes a review and appends REVIEW/REMOVE on its author's feed.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	err := s.db.WithTx(ctx, func(tx *database.Store) error {
		existing, err := tx.GetReview(ctx, id)
		if err != nil {
			return fromStore("get review", describe("review", id), err)
		}
		if err := tx.DeleteReview(ctx, id); err != nil {
			return fromStore("delete review", describe("review", id), err)
		}
		return emit(ctx, tx, existing.UserID, id, models.EventReview, models.OperationRemove)
	})
	if err != nil {
		return err
	}
	logging.Ctx(ctx).Debug().Int64("review_id", id).Msg("Review deleted")
	return nil
}

// List returns the count most useful reviews, of one film when filmID is set.
// A count of zero means DefaultReviewCount.
func (s *ReviewService) List(ctx context.Context, filmID *int64, count int) ([]models.Review, error) {
	if count < 0 {
		return nil, Validationf("count must be positive, got %d", count)
	}
	if count == 0 {
		count = DefaultReviewCount
	}
	if filmID != nil {
		if err := requireFilm(ctx, s.db.Store, *filmID); err != nil {
			return nil, err
		}
	}
	reviews, err := s.db.ListReviews(ctx, filmID, count)
	if err != nil {
		return nil, Internal("list reviews", err)
	}
	return reviews, nil
}

// AddLike records userID's like, replacing a dislike if present.
func (s *ReviewService) AddLike(ctx context.Context, reviewID, userID int64) error {
	return s.vote(ctx, reviewID, userID, func(tx *database.Store) error {
		return tx.SetVote(ctx, reviewID, userID, true)
	})
}

// AddDislike records userID's dislike, replacing a like if present.
func (s *ReviewService) AddDislike(ctx context.Context, reviewID, userID int64) error {
	return s.vote(ctx, reviewID, userID, func(tx *database.Store) error {
		return tx.SetVote(ctx, reviewID, userID, false)
	})
}

// RemoveLike withdraws userID's like. A dislike is left in place.
func (s *ReviewService) RemoveLike(ctx context.Context, reviewID, userID int64) error {
	return s.vote(ctx, reviewID, userID, func(tx *database.Store) error {
		return tx.RemoveVote(ctx, reviewID, userID, true)
	})
}

// RemoveDislike withdraws userID's dislike. A like is left in place.
func (s *ReviewService) RemoveDislike(ctx context.Context, reviewID, userID int64) error {
	return s.vote(ctx, reviewID, userID, func(tx *database.Store) error {
		return tx.RemoveVote(ctx, reviewID, userID, false)
	})
}

func (s *ReviewService) vote(ctx context.Context, reviewID, userID int64, apply func(tx *database.Store) error) error {
	return s.db.WithTx(ctx, func(tx *database.Store) error {
		ok, err := tx.ReviewExists(ctx, reviewID)
		if err != nil {
			return Internal("check review", err)
		}
		if !ok {
			return NotFoundf("review %d not found", reviewID)
		}
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := apply(tx); err != nil {
			return Internal("vote on review", err)
		}
		return nil
	})
}

func validateReview(r *models.Review) error {
	if r == nil {
		return Validationf("review body is required")
	}
	if verr := validation.ValidateStruct(r); verr != nil {
		return invalid(verr)
	}
	return nil
}
