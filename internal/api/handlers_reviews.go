// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/filmgraph/internal/models"
)

// ListReviews returns the most useful reviews, optionally of one film.
//
// @Summary List reviews
// @Description Reviews ordered by usefulness, then id. count defaults to 10.
// @Tags Reviews
// @Produce json
// @Param filmId query int false "Film filter"
// @Param count query int false "Maximum reviews"
// @Success 200 {object} models.APIResponse{data=[]models.Review}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /reviews [get]
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	filmID, err := queryInt64(r, "filmId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	// zero selects the service default
	count, err := countParam(r, 0, h.config.API.MaxCount)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	reviews, err := h.svc.Reviews.List(r.Context(), filmID, count)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, reviews, start)
}

// CreateReview adds a review. A user reviews a film at most once.
//
// @Summary Create a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param review body models.Review true "Review"
// @Success 201 {object} models.APIResponse{data=models.Review}
// @Failure 400 {object} models.APIResponse "Invalid or duplicate review"
// @Failure 404 {object} models.APIResponse
// @Router /reviews [post]
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var review models.Review
	if err := decodeJSON(w, r, &review); err != nil {
		respondServiceError(w, r, err)
		return
	}
	created, err := h.svc.Reviews.Create(r.Context(), &review)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, created, start)
}

// UpdateReview changes a review's content and polarity. Only the author may
// edit it.
//
// @Summary Update a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param review body models.Review true "Review"
// @Success 200 {object} models.APIResponse{data=models.Review}
// @Failure 400 {object} models.APIResponse
// @Failure 403 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /reviews [put]
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var review models.Review
	if err := decodeJSON(w, r, &review); err != nil {
		respondServiceError(w, r, err)
		return
	}
	updated, err := h.svc.Reviews.Update(r.Context(), &review)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, updated, start)
}

// GetReview returns one review.
//
// @Summary Get a review
// @Tags Reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} models.APIResponse{data=models.Review}
// @Failure 404 {object} models.APIResponse
// @Router /reviews/{id} [get]
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	review, err := h.svc.Reviews.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, review, start)
}

// DeleteReview removes a review and its votes.
//
// @Summary Delete a review
// @Tags Reviews
// @Param id path int true "Review ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /reviews/{id} [delete]
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := h.svc.Reviews.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondNoContent(w)
}

// AddReviewLike marks a review useful, replacing a dislike by the same user.
//
// @Summary Like a review
// @Tags Reviews
// @Param id path int true "Review ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /reviews/{id}/like/{userId} [put]
func (h *Handler) AddReviewLike(w http.ResponseWriter, r *http.Request) {
	respondPairAction(w, r, "id", "userId", h.svc.Reviews.AddLike)
}

// AddReviewDislike marks a review not useful, replacing a like by the same user.
//
// @Summary Dislike a review
// @Tags Reviews
// @Param id path int true "Review ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /reviews/{id}/dislike/{userId} [put]
func (h *Handler) AddReviewDislike(w http.ResponseWriter, r *http.Request) {
	respondPairAction(w, r, "id", "userId", h.svc.Reviews.AddDislike)
}

// RemoveReviewLike withdraws a like.
//
// @Summary Remove a review like
// @Tags Reviews
// @Param id path int true "Review ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /reviews/{id}/like/{userId} [delete]
func (h *Handler) RemoveReviewLike(w http.ResponseWriter, r *http.Request) {
	respondPairAction(w, r, "id", "userId", h.svc.Reviews.RemoveLike)
}

// RemoveReviewDislike withdraws a dislike.
//
// @Summary Remove a review dislike
// @Tags Reviews
// @Param id path int true "Review ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /reviews/{id}/dislike/{userId} [delete]
func (h *Handler) RemoveReviewDislike(w http.ResponseWriter, r *http.Request) {
	respondPairAction(w, r, "id", "userId", h.svc.Reviews.RemoveDislike)
}

// mountReviews registers the /reviews routes.
func (h *Handler) mountReviews(r chi.Router) {
	r.Get("/", h.ListReviews)
	r.Post("/", h.CreateReview)
	r.Put("/", h.UpdateReview)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetReview)
		r.Delete("/", h.DeleteReview)
		r.Put("/like/{userId}", h.AddReviewLike)
		r.Delete("/like/{userId}", h.RemoveReviewLike)
		r.Put("/dislike/{userId}", h.AddReviewDislike)
		r.Delete("/dislike/{userId}", h.RemoveReviewDislike)
	})
}
