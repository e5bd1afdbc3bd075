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

// ListUsers returns every user.
//
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.User}
// @Router /users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	users, err := h.svc.Users.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, users, start)
}

// CreateUser registers a user. An empty name defaults to the login.
//
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body models.User true "User"
// @Success 201 {object} models.APIResponse{data=models.User}
// @Failure 400 {object} models.APIResponse
// @Router /users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var user models.User
	if err := decodeJSON(w, r, &user); err != nil {
		respondServiceError(w, r, err)
		return
	}
	created, err := h.svc.Users.Create(r.Context(), &user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, created, start)
}

// UpdateUser replaces the user identified by the body's id.
//
// @Summary Update a user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body models.User true "User"
// @Success 200 {object} models.APIResponse{data=models.User}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /users [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var user models.User
	if err := decodeJSON(w, r, &user); err != nil {
		respondServiceError(w, r, err)
		return
	}
	updated, err := h.svc.Users.Update(r.Context(), &user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, updated, start)
}

// GetUser returns one user with their confirmed friends.
//
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.APIResponse{data=models.User}
// @Failure 404 {object} models.APIResponse
// @Router /users/{id} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	user, err := h.svc.Users.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, user, start)
}

// DeleteUser removes a user together with their friendships, likes, reviews,
// votes and feed.
//
// @Summary Delete a user
// @Tags Users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /users/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := h.svc.Users.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondNoContent(w)
}

// AddFriend sends a friend request from id to friendId.
//
// @Summary Request friendship
// @Tags Friends
// @Param id path int true "User ID"
// @Param friendId path int true "Friend ID"
// @Success 204
// @Failure 400 {object} models.APIResponse "Self friendship"
// @Failure 404 {object} models.APIResponse
// @Router /users/{id}/friends/{friendId} [put]
func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	respondPairAction(w, r, "id", "friendId", h.svc.Users.AddFriend)
}

// ConfirmFriend confirms a pending request from id to friendId.
//
// @Summary Confirm friendship
// @Tags Friends
// @Param id path int true "User ID"
// @Param friendId path int true "Friend ID"
// @Success 204
// @Failure 404 {object} models.APIResponse "No pending request"
// @Router /users/{id}/friends/{friendId}/confirm [put]
func (h *Handler) ConfirmFriend(w http.ResponseWriter, r *http.Request) {
	respondPairAction(w, r, "id", "friendId", h.svc.Users.ConfirmFriend)
}

// RemoveFriend deletes the friendship edge from id to friendId.
//
// @Summary Remove friendship
// @Tags Friends
// @Param id path int true "User ID"
// @Param friendId path int true "Friend ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /users/{id}/friends/{friendId} [delete]
func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	respondPairAction(w, r, "id", "friendId", h.svc.Users.RemoveFriend)
}

// ListFriends returns a user's confirmed friends.
//
// @Summary List friends
// @Tags Friends
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.APIResponse{data=[]models.User}
// @Failure 404 {object} models.APIResponse
// @Router /users/{id}/friends [get]
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	friends, err := h.svc.Users.Friends(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, friends, start)
}

// CommonFriends returns the confirmed friends two users share.
//
// @Summary Common friends
// @Tags Friends
// @Produce json
// @Param id path int true "User ID"
// @Param otherId path int true "Other user ID"
// @Success 200 {object} models.APIResponse{data=[]models.User}
// @Failure 404 {object} models.APIResponse
// @Router /users/{id}/friends/common/{otherId} [get]
func (h *Handler) CommonFriends(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, otherID, err := pathIDs(r, "id", "otherId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	friends, err := h.svc.Users.CommonFriends(r.Context(), id, otherID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, friends, start)
}

// UserFeed returns a user's activity feed, oldest first.
//
// @Summary User feed
// @Tags Feed
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.APIResponse{data=[]models.FeedEvent}
// @Failure 404 {object} models.APIResponse
// @Router /users/{id}/feed [get]
func (h *Handler) UserFeed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	events, err := h.svc.Feed.UserFeed(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, events, start)
}

// Recommendations returns films liked by the most similar user and not yet
// liked by this one.
//
// @Summary Film recommendations
// @Tags Recommendations
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.APIResponse{data=[]models.Film}
// @Failure 404 {object} models.APIResponse
// @Router /users/{id}/recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	films, err := h.svc.Recommendations.ForUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, films, start)
}

// mountUsers registers the /users routes.
func (h *Handler) mountUsers(r chi.Router) {
	r.Get("/", h.ListUsers)
	r.Post("/", h.CreateUser)
	r.Put("/", h.UpdateUser)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetUser)
		r.Delete("/", h.DeleteUser)
		r.Get("/feed", h.UserFeed)
		r.Get("/recommendations", h.Recommendations)
		r.Get("/friends", h.ListFriends)
		r.Get("/friends/common/{otherId}", h.CommonFriends)
		r.Put("/friends/{friendId}", h.AddFriend)
		r.Delete("/friends/{friendId}", h.RemoveFriend)
		r.Put("/friends/{friendId}/confirm", h.ConfirmFriend)
	})
}
