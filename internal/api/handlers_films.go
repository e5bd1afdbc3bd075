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

// ListFilms returns every film.
//
// @Summary List films
// @Tags Films
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Film}
// @Router /films [get]
func (h *Handler) ListFilms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	films, err := h.svc.Films.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, films, start)
}

// CreateFilm adds a film. Genres and directors are referenced by id and the
// MPA rating is required.
//
// @Summary Create a film
// @Tags Films
// @Accept json
// @Produce json
// @Param film body models.Film true "Film"
// @Success 201 {object} models.APIResponse{data=models.Film}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse "Referenced MPA rating, genre or director missing"
// @Router /films [post]
func (h *Handler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var film models.Film
	if err := decodeJSON(w, r, &film); err != nil {
		respondServiceError(w, r, err)
		return
	}
	created, err := h.svc.Films.Create(r.Context(), &film)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, created, start)
}

// UpdateFilm replaces the film identified by the body's id.
//
// @Summary Update a film
// @Tags Films
// @Accept json
// @Produce json
// @Param film body models.Film true "Film"
// @Success 200 {object} models.APIResponse{data=models.Film}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /films [put]
func (h *Handler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var film models.Film
	if err := decodeJSON(w, r, &film); err != nil {
		respondServiceError(w, r, err)
		return
	}
	updated, err := h.svc.Films.Update(r.Context(), &film)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, updated, start)
}

// GetFilm returns one film.
//
// @Summary Get a film
// @Tags Films
// @Produce json
// @Param id path int true "Film ID"
// @Success 200 {object} models.APIResponse{data=models.Film}
// @Failure 404 {object} models.APIResponse
// @Router /films/{id} [get]
func (h *Handler) GetFilm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	film, err := h.svc.Films.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, film, start)
}

// DeleteFilm removes a film with its likes, links and reviews.
//
// @Summary Delete a film
// @Tags Films
// @Param id path int true "Film ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /films/{id} [delete]
func (h *Handler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := h.svc.Films.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondNoContent(w)
}

// FilmGenres returns a film's genres in the order they were assigned.
//
// @Summary Get a film's genres
// @Tags Films
// @Produce json
// @Param id path int true "Film ID"
// @Success 200 {object} models.APIResponse{data=[]models.Genre}
// @Failure 404 {object} models.APIResponse
// @Router /films/{id}/genres [get]
func (h *Handler) FilmGenres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	genres, err := h.svc.Films.Genres(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, genres, start)
}

// AddFilmLike records a like. Repeating it is harmless.
//
// @Summary Like a film
// @Tags Films
// @Param id path int true "Film ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /films/{id}/like/{userId} [put]
func (h *Handler) AddFilmLike(w http.ResponseWriter, r *http.Request) {
	respondPairAction(w, r, "id", "userId", h.svc.Films.AddLike)
}

// RemoveFilmLike withdraws a like.
//
// @Summary Unlike a film
// @Tags Films
// @Param id path int true "Film ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /films/{id}/like/{userId} [delete]
func (h *Handler) RemoveFilmLike(w http.ResponseWriter, r *http.Request) {
	respondPairAction(w, r, "id", "userId", h.svc.Films.RemoveLike)
}

// PopularFilms returns the most liked films.
//
// @Summary Most popular films
// @Description Films ordered by like count, then id. Optional genre and release year filters.
// @Tags Films
// @Produce json
// @Param count query int false "Maximum films (default 10)"
// @Param genreId query int false "Genre filter"
// @Param year query int false "Release year filter"
// @Success 200 {object} models.APIResponse{data=[]models.Film}
// @Failure 400 {object} models.APIResponse
// @Router /films/popular [get]
func (h *Handler) PopularFilms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	count, err := h.count(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	genreID, err := queryInt64(r, "genreId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	year64, err := queryInt64(r, "year")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	var year *int
	if year64 != nil {
		y := int(*year64)
		year = &y
	}

	films, err := h.svc.Films.Popular(r.Context(), count, genreID, year)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, films, start)
}

// CommonFilms returns films liked by both users, most popular first.
//
// @Summary Films two users both like
// @Tags Films
// @Produce json
// @Param userId query int true "User ID"
// @Param friendId query int true "Other user ID"
// @Success 200 {object} models.APIResponse{data=[]models.Film}
// @Failure 404 {object} models.APIResponse
// @Router /films/common [get]
func (h *Handler) CommonFilms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, err := queryRequiredInt64(r, "userId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	friendID, err := queryRequiredInt64(r, "friendId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	films, err := h.svc.Films.Common(r.Context(), userID, friendID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, films, start)
}

// SearchFilms matches a substring against titles and/or director names.
//
// @Summary Search films
// @Description Case-insensitive substring search. by is a comma list of "title" and "director". A blank query returns the 10 most popular films.
// @Tags Films
// @Produce json
// @Param query query string false "Search text"
// @Param by query string false "title, director or title,director"
// @Success 200 {object} models.APIResponse{data=[]models.Film}
// @Failure 400 {object} models.APIResponse
// @Router /films/search [get]
func (h *Handler) SearchFilms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()
	films, err := h.svc.Films.Search(r.Context(), q.Get("query"), q.Get("by"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, films, start)
}

// DirectorFilms lists one director's films.
//
// @Summary Films by director
// @Tags Films
// @Produce json
// @Param directorId path int true "Director ID"
// @Param sortBy query string false "year (default) or likes"
// @Success 200 {object} models.APIResponse{data=[]models.Film}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /films/director/{directorId} [get]
func (h *Handler) DirectorFilms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	directorID, err := pathID(r, "directorId")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	films, err := h.svc.Films.DirectorFilms(r.Context(), directorID, r.URL.Query().Get("sortBy"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, films, start)
}

// mountFilms registers the /films routes.
func (h *Handler) mountFilms(r chi.Router) {
	r.Get("/", h.ListFilms)
	r.Post("/", h.CreateFilm)
	r.Put("/", h.UpdateFilm)
	r.Get("/popular", h.PopularFilms)
	r.Get("/common", h.CommonFilms)
	r.Get("/search", h.SearchFilms)
	r.Get("/director/{directorId}", h.DirectorFilms)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetFilm)
		r.Delete("/", h.DeleteFilm)
		r.Get("/genres", h.FilmGenres)
		r.Put("/like/{userId}", h.AddFilmLike)
		r.Delete("/like/{userId}", h.RemoveFilmLike)
	})
}
