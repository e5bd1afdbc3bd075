// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// catalogService is the CRUD surface shared by directors, genres and MPA
// ratings.
type catalogService[T any] interface {
	Create(ctx context.Context, v *T) (*T, error)
	Update(ctx context.Context, v *T) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id int64) error
}

// catalogHandlers serves one dictionary resource.
type catalogHandlers[T any] struct {
	svc catalogService[T]
}

func (c catalogHandlers[T]) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items, err := c.svc.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, items, start)
}

func (c catalogHandlers[T]) create(w http.ResponseWriter, r *http.Request) {
	c.write(w, r, http.StatusCreated, c.svc.Create)
}

func (c catalogHandlers[T]) update(w http.ResponseWriter, r *http.Request) {
	c.write(w, r, http.StatusOK, c.svc.Update)
}

func (c catalogHandlers[T]) write(w http.ResponseWriter, r *http.Request, status int, apply func(context.Context, *T) (*T, error)) {
	start := time.Now()
	var item T
	if err := decodeJSON(w, r, &item); err != nil {
		respondServiceError(w, r, err)
		return
	}
	saved, err := apply(r.Context(), &item)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, status, saved, start)
}

func (c catalogHandlers[T]) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	item, err := c.svc.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, item, start)
}

func (c catalogHandlers[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := c.svc.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondNoContent(w)
}

// mountCatalog registers list, create, update, get and delete for svc.
func mountCatalog[T any](r chi.Router, svc catalogService[T]) {
	c := catalogHandlers[T]{svc: svc}
	r.Get("/", c.list)
	r.Post("/", c.create)
	r.Put("/", c.update)
	r.Get("/{id}", c.get)
	r.Delete("/{id}", c.delete)
}
