// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package models

// Film is a catalog entry.
//
// Mpa, Genres and Directors are references by id. On input only the ids are
// read; on output the store fills in names. Genres and Directors keep the
// order in which they were first supplied and never contain duplicates.
type Film struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name" validate:"notblank,max=255"`
	Description string     `json:"description" validate:"max=200"`
	ReleaseDate Date       `json:"releaseDate" validate:"required,cinema_epoch"`
	Duration    int        `json:"duration" validate:"gt=0"`
	Mpa         *MpaRating `json:"mpa" validate:"-"`
	Genres      []Genre    `json:"genres" validate:"-"`
	Directors   []Director `json:"directors" validate:"-"`
	Likes       []int64    `json:"likes"`
}

// GenreIDs returns the genre ids with duplicates removed, first occurrence kept.
func (f *Film) GenreIDs() []int64 {
	ids := make([]int64, 0, len(f.Genres))
	for _, g := range f.Genres {
		ids = append(ids, g.ID)
	}
	return UniqueIDs(ids)
}

// DirectorIDs returns the director ids with duplicates removed, first occurrence kept.
func (f *Film) DirectorIDs() []int64 {
	ids := make([]int64, 0, len(f.Directors))
	for _, d := range f.Directors {
		ids = append(ids, d.ID)
	}
	return UniqueIDs(ids)
}

// UniqueIDs drops repeated ids while preserving first-insertion order.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Genre is a film genre such as "Драма".
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"notblank,max=50"`
}

// MpaRating is an age-classification label such as PG-13.
type MpaRating struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"notblank,max=10"`
	Description string `json:"description,omitempty" validate:"max=200"`
}

// Director is a person credited with directing films.
type Director struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"notblank,max=255"`
}

// Director film orderings accepted by the directors' films listing.
const (
	SortByYear  = "year"
	SortByLikes = "likes"
)
