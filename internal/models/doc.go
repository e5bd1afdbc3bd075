// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package models defines the data structures shared by the store, service and
API layers of Filmgraph.

Key Components:

  - Film, User: primary catalog entities
  - Genre, MpaRating, Director: reference entities attached to films by id
  - Friendship: directed user edge with PENDING/CONFIRMED status
  - Review: user review of a film with vote-derived usefulness
  - FeedEvent: append-only record of a like, friendship or review action
  - APIResponse: the JSON envelope written by every HTTP handler

Entities never hold pointers to each other. A film carries the ids (and, on
reads, the names) of its genres and directors; relations are resolved by the
store at read time.

Validation:

Struct tags use go-playground/validator syntax. The custom tags notblank,
nowhitespace, cinema_epoch and notfuture are registered in internal/validation.
*/
package models
