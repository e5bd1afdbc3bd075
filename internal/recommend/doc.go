// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package recommend derives film recommendations by user-based collaborative
// filtering over likes.
//
// # Algorithm
//
// For a target user the engine:
//
//  1. Asks the DataProvider how many liked films every other user shares with
//     the target.
//  2. Picks the single most similar user: the largest overlap wins, ties go
//     to the lowest user id. Users with no overlap never qualify.
//  3. Returns the films the similar user likes that the target has not liked.
//
// When no user qualifies the result is empty.
//
// # Usage
//
//	engine := recommend.NewEngine()
//	err := db.WithTx(ctx, func(tx *database.Store) error {
//		filmIDs, err := engine.Recommend(ctx, tx, userID)
//		...
//	})
//
// Running the reads inside one transaction means a like added concurrently
// cannot land between the overlap query and the like lists.
//
// The selection and difference steps are pure functions, so they are tested
// without a database. The engine holds no state and is safe for concurrent use.
package recommend
