// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built lazily and shared; it caches struct
// metadata and is safe for concurrent use. Field names in errors are the JSON
// names, so messages read the same as the request body.
//
// Custom tags:
//
//	notblank      non-whitespace content required (film, genre and director names, review content)
//	nowhitespace  user login
//	cinema_epoch  film release date not before 1895-12-28
//	notfuture     user birthday not after today
//
// Example:
//
//	if verr := validation.ValidateStruct(&film); verr != nil {
//	    return service.Validation(verr)
//	}
package validation
