// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"errors"
	"io"
	"strings"

	"github.com/tomtom215/filmgraph/internal/logging"
)

var (
	// ErrNotFound is returned when a row addressed by id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write would violate a uniqueness rule,
	// such as a second review by the same user for the same film.
	ErrConflict = errors.New("conflict")
)

// closeWithLog closes a resource and logs failures.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource during cleanup where the error is irrelevant.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// isConstraintViolation reports a DuckDB primary key or unique violation.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Constraint Error") ||
		strings.Contains(msg, "violates primary key constraint") ||
		strings.Contains(msg, "violates unique constraint")
}

// isDuplicateKey reports a primary key or unique violation, whether raised by
// the statement itself or by the commit that lost a race against a
// concurrent insert of the same key.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate key") ||
		strings.Contains(msg, "PRIMARY KEY or UNIQUE constraint violation") ||
		strings.Contains(msg, "violates primary key constraint") ||
		strings.Contains(msg, "violates unique constraint")
}

// isTransactionConflict reports a DuckDB optimistic-concurrency write conflict.
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Transaction conflict") ||
		strings.Contains(msg, "Conflict on update") ||
		strings.Contains(msg, "Conflict on tuple deletion")
}

// isRetryable reports failures caused by a concurrent transaction. Rerunning
// the whole transaction sees the winner's rows, so idempotent inserts turn
// into no-ops and existence checks report the conflict.
func isRetryable(err error) bool {
	return isTransactionConflict(err) || isDuplicateKey(err)
}
