// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/metrics"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store holds every entity and relation query. The same methods run either
// against the pool (reads, single statements) or inside a transaction handed
// out by DB.WithTx.
type Store struct {
	q querier
}

// maxTxAttempts bounds reruns of a transaction that lost a race.
const maxTxAttempts = 5

// WithTx runs fn inside one transaction. fn's Store writes through the
// transaction; returning an error rolls everything back. A transaction that
// loses a race to a concurrent one (write conflict or duplicate key) is rerun
// from the beginning. A duplicate key that survives every attempt is
// reported as ErrConflict.
func (db *DB) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.runTx(ctx, fn)
		if !isRetryable(err) {
			return err
		}
		if attempt == maxTxAttempts {
			break
		}
		metrics.DBTxRetries.Inc()
		logging.Ctx(ctx).Debug().Int("attempt", attempt).Err(err).Msg("Retrying transaction after concurrent write")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay(attempt)):
		}
	}
	if isDuplicateKey(err) && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}

// retryDelay grows linearly with jitter so racing transactions spread out.
func retryDelay(attempt int) time.Duration {
	base := time.Duration(attempt) * 10 * time.Millisecond
	return base + rand.N(10*time.Millisecond)
}

func (db *DB) runTx(ctx context.Context, fn func(tx *Store) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&Store{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Ctx(ctx).Warn().Err(rbErr).Msg("Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// exec runs a statement and records its metrics.
func (s *Store) exec(ctx context.Context, op, table, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := s.q.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery(op, table, time.Since(start), err)
	return res, err
}

// query runs a SELECT and records its metrics.
func (s *Store) query(ctx context.Context, table, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.q.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("SELECT", table, time.Since(start), err)
	return rows, err
}

// recordQuery records metrics for statements run through s.q directly.
func recordQuery(op, table string, start time.Time, err error) {
	metrics.RecordDBQuery(op, table, time.Since(start), err)
}

// exists reports whether query returns at least one row.
func (s *Store) exists(ctx context.Context, table, query string, args ...any) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var one int
	start := time.Now()
	err := s.q.QueryRowContext(ctx, query, args...).Scan(&one)
	metrics.RecordDBQuery("SELECT", table, time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s: %w", table, err)
	}
	return true, nil
}

// scanIDs reads a single BIGINT column.
func scanIDs(rows *sql.Rows) ([]int64, error) {
	defer closeWithLog(rows, "rows")

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// placeholders returns "?, ?, ?" for n arguments and the ids as []any.
func placeholders(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}

func rowsAffected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
