// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/filmgraph/internal/logging"
)

// Checkpointer is satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// checkpointTimeout bounds a single CHECKPOINT.
const checkpointTimeout = time.Minute

// CheckpointService checkpoints the database every interval.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
}

// NewCheckpointService creates the service. interval must be positive.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	return &CheckpointService{db: db, interval: interval}
}

// Serve checkpoints on every tick until ctx is canceled. A failed checkpoint
// is returned so the supervisor restarts the loop with backoff.
func (s *CheckpointService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("checkpoint interval must be positive, got %v", s.interval)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.checkpoint(ctx); err != nil {
				return err
			}
		}
	}
}

func (s *CheckpointService) checkpoint(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkpointTimeout)
	defer cancel()

	start := time.Now()
	if err := s.db.Checkpoint(ctx); err != nil {
		return fmt.Errorf("periodic checkpoint: %w", err)
	}
	logging.Debug().Dur("duration", time.Since(start)).Msg("Database checkpointed")
	return nil
}

func (s *CheckpointService) String() string {
	return "db-checkpoint"
}
