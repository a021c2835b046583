//-------------------------------------------------------------------------
//
// pgEdge Investment Seeder
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pgEdge/pgedge-seeder/internal/logging"
)

// ErrRetriesExhausted is returned when the database did not become
// available within the retry budget.
var ErrRetriesExhausted = errors.New("could not connect to database after maximum retries")

// RetryConfig bounds how long we wait for the database.
type RetryConfig struct {
	// MaxRetries is the total number of attempts.
	MaxRetries int

	// Delay is the fixed pause between attempts.
	Delay time.Duration
}

// DefaultRetryConfig returns the default retry budget: 30 attempts, 2s apart.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 30,
		Delay:      2 * time.Second,
	}
}

// Retry calls fn until it succeeds or the attempt budget is spent. The
// attempt number passed to fn starts at 1. Attempts are spaced by a
// constant backoff; there is no pause after the final attempt. Cancelling
// ctx aborts the wait between attempts.
func Retry(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context, attempt int) error) error {
	maxRetries := max(1, cfg.MaxRetries)

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(cfg.Delay), uint64(maxRetries-1)),
		ctx,
	)

	attempt := 0
	var lastErr error
	operation := func() error {
		attempt++
		lastErr = fn(ctx, attempt)
		if lastErr != nil {
			logging.Info().
				Err(lastErr).
				Int("attempt", attempt).
				Int("max_retries", maxRetries).
				Msgf("Waiting for database... Attempt %d/%d", attempt, maxRetries)
		}
		return lastErr
	}

	notify := func(err error, next time.Duration) {
		logging.Debug().
			Dur("next", next).
			Msg("Retrying database connection")
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("stopped waiting for database: %w", ctxErr)
		}
		return fmt.Errorf("%w (%d attempts): %w", ErrRetriesExhausted, maxRetries, lastErr)
	}
	return nil
}
