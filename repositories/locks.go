package repositories

import (
	"ClinicFlow/database"
	"ClinicFlow/models"
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	lockTTL       = 10 * time.Second
	lockRetries   = 3
	lockRetryWait = 2 * time.Second

	readRetries   = 2
	readRetryWait = 100 * time.Millisecond
)

// withLock runs fn while holding a distributed lock on key. Acquisition is
// retried a bounded number of times; a lock that cannot be obtained surfaces
// as a ConcurrencyConflictError so the caller can retry the whole operation.
func withLock(ctx context.Context, key string, fn func() error) error {
	return withLocks(ctx, []string{key}, fn)
}

// withLocks acquires every key in a stable order before running fn, so that
// two writers contending for overlapping key sets cannot deadlock.
func withLocks(ctx context.Context, keys []string, fn func() error) error {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	token := uuid.New().String()
	var held []string
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			if err := database.ReleaseLock(ctx, held[i], token); err != nil {
				log.Printf("Failed to release lock %s: %v", held[i], err)
			}
		}
	}

	for _, key := range sorted {
		var locked bool
		var err error
		for i := 0; i < lockRetries; i++ {
			locked, err = database.AcquireLock(ctx, key, token, lockTTL)
			if err == nil && locked {
				break
			}
			if i < lockRetries-1 {
				time.Sleep(lockRetryWait)
			}
		}
		if !locked {
			release()
			if err != nil {
				log.Printf("Failed to acquire lock %s: %v", key, err)
			}
			return &models.ConcurrencyConflictError{Resource: key}
		}
		held = append(held, key)
	}
	defer release()

	return fn()
}

// withReadRetry retries an idempotent read a small bounded number of times.
// Mutations are never routed through here.
func withReadRetry(fn func() error) error {
	var err error
	for i := 0; i <= readRetries; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < readRetries {
			time.Sleep(readRetryWait)
		}
	}
	return err
}
