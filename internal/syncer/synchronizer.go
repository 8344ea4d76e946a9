package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dukerupert/overhill/internal/api"
	"github.com/dukerupert/overhill/internal/snapshot"
	"github.com/dukerupert/overhill/internal/store"
)

const (
	retryBase   = 500 * time.Millisecond
	maxAttempts = 3
)

// Synchronizer runs the fetch/compare/persist/expose cycle for one
// resource type. Each instance owns exactly one snapshot key and one
// store slice; failures in one resource never affect another.
type Synchronizer[T any] struct {
	name      string
	key       string
	slice     *store.Slice[T]
	snapshots *snapshot.Store
	fetch     func(context.Context) (T, error)
	logger    *slog.Logger
	loaded    atomic.Bool
}

func New[T any](
	name, key string,
	slice *store.Slice[T],
	snapshots *snapshot.Store,
	fetch func(context.Context) (T, error),
	logger *slog.Logger,
) *Synchronizer[T] {
	return &Synchronizer[T]{
		name:      name,
		key:       key,
		slice:     slice,
		snapshots: snapshots,
		fetch:     fetch,
		logger:    logger,
	}
}

// Load fetches the canonical list, compares it against the last durable
// snapshot, and exposes the winner through the slice.
//
// A Load issued while another is in flight is dropped. Transport
// failures retry with capped exponential backoff; server rejections do
// not. On failure the previously exposed value stays put and the error
// is recorded on the slice.
func (s *Synchronizer[T]) Load(ctx context.Context) error {
	if !s.slice.BeginLoad() {
		return nil
	}

	cached, err := s.snapshots.Get(s.key)
	if err != nil {
		// Treat an unreadable snapshot as a first run.
		s.logger.Warn("read snapshot", "resource", s.name, "error", err)
		cached = nil
	}

	canonical, err := s.fetchWithBackoff(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled: discard the result, keep the prior status.
			s.slice.Abort()
			return ctx.Err()
		}
		s.logger.Warn("sync failed", "resource", s.name, "error", err)
		s.slice.Fail(err)
		return err
	}

	data, err := json.Marshal(canonical)
	if err != nil {
		err = fmt.Errorf("encode %s snapshot: %w", s.name, err)
		s.slice.Fail(err)
		return err
	}

	if cached == nil {
		return s.exposeNew(canonical, data)
	}

	// Hash shortcut: unequal sums mean the deep comparison cannot match.
	sum, err := s.snapshots.Checksum(s.key)
	if err == nil && sum != "" && sum != snapshot.Sum(data) {
		return s.exposeNew(canonical, data)
	}

	var prior T
	if err := json.Unmarshal(cached, &prior); err != nil {
		s.logger.Warn("decode snapshot", "resource", s.name, "error", err)
		return s.exposeNew(canonical, data)
	}

	if !reflect.DeepEqual(canonical, prior) {
		return s.exposeNew(canonical, data)
	}

	// Identical payload. If this session already exposed a value, keep
	// the existing instance so consumers see a stable reference.
	if s.loaded.Load() {
		s.slice.SucceedUnchanged()
	} else {
		s.loaded.Store(true)
		s.slice.Succeed(prior)
	}
	return nil
}

func (s *Synchronizer[T]) exposeNew(canonical T, data []byte) error {
	if err := s.snapshots.Set(s.key, data); err != nil {
		// The fetched data is still good; persist again next sync.
		s.logger.Warn("persist snapshot", "resource", s.name, "error", err)
	}
	s.loaded.Store(true)
	s.slice.Succeed(canonical)
	return nil
}

func (s *Synchronizer[T]) fetchWithBackoff(ctx context.Context) (T, error) {
	var value T
	backoff := retry.WithMaxRetries(maxAttempts-1, retry.NewExponential(retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, err := s.fetch(ctx)
		if err != nil {
			if api.IsRetryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		value = v
		return nil
	})
	return value, err
}

// Slice exposes the synchronizer's read model for consumers.
func (s *Synchronizer[T]) Slice() *store.Slice[T] {
	return s.slice
}
