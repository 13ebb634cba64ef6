package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "2025-10", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "period:current", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "2025-10" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "period:label:2025-10", true)
	if _, ok := store.Get(context.Background(), "period:label:2025-10"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "period:label:2025-10"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_InvalidateByPrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "period:current", 1)
	store.Set(ctx, "period:label:2025-10", 2)
	store.Set(ctx, "date:2025-10-01", 3)

	store.Invalidate(ctx, "period:")
	if store.Len() != 1 {
		t.Fatalf("expected only the date entry to survive, got %d entries", store.Len())
	}
	if _, ok := store.Get(ctx, "date:2025-10-01"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}
}

func TestStore_LoaderErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errUnexpectedValue
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, errUnexpectedValue) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if v, err := store.GetOrLoad(context.Background(), "k", loader); err != nil || v != "ok" {
		t.Fatalf("expected reload after error, got %v, %v", v, err)
	}
}

func TestStore_GetOrLoad_DropsLoadRacedByInvalidate(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	loading := make(chan struct{})
	release := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		v, err := store.GetOrLoad(ctx, "period:label:2025-10", func(context.Context) (any, error) {
			close(loading)
			<-release
			return "closed", nil
		})
		if err == nil && v != "closed" {
			err = errUnexpectedValue
		}
		done <- err
	}()

	<-loading
	store.Invalidate(ctx, "period:")
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("get or load: %v", err)
	}

	if _, ok := store.Get(ctx, "period:label:2025-10"); ok {
		t.Fatalf("expected value loaded before invalidation to be dropped")
	}
	v, err := store.GetOrLoad(ctx, "period:label:2025-10", func(context.Context) (any, error) { return "open", nil })
	if err != nil || v != "open" {
		t.Fatalf("expected fresh load after invalidation, got %v, %v", v, err)
	}
	if _, ok := store.Get(ctx, "period:label:2025-10"); !ok {
		t.Fatalf("expected fresh load to be cached")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
