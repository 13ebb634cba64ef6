package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFlight_CollapsesConcurrentCalls(t *testing.T) {
	var f Flight[string]
	var counter int32
	var joined int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, shared, err := f.Do(context.Background(), "generate:2025-10", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil || got != "ok" {
				t.Errorf("flight call: got=%q err=%v", got, err)
			}
			if shared {
				atomic.AddInt32(&joined, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if got := atomic.LoadInt32(&joined); got != workers-1 {
		t.Fatalf("expected %d joined callers, got %d", workers-1, got)
	}
	if f.InFlight() != 0 {
		t.Fatalf("expected no pending keys after completion")
	}
}

func TestFlight_DistinctKeysRunIndependently(t *testing.T) {
	var f Flight[int]

	first, shared, _ := f.Do(context.Background(), "suggest:2025-10", func() (int, error) { return 1, nil })
	if shared {
		t.Fatalf("expected first call to run on its own")
	}
	second, _, _ := f.Do(context.Background(), "suggest:2025-11", func() (int, error) { return 2, nil })
	if first == second {
		t.Fatalf("expected distinct results, got %v and %v", first, second)
	}
}

func TestFlight_JoinedCallerHonoursOwnContext(t *testing.T) {
	var f Flight[int]
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_, _, _ = f.Do(context.Background(), "suggest:2025-10", func() (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, shared, err := f.Do(ctx, "suggest:2025-10", func() (int, error) { return 2, nil })
	close(release)

	if !shared {
		t.Fatalf("expected caller to join the running call")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
