package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakePlay struct {
	line int
}

func fixedClock(store *MemoryStore[*fakePlay], start time.Time) *time.Time {
	clock := start
	store.now = func() time.Time { return clock }
	return &clock
}

func TestMemoryStore_SharesPointerValues(t *testing.T) {
	store := NewMemoryStore[*fakePlay]()
	ctx := context.Background()
	id := store.NewID()

	p := &fakePlay{line: 1}
	if err := store.Put(ctx, id, p); err != nil {
		t.Fatalf("Unexpected error on Put: %v", err)
	}
	p.line = 7

	got, ok, err := store.Get(ctx, id)
	if err != nil || !ok {
		t.Fatalf("Expected session %s, got ok=%v err=%v", id, ok, err)
	}
	if got != p || got.line != 7 {
		t.Errorf("Expected the stored play to be shared, got line %d", got.line)
	}
	if _, ok, _ := store.Get(ctx, store.NewID()); ok {
		t.Error("Expected an unknown id to miss")
	}
}

func TestMemoryStore_NewIDIsUUID(t *testing.T) {
	store := NewMemoryStore[*fakePlay]()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := store.NewID()
		u, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("Expected a UUID, got %q", id)
		}
		if u.Version() != 4 {
			t.Errorf("Expected version 4, got %d", u.Version())
		}
		if seen[id] {
			t.Errorf("Expected unique ids, got %s twice", id)
		}
		seen[id] = true
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore[*fakePlay]()
	ctx := context.Background()

	_ = store.Put(ctx, "a", &fakePlay{})
	_ = store.Put(ctx, "b", &fakePlay{})
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("Unexpected error on Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "a"); ok {
		t.Error("Expected deleted session to be gone")
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 live session, got %d", store.Len())
	}
	if err := store.Delete(ctx, "a"); err != nil {
		t.Errorf("Expected deleting a missing id to succeed, got %v", err)
	}
}

func TestMemoryStore_SweepDropsIdle(t *testing.T) {
	store := NewMemoryStore[*fakePlay]()
	ctx := context.Background()
	clock := fixedClock(store, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_ = store.Put(ctx, "old", &fakePlay{})
	*clock = clock.Add(30 * time.Minute)
	_ = store.Put(ctx, "new", &fakePlay{})
	*clock = clock.Add(40 * time.Minute)

	if n := store.Sweep(time.Hour); n != 1 {
		t.Errorf("Expected 1 swept session, got %d", n)
	}
	if _, ok, _ := store.Get(ctx, "old"); ok {
		t.Error("Expected idle session to be swept")
	}
	if _, ok, _ := store.Get(ctx, "new"); !ok {
		t.Error("Expected recent session to survive")
	}
}

func TestMemoryStore_TouchRefreshesIdleTime(t *testing.T) {
	store := NewMemoryStore[*fakePlay]()
	ctx := context.Background()
	clock := fixedClock(store, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_ = store.Put(ctx, "read", &fakePlay{})
	_ = store.Put(ctx, "written", &fakePlay{})
	*clock = clock.Add(50 * time.Minute)
	_, _, _ = store.Get(ctx, "read")
	_ = store.Put(ctx, "written", &fakePlay{line: 2})
	*clock = clock.Add(50 * time.Minute)

	if n := store.Sweep(time.Hour); n != 0 {
		t.Errorf("Expected touched sessions to survive, swept %d", n)
	}
}

func TestMemoryStore_RunSweeperReportsAndStops(t *testing.T) {
	store := NewMemoryStore[*fakePlay]()
	ctx, cancel := context.WithCancel(context.Background())
	_ = store.Put(ctx, "stale", &fakePlay{})
	store.mu.Lock()
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	store.mu.Unlock()

	swept := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		store.RunSweeper(ctx, time.Millisecond, time.Hour, func(n int) {
			select {
			case swept <- n:
			default:
			}
		})
		close(done)
	}()

	select {
	case n := <-swept:
		if n != 1 {
			t.Errorf("Expected 1 swept session, got %d", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected the sweeper to run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected the sweeper to stop on cancel")
	}
}

func TestMemoryStore_ConcurrentPlaysAndSweeps(t *testing.T) {
	store := NewMemoryStore[*fakePlay]()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		ids[i] = store.NewID()
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if err := store.Put(ctx, id, &fakePlay{line: j}); err != nil {
					t.Errorf("Unexpected error on Put: %v", err)
					return
				}
				if _, ok, _ := store.Get(ctx, id); !ok {
					t.Errorf("Expected session %s to exist", id)
					return
				}
				store.Sweep(time.Hour)
			}
		}(ids[i])
	}
	wg.Wait()

	if store.Len() != len(ids) {
		t.Errorf("Expected %d live sessions, got %d", len(ids), store.Len())
	}
	for _, id := range ids {
		if p, _, _ := store.Get(ctx, id); p == nil || p.line != 49 {
			t.Errorf("Expected last write for %s, got %+v", id, p)
		}
	}
}
