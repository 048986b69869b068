package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/user-directory/internal/core/domain"
)

type recordingRecorder struct {
	mu     sync.Mutex
	events []domain.UserEvent
}

func (r *recordingRecorder) Record(_ context.Context, event domain.UserEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestDispatcher_RecordsEvents(t *testing.T) {
	rec := &recordingRecorder{}
	d := NewDispatcher(2, rec, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Enqueue(domain.UserEvent{UserID: "u1", Action: domain.EventModified, Timestamp: time.Now()})
	}

	deadline := time.After(2 * time.Second)
	for rec.count() < 10 {
		select {
		case <-deadline:
			t.Fatalf("expected 10 events recorded, got %d", rec.count())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingRecorder{}, zerolog.Nop())
	first := d.shardIndex("some-user")
	for i := 0; i < 100; i++ {
		if d.shardIndex("some-user") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
