package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/model"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestSessionRepoCreatesOnFirstMutate(t *testing.T) {
	repo := NewSessionRepo(time.Hour, nil, testLogger())

	snap, err := repo.Mutate(context.Background(), "sess-1", func(s *model.SessionState) error {
		s.TotalMessages = 1
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if snap.ID != "sess-1" || snap.TotalMessages != 1 {
		t.Fatalf("snapshot %+v", snap)
	}

	found, err := repo.Find(context.Background(), "sess-1")
	if err != nil || found.TotalMessages != 1 {
		t.Fatalf("find: %+v, %v", found, err)
	}
}

func TestSessionRepoFindUnknown(t *testing.T) {
	repo := NewSessionRepo(time.Hour, nil, testLogger())
	if _, err := repo.Find(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSessionRepoMutateErrorDoesNotSnapshot(t *testing.T) {
	repo := NewSessionRepo(time.Hour, nil, testLogger())
	boom := errors.New("boom")
	if _, err := repo.Mutate(context.Background(), "sess-1", func(s *model.SessionState) error {
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestSessionRepoSnapshotIsIsolated(t *testing.T) {
	repo := NewSessionRepo(time.Hour, nil, testLogger())
	now := time.Now()

	snap, err := repo.Mutate(context.Background(), "sess-1", func(s *model.SessionState) error {
		s.Append(model.Message{Sender: model.SenderCounterpart, Text: "hi", Timestamp: now}, "hi", now)
		s.AddArtifacts([]string{"scammer@upi"})
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	// Writes through the snapshot must not leak into the store.
	snap.Artifacts[0] = "tampered"
	snap.Messages[0].Text = "tampered"

	found, _ := repo.Find(context.Background(), "sess-1")
	if found.Artifacts[0] != "scammer@upi" || found.Messages[0].Text != "hi" {
		t.Fatalf("snapshot not isolated: %+v", found)
	}
}

func TestSessionRepoConcurrentMutates(t *testing.T) {
	repo := NewSessionRepo(time.Hour, nil, testLogger())
	const goroutines = 32

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Mutate(context.Background(), "sess-1", func(s *model.SessionState) error {
				s.TotalMessages++
				return nil
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	found, _ := repo.Find(context.Background(), "sess-1")
	if found.TotalMessages != goroutines {
		t.Fatalf("lost updates: %d, want %d", found.TotalMessages, goroutines)
	}
}

func TestSessionRepoSweepsIdleNotTouched(t *testing.T) {
	repo := NewSessionRepo(time.Hour, nil, testLogger())
	for _, id := range []string{"idle", "live"} {
		if _, err := repo.Mutate(context.Background(), id, func(s *model.SessionState) error {
			s.TotalMessages = 1
			return nil
		}); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	// Age one entry past the TTL and arm the sweep; "live" was touched just
	// now, so the next mutation's sweep must only drop "idle".
	repo.mu.Lock()
	repo.entries["idle"].lastTouch = time.Now().Add(-2 * time.Hour)
	repo.lastSweep = time.Now().Add(-2 * defaultSweepInterval)
	repo.mu.Unlock()

	if _, err := repo.Mutate(context.Background(), "live", func(s *model.SessionState) error {
		s.TotalMessages++
		return nil
	}); err != nil {
		t.Fatalf("mutate: %v", err)
	}

	if _, err := repo.Find(context.Background(), "idle"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("idle session err = %v, want ErrNotFound", err)
	}
	found, err := repo.Find(context.Background(), "live")
	if err != nil || found.TotalMessages != 2 {
		t.Fatalf("live session %+v, %v", found, err)
	}
}

type captureMirror struct {
	stored []*model.SessionState
	err    error
}

func (m *captureMirror) StoreSnapshot(ctx context.Context, s *model.SessionState) error {
	m.stored = append(m.stored, s)
	return m.err
}

func TestSessionRepoMirrorsSnapshots(t *testing.T) {
	mirror := &captureMirror{}
	repo := NewSessionRepo(time.Hour, mirror, testLogger())

	_, err := repo.Mutate(context.Background(), "sess-1", func(s *model.SessionState) error {
		s.TotalMessages = 1
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if len(mirror.stored) != 1 || mirror.stored[0].ID != "sess-1" {
		t.Fatalf("mirror writes %v", mirror.stored)
	}

	// Mirror failures stay invisible to callers.
	mirror.err = errors.New("redis down")
	if _, err := repo.Mutate(context.Background(), "sess-1", func(s *model.SessionState) error {
		s.TotalMessages++
		return nil
	}); err != nil {
		t.Fatalf("mutate with failing mirror: %v", err)
	}
}

func TestSessionRepoRejectsEmptyID(t *testing.T) {
	repo := NewSessionRepo(time.Hour, nil, testLogger())
	if _, err := repo.Mutate(context.Background(), "", func(s *model.SessionState) error { return nil }); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
