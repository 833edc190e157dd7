package analysis

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepoCreateAndGet(t *testing.T) {
	repo := NewMemoryRepo(10)
	ctx := context.Background()

	analysis := Analysis{ID: "a1", FileName: "resume.pdf", ATSScore: 72}
	if err := repo.Create(ctx, analysis); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FileName != "resume.pdf" || got.ATSScore != 72 {
		t.Fatalf("unexpected analysis %+v", got)
	}
}

func TestMemoryRepoNotFound(t *testing.T) {
	repo := NewMemoryRepo(10)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoEvictsOldest(t *testing.T) {
	repo := NewMemoryRepo(2)
	ctx := context.Background()

	for _, id := range []string{"a1", "a2", "a3"} {
		if err := repo.Create(ctx, Analysis{ID: id}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	if repo.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", repo.Len())
	}
	if _, err := repo.GetByID(ctx, "a1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected oldest entry evicted, got %v", err)
	}
	for _, id := range []string{"a2", "a3"} {
		if _, err := repo.GetByID(ctx, id); err != nil {
			t.Fatalf("expected %s to survive, got %v", id, err)
		}
	}
}

func TestMemoryRepoHonorsContext(t *testing.T) {
	repo := NewMemoryRepo(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Create(ctx, Analysis{ID: "a1"}); err == nil {
		t.Fatalf("expected context error on create")
	}
	if _, err := repo.GetByID(ctx, "a1"); err == nil {
		t.Fatalf("expected context error on get")
	}
}
