package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"aax2mp3/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecord(status history.Status, finished time.Time) history.Record {
	rec := history.Record{
		ID:         uuid.NewString(),
		InputPath:  "/in/book.aax",
		Title:      "A Fine Story",
		Author:     "Jane Author",
		Format:     "mp3",
		Status:     status,
		Chapters:   12,
		OutputDir:  "/out/Jane_Author/A_Fine_Story",
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
	}
	if status == history.StatusFailed {
		rec.Stage = "transcode"
		rec.ErrorKind = "external-tool"
		rec.Error = "exit status 1"
	}
	return rec
}

func TestAddAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := sampleRecord(history.StatusDone, base)
	second := sampleRecord(history.StatusFailed, base.Add(time.Hour))
	if err := store.Add(ctx, first); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Add(ctx, second); err != nil {
		t.Fatalf("Add: %v", err)
	}

	records, err := store.Recent(ctx, 10, false)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != second.ID {
		t.Fatal("records should be newest first")
	}
	got := records[1]
	if got.Title != "A Fine Story" || got.Chapters != 12 || got.Status != history.StatusDone {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.FinishedAt.Equal(base) {
		t.Fatalf("timestamp mismatch: %v", got.FinishedAt)
	}
}

func TestRecentFailedOnly(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	now := time.Now()
	if err := store.Add(ctx, sampleRecord(history.StatusDone, now)); err != nil {
		t.Fatal(err)
	}
	failed := sampleRecord(history.StatusFailed, now.Add(time.Second))
	if err := store.Add(ctx, failed); err != nil {
		t.Fatal(err)
	}

	records, err := store.Recent(ctx, 10, true)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 || records[0].ID != failed.ID {
		t.Fatalf("expected only the failed record, got %+v", records)
	}
	if records[0].Stage != "transcode" || records[0].ErrorKind != "external-tool" {
		t.Fatalf("failure details lost: %+v", records[0])
	}
}

func TestRecentLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	now := time.Now()
	for i := 0; i < 5; i++ {
		if err := store.Add(ctx, sampleRecord(history.StatusDone, now.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatal(err)
		}
	}
	records, err := store.Recent(ctx, 3, false)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()
}
