package scancache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func writeMedia(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}
	return path
}

func TestStoreAndLookup(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	media := writeMedia(t, t.TempDir(), "show.mkv", "fake container")

	payload := []byte(`{"streams": []}`)
	if err := store.Store(ctx, media, payload); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, hit, err := store.Lookup(ctx, media)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}
}

func TestLookupMissForUnknownPath(t *testing.T) {
	store := openStore(t)
	media := writeMedia(t, t.TempDir(), "show.mkv", "x")

	_, hit, err := store.Lookup(context.Background(), media)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if hit {
		t.Error("expected miss for never-stored path")
	}
}

func TestLookupMissWhenFileChanged(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	dir := t.TempDir()
	media := writeMedia(t, dir, "show.mkv", "original")

	if err := store.Store(ctx, media, []byte("{}")); err != nil {
		t.Fatalf("Store: %v", err)
	}

	// Grow the file and push mtime forward so the fingerprint changes.
	if err := os.WriteFile(media, []byte("original plus more"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(media, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	_, hit, err := store.Lookup(ctx, media)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if hit {
		t.Error("expected miss after file changed")
	}
}

func TestLookupMissWhenFileGone(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	media := writeMedia(t, t.TempDir(), "show.mkv", "x")
	if err := store.Store(ctx, media, []byte("{}")); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := os.Remove(media); err != nil {
		t.Fatalf("remove: %v", err)
	}

	_, hit, err := store.Lookup(ctx, media)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if hit {
		t.Error("expected miss for deleted file")
	}
}

func TestClearAndCount(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{"a.mkv", "b.mkv"} {
		media := writeMedia(t, dir, name, "x")
		if err := store.Store(ctx, media, []byte("{}")); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("Count = %d, want 2", count)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	count, err = store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("Count after clear = %d, want 0", count)
	}
}

func TestEntriesSortedByPath(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{"b.mkv", "a.mkv"} {
		media := writeMedia(t, dir, name, "x")
		if err := store.Store(ctx, media, []byte("{}")); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if filepath.Base(entries[0].Path) != "a.mkv" {
		t.Errorf("entries not sorted: %v", entries)
	}
	if entries[0].CachedAt.IsZero() {
		t.Error("expected cached_at to round-trip")
	}
}

func TestSecondOpenSameDirFails(t *testing.T) {
	dir := t.TempDir()
	first, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer first.Close()

	if second, err := Open(dir, nil); err == nil {
		second.Close()
		t.Fatal("expected second open on the same cache dir to fail")
	}
}

func TestStoreReplacesEntry(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	media := writeMedia(t, t.TempDir(), "show.mkv", "x")

	if err := store.Store(ctx, media, []byte("first")); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := store.Store(ctx, media, []byte("second")); err != nil {
		t.Fatalf("Store: %v", err)
	}

	payload, hit, err := store.Lookup(ctx, media)
	if err != nil || !hit {
		t.Fatalf("Lookup: hit=%v err=%v", hit, err)
	}
	if string(payload) != "second" {
		t.Errorf("payload = %q, want second", payload)
	}
	count, _ := store.Count(ctx)
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}
