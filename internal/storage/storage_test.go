package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestStoredName(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	cases := map[string]string{
		"licence.pdf":          "20240301093000_licence.pdf",
		"../../etc/passwd":     "20240301093000_passwd",
		`C:\Users\me\scan.jpg`: "20240301093000_scan.jpg",
		"my file.png":          "20240301093000_my_file.png",
		"":                     "20240301093000_NA",
	}
	for in, want := range cases {
		if got := StoredName(now, in); got != want {
			t.Fatalf("StoredName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocalStoreSaveOpen(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "20240301093000_a.txt", strings.NewReader("hello"), 5, "text/plain"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rc, err := store.Open(ctx, "20240301093000_a.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "hello" {
		t.Fatalf("unexpected content %q", b)
	}

	if _, err := store.Open(ctx, "missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Open(ctx, "../secret"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for traversal, got %v", err)
	}
	if err := store.Save(ctx, "a/b", strings.NewReader("x"), 1, ""); err == nil {
		t.Fatalf("expected error for nested name")
	}
}
