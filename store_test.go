package board

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func testStoreRoundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Load(ctx, "missing"); err != nil || ok {
		t.Fatalf("Load(missing) = ok=%v err=%v, want absent", ok, err)
	}

	want := []byte(`{"stickers":null,"background":{"kind":"none"}}`)
	if err := s.Save(ctx, DefaultDocumentKey, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, ok, err := s.Load(ctx, DefaultDocumentKey)
	if err != nil || !ok {
		t.Fatalf("Load() = ok=%v err=%v, want stored bytes", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Load() = %q, want %q", got, want)
	}

	// Overwrite replaces, not appends.
	want2 := []byte(`{"stickers":[],"background":{"kind":"color","color":"#fff","opacity":1}}`)
	if err := s.Save(ctx, DefaultDocumentKey, want2); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, _, err = s.Load(ctx, DefaultDocumentKey)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want2) {
		t.Errorf("Load() after overwrite = %q, want %q", got, want2)
	}
}

func TestMemoryStore(t *testing.T) {
	testStoreRoundTrip(t, NewMemoryStore())
}

func TestMemoryStoreCopiesData(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	data := []byte("original")
	if err := s.Save(ctx, "k", data); err != nil {
		t.Fatal(err)
	}
	data[0] = 'X' // caller keeps mutating its buffer

	got, _, err := s.Load(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "original" {
		t.Errorf("Load() = %q, caller mutation leaked into store", got)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	testStoreRoundTrip(t, s)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), DefaultDocumentKey, []byte("x")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "board.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	testStoreRoundTrip(t, s)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")
	want := []byte("persisted across connections")

	s, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), DefaultDocumentKey, want); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = OpenSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, ok, err := s.Load(context.Background(), DefaultDocumentKey)
	if err != nil || !ok {
		t.Fatalf("Load() = ok=%v err=%v after reopen", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Load() = %q, want %q", got, want)
	}
}
