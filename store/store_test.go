package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/icondraft/icondraft"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "designs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreCreateAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc := icondraft.NewDocument().WithContent(icondraft.TextContent{
		Text: "Hi", Size: 200, Weight: 700, Color: icondraft.White,
	})
	id, err := s.Create(ctx, "greeting", doc)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("empty id")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "greeting" {
		t.Errorf("name = %q", got.Name)
	}
	txt, ok := got.Document.Content.(icondraft.TextContent)
	if !ok || txt.Text != "Hi" || txt.Weight != 700 {
		t.Errorf("document content = %#v", got.Document.Content)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("missing timestamp")
	}
}

func TestStoreSaveRevision(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "d", icondraft.NewDocument())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	revised := icondraft.NewDocument().WithExportSize(2048)
	if err := s.Save(ctx, id, revised); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Document.ExportSize != 2048 {
		t.Errorf("export size = %d, want revision persisted", got.Document.ExportSize)
	}

	if err := s.Save(ctx, "no-such-id", revised); !errors.Is(err, ErrNotFound) {
		t.Errorf("save unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestStoreListAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ids := make([]string, 0, 3)
	for _, name := range []string{"a", "b", "c"} {
		id, err := s.Create(ctx, name, icondraft.NewDocument())
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, id)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("list len = %d, want 3", len(all))
	}

	if err := s.Delete(ctx, ids[1]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, ids[1]); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted: err = %v, want ErrNotFound", err)
	}

	// Deleting an unknown id is a no-op.
	if err := s.Delete(ctx, "no-such-id"); err != nil {
		t.Errorf("delete unknown id: %v", err)
	}
}

func TestStoreRename(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "old", icondraft.NewDocument())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Rename(ctx, id, "new"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "new" {
		t.Errorf("name = %q, want %q", got.Name, "new")
	}
	if err := s.Rename(ctx, "no-such-id", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("rename unknown id: err = %v, want ErrNotFound", err)
	}
}
