package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"reactcore/pkg/rateset"
)

func TestStorePutGetListDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	store.SetNowFunc(func() time.Time { return fixed })

	for _, name := range []string{"fuel", "clad"} {
		if err := store.Put(ctx, rateset.Document{Name: name, Payload: json.RawMessage(`[]`)}); err != nil {
			t.Fatalf("put %s: %v", name, err)
		}
	}
	doc, err := store.Get(ctx, "fuel")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !doc.UpdatedAt.Equal(fixed) {
		t.Fatalf("expected stamped time, got %v", doc.UpdatedAt)
	}
	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "clad" || list[1].Name != "fuel" {
		t.Fatalf("list must be sorted by name, got %+v", list)
	}
	removed, err := store.Delete(ctx, "fuel")
	if err != nil || !removed {
		t.Fatalf("delete: %v %v", removed, err)
	}
	removed, err = store.Delete(ctx, "fuel")
	if err != nil || removed {
		t.Fatalf("second delete must report false, got %v %v", removed, err)
	}
	if _, err := store.Get(ctx, "fuel"); !errors.Is(err, rateset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestStorePutReplacesAndCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	payload := json.RawMessage(`[1]`)
	if err := store.Put(ctx, rateset.Document{Name: "fuel", Payload: payload, Count: 1}); err != nil {
		t.Fatalf("put: %v", err)
	}
	payload[1] = '9'
	doc, _ := store.Get(ctx, "fuel")
	if string(doc.Payload) != "[1]" {
		t.Fatalf("store must copy payloads, got %s", doc.Payload)
	}
	doc.Payload[1] = '7'
	again, _ := store.Get(ctx, "fuel")
	if string(again.Payload) != "[1]" {
		t.Fatalf("get must return copies, got %s", again.Payload)
	}
	if err := store.Put(ctx, rateset.Document{Name: "fuel", Payload: json.RawMessage(`[1,2]`), Count: 2}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	doc, _ = store.Get(ctx, "fuel")
	if doc.Count != 2 {
		t.Fatalf("put must replace, got %+v", doc)
	}
}

func TestStoreRejectsInvalidDocuments(t *testing.T) {
	store := NewStore()
	if err := store.Put(context.Background(), rateset.Document{Name: "a/b", Payload: json.RawMessage(`[]`)}); !errors.Is(err, rateset.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if err := store.Put(context.Background(), rateset.Document{Name: "ok", Payload: json.RawMessage(`{}`)}); !errors.Is(err, rateset.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestExportImportState(t *testing.T) {
	ctx := context.Background()
	src := NewStore()
	_ = src.Put(ctx, rateset.Document{Name: "fuel", Payload: json.RawMessage(`[]`)})
	snap := src.ExportState()
	dst := NewStore()
	dst.ImportState(snap)
	delete(snap, "fuel")
	if _, err := dst.Get(ctx, "fuel"); err != nil {
		t.Fatalf("imported state must be independent of the snapshot: %v", err)
	}
}
