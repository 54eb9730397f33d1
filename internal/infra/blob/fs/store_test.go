package fs

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"reactcore/internal/blob/core"
)

func TestFilesystemStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "blobs")
	bs, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if bs.Driver() != core.DriverFilesystem || bs.Root() != root {
		t.Fatalf("unexpected driver/root %s %s", bs.Driver(), bs.Root())
	}
	payload := []byte(`[["ReactionRate",{}]]`)
	info, err := bs.Put(ctx, "exports/fuel.json", bytes.NewReader(payload), core.PutOptions{ContentType: "application/json", Metadata: map[string]string{"count": "1"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	sum := sha256.Sum256(payload)
	if info.ETag != hex.EncodeToString(sum[:]) || info.Size != int64(len(payload)) {
		t.Fatalf("unexpected info %#v", info)
	}
	if _, err := os.Stat(filepath.Join(root, "exports", "fuel.json.meta")); err != nil {
		t.Fatalf("sidecar missing: %v", err)
	}
	if _, err := bs.Put(ctx, "exports/fuel.json", bytes.NewReader(nil), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	head, err := bs.Head(ctx, "exports/fuel.json")
	if err != nil || head.ContentType != "application/json" || head.Metadata["count"] != "1" {
		t.Fatalf("head: %#v %v", head, err)
	}
	_, rc, err := bs.Get(ctx, "exports/fuel.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if !bytes.Equal(body, payload) {
		t.Fatalf("unexpected body %q", body)
	}
	_, _ = bs.Put(ctx, "top.json", bytes.NewReader([]byte("[]")), core.PutOptions{})
	list, err := bs.List(ctx, "exports/")
	if err != nil || len(list) != 1 || list[0].Key != "exports/fuel.json" {
		t.Fatalf("list: %+v %v", list, err)
	}
	if all, _ := bs.List(ctx, ""); len(all) != 2 {
		t.Fatalf("expected two blobs, got %+v", all)
	}
	if ok, err := bs.Delete(ctx, "exports/fuel.json"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, err := bs.Delete(ctx, "exports/fuel.json"); err != nil || ok {
		t.Fatalf("second delete: %v %v", ok, err)
	}
	if _, _, err := bs.Get(ctx, "exports/fuel.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := bs.Head(ctx, "exports/fuel.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on head, got %v", err)
	}
}

func TestFilesystemStoreRejectsBadKeys(t *testing.T) {
	bs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"", "  ", "../escape", "/abs", "a/../../b", "x.meta"} {
		if _, err := bs.Put(context.Background(), key, bytes.NewReader(nil), core.PutOptions{}); !errors.Is(err, core.ErrInvalidKey) {
			t.Fatalf("Put(%q): expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestFilesystemStoreCorruptSidecar(t *testing.T) {
	root := t.TempDir()
	bs, _ := New(root)
	if _, err := bs.Put(context.Background(), "k", bytes.NewReader([]byte("x")), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "k.meta"), []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := bs.Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := bs.List(context.Background(), ""); err == nil {
		t.Fatalf("expected list to surface decode error")
	}
}
