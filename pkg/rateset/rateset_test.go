package rateset

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateName(t *testing.T) {
	valid := []string{"fuel", "core-1", "U235 (n,fission) rates", "a.b"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Fatalf("ValidateName(%q): %v", name, err)
		}
	}
	invalid := []string{"", " padded", "a/b", `a\b`, "..", "x..y", "tab\tname", strings.Repeat("x", MaxNameLength+1)}
	for _, name := range invalid {
		if err := ValidateName(name); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("ValidateName(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestDocumentValidate(t *testing.T) {
	doc := Document{Name: "fuel", Payload: json.RawMessage(`[]`)}
	if err := doc.Validate(); err != nil {
		t.Fatalf("empty array payload is valid: %v", err)
	}
	doc.Payload = json.RawMessage(`{"a":1}`)
	if err := doc.Validate(); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("object payload must be rejected, got %v", err)
	}
	doc.Payload = json.RawMessage(`[1,`)
	if err := doc.Validate(); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("truncated payload must be rejected, got %v", err)
	}
	doc = Document{Name: "fuel", Payload: json.RawMessage(`[]`), Count: -1}
	if err := doc.Validate(); err == nil {
		t.Fatalf("negative count must be rejected")
	}
	if err := (Document{Payload: json.RawMessage(`[]`)}).Validate(); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("missing name must be rejected, got %v", err)
	}
}

func TestDocumentCloneAndSummary(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	doc := Document{Name: "fuel", Payload: json.RawMessage(`[1]`), Count: 1, UpdatedAt: now}
	cp := doc.Clone()
	cp.Payload[1] = '2'
	if string(doc.Payload) != "[1]" {
		t.Fatalf("clone must not share payload, original now %s", doc.Payload)
	}
	sum := doc.Summary()
	if sum.Name != "fuel" || sum.Count != 1 || !sum.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if err := NotFound("fuel"); !errors.Is(err, ErrNotFound) || !strings.Contains(err.Error(), "fuel") {
		t.Fatalf("unexpected not found error %v", err)
	}
}
