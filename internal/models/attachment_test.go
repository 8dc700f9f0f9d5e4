// ABOUTME: Tests for Attachment models.
// ABOUTME: Validates constructors, id generation and variant dispatch.

package models

import (
	"bytes"
	"testing"
)

func TestNewImage(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}

	img := NewImage("cat.png", "image/png", data)

	if img.ID == "" {
		t.Error("expected ID to be generated")
	}
	if img.Name != "cat.png" {
		t.Errorf("expected name %q, got %q", "cat.png", img.Name)
	}
	if img.Size != int64(len(data)) {
		t.Errorf("expected size %d, got %d", len(data), img.Size)
	}

	mimeType, got, err := DecodeDataURI(img.DataURI)
	if err != nil {
		t.Fatalf("failed to decode data URI: %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("expected mime type image/png, got %q", mimeType)
	}
	if !bytes.Equal(got, data) {
		t.Error("expected decoded bytes to match input")
	}
}

func TestNewDocumentKeepsMimeType(t *testing.T) {
	doc := NewDocument("report.pdf", "application/pdf", []byte("%PDF-1.7"))

	if doc.MimeType != "application/pdf" {
		t.Errorf("expected mime type application/pdf, got %q", doc.MimeType)
	}
	if doc.Kind() != KindDocument {
		t.Errorf("expected kind document, got %q", doc.Kind())
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s after %d iterations", id, i)
		}
		seen[id] = true
	}
}

func TestVisit(t *testing.T) {
	kinds := Visitor[string]{
		Image:    func(*Image) string { return "img" },
		Document: func(*Document) string { return "doc" },
		Link:     func(*Link) string { return "link" },
	}

	items := []Attachment{
		NewImage("a.png", "image/png", nil),
		NewDocument("b.pdf", "application/pdf", nil),
		NewLink("https://example.com", "Example", ""),
	}
	want := []string{"img", "doc", "link"}

	for i, a := range items {
		if got := Visit(a, kinds); got != want[i] {
			t.Errorf("item %d: expected %q, got %q", i, want[i], got)
		}
	}
}

func TestBytesOnLink(t *testing.T) {
	_, _, err := Bytes(NewLink("https://example.com", "Example", ""))
	if err != ErrNoContent {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"); got != "2e3f4a5b" {
		t.Errorf("expected random tail, got %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("expected short id unchanged, got %q", got)
	}
}
