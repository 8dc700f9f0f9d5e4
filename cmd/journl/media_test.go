// ABOUTME: Tests for media command helpers.
// ABOUTME: Covers the default output name used by media get.

package main

import (
	"testing"

	"github.com/harper/journl/internal/models"
)

func TestOutputName(t *testing.T) {
	named := &models.Image{ID: "0190aaaa-0000-7000-8000-111122223333", Name: "photo.png"}
	if got := outputName(named, "image/png"); got != "photo.png" {
		t.Errorf("expected photo.png, got %q", got)
	}

	nested := &models.Image{ID: "0190aaaa-0000-7000-8000-111122223333", Name: "../../etc/photo.png"}
	if got := outputName(nested, "image/png"); got != "photo.png" {
		t.Errorf("expected base name, got %q", got)
	}

	unnamed := &models.Image{ID: "0190aaaa-0000-7000-8000-111122223333"}
	if got := outputName(unnamed, "image/png"); got != "22223333.png" {
		t.Errorf("expected short id with extension, got %q", got)
	}

	unknown := &models.Document{ID: "0190aaaa-0000-7000-8000-111122223333", MimeType: "application/x-journl-unknown"}
	if got := outputName(unknown, "application/x-journl-unknown"); got != "22223333" {
		t.Errorf("expected bare short id, got %q", got)
	}
}
