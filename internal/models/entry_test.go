// ABOUTME: Tests for the Entry model.

package models

import (
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	e := NewEntry("first day")

	if e.Body != "first day" {
		t.Errorf("expected body %q, got %q", "first day", e.Body)
	}
	if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestEntrySetBody(t *testing.T) {
	e := NewEntry("")
	before := e.UpdatedAt

	time.Sleep(time.Millisecond)
	e.SetBody("went for a long walk today")

	if !e.UpdatedAt.After(before) {
		t.Error("expected UpdatedAt to advance")
	}
	if e.WordCount() != 6 {
		t.Errorf("expected 6 words, got %d", e.WordCount())
	}
}
