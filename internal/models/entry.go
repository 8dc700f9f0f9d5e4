// ABOUTME: Entry model holding the free-text body of a journal entry.
// ABOUTME: Lives in memory only; attachments are persisted separately.

package models

import (
	"strings"
	"time"
)

type Entry struct {
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewEntry(body string) *Entry {
	now := time.Now()
	return &Entry{
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (e *Entry) SetBody(body string) {
	e.Body = body
	e.Touch()
}

func (e *Entry) Touch() {
	e.UpdatedAt = time.Now()
}

func (e *Entry) WordCount() int {
	return len(strings.Fields(e.Body))
}
