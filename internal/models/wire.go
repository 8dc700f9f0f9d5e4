// ABOUTME: JSON wire format for persisted attachment lists.
// ABOUTME: Keeps the flat {id, type, name, url, ...} layout used by existing snapshots.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKind = errors.New("unknown attachment kind")

// Record is the flat persisted form of an attachment. For images and
// documents URL holds the data URI; for links it holds the target.
type Record struct {
	ID       RecordID `json:"id"`
	Type     Kind     `json:"type"`
	Name     string   `json:"name,omitempty"`
	URL      string   `json:"url"`
	Size     int64    `json:"size,omitempty"`
	FileType string   `json:"fileType,omitempty"`
	Title    string   `json:"title,omitempty"`
	Favicon  string   `json:"favicon,omitempty"`
}

// RecordID accepts both string ids and the numeric ids written by older
// versions (e.g. 1718000000000.123). In memory both are strings.
type RecordID string

func (r *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*r = RecordID(n.String())
	return nil
}

// MarshalJSON writes ids that came from numeric legacy records back as
// JSON numbers, so rewriting a snapshot keeps their original form.
func (r RecordID) MarshalJSON() ([]byte, error) {
	if isNumericID(string(r)) {
		return []byte(r), nil
	}
	return json.Marshal(string(r))
}

func isNumericID(id string) bool {
	if id == "" || (id[0] != '-' && (id[0] < '0' || id[0] > '9')) {
		return false
	}
	return json.Valid([]byte(id))
}

func ToRecord(a Attachment) Record {
	return Visit(a, Visitor[Record]{
		Image: func(i *Image) Record {
			return Record{ID: RecordID(i.ID), Type: KindImage, Name: i.Name, URL: i.DataURI, Size: i.Size}
		},
		Document: func(d *Document) Record {
			return Record{ID: RecordID(d.ID), Type: KindDocument, Name: d.Name, URL: d.DataURI, Size: d.Size, FileType: d.MimeType}
		},
		Link: func(l *Link) Record {
			return Record{ID: RecordID(l.ID), Type: KindLink, URL: l.URL, Title: l.Title, Favicon: l.Favicon}
		},
	})
}

func (r Record) ToModel() (Attachment, error) {
	id := strings.TrimSpace(string(r.ID))
	if id == "" {
		return nil, errors.New("record has no id")
	}
	switch r.Type {
	case KindImage:
		return &Image{ID: id, Name: r.Name, DataURI: r.URL, Size: r.Size}, nil
	case KindDocument:
		return &Document{ID: id, Name: r.Name, DataURI: r.URL, Size: r.Size, MimeType: r.FileType}, nil
	case KindLink:
		if r.URL == "" {
			return nil, fmt.Errorf("link %s has no url", id)
		}
		return &Link{ID: id, Title: r.Title, Favicon: r.Favicon, URL: r.URL}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, r.Type)
	}
}

func MarshalList(items []Attachment) ([]byte, error) {
	records := make([]Record, len(items))
	for i, a := range items {
		records[i] = ToRecord(a)
	}
	return json.Marshal(records)
}

// UnmarshalList decodes a persisted list. A document that is not a JSON
// array fails as a whole; individual elements that cannot be decoded are
// skipped and reported in the returned slice of element errors.
func UnmarshalList(data []byte) ([]Attachment, []error, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}

	items := make([]Attachment, 0, len(raw))
	var skipped []error
	for i, elem := range raw {
		var rec Record
		if err := json.Unmarshal(elem, &rec); err != nil {
			skipped = append(skipped, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		a, err := rec.ToModel()
		if err != nil {
			skipped = append(skipped, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		items = append(items, a)
	}
	return items, skipped, nil
}
