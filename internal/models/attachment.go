// ABOUTME: Attachment model: a sealed sum type over image, document and link.
// ABOUTME: Visit gives every consumer one exhaustive switch over the variants.

package models

import (
	"fmt"

	"github.com/google/uuid"
)

type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
	KindLink     Kind = "link"
)

// Attachment is one media item attached to a journal entry. Only the types
// in this package implement it.
type Attachment interface {
	AttachmentID() string
	Kind() Kind
	// Label is the human-readable name: file name for files, title for links.
	Label() string
	sealed()
}

type Image struct {
	ID      string
	Name    string
	DataURI string
	Size    int64
}

type Document struct {
	ID       string
	Name     string
	DataURI  string
	Size     int64
	MimeType string
}

type Link struct {
	ID      string
	Title   string
	Favicon string // empty when no favicon is known
	URL     string
}

func (i *Image) AttachmentID() string    { return i.ID }
func (d *Document) AttachmentID() string { return d.ID }
func (l *Link) AttachmentID() string     { return l.ID }

func (*Image) Kind() Kind    { return KindImage }
func (*Document) Kind() Kind { return KindDocument }
func (*Link) Kind() Kind     { return KindLink }

func (i *Image) Label() string    { return i.Name }
func (d *Document) Label() string { return d.Name }
func (l *Link) Label() string     { return l.Title }

func (*Image) sealed()    {}
func (*Document) sealed() {}
func (*Link) sealed()     {}

// NewID returns a time-ordered unique identifier (UUIDv7: millisecond
// timestamp plus random bits, so same-millisecond ids never collide).
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

const shortIDLen = 8

// ShortID is the display handle for an id: its random tail.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[len(id)-shortIDLen:]
}

func NewImage(name string, mimeType string, data []byte) *Image {
	return &Image{
		ID:      NewID(),
		Name:    name,
		DataURI: EncodeDataURI(mimeType, data),
		Size:    int64(len(data)),
	}
}

func NewDocument(name string, mimeType string, data []byte) *Document {
	return &Document{
		ID:       NewID(),
		Name:     name,
		DataURI:  EncodeDataURI(mimeType, data),
		Size:     int64(len(data)),
		MimeType: mimeType,
	}
}

func NewLink(url, title, favicon string) *Link {
	return &Link{
		ID:      NewID(),
		Title:   title,
		Favicon: favicon,
		URL:     url,
	}
}

// Visitor holds one handler per variant. All three must be set.
type Visitor[T any] struct {
	Image    func(*Image) T
	Document func(*Document) T
	Link     func(*Link) T
}

// Visit dispatches a to the matching handler of v.
func Visit[T any](a Attachment, v Visitor[T]) T {
	switch x := a.(type) {
	case *Image:
		return v.Image(x)
	case *Document:
		return v.Document(x)
	case *Link:
		return v.Link(x)
	default:
		panic(fmt.Sprintf("models: unhandled attachment type %T", a))
	}
}
