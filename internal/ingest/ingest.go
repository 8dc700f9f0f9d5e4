// ABOUTME: Attachment ingestion: validates raw files or URLs and builds records.
// ABOUTME: Pure conversion; persistence and state changes happen in the caller.

package ingest

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/harper/journl/internal/models"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidURL      = errors.New("invalid URL")
	ErrTooLarge        = errors.New("file exceeds size limit")
)

// Document MIME types accepted by IngestDocument.
const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var documentTypes = map[string]bool{
	MimePDF:  true,
	MimeDOC:  true,
	MimeDOCX: true,
}

// File is a raw file selection: a declared name and content type plus a
// reader over its bytes.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

type Ingestor struct {
	previewer Previewer
	maxSize   int64
}

type Option func(*Ingestor)

// WithPreviewer replaces the placeholder link previewer.
func WithPreviewer(p Previewer) Option {
	return func(i *Ingestor) {
		if p != nil {
			i.previewer = p
		}
	}
}

// WithMaxSize limits the byte size of a single file; 0 means unlimited.
func WithMaxSize(n int64) Option {
	return func(i *Ingestor) {
		i.maxSize = n
	}
}

func New(opts ...Option) *Ingestor {
	i := &Ingestor{previewer: PlaceholderPreviewer{}}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func IsImageType(contentType string) bool {
	return strings.HasPrefix(mediaType(contentType), "image/")
}

func IsDocumentType(contentType string) bool {
	return documentTypes[mediaType(contentType)]
}

// mediaType strips parameters such as "; charset=binary".
func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func (i *Ingestor) IngestImage(f File) (*models.Image, error) {
	if !IsImageType(f.ContentType) {
		return nil, goerr.Wrap(ErrUnsupportedType, "not an image",
			goerr.V("name", f.Name), goerr.V("content_type", f.ContentType))
	}
	data, err := i.read(f)
	if err != nil {
		return nil, err
	}
	return models.NewImage(f.Name, mediaType(f.ContentType), data), nil
}

func (i *Ingestor) IngestDocument(f File) (*models.Document, error) {
	if !IsDocumentType(f.ContentType) {
		return nil, goerr.Wrap(ErrUnsupportedType, "not a PDF or Word document",
			goerr.V("name", f.Name), goerr.V("content_type", f.ContentType))
	}
	data, err := i.read(f)
	if err != nil {
		return nil, err
	}
	return models.NewDocument(f.Name, mediaType(f.ContentType), data), nil
}

func (i *Ingestor) read(f File) ([]byte, error) {
	if f.Reader == nil {
		return nil, goerr.New("file has no content", goerr.V("name", f.Name))
	}
	r := f.Reader
	if i.maxSize > 0 {
		r = io.LimitReader(r, i.maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file", goerr.V("name", f.Name))
	}
	if i.maxSize > 0 && int64(len(data)) > i.maxSize {
		return nil, goerr.Wrap(ErrTooLarge, "file too large",
			goerr.V("name", f.Name), goerr.V("limit", i.maxSize))
	}
	return data, nil
}

// IngestLink validates raw as an absolute URL and attaches preview metadata.
func (i *Ingestor) IngestLink(ctx context.Context, raw string) (*models.Link, error) {
	u, err := ParseURL(raw)
	if err != nil {
		return nil, err
	}
	preview, err := i.previewer.Preview(ctx, u)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build link preview", goerr.V("url", u.String()))
	}
	return models.NewLink(strings.TrimSpace(raw), preview.Title, preview.Favicon), nil
}

// ParseURL accepts only non-empty absolute URLs with a host.
func ParseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, goerr.Wrap(ErrInvalidURL, "URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidURL, err.Error(), goerr.V("url", raw))
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return nil, goerr.Wrap(ErrInvalidURL, "URL needs a scheme and host", goerr.V("url", raw))
	}
	return u, nil
}
