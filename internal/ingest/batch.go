// ABOUTME: Multi-file ingestion with per-item isolation.
// ABOUTME: A rejected file is recorded and skipped; the rest still go through.

package ingest

import (
	"github.com/harper/journl/internal/models"
)

// Rejection records why one file of a batch was not ingested.
type Rejection struct {
	Name string
	Err  error
}

type Batch struct {
	Accepted []models.Attachment
	Rejected []Rejection
}

func (b Batch) OK() bool {
	return len(b.Rejected) == 0
}

func (i *Ingestor) IngestImages(files []File) Batch {
	return ingestEach(files, func(f File) (models.Attachment, error) {
		img, err := i.IngestImage(f)
		if err != nil {
			return nil, err
		}
		return img, nil
	})
}

func (i *Ingestor) IngestDocuments(files []File) Batch {
	return ingestEach(files, func(f File) (models.Attachment, error) {
		doc, err := i.IngestDocument(f)
		if err != nil {
			return nil, err
		}
		return doc, nil
	})
}

func ingestEach(files []File, fn func(File) (models.Attachment, error)) Batch {
	var b Batch
	for _, f := range files {
		a, err := fn(f)
		if err != nil {
			b.Rejected = append(b.Rejected, Rejection{Name: f.Name, Err: err})
			continue
		}
		b.Accepted = append(b.Accepted, a)
	}
	return b
}
