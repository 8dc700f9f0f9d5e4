// ABOUTME: JournalEditor composes the entry text, media store, ingestor and menu state.
// ABOUTME: Every operation returns its error so the front end can show it.

package journal

import (
	"context"
	"log/slog"

	"github.com/harper/journl/internal/ingest"
	"github.com/harper/journl/internal/logging"
	"github.com/harper/journl/internal/models"
	"github.com/harper/journl/internal/store"
	"github.com/m-mizutani/goerr/v2"
)

type Editor struct {
	entry    *models.Entry
	store    *store.Store
	ingestor *ingest.Ingestor

	state     State
	linkInput string
}

func NewEditor(s *store.Store, ing *ingest.Ingestor) *Editor {
	return &Editor{
		entry:    models.NewEntry(""),
		store:    s,
		ingestor: ing,
		state:    Closed,
	}
}

func (e *Editor) Entry() *models.Entry { return e.entry }
func (e *Editor) Body() string         { return e.entry.Body }
func (e *Editor) SetBody(body string)  { e.entry.SetBody(body) }

func (e *Editor) Media() []models.Attachment { return e.store.List() }
func (e *Editor) State() State               { return e.state }
func (e *Editor) LinkInput() string          { return e.linkInput }

func (e *Editor) SetLinkInput(s string) {
	e.linkInput = s
}

func (e *Editor) fire(ev Event) error {
	next, err := Next(e.state, ev)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}

func (e *Editor) ToggleOptions() error { return e.fire(ToggleOptions) }

// OpenLinkInput moves from the options menu to the link prompt.
func (e *Editor) OpenLinkInput() error { return e.fire(ChooseLink) }

// Cancel closes whichever menu is open. The link input is cleared.
func (e *Editor) Cancel() error {
	if err := e.fire(Cancel); err != nil {
		return err
	}
	e.linkInput = ""
	return nil
}

// AddImages ingests and appends each file. The options menu closes
// whether or not every file was accepted; rejections are reported in the
// batch. A non-nil error means persisting an accepted image failed.
func (e *Editor) AddImages(ctx context.Context, files []ingest.File) (ingest.Batch, error) {
	return e.addBatch(ctx, ChooseImage, e.ingestor.IngestImages(files))
}

func (e *Editor) AddDocuments(ctx context.Context, files []ingest.File) (ingest.Batch, error) {
	return e.addBatch(ctx, ChooseDocument, e.ingestor.IngestDocuments(files))
}

func (e *Editor) addBatch(ctx context.Context, ev Event, b ingest.Batch) (ingest.Batch, error) {
	if e.state == OptionsOpen {
		if err := e.fire(ev); err != nil {
			return b, err
		}
	}
	for _, r := range b.Rejected {
		logging.From(ctx).Warn("attachment rejected", slog.String("name", r.Name), logging.ErrAttr(r.Err))
	}
	if err := e.store.AppendAll(ctx, b.Accepted); err != nil {
		return b, goerr.Wrap(err, "failed to store attachments")
	}
	return b, nil
}

// SubmitLink ingests the current link input. On success the input is
// cleared and the menu closes. On failure the menu stays on the link
// prompt with the input intact and the error is returned.
func (e *Editor) SubmitLink(ctx context.Context) (*models.Link, error) {
	if e.state != LinkInputOpen {
		return nil, goerr.Wrap(ErrInvalidTransition, "link input is not open", goerr.V("state", e.state.String()))
	}
	link, err := e.AddLink(ctx, e.linkInput)
	if err != nil {
		return nil, err
	}
	e.linkInput = ""
	if err := e.fire(LinkSubmitted); err != nil {
		return link, err
	}
	return link, nil
}

// AddLink ingests raw and appends it without touching the menu state.
func (e *Editor) AddLink(ctx context.Context, raw string) (*models.Link, error) {
	link, err := e.ingestor.IngestLink(ctx, raw)
	if err != nil {
		return nil, err
	}
	if err := e.store.Append(ctx, link); err != nil {
		return nil, goerr.Wrap(err, "failed to store link")
	}
	return link, nil
}

func (e *Editor) Remove(ctx context.Context, id string) error {
	return e.store.Remove(ctx, id)
}
