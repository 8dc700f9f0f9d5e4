package journal_test

import (
	"context"
	"testing"

	"github.com/harper/journl/internal/ingest"
	"github.com/harper/journl/internal/journal"
	"github.com/harper/journl/internal/mirror"
	"github.com/harper/journl/internal/models"
	"github.com/harper/journl/internal/store"
	"github.com/m-mizutani/gt"
)

func newEditor(t *testing.T) (*journal.Editor, *mirror.JSONMirror) {
	t.Helper()
	m, _ := mirror.NewMemory("journl-media")
	s := store.New(context.Background(), m)
	return journal.NewEditor(s, ingest.New()), m
}

func TestEditorBody(t *testing.T) {
	e, m := newEditor(t)
	e.SetBody("Dear diary")
	gt.Value(t, e.Body()).Equal("Dear diary")
	// the body is never persisted
	gt.Array(t, m.Load(context.Background())).Length(0)
}

func TestSubmitLinkSuccessClosesMenu(t *testing.T) {
	ctx := context.Background()
	e, m := newEditor(t)

	gt.NoError(t, e.ToggleOptions()).Required()
	gt.NoError(t, e.OpenLinkInput()).Required()
	e.SetLinkInput("https://example.com")

	link, err := e.SubmitLink(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, link.URL).Equal("https://example.com")
	gt.Value(t, e.State()).Equal(journal.Closed)
	gt.Value(t, e.LinkInput()).Equal("")

	persisted := m.Load(ctx)
	gt.Array(t, persisted).Length(1)
	gt.Value(t, persisted[0].AttachmentID()).Equal(link.ID)
}

func TestSubmitLinkFailureKeepsPromptOpen(t *testing.T) {
	ctx := context.Background()
	e, m := newEditor(t)

	gt.NoError(t, e.ToggleOptions()).Required()
	gt.NoError(t, e.OpenLinkInput()).Required()
	e.SetLinkInput("not a url")

	_, err := e.SubmitLink(ctx)
	gt.Error(t, err).Is(ingest.ErrInvalidURL)
	gt.Value(t, e.State()).Equal(journal.LinkInputOpen)
	gt.Value(t, e.LinkInput()).Equal("not a url")
	gt.Array(t, m.Load(ctx)).Length(0)

	gt.NoError(t, e.Cancel()).Required()
	gt.Value(t, e.State()).Equal(journal.Closed)
	gt.Value(t, e.LinkInput()).Equal("")
}

func TestSubmitLinkRequiresPrompt(t *testing.T) {
	e, _ := newEditor(t)
	_, err := e.SubmitLink(context.Background())
	gt.Error(t, err).Is(journal.ErrInvalidTransition)
}

func TestAddImagesClosesMenuAndReportsRejections(t *testing.T) {
	ctx := context.Background()
	e, m := newEditor(t)
	gt.NoError(t, e.ToggleOptions()).Required()

	b, err := e.AddImages(ctx, []ingest.File{
		ingest.NewFile("a.png", "image/png", []byte("a")),
		ingest.NewFile("b.pdf", "application/pdf", []byte("b")),
	})
	gt.NoError(t, err).Required()
	gt.Array(t, b.Accepted).Length(1)
	gt.Array(t, b.Rejected).Length(1)
	gt.Value(t, e.State()).Equal(journal.Closed)
	gt.Array(t, m.Load(ctx)).Length(1)
}

func TestAddDocumentsWithoutMenu(t *testing.T) {
	ctx := context.Background()
	e, _ := newEditor(t)

	b, err := e.AddDocuments(ctx, []ingest.File{ingest.NewFile("a.pdf", ingest.MimePDF, []byte("%PDF"))})
	gt.NoError(t, err).Required()
	gt.Bool(t, b.OK()).True()
	gt.Value(t, e.State()).Equal(journal.Closed)
	gt.Value(t, e.Media()[0].Kind()).Equal(models.KindDocument)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	e, m := newEditor(t)

	l1, err := e.AddLink(ctx, "https://a.example")
	gt.NoError(t, err).Required()
	_, err = e.AddLink(ctx, "https://b.example")
	gt.NoError(t, err).Required()

	gt.NoError(t, e.Remove(ctx, l1.ID)).Required()
	persisted := m.Load(ctx)
	gt.Array(t, persisted).Length(1)
	gt.Value(t, persisted[0].(*models.Link).URL).Equal("https://b.example")
}
