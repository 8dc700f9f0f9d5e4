package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/harper/journl/internal/ingest"
	"github.com/harper/journl/internal/mirror"
	"github.com/harper/journl/internal/models"
	"github.com/harper/journl/internal/store"
	"github.com/m-mizutani/gt"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestServer(t *testing.T) (*Server, *mirror.JSONMirror) {
	t.Helper()
	m, _ := mirror.NewMemory("journl-media")
	s := store.New(context.Background(), m)
	return NewServer(s, ingest.New(), "test"), m
}

func call(t *testing.T, h func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error), args string) *mcp.CallToolResult {
	t.Helper()
	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(args)}}
	res, err := h(context.Background(), req)
	gt.NoError(t, err).Required()
	gt.Value(t, res).NotNil()
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(*mcp.TextContent).Text
}

func TestAddLinkAndList(t *testing.T) {
	s, m := newTestServer(t)

	res := call(t, s.handleAddLink, `{"url":"https://example.com"}`)
	gt.Bool(t, res.IsError).False()
	gt.String(t, text(res)).Contains("Preview for example.com")

	persisted := m.Load(context.Background())
	gt.Array(t, persisted).Length(1)

	res = call(t, s.handleListMedia, `{}`)
	var listed []mediaSummary
	gt.NoError(t, json.Unmarshal([]byte(text(res)), &listed)).Required()
	gt.Array(t, listed).Length(1)
	gt.Value(t, listed[0].URL).Equal("https://example.com")
	gt.Value(t, listed[0].Kind).Equal("link")
}

func TestAddLinkInvalid(t *testing.T) {
	s, m := newTestServer(t)

	res := call(t, s.handleAddLink, `{"url":"not a url"}`)
	gt.Bool(t, res.IsError).True()
	gt.Array(t, m.Load(context.Background())).Length(0)
}

func TestAddFileAndGet(t *testing.T) {
	s, _ := newTestServer(t)
	payload := []byte{0x89, 'P', 'N', 'G'}

	args, _ := json.Marshal(map[string]string{
		"kind":      "image",
		"filename":  "pic.png",
		"mime_type": "image/png",
		"data":      base64.StdEncoding.EncodeToString(payload),
	})
	res := call(t, s.handleAddFile, string(args))
	gt.Bool(t, res.IsError).False()

	items := s.store.List()
	gt.Array(t, items).Length(1)
	img, ok := items[0].(*models.Image)
	gt.Bool(t, ok).True()
	gt.Value(t, img.Size).Equal(int64(len(payload)))

	res = call(t, s.handleGetMedia, `{"id":"`+models.ShortID(img.ID)+`"}`)
	var got struct {
		Attachment mediaSummary `json:"attachment"`
		Data       string       `json:"data"`
	}
	gt.NoError(t, json.Unmarshal([]byte(text(res)), &got)).Required()
	gt.Value(t, got.Attachment.ID).Equal(img.ID)
	gt.Value(t, got.Data).Equal(base64.StdEncoding.EncodeToString(payload))
}

func TestAddFileRejectsWrongType(t *testing.T) {
	s, _ := newTestServer(t)

	args, _ := json.Marshal(map[string]string{
		"kind":      "image",
		"filename":  "notes.txt",
		"mime_type": "text/plain",
		"data":      base64.StdEncoding.EncodeToString([]byte("hi")),
	})
	res := call(t, s.handleAddFile, string(args))
	gt.Bool(t, res.IsError).True()
	gt.Value(t, s.store.Len()).Equal(0)
}

func TestRemoveMedia(t *testing.T) {
	s, m := newTestServer(t)
	call(t, s.handleAddLink, `{"url":"https://a.example"}`)
	call(t, s.handleAddLink, `{"url":"https://b.example"}`)

	first := s.store.List()[0]
	res := call(t, s.handleRemoveMedia, `{"id":"`+first.AttachmentID()+`"}`)
	gt.Bool(t, res.IsError).False()

	persisted := m.Load(context.Background())
	gt.Array(t, persisted).Length(1)
	gt.String(t, persisted[0].Label()).Contains("b.example")

	res = call(t, s.handleRemoveMedia, `{"id":"`+first.AttachmentID()+`"}`)
	gt.Bool(t, res.IsError).True()
}

func TestReadResource(t *testing.T) {
	s, _ := newTestServer(t)
	call(t, s.handleAddLink, `{"url":"https://example.com/page"}`)
	id := s.store.List()[0].AttachmentID()

	res, err := s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: resourcePrefix + id},
	})
	gt.NoError(t, err).Required()
	gt.Array(t, res.Contents).Length(1)
	gt.Value(t, res.Contents[0].Text).Equal("https://example.com/page")

	_, err = s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "other://x"},
	})
	gt.Error(t, err)
}

func TestListSeesWritesFromAnotherStore(t *testing.T) {
	ctx := context.Background()
	m, _ := mirror.NewMemory("journl-media")
	s := NewServer(store.New(ctx, m), ingest.New(), "test")

	other := store.New(ctx, m)
	gt.NoError(t, other.Append(ctx, models.NewLink("https://cli.example", "Preview for cli.example", ""))).Required()

	res := call(t, s.handleListMedia, `{}`)
	var listed []mediaSummary
	gt.NoError(t, json.Unmarshal([]byte(text(res)), &listed)).Required()
	gt.Array(t, listed).Length(1)
	gt.Value(t, listed[0].URL).Equal("https://cli.example")
}
