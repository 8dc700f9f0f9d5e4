// ABOUTME: MCP tools for attachment operations.
// ABOUTME: Maps CLI functionality to the MCP tool interface.

package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/harper/journl/internal/ingest"
	"github.com/harper/journl/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_media
	s.server.AddTool(&mcp.Tool{
		Name:        "list_media",
		Description: "List journal attachments in insertion order",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"kind": {"type": "string", "enum": ["image", "document", "link"], "description": "Only list this kind"}
			}
		}`),
	}, s.handleListMedia)

	// get_media
	s.server.AddTool(&mcp.Tool{
		Name:        "get_media",
		Description: "Get an attachment, including base64 content for files",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Attachment ID or a 6+ char fragment"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetMedia)

	// add_link
	s.server.AddTool(&mcp.Tool{
		Name:        "add_link",
		Description: "Attach a hyperlink; the preview title is a placeholder derived from the host",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"url": {"type": "string", "description": "Absolute URL"}
			},
			"required": ["url"]
		}`),
	}, s.handleAddLink)

	// add_file
	s.server.AddTool(&mcp.Tool{
		Name:        "add_file",
		Description: "Attach an image or a PDF/Word document",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"kind": {"type": "string", "enum": ["image", "document"]},
				"filename": {"type": "string", "description": "Filename"},
				"mime_type": {"type": "string", "description": "Declared MIME type"},
				"data": {"type": "string", "description": "Base64 encoded data"}
			},
			"required": ["kind", "filename", "mime_type", "data"]
		}`),
	}, s.handleAddFile)

	// remove_media
	s.server.AddTool(&mcp.Tool{
		Name:        "remove_media",
		Description: "Remove an attachment",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Attachment ID or a 6+ char fragment"}
			},
			"required": ["id"]
		}`),
	}, s.handleRemoveMedia)
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

// mediaSummary is the listing form: no inline data.
type mediaSummary struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Label    string `json:"label"`
	URL      string `json:"url,omitempty"`
	Size     int64  `json:"size,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

func summarize(a models.Attachment) mediaSummary {
	sum := mediaSummary{ID: a.AttachmentID(), Kind: string(a.Kind()), Label: a.Label()}
	return models.Visit(a, models.Visitor[mediaSummary]{
		Image: func(i *models.Image) mediaSummary {
			sum.Size = i.Size
			return sum
		},
		Document: func(d *models.Document) mediaSummary {
			sum.Size = d.Size
			sum.MimeType = d.MimeType
			return sum
		},
		Link: func(l *models.Link) mediaSummary {
			sum.URL = l.URL
			return sum
		},
	})
}

func (s *Server) handleListMedia(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Kind string `json:"kind"`
	}
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return nil, err
		}
	}

	s.store.Reload(ctx)
	summaries := []mediaSummary{}
	for _, a := range s.store.List() {
		if params.Kind != "" && string(a.Kind()) != params.Kind {
			continue
		}
		summaries = append(summaries, summarize(a))
	}
	return jsonResult(summaries), nil
}

func (s *Server) handleGetMedia(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	s.store.Reload(ctx)
	a, err := s.store.Find(params.ID)
	if err != nil {
		return errorResult("failed to get attachment: %v", err), nil
	}

	result := map[string]any{"attachment": summarize(a)}
	if _, data, err := models.Bytes(a); err == nil {
		result["data"] = base64.StdEncoding.EncodeToString(data)
	}
	return jsonResult(result), nil
}

func (s *Server) handleAddLink(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	link, err := s.ingestor.IngestLink(ctx, params.URL)
	if err != nil {
		return errorResult("invalid link: %v", err), nil
	}
	if err := s.store.Append(ctx, link); err != nil {
		return errorResult("failed to store link: %v", err), nil
	}
	return textResult(fmt.Sprintf("Added link %s (%s)", link.ID, link.Title)), nil
}

func (s *Server) handleAddFile(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Kind     string `json:"kind"`
		Filename string `json:"filename"`
		MimeType string `json:"mime_type"`
		Data     string `json:"data"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(params.Data)
	if err != nil {
		return errorResult("invalid base64 data: %v", err), nil
	}
	f := ingest.NewFile(params.Filename, params.MimeType, data)

	var a models.Attachment
	switch params.Kind {
	case string(models.KindImage):
		a, err = s.ingestor.IngestImage(f)
	case string(models.KindDocument):
		a, err = s.ingestor.IngestDocument(f)
	default:
		return errorResult("kind must be image or document, got %q", params.Kind), nil
	}
	if err != nil {
		return errorResult("rejected %s: %v", params.Filename, err), nil
	}

	if err := s.store.Append(ctx, a); err != nil {
		return errorResult("failed to store attachment: %v", err), nil
	}
	return textResult(fmt.Sprintf("Added %s %s", a.Kind(), a.AttachmentID())), nil
}

func (s *Server) handleRemoveMedia(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	s.store.Reload(ctx)
	a, err := s.store.Find(params.ID)
	if err != nil {
		return errorResult("failed to find attachment: %v", err), nil
	}
	if err := s.store.Remove(ctx, a.AttachmentID()); err != nil {
		return errorResult("failed to remove attachment: %v", err), nil
	}
	return textResult(fmt.Sprintf("Removed %s", a.AttachmentID())), nil
}
