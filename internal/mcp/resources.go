// ABOUTME: MCP resources exposing attachments by id.
// ABOUTME: Files are returned as blobs, links as their URL.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/journl/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourcePrefix = "journl://media/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: resourcePrefix + "{id}",
			Name:        "Attachment",
			Description: "Access journal attachments by ID or ID fragment",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, ok := strings.CutPrefix(req.Params.URI, resourcePrefix)
	if !ok || id == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	s.store.Reload(ctx)
	a, err := s.store.Find(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{resourceContents(req.Params.URI, a)},
	}, nil
}

func resourceContents(uri string, a models.Attachment) *mcp.ResourceContents {
	if link, ok := a.(*models.Link); ok {
		return &mcp.ResourceContents{URI: uri, MIMEType: "text/uri-list", Text: link.URL}
	}
	mimeType, data, err := models.Bytes(a)
	if err != nil {
		return &mcp.ResourceContents{URI: uri, MIMEType: "text/plain", Text: err.Error()}
	}
	return &mcp.ResourceContents{URI: uri, MIMEType: mimeType, Blob: data}
}
