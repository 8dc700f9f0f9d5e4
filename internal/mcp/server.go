// ABOUTME: MCP server exposing journal attachments to AI agents.
// ABOUTME: Provides tools and a resource template over the media store.

package mcp

import (
	"context"

	"github.com/harper/journl/internal/ingest"
	"github.com/harper/journl/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server   *mcp.Server
	store    *store.Store
	ingestor *ingest.Ingestor
}

func NewServer(s *store.Store, ing *ingest.Ingestor, version string) *Server {
	srv := &Server{store: s, ingestor: ing}

	srv.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "journl",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
		},
	)

	srv.registerTools()
	srv.registerResources()

	return srv
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
