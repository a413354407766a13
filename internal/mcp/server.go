package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"dropindex/internal/catalog"
	"dropindex/internal/config"
	"dropindex/internal/embedder"
	"dropindex/internal/extract"
	"dropindex/internal/indexer"
	"dropindex/internal/searcher"
	"dropindex/internal/syncer"
)

const (
	// ServerName is the MCP server name
	ServerName = "dropindex"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	cfg      *config.Config
	catalog  *catalog.Catalog
	syncer   *syncer.Syncer
	searcher *searcher.Searcher
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	cat, err := catalog.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	emb := embedder.NewService()
	ix := indexer.New(cat, extract.NewRegistry(), emb)

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:      mcpServer,
		cfg:      cfg,
		catalog:  cat,
		syncer:   syncer.New(cat, ix, cfg),
		searcher: searcher.New(cat, emb),
	}

	s.registerTools()
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.catalog.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(semanticSearchTool(), s.handleSemanticSearch)
	s.mcp.AddTool(recentFilesTool(), s.handleRecentFiles)
	s.mcp.AddTool(syncIndexTool(), s.handleSyncIndex)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
