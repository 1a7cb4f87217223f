// ABOUTME: MCP server implementation for letterboxd2notion
// ABOUTME: Exposes the feed, diary pages, TMDB enrichment and reviews as tools for AI agents

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/harper/letterboxd2notion/internal/diary"
	"github.com/harper/letterboxd2notion/internal/fetch"
	"github.com/harper/letterboxd2notion/internal/logger"
	"github.com/harper/letterboxd2notion/internal/pipeline"
)

// PageFetcher fetches one diary page. *diary.Scraper implements it.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) (diary.Page, error)
}

// Deps are the collaborators the tools call into. Enricher may be nil when
// no TMDB key is configured.
type Deps struct {
	Fetcher  fetch.Fetcher
	RSSURL   string
	Diary    PageFetcher
	Enricher pipeline.Enricher
	APIKey   string
	Version  string
	Log      logrus.FieldLogger
}

// Server wraps the MCP server with letterboxd2notion-specific context
type Server struct {
	mcpServer *server.MCPServer
	deps      Deps
	log       logrus.FieldLogger
}

// NewServer creates a new MCP server instance
func NewServer(deps Deps) *Server {
	if deps.Version == "" {
		deps.Version = "dev"
	}
	s := &Server{deps: deps, log: deps.Log}
	if s.log == nil {
		s.log = logger.Get()
	}

	s.mcpServer = server.NewMCPServer(
		"letterboxd2notion",
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
