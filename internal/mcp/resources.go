// ABOUTME: MCP resource providers for letterboxd2notion
// ABOUTME: Exposes the Notion database schema and the current feed as read-only JSON views

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/letterboxd2notion/internal/notion"
	"github.com/harper/letterboxd2notion/internal/parse"
)

// ResourceData is the standard response format for all resources.
type ResourceData struct {
	Metadata ResourceMetadata `json:"metadata"`
	Data     interface{}      `json:"data"`
}

// ResourceMetadata contains metadata about the resource response.
type ResourceMetadata struct {
	Timestamp   time.Time `json:"timestamp"`
	Count       int       `json:"count"`
	ResourceURI string    `json:"resource_uri"`
}

const (
	schemaResourceURI = "letterboxd://notion-schema"
	feedResourceURI   = "letterboxd://feed"
)

func (s *Server) registerResources() {
	s.registerSchemaResource()
	s.registerFeedResource()
}

func (s *Server) registerSchemaResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         schemaResourceURI,
			Name:        "Notion Database Schema",
			Description: "Property definitions the film history database must carry (PATCH /databases/{id} body)",
			MIMEType:    "application/json",
		},
		s.handleSchemaResource,
	)
}

func (s *Server) handleSchemaResource(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return resourceJSON(request.Params.URI, len(notion.Schema), notion.SchemaUpdatePayload())
}

func (s *Server) registerFeedResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         feedResourceURI,
			Name:        "Recent Films",
			Description: "Films currently in the member's Letterboxd RSS feed, unenriched",
			MIMEType:    "application/json",
		},
		s.handleFeedResource,
	)
}

func (s *Server) handleFeedResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	films, err := parse.FetchFeed(ctx, s.deps.Fetcher, s.deps.RSSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	return resourceJSON(request.Params.URI, len(films), films)
}

func resourceJSON(uri string, count int, data interface{}) ([]mcp.ResourceContents, error) {
	response := ResourceData{
		Metadata: ResourceMetadata{
			Timestamp:   time.Now(),
			Count:       count,
			ResourceURI: uri,
		},
		Data: data,
	}

	jsonBytes, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
