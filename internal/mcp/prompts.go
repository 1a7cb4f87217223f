// ABOUTME: MCP prompt templates for letterboxd2notion
// ABOUTME: Guided workflows that chain the film tools into a recap of recent viewing

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.registerFilmRecapPrompt()
}

func (s *Server) registerFilmRecapPrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "film-recap",
			Description: "Summarize what the member watched recently, with ratings, rewatches and review highlights",
			Arguments: []mcp.PromptArgument{
				{
					Name:        "pages",
					Description: "Number of diary pages to include beyond the feed (default: 0)",
					Required:    false,
				},
			},
		},
		s.handleFilmRecap,
	)
}

func (s *Server) handleFilmRecap(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	pages := "0"
	if req.Params.Arguments != nil {
		if p, ok := req.Params.Arguments["pages"]; ok && p != "" {
			pages = p
		}
	}

	template := fmt.Sprintf(`# Film Recap

## Overview
Write a short recap of the member's recent viewing on Letterboxd.

## Workflow Steps

### Step 1: Recent films
**Use recent_films tool** to list the films in the RSS feed. Note the rating,
watched date and rewatch flag of each.

### Step 2: Older diary entries
Fetch %s additional diary page(s) with the **diary_page tool**, starting at page 1.
Stop early when has_more is false. Diary entries have no review text.

### Step 3: Reviews
For feed entries whose ID starts with letterboxd-review-, call **get_review**
and pick one or two sentences worth quoting.

### Step 4: Recap
- Group films by rating, highest first
- Call out rewatches separately
- Quote review highlights under their film
- Mention films without a rating at the end
`, pages)

	return &mcp.GetPromptResult{
		Description: "Recap workflow for recent Letterboxd viewing",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}
