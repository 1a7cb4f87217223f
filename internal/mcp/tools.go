// ABOUTME: MCP tool definitions and handlers for film history operations
// ABOUTME: Recent feed films, single diary pages, TMDB enrichment and Markdown reviews

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/letterboxd2notion/internal/content"
	"github.com/harper/letterboxd2notion/internal/models"
	"github.com/harper/letterboxd2notion/internal/parse"
)

// Type definitions for input/output structures

type RecentFilmsInput struct {
	Enrich *bool `json:"enrich,omitempty"`
}

type FilmsOutput struct {
	Films []models.Film `json:"films"`
	Count int           `json:"count"`
}

type DiaryPageInput struct {
	Page int `json:"page"`
}

type DiaryPageOutput struct {
	Page    int           `json:"page"`
	HasMore bool          `json:"has_more"`
	Films   []models.Film `json:"films"`
	Count   int           `json:"count"`
}

type EnrichFilmInput struct {
	Title  string `json:"title"`
	Year   int    `json:"year,omitempty"`
	TMDBID *int   `json:"tmdb_id,omitempty"`
}

type GetReviewInput struct {
	LetterboxdID string `json:"letterboxd_id"`
}

type GetReviewOutput struct {
	LetterboxdID string `json:"letterboxd_id"`
	Title        string `json:"title,omitempty"`
	Review       string `json:"review"`
}

// Tool registration

func (s *Server) registerTools() {
	s.registerRecentFilmsTool()
	s.registerDiaryPageTool()
	s.registerEnrichFilmTool()
	s.registerGetReviewTool()
}

func (s *Server) registerRecentFilmsTool() {
	tool := mcp.Tool{
		Name:        "recent_films",
		Description: "List the films in the member's Letterboxd RSS feed (most recent diary entries and reviews). Each film carries its Letterboxd ID, title, year, rating, watched date, rewatch flag, review text and TMDB ID when known. Set enrich to resolve poster and backdrop artwork from TMDB.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"enrich": map[string]interface{}{
					"type":        "boolean",
					"description": "Resolve TMDB artwork for each film (default: false). Requires a configured TMDB API key.",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleRecentFilms)
}

func (s *Server) registerDiaryPageTool() {
	tool := mcp.Tool{
		Name:        "diary_page",
		Description: "Fetch one page of the member's Letterboxd diary. Page 1 is the most recent. Diary films have viewing IDs and no review text. Returns has_more=false on the last page.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Diary page number, starting at 1",
					"minimum":     1,
				},
			},
			Required: []string{"page"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleDiaryPage)
}

func (s *Server) registerEnrichFilmTool() {
	tool := mcp.Tool{
		Name:        "enrich_film",
		Description: "Resolve TMDB poster and backdrop URLs for a film. With tmdb_id the movie is looked up directly; otherwise TMDB is searched by title (and year when given) and the first match is used.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Film title. Example: 'Arrival'",
				},
				"year": map[string]interface{}{
					"type":        "integer",
					"description": "Release year used to narrow the search. Example: 2016",
				},
				"tmdb_id": map[string]interface{}{
					"type":        "integer",
					"description": "Known TMDB movie ID. Example: 329865",
				},
			},
			Required: []string{"title"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleEnrichFilm)
}

func (s *Server) registerGetReviewTool() {
	tool := mcp.Tool{
		Name:        "get_review",
		Description: "Get the review text of a feed entry as Markdown, with poster images and the spoiler warning removed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"letterboxd_id": map[string]interface{}{
					"type":        "string",
					"description": "Feed entry ID. Example: 'letterboxd-review-42'",
				},
			},
			Required: []string{"letterboxd_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGetReview)
}

// Tool handlers

func (s *Server) handleRecentFilms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input RecentFilmsInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	films, err := parse.FetchFeed(ctx, s.deps.Fetcher, s.deps.RSSURL)
	if err != nil {
		return nil, err
	}

	if input.Enrich != nil && *input.Enrich {
		if s.deps.Enricher == nil {
			return nil, errors.New("enrichment requires a TMDB API key")
		}
		for i, film := range films {
			enriched, err := s.deps.Enricher.Enrich(ctx, film, s.deps.APIKey)
			if err != nil {
				return nil, fmt.Errorf("enrich %s: %w", film.LetterboxdID, err)
			}
			films[i] = enriched
		}
	}

	return jsonResult(FilmsOutput{Films: films, Count: len(films)})
}

func (s *Server) handleDiaryPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input DiaryPageInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if input.Page < 1 {
		return nil, fmt.Errorf("page must be at least 1, got %d", input.Page)
	}
	if s.deps.Diary == nil {
		return nil, errors.New("diary is not configured")
	}

	page, err := s.deps.Diary.FetchPage(ctx, input.Page)
	if err != nil {
		return nil, err
	}

	return jsonResult(DiaryPageOutput{
		Page:    page.Number,
		HasMore: page.HasMore,
		Films:   page.Films,
		Count:   len(page.Films),
	})
}

func (s *Server) handleEnrichFilm(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input EnrichFilmInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if s.deps.Enricher == nil {
		return nil, errors.New("enrichment requires a TMDB API key")
	}

	film := models.Film{Title: input.Title, Year: input.Year, TMDBID: input.TMDBID}
	enriched, err := s.deps.Enricher.Enrich(ctx, film, s.deps.APIKey)
	if err != nil {
		return nil, err
	}

	s.log.WithField("title", input.Title).Debug("enriched film via mcp")
	return jsonResult(enriched)
}

func (s *Server) handleGetReview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input GetReviewInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if input.LetterboxdID == "" {
		return nil, errors.New("letterboxd_id is required")
	}

	items, err := parse.FetchItems(ctx, s.deps.Fetcher, s.deps.RSSURL)
	if err != nil {
		return nil, err
	}
	item, ok := parse.FindItem(items, input.LetterboxdID)
	if !ok {
		return nil, fmt.Errorf("feed entry not found: %s", input.LetterboxdID)
	}

	description, _ := item.Description()
	review, ok := content.ReviewMarkdown(description)
	if !ok {
		return nil, fmt.Errorf("feed entry %s has no review text", input.LetterboxdID)
	}

	title, _ := item.FilmTitle()
	return jsonResult(GetReviewOutput{
		LetterboxdID: input.LetterboxdID,
		Title:        title,
		Review:       review,
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
