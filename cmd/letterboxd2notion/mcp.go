// ABOUTME: MCP server command for letterboxd2notion CLI
// ABOUTME: Starts stdio-based MCP server for AI agent integration

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/letterboxd2notion/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	Long: `Start the Model Context Protocol (MCP) server on stdio.

This allows MCP clients to list recent films, page through the
diary, resolve TMDB artwork and read reviews through structured tools.

The server communicates via JSON-RPC on stdin/stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(false); err != nil {
			return err
		}

		f := newFetcher()
		deps := mcp.Deps{
			Fetcher: f,
			RSSURL:  cfg.RSSURL,
			Diary:   newScraper(f),
			APIKey:  cfg.TMDBAPIKey,
			Version: Version,
			Log:     log,
		}
		if enricher := newEnricher(); enricher != nil {
			deps.Enricher = enricher
		}

		server := mcp.NewServer(deps)
		if err := server.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
