// ABOUTME: Schema command printing the Notion database schema update payload
// ABOUTME: The output is the body for PATCH /databases/{id}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/letterboxd2notion/internal/notion"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the Notion database schema payload",
	Long: `Print the property definitions the Notion film database needs, as the
JSON body of PATCH /databases/{id}.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(os.Stdout, notion.SchemaUpdatePayload())
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
