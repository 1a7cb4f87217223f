// ABOUTME: Hand-off of enriched films to the Notion storage layer
// ABOUTME: PayloadWriter emits one create-page JSON payload per line for an external uploader

package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/harper/letterboxd2notion/internal/models"
)

// Upserter stores films in the Notion database.
type Upserter interface {
	Upsert(ctx context.Context, films []models.Film) error
}

// PayloadWriter writes page payloads as JSON lines.
type PayloadWriter struct {
	w          io.Writer
	databaseID string
}

var _ Upserter = (*PayloadWriter)(nil)

// NewPayloadWriter returns a writer targeting databaseID.
func NewPayloadWriter(w io.Writer, databaseID string) *PayloadWriter {
	return &PayloadWriter{w: w, databaseID: databaseID}
}

// Upsert writes one payload per film, in order.
func (p *PayloadWriter) Upsert(ctx context.Context, films []models.Film) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	for _, film := range films {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := enc.Encode(NewPage(p.databaseID, film)); err != nil {
			return fmt.Errorf("write payload for %s: %w", film.LetterboxdID, err)
		}
	}
	return nil
}
