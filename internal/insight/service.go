package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mvdti/dashboard-service/internal/errs"
	"github.com/mvdti/dashboard-service/internal/service"
	"github.com/mvdti/dashboard-service/internal/websearch"
)

// SnippetFetcher is the best-effort web evidence source.
type SnippetFetcher interface {
	Snippets(ctx context.Context, q string) []websearch.Snippet
}

// Generator is the schema-constrained model call.
type Generator interface {
	GenerateJSON(ctx context.Context, system, user, schemaName string, schema json.RawMessage) (json.RawMessage, error)
}

// Meta describes how the insight was assembled.
type Meta struct {
	WebQuery        string `json:"web_query"`
	WebSnippetsUsed int    `json:"web_snippets_used"`
}

type Service struct {
	tickets service.TicketServicer
	web     SnippetFetcher
	llm     Generator
}

func NewService(tickets service.TicketServicer, web SnippetFetcher, llm Generator) *Service {
	return &Service{tickets: tickets, web: web, llm: llm}
}

// Generate builds an insight for one ticket: load the ticket, load up to 20
// same-category resolved comparables, optionally fetch web snippets, then ask
// the model for a schema-constrained answer. A missing ticket returns
// errs.ErrTicketNotFound before any model call.
func (s *Service) Generate(ctx context.Context, idTicket string) (*Insight, *Meta, error) {
	idTicket = strings.TrimSpace(idTicket)
	if idTicket == "" {
		return nil, nil, fmt.Errorf("id_ticket is required")
	}

	cur, err := s.tickets.GetByID(ctx, idTicket)
	if err != nil {
		return nil, nil, err
	}

	history, err := s.tickets.Comparables(ctx, cur.CategoryName)
	if err != nil {
		return nil, nil, fmt.Errorf("load comparables: %w", err)
	}

	webQuery := BuildWebQuery(cur)
	var snippets []websearch.Snippet
	if s.web != nil {
		snippets = s.web.Snippets(ctx, webQuery)
	}

	system, user := BuildPrompts(cur, history, snippets)
	raw, err := s.llm.GenerateJSON(ctx, system, user, SchemaName, Schema)
	if err != nil {
		return nil, nil, err
	}

	var out Insight
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrNoInsightJSON, err)
	}

	meta := &Meta{
		WebQuery:        webQuery,
		WebSnippetsUsed: len(snippets),
	}
	return &out, meta, nil
}
