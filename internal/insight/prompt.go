package insight

import (
	"encoding/json"
	"strings"

	"github.com/mvdti/dashboard-service/internal/model"
	"github.com/mvdti/dashboard-service/internal/websearch"
)

// maxDetailLen keeps the web query short so the search stays relevant.
const maxDetailLen = 220

// SchemaName labels the structured output contract sent to the model.
const SchemaName = "ticket_insight"

// Schema is the strict JSON contract the model must answer with.
var Schema = json.RawMessage(`{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "summary": {"type": "string"},
    "probable_diagnosis": {"type": "string"},
    "suggested_steps": {"type": "array", "items": {"type": "string"}},
    "clarifying_questions": {"type": "array", "items": {"type": "string"}},
    "risks_precautions": {"type": "array", "items": {"type": "string"}},
    "tickets_cited": {"type": "array", "items": {"type": "string"}},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1}
  },
  "required": [
    "summary",
    "probable_diagnosis",
    "suggested_steps",
    "clarifying_questions",
    "risks_precautions",
    "tickets_cited",
    "confidence"
  ]
}`)

// Insight is the model's structured recommendation for one ticket. Ephemeral,
// never persisted.
type Insight struct {
	Summary             string   `json:"summary"`
	ProbableDiagnosis   string   `json:"probable_diagnosis"`
	SuggestedSteps      []string `json:"suggested_steps"`
	ClarifyingQuestions []string `json:"clarifying_questions"`
	RisksPrecautions    []string `json:"risks_precautions"`
	TicketsCited        []string `json:"tickets_cited"`
	Confidence          float64  `json:"confidence"`
}

const systemPrompt = `You are a senior IT support (ITSM) analyst.
You propose an actionable solution based on the current ticket and resolved historical tickets.
You may also use WEB DOCUMENTATION (secondary) when it helps.

Rules:
- Never invent access or permissions.
- If information is missing, say so explicitly and state how to request it.
- Priorities: restore service, prevent recurrence, user experience.
- Cite the ids of the historical tickets you used.
- If you use WEB DOCUMENTATION, use ONLY the provided URLs (never invent sources).
- When historical tickets and web documentation conflict, prefer historical tickets.
- Answer ONLY with valid JSON matching the schema.`

// BuildWebQuery joins category, title and the first 220 characters of the
// detail into a short search query, skipping empty fields.
func BuildWebQuery(t *model.Ticket) string {
	// Truncate by runes: accented text must still yield 220 characters and
	// never a split rune.
	detail := strings.TrimSpace(t.TicketDetail)
	if r := []rune(detail); len(r) > maxDetailLen {
		detail = string(r[:maxDetailLen])
	}
	var parts []string
	for _, p := range []string{strings.TrimSpace(t.CategoryName), strings.TrimSpace(t.TicketTitle), detail} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// BuildPrompts renders the system/user prompt pair from the current ticket,
// its comparables and the optional web snippets.
func BuildPrompts(cur *model.Ticket, history []model.Ticket, snippets []websearch.Snippet) (system, user string) {
	curJSON, _ := json.MarshalIndent(cur, "", "  ")
	histJSON, _ := json.MarshalIndent(compactHistory(history), "", "  ")
	if snippets == nil {
		snippets = []websearch.Snippet{}
	}
	webJSON, _ := json.MarshalIndent(snippets, "", "  ")

	var b strings.Builder
	b.WriteString("CURRENT TICKET:\n")
	b.Write(curJSON)
	b.WriteString("\n\nRELEVANT HISTORICAL TICKETS:\n")
	b.Write(histJSON)
	b.WriteString("\n\nWEB DOCUMENTATION (secondary; use only if helpful; cite provided URLs):\n")
	b.Write(webJSON)
	return systemPrompt, b.String()
}

func compactHistory(history []model.Ticket) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(history))
	for _, h := range history {
		row := map[string]interface{}{
			"id_ticket":       h.IDTicket,
			"ticket_title":    h.TicketTitle,
			"ticket_detail":   h.TicketDetail,
			"ticket_res_note": h.ResNote,
			"ticket_cause":    h.Cause,
			"res_val_note":    h.ResValNote,
			"res_val_class":   h.ResValClass,
		}
		if h.SLAResMinu != nil {
			row["sla_res_minu"] = *h.SLAResMinu
		}
		if h.ResVal != nil {
			row["res_val"] = *h.ResVal
		}
		if h.ResDate != nil {
			row["res_date"] = *h.ResDate
		}
		out = append(out, row)
	}
	return out
}
