package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mvdti/dashboard-service/internal/insight"
	"github.com/mvdti/dashboard-service/internal/kafka"
)

// InsightGenerator — интерфейс для подмены сервиса в тестах.
type InsightGenerator interface {
	Generate(ctx context.Context, idTicket string) (*insight.Insight, *insight.Meta, error)
}

type InsightHandler struct {
	svc    InsightGenerator
	events kafka.EventProducer
}

func NewInsightHandler(svc InsightGenerator, events kafka.EventProducer) *InsightHandler {
	return &InsightHandler{svc: svc, events: events}
}

type insightRequest struct {
	IDTicket string `json:"id_ticket"`
}

// Generate produces the AI recommendation for one ticket.
func (h *InsightHandler) Generate(c *gin.Context) {
	var req insightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	id := strings.TrimSpace(req.IDTicket)
	if id == "" {
		badRequest(c, "id_ticket is required")
		return
	}
	data, meta, err := h.svc.Generate(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if h.events != nil {
		h.events.ProduceEventAsync(kafka.EventInsightGenerated, map[string]interface{}{
			"id_ticket":         id,
			"web_snippets_used": meta.WebSnippetsUsed,
			"confidence":        data.Confidence,
		})
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data, "meta": meta})
}
