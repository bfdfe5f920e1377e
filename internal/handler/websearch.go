package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvdti/dashboard-service/internal/websearch"
)

// Searcher — интерфейс для подмены клиента в тестах.
type Searcher interface {
	Search(ctx context.Context, q string) ([]websearch.Snippet, error)
}

type WebSearchHandler struct {
	client Searcher
}

func NewWebSearchHandler(client Searcher) *WebSearchHandler {
	return &WebSearchHandler{client: client}
}

// Search proxies the allow-listed web search. Unlike the insight path, this
// route propagates provider errors (including 429).
func (h *WebSearchHandler) Search(c *gin.Context) {
	data, err := h.client.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
