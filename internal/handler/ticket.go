package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvdti/dashboard-service/internal/service"
)

type TicketHandler struct {
	svc service.TicketServicer
}

func NewTicketHandler(svc service.TicketServicer) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// List returns active tickets, newest first, optionally filtered by q over
// id and title.
func (h *TicketHandler) List(c *gin.Context) {
	items, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": items})
}
