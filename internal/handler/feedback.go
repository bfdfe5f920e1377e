package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mvdti/dashboard-service/internal/kafka"
	"github.com/mvdti/dashboard-service/internal/model"
	"github.com/mvdti/dashboard-service/internal/service"
)

type FeedbackHandler struct {
	svc    service.TicketServicer
	events kafka.EventProducer
}

func NewFeedbackHandler(svc service.TicketServicer, events kafka.EventProducer) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, events: events}
}

type feedbackRequest struct {
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

// Create appends one feedback row. Rating must be 1..10; invalid ratings are
// rejected before touching the store.
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	if req.Rating == nil || *req.Rating < 1 || *req.Rating > 10 {
		badRequest(c, "rating must be between 1 and 10")
		return
	}
	f := &model.Feedback{Rating: *req.Rating}
	if comment := strings.TrimSpace(req.Comment); comment != "" {
		f.Comment = &comment
	}
	if err := h.svc.CreateFeedback(c.Request.Context(), f); err != nil {
		fail(c, err)
		return
	}
	if h.events != nil {
		h.events.ProduceEventAsync(kafka.EventFeedbackCreated, map[string]interface{}{
			"feedback_id": f.ID,
			"rating":      f.Rating,
		})
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
