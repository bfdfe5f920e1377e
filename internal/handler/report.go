package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvdti/dashboard-service/internal/auth"
)

type ReportHandler struct {
	urlTI    string
	urlJefes string
}

func NewReportHandler(urlTI, urlJefes string) *ReportHandler {
	return &ReportHandler{urlTI: urlTI, urlJefes: urlJefes}
}

// Get hands the role-specific Power BI embed URL to the front end. Requires
// a verified session (role set by the session middleware).
func (h *ReportHandler) Get(c *gin.Context) {
	role := c.GetString("role")
	var url string
	switch role {
	case auth.RoleTI:
		url = h.urlTI
	case auth.RoleJefes:
		url = h.urlJefes
	}
	if url == "" {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no report configured for role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "url": url})
}
