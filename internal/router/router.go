package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mvdti/dashboard-service/api"
	"github.com/mvdti/dashboard-service/internal/handler"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	PathHealth  = "/health"
	PathReady   = "/ready"
	PathSwagger = "/swagger"
)

// Handlers bundles the route handlers wired by the application.
type Handlers struct {
	Auth      *handler.AuthHandler
	Ticket    *handler.TicketHandler
	Feedback  *handler.FeedbackHandler
	WebSearch *handler.WebSearchHandler
	Insight   *handler.InsightHandler
	Report    *handler.ReportHandler
}

// requestID tags every request so log lines and error reports correlate.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

func New(h Handlers) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())

	r.GET(PathHealth, handler.Health)
	r.GET(PathReady, handler.Ready)
	r.GET(PathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, PathSwagger+"/") })
	r.GET(PathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = PathSwagger + "/index.html"
			c.Request.RequestURI = PathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	r.POST("/auth/login", h.Auth.Login)
	r.GET("/auth/me", h.Auth.Me)
	r.GET("/tickets", h.Ticket.List)
	r.POST("/feedback", h.Feedback.Create)
	r.GET("/web/search", h.WebSearch.Search)
	r.POST("/ai/insight", h.Insight.Generate)

	session := r.Group("/dashboard", h.Auth.RequireSession())
	{
		session.GET("/report", h.Report.Get)
	}

	return r
}
