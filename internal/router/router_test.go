package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mvdti/dashboard-service/internal/auth"
	"github.com/mvdti/dashboard-service/internal/handler"
	"github.com/mvdti/dashboard-service/internal/insight"
	"github.com/mvdti/dashboard-service/internal/model"
	"github.com/mvdti/dashboard-service/internal/websearch"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubStore struct{}

func (stubStore) GetByID(ctx context.Context, id string) (*model.Ticket, error) { return nil, nil }
func (stubStore) Search(ctx context.Context, q string) ([]model.TicketSummary, error) {
	return nil, nil
}
func (stubStore) Comparables(ctx context.Context, category string) ([]model.Ticket, error) {
	return nil, nil
}
func (stubStore) CreateFeedback(ctx context.Context, f *model.Feedback) error { return nil }

type stubSearcher struct{}

func (stubSearcher) Search(ctx context.Context, q string) ([]websearch.Snippet, error) {
	return nil, nil
}

type stubInsight struct{}

func (stubInsight) Generate(ctx context.Context, id string) (*insight.Insight, *insight.Meta, error) {
	return &insight.Insight{}, &insight.Meta{}, nil
}

func testRouter() http.Handler {
	sessions := auth.NewSessions("secret", "a", "b")
	authHandler := handler.NewAuthHandler(sessions, false)
	return New(Handlers{
		Auth:      authHandler,
		Ticket:    handler.NewTicketHandler(stubStore{}),
		Feedback:  handler.NewFeedbackHandler(stubStore{}, nil),
		WebSearch: handler.NewWebSearchHandler(stubSearcher{}),
		Insight:   handler.NewInsightHandler(stubInsight{}, nil),
		Report:    handler.NewReportHandler("https://example/ti", "https://example/jefes"),
	})
}

func TestHealthAndRequestID(t *testing.T) {
	r := testRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health: status %d", w.Code)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatal("request id header missing")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	r := testRouter()
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	req.Header.Set("X-Request-Id", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got != "req-42" {
		t.Fatalf("request id not propagated: %q", got)
	}
}

func TestReportRequiresSession(t *testing.T) {
	r := testRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/report", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
}

func TestSwaggerSpecServed(t *testing.T) {
	r := testRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/openapi.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("openapi spec: status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("openapi spec content type %q", ct)
	}
}
