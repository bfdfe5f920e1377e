package websearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mvdti/dashboard-service/internal/errs"
)

func TestIsAllowed(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://learn.microsoft.com/en-us/troubleshoot", true},
		{"https://www.cisco.com/c/en/us/support", true},
		{"https://kb.fortinet.com/kb/doc", true},
		{"https://example.com/learn.microsoft.com", false},
		{"https://notcisco.com/page", false},
		{"https://cisco.com.evil.net/page", false},
		{"://bad", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isAllowed(tc.url); got != tc.want {
			t.Errorf("isAllowed(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func testClient(srvURL string) *Client {
	c := NewClient("brave-key", "es")
	c.baseURL = srvURL
	return c
}

const braveBody = `{"web":{"results":[
	{"title":"A", "url":"https://learn.microsoft.com/a", "description":"da"},
	{"title":"Evil", "url":"https://evil.example.com/b", "description":"db"},
	{"title":"B", "url":"https://support.microsoft.com/b", "description":"db"},
	{"title":"C", "url":"https://www.dell.com/c", "description":"dc"},
	{"title":"D", "url":"https://hp.com/d", "description":"dd"}
]}}`

func TestSearchFiltersAndCaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Subscription-Token") != "brave-key" {
			t.Errorf("missing subscription token")
		}
		w.Write([]byte(braveBody))
	}))
	defer srv.Close()

	out, err := testClient(srv.URL).Search(context.Background(), "outlook sync error")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 snippets, got %d", len(out))
	}
	for _, s := range out {
		if !isAllowed(s.URL) {
			t.Errorf("snippet from disallowed host: %s", s.URL)
		}
	}
	if out[2].Host != "dell.com" {
		t.Errorf("www prefix not stripped: %q", out[2].Host)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for an empty query")
	}))
	defer srv.Close()

	out, err := testClient(srv.URL).Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no snippets, got %d", len(out))
	}
}

func TestSearchWithoutKey(t *testing.T) {
	c := NewClient("", "es")
	_, err := c.Search(context.Background(), "anything")
	if !errors.Is(err, errs.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSearchRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Search(context.Background(), "q")
	if !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestSearchForwardsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"subscription expired"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Search(context.Background(), "q")
	if err == nil {
		t.Fatal("expected an error on 502")
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Errorf("error lost the status code: %v", err)
	}
	if !strings.Contains(err.Error(), "subscription expired") {
		t.Errorf("error lost the provider body: %v", err)
	}
}

func TestSearchCapsQueryByRunes(t *testing.T) {
	var sentQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sentQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"web":{"results":[]}}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Search(context.Background(), strings.Repeat("á", 500)); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !utf8.ValidString(sentQuery) {
		t.Fatalf("query is not valid UTF-8: %q", sentQuery)
	}
	if n := utf8.RuneCountInString(sentQuery); n != maxQueryLen {
		t.Fatalf("expected %d characters, got %d", maxQueryLen, n)
	}
}

func TestSnippetsSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if out := testClient(srv.URL).Snippets(context.Background(), "q"); len(out) != 0 {
		t.Fatalf("expected empty snippets on provider failure, got %d", len(out))
	}
}

func TestSnippetsSwallowsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if out := testClient(srv.URL).Snippets(context.Background(), "q"); len(out) != 0 {
		t.Fatalf("expected empty snippets on malformed payload, got %d", len(out))
	}
}
