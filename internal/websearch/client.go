package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mvdti/dashboard-service/internal/errs"
	"github.com/mvdti/dashboard-service/internal/logging"
)

// AllowDomains is the fixed set of vendor/documentation hosts a snippet may
// come from. Subdomains count; anything else is dropped.
var AllowDomains = []string{
	"learn.microsoft.com",
	"support.microsoft.com",
	"docs.microsoft.com",
	"cisco.com",
	"fortinet.com",
	"paloaltonetworks.com",
	"dell.com",
	"hp.com",
	"lenovo.com",
	"logitech.com",
	"intel.com",
	"amd.com",
}

const (
	defaultBaseURL = "https://api.search.brave.com"
	// snippetTimeout bounds the best-effort pass so a slow search provider
	// never stalls an insight request.
	snippetTimeout = 6 * time.Second
	maxResults     = 3
	maxQueryLen    = 450
)

// Snippet is one allow-listed search result.
type Snippet struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Host    string `json:"host"`
}

// Client queries the Brave web search API. Search propagates provider errors
// (the /web/search route forwards them); Snippets downgrades everything to an
// empty list (the insight path treats web evidence as optional).
type Client struct {
	apiKey     string
	baseURL    string
	lang       string
	httpClient *http.Client
}

func NewClient(apiKey, lang string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		lang:    lang,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search runs q against the provider with the allow-list baked into the
// query, filters the results again locally, and returns at most 3 snippets.
func (c *Client) Search(ctx context.Context, q string) ([]Snippet, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []Snippet{}, nil
	}
	if c.apiKey == "" {
		return nil, errs.ErrNotConfigured
	}

	// The provider honors site: filters, so the allow-list narrows the
	// search itself; the local isAllowed check is still authoritative.
	sites := make([]string, len(AllowDomains))
	for i, d := range AllowDomains {
		sites[i] = "site:" + d
	}
	query := "(" + strings.Join(sites, " OR ") + ") " + q
	query = truncateRunes(query, maxQueryLen)

	u := c.baseURL + "/res/v1/web/search?q=" + url.QueryEscape(query) +
		"&count=8&search_lang=" + url.QueryEscape(c.lang)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("web search: %w", errs.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("web search: status %d: %s", resp.StatusCode, truncateRunes(string(body), 300))
	}

	var payload braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("web search: decode: %w", err)
	}

	out := make([]Snippet, 0, maxResults)
	for _, r := range payload.Web.Results {
		if r.URL == "" || !isAllowed(r.URL) {
			continue
		}
		out = append(out, Snippet{
			Title:   strings.TrimSpace(r.Title),
			URL:     r.URL,
			Snippet: strings.TrimSpace(r.Description),
			Host:    hostFromURL(r.URL),
		})
		if len(out) == maxResults {
			break
		}
	}
	return out, nil
}

// Snippets is the best-effort variant used while building an insight: any
// error, timeout or bad payload yields an empty list, never a failure.
func (c *Client) Snippets(ctx context.Context, q string) []Snippet {
	if strings.TrimSpace(q) == "" || c.apiKey == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, snippetTimeout)
	defer cancel()
	out, err := c.Search(ctx, q)
	if err != nil {
		logging.Warnf("websearch: snippets skipped: %v", err)
		return nil
	}
	return out
}

// truncateRunes cuts s to at most n characters without splitting a rune.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func hostFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func isAllowed(raw string) bool {
	host := hostFromURL(raw)
	if host == "" {
		return false
	}
	for _, d := range AllowDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
