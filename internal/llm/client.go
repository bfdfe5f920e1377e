// Package llm calls the OpenAI Responses API requesting schema-constrained
// JSON output, and normalizes the known response shapes into one JSON object.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mvdti/dashboard-service/internal/errs"
)

const defaultBaseURL = "https://api.openai.com"

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type request struct {
	Model string    `json:"model"`
	Input []message `json:"input"`
	Text  struct {
		Format struct {
			Type   string          `json:"type"`
			Name   string          `json:"name"`
			Schema json.RawMessage `json:"schema"`
		} `json:"format"`
	} `json:"text"`
}

// GenerateJSON posts a system/user prompt pair with a strict JSON schema
// contract and returns the extracted JSON object. The provider has answered
// with several shapes over time; extraction tries them in order and fails
// closed with errs.ErrNoInsightJSON when none match.
func (c *Client) GenerateJSON(ctx context.Context, system, user, schemaName string, schema json.RawMessage) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, errs.ErrNotConfigured
	}

	reqBody := request{Model: c.model}
	reqBody.Input = []message{
		{Role: "system", Content: []contentPart{{Type: "input_text", Text: system}}},
		{Role: "user", Content: []contentPart{{Type: "input_text", Text: user}}},
	}
	reqBody.Text.Format.Type = "json_schema"
	reqBody.Text.Format.Name = schemaName
	reqBody.Text.Format.Schema = schema

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("llm: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/responses", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llm: read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("llm: %w", errs.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm: status %d: %s", resp.StatusCode, truncate(string(raw), 300))
	}

	return ExtractJSON(raw)
}

// truncate cuts s to at most n characters without splitting a rune.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
