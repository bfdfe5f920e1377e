package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mvdti/dashboard-service/internal/errs"
)

func TestExtractJSONOutputJSONBlock(t *testing.T) {
	raw := []byte(`{
		"output": [
			{"content": [
				{"type": "reasoning", "text": "thinking"},
				{"type": "output_json", "json": {"summary": "s", "confidence": 0.9}}
			]}
		]
	}`)
	out, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("expected extraction, got error: %v", err)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(out, &obj); err != nil {
		t.Fatalf("extracted payload is not JSON: %v", err)
	}
	if obj["summary"] != "s" {
		t.Fatalf("unexpected payload: %v", obj)
	}
}

func TestExtractJSONOutputTextBlock(t *testing.T) {
	raw := []byte(`{
		"output": [
			{"content": [
				{"type": "output_text", "text": "{\"summary\":\"from text\",\"confidence\":0.5}"}
			]}
		]
	}`)
	out, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("expected extraction, got error: %v", err)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(out, &obj); err != nil {
		t.Fatalf("extracted payload is not JSON: %v", err)
	}
	if obj["summary"] != "from text" {
		t.Fatalf("unexpected payload: %v", obj)
	}
}

func TestExtractJSONTopLevelOutputText(t *testing.T) {
	raw := []byte(`{"output_text": "{\"summary\":\"top level\"}"}`)
	out, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("expected extraction, got error: %v", err)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(out, &obj); err != nil {
		t.Fatalf("extracted payload is not JSON: %v", err)
	}
	if obj["summary"] != "top level" {
		t.Fatalf("unexpected payload: %v", obj)
	}
}

func TestExtractJSONPrefersStructuredBlock(t *testing.T) {
	// Both shapes present: the explicit output_json block must win.
	raw := []byte(`{
		"output": [
			{"content": [
				{"type": "output_json", "json": {"summary": "structured"}},
				{"type": "output_text", "text": "{\"summary\":\"text\"}"}
			]}
		],
		"output_text": "{\"summary\":\"top\"}"
	}`)
	out, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("expected extraction, got error: %v", err)
	}
	var obj map[string]string
	if err := json.Unmarshal(out, &obj); err != nil {
		t.Fatalf("extracted payload is not JSON: %v", err)
	}
	if obj["summary"] != "structured" {
		t.Fatalf("expected structured block to win, got %q", obj["summary"])
	}
}

func TestExtractJSONSkipsUnparseableTextBlocks(t *testing.T) {
	raw := []byte(`{
		"output": [
			{"content": [{"type": "output_text", "text": "not json at all"}]},
			{"content": [{"type": "output_text", "text": "{\"summary\":\"second block\"}"}]}
		]
	}`)
	out, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("expected extraction, got error: %v", err)
	}
	var obj map[string]string
	if err := json.Unmarshal(out, &obj); err != nil {
		t.Fatalf("extracted payload is not JSON: %v", err)
	}
	if obj["summary"] != "second block" {
		t.Fatalf("unexpected payload: %v", obj)
	}
}

func TestExtractJSONFailsClosed(t *testing.T) {
	cases := [][]byte{
		[]byte(`{}`),
		[]byte(`{"output": []}`),
		[]byte(`{"output": [{"content": [{"type": "output_text", "text": "plain prose"}]}]}`),
		[]byte(`{"output_text": "also not json"}`),
		[]byte(`{"output_text": "[1,2,3]"}`),
	}
	for i, raw := range cases {
		if _, err := ExtractJSON(raw); !errors.Is(err, errs.ErrNoInsightJSON) {
			t.Fatalf("case %d: expected ErrNoInsightJSON, got %v", i, err)
		}
	}
}
