package llm

import (
	"encoding/json"

	"github.com/mvdti/dashboard-service/internal/errs"
	"github.com/tidwall/gjson"
)

// extractor pulls the payload JSON object out of one known response shape.
// Returns nil when the shape does not apply.
type extractor func(raw []byte) json.RawMessage

// extractors are tried in order; the first hit wins. The upstream response
// contract has been unstable, so each historical shape gets its own entry
// instead of nested conditionals.
var extractors = []extractor{
	extractOutputJSON,
	extractOutputTextBlock,
	extractTopLevelOutputText,
}

// ExtractJSON normalizes a Responses API payload to the schema-constrained
// JSON object. Fails closed: either a fully parsed object or an error, never
// a partial result.
func ExtractJSON(raw []byte) (json.RawMessage, error) {
	for _, ex := range extractors {
		if out := ex(raw); out != nil {
			return out, nil
		}
	}
	return nil, errs.ErrNoInsightJSON
}

// Shape 1: an explicit structured block, output[].content[] with
// type "output_json" carrying the object in its "json" field.
func extractOutputJSON(raw []byte) json.RawMessage {
	var found json.RawMessage
	gjson.GetBytes(raw, "output").ForEach(func(_, block gjson.Result) bool {
		block.Get("content").ForEach(func(_, c gjson.Result) bool {
			if c.Get("type").String() == "output_json" {
				if j := c.Get("json"); j.Exists() && j.IsObject() {
					found = json.RawMessage(j.Raw)
					return false
				}
			}
			return true
		})
		return found == nil
	})
	return found
}

// Shape 2: a text block, output[].content[] with type "output_text" whose
// text field is itself a JSON document.
func extractOutputTextBlock(raw []byte) json.RawMessage {
	var found json.RawMessage
	gjson.GetBytes(raw, "output").ForEach(func(_, block gjson.Result) bool {
		block.Get("content").ForEach(func(_, c gjson.Result) bool {
			if c.Get("type").String() == "output_text" {
				if out := parseObject(c.Get("text").String()); out != nil {
					found = out
					return false
				}
			}
			return true
		})
		return found == nil
	})
	return found
}

// Shape 3: the top-level "output_text" convenience field.
func extractTopLevelOutputText(raw []byte) json.RawMessage {
	return parseObject(gjson.GetBytes(raw, "output_text").String())
}

func parseObject(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil
	}
	return json.RawMessage(s)
}
