package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/hellothatsmoa/AI-News/apperr"
)

var summaryKeys = []string{"summary_one_liner", "visual_brief", "image_prompt", "action"}

// ParseSummary validates a model reply against the summary contract: a JSON
// object carrying exactly the contracted keys, with one optional surrounding
// markdown code fence tolerated.
func ParseSummary(raw string) (*Summary, error) {
	cleaned := stripCodeFence(raw)

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &apperr.Parse{
			Message:    "model reply is not valid JSON",
			RawContent: raw,
		}
	}

	received := make([]string, 0, len(payload))
	for k := range payload {
		received = append(received, k)
	}
	sort.Strings(received)

	for _, key := range summaryKeys {
		if _, ok := payload[key]; !ok {
			return nil, &apperr.Schema{
				Message:  fmt.Sprintf("model reply is missing %q", key),
				Received: received,
			}
		}
	}
	for _, key := range received {
		if !isSummaryKey(key) {
			return nil, &apperr.Schema{
				Message:  fmt.Sprintf("model reply has unexpected key %q", key),
				Received: received,
			}
		}
	}

	var s Summary
	if err := json.Unmarshal([]byte(cleaned), &s); err != nil {
		return nil, &apperr.Parse{
			Message:    "model reply has malformed field values",
			RawContent: raw,
		}
	}
	return &s, nil
}

func isSummaryKey(k string) bool {
	for _, key := range summaryKeys {
		if k == key {
			return true
		}
	}
	return false
}

// stripCodeFence removes one surrounding markdown fence so replies like
// "```json\n{...}\n```" still parse.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.Index(t, "\n"); nl >= 0 {
		t = t[nl+1:]
	} else {
		return strings.TrimSpace(strings.TrimSuffix(t, "```"))
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}
