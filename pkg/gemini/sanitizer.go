package gemini

import (
	"StyleSnap-Backend/domain"
	"strings"
)

// ExtractJSONObject recovers a JSON object from free-text model output. The
// model often wraps its JSON in prose or markdown code fences; everything
// outside the first '{' and the last '}' is discarded.
func ExtractJSONObject(raw string) (string, error) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", &domain.ExtractionError{Raw: raw, Err: domain.ErrExtractionFailed}
	}

	return strings.TrimSpace(text[start : end+1]), nil
}
