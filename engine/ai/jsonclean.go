package ai

import "strings"

// cleanJSON strips markdown fences and surrounding prose from an LLM
// response, returning the outermost JSON object or array.
func cleanJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	firstBrace := strings.Index(cleaned, "{")
	lastBrace := strings.LastIndex(cleaned, "}")
	firstBracket := strings.Index(cleaned, "[")
	lastBracket := strings.LastIndex(cleaned, "]")
	isObject := firstBrace != -1 && lastBrace > firstBrace
	isArray := firstBracket != -1 && lastBracket > firstBracket

	switch {
	case isObject && (!isArray || firstBrace < firstBracket):
		cleaned = cleaned[firstBrace : lastBrace+1]
	case isArray:
		cleaned = cleaned[firstBracket : lastBracket+1]
	}
	return strings.TrimSpace(cleaned)
}
