package translate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var jsonFenceRegex = regexp.MustCompile("```(?:json)?\\s*")

func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	s = jsonFenceRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// fixInvalidEscapes rewrites escape sequences that are not valid JSON, such
// as \N from subtitle markup, so the decoder does not choke on them.
func fixInvalidEscapes(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		if i < len(s)-1 && s[i] == '\\' {
			next := s[i+1]
			switch next {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
				result.WriteByte(s[i])
				result.WriteByte(next)
			default:
				result.WriteString(`\\`)
				result.WriteByte(next)
			}
			i += 2
		} else {
			result.WriteByte(s[i])
			i++
		}
	}

	return result.String()
}

// extractReplies finds the first JSON value in text that decodes as a list
// of translation replies, either directly or under a wrapper key.
func extractReplies(text string) ([]Reply, error) {
	text = fixInvalidEscapes(text)

	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}
		if replies, ok := tryExtractReplies(raw); ok && len(replies) > 0 {
			return replies, nil
		}
	}
	return nil, fmt.Errorf("no valid translation JSON found in response")
}

func tryExtractReplies(raw json.RawMessage) ([]Reply, bool) {
	var replies []Reply
	if err := json.Unmarshal(raw, &replies); err == nil &&
		validateReplies(replies) {
		return replies, true
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}

	wrapperKeys := []string{"results", "translations", "data", "items"}
	for _, key := range wrapperKeys {
		if fieldRaw, exists := wrapper[key]; exists {
			var fieldReplies []Reply
			if err := json.Unmarshal(fieldRaw, &fieldReplies); err == nil &&
				validateReplies(fieldReplies) {
				return fieldReplies, true
			}
		}
	}

	for _, fieldRaw := range wrapper {
		var fieldReplies []Reply
		if err := json.Unmarshal(fieldRaw, &fieldReplies); err == nil &&
			validateReplies(fieldReplies) {
			return fieldReplies, true
		}
	}

	return nil, false
}

func validateReplies(replies []Reply) bool {
	for _, r := range replies {
		if r.Translation != "" {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// parseBatchReply validates and decodes a provider reply for one batch.
func parseBatchReply(responseText string, expectedCount int) ([]Reply, error) {
	responseText = cleanJSONResponse(responseText)

	replies, err := extractReplies(responseText)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse JSON response: %w (response: %s)",
			err,
			truncateString(responseText, 200),
		)
	}

	if len(replies) != expectedCount {
		return nil, fmt.Errorf(
			"expected %d replies, got %d",
			expectedCount,
			len(replies),
		)
	}

	return replies, nil
}
