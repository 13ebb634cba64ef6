package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
)

var thinkBlockPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

// SuggestedEntry is one proposed calendar line.
type SuggestedEntry struct {
	Date      string `json:"date" validate:"required"`
	Lead      string `json:"lead" validate:"required"`
	Assistant string `json:"assistant,omitempty"`
}

type suggestionPayload struct {
	Assignments []struct {
		Date      string  `json:"date"`
		Lead      string  `json:"lead"`
		Assistant *string `json:"assistant"`
	} `json:"assignments"`
}

// parseSuggestion finds the first JSON object in raw that carries an
// "assignments" array. Reasoning blocks, markdown fences and surrounding
// prose are ignored.
func parseSuggestion(raw string) ([]SuggestedEntry, error) {
	cleaned := thinkBlockPattern.ReplaceAllString(raw, "")

	for offset := 0; offset < len(cleaned); {
		start := strings.IndexByte(cleaned[offset:], '{')
		if start < 0 {
			break
		}
		start += offset

		candidate, ok := balancedObject(cleaned[start:])
		if !ok {
			offset = start + 1
			continue
		}
		if entries, ok := decodeSuggestion(candidate); ok {
			return entries, nil
		}
		offset = start + 1
	}

	return nil, fmt.Errorf("%w: no JSON object with an assignments array in oracle response", ErrMalformedSuggestion)
}

func decodeSuggestion(candidate string) ([]SuggestedEntry, bool) {
	var payload suggestionPayload
	if err := sonic.UnmarshalString(candidate, &payload); err != nil {
		return nil, false
	}
	if payload.Assignments == nil {
		return nil, false
	}

	out := make([]SuggestedEntry, 0, len(payload.Assignments))
	for _, item := range payload.Assignments {
		entry := SuggestedEntry{
			Date: strings.TrimSpace(item.Date),
			Lead: strings.TrimSpace(item.Lead),
		}
		if item.Assistant != nil {
			entry.Assistant = normalizeSuggestedAssistant(*item.Assistant)
		}
		out = append(out, entry)
	}
	return out, true
}

func normalizeSuggestedAssistant(value string) string {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "none", "null", "n/a", "-":
		return ""
	}
	return value
}

// balancedObject returns the prefix of s that closes the object opened at s[0].
func balancedObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
