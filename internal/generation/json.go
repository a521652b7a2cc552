package generation

import (
	"fmt"
	"strings"
)

// ExtractJSON pulls the JSON payload out of a model response. Models asked
// for JSON still wrap it in markdown fences or prose often enough that the
// raw text cannot be unmarshaled directly. The payload is located by the
// first { or [ and its matching close, honoring strings and escapes.
func ExtractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	// Strip a markdown code fence if the whole response is fenced.
	if strings.HasPrefix(s, "```") {
		if end := strings.LastIndex(s, "```"); end > 3 {
			s = s[3:end]
			s = strings.TrimPrefix(s, "json")
			s = strings.TrimSpace(s)
		}
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", fmt.Errorf("%w: no JSON found in response", ErrInvalidResponse)
	}

	open := s[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("%w: unterminated JSON in response", ErrInvalidResponse)
}
