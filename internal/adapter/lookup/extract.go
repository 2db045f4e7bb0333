package lookup

import (
	"fmt"

	"github.com/eslkit/vocadeck/internal/entity"
)

// extractJSON returns the first balanced-brace region of free-form model
// output. Models are prompted to answer with JSON but may wrap it in
// prose; this is a best-effort boundary with a single failure mode.
func extractJSON(content string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, r := range content {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return content[start : i+1], nil
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}
	return "", fmt.Errorf("%w: no JSON object in model output", entity.ErrMalformedResponse)
}
