package plan

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Strob0t/SkillBridge/internal/domain"
)

// Errors produced while reading a plan out of model text. All of them match
// domain.ErrUpstream.
var (
	ErrNoJSONFound           = fmt.Errorf("%w: no JSON object found in response", domain.ErrUpstream)
	ErrInvalidJSON           = fmt.Errorf("%w: invalid JSON in response", domain.ErrUpstream)
	ErrMissingRequiredFields = fmt.Errorf("%w: missing required fields in response", domain.ErrUpstream)
)

// ExtractObject returns the first complete JSON object embedded in text.
// It scans from the first '{' and tracks nesting depth, skipping braces that
// appear inside string literals, and stops at the brace that closes the
// first one. Prose or further fragments after that brace are ignored.
func ExtractObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", ErrNoJSONFound
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("%w: unterminated object starting at offset %d", ErrNoJSONFound, start)
}

// ParseObject extracts and decodes the JSON object in text and checks that it
// carries a truthy "goal" and "weeks". Numbers are kept as json.Number.
func ParseObject(text string) (map[string]any, error) {
	span, err := ExtractObject(text)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(span))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: top-level value is null", ErrInvalidJSON)
	}

	if !truthy(obj["goal"]) || !truthy(obj["weeks"]) {
		return nil, ErrMissingRequiredFields
	}
	return obj, nil
}

// CheckObject reports whether text holds a usable plan object.
func CheckObject(text string) error {
	_, err := ParseObject(text)
	return err
}

// truthy follows JavaScript truthiness, which is what model output is
// written against: empty strings, zero, false and null are falsy, and every
// object or array (even an empty one) is truthy.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0 && !math.IsNaN(f)
	case float64:
		return x != 0 && !math.IsNaN(x)
	default:
		return true
	}
}
