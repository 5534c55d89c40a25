package common

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

const fence = "```"

// StripFence removes a single markdown code fence, and the language tag that
// may follow the opening marker, from an LLM reply. Input that is not fenced is
// returned trimmed. The reply may carry at most one fenced block.
func StripFence(response string) string {
	s := strings.TrimSpace(response)
	if !strings.HasPrefix(s, fence) {
		return s
	}
	s = s[len(fence):]

	if i := strings.IndexAny(s, "\r\n"); i >= 0 && isTag(s[:i]) {
		s = s[i+1:]
	} else {
		// Single-line block such as ```json{"a":1}```
		s = strings.TrimLeftFunc(s, isTagRune)
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

func isTag(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if !isTagRune(r) {
			return false
		}
	}
	return true
}

func isTagRune(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '+')
}

// ParseJSON strips a code fence and unmarshals the JSON object in the reply into T.
// Text around the object (a model's preamble, for instance) is ignored.
func ParseJSON[T any](response string) (T, error) {
	var zero T
	jsonStr := StripFence(response)

	start := strings.IndexByte(jsonStr, '{')
	end := strings.LastIndexByte(jsonStr, '}')
	if start == -1 {
		return zero, fmt.Errorf("no JSON object found in response (missing '{')")
	}
	if end < start {
		return zero, fmt.Errorf("no JSON object found in response (missing '}')")
	}
	jsonStr = jsonStr[start : end+1]

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}
